// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/danielhkuo/quickly-league/league"
)

// League visibility
const (
	VisibilityPrivate = "private"
	VisibilityShared  = "shared"
)

// Request types

type SignupRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CreateLeagueRequest struct {
	Name       string     `json:"name"`
	TeamNames  string     `json:"team_names"`
	WinPoints  PointValue `json:"win_points"`
	TiePoints  PointValue `json:"tie_points"`
	LossPoints PointValue `json:"loss_points"`
}

// PointValue is a point setting sent as a JSON number or a string. Null,
// "" and an omitted field all mean unset, so the rule default applies.
// The text is checked later by league.ParseRules.
type PointValue string

func (p *PointValue) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*p = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PointValue(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("point value must be a number or a string: %w", err)
	}
	*p = PointValue(n)
	return nil
}

func (p PointValue) String() string {
	return string(p)
}

type SubmitScoreRequest struct {
	Score1 *int `json:"score1"`
	Score2 *int `json:"score2"`
}

// Response types

type OrganizerResponse struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateLeagueResponse struct {
	LeagueID   string `json:"league_id"`
	TeamCount  int    `json:"team_count"`
	MatchCount int    `json:"match_count"`
	Matchdays  int    `json:"matchdays"`
}

type PublishLeagueResponse struct {
	ShareSlug string `json:"share_slug"`
	ShareURL  string `json:"share_url"`
}

type SubmitScoreResponse struct {
	Match     Match             `json:"match"`
	Standings []league.Standing `json:"standings"`
}

// Domain types

type Organizer struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
}

type League struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Owner     string       `json:"owner"`
	Rules     league.Rules `json:"rules"`
	ShareSlug *string      `json:"share_slug,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// Visibility reports whether anonymous viewers can read the league
func (l League) Visibility() string {
	if l.ShareSlug != nil {
		return VisibilityShared
	}
	return VisibilityPrivate
}

// Match is a persisted fixture. Seq preserves schedule emission order.
type Match struct {
	ID       string `json:"id"`
	LeagueID string `json:"league_id"`
	Seq      int    `json:"seq"`
	league.Fixture
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

// LeagueView is everything a standings page needs
type LeagueView struct {
	League    League                        `json:"league"`
	Matchdays []int                         `json:"matchdays"`
	Rounds    []league.MatchdayGroup[Match] `json:"rounds"`
	Standings []league.Standing             `json:"standings"`
	Played    int                           `json:"played"`
	Total     int                           `json:"total"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
