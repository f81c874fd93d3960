// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/danielhkuo/quickly-league/db"
	"github.com/danielhkuo/quickly-league/league"
	"github.com/danielhkuo/quickly-league/models"
)

// queryTimeout bounds the database work of a single request
const queryTimeout = 5 * time.Second

// buildLeagueView loads a league's fixtures and recomputes its standings.
// Owner, shared, HTML, and MCP views all go through here.
func buildLeagueView(ctx context.Context, store *db.DB, l models.League) (models.LeagueView, error) {
	if err := l.Rules.Validate(); err != nil {
		return models.LeagueView{}, fmt.Errorf("league %s has unusable rules: %w", l.ID, err)
	}

	matches, err := store.ListMatches(ctx, l.ID)
	if err != nil {
		return models.LeagueView{}, err
	}

	fixtures := make([]league.Fixture, len(matches))
	played := 0
	for i, m := range matches {
		fixtures[i] = m.Fixture
		if m.Played() {
			played++
		}
	}

	return models.LeagueView{
		League:    l,
		Matchdays: league.Matchdays(fixtures),
		Rounds:    league.GroupByMatchday(matches, func(m models.Match) int { return m.Matchday }),
		Standings: league.ComputeStandings(fixtures, l.Rules),
		Played:    played,
		Total:     len(matches),
	}, nil
}
