// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielhkuo/quickly-league/db"
	"github.com/danielhkuo/quickly-league/league"
	"github.com/danielhkuo/quickly-league/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog/log"
)

// LeagueSource resolves a share slug to a computed league view
type LeagueSource interface {
	SharedLeagueView(ctx context.Context, slug string) (models.LeagueView, error)
}

type StandingsArgs struct {
	Slug string `json:"slug" jsonschema:"Share slug of a published league"`
}

type FixturesArgs struct {
	Slug     string `json:"slug" jsonschema:"Share slug of a published league"`
	Matchday int    `json:"matchday,omitempty" jsonschema:"Only return this matchday (omit or 0 for all)"`
}

type standingRow struct {
	Rank   int     `json:"rank"`
	Team   string  `json:"team"`
	Points float64 `json:"points"`
	Played int     `json:"played"`
	Wins   int     `json:"wins"`
	Draws  int     `json:"draws"`
	Losses int     `json:"losses"`
}

type standingsOutput struct {
	League    string        `json:"league"`
	Rules     league.Rules  `json:"rules"`
	Played    int           `json:"matches_played"`
	Total     int           `json:"matches_total"`
	Standings []standingRow `json:"standings"`
}

type fixtureRow struct {
	Team1  string `json:"team1"`
	Team2  string `json:"team2"`
	Score1 *int   `json:"score1"`
	Score2 *int   `json:"score2"`
	Played bool   `json:"played"`
}

type roundOutput struct {
	Matchday int          `json:"matchday"`
	Fixtures []fixtureRow `json:"fixtures"`
}

type fixturesOutput struct {
	League string        `json:"league"`
	Rounds []roundOutput `json:"rounds"`
}

// NewServer registers the read-only league tools
func NewServer(source LeagueSource, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "quickly-league",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "league_standings",
		Description: "Ranked standings of a published league: points, wins, draws, losses per team",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args StandingsArgs) (*mcp.CallToolResult, any, error) {
		view, result := loadView(ctx, source, args.Slug)
		if result != nil {
			return result, nil, nil
		}
		return toolJSON(standingsResult(view)), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "league_fixtures",
		Description: "Fixtures of a published league grouped by matchday, with scores where played",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args FixturesArgs) (*mcp.CallToolResult, any, error) {
		view, result := loadView(ctx, source, args.Slug)
		if result != nil {
			return result, nil, nil
		}
		out, err := fixturesResult(view, args.Matchday)
		if err != nil {
			return toolError(err), nil, nil
		}
		return toolJSON(out), nil, nil
	})

	return server
}

// NewHandler serves server over streamable HTTP with plain JSON responses
func NewHandler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

func loadView(ctx context.Context, source LeagueSource, slug string) (models.LeagueView, *mcp.CallToolResult) {
	if slug == "" {
		return models.LeagueView{}, toolError(errors.New("slug is required"))
	}

	view, err := source.SharedLeagueView(ctx, slug)
	if errors.Is(err, db.ErrLeagueNotFound) {
		return models.LeagueView{}, toolError(fmt.Errorf("no published league with slug %q", slug))
	}
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("share_slug", slug).Msg("mcp: failed to load league")
		return models.LeagueView{}, toolError(errors.New("failed to load league"))
	}
	return view, nil
}

func standingsResult(view models.LeagueView) standingsOutput {
	rows := make([]standingRow, len(view.Standings))
	for i, s := range view.Standings {
		rows[i] = standingRow{
			Rank:   i + 1,
			Team:   s.Team,
			Points: s.Points,
			Played: s.Played(),
			Wins:   s.Wins,
			Draws:  s.Draws,
			Losses: s.Losses,
		}
	}
	return standingsOutput{
		League:    view.League.Name,
		Rules:     view.League.Rules,
		Played:    view.Played,
		Total:     view.Total,
		Standings: rows,
	}
}

func fixturesResult(view models.LeagueView, matchday int) (fixturesOutput, error) {
	if matchday < 0 || matchday > len(view.Rounds) {
		return fixturesOutput{}, fmt.Errorf("matchday %d out of range 1..%d", matchday, len(view.Rounds))
	}

	out := fixturesOutput{League: view.League.Name, Rounds: []roundOutput{}}
	for _, round := range view.Rounds {
		if matchday != 0 && round.Matchday != matchday {
			continue
		}
		rows := make([]fixtureRow, len(round.Fixtures))
		for i, m := range round.Fixtures {
			rows[i] = fixtureRow{Team1: m.Team1, Team2: m.Team2, Score1: m.Score1, Score2: m.Score2, Played: m.Played()}
		}
		out.Rounds = append(out.Rounds, roundOutput{Matchday: round.Matchday, Fixtures: rows})
	}
	return out, nil
}

func toolJSON(v any) *mcp.CallToolResult {
	b, _ := json.MarshalIndent(v, "", "  ")
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
