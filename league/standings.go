// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package league

import (
	"sort"
)

// Standing is a team's aggregate over all played fixtures
type Standing struct {
	Team   string  `json:"team"`
	Points float64 `json:"points"`
	Wins   int     `json:"wins"`
	Draws  int     `json:"draws"`
	Losses int     `json:"losses"`
}

// Played returns the number of fixtures with a recorded result
func (s Standing) Played() int {
	return s.Wins + s.Draws + s.Losses
}

// table keeps standings in first-seen order so equal-point teams
// have a deterministic display order
type table struct {
	rows  []Standing
	index map[string]int
}

func newTable(capacity int) *table {
	return &table{
		rows:  make([]Standing, 0, capacity),
		index: make(map[string]int, capacity),
	}
}

// row returns the index of team's row, adding it on first sight. Indices
// stay valid as rows grows; pointers into rows would not.
func (t *table) row(team string) int {
	i, ok := t.index[team]
	if !ok {
		i = len(t.rows)
		t.index[team] = i
		t.rows = append(t.rows, Standing{Team: team})
	}
	return i
}

// ComputeStandings aggregates fixtures into a table sorted by points.
//
// Every team that appears in a fixture gets a row, even with no results.
// Fixtures missing either score are skipped. Teams with equal points keep
// the order in which they first appeared in fixtures; there is no
// secondary tie-breaker. Callers should Validate rules first.
func ComputeStandings(fixtures []Fixture, rules Rules) []Standing {
	t := newTable(len(fixtures))

	for _, f := range fixtures {
		hi := t.row(f.Team1)
		ai := t.row(f.Team2)

		if !f.Played() {
			continue
		}

		home, away := &t.rows[hi], &t.rows[ai]
		switch {
		case *f.Score1 > *f.Score2:
			award(home, away, rules)
		case *f.Score1 < *f.Score2:
			award(away, home, rules)
		default:
			home.Points += rules.TiePoints
			home.Draws++
			away.Points += rules.TiePoints
			away.Draws++
		}
	}

	standings := t.rows
	sort.SliceStable(standings, func(i, j int) bool {
		return standings[i].Points > standings[j].Points
	})
	return standings
}

func award(winner, loser *Standing, rules Rules) {
	winner.Points += rules.WinPoints
	winner.Wins++
	loser.Losses++
	if rules.LossPoints != 0 {
		loser.Points += rules.LossPoints
	}
}
