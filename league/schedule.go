// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package league

import (
	"strings"
)

// bye marks the placeholder slot added to odd-sized team lists
const bye = -1

// Fixture is one scheduled match between two teams on a matchday.
// Scores are nil until a result is recorded.
type Fixture struct {
	Team1    string `json:"team1"`
	Team2    string `json:"team2"`
	Score1   *int   `json:"score1"`
	Score2   *int   `json:"score2"`
	Matchday int    `json:"matchday"`
}

// Played reports whether both scores have been recorded
func (f Fixture) Played() bool {
	return f.Score1 != nil && f.Score2 != nil
}

// ParseTeamNames splits raw organizer input on commas or newlines and trims
// each name. Entries that are empty after trimming are dropped.
func ParseTeamNames(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n'
	})

	names := make([]string, 0, len(fields))
	for _, field := range fields {
		name := strings.TrimSpace(field)
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return names
}

// ScheduleFromText parses raw team input and generates its schedule
func ScheduleFromText(raw string) []Fixture {
	return GenerateSchedule(ParseTeamNames(raw))
}

// GenerateSchedule builds a circle-method round robin over teams.
//
// Position 0 of the working list stays fixed while the remaining positions
// rotate left by one each round, so every pair of entries meets exactly once.
// Odd lists get a bye slot; pairings against it produce no fixture.
// Duplicate names are scheduled as distinct entries.
func GenerateSchedule(teams []string) []Fixture {
	size := len(teams)
	if size%2 == 1 {
		size++
	}
	if size < 2 {
		return []Fixture{}
	}

	rounds := size - 1
	perRound := size / 2
	fixtures := make([]Fixture, 0, len(teams)*(len(teams)-1)/2)

	// working[p] holds the team index at position p for the current round
	working := make([]int, size)
	for round := 0; round < rounds; round++ {
		rotation(working, len(teams), round)
		for i := 0; i < perRound; i++ {
			left := working[i]
			right := working[size-1-i]
			if left == bye || right == bye {
				continue
			}
			fixtures = append(fixtures, Fixture{
				Team1:    teams[left],
				Team2:    teams[right],
				Matchday: round + 1,
			})
		}
	}

	return fixtures
}

// rotation fills working with the team order for the given 0-based round.
// Slots at or beyond teamCount are the bye.
func rotation(working []int, teamCount, round int) {
	size := len(working)
	working[0] = slot(0, teamCount)
	for p := 1; p < size; p++ {
		working[p] = slot(1+(p-1+round)%(size-1), teamCount)
	}
}

func slot(index, teamCount int) int {
	if index >= teamCount {
		return bye
	}
	return index
}
