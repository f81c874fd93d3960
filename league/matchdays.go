// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package league

// Matchdays returns 1..max matchday found in fixtures
func Matchdays(fixtures []Fixture) []int {
	last := 0
	for _, f := range fixtures {
		if f.Matchday > last {
			last = f.Matchday
		}
	}

	days := make([]int, last)
	for i := range days {
		days[i] = i + 1
	}
	return days
}

// MatchdayGroup holds the fixtures of one matchday in input order
type MatchdayGroup[T any] struct {
	Matchday int `json:"matchday"`
	Fixtures []T `json:"fixtures"`
}

// GroupByMatchday buckets items by the matchday returned from key.
// Every matchday in 1..max gets a group, possibly empty.
func GroupByMatchday[T any](items []T, key func(T) int) []MatchdayGroup[T] {
	last := 0
	for _, item := range items {
		if md := key(item); md > last {
			last = md
		}
	}

	groups := make([]MatchdayGroup[T], last)
	for i := range groups {
		groups[i] = MatchdayGroup[T]{Matchday: i + 1, Fixtures: []T{}}
	}
	for _, item := range items {
		md := key(item)
		if md < 1 {
			continue
		}
		groups[md-1].Fixtures = append(groups[md-1].Fixtures, item)
	}
	return groups
}
