// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package league implements fixture generation and standings for round-robin leagues.

# Scheduling

Team names arrive as raw organizer text, separated by commas or newlines:

	teams := league.ParseTeamNames("Lions, Tigers\nBears")
	fixtures := league.GenerateSchedule(teams)

GenerateSchedule uses the circle method. Odd team counts get a bye slot, so
every round has one team sitting out. N teams produce N(N-1)/2 fixtures over
N-1 matchdays (even N) or N matchdays (odd N).

# Standings

	rules, err := league.ParseRules("3", "1", "0")
	standings := league.ComputeStandings(fixtures, rules)

Only fixtures with both scores recorded count. The table is sorted by points
descending; teams on equal points stay in the order they first appear in the
fixture list.

# Matchdays

	days := league.Matchdays(fixtures)                          // 1..max
	groups := league.GroupByMatchday(fixtures, func(f league.Fixture) int { return f.Matchday })

Everything in this package is pure and safe to call from concurrent requests.
*/
package league
