// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - SignupRequest / LoginRequest: username, password
  - CreateLeagueRequest: name, team_names, win_points, tie_points, loss_points
  - SubmitScoreRequest: score1, score2

Point values in CreateLeagueRequest are PointValue, so 3, "3", "" and null
all decode; blank values fall back to the rule defaults.

# Response Types

  - OrganizerResponse: username, created_at
  - CreateLeagueResponse: league_id, team_count, match_count, matchdays
  - PublishLeagueResponse: share_slug, share_url
  - SubmitScoreResponse: match, standings
  - ErrorResponse: error, message

# Domain Types

  - Organizer: account that owns leagues
  - League: name, owner, point rules, optional share slug
  - Match: a persisted league.Fixture with its id and schedule position
  - LeagueView: league, matchdays, fixtures grouped by matchday, standings

# Constants

Visibility values:

	VisibilityPrivate = "private"
	VisibilityShared  = "shared"
*/
package models
