// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Quickly League API.

# Handler Types

  - AccountHandler: Organizer signup, login, logout
  - LeagueHandler: League lifecycle and score entry
  - SharedHandler: Published leagues as JSON and HTML

Handlers are created via constructor functions that accept *db.DB and Config:

	leagueHandler := handlers.NewLeagueHandler(store, cfg)

# League Lifecycle

	POST   /api/leagues                               → CreateLeague (generates the schedule)
	GET    /api/leagues                               → ListLeagues
	GET    /api/leagues/{id}                          → GetLeague (rounds and standings)
	PUT    /api/leagues/{id}/matches/{matchID}/score  → SubmitScore
	POST   /api/leagues/{id}/publish                  → PublishLeague (share slug)
	DELETE /api/leagues/{id}                          → DeleteLeague

League routes require a session cookie and only the owner may act on a
league; others get 403.

# Shared Views

	GET /api/shared/{slug} → GetSharedLeague
	GET /shared/{slug}     → SharedLeaguePage

Standings are never stored. Every view recomputes them from the
recorded scores with the league's point rules.
*/
package handlers
