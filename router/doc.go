// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly League API.

# Route Registration

NewRouter returns a chi router with all endpoints and middleware:

	r := router.NewRouter(store, cfg)

Every request passes through RequestID, RealIP, the request logger,
access logging, panic recovery, and CORS, in that order.

# Endpoints

Health:

	GET /health
	GET /

Accounts:

	POST /api/signup - Create organizer, start session
	POST /api/login  - Start session
	POST /api/logout - End session
	GET  /api/me     - Current organizer (session)

League management (session, owner only):

	POST   /api/leagues                              - Create league and schedule
	GET    /api/leagues                              - List own leagues
	GET    /api/leagues/{id}                         - Rounds and standings
	DELETE /api/leagues/{id}                         - Delete league
	POST   /api/leagues/{id}/publish                 - Assign share slug
	PUT    /api/leagues/{id}/matches/{matchID}/score - Record result

Published leagues (public):

	GET /api/shared/{slug} - JSON view
	GET /shared/{slug}     - HTML standings page
	    /mcp               - MCP tools (league_standings, league_fixtures)
*/
package router
