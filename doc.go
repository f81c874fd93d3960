// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly League API server.

Quickly League generates single round-robin schedules for a list of
teams, records match results, and keeps a standings table with
configurable win/tie/loss points. Organizers can publish a league to a
read-only share link.

# Starting the Server

The server reads CLI flags, environment variables, an optional YAML file,
and a .env file:

	SESSION_SECRET=... SHARE_SLUG_SALT=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

# Configuration

Required settings:

  - SESSION_SECRET (-session-secret): Secret for session cookie HMAC
  - SHARE_SLUG_SALT (-slug-salt): Secret for share slug generation

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string or sqlite path (default: quickly-league.db)
  - BASE_URL (-base-url): Public URL used in share links
  - ALLOWED_ORIGINS (-allowed-origins): Comma-separated CORS origins (default: BASE_URL)
  - ENVIRONMENT (-env): development enables console logging
  - SHUTDOWN_TIMEOUT_SECONDS: Graceful shutdown window (default: 30)
  - CONFIG_FILE (-c): YAML config file

# Architecture

  - league: Schedule generation and standings (no I/O)
  - handlers: HTTP request handlers (accounts, leagues, scores, shared views)
  - router: chi routes and middleware stack
  - middleware: Logging, recovery, sessions, JSON helpers
  - mcpserver: Read-only MCP tools over published leagues
  - views: Server-rendered standings page
  - models: Request/response and domain types
  - auth: Sessions, passwords, share slugs
  - db: Migrations and queries for sqlite and postgres
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
