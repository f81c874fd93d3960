// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles connections, migrations, and league persistence.

# Opening

Open connects, pings, and applies the embedded migrations for the
driver's dialect:

	store, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open database")
	}
	defer store.Close()

Supported types are "sqlite" (modernc.org/sqlite, pure Go) and "postgres"
(lib/pq). For sqlite, foreign keys and a busy timeout are enabled through
DSN pragmas and the parent directory of the file is created.

Migrations live under migrations/<driver>/ and run through golang-migrate
with an iofs source. Re-opening an up-to-date database is a no-op.

# Tables

  - organizer: username, bcrypt password hash
  - league: name, owner, win/tie/loss points, optional share slug
  - fixture: one scheduled match; seq keeps generator order,
    score1/score2 are NULL until played

An organizer owns many leagues and a league owns many fixtures.
All foreign keys use ON DELETE CASCADE.

# Queries

Queries are written with ? placeholders and rebound to $n for postgres.
Multi-statement writes go through RunInTx, which rolls back on error
or panic.

# Errors

Lookups return sentinel errors callers match with errors.Is:

  - ErrOrganizerNotFound, ErrUsernameTaken
  - ErrLeagueNotFound, ErrMatchNotFound
*/
package db
