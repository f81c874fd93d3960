// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/quickly-league/league"
	"github.com/danielhkuo/quickly-league/models"
	"github.com/google/uuid"
)

const leagueColumns = `id, name, owner, win_points, tie_points, loss_points, share_slug, created_at`

const matchColumns = `id, league_id, seq, matchday, team1, team2, score1, score2, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

// CreateLeague stores a league together with its generated schedule in a
// single transaction. Fixtures keep their slice order as Seq.
func (db *DB) CreateLeague(ctx context.Context, l models.League, fixtures []league.Fixture) (models.League, []models.Match, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	l.CreatedAt = db.clock.Now()
	l.ShareSlug = nil

	matches := make([]models.Match, len(fixtures))
	err := db.RunInTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, db.rebind(`
			INSERT INTO league (`+leagueColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, NULL, ?)
		`), l.ID, l.Name, l.Owner, l.Rules.WinPoints, l.Rules.TiePoints, l.Rules.LossPoints, l.CreatedAt)
		if err != nil {
			return fmt.Errorf("error inserting league: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, db.rebind(`
			INSERT INTO fixture (id, league_id, seq, matchday, team1, team2)
			VALUES (?, ?, ?, ?, ?, ?)
		`))
		if err != nil {
			return fmt.Errorf("error preparing fixture insert: %w", err)
		}
		defer stmt.Close()

		for i, f := range fixtures {
			m := models.Match{
				ID:       uuid.NewString(),
				LeagueID: l.ID,
				Seq:      i,
				Fixture:  league.Fixture{Team1: f.Team1, Team2: f.Team2, Matchday: f.Matchday},
			}
			if _, err := stmt.ExecContext(ctx, m.ID, m.LeagueID, m.Seq, m.Matchday, m.Team1, m.Team2); err != nil {
				return fmt.Errorf("error inserting fixture %d: %w", i, err)
			}
			matches[i] = m
		}
		return nil
	})
	if err != nil {
		return models.League{}, nil, err
	}

	return l, matches, nil
}

// GetLeague loads a league by id
func (db *DB) GetLeague(ctx context.Context, id string) (models.League, error) {
	row := db.QueryRowContext(ctx, db.rebind(`SELECT `+leagueColumns+` FROM league WHERE id = ?`), id)
	return scanLeague(row)
}

// GetLeagueBySlug loads a published league by its share slug
func (db *DB) GetLeagueBySlug(ctx context.Context, slug string) (models.League, error) {
	row := db.QueryRowContext(ctx, db.rebind(`SELECT `+leagueColumns+` FROM league WHERE share_slug = ?`), slug)
	return scanLeague(row)
}

// ListLeaguesByOwner returns an organizer's leagues, newest first
func (db *DB) ListLeaguesByOwner(ctx context.Context, owner string) ([]models.League, error) {
	rows, err := db.QueryContext(ctx, db.rebind(`
		SELECT `+leagueColumns+`
		FROM league
		WHERE owner = ?
		ORDER BY created_at DESC, id
	`), owner)
	if err != nil {
		return nil, fmt.Errorf("error listing leagues: %w", err)
	}
	defer rows.Close()

	leagues := []models.League{}
	for rows.Next() {
		l, err := scanLeague(rows)
		if err != nil {
			return nil, err
		}
		leagues = append(leagues, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leagues: %w", err)
	}
	return leagues, nil
}

// ListMatches returns a league's fixtures in schedule order
func (db *DB) ListMatches(ctx context.Context, leagueID string) ([]models.Match, error) {
	rows, err := db.QueryContext(ctx, db.rebind(`
		SELECT `+matchColumns+`
		FROM fixture
		WHERE league_id = ?
		ORDER BY seq
	`), leagueID)
	if err != nil {
		return nil, fmt.Errorf("error listing matches: %w", err)
	}
	defer rows.Close()

	matches := []models.Match{}
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating matches: %w", err)
	}
	return matches, nil
}

// GetMatch loads one fixture, scoped to its league
func (db *DB) GetMatch(ctx context.Context, leagueID, matchID string) (models.Match, error) {
	row := db.QueryRowContext(ctx, db.rebind(`
		SELECT `+matchColumns+`
		FROM fixture
		WHERE league_id = ? AND id = ?
	`), leagueID, matchID)

	m, err := scanMatch(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Match{}, ErrMatchNotFound
	}
	return m, err
}

// SetMatchScore records both scores for a fixture. Submitting again
// overwrites the previous result.
func (db *DB) SetMatchScore(ctx context.Context, leagueID, matchID string, score1, score2 int) (models.Match, error) {
	res, err := db.ExecContext(ctx, db.rebind(`
		UPDATE fixture
		SET score1 = ?, score2 = ?, updated_at = ?
		WHERE league_id = ? AND id = ?
	`), score1, score2, db.clock.Now(), leagueID, matchID)
	if err != nil {
		return models.Match{}, fmt.Errorf("error updating score: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return models.Match{}, fmt.Errorf("error checking update: %w", err)
	}
	if n == 0 {
		return models.Match{}, ErrMatchNotFound
	}

	return db.GetMatch(ctx, leagueID, matchID)
}

// PublishLeague assigns slug to the league unless it already has one, and
// returns the slug now in effect.
func (db *DB) PublishLeague(ctx context.Context, id, slug string) (string, error) {
	var current string
	err := db.RunInTx(ctx, func(tx *sql.Tx) error {
		var existing sql.NullString
		err := tx.QueryRowContext(ctx, db.rebind(`SELECT share_slug FROM league WHERE id = ?`), id).Scan(&existing)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrLeagueNotFound
		}
		if err != nil {
			return fmt.Errorf("error loading league: %w", err)
		}

		if existing.Valid {
			current = existing.String
			return nil
		}

		if _, err := tx.ExecContext(ctx, db.rebind(`UPDATE league SET share_slug = ? WHERE id = ?`), slug, id); err != nil {
			return fmt.Errorf("error publishing league: %w", err)
		}
		current = slug
		return nil
	})
	if err != nil {
		return "", err
	}
	return current, nil
}

// DeleteLeague removes a league and all of its fixtures
func (db *DB) DeleteLeague(ctx context.Context, id string) error {
	return db.RunInTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, db.rebind(`DELETE FROM fixture WHERE league_id = ?`), id); err != nil {
			return fmt.Errorf("error deleting fixtures: %w", err)
		}

		res, err := tx.ExecContext(ctx, db.rebind(`DELETE FROM league WHERE id = ?`), id)
		if err != nil {
			return fmt.Errorf("error deleting league: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("error checking delete: %w", err)
		}
		if n == 0 {
			return ErrLeagueNotFound
		}
		return nil
	})
}

func scanLeague(row rowScanner) (models.League, error) {
	var (
		l    models.League
		slug sql.NullString
	)
	err := row.Scan(&l.ID, &l.Name, &l.Owner,
		&l.Rules.WinPoints, &l.Rules.TiePoints, &l.Rules.LossPoints,
		&slug, &l.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.League{}, ErrLeagueNotFound
	}
	if err != nil {
		return models.League{}, fmt.Errorf("error scanning league: %w", err)
	}

	if slug.Valid {
		l.ShareSlug = &slug.String
	}
	return l, nil
}

func scanMatch(row rowScanner) (models.Match, error) {
	var (
		m              models.Match
		score1, score2 sql.NullInt64
		updatedAt      sql.NullTime
	)
	err := row.Scan(&m.ID, &m.LeagueID, &m.Seq, &m.Matchday, &m.Team1, &m.Team2, &score1, &score2, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Match{}, err
	}
	if err != nil {
		return models.Match{}, fmt.Errorf("error scanning match: %w", err)
	}

	if score1.Valid {
		s := int(score1.Int64)
		m.Score1 = &s
	}
	if score2.Valid {
		s := int(score2.Int64)
		m.Score2 = &s
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		m.UpdatedAt = &t
	}
	return m, nil
}
