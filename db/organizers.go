// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/quickly-league/models"
)

// CreateOrganizer inserts a new account. Returns ErrUsernameTaken if the
// username is already registered.
func (db *DB) CreateOrganizer(ctx context.Context, username, passwordHash string) (models.Organizer, error) {
	org := models.Organizer{
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    db.clock.Now(),
	}

	_, err := db.ExecContext(ctx, db.rebind(`
		INSERT INTO organizer (username, password_hash, created_at)
		VALUES (?, ?, ?)
	`), org.Username, org.PasswordHash, org.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Organizer{}, ErrUsernameTaken
		}
		return models.Organizer{}, fmt.Errorf("error creating organizer: %w", err)
	}

	return org, nil
}

// GetOrganizer loads an account by username
func (db *DB) GetOrganizer(ctx context.Context, username string) (models.Organizer, error) {
	var org models.Organizer
	err := db.QueryRowContext(ctx, db.rebind(`
		SELECT username, password_hash, created_at
		FROM organizer
		WHERE username = ?
	`), username).Scan(&org.Username, &org.PasswordHash, &org.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Organizer{}, ErrOrganizerNotFound
	}
	if err != nil {
		return models.Organizer{}, fmt.Errorf("error loading organizer: %w", err)
	}
	return org, nil
}
