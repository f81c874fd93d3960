// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	ErrOrganizerNotFound = errors.New("organizer not found")
	ErrUsernameTaken     = errors.New("username already taken")
	ErrLeagueNotFound    = errors.New("league not found")
	ErrMatchNotFound     = errors.New("match not found")
)

// isUniqueViolation reports whether err came from a primary key or
// unique constraint on either supported driver.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var liteErr *moderncsqlite.Error
	if errors.As(err, &liteErr) {
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return true
		}
		return false
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
