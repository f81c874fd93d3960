// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-league/auth"
	"github.com/danielhkuo/quickly-league/cliparse"
	"github.com/danielhkuo/quickly-league/db"
	"github.com/danielhkuo/quickly-league/league"
	"github.com/danielhkuo/quickly-league/models"
	"golang.org/x/crypto/bcrypt"
)

// TestPassword is the password of every organizer CreateTestOrganizer makes
const TestPassword = "password123"

// FixedClock always reports the same instant
type FixedClock struct {
	T time.Time
}

func (c FixedClock) Now() time.Time { return c.T }

// NewTestDB opens a migrated sqlite database in a temp dir. It is closed
// when the test ends.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	store, err := db.Open(context.Background(), db.DriverSQLite, path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3318,
		DatabaseURL:     ":memory:",
		DatabaseType:    db.DriverSQLite,
		SessionSecret:   "test-session-secret",
		ShareSlugSalt:   "test-slug-salt",
		BaseURL:         "http://league.test",
		AllowedOrigins:  []string{"http://league.test"},
		Environment:     "development",
		ShutdownTimeout: time.Second,
	}
}

// CreateTestOrganizer registers username with TestPassword
func CreateTestOrganizer(t *testing.T, store *db.DB, username string) models.Organizer {
	t.Helper()

	// MinCost keeps the suite fast; VerifyPassword accepts any cost
	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	org, err := store.CreateOrganizer(context.Background(), username, string(hash))
	if err != nil {
		t.Fatalf("Failed to create test organizer: %v", err)
	}
	return org
}

// CreateTestLeague creates a league with default rules and a generated
// schedule for teams
func CreateTestLeague(t *testing.T, store *db.DB, owner string, teams ...string) (models.League, []models.Match) {
	t.Helper()

	l, matches, err := store.CreateLeague(context.Background(), models.League{
		Name:  "Test League",
		Owner: owner,
		Rules: league.DefaultRules(),
	}, league.GenerateSchedule(teams))
	if err != nil {
		t.Fatalf("Failed to create test league: %v", err)
	}
	return l, matches
}

// PublishTestLeague publishes a league and returns its share slug
func PublishTestLeague(t *testing.T, store *db.DB, cfg cliparse.Config, leagueID string) string {
	t.Helper()

	slug, err := store.PublishLeague(context.Background(), leagueID, auth.GenerateShareSlug(leagueID, cfg.ShareSlugSalt))
	if err != nil {
		t.Fatalf("Failed to publish test league: %v", err)
	}
	return slug
}

// ScoreTestMatch records a result for a match
func ScoreTestMatch(t *testing.T, store *db.DB, m models.Match, score1, score2 int) models.Match {
	t.Helper()

	updated, err := store.SetMatchScore(context.Background(), m.LeagueID, m.ID, score1, score2)
	if err != nil {
		t.Fatalf("Failed to score test match: %v", err)
	}
	return updated
}

// SessionCookie returns a valid session cookie for username
func SessionCookie(t *testing.T, cfg cliparse.Config, username string) *http.Cookie {
	t.Helper()

	value, err := auth.SignSession(auth.Session{
		Username:  username,
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}, cfg.SessionSecret)
	if err != nil {
		t.Fatalf("Failed to sign session: %v", err)
	}
	return &http.Cookie{Name: auth.SessionCookieName, Value: value}
}

// FindMatch returns the match between team1 and team2 in either order
func FindMatch(t *testing.T, matches []models.Match, team1, team2 string) models.Match {
	t.Helper()

	for _, m := range matches {
		if (m.Team1 == team1 && m.Team2 == team2) || (m.Team1 == team2 && m.Team2 == team1) {
			return m
		}
	}
	t.Fatalf("No match between %s and %s", team1, team2)
	return models.Match{}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, cookies ...*http.Cookie) *http.Request {
	var req *http.Request
	switch b := body.(type) {
	case nil:
		req = httptest.NewRequest(method, path, nil)
	case string:
		req = httptest.NewRequest(method, path, strings.NewReader(b))
		req.Header.Set("Content-Type", "application/json")
	default:
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	}

	for _, c := range cookies {
		req.AddCookie(c)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
