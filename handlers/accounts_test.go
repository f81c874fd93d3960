// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/quickly-league/auth"
	"github.com/danielhkuo/quickly-league/models"
	"github.com/danielhkuo/quickly-league/testutil"
)

func TestSignup(t *testing.T) {
	store := testutil.NewTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewAccountHandler(store, cfg)

	testutil.CreateTestOrganizer(t, store, "taken")

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{
			name:           "valid signup",
			body:           models.SignupRequest{Username: "alice", Password: "correct-horse"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "username trimmed",
			body:           models.SignupRequest{Username: "  bob  ", Password: "correct-horse"},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "username too short",
			body:           models.SignupRequest{Username: "ab", Password: "correct-horse"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "username with spaces",
			body:           models.SignupRequest{Username: "a b c", Password: "correct-horse"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "password too short",
			body:           models.SignupRequest{Username: "carol", Password: "short"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "username taken",
			body:           models.SignupRequest{Username: "taken", Password: "correct-horse"},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "invalid JSON",
			body:           "{not json",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "empty body",
			body:           "",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("POST", "/api/signup", tt.body)
			w := httptest.NewRecorder()

			handler.Signup(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus != http.StatusCreated {
				var errResp models.ErrorResponse
				testutil.AssertJSON(t, w, &errResp)
				if errResp.Message == "" {
					t.Error("Expected error message")
				}
				return
			}

			var resp models.OrganizerResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.Username == "" {
				t.Error("Expected username in response")
			}

			cookie := findCookie(w, auth.SessionCookieName)
			if cookie == nil {
				t.Fatal("Expected session cookie")
			}
			if !cookie.HttpOnly {
				t.Error("Session cookie should be HttpOnly")
			}
		})
	}
}

func TestSignupStoresHashedPassword(t *testing.T) {
	store := testutil.NewTestDB(t)
	handler := NewAccountHandler(store, testutil.GetTestConfig())

	w := httptest.NewRecorder()
	handler.Signup(w, testutil.MakeRequest("POST", "/api/signup", models.SignupRequest{Username: "alice", Password: "correct-horse"}))
	testutil.AssertStatus(t, w, http.StatusCreated)

	org, err := store.GetOrganizer(t.Context(), "alice")
	if err != nil {
		t.Fatalf("Failed to load organizer: %v", err)
	}
	if org.PasswordHash == "correct-horse" {
		t.Fatal("Password stored in plain text")
	}
	if !auth.VerifyPassword(org.PasswordHash, "correct-horse") {
		t.Error("Stored hash does not verify")
	}
}

func TestLogin(t *testing.T) {
	store := testutil.NewTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewAccountHandler(store, cfg)

	testutil.CreateTestOrganizer(t, store, "alice")

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
	}{
		{"valid credentials", models.LoginRequest{Username: "alice", Password: testutil.TestPassword}, http.StatusOK},
		{"wrong password", models.LoginRequest{Username: "alice", Password: "wrong-password"}, http.StatusUnauthorized},
		{"unknown user", models.LoginRequest{Username: "nobody", Password: testutil.TestPassword}, http.StatusUnauthorized},
		{"invalid JSON", "nope", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.Login(w, testutil.MakeRequest("POST", "/api/login", tt.body))

			testutil.AssertStatus(t, w, tt.expectedStatus)

			cookie := findCookie(w, auth.SessionCookieName)
			if tt.expectedStatus == http.StatusOK {
				if cookie == nil {
					t.Fatal("Expected session cookie")
				}
				s, err := auth.ParseSession(cookie.Value, cfg.SessionSecret, time.Now())
				if err != nil {
					t.Fatalf("Session cookie does not parse: %v", err)
				}
				if s.Username != "alice" {
					t.Errorf("Expected session for alice, got %s", s.Username)
				}
			} else if cookie != nil {
				t.Error("Failed login must not set a session cookie")
			}
		})
	}
}

func TestLoginErrorsDoNotRevealAccounts(t *testing.T) {
	store := testutil.NewTestDB(t)
	handler := NewAccountHandler(store, testutil.GetTestConfig())
	testutil.CreateTestOrganizer(t, store, "alice")

	messages := make([]string, 0, 2)
	for _, body := range []models.LoginRequest{
		{Username: "alice", Password: "wrong-password"},
		{Username: "nobody", Password: "wrong-password"},
	} {
		w := httptest.NewRecorder()
		handler.Login(w, testutil.MakeRequest("POST", "/api/login", body))

		var errResp models.ErrorResponse
		testutil.AssertJSON(t, w, &errResp)
		messages = append(messages, errResp.Message)
	}

	if messages[0] != messages[1] {
		t.Errorf("Expected identical messages, got %q and %q", messages[0], messages[1])
	}
}

func TestLoginUnknownUserDoesPasswordWork(t *testing.T) {
	store := testutil.NewTestDB(t)
	handler := NewAccountHandler(store, testutil.GetTestConfig())

	// Signup hashes at the default cost, like real accounts
	w := httptest.NewRecorder()
	handler.Signup(w, testutil.MakeRequest("POST", "/api/signup", models.SignupRequest{Username: "alice", Password: "correct-horse"}))
	testutil.AssertStatus(t, w, http.StatusCreated)

	login := func(username string) time.Duration {
		start := time.Now()
		w := httptest.NewRecorder()
		handler.Login(w, testutil.MakeRequest("POST", "/api/login", models.LoginRequest{Username: username, Password: "wrong-password"}))
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
		return time.Since(start)
	}

	login("nobody") // first call builds the comparison hash
	known := login("alice")
	unknown := login("nobody")

	// Both paths run a full bcrypt comparison; a lookup alone is orders of
	// magnitude faster
	if unknown*10 < known {
		t.Errorf("Unknown user answered in %s, known user in %s", unknown, known)
	}
}

func TestLogout(t *testing.T) {
	handler := NewAccountHandler(testutil.NewTestDB(t), testutil.GetTestConfig())

	w := httptest.NewRecorder()
	handler.Logout(w, testutil.MakeRequest("POST", "/api/logout", nil))

	testutil.AssertStatus(t, w, http.StatusNoContent)
	cookie := findCookie(w, auth.SessionCookieName)
	if cookie == nil || cookie.MaxAge >= 0 {
		t.Errorf("Expected expired session cookie, got %+v", cookie)
	}
}

func TestMe(t *testing.T) {
	store := testutil.NewTestDB(t)
	handler := NewAccountHandler(store, testutil.GetTestConfig())
	testutil.CreateTestOrganizer(t, store, "alice")

	t.Run("signed in", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Me(w, asOrganizer(testutil.MakeRequest("GET", "/api/me", nil), "alice"))

		testutil.AssertStatus(t, w, http.StatusOK)
		var resp models.OrganizerResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.Username != "alice" {
			t.Errorf("Expected alice, got %s", resp.Username)
		}
	})

	t.Run("no session", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Me(w, testutil.MakeRequest("GET", "/api/me", nil))
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("deleted account", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.Me(w, asOrganizer(testutil.MakeRequest("GET", "/api/me", nil), "ghost"))
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
