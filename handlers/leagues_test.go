// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielhkuo/quickly-league/db"
	"github.com/danielhkuo/quickly-league/league"
	"github.com/danielhkuo/quickly-league/models"
	"github.com/danielhkuo/quickly-league/testutil"
)

func TestCreateLeague(t *testing.T) {
	store := testutil.NewTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewLeagueHandler(store, cfg)
	testutil.CreateTestOrganizer(t, store, "alice")

	manyTeams := make([]string, MaxTeams+1)
	for i := range manyTeams {
		manyTeams[i] = fmt.Sprintf("T%d", i)
	}

	tests := []struct {
		name           string
		body           interface{}
		expectedStatus int
		wantTeams      int
		wantMatches    int
		wantMatchdays  int
	}{
		{
			name:           "three teams",
			body:           `{"name":"Sunday League","team_names":"A, B, C"}`,
			expectedStatus: http.StatusCreated,
			wantTeams:      3, wantMatches: 3, wantMatchdays: 3,
		},
		{
			name:           "newline separated with numeric points",
			body:           `{"name":"Cup","team_names":"A\nB\nC\nD","win_points":2,"tie_points":1,"loss_points":0}`,
			expectedStatus: http.StatusCreated,
			wantTeams:      4, wantMatches: 6, wantMatchdays: 3,
		},
		{
			name:           "string points",
			body:           `{"name":"Cup","team_names":"A,B","win_points":"2.5","tie_points":"1","loss_points":"-1"}`,
			expectedStatus: http.StatusCreated,
			wantTeams:      2, wantMatches: 1, wantMatchdays: 1,
		},
		{
			name:           "blank points use defaults",
			body:           `{"name":"Cup","team_names":"A,B","win_points":"","tie_points":null,"loss_points":""}`,
			expectedStatus: http.StatusCreated,
			wantTeams:      2, wantMatches: 1, wantMatchdays: 1,
		},
		{
			name:           "missing name",
			body:           `{"name":"  ","team_names":"A,B"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "name too long",
			body:           models.CreateLeagueRequest{Name: strings.Repeat("x", MaxNameLength+1), TeamNames: "A,B"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "single team",
			body:           `{"name":"Solo","team_names":"A,,"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "too many teams",
			body:           models.CreateLeagueRequest{Name: "Huge", TeamNames: strings.Join(manyTeams, ",")},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "team name too long",
			body:           models.CreateLeagueRequest{Name: "Long", TeamNames: "A," + strings.Repeat("b", MaxTeamNameLength+1)},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "non-numeric points",
			body:           `{"name":"Cup","team_names":"A,B","win_points":"three"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			body:           `{"name":`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := asOrganizer(testutil.MakeRequest("POST", "/api/leagues", tt.body), "alice")
			w := httptest.NewRecorder()

			handler.CreateLeague(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusCreated {
				return
			}

			var resp models.CreateLeagueResponse
			testutil.AssertJSON(t, w, &resp)
			if resp.LeagueID == "" {
				t.Fatal("Expected league_id in response")
			}
			if resp.TeamCount != tt.wantTeams || resp.MatchCount != tt.wantMatches || resp.Matchdays != tt.wantMatchdays {
				t.Errorf("Expected %d teams, %d matches, %d matchdays; got %+v",
					tt.wantTeams, tt.wantMatches, tt.wantMatchdays, resp)
			}

			matches, err := store.ListMatches(t.Context(), resp.LeagueID)
			if err != nil {
				t.Fatalf("Failed to list matches: %v", err)
			}
			if len(matches) != tt.wantMatches {
				t.Errorf("Expected %d stored matches, got %d", tt.wantMatches, len(matches))
			}
		})
	}
}

func TestCreateLeagueStoresRules(t *testing.T) {
	store := testutil.NewTestDB(t)
	handler := NewLeagueHandler(store, testutil.GetTestConfig())
	testutil.CreateTestOrganizer(t, store, "alice")

	body := `{"name":"Cup","team_names":"A,B,C","win_points":2,"tie_points":"0.5"}`
	w := httptest.NewRecorder()
	handler.CreateLeague(w, asOrganizer(testutil.MakeRequest("POST", "/api/leagues", body), "alice"))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.CreateLeagueResponse
	testutil.AssertJSON(t, w, &resp)

	l, err := store.GetLeague(t.Context(), resp.LeagueID)
	if err != nil {
		t.Fatalf("Failed to load league: %v", err)
	}
	want := league.Rules{WinPoints: 2, TiePoints: 0.5, LossPoints: 0}
	if l.Rules != want {
		t.Errorf("Expected rules %+v, got %+v", want, l.Rules)
	}
	if l.Owner != "alice" {
		t.Errorf("Expected owner alice, got %s", l.Owner)
	}
	if l.Visibility() != models.VisibilityPrivate {
		t.Errorf("New leagues should be private, got %s", l.Visibility())
	}
}

func TestCreateLeagueBlankPointsUseDefaults(t *testing.T) {
	store := testutil.NewTestDB(t)
	handler := NewLeagueHandler(store, testutil.GetTestConfig())
	testutil.CreateTestOrganizer(t, store, "alice")

	body := `{"name":"Cup","team_names":"A,B","win_points":"","tie_points":"","loss_points":""}`
	w := httptest.NewRecorder()
	handler.CreateLeague(w, asOrganizer(testutil.MakeRequest("POST", "/api/leagues", body), "alice"))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var resp models.CreateLeagueResponse
	testutil.AssertJSON(t, w, &resp)

	l, err := store.GetLeague(t.Context(), resp.LeagueID)
	if err != nil {
		t.Fatalf("Failed to load league: %v", err)
	}
	if l.Rules != league.DefaultRules() {
		t.Errorf("Expected default rules, got %+v", l.Rules)
	}
}

func TestCreateLeagueRequiresSession(t *testing.T) {
	handler := NewLeagueHandler(testutil.NewTestDB(t), testutil.GetTestConfig())

	w := httptest.NewRecorder()
	handler.CreateLeague(w, testutil.MakeRequest("POST", "/api/leagues", `{"name":"x","team_names":"A,B"}`))

	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestListLeagues(t *testing.T) {
	store := testutil.NewTestDB(t)
	handler := NewLeagueHandler(store, testutil.GetTestConfig())
	testutil.CreateTestOrganizer(t, store, "alice")
	testutil.CreateTestOrganizer(t, store, "bob")

	testutil.CreateTestLeague(t, store, "alice", "A", "B")
	testutil.CreateTestLeague(t, store, "alice", "C", "D")
	testutil.CreateTestLeague(t, store, "bob", "E", "F")

	t.Run("own leagues only", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ListLeagues(w, asOrganizer(testutil.MakeRequest("GET", "/api/leagues", nil), "alice"))

		testutil.AssertStatus(t, w, http.StatusOK)
		var leagues []models.League
		testutil.AssertJSON(t, w, &leagues)
		if len(leagues) != 2 {
			t.Fatalf("Expected 2 leagues, got %d", len(leagues))
		}
		for _, l := range leagues {
			if l.Owner != "alice" {
				t.Errorf("Listed league owned by %s", l.Owner)
			}
		}
	})

	t.Run("empty list is an array", func(t *testing.T) {
		testutil.CreateTestOrganizer(t, store, "carol")

		w := httptest.NewRecorder()
		handler.ListLeagues(w, asOrganizer(testutil.MakeRequest("GET", "/api/leagues", nil), "carol"))

		testutil.AssertStatus(t, w, http.StatusOK)
		if body := strings.TrimSpace(w.Body.String()); body != "[]" {
			t.Errorf("Expected [], got %s", body)
		}
	})
}

func TestGetLeague(t *testing.T) {
	store := testutil.NewTestDB(t)
	handler := NewLeagueHandler(store, testutil.GetTestConfig())
	testutil.CreateTestOrganizer(t, store, "alice")
	testutil.CreateTestOrganizer(t, store, "bob")

	l, matches := testutil.CreateTestLeague(t, store, "alice", "A", "B", "C", "D")
	testutil.ScoreTestMatch(t, store, testutil.FindMatch(t, matches, "A", "B"), 2, 0)

	tests := []struct {
		name           string
		user           string
		leagueID       string
		expectedStatus int
	}{
		{"owner", "alice", l.ID, http.StatusOK},
		{"other organizer", "bob", l.ID, http.StatusForbidden},
		{"unknown league", "alice", "does-not-exist", http.StatusNotFound},
		{"missing id", "alice", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.MakeRequest("GET", "/api/leagues/"+tt.leagueID, nil)
			req = asOrganizer(withURLParams(req, "id", tt.leagueID), tt.user)
			w := httptest.NewRecorder()

			handler.GetLeague(w, req)

			testutil.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusOK {
				return
			}

			var view models.LeagueView
			testutil.AssertJSON(t, w, &view)
			if view.League.ID != l.ID {
				t.Errorf("Expected league %s, got %s", l.ID, view.League.ID)
			}
			if len(view.Matchdays) != 3 || len(view.Rounds) != 3 {
				t.Errorf("Expected 3 matchdays and rounds, got %v and %d", view.Matchdays, len(view.Rounds))
			}
			for _, round := range view.Rounds {
				if len(round.Fixtures) != 2 {
					t.Errorf("Matchday %d has %d fixtures, expected 2", round.Matchday, len(round.Fixtures))
				}
			}
			if view.Played != 1 || view.Total != 6 {
				t.Errorf("Expected 1 of 6 played, got %d of %d", view.Played, view.Total)
			}
			if len(view.Standings) != 4 || view.Standings[0].Team != "A" || view.Standings[0].Points != 3 {
				t.Errorf("Expected A to lead with 3 points, got %+v", view.Standings)
			}
		})
	}
}

func TestPublishLeague(t *testing.T) {
	store := testutil.NewTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewLeagueHandler(store, cfg)
	testutil.CreateTestOrganizer(t, store, "alice")
	testutil.CreateTestOrganizer(t, store, "bob")

	l, _ := testutil.CreateTestLeague(t, store, "alice", "A", "B")

	publish := func(user string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("POST", "/api/leagues/"+l.ID+"/publish", nil)
		req = asOrganizer(withURLParams(req, "id", l.ID), user)
		w := httptest.NewRecorder()
		handler.PublishLeague(w, req)
		return w
	}

	t.Run("non-owner", func(t *testing.T) {
		testutil.AssertStatus(t, publish("bob"), http.StatusForbidden)
	})

	w := publish("alice")
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.PublishLeagueResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.ShareSlug == "" {
		t.Fatal("Expected share_slug")
	}
	if resp.ShareURL != cfg.BaseURL+"/shared/"+resp.ShareSlug {
		t.Errorf("Unexpected share_url %s", resp.ShareURL)
	}

	stored, err := store.GetLeague(t.Context(), l.ID)
	if err != nil {
		t.Fatalf("Failed to load league: %v", err)
	}
	if stored.Visibility() != models.VisibilityShared {
		t.Errorf("Expected shared visibility, got %s", stored.Visibility())
	}

	t.Run("publishing again keeps slug", func(t *testing.T) {
		w := publish("alice")
		testutil.AssertStatus(t, w, http.StatusOK)
		var again models.PublishLeagueResponse
		testutil.AssertJSON(t, w, &again)
		if again.ShareSlug != resp.ShareSlug {
			t.Errorf("Expected slug %s, got %s", resp.ShareSlug, again.ShareSlug)
		}
	})
}

func TestDeleteLeague(t *testing.T) {
	store := testutil.NewTestDB(t)
	handler := NewLeagueHandler(store, testutil.GetTestConfig())
	testutil.CreateTestOrganizer(t, store, "alice")
	testutil.CreateTestOrganizer(t, store, "bob")

	l, _ := testutil.CreateTestLeague(t, store, "alice", "A", "B", "C")

	remove := func(user string) *httptest.ResponseRecorder {
		req := testutil.MakeRequest("DELETE", "/api/leagues/"+l.ID, nil)
		req = asOrganizer(withURLParams(req, "id", l.ID), user)
		w := httptest.NewRecorder()
		handler.DeleteLeague(w, req)
		return w
	}

	testutil.AssertStatus(t, remove("bob"), http.StatusForbidden)
	testutil.AssertStatus(t, remove("alice"), http.StatusNoContent)

	if _, err := store.GetLeague(t.Context(), l.ID); !errors.Is(err, db.ErrLeagueNotFound) {
		t.Errorf("Expected league to be gone, got %v", err)
	}
	matches, err := store.ListMatches(t.Context(), l.ID)
	if err != nil {
		t.Fatalf("Failed to list matches: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("Expected fixtures to be deleted, got %d", len(matches))
	}

	testutil.AssertStatus(t, remove("alice"), http.StatusNotFound)
}

func TestShareURL(t *testing.T) {
	tests := []struct {
		base, slug, want string
	}{
		{"http://league.test", "abc", "http://league.test/shared/abc"},
		{"http://league.test/", "abc", "http://league.test/shared/abc"},
		{"https://example.com/app", "xyz", "https://example.com/app/shared/xyz"},
	}

	for _, tt := range tests {
		if got := ShareURL(tt.base, tt.slug); got != tt.want {
			t.Errorf("ShareURL(%q, %q) = %q, want %q", tt.base, tt.slug, got, tt.want)
		}
	}
}
