// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/danielhkuo/quickly-league/auth"
	"github.com/danielhkuo/quickly-league/cliparse"
	"github.com/danielhkuo/quickly-league/db"
	"github.com/danielhkuo/quickly-league/league"
	"github.com/danielhkuo/quickly-league/middleware"
	"github.com/danielhkuo/quickly-league/models"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// Limits on league creation input
const (
	MinTeams          = 2
	MaxTeams          = 64
	MaxNameLength     = 100
	MaxTeamNameLength = 60
	MaxScore          = 9999
)

type LeagueHandler struct {
	db  *db.DB
	cfg cliparse.Config
}

func NewLeagueHandler(store *db.DB, cfg cliparse.Config) *LeagueHandler {
	return &LeagueHandler{db: store, cfg: cfg}
}

// CreateLeague handles POST /api/leagues
func (h *LeagueHandler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.OrganizerFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Sign in required")
		return
	}

	var req models.CreateLeagueRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	name := strings.TrimSpace(req.Name)
	if name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		middleware.ErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("name must be at most %d characters", MaxNameLength))
		return
	}

	teams := league.ParseTeamNames(req.TeamNames)
	if len(teams) < MinTeams {
		middleware.ErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("at least %d teams are required", MinTeams))
		return
	}
	if len(teams) > MaxTeams {
		middleware.ErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("at most %d teams are allowed", MaxTeams))
		return
	}
	for _, team := range teams {
		if utf8.RuneCountInString(team) > MaxTeamNameLength {
			middleware.ErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("team names must be at most %d characters", MaxTeamNameLength))
			return
		}
	}

	rules, err := league.ParseRules(req.WinPoints.String(), req.TiePoints.String(), req.LossPoints.String())
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	fixtures := league.GenerateSchedule(teams)

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	l, matches, err := h.db.CreateLeague(ctx, models.League{Name: name, Owner: owner, Rules: rules}, fixtures)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to create league")
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create league")
		return
	}

	log.Ctx(r.Context()).Info().
		Str("league_id", l.ID).
		Int("teams", len(teams)).
		Int("matches", len(matches)).
		Msg("league created")

	middleware.JSONResponse(w, http.StatusCreated, models.CreateLeagueResponse{
		LeagueID:   l.ID,
		TeamCount:  len(teams),
		MatchCount: len(matches),
		Matchdays:  len(league.Matchdays(fixtures)),
	})
}

// ListLeagues handles GET /api/leagues
func (h *LeagueHandler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	owner, ok := middleware.OrganizerFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Sign in required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	leagues, err := h.db.ListLeaguesByOwner(ctx, owner)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to list leagues")
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, leagues)
}

// GetLeague handles GET /api/leagues/{id}
// Returns the league with fixtures grouped by matchday and current standings
func (h *LeagueHandler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	l, ok := h.ownedLeague(ctx, w, r)
	if !ok {
		return
	}

	view, err := buildLeagueView(ctx, h.db, l)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("league_id", l.ID).Msg("failed to build league view")
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load league")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, view)
}

// PublishLeague handles POST /api/leagues/{id}/publish
// Assigns a share slug; publishing again returns the existing one
func (h *LeagueHandler) PublishLeague(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	l, ok := h.ownedLeague(ctx, w, r)
	if !ok {
		return
	}

	slug, err := h.db.PublishLeague(ctx, l.ID, auth.GenerateShareSlug(l.ID, h.cfg.ShareSlugSalt))
	if errors.Is(err, db.ErrLeagueNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "League not found")
		return
	}
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("league_id", l.ID).Msg("failed to publish league")
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to publish league")
		return
	}

	log.Ctx(r.Context()).Info().Str("league_id", l.ID).Str("share_slug", slug).Msg("league published")

	middleware.JSONResponse(w, http.StatusOK, models.PublishLeagueResponse{
		ShareSlug: slug,
		ShareURL:  ShareURL(h.cfg.BaseURL, slug),
	})
}

// DeleteLeague handles DELETE /api/leagues/{id}
func (h *LeagueHandler) DeleteLeague(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	l, ok := h.ownedLeague(ctx, w, r)
	if !ok {
		return
	}

	err := h.db.DeleteLeague(ctx, l.ID)
	if err != nil && !errors.Is(err, db.ErrLeagueNotFound) {
		log.Ctx(r.Context()).Error().Err(err).Str("league_id", l.ID).Msg("failed to delete league")
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete league")
		return
	}

	log.Ctx(r.Context()).Info().Str("league_id", l.ID).Msg("league deleted")
	w.WriteHeader(http.StatusNoContent)
}

// ownedLeague loads the {id} league and checks the caller owns it. On
// failure the error response has been written.
func (h *LeagueHandler) ownedLeague(ctx context.Context, w http.ResponseWriter, r *http.Request) (models.League, bool) {
	owner, ok := middleware.OrganizerFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Sign in required")
		return models.League{}, false
	}

	leagueID := chi.URLParam(r, "id")
	if leagueID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "league id is required")
		return models.League{}, false
	}

	l, err := h.db.GetLeague(ctx, leagueID)
	if errors.Is(err, db.ErrLeagueNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "League not found")
		return models.League{}, false
	}
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("league_id", leagueID).Msg("failed to load league")
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return models.League{}, false
	}

	if l.Owner != owner {
		log.Ctx(r.Context()).Warn().Str("league_id", leagueID).Msg("league access denied")
		middleware.ErrorResponse(w, http.StatusForbidden, "You do not own this league")
		return models.League{}, false
	}

	return l, true
}

// ShareURL builds the public page URL for a share slug
func ShareURL(baseURL, slug string) string {
	return strings.TrimRight(baseURL, "/") + "/shared/" + slug
}
