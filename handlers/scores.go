// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielhkuo/quickly-league/db"
	"github.com/danielhkuo/quickly-league/middleware"
	"github.com/danielhkuo/quickly-league/models"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// SubmitScore handles PUT /api/leagues/{id}/matches/{matchID}/score
// Both scores are required; submitting again overwrites the result.
func (h *LeagueHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	l, ok := h.ownedLeague(ctx, w, r)
	if !ok {
		return
	}

	var req models.SubmitScoreRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Score1 == nil || req.Score2 == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "score1 and score2 are both required")
		return
	}
	if *req.Score1 < 0 || *req.Score2 < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "scores cannot be negative")
		return
	}
	if *req.Score1 > MaxScore || *req.Score2 > MaxScore {
		middleware.ErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("scores must be at most %d", MaxScore))
		return
	}

	matchID := chi.URLParam(r, "matchID")
	match, err := h.db.SetMatchScore(ctx, l.ID, matchID, *req.Score1, *req.Score2)
	if errors.Is(err, db.ErrMatchNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Match not found")
		return
	}
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("match_id", matchID).Msg("failed to record score")
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record score")
		return
	}

	view, err := buildLeagueView(ctx, h.db, l)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("league_id", l.ID).Msg("failed to recompute standings")
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to compute standings")
		return
	}

	log.Ctx(r.Context()).Info().
		Str("league_id", l.ID).
		Str("match_id", match.ID).
		Int("score1", *match.Score1).
		Int("score2", *match.Score2).
		Msg("score recorded")

	middleware.JSONResponse(w, http.StatusOK, models.SubmitScoreResponse{
		Match:     match,
		Standings: view.Standings,
	})
}
