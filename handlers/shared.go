// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielhkuo/quickly-league/cliparse"
	"github.com/danielhkuo/quickly-league/db"
	"github.com/danielhkuo/quickly-league/middleware"
	"github.com/danielhkuo/quickly-league/models"
	"github.com/danielhkuo/quickly-league/views"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// SharedHandler serves published leagues to anonymous viewers
type SharedHandler struct {
	db  *db.DB
	cfg cliparse.Config
}

func NewSharedHandler(store *db.DB, cfg cliparse.Config) *SharedHandler {
	return &SharedHandler{db: store, cfg: cfg}
}

// SharedLeagueView returns the view of the league published under slug,
// or db.ErrLeagueNotFound.
func (h *SharedHandler) SharedLeagueView(ctx context.Context, slug string) (models.LeagueView, error) {
	if slug == "" {
		return models.LeagueView{}, db.ErrLeagueNotFound
	}

	l, err := h.db.GetLeagueBySlug(ctx, slug)
	if err != nil {
		return models.LeagueView{}, err
	}
	return buildLeagueView(ctx, h.db, l)
}

// GetSharedLeague handles GET /api/shared/{slug}
func (h *SharedHandler) GetSharedLeague(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	slug := chi.URLParam(r, "slug")
	view, err := h.SharedLeagueView(ctx, slug)
	if errors.Is(err, db.ErrLeagueNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "League not found")
		return
	}
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("share_slug", slug).Msg("failed to load shared league")
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to load league")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, view)
}

// SharedLeaguePage handles GET /shared/{slug}
func (h *SharedHandler) SharedLeaguePage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	slug := chi.URLParam(r, "slug")
	view, err := h.SharedLeagueView(ctx, slug)
	if errors.Is(err, db.ErrLeagueNotFound) {
		w.WriteHeader(http.StatusNotFound)
		if err := views.NotFoundPage("This league does not exist or has not been published.").Render(ctx, w); err != nil {
			log.Ctx(r.Context()).Error().Err(err).Msg("failed to render page")
		}
		return
	}
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Str("share_slug", slug).Msg("failed to load shared league")
		http.Error(w, "Failed to load league", http.StatusInternalServerError)
		return
	}

	if err := views.LeaguePage(view, time.Now()).Render(ctx, w); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to render page")
	}
}
