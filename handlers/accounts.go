// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/danielhkuo/quickly-league/auth"
	"github.com/danielhkuo/quickly-league/cliparse"
	"github.com/danielhkuo/quickly-league/db"
	"github.com/danielhkuo/quickly-league/middleware"
	"github.com/danielhkuo/quickly-league/models"
	"github.com/rs/zerolog/log"
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,32}$`)

type AccountHandler struct {
	db  *db.DB
	cfg cliparse.Config
}

func NewAccountHandler(store *db.DB, cfg cliparse.Config) *AccountHandler {
	return &AccountHandler{db: store, cfg: cfg}
}

// Signup handles POST /api/signup
func (h *AccountHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	username := strings.TrimSpace(req.Username)
	if !usernamePattern.MatchString(username) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "username must be 3-32 letters, digits, '.', '_' or '-'")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if errors.Is(err, auth.ErrPasswordTooShort) {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to hash password")
		middleware.ErrorResponse(w, http.StatusBadRequest, "password cannot be used")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	org, err := h.db.CreateOrganizer(ctx, username, hash)
	if errors.Is(err, db.ErrUsernameTaken) {
		middleware.ErrorResponse(w, http.StatusConflict, "username already taken")
		return
	}
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to create organizer")
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	if !h.startSession(w, r, org.Username) {
		return
	}

	log.Ctx(r.Context()).Info().Str("organizer", org.Username).Msg("organizer signed up")

	middleware.JSONResponse(w, http.StatusCreated, models.OrganizerResponse{
		Username:  org.Username,
		CreatedAt: org.CreatedAt,
	})
}

// Login handles POST /api/login
func (h *AccountHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	org, err := h.db.GetOrganizer(ctx, strings.TrimSpace(req.Username))
	if err != nil && !errors.Is(err, db.ErrOrganizerNotFound) {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to load organizer")
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Same answer, and the same bcrypt work, for unknown users and wrong passwords
	var ok bool
	if err != nil {
		ok = auth.RejectPassword(req.Password)
	} else {
		ok = auth.VerifyPassword(org.PasswordHash, req.Password)
	}
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	if !h.startSession(w, r, org.Username) {
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.OrganizerResponse{
		Username:  org.Username,
		CreatedAt: org.CreatedAt,
	})
}

// Logout handles POST /api/logout
func (h *AccountHandler) Logout(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w, !h.cfg.IsDevelopment())
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/me
func (h *AccountHandler) Me(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.OrganizerFromContext(r.Context())
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Sign in required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), queryTimeout)
	defer cancel()

	org, err := h.db.GetOrganizer(ctx, username)
	if errors.Is(err, db.ErrOrganizerNotFound) {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Account no longer exists")
		return
	}
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to load organizer")
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.OrganizerResponse{
		Username:  org.Username,
		CreatedAt: org.CreatedAt,
	})
}

func (h *AccountHandler) startSession(w http.ResponseWriter, r *http.Request, username string) bool {
	if err := auth.SetSessionCookie(w, username, h.cfg.SessionSecret, !h.cfg.IsDevelopment()); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("failed to start session")
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to start session")
		return false
	}
	return true
}
