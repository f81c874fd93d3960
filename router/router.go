// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"time"

	"github.com/danielhkuo/quickly-league/cliparse"
	"github.com/danielhkuo/quickly-league/db"
	"github.com/danielhkuo/quickly-league/handlers"
	"github.com/danielhkuo/quickly-league/mcpserver"
	"github.com/danielhkuo/quickly-league/middleware"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Version is reported by the MCP server
const Version = "1.0.0"

// requestTimeout bounds API and page requests
const requestTimeout = 10 * time.Second

func NewRouter(store *db.DB, cfg cliparse.Config) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.WithRequestLogger)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithRecovery)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Unknown routes get the JSON error envelope
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		middleware.ErrorResponse(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		middleware.ErrorResponse(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(store, cfg)
	leagueHandler := handlers.NewLeagueHandler(store, cfg)
	sharedHandler := handlers.NewSharedHandler(store, cfg)

	requireOrganizer := middleware.RequireOrganizer(cfg.SessionSecret)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(chimw.Timeout(requestTimeout))

		// Accounts
		r.Post("/signup", accountHandler.Signup)
		r.Post("/login", accountHandler.Login)
		r.Post("/logout", accountHandler.Logout)
		r.With(requireOrganizer).Get("/me", accountHandler.Me)

		// League management (organizer only)
		r.Route("/leagues", func(r chi.Router) {
			r.Use(requireOrganizer)

			r.Post("/", leagueHandler.CreateLeague)
			r.Get("/", leagueHandler.ListLeagues)
			r.Get("/{id}", leagueHandler.GetLeague)
			r.Delete("/{id}", leagueHandler.DeleteLeague)
			r.Post("/{id}/publish", leagueHandler.PublishLeague)
			r.Put("/{id}/matches/{matchID}/score", leagueHandler.SubmitScore)
		})

		// Published leagues (public)
		r.Get("/shared/{slug}", sharedHandler.GetSharedLeague)
	})

	r.With(chimw.Timeout(requestTimeout)).Get("/shared/{slug}", sharedHandler.SharedLeaguePage)

	// Read-only MCP tools over published leagues
	r.Handle("/mcp", mcpserver.NewHandler(mcpserver.NewServer(sharedHandler, Version)))

	// Root endpoint
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-league API v1"))
	})

	return r
}
