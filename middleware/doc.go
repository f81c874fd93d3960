// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware and helper functions.

# Request Logging

The router installs chi's RequestID first, then:

	r.Use(middleware.WithRequestLogger) // zerolog logger tagged with request_id
	r.Use(middleware.WithLogging)       // one line per request
	r.Use(middleware.WithRecovery)      // panic → 500 with stack in the log

Handlers log through the request-scoped logger:

	log.Ctx(r.Context()).Error().Err(err).Msg("failed to load league")

WithLogging picks the level from the status: info below 400, warn for
4xx, error for 5xx.

# Authentication

RequireOrganizer verifies the session cookie and stores the username in
the context. Requests without a valid session get 401:

	r.With(middleware.RequireOrganizer(cfg.SessionSecret)).Get("/api/me", h.Me)

	username, _ := middleware.OrganizerFromContext(r.Context())

# CORS Middleware

Enable cross-origin requests from configured origins:

	r.Use(middleware.CORS(cfg.AllowedOrigins))

Listed origins are echoed with credentials. A "*" entry allows any
origin without credentials. Other origins get no CORS headers.

# JSON Helpers

Responses are rendered with unrolled/render:

	middleware.JSONResponse(w, http.StatusOK, data)
	middleware.ErrorResponse(w, http.StatusBadRequest, "message")

Parse JSON request bodies (limited to MaxBodyBytes):

	var req models.CreateLeagueRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
*/
package middleware
