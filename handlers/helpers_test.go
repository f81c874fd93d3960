// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"

	"github.com/danielhkuo/quickly-league/middleware"
	"github.com/go-chi/chi/v5"
)

// withURLParams sets chi path parameters as the router would.
// params alternate key, value.
func withURLParams(req *http.Request, params ...string) *http.Request {
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(params); i += 2 {
		rctx.URLParams.Add(params[i], params[i+1])
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// asOrganizer marks the request as signed in, as RequireOrganizer does
func asOrganizer(req *http.Request, username string) *http.Request {
	return req.WithContext(middleware.WithOrganizer(req.Context(), username))
}
