// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides organizer sessions, password hashing, and share slugs.

# Sessions

Organizers authenticate with a signed session cookie. The cookie value is
a base64 JSON payload and its HMAC-SHA256 signature, joined by a dot:

	if err := auth.SetSessionCookie(w, username, cfg.SessionSecret, !cfg.IsDevelopment()); err != nil {
		// handle error
	}

	s, err := auth.SessionFromRequest(r, cfg.SessionSecret)
	switch {
	case errors.Is(err, auth.ErrNoSession):
		// anonymous
	case err != nil:
		// tampered or expired
	}

Sessions are stateless. Logging out clears the cookie; a copied cookie
stays valid until it expires (SessionTTL).

# Passwords

HashPassword and VerifyPassword wrap bcrypt. Passwords shorter than
MinPasswordLength are rejected before hashing.

# Share Slugs

GenerateShareSlug derives a short, deterministic, URL-safe slug from the
league ID:

	slug := auth.GenerateShareSlug(leagueID, cfg.ShareSlugSalt)
	// Example: "3kTMd9xQp2A"

Properties:
  - Alphanumeric only (base62: 0-9, a-z, A-Z)
  - Deterministic (same league ID + salt → same slug)
  - 11 characters or fewer

# Security Notes

  - Signatures are compared with hmac.Equal (constant time)
  - Secrets come from configuration and are never logged
*/
package auth
