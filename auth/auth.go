// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	SessionCookieName = "quickly_league_session"
	SessionTTL        = 7 * 24 * time.Hour
)

var (
	ErrNoSession      = errors.New("no session")
	ErrInvalidSession = errors.New("invalid session")
	ErrSessionExpired = errors.New("session expired")
)

// Session is the signed payload carried in the session cookie
type Session struct {
	Username  string `json:"sub"`
	ExpiresAt int64  `json:"exp"`
}

// SignSession encodes a session as payload.signature, both URL-safe base64
func SignSession(s Session, secret string) (string, error) {
	payload, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to encode session: %w", err)
	}

	encoded := base64.RawURLEncoding.EncodeToString(payload)
	return encoded + "." + sign(encoded, secret), nil
}

// ParseSession verifies the signature and expiry of a cookie value
func ParseSession(value, secret string, now time.Time) (Session, error) {
	encoded, signature, ok := strings.Cut(value, ".")
	if !ok || encoded == "" || signature == "" {
		return Session{}, ErrInvalidSession
	}

	if !hmac.Equal([]byte(signature), []byte(sign(encoded, secret))) {
		return Session{}, ErrInvalidSession
	}

	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return Session{}, ErrInvalidSession
	}

	var s Session
	if err := json.Unmarshal(payload, &s); err != nil || s.Username == "" {
		return Session{}, ErrInvalidSession
	}

	if s.ExpiresAt <= now.Unix() {
		return Session{}, ErrSessionExpired
	}

	return s, nil
}

// SetSessionCookie starts a session for username
func SetSessionCookie(w http.ResponseWriter, username, secret string, secure bool) error {
	expiresAt := time.Now().Add(SessionTTL)
	value, err := SignSession(Session{Username: username, ExpiresAt: expiresAt.Unix()}, secret)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  expiresAt,
		MaxAge:   int(SessionTTL.Seconds()),
	})
	return nil
}

// ClearSessionCookie expires the session cookie in the browser
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

// SessionFromRequest returns the verified session on r, or ErrNoSession
// when the request carries no session cookie.
func SessionFromRequest(r *http.Request, secret string) (Session, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return Session{}, ErrNoSession
	}
	return ParseSession(cookie.Value, secret, time.Now())
}

func sign(payload, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// GenerateShareSlug creates a short, deterministic URL slug for a league
// Uses HMAC for determinism and base62 encoding for URL-friendliness
func GenerateShareSlug(leagueID, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(leagueID))
	sum := h.Sum(nil)

	// Take first 8 bytes for a shorter slug
	return base62Encode(sum[:8])
}

// base62Encode converts bytes to base62 (0-9, a-z, A-Z)
func base62Encode(data []byte) string {
	const base62Chars = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

	var num uint64
	for i := 0; i < len(data) && i < 8; i++ {
		num = num<<8 | uint64(data[i])
	}

	if num == 0 {
		return "0"
	}

	result := make([]byte, 0, 11) // max length for uint64
	for num > 0 {
		result = append(result, base62Chars[num%62])
		num /= 62
	}

	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}

	return string(result)
}
