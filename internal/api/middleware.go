package api

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const userIDKey contextKey = "user_id"

// anonymousUser is the progress owner when authentication is disabled.
const anonymousUser = "anonymous"

// auth verifies the Bearer token and stores the user ID in the request
// context. When no token service is configured requests pass through
// as the anonymous user.
func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.tokens == nil {
			next(w, r.WithContext(context.WithValue(r.Context(), userIDKey, anonymousUser)))
			return
		}

		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing bearer token")
			return
		}

		claims, err := s.tokens.ParseToken(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), userIDKey, claims.Subject)))
	}
}

// userID returns the authenticated user from the request context.
func userID(r *http.Request) string {
	if id, ok := r.Context().Value(userIDKey).(string); ok {
		return id
	}
	return anonymousUser
}

// requireProgress wraps a handler and returns 503 if the progress store is not configured.
func (s *Server) requireProgress(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.progress == nil {
			writeError(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Progress store not configured")
			return
		}
		next(w, r)
	}
}
