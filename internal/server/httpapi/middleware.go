package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/dbelyav/notekeep/internal/server/auth"
)

type ctxKey string

const userIDKey ctxKey = "userID"

// authenticate rejects requests without a valid bearer token and stashes the
// token's subject in the request context. Missing, malformed, expired and
// forged tokens all yield the same 401.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			respondError(w, r, http.StatusUnauthorized, "unauthorized")
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondError(w, r, http.StatusUnauthorized, "unauthorized")
			return
		}

		userID, err := auth.GetUserIDFromToken(parts[1], s.jwtSecret)
		if err != nil {
			respondError(w, r, http.StatusUnauthorized, "unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// callerID returns the authenticated user's id placed by authenticate.
func callerID(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok {
		return id
	}
	return ""
}
