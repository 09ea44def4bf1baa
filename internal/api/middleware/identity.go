package middleware

import (
	"context"
	"encoding/json"
	"net/http"
)

// UserIDHeader carries the authenticated user id, set by the upstream
// gateway. Requests that reach this service are already authenticated;
// only the identity is propagated.
const UserIDHeader = "X-User-ID"

type contextKey string

const userIDKey contextKey = "userID"

// RequireUser rejects requests without an identity header and stores
// the user id in the request context.
func RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(UserIDHeader)
		if userID == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{
				"error": "missing user identity",
			})
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// UserID returns the authenticated user id stored by RequireUser.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}
