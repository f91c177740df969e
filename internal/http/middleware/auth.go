package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/dominik-hvln/zozoapp-sub000/internal/http/response"
	"github.com/dominik-hvln/zozoapp-sub000/internal/security"
)

type contextKey string

const userIDContextKey contextKey = "auth.user_id"

// RequireAuth verifies the Bearer token and stashes the guardian id in
// the request context. Handlers behind it read the id with
// UserIDFromContext.
func RequireAuth(tokens *security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token", nil)
				return
			}
			userID, err := tokens.Verify(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				response.Error(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "invalid or expired token", nil)
				return
			}
			ctx := context.WithValue(r.Context(), userIDContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func UserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(userIDContextKey).(uint)
	return id, ok
}
