package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/planora/server/internal/api/problem"
	"github.com/planora/server/internal/auth"
)

type contextKey string

const userIDKey contextKey = "user_id"

// Auth validates the Authorization bearer token and places the caller's
// numeric user id in the request context. Handlers read it back with
// UserIDFromContext to stamp created_by/updated_by.
func Auth(manager *auth.JWTManager, env string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				writeUnauthorized(w, r, auth.ErrMissingToken, env)
				return
			}

			claims, err := manager.Validate(strings.TrimSpace(token))
			if err != nil {
				writeUnauthorized(w, r, err, env)
				return
			}

			userID, err := claims.UserID()
			if err != nil {
				writeUnauthorized(w, r, err, env)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, r *http.Request, err error, env string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="planora"`)
	problem.Write(w, r, http.StatusUnauthorized, "https://planora.dev/problems/unauthorized", "Unauthorized", err, env)
}

// UserIDFromContext returns the authenticated caller's user id, or 0 when the
// request did not pass through Auth.
func UserIDFromContext(ctx context.Context) int64 {
	if id, ok := ctx.Value(userIDKey).(int64); ok {
		return id
	}
	return 0
}

// WithUserID returns a context carrying the given user id. Test helper.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}
