package middleware

import (
	"context"
	"net/http"
	"strings"

	"salon-booking-api/internal/auth"
	"salon-booking-api/internal/utils"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// ClaimsFromContext returns the verified identity stashed by Auth.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*auth.Claims)
	return c, ok
}

// Auth verifies the bearer token and pushes its claims into the request
// context. Block state is checked at login only, not on every request.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				utils.JSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				utils.JSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			token := strings.TrimSpace(parts[1])
			if token == "" {
				utils.JSONError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			claims, err := auth.VerifyToken(token, secret)
			if err != nil {
				utils.JSONError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin rejects authenticated callers whose token lacks the admin role.
// Must run inside an Auth group.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		if !ok || !claims.IsAdmin {
			utils.JSONError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
