package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"orgvet/pkg/requestcontext"
)

// TokenValidator validates admin bearer tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (*AdminClaims, error)
}

// AdminClaims holds the claims the admin surface cares about.
type AdminClaims struct {
	Subject string
}

// RequireAdmin guards operator endpoints (dataset refresh, audit reads)
// behind a bearer token.
func RequireAdmin(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), bearerPrefix)
			if !ok || token == "" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(r.Context(), "admin token rejected",
					"request_id", requestcontext.RequestID(r.Context()),
					"error", err,
				)
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			ctx := requestcontext.WithAdminSubject(r.Context(), claims.Subject)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
