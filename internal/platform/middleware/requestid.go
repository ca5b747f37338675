package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"orgvet/pkg/requestcontext"
)

// RequestID assigns every request a UUID, honoring an inbound X-Request-ID
// so IDs correlate across services.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := requestcontext.WithRequestID(r.Context(), id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
