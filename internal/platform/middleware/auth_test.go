package middleware

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"orgvet/pkg/requestcontext"
)

type stubValidator struct {
	claims *AdminClaims
	err    error
}

func (v stubValidator) ValidateToken(string) (*AdminClaims, error) {
	return v.claims, v.err
}

func protected(validator TokenValidator) (http.Handler, *string) {
	var seenSubject string
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenSubject = requestcontext.AdminSubject(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return RequireAdmin(validator, logger)(next), &seenSubject
}

func TestRequireAdminMissingHeader(t *testing.T) {
	h, _ := protected(stubValidator{})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/datasets/refresh", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdminNonBearerScheme(t *testing.T) {
	h, _ := protected(stubValidator{})
	req := httptest.NewRequest(http.MethodPost, "/datasets/refresh", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdminRejectedToken(t *testing.T) {
	h, _ := protected(stubValidator{err: errors.New("invalid token")})
	req := httptest.NewRequest(http.MethodPost, "/datasets/refresh", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdminPutsSubjectInContext(t *testing.T) {
	h, subject := protected(stubValidator{claims: &AdminClaims{Subject: "ops@example.org"}})
	req := httptest.NewRequest(http.MethodPost, "/datasets/refresh", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ops@example.org", *subject)
}
