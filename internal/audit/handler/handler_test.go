package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orgvet/internal/audit"
)

func newRouter(t *testing.T, events int) http.Handler {
	t.Helper()
	store := audit.NewInMemoryStore(1000)
	pub := audit.NewPublisher(store)
	for i := 0; i < events; i++ {
		require.NoError(t, store.Append(context.Background(), audit.Event{
			OrgName:        fmt.Sprintf("org-%d", i),
			Recommendation: "CLEAN",
		}))
	}

	h := New(pub, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func TestHandleListDefaultLimit(t *testing.T) {
	router := newRouter(t, 5)

	req := httptest.NewRequest(http.MethodGet, "/audit/events", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Events []audit.Event `json:"events"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Events, 5)
	assert.Equal(t, "org-4", body.Events[0].OrgName)
}

func TestHandleListWithLimit(t *testing.T) {
	router := newRouter(t, 5)

	req := httptest.NewRequest(http.MethodGet, "/audit/events?limit=2", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		Events []audit.Event `json:"events"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Len(t, body.Events, 2)
}

func TestHandleListInvalidLimit(t *testing.T) {
	router := newRouter(t, 0)

	for _, raw := range []string{"0", "-1", "ten"} {
		req := httptest.NewRequest(http.MethodGet, "/audit/events?limit="+raw, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, raw)
	}
}
