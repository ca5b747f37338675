package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"orgvet/internal/audit"
	"orgvet/pkg/httputil"
)

const defaultLimit = 100

// Handler exposes the audit trail read-only to operators.
type Handler struct {
	publisher *audit.Publisher
	logger    *slog.Logger
}

func New(publisher *audit.Publisher, logger *slog.Logger) *Handler {
	return &Handler{publisher: publisher, logger: logger}
}

// Register mounts audit endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/audit/events", h.HandleList)
}

// HandleList handles GET /audit/events requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	limit := defaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			httputil.BadRequest(w, "limit must be a positive integer")
			return
		}
		limit = n
	}

	events, err := h.publisher.ListRecent(r.Context(), limit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"events": events})
}
