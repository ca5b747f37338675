package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"orgvet/internal/dataset"
	"orgvet/pkg/httputil"
	"orgvet/pkg/requestcontext"
)

// Store defines the interface for dataset administration.
type Store interface {
	Refresh(ctx context.Context, target dataset.Source) error
	Status() dataset.Status
}

//go:generate mockgen -source=handler.go -destination=mocks/dataset-mocks.go -package=mocks Store

// Handler exposes the operator surface of the dataset store. Both routes
// sit behind the admin middleware; refresh hits government servers and is
// not something anonymous callers get to trigger.
type Handler struct {
	store  Store
	logger *slog.Logger
}

func New(store Store, logger *slog.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

// Register mounts dataset admin endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/datasets/refresh", h.HandleRefresh)
	r.Get("/datasets/status", h.HandleStatus)
}

// RefreshRequest selects which dataset(s) to refresh. Empty means all.
type RefreshRequest struct {
	Target string `json:"target,omitempty"`
}

// HandleRefresh handles POST /datasets/refresh requests.
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RefreshRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httputil.BadRequest(w, "invalid JSON body")
			return
		}
	}
	target, ok := dataset.ParseSource(req.Target)
	if !ok {
		httputil.BadRequest(w, "target must be one of irs, ofac, all")
		return
	}

	if err := h.store.Refresh(ctx, target); err != nil {
		var cooldown *dataset.CooldownError
		if !errors.As(err, &cooldown) {
			h.logger.ErrorContext(ctx, "dataset refresh failed",
				"request_id", requestcontext.RequestID(ctx),
				"operator", requestcontext.AdminSubject(ctx),
				"target", string(target),
				"error", err,
			)
		}
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "dataset refresh completed",
		"request_id", requestcontext.RequestID(ctx),
		"operator", requestcontext.AdminSubject(ctx),
		"target", string(target),
	)
	httputil.WriteJSON(w, http.StatusOK, h.store.Status())
}

// HandleStatus handles GET /datasets/status requests.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, h.store.Status())
}
