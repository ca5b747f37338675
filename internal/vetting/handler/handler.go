package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"orgvet/internal/vetting"
	"orgvet/pkg/httputil"
	"orgvet/pkg/requestcontext"
)

// Service defines the interface for vetting operations.
type Service interface {
	Vet(ctx context.Context, req vetting.Request) (*vetting.Report, error)
}

//go:generate mockgen -source=handler.go -destination=mocks/vetting-mocks.go -package=mocks Service

// Handler wires the vetting endpoint to the vetting service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a vetting handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts vetting endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/vet", h.HandleVet)
}

// VetRequest is the transport shape of a vetting request.
type VetRequest struct {
	OrgName       string `json:"orgName"`
	EIN           string `json:"ein,omitempty"`
	LookbackYears int    `json:"lookbackYears,omitempty"`
}

// HandleVet handles POST /vet requests.
func (h *Handler) HandleVet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	var req VetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.BadRequest(w, "invalid JSON body")
		return
	}
	if req.OrgName == "" {
		httputil.BadRequest(w, "orgName is required")
		return
	}

	report, err := h.service.Vet(ctx, vetting.Request{
		OrgName:       req.OrgName,
		EIN:           req.EIN,
		LookbackYears: req.LookbackYears,
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "vetting failed",
			"request_id", requestID,
			"org_name", req.OrgName,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "organization vetted",
		"request_id", requestID,
		"org_name", req.OrgName,
		"recommendation", report.Recommendation,
		"flags", len(report.Flags),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, report)
}
