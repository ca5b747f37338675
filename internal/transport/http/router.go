package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	auditHandler "orgvet/internal/audit/handler"
	datasetHandler "orgvet/internal/dataset/handler"
	"orgvet/internal/platform/middleware"
	vettingHandler "orgvet/internal/vetting/handler"
)

// Deps carries everything the router mounts.
type Deps struct {
	Vetting   *vettingHandler.Handler
	Dataset   *datasetHandler.Handler
	Audit     *auditHandler.Handler
	Validator middleware.TokenValidator
	Logger    *slog.Logger
}

// NewRouter wires all endpoints. The vetting endpoint is public; the
// dataset admin surface and the audit trail require an operator token.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		d.Vetting.Register(r)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin(d.Validator, d.Logger))
		d.Dataset.Register(r)
		d.Audit.Register(r)
	})

	return r
}
