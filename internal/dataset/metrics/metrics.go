package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the dataset store.
type Metrics struct {
	// Refresh cycle outcomes by dataset: ok, rejected (integrity floor),
	// error (network/ceiling/disk).
	RefreshTotal *prometheus.CounterVec

	// Disk-cache fallbacks after a failed download.
	FallbackTotal *prometheus.CounterVec

	// Rows in the currently published generation.
	GenerationRows *prometheus.GaugeVec
}

// New creates a Metrics instance with all dataset metrics registered.
func New() *Metrics {
	return &Metrics{
		RefreshTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "orgvet_dataset_refresh_total",
			Help: "Dataset refresh cycles by dataset and outcome",
		}, []string{"dataset", "outcome"}),

		FallbackTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "orgvet_dataset_fallback_total",
			Help: "Disk-cache fallbacks after failed downloads",
		}, []string{"dataset"}),

		GenerationRows: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "orgvet_dataset_generation_rows",
			Help: "Row count of the active dataset generation",
		}, []string{"dataset"}),
	}
}

// IncRefresh records one refresh cycle outcome.
func (m *Metrics) IncRefresh(dataset, outcome string) {
	if m != nil {
		m.RefreshTotal.WithLabelValues(dataset, outcome).Inc()
	}
}

// IncFallback records a disk-cache fallback.
func (m *Metrics) IncFallback(dataset string) {
	if m != nil {
		m.FallbackTotal.WithLabelValues(dataset).Inc()
	}
}

// SetGenerationRows records the size of a freshly published generation.
func (m *Metrics) SetGenerationRows(dataset string, rows int) {
	if m != nil {
		m.GenerationRows.WithLabelValues(dataset).Set(float64(rows))
	}
}
