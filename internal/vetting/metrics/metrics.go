package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the vetting module.
type Metrics struct {
	// Vetting outcomes by recommendation.
	Recommendations *prometheus.CounterVec

	// Full vet latency including the litigation search.
	VetLatency prometheus.Histogram

	// Litigation searches that failed and degraded to unchecked.
	LitigationFailures prometheus.Counter
}

// New creates a Metrics instance with all vetting metrics registered.
func New() *Metrics {
	return &Metrics{
		Recommendations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "orgvet_vet_recommendations_total",
			Help: "Vetting outcomes by recommendation",
		}, []string{"recommendation"}),

		VetLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "orgvet_vet_duration_seconds",
			Help:    "Duration of a full vetting request",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		LitigationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "orgvet_vet_litigation_failures_total",
			Help: "Litigation searches that failed and were reported unchecked",
		}),
	}
}

// IncRecommendation records a vetting outcome.
func (m *Metrics) IncRecommendation(rec string) {
	if m != nil {
		m.Recommendations.WithLabelValues(rec).Inc()
	}
}

// ObserveVetLatency records the total vet duration.
func (m *Metrics) ObserveVetLatency(d time.Duration) {
	if m != nil {
		m.VetLatency.Observe(d.Seconds())
	}
}

// IncLitigationFailure records a degraded litigation search.
func (m *Metrics) IncLitigationFailure() {
	if m != nil {
		m.LitigationFailures.Inc()
	}
}
