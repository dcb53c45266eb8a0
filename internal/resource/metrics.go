package resource

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/simp-lee/hrdesk/internal/domain"
)

// Metrics records resource client operations. A nil *Metrics is a no-op.
type Metrics struct {
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
}

// NewMetrics registers the resource metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		operations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: "hrdesk",
			Subsystem: "resource",
			Name:      "operations_total",
			Help:      "Total number of resource client operations.",
		}, []string{"resource", "operation", "source", "outcome"}),
		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "hrdesk",
			Subsystem: "resource",
			Name:      "operation_duration_seconds",
			Help:      "Latency distribution for resource client operations.",
			Buckets: []float64{
				0.0005, 0.001, 0.005,
				0.01, 0.05,
				0.1, 0.25, 0.5,
				1, 2.5, 5, 10,
			},
		}, []string{"resource", "operation", "source"}),
	}
}

func (m *Metrics) observe(resource, op, source string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.operations.WithLabelValues(resource, op, source, outcome(err)).Inc()
	m.latency.WithLabelValues(resource, op, source).Observe(time.Since(started).Seconds())
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case domain.IsNotFound(err):
		return "not_found"
	case domain.IsValidation(err), domain.IsAlreadyExists(err):
		return "invalid"
	default:
		return "error"
	}
}
