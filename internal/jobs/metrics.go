package jobs

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts processed jobs by kind and outcome.
type Metrics struct {
	Processed *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Processed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "govpub_jobs_processed_total",
			Help: "Background jobs processed by kind and outcome",
		}, []string{"kind", "outcome"}),
	}
}

func (m *Metrics) observe(kind Kind, outcome string) {
	if m == nil {
		return
	}
	m.Processed.WithLabelValues(string(kind), outcome).Inc()
}
