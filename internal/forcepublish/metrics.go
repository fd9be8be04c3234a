package forcepublish

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomePublished = "published"
	outcomeRefused   = "refused"
	outcomeFailed    = "failed"
)

type Metrics struct {
	Editions *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Editions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "govpub_force_publish_editions_total",
			Help: "Editions processed by bulk force publish, by outcome",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) observe(outcome string) {
	if m == nil {
		return
	}
	m.Editions.WithLabelValues(outcome).Inc()
}
