package notifications

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Queued *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Queued: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "govpub_mails_queued_total",
			Help: "Notification emails queued for delivery, by kind",
		}, []string{"kind"}),
	}
}

func (m *Metrics) observe(kind string) {
	if m == nil {
		return
	}
	m.Queued.WithLabelValues(kind).Inc()
}
