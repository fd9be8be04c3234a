package bulkupload

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Uploads *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Uploads: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "govpub_bulk_uploads_total",
			Help: "Bulk upload steps by outcome (extracted, rejected, saved)",
		}, []string{"outcome"}),
	}
}

func (m *Metrics) observe(outcome string) {
	if m == nil {
		return
	}
	m.Uploads.WithLabelValues(outcome).Inc()
}
