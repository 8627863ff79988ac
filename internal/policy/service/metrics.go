package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// Сколько требований переведено в каждый статус
	ClaimTransitions *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	return &Metrics{
		ClaimTransitions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "claims_status_transitions_total",
			Help: "Total number of claim status transitions by target status.",
		}, []string{"status"}),
	}
}
