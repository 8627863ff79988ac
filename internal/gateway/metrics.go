package gateway

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// Traffic: сколько запросов ушло на каждый бэкенд
	ForwardedTotal *prometheus.CounterVec

	// CORS: сколько preflight-запросов закрыто на шлюзе
	PreflightTotal prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	// Null Object Pattern — если рег не передан, используем локальный
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	return &Metrics{
		ForwardedTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "gateway_forwarded_requests_total",
			Help: "Total number of requests forwarded to backends.",
		}, []string{"route", "service"}),

		PreflightTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "gateway_preflight_requests_total",
			Help: "Total number of CORS preflight requests answered at the edge.",
		}),
	}
}
