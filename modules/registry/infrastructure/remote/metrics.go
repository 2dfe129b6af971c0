package remote

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type clientMetrics struct {
	requestsTotal *prometheus.CounterVec
	inFlight      prometheus.Gauge
}

var metricsSingleton = sync.OnceValue(func() *clientMetrics {
	return &clientMetrics{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "registry",
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Total number of requests issued to the registration backend.",
		}, []string{"method", "status"}),
		inFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: "registry",
			Subsystem: "backend",
			Name:      "in_flight_requests",
			Help:      "Current number of in-flight backend requests.",
		}),
	}
})

func getMetrics() *clientMetrics {
	return metricsSingleton()
}
