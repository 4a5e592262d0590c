package portalapi

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "newsportal",
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Requests made to the portal API, by endpoint and status class",
		},
		[]string{"endpoint", "method", "status"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "newsportal",
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Duration of requests made to the portal API",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
)

func observeRequest(endpoint, method, status string, elapsed time.Duration) {
	requestsTotal.WithLabelValues(endpoint, method, status).Inc()
	requestDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}
