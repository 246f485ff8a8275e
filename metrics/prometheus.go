package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	syncRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pling_sync_requests_total",
			Help: "Total number of requests sent to the pling server.",
		},
		[]string{"method", "endpoint", "status"},
	)
	syncRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pling_sync_request_duration_seconds",
			Help:    "Histogram of pling request durations.",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "endpoint", "status"},
	)
	syncRowsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pling_sync_rows_total",
			Help: "Rows processed per job, by outcome.",
		},
		[]string{"job", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(syncRequestsTotal)
	prometheus.MustRegister(syncRequestDuration)
	prometheus.MustRegister(syncRowsTotal)
}

func ObserveRequest(method, endpoint string, status int, duration time.Duration) {
	code := strconv.Itoa(status)
	syncRequestsTotal.WithLabelValues(method, endpoint, code).Inc()
	syncRequestDuration.WithLabelValues(method, endpoint, code).Observe(duration.Seconds())
}

func CountRows(job, outcome string, n int) {
	syncRowsTotal.WithLabelValues(job, outcome).Add(float64(n))
}

// MetricsHandler exposes the prometheus registry over HTTP.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
