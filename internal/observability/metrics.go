// Package observability exposes Prometheus metrics for the task API.
package observability

import "github.com/prometheus/client_golang/prometheus"

// Outcomes used as the "outcome" label of AuthEventsTotal.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

var (
	// RequestsTotal counts HTTP requests by method, route pattern and status code.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskapi_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// RequestDuration records HTTP request duration in seconds.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "taskapi_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// AuthEventsTotal counts register, login and authenticate attempts by outcome.
	AuthEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "taskapi_auth_events_total",
			Help: "Authentication events",
		},
		[]string{"event", "outcome"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		AuthEventsTotal,
	)
}

// RecordAuth increments AuthEventsTotal for the given event.
func RecordAuth(event, outcome string) {
	AuthEventsTotal.WithLabelValues(event, outcome).Inc()
}
