package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestCounter counts HTTP requests by status code, method, and path.
	RequestCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pasco_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"status", "method", "path"},
	)

	// RequestDuration measures HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pasco_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status", "method", "path"},
	)

	// AttemptsCreated counts quiz attempts created, by scope ("paper" or "subject").
	AttemptsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pasco_quiz_attempts_created_total",
			Help: "Total number of quiz attempts created",
		},
		[]string{"scope"},
	)

	// AttemptsSubmitted counts graded submissions, by outcome ("ok", "rejected").
	AttemptsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pasco_quiz_attempts_submitted_total",
			Help: "Total number of quiz attempt submissions",
		},
		[]string{"outcome"},
	)
)
