package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "athena_bookings_created_total",
		Help: "Fresh bookings written to the store.",
	})

	IdempotentHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "athena_bookings_idempotent_hits_total",
		Help: "Create calls answered from an existing pending booking.",
	})

	BookingsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "athena_bookings_expired_total",
		Help: "Bookings removed because their validity window elapsed.",
	})

	Lookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "athena_booking_lookups_total",
		Help: "Identifier lookups by kind and outcome.",
	}, []string{"kind", "outcome"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "athena_http_request_duration_seconds",
		Help:    "HTTP request latency by method, path and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)
