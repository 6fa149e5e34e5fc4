// Package metrics defines the Prometheus instruments exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EventsCreated counts successfully committed events.
	EventsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "iph_events_created_total",
		Help: "Total number of events created",
	})

	// EventsDeleted counts deleted events.
	EventsDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "iph_events_deleted_total",
		Help: "Total number of events deleted",
	})

	// EventRejections counts event payloads rejected before commit,
	// labeled by rejection kind (missing_reference, rule_violation).
	EventRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "iph_event_rejections_total",
		Help: "Total number of event payloads rejected by validation",
	}, []string{"kind"})

	// HTTPRequestDuration observes request latency per route and status.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "iph_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	// DBQueryDuration observes storage operation latency.
	DBQueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "iph_db_query_duration_seconds",
		Help:    "Database operation duration in seconds",
		Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
	}, []string{"operation"})
)

// Rejection kinds for EventRejections.
const (
	RejectionMissingReference = "missing_reference"
	RejectionRuleViolation    = "rule_violation"
)
