package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	AuditRecordsWritten prometheus.Counter
	AuditWriteFailures  prometheus.Counter
	AuditForwardDropped prometheus.Counter

	NotificationEvents *prometheus.CounterVec
	LiveConnections    prometheus.Gauge
	LiveEventsDropped  prometheus.Counter

	RequestDuration *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics on reg. Tests pass a fresh
// registry so parallel suites never collide on registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		AuditRecordsWritten: factory.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_audit_records_written_total",
			Help: "Total number of audit records appended to the store",
		}),
		AuditWriteFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_audit_write_failures_total",
			Help: "Audit record appends that failed and were dropped (logging is best-effort)",
		}),
		AuditForwardDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_audit_forward_dropped_total",
			Help: "Audit records not forwarded to Kafka because the producer buffer was full or the brokers were unreachable",
		}),
		NotificationEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "backoffice_notification_events_total",
			Help: "Live notification signals broadcast, by event name",
		}, []string{"event"}),
		LiveConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "backoffice_live_connections",
			Help: "Currently connected dashboard websocket sessions",
		}),
		LiveEventsDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "backoffice_live_events_dropped_total",
			Help: "Signals dropped for slow subscribers (recovered by the next resync)",
		}),
		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "backoffice_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}
