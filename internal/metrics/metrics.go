package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors of the service on a private registry.
// A nil *Metrics records nothing.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	LifecycleOperations  *prometheus.CounterVec
	OperationDuration    *prometheus.HistogramVec
	VerificationOutcomes *prometheus.CounterVec
	NotificationFailures prometheus.Counter
	EventPublishFailures prometheus.Counter
}

// New registers the service collectors under the given prefix.
func New(prefix string) *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_http_request_duration_seconds",
				Help:    "Duration of HTTP requests in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		LifecycleOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_product_operations_total",
				Help: "Total number of product lifecycle operations by outcome",
			},
			[]string{"operation", "outcome"},
		),
		OperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    prefix + "_product_operation_duration_seconds",
				Help:    "Duration of product lifecycle operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		VerificationOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_verification_outcomes_total",
				Help: "Total number of verification evaluations by resulting status",
			},
			[]string{"status"},
		),
		NotificationFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_notification_failures_total",
				Help: "Total number of notifications that could not be recorded",
			},
		),
		EventPublishFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Name: prefix + "_event_publish_failures_total",
				Help: "Total number of product events that could not be published",
			},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// TrackOperation returns a function that records the duration and outcome of
// a lifecycle operation. Call it with the operation's final error.
func (m *Metrics) TrackOperation(operation string) func(err error) {
	start := time.Now()
	return func(err error) {
		if m == nil {
			return
		}
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		m.LifecycleOperations.WithLabelValues(operation, outcome).Inc()
		m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	}
}

// RecordVerification counts an evaluation outcome.
func (m *Metrics) RecordVerification(status string) {
	if m == nil {
		return
	}
	m.VerificationOutcomes.WithLabelValues(status).Inc()
}

// RecordNotificationFailure counts a notification that was not stored.
func (m *Metrics) RecordNotificationFailure() {
	if m == nil {
		return
	}
	m.NotificationFailures.Inc()
}

// RecordEventPublishFailure counts an event the broker did not accept.
func (m *Metrics) RecordEventPublishFailure() {
	if m == nil {
		return
	}
	m.EventPublishFailures.Inc()
}

// RecordRequest records one served HTTP request.
func (m *Metrics) RecordRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}
