package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the dashboard service.
// Metrics are organized by subsystem: HTTP endpoints, fallback substitution,
// upstream bibliographic requests, and LLM operations. All counters and
// histograms are registered with the given registerer via promauto.
type Metrics struct {
	// EndpointRequestsTotal counts API requests, labeled by endpoint and status code.
	EndpointRequestsTotal *prometheus.CounterVec

	// EndpointDuration observes API request duration in seconds, labeled by endpoint.
	EndpointDuration *prometheus.HistogramVec

	// FallbacksServed counts responses answered from static fallback data, labeled by endpoint.
	FallbacksServed *prometheus.CounterVec

	// UpstreamRequestsTotal counts requests to upstream APIs, labeled by source and endpoint.
	UpstreamRequestsTotal *prometheus.CounterVec

	// UpstreamRequestsFailed counts failed upstream requests, labeled by source, endpoint, and error type.
	UpstreamRequestsFailed *prometheus.CounterVec

	// UpstreamRequestDuration observes upstream request duration in seconds.
	UpstreamRequestDuration *prometheus.HistogramVec

	// LLMRequestsTotal counts LLM API requests, labeled by operation and model.
	LLMRequestsTotal *prometheus.CounterVec

	// LLMRequestsFailed counts failed LLM API requests, labeled by operation, model, and error type.
	LLMRequestsFailed *prometheus.CounterVec

	// LLMRequestDuration observes LLM API request duration in seconds, labeled by operation and model.
	LLMRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates a new Metrics instance with all metrics initialized and
// registered with reg. The namespace is used as a prefix for all metric
// names. Passing prometheus.DefaultRegisterer wires the metrics into the
// default /metrics exposition; tests pass a fresh registry.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		// Endpoints
		EndpointRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "endpoint_requests_total",
			Help:      "Total number of API requests by endpoint and status",
		}, []string{"endpoint", "status"}),
		EndpointDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "endpoint_duration_seconds",
			Help:      "Duration of API requests in seconds by endpoint",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"endpoint"}),
		FallbacksServed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fallbacks_served_total",
			Help:      "Total number of responses served from static fallback data by endpoint",
		}, []string{"endpoint"}),

		// Upstream sources
		UpstreamRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Total number of requests to upstream APIs",
		}, []string{"source", "endpoint"}),
		UpstreamRequestsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_failed_total",
			Help:      "Total number of failed requests to upstream APIs",
		}, []string{"source", "endpoint", "error_type"}),
		UpstreamRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of requests to upstream APIs in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"source", "endpoint"}),

		// LLM
		LLMRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_requests_total",
			Help:      "Total number of LLM requests by operation",
		}, []string{"operation", "model"}),
		LLMRequestsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "llm_requests_failed_total",
			Help:      "Total number of failed LLM requests by operation",
		}, []string{"operation", "model", "error_type"}),
		LLMRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "llm_request_duration_seconds",
			Help:      "Duration of LLM requests in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		}, []string{"operation", "model"}),
	}
}

// RecordEndpointRequest records a completed API request.
func (m *Metrics) RecordEndpointRequest(endpoint, status string, durationSeconds float64) {
	m.EndpointRequestsTotal.WithLabelValues(endpoint, status).Inc()
	m.EndpointDuration.WithLabelValues(endpoint).Observe(durationSeconds)
}

// RecordFallbackServed records a response answered from fallback data.
func (m *Metrics) RecordFallbackServed(endpoint string) {
	m.FallbacksServed.WithLabelValues(endpoint).Inc()
}

// RecordUpstreamRequest records a request to an upstream API.
func (m *Metrics) RecordUpstreamRequest(source, endpoint string, durationSeconds float64) {
	m.UpstreamRequestsTotal.WithLabelValues(source, endpoint).Inc()
	m.UpstreamRequestDuration.WithLabelValues(source, endpoint).Observe(durationSeconds)
}

// RecordUpstreamRequestFailed records a failed request to an upstream API.
func (m *Metrics) RecordUpstreamRequestFailed(source, endpoint, errorType string) {
	m.UpstreamRequestsFailed.WithLabelValues(source, endpoint, errorType).Inc()
}

// RecordLLMRequest records an LLM request.
func (m *Metrics) RecordLLMRequest(operation, model string, durationSeconds float64) {
	m.LLMRequestsTotal.WithLabelValues(operation, model).Inc()
	m.LLMRequestDuration.WithLabelValues(operation, model).Observe(durationSeconds)
}

// RecordLLMRequestFailed records a failed LLM request.
func (m *Metrics) RecordLLMRequestFailed(operation, model, errorType string) {
	m.LLMRequestsFailed.WithLabelValues(operation, model, errorType).Inc()
}
