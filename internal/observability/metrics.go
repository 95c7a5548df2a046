package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the tool surface
// and the upstream NWS client.
type Metrics struct {
	ToolCalls    *prometheus.CounterVec   // labels: tool, outcome={success,error}
	ToolDuration *prometheus.HistogramVec // labels: tool

	UpstreamRequests *prometheus.CounterVec   // labels: endpoint, outcome={success,transport_error,http_error,decode_error}
	UpstreamDuration *prometheus.HistogramVec // labels: endpoint
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ToolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_mcp",
			Name:      "tool_calls_total",
			Help:      "Tool invocations by tool name and outcome.",
		}, []string{"tool", "outcome"}),
		ToolDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_mcp",
			Name:      "tool_call_duration_seconds",
			Help:      "End-to-end tool invocation duration.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"tool"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_mcp",
			Name:      "upstream_requests_total",
			Help:      "NWS API requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_mcp",
			Name:      "upstream_request_duration_seconds",
			Help:      "NWS API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"endpoint"}),
	}

	prometheus.MustRegister(
		m.ToolCalls,
		m.ToolDuration,
		m.UpstreamRequests,
		m.UpstreamDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with an unregistered set to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ToolCalls:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_mcp", Name: "tool_calls_total"}, []string{"tool", "outcome"}),
		ToolDuration:     prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "weather_mcp", Name: "tool_call_duration_seconds"}, []string{"tool"}),
		UpstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "weather_mcp", Name: "upstream_requests_total"}, []string{"endpoint", "outcome"}),
		UpstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "weather_mcp", Name: "upstream_request_duration_seconds"}, []string{"endpoint"}),
	}
}
