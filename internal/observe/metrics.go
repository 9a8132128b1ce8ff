// Package observe provides application-wide observability primitives for
// Solvegrid: OpenTelemetry metrics, tracing, structured logging helpers, and
// HTTP middleware that ties them together.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can be
// scraped from the standard /metrics endpoint. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all Solvegrid metrics.
const meterName = "github.com/solvegrid/solvegrid"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// UpstreamRequestDuration tracks latency of NYT API requests.
	UpstreamRequestDuration metric.Float64Histogram

	// UpstreamRequests counts NYT API requests. Use with attributes:
	//   attribute.String("endpoint", ...), attribute.String("status", ...)
	UpstreamRequests metric.Int64Counter

	// UpstreamErrors counts failed NYT API requests by endpoint.
	UpstreamErrors metric.Int64Counter

	// ToolCalls counts MCP tool invocations. Use with attributes:
	//   attribute.String("tool", ...), attribute.String("status", ...)
	ToolCalls metric.Int64Counter

	// ToolCallDuration tracks MCP tool execution latency.
	ToolCallDuration metric.Float64Histogram

	// HTTPRequestDuration tracks HTTP request processing time for the
	// streamable-http listener. Use with attributes:
	//   attribute.String("method", ...), attribute.String("path", ...)
	HTTPRequestDuration metric.Float64Histogram
}

// latencyBuckets defines histogram bucket boundaries (in seconds) sized for
// single round-trips to the upstream API.
var latencyBuckets = []float64{
	0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.UpstreamRequestDuration, err = m.Float64Histogram("solvegrid.upstream.request.duration",
		metric.WithDescription("Latency of upstream NYT API requests."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.UpstreamRequests, err = m.Int64Counter("solvegrid.upstream.requests",
		metric.WithDescription("Total upstream NYT API requests by endpoint and status."),
	); err != nil {
		return nil, err
	}
	if met.UpstreamErrors, err = m.Int64Counter("solvegrid.upstream.errors",
		metric.WithDescription("Total failed upstream NYT API requests by endpoint."),
	); err != nil {
		return nil, err
	}
	if met.ToolCalls, err = m.Int64Counter("solvegrid.tool.calls",
		metric.WithDescription("Total MCP tool invocations by tool name and status."),
	); err != nil {
		return nil, err
	}
	if met.ToolCallDuration, err = m.Float64Histogram("solvegrid.tool.call.duration",
		metric.WithDescription("Latency of MCP tool execution."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.HTTPRequestDuration, err = m.Float64Histogram("solvegrid.http.request.duration",
		metric.WithDescription("HTTP request latency by method and path."),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// RecordUpstreamRequest records one upstream request with its duration and
// outcome. status is the HTTP status class or "error" for transport failures.
func (m *Metrics) RecordUpstreamRequest(ctx context.Context, endpoint, status string, d time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("endpoint", endpoint),
		attribute.String("status", status),
	)
	m.UpstreamRequests.Add(ctx, 1, attrs)
	m.UpstreamRequestDuration.Record(ctx, d.Seconds(),
		metric.WithAttributes(attribute.String("endpoint", endpoint)),
	)
}

// RecordUpstreamError records one failed upstream request.
func (m *Metrics) RecordUpstreamError(ctx context.Context, endpoint string) {
	m.UpstreamErrors.Add(ctx, 1,
		metric.WithAttributes(attribute.String("endpoint", endpoint)),
	)
}

// RecordToolCall records one MCP tool invocation with its duration and
// outcome ("ok" or "error").
func (m *Metrics) RecordToolCall(ctx context.Context, tool, status string, d time.Duration) {
	m.ToolCalls.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("tool", tool),
			attribute.String("status", status),
		),
	)
	m.ToolCallDuration.Record(ctx, d.Seconds(),
		metric.WithAttributes(attribute.String("tool", tool)),
	)
}
