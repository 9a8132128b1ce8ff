package observe

import (
	"context"
	"testing"
	"time"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// newTestMetrics returns a Metrics instance backed by a ManualReader for
// programmatic metric inspection.
func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m, reader
}

// collect gathers all metric data from the reader.
func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	return rm
}

// findMetric searches for a metric by name across all scope metrics.
func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestNewMetrics_CreatesWithoutError(t *testing.T) {
	m, _ := newTestMetrics(t)
	if m == nil {
		t.Fatal("NewMetrics returned nil")
	}
}

func TestRecordUpstreamRequest(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordUpstreamRequest(ctx, "stats", "2xx", 150*time.Millisecond)
	m.RecordUpstreamRequest(ctx, "puzzles", "2xx", 320*time.Millisecond)

	rm := collect(t, reader)

	counter := findMetric(rm, "solvegrid.upstream.requests")
	if counter == nil {
		t.Fatal("upstream requests counter not found")
	}
	sum, ok := counter.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("upstream requests counter is %T, want Sum[int64]", counter.Data)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	if total != 2 {
		t.Errorf("total upstream requests = %d, want 2", total)
	}

	hist := findMetric(rm, "solvegrid.upstream.request.duration")
	if hist == nil {
		t.Fatal("upstream request duration histogram not found")
	}
	h, ok := hist.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatalf("duration metric is %T, want Histogram[float64]", hist.Data)
	}
	if len(h.DataPoints) == 0 {
		t.Fatal("duration histogram has no data points")
	}
}

func TestRecordUpstreamError(t *testing.T) {
	m, reader := newTestMetrics(t)
	m.RecordUpstreamError(context.Background(), "detail")

	rm := collect(t, reader)
	counter := findMetric(rm, "solvegrid.upstream.errors")
	if counter == nil {
		t.Fatal("upstream errors counter not found")
	}
	sum, ok := counter.Data.(metricdata.Sum[int64])
	if !ok || len(sum.DataPoints) == 0 {
		t.Fatalf("unexpected errors counter data: %+v", counter.Data)
	}
	if sum.DataPoints[0].Value != 1 {
		t.Errorf("upstream errors = %d, want 1", sum.DataPoints[0].Value)
	}
}

func TestRecordToolCall(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordToolCall(ctx, "get_solve_stats", "ok", 200*time.Millisecond)
	m.RecordToolCall(ctx, "get_solve_stats", "error", 50*time.Millisecond)
	m.RecordToolCall(ctx, "get_puzzle_details", "ok", 180*time.Millisecond)

	rm := collect(t, reader)

	counter := findMetric(rm, "solvegrid.tool.calls")
	if counter == nil {
		t.Fatal("tool calls counter not found")
	}
	sum, ok := counter.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("tool calls counter is %T, want Sum[int64]", counter.Data)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	if total != 3 {
		t.Errorf("total tool calls = %d, want 3", total)
	}

	if findMetric(rm, "solvegrid.tool.call.duration") == nil {
		t.Fatal("tool call duration histogram not found")
	}
}
