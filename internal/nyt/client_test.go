package nyt

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/solvegrid/solvegrid/internal/observe"
)

// newTestClient builds a Client pointed at a httptest server.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New("NYT-S=test-session",
		WithBaseURL(srv.URL),
		WithTimeout(5*time.Second),
	)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNew_EmptyCookie(t *testing.T) {
	t.Parallel()
	if _, err := New(""); err == nil {
		t.Fatal("expected error for empty cookie, got nil")
	}
}

func TestGet_SendsAuthHeaders(t *testing.T) {
	t.Parallel()
	var gotCookie, gotUA, gotAccept string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCookie = r.Header.Get("Cookie")
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`{}`))
	}))

	if _, err := c.SolveStats(context.Background()); err != nil {
		t.Fatalf("SolveStats: %v", err)
	}
	if gotCookie != "NYT-S=test-session" {
		t.Errorf("Cookie header = %q, want the session cookie", gotCookie)
	}
	if gotUA != defaultUserAgent {
		t.Errorf("User-Agent = %q, want %q", gotUA, defaultUserAgent)
	}
	if gotAccept != "application/json" {
		t.Errorf("Accept = %q, want application/json", gotAccept)
	}
}

func TestSolveStats_ParsesBody(t *testing.T) {
	t.Parallel()
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"solved": 500, "streak": 10, "best_streak": 42, "avg_seconds": 310}`))
	}))

	stats, err := c.SolveStats(context.Background())
	if err != nil {
		t.Fatalf("SolveStats: %v", err)
	}
	if stats.Solved != 500 || stats.Streak != 10 || stats.BestStreak != 42 || stats.AvgSeconds != 310 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestPuzzles_SubstitutesWindowPlaceholders(t *testing.T) {
	t.Parallel()
	var gotPath, gotQuery string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"results": [{"print_date": "2024-06-02", "puzzle_id": 7}]}`))
	}))

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 7, 0, 0, 0, 0, time.UTC)
	entries, err := c.Puzzles(context.Background(), start, end)
	if err != nil {
		t.Fatalf("Puzzles: %v", err)
	}
	if gotPath != "/v3/puzzles.json" {
		t.Errorf("path = %q, want /v3/puzzles.json", gotPath)
	}
	wantQuery := "publish_type=daily&date_start=2024-06-01&date_end=2024-06-07"
	if gotQuery != wantQuery {
		t.Errorf("query = %q, want %q", gotQuery, wantQuery)
	}
	if len(entries) != 1 || entries[0].PuzzleID != 7 {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestDetail_SubstitutesDatePlaceholder(t *testing.T) {
	t.Parallel()
	var gotPath string
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"print_date": "2024-06-02", "puzzle_id": 7, "calcs": {"solved": true, "secondsSpentSolving": 312}}`))
	}))

	detail, err := c.Detail(context.Background(), "2024-06-02")
	if err != nil {
		t.Fatalf("Detail: %v", err)
	}
	if gotPath != "/v6/game/daily/2024-06-02.json" {
		t.Errorf("path = %q, want /v6/game/daily/2024-06-02.json", gotPath)
	}
	if !detail.Calcs.Solved || detail.Calcs.SecondsSpentSolving != 312 {
		t.Errorf("unexpected detail: %+v", detail)
	}
}

func TestGet_ErrorClassification(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{"unauthorized", http.StatusUnauthorized, `{}`, ErrAuth},
		{"forbidden", http.StatusForbidden, `{}`, ErrAuth},
		{"not found", http.StatusNotFound, `{}`, ErrNotFound},
		{"server error", http.StatusInternalServerError, `{}`, ErrUpstream},
		{"teapot", http.StatusTeapot, `{}`, ErrUpstream},
		{"malformed body", http.StatusOK, `{"solved": `, ErrUpstream},
		{"html body", http.StatusOK, `<html>log in</html>`, ErrUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))

			_, err := c.SolveStats(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("SolveStats error = %v, want errors.Is(err, %v)", err, tt.wantErr)
			}
		})
	}
}

func TestStatusClass(t *testing.T) {
	t.Parallel()
	tests := []struct {
		code int
		want string
	}{
		{200, "2xx"},
		{204, "2xx"},
		{301, "3xx"},
		{401, "4xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		if got := statusClass(tt.code); got != tt.want {
			t.Errorf("statusClass(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestGet_RecordsStatusClassLabel(t *testing.T) {
	t.Parallel()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	m, err := observe.NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	c, err := New("NYT-S=test-session", WithBaseURL(srv.URL), WithMetrics(m))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.SolveStats(context.Background()); err != nil {
		t.Fatalf("SolveStats: %v", err)
	}

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	for _, sm := range rm.ScopeMetrics {
		for _, met := range sm.Metrics {
			if met.Name != "solvegrid.upstream.requests" {
				continue
			}
			sum, ok := met.Data.(metricdata.Sum[int64])
			if !ok || len(sum.DataPoints) == 0 {
				t.Fatalf("unexpected requests counter data: %+v", met.Data)
			}
			status, ok := sum.DataPoints[0].Attributes.Value(attribute.Key("status"))
			if !ok || status.AsString() != "2xx" {
				t.Errorf("status label = %v, want 2xx", status.Emit())
			}
			return
		}
	}
	t.Fatal("upstream requests counter not found")
}

func TestGet_NetworkFailureIsUpstreamError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	url := srv.URL
	srv.Close() // connection refused from here on

	c, err := New("NYT-S=test-session", WithBaseURL(url))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := c.SolveStats(context.Background()); !errors.Is(err, ErrUpstream) {
		t.Errorf("SolveStats error = %v, want errors.Is(err, ErrUpstream)", err)
	}
}
