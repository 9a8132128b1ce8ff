// Package nyt provides a read-only client for the NYT crossword statistics
// API. It authenticates with a session cookie and exposes the three
// endpoints the query layer needs: aggregate stats, the calendar listing,
// and single-puzzle detail.
//
// Every method issues exactly one HTTP GET, classifies the outcome into the
// package's sentinel errors, and parses the JSON body. There are no retries
// and no caching; a failed request fails the call.
package nyt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/solvegrid/solvegrid/internal/observe"
)

const (
	defaultBaseURL     = "https://www.nytimes.com/svc/crosswords"
	defaultStatsPath   = "/v3/stats-and-streaks.json"
	defaultPuzzlesPath = "/v3/puzzles.json?publish_type=daily&date_start={start}&date_end={end}"
	defaultDetailPath  = "/v6/game/daily/{date}.json"
	defaultUserAgent   = "solvegrid personal stats"
	defaultTimeout     = 30 * time.Second
)

// isoDate is the wire format for calendar dates on the upstream API.
const isoDate = "2006-01-02"

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithBaseURL overrides the upstream API root. Trailing slashes are trimmed.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithEndpoints overrides the three endpoint path templates. Empty strings
// leave the corresponding default in place. puzzles must contain {start} and
// {end}; detail must contain {date}.
func WithEndpoints(stats, puzzles, detail string) Option {
	return func(c *Client) {
		if stats != "" {
			c.statsPath = stats
		}
		if puzzles != "" {
			c.puzzlesPath = puzzles
		}
		if detail != "" {
			c.detailPath = detail
		}
	}
}

// WithUserAgent sets the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithTimeout bounds each upstream request. A timed-out request surfaces as
// [ErrUpstream].
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithMetrics sets the metrics sink. Defaults to [observe.DefaultMetrics].
func WithMetrics(m *observe.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// Client is a read-only client for the crossword statistics API. The session
// cookie is fixed at construction and never mutated; the Client is safe for
// concurrent use.
type Client struct {
	baseURL     string
	statsPath   string
	puzzlesPath string
	detailPath  string
	cookie      string
	userAgent   string
	httpClient  *http.Client
	metrics     *observe.Metrics
}

// New creates a Client authenticated with the given session cookie.
// cookie must be non-empty.
func New(cookie string, opts ...Option) (*Client, error) {
	if cookie == "" {
		return nil, errors.New("nyt: cookie must not be empty")
	}
	c := &Client{
		baseURL:     defaultBaseURL,
		statsPath:   defaultStatsPath,
		puzzlesPath: defaultPuzzlesPath,
		detailPath:  defaultDetailPath,
		cookie:      cookie,
		userAgent:   defaultUserAgent,
		httpClient:  &http.Client{Timeout: defaultTimeout},
	}
	for _, o := range opts {
		o(c)
	}
	if c.metrics == nil {
		c.metrics = observe.DefaultMetrics()
	}
	return c, nil
}

// SolveStats fetches the aggregate stats-and-streaks summary.
func (c *Client) SolveStats(ctx context.Context) (*SolveStats, error) {
	var stats SolveStats
	if err := c.get(ctx, "stats", c.statsPath, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Puzzles fetches the calendar listing for the inclusive date window
// [start, end]. Days without an entry upstream are simply absent from the
// result.
func (c *Client) Puzzles(ctx context.Context, start, end time.Time) ([]PuzzleEntry, error) {
	path := strings.NewReplacer(
		"{start}", start.Format(isoDate),
		"{end}", end.Format(isoDate),
	).Replace(c.puzzlesPath)

	var resp puzzlesResponse
	if err := c.get(ctx, "puzzles", path, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// Detail fetches the single-puzzle detail for the given ISO date string.
// Returns an error wrapping [ErrNotFound] when upstream has no puzzle
// record for that date.
func (c *Client) Detail(ctx context.Context, date string) (*GameDetail, error) {
	path := strings.ReplaceAll(c.detailPath, "{date}", date)

	var detail GameDetail
	if err := c.get(ctx, "detail", path, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// get issues one authenticated GET for the given endpoint path, classifies
// the HTTP outcome, and decodes the JSON body into v.
func (c *Client) get(ctx context.Context, endpoint, path string, v any) error {
	ctx, span := observe.StartSpan(ctx, "nyt.get",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("nyt.endpoint", endpoint)),
	)
	defer span.End()

	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("nyt: build request for %s: %w", endpoint, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Cookie", c.cookie)
	req.Header.Set("DNT", "1")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.RecordUpstreamRequest(ctx, endpoint, "error", time.Since(start))
		c.metrics.RecordUpstreamError(ctx, endpoint)
		return fmt.Errorf("nyt: GET %s: %v: %w", endpoint, err, ErrUpstream)
	}
	defer resp.Body.Close()

	c.metrics.RecordUpstreamRequest(ctx, endpoint, statusClass(resp.StatusCode), time.Since(start))

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		c.metrics.RecordUpstreamError(ctx, endpoint)
		return fmt.Errorf("nyt: GET %s: status %d: %w", endpoint, resp.StatusCode, ErrAuth)
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("nyt: GET %s: status %d: %w", endpoint, resp.StatusCode, ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.metrics.RecordUpstreamError(ctx, endpoint)
		return fmt.Errorf("nyt: GET %s: status %d: %w", endpoint, resp.StatusCode, ErrUpstream)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		c.metrics.RecordUpstreamError(ctx, endpoint)
		return fmt.Errorf("nyt: GET %s: decode body: %v: %w", endpoint, err, ErrUpstream)
	}

	observe.Logger(ctx).Debug("upstream request",
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}

// statusClass renders a status code as its class label ("2xx", "4xx", ...),
// keeping the metric's status cardinality bounded.
func statusClass(code int) string {
	return fmt.Sprintf("%dxx", code/100)
}
