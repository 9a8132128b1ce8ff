// Package stats turns raw NYT crossword API payloads into the compact
// summaries exposed by the MCP tools: the account-wide solve summary, the
// recent-solves listing, and single-puzzle detail.
//
// All argument validation happens here, before any network traffic; a call
// either fully succeeds or fails with a classified error.
package stats

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/solvegrid/solvegrid/internal/nyt"
)

// ErrInvalidArgument indicates a malformed caller-supplied argument. It is
// returned before any upstream request is made.
var ErrInvalidArgument = errors.New("invalid argument")

// isoDate is the expected format of caller-supplied dates.
const isoDate = "2006-01-02"

// defaultMaxRecentDays caps the recent-solves window when no cap is
// configured.
const defaultMaxRecentDays = 90

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithMaxRecentDays sets the upper bound accepted for the days argument of
// [Client.RecentSolves]. Values < 1 leave the default in place.
func WithMaxRecentDays(n int) Option {
	return func(c *Client) {
		if n >= 1 {
			c.maxRecentDays = n
		}
	}
}

// WithClock overrides the time source used to anchor the recent-solves
// window. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// Client answers the three read-only stats queries against an upstream
// [nyt.Client]. It holds no mutable state and is safe for concurrent use.
type Client struct {
	upstream      *nyt.Client
	maxRecentDays int
	now           func() time.Time
}

// New creates a Client backed by the given upstream client.
func New(upstream *nyt.Client, opts ...Option) *Client {
	c := &Client{
		upstream:      upstream,
		maxRecentDays: defaultMaxRecentDays,
		now:           time.Now,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// SolveStats fetches the account-wide solving summary.
//
// BestStreak is clamped to never fall below CurrentStreak: upstream updates
// the two figures independently, and immediately after a record-setting
// solve it can briefly report a current streak ahead of the longest streak.
func (c *Client) SolveStats(ctx context.Context) (*SolveStatsSummary, error) {
	raw, err := c.upstream.SolveStats(ctx)
	if err != nil {
		return nil, err
	}

	summary := &SolveStatsSummary{
		TotalSolved:   raw.Solved,
		CurrentStreak: raw.Streak,
		BestStreak:    raw.BestStreak,
		AverageTime:   time.Duration(raw.AvgSeconds) * time.Second,
	}
	if summary.BestStreak < summary.CurrentStreak {
		summary.BestStreak = summary.CurrentStreak
	}
	return summary, nil
}

// RecentSolves returns per-day results for the last days days, most recent
// first. The result never exceeds days entries; days with no upstream
// record are absent.
//
// days must be ≥ 1 and ≤ the configured maximum, otherwise an error
// wrapping [ErrInvalidArgument] is returned before any upstream request.
func (c *Client) RecentSolves(ctx context.Context, days int) ([]RecentSolve, error) {
	if days < 1 {
		return nil, fmt.Errorf("stats: days must be ≥ 1, got %d: %w", days, ErrInvalidArgument)
	}
	if days > c.maxRecentDays {
		return nil, fmt.Errorf("stats: days must be ≤ %d, got %d: %w", c.maxRecentDays, days, ErrInvalidArgument)
	}

	end := c.now()
	start := end.AddDate(0, 0, -(days - 1))

	entries, err := c.upstream.Puzzles(ctx, start, end)
	if err != nil {
		return nil, err
	}

	solves := make([]RecentSolve, 0, len(entries))
	for _, e := range entries {
		date, err := time.Parse(isoDate, e.PrintDate)
		if err != nil {
			return nil, fmt.Errorf("stats: upstream print_date %q: %v: %w", e.PrintDate, err, nyt.ErrUpstream)
		}
		sv := RecentSolve{
			Date:     date,
			PuzzleID: e.PuzzleID,
			Title:    e.Title,
			Solved:   e.Solved,
			Gold:     e.Star == "Gold",
		}
		// The calendar accrues solving_seconds for in-progress puzzles too;
		// only a completed puzzle reports a solve time.
		if e.Solved {
			sv.SolveTime = time.Duration(e.SolvingSeconds) * time.Second
		}
		solves = append(solves, sv)
	}

	slices.SortFunc(solves, func(a, b RecentSolve) int {
		return b.Date.Compare(a.Date)
	})
	if len(solves) > days {
		solves = solves[:days]
	}
	return solves, nil
}

// PuzzleDetails returns the full record for the puzzle published on date
// (YYYY-MM-DD). A malformed date yields an error wrapping
// [ErrInvalidArgument] before any upstream request; a date with no upstream
// record yields an error wrapping [nyt.ErrNotFound].
func (c *Client) PuzzleDetails(ctx context.Context, date string) (*PuzzleDetail, error) {
	parsed, err := time.Parse(isoDate, date)
	if err != nil {
		return nil, fmt.Errorf("stats: date must be YYYY-MM-DD, got %q: %w", date, ErrInvalidArgument)
	}

	raw, err := c.upstream.Detail(ctx, date)
	if err != nil {
		return nil, err
	}

	detail := &PuzzleDetail{
		Date:       parsed,
		PuzzleID:   raw.PuzzleID,
		Title:      raw.Title,
		Difficulty: parsed.Weekday().String(),
		Status:     statusOf(raw.Calcs),
		SolveTime:  time.Duration(raw.Calcs.SecondsSpentSolving) * time.Second,
		UsedHints:  raw.Firsts.Checked != 0 || raw.Firsts.Revealed != 0,
	}
	if raw.Firsts.Opened != 0 {
		detail.FirstOpened = time.Unix(raw.Firsts.Opened, 0).UTC()
	}
	if raw.Firsts.Solved != 0 {
		detail.Completed = time.Unix(raw.Firsts.Solved, 0).UTC()
	}
	return detail, nil
}

// statusOf classifies a puzzle's completion state from its calcs.
func statusOf(c nyt.Calcs) Status {
	switch {
	case c.Solved:
		return StatusSolved
	case c.PercentFilled > 0:
		return StatusInProgress
	default:
		return StatusUnsolved
	}
}
