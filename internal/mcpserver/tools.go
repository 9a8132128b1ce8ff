package mcpserver

import (
	"context"
	"fmt"
	"strings"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/solvegrid/solvegrid/internal/stats"
)

// isoDate is the wire format for dates in tool arguments and results.
const isoDate = "2006-01-02"

// solveStatsArgs is the (empty) input for the "get_solve_stats" tool.
type solveStatsArgs struct{}

// solveStatsResult is the structured output of the "get_solve_stats" tool.
type solveStatsResult struct {
	// TotalSolved is the number of puzzles solved over the account lifetime.
	TotalSolved int `json:"total_solved" jsonschema:"total number of puzzles solved"`

	// CurrentStreak is the current consecutive-day solve streak.
	CurrentStreak int `json:"current_streak" jsonschema:"current consecutive-day solve streak"`

	// BestStreak is the longest streak ever recorded.
	BestStreak int `json:"best_streak" jsonschema:"longest solve streak ever recorded"`

	// AverageSeconds is the average solve time in seconds.
	AverageSeconds int `json:"average_seconds" jsonschema:"average solve time in seconds"`

	// AverageTime is the average solve time in human-readable form.
	AverageTime string `json:"average_time" jsonschema:"average solve time, human readable"`
}

// recentSolvesArgs is the JSON-decoded input for the "get_recent_solves" tool.
type recentSolvesArgs struct {
	// Days is the size of the lookback window.
	Days int `json:"days" jsonschema:"number of most recent days to return, starting today"`
}

// recentSolveEntry is one per-day entry in the "get_recent_solves" output.
type recentSolveEntry struct {
	Date      string `json:"date" jsonschema:"publication date, YYYY-MM-DD"`
	PuzzleID  int    `json:"puzzle_id" jsonschema:"upstream puzzle identifier"`
	Title     string `json:"title,omitempty" jsonschema:"puzzle title, usually empty for dailies"`
	Solved    bool   `json:"solved" jsonschema:"whether the puzzle was completed"`
	SolveTime string `json:"solve_time" jsonschema:"solve time, human readable; 'not solved' when unsolved"`
	Gold      bool   `json:"gold" jsonschema:"whether the puzzle earned a gold star (same-day unassisted solve)"`
}

// recentSolvesResult is the structured output of the "get_recent_solves" tool.
type recentSolvesResult struct {
	Days   int                `json:"days" jsonschema:"the requested window size"`
	Solves []recentSolveEntry `json:"solves" jsonschema:"per-day results, most recent first"`
}

// puzzleDetailsArgs is the JSON-decoded input for the "get_puzzle_details" tool.
type puzzleDetailsArgs struct {
	// Date selects the puzzle by publication date.
	Date string `json:"date" jsonschema:"puzzle publication date in YYYY-MM-DD format"`
}

// puzzleDetailsResult is the structured output of the "get_puzzle_details" tool.
type puzzleDetailsResult struct {
	Date        string `json:"date" jsonschema:"publication date, YYYY-MM-DD"`
	PuzzleID    int    `json:"puzzle_id" jsonschema:"upstream puzzle identifier"`
	Title       string `json:"title,omitempty" jsonschema:"puzzle title, usually empty for dailies"`
	Difficulty  string `json:"difficulty" jsonschema:"difficulty tier (weekday name)"`
	Status      string `json:"status" jsonschema:"solved, in-progress, or unsolved"`
	SolveTime   string `json:"solve_time" jsonschema:"solve time, human readable"`
	UsedHints   bool   `json:"used_hints" jsonschema:"whether check or reveal assists were used"`
	FirstOpened string `json:"first_opened,omitempty" jsonschema:"when the puzzle was first opened, RFC 3339"`
	Completed   string `json:"completed,omitempty" jsonschema:"when the puzzle was solved, RFC 3339"`
}

// getSolveStats implements the "get_solve_stats" tool.
func (s *Server) getSolveStats(ctx context.Context, _ *mcpsdk.CallToolRequest, _ solveStatsArgs) (*mcpsdk.CallToolResult, solveStatsResult, error) {
	start := time.Now()

	summary, err := s.stats.SolveStats(ctx)
	if err != nil {
		s.metrics.RecordToolCall(ctx, "get_solve_stats", "error", time.Since(start))
		return nil, solveStatsResult{}, err
	}
	s.metrics.RecordToolCall(ctx, "get_solve_stats", "ok", time.Since(start))

	res := solveStatsResult{
		TotalSolved:    summary.TotalSolved,
		CurrentStreak:  summary.CurrentStreak,
		BestStreak:     summary.BestStreak,
		AverageSeconds: int(summary.AverageTime.Seconds()),
		AverageTime:    stats.FormatSolveTime(summary.AverageTime),
	}

	text := fmt.Sprintf(
		"Puzzles solved: %d\nCurrent streak: %d days\nBest streak: %d days\nAverage solve time: %s",
		res.TotalSolved, res.CurrentStreak, res.BestStreak, res.AverageTime,
	)
	return textResult(text), res, nil
}

// getRecentSolves implements the "get_recent_solves" tool.
func (s *Server) getRecentSolves(ctx context.Context, _ *mcpsdk.CallToolRequest, args recentSolvesArgs) (*mcpsdk.CallToolResult, recentSolvesResult, error) {
	start := time.Now()

	solves, err := s.stats.RecentSolves(ctx, args.Days)
	if err != nil {
		s.metrics.RecordToolCall(ctx, "get_recent_solves", "error", time.Since(start))
		return nil, recentSolvesResult{}, err
	}
	s.metrics.RecordToolCall(ctx, "get_recent_solves", "ok", time.Since(start))

	res := recentSolvesResult{
		Days:   args.Days,
		Solves: make([]recentSolveEntry, 0, len(solves)),
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Recent solves (last %d days):\n", args.Days)
	for _, sv := range solves {
		entry := recentSolveEntry{
			Date:      sv.Date.Format(isoDate),
			PuzzleID:  sv.PuzzleID,
			Title:     sv.Title,
			Solved:    sv.Solved,
			SolveTime: solveTimeLabel(sv.Solved, sv.SolveTime),
			Gold:      sv.Gold,
		}
		res.Solves = append(res.Solves, entry)

		fmt.Fprintf(&sb, "%s: %s", entry.Date, entry.SolveTime)
		if entry.Gold {
			sb.WriteString(" ★")
		}
		sb.WriteString("\n")
	}
	if len(res.Solves) == 0 {
		sb.WriteString("No puzzles found in this window.\n")
	}
	return textResult(strings.TrimSuffix(sb.String(), "\n")), res, nil
}

// getPuzzleDetails implements the "get_puzzle_details" tool.
func (s *Server) getPuzzleDetails(ctx context.Context, _ *mcpsdk.CallToolRequest, args puzzleDetailsArgs) (*mcpsdk.CallToolResult, puzzleDetailsResult, error) {
	start := time.Now()

	detail, err := s.stats.PuzzleDetails(ctx, args.Date)
	if err != nil {
		s.metrics.RecordToolCall(ctx, "get_puzzle_details", "error", time.Since(start))
		return nil, puzzleDetailsResult{}, err
	}
	s.metrics.RecordToolCall(ctx, "get_puzzle_details", "ok", time.Since(start))

	res := puzzleDetailsResult{
		Date:       detail.Date.Format(isoDate),
		PuzzleID:   detail.PuzzleID,
		Title:      detail.Title,
		Difficulty: detail.Difficulty,
		Status:     string(detail.Status),
		SolveTime:  solveTimeLabel(detail.Status == stats.StatusSolved, detail.SolveTime),
		UsedHints:  detail.UsedHints,
	}
	if !detail.FirstOpened.IsZero() {
		res.FirstOpened = detail.FirstOpened.Format(time.RFC3339)
	}
	if !detail.Completed.IsZero() {
		res.Completed = detail.Completed.Format(time.RFC3339)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Puzzle for %s (%s):\n", res.Date, res.Difficulty)
	fmt.Fprintf(&sb, "Status: %s\n", res.Status)
	fmt.Fprintf(&sb, "Solve time: %s", res.SolveTime)
	if res.UsedHints {
		sb.WriteString(" (used hints)")
	}
	if res.Completed != "" {
		fmt.Fprintf(&sb, "\nCompleted: %s", res.Completed)
	}
	return textResult(sb.String()), res, nil
}

// solveTimeLabel renders a solve time, or "not solved" for unsolved puzzles
// regardless of any accumulated in-progress time.
func solveTimeLabel(solved bool, d time.Duration) string {
	if !solved {
		return "not solved"
	}
	return stats.FormatSolveTime(d)
}

// textResult wraps a plain-text block as a tool result.
func textResult(text string) *mcpsdk.CallToolResult {
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{&mcpsdk.TextContent{Text: text}},
	}
}
