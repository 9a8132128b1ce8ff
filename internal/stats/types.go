package stats

import "time"

// SolveStatsSummary is the account-wide solving summary.
type SolveStatsSummary struct {
	// TotalSolved is the number of puzzles solved over the account lifetime.
	TotalSolved int

	// CurrentStreak is the current consecutive-day solve streak.
	CurrentStreak int

	// BestStreak is the longest streak ever recorded. Always ≥ CurrentStreak.
	BestStreak int

	// AverageTime is the average solve time across solved puzzles.
	AverageTime time.Duration
}

// Status describes how far along a puzzle is.
type Status string

const (
	StatusSolved     Status = "solved"
	StatusInProgress Status = "in-progress"
	StatusUnsolved   Status = "unsolved"
)

// RecentSolve is one per-day entry in the recent-solves listing.
type RecentSolve struct {
	// Date is the puzzle's publication date.
	Date time.Time

	// PuzzleID is the upstream puzzle identifier.
	PuzzleID int

	// Title is the puzzle title; empty for most daily puzzles.
	Title string

	// Solved reports whether the puzzle was completed.
	Solved bool

	// SolveTime is the accumulated solve time. Zero when unsolved.
	SolveTime time.Duration

	// Gold reports a same-day unassisted solve.
	Gold bool
}

// PuzzleDetail is the full record for a single puzzle date.
type PuzzleDetail struct {
	// Date is the puzzle's publication date.
	Date time.Time

	// PuzzleID is the upstream puzzle identifier.
	PuzzleID int

	// Title is the puzzle title; empty for most daily puzzles.
	Title string

	// Difficulty is the difficulty tier. Daily puzzles are keyed to the
	// weekday (Monday easiest through Saturday, with the large Sunday
	// grid), so the tier is the weekday name.
	Difficulty string

	// Status is solved, in-progress, or unsolved.
	Status Status

	// SolveTime is the accumulated solve time. Zero when never opened.
	SolveTime time.Duration

	// UsedHints reports whether the check or reveal assist was used.
	UsedHints bool

	// FirstOpened is when the puzzle was first opened. Zero if never opened.
	FirstOpened time.Time

	// Completed is when the puzzle was solved. Zero if unsolved.
	Completed time.Time
}
