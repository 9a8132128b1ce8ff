package nyt

// SolveStats is the aggregate stats-and-streaks payload. Totals and streaks
// are account-lifetime values computed upstream; this client never derives
// them locally.
type SolveStats struct {
	// Solved is the total number of puzzles solved.
	Solved int `json:"solved"`

	// Streak is the current consecutive-day solve streak.
	Streak int `json:"streak"`

	// BestStreak is the longest streak ever recorded for the account.
	BestStreak int `json:"best_streak"`

	// AvgSeconds is the average solve time in seconds across solved puzzles.
	AvgSeconds int `json:"avg_seconds"`
}

// PuzzleEntry is one per-day entry from the calendar listing. For an
// authenticated account the listing includes the solve outcome, so a single
// request covers a whole window.
type PuzzleEntry struct {
	// PrintDate is the puzzle's publication date in YYYY-MM-DD form.
	PrintDate string `json:"print_date"`

	// PuzzleID is the upstream numeric puzzle identifier.
	PuzzleID int `json:"puzzle_id"`

	// Title is the puzzle title; daily puzzles usually carry an empty title.
	Title string `json:"title"`

	// Star is "Gold" when the puzzle was solved without assistance on the
	// publication day, empty otherwise.
	Star string `json:"star"`

	// Solved reports whether the puzzle has been completed.
	Solved bool `json:"solved"`

	// SolvingSeconds is the accumulated solve time in seconds. Zero when
	// the puzzle was never opened.
	SolvingSeconds int `json:"solving_seconds"`
}

// puzzlesResponse wraps the calendar listing results array.
type puzzlesResponse struct {
	Results []PuzzleEntry `json:"results"`
}

// GameDetail is the single-puzzle detail payload.
type GameDetail struct {
	PrintDate string `json:"print_date"`
	PuzzleID  int    `json:"puzzle_id"`
	Title     string `json:"title"`
	Star      string `json:"star"`
	Calcs     Calcs  `json:"calcs"`
	Firsts    Firsts `json:"firsts"`
}

// Calcs holds upstream-computed solve figures for one puzzle.
type Calcs struct {
	// Solved reports whether the grid was fully and correctly filled.
	Solved bool `json:"solved"`

	// SecondsSpentSolving is the accumulated solve time in seconds.
	SecondsSpentSolving int `json:"secondsSpentSolving"`

	// PercentFilled is the share of the grid filled in, 0–100. Non-zero
	// with Solved false means the puzzle is in progress.
	PercentFilled float64 `json:"percentFilled"`
}

// Firsts holds Unix timestamps of notable firsts for one puzzle. A zero
// value means the event never happened.
type Firsts struct {
	// Opened is when the puzzle was first opened.
	Opened int64 `json:"opened"`

	// Solved is when the puzzle was completed.
	Solved int64 `json:"solved"`

	// Checked is when the check-square assist was first used.
	Checked int64 `json:"checked"`

	// Revealed is when the reveal assist was first used.
	Revealed int64 `json:"revealed"`
}
