package stats

import (
	"fmt"
	"time"
)

// FormatSolveTime renders a solve duration the way the puzzle page does:
// "45s" under a minute, "5m 10s" under an hour, "1h 2m" beyond that.
// A zero duration renders as "not solved".
func FormatSolveTime(d time.Duration) string {
	seconds := int(d.Seconds())
	switch {
	case seconds <= 0:
		return "not solved"
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
	default:
		return fmt.Sprintf("%dh %dm", seconds/3600, (seconds%3600)/60)
	}
}
