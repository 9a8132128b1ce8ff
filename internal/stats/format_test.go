package stats

import (
	"testing"
	"time"
)

func TestFormatSolveTime(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "not solved"},
		{-5 * time.Second, "not solved"},
		{1 * time.Second, "1s"},
		{45 * time.Second, "45s"},
		{59 * time.Second, "59s"},
		{60 * time.Second, "1m 0s"},
		{5*time.Minute + 10*time.Second, "5m 10s"},
		{59*time.Minute + 59*time.Second, "59m 59s"},
		{time.Hour, "1h 0m"},
		{time.Hour + 2*time.Minute + 30*time.Second, "1h 2m"},
		{26*time.Hour + 15*time.Minute, "26h 15m"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatSolveTime(tt.d); got != tt.want {
				t.Errorf("FormatSolveTime(%v) = %q, want %q", tt.d, got, tt.want)
			}
		})
	}
}
