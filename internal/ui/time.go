package ui

import (
	"fmt"
	"time"

	internalage "github.com/amonks/neotodo/internal/age"
)

// FormatTimeAgo returns a compact age string like "2m ago".
func FormatTimeAgo(then time.Time, now time.Time) string {
	duration, ok := internalage.AgeData(then, now)
	if !ok {
		return "-"
	}
	return FormatDurationShort(duration) + " ago"
}

// FormatDue describes a deadline relative to now, like "in 3d" or "2h overdue".
func FormatDue(due *time.Time, now time.Time) string {
	if due == nil {
		return "-"
	}
	remaining, ok := internalage.UntilData(*due, now)
	if !ok {
		return "-"
	}
	if remaining < 0 {
		return FormatDurationShort(-remaining) + " overdue"
	}
	return "in " + FormatDurationShort(remaining)
}

// FormatDurationShort formats a duration using short units (s/m/h/d).
func FormatDurationShort(duration time.Duration) string {
	if duration < 0 {
		duration = 0
	}

	seconds := int64(duration.Truncate(time.Second).Seconds())
	switch {
	case seconds < 60:
		return fmt.Sprintf("%ds", seconds)
	case seconds < 60*60:
		return fmt.Sprintf("%dm", seconds/60)
	case seconds < 24*60*60:
		return fmt.Sprintf("%dh", seconds/(60*60))
	default:
		return fmt.Sprintf("%dd", seconds/(24*60*60))
	}
}
