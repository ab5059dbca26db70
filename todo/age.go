package todo

import (
	"time"

	internalage "github.com/amonks/neotodo/internal/age"
)

// AgeData computes the display age and whether timing data exists.
func AgeData(item Todo, now time.Time) (time.Duration, bool) {
	return internalage.AgeData(item.CreatedAt, now)
}

// UpdatedData computes time since the last modification.
func UpdatedData(item Todo, now time.Time) (time.Duration, bool) {
	if item.UpdatedAt == nil {
		return 0, false
	}
	return internalage.AgeData(*item.UpdatedAt, now)
}

// DueData computes time remaining until the due date. It is negative for
// overdue todos.
func DueData(item Todo, now time.Time) (time.Duration, bool) {
	if item.DueDate == nil {
		return 0, false
	}
	return internalage.UntilData(*item.DueDate, now)
}

// IsOverdue returns true for pending todos whose due date has passed.
func IsOverdue(item Todo, now time.Time) bool {
	if item.Completed {
		return false
	}
	remaining, ok := DueData(item, now)
	return ok && remaining < 0
}
