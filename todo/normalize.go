package todo

import (
	"fmt"
	"strings"
	"time"

	internalstrings "github.com/amonks/neotodo/internal/strings"
	"github.com/amonks/neotodo/internal/validation"
)

func normalizeText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if err := ValidateText(text); err != nil {
		return "", err
	}
	return text, nil
}

func normalizePriority(priority Priority) Priority {
	return Priority(internalstrings.NormalizeLowerTrimSpace(string(priority)))
}

func normalizePriorityInput(priority Priority) (Priority, error) {
	normalized := normalizePriority(priority)
	if err := ValidatePriority(normalized); err != nil {
		return "", err
	}
	return normalized, nil
}

func normalizeStatusFilter(status StatusFilter) StatusFilter {
	normalized := StatusFilter(internalstrings.NormalizeLowerTrimSpace(string(status)))
	switch normalized {
	case "":
		return StatusAll
	case statusActive:
		return StatusPending
	default:
		return normalized
	}
}

func normalizeTime(value time.Time) time.Time {
	return value.Round(0).UTC()
}

func normalizeTimePtr(value *time.Time) *time.Time {
	if value == nil {
		return nil
	}
	normalized := normalizeTime(*value)
	return &normalized
}

// ParsePriority parses a priority name, ignoring case and surrounding whitespace.
func ParsePriority(value string) (Priority, error) {
	return normalizePriorityInput(Priority(value))
}

// ParsePriorityFilter parses a priority filter. "all" and "" return nil, meaning no constraint.
func ParsePriorityFilter(value string) (*Priority, error) {
	normalized := internalstrings.NormalizeLowerTrimSpace(value)
	if normalized == "" || normalized == string(StatusAll) {
		return nil, nil
	}
	priority, err := normalizePriorityInput(Priority(normalized))
	if err != nil {
		return nil, err
	}
	return &priority, nil
}

// ParseStatusFilter parses a status filter. "active" is accepted as pending.
func ParseStatusFilter(value string) (StatusFilter, error) {
	normalized := normalizeStatusFilter(StatusFilter(value))
	for _, valid := range ValidStatusFilters() {
		if normalized == valid {
			return normalized, nil
		}
	}
	return "", validation.FormatInvalidValueError(ErrInvalidStatusFilter, StatusFilter(value), append(ValidStatusFilters(), statusActive))
}

// DueDateLayout is the date-only form accepted for due dates.
const DueDateLayout = "2006-01-02"

// ParseDueDate parses a due date given as YYYY-MM-DD (midnight UTC) or
// RFC 3339. Blank input returns nil.
func ParseDueDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{DueDateLayout, time.RFC3339Nano} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return normalizeTimePtr(&parsed), nil
		}
	}
	return nil, fmt.Errorf("invalid due date %q (want YYYY-MM-DD or RFC 3339)", value)
}

// FormatDueDate is the inverse of ParseDueDate. Midnight UTC prints as a
// plain date.
func FormatDueDate(due *time.Time) string {
	if due == nil {
		return ""
	}
	utc := due.UTC()
	if utc.Equal(utc.Truncate(24 * time.Hour)) {
		return utc.Format(DueDateLayout)
	}
	return utc.Format(time.RFC3339)
}
