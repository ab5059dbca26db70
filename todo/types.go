// Package todo implements a single-user todo list backed by a key-value store.
//
// The whole collection lives in memory inside a Store. The store loads it
// once from a storage.Adapter when initialized and writes the full collection
// back after every change. Reads never touch storage.
//
// The public API mirrors the CLI commands:
//   - Add, Update, ToggleCompleted, SetCompleted, Remove for mutations
//   - Query, Stats, Todos, Get, Resolve for reading
//   - Initialize, Flush, Dispose for the store lifecycle
package todo

// DefaultStorageKey is the key the collection is persisted under.
const DefaultStorageKey = "neomorphism_todos"

// MaxTextLength is the maximum allowed length for a todo's text.
const MaxTextLength = 500

// Priority is the urgency label attached to each todo.
type Priority string

const (
	// PriorityLow is for todos that can wait.
	PriorityLow Priority = "low"

	// PriorityMedium is the default priority.
	PriorityMedium Priority = "medium"

	// PriorityHigh marks urgent todos.
	PriorityHigh Priority = "high"
)

// ValidPriorities returns all valid priority values, lowest first.
func ValidPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// IsValid returns true if the priority is a known valid value.
func (p Priority) IsValid() bool {
	for _, valid := range ValidPriorities() {
		if p == valid {
			return true
		}
	}
	return false
}

// PriorityRank returns the sort rank for a priority (0 = most urgent).
func PriorityRank(p Priority) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// PriorityPtr returns a pointer to the provided priority.
func PriorityPtr(priority Priority) *Priority {
	return &priority
}

// StatusFilter selects todos by their completed flag.
type StatusFilter string

const (
	// StatusAll imposes no constraint.
	StatusAll StatusFilter = "all"

	// StatusPending selects todos that are not completed.
	StatusPending StatusFilter = "pending"

	// StatusCompleted selects completed todos.
	StatusCompleted StatusFilter = "completed"

	// statusActive is accepted on input as another name for StatusPending.
	statusActive StatusFilter = "active"
)

// ValidStatusFilters returns the canonical status filter values.
func ValidStatusFilters() []StatusFilter {
	return []StatusFilter{StatusAll, StatusPending, StatusCompleted}
}

// IsValid returns true if the filter is a known value. The empty filter is valid and means all.
func (f StatusFilter) IsValid() bool {
	if f == "" || f == statusActive {
		return true
	}
	for _, valid := range ValidStatusFilters() {
		if f == valid {
			return true
		}
	}
	return false
}
