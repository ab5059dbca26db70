package todo

import (
	internalstrings "github.com/amonks/neotodo/internal/strings"
)

// Filter selects todos. The zero value matches everything.
type Filter struct {
	// Search matches todos whose text contains it, ignoring case.
	Search string

	// Status selects by completed flag. Empty means StatusAll.
	Status StatusFilter

	// Priority selects an exact priority when non-nil.
	Priority *Priority

	// SearchDescription extends Search to the description.
	SearchDescription bool
}

func (f Filter) matcher() func(*Todo) bool {
	search := internalstrings.NormalizeLower(f.Search)
	status := normalizeStatusFilter(f.Status)
	var priority Priority
	if f.Priority != nil {
		priority = normalizePriority(*f.Priority)
	}

	return func(t *Todo) bool {
		switch status {
		case StatusPending:
			if t.Completed {
				return false
			}
		case StatusCompleted:
			if !t.Completed {
				return false
			}
		}
		if f.Priority != nil && t.Priority != priority {
			return false
		}
		if internalstrings.ContainsFold(t.Text, search) {
			return true
		}
		return f.SearchDescription && internalstrings.ContainsFold(t.Description, search)
	}
}

// Query returns copies of the todos matching filter, in their original order.
func Query(todos []Todo, filter Filter) []Todo {
	match := filter.matcher()
	var out []Todo
	for i := range todos {
		if match(&todos[i]) {
			out = append(out, todos[i].Clone())
		}
	}
	return out
}

// Query returns the todos matching filter in stored order. It never
// touches storage.
func (s *Store) Query(filter Filter) []Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Query(s.todos, filter)
}

// Stats summarizes a collection.
type Stats struct {
	Total               int `json:"total"`
	Completed           int `json:"completed"`
	Pending             int `json:"pending"`
	HighPriorityPending int `json:"highPriorityPending"`
}

// ComputeStats counts todos in a single pass.
func ComputeStats(todos []Todo) Stats {
	var stats Stats
	for i := range todos {
		stats.Total++
		if todos[i].Completed {
			stats.Completed++
			continue
		}
		if todos[i].Priority == PriorityHigh {
			stats.HighPriorityPending++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	return stats
}

// Stats summarizes the store's collection.
func (s *Store) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ComputeStats(s.todos)
}
