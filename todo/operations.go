package todo

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// AddOptions configures a new todo beyond its text.
type AddOptions struct {
	// Description provides additional context. Surrounding whitespace is trimmed.
	Description string

	// Priority is the urgency label. Defaults to PriorityMedium when nil.
	Priority *Priority

	// DueDate is when the todo should be done by.
	DueDate *time.Time
}

// Add creates a medium-priority todo with the given text and puts it first.
func (s *Store) Add(rawText string) Result {
	return s.AddWithOptions(rawText, AddOptions{})
}

// AddWithOptions creates a todo and puts it first in the collection.
func (s *Store) AddWithOptions(rawText string, opts AddOptions) Result {
	text, err := normalizeText(rawText)
	if err != nil {
		return rejected(err)
	}

	priority := PriorityMedium
	if opts.Priority != nil {
		priority, err = normalizePriorityInput(*opts.Priority)
		if err != nil {
			return rejected(err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.mutableLocked(); err != nil {
		return rejected(err)
	}

	id, err := s.newIDLocked()
	if err != nil {
		return rejected(err)
	}

	todo := Todo{
		ID:          id,
		Text:        text,
		Description: strings.TrimSpace(opts.Description),
		Priority:    priority,
		CreatedAt:   s.now(),
		DueDate:     normalizeTimePtr(opts.DueDate),
	}

	// Newest first
	s.todos = slices.Insert(s.todos, 0, todo)
	s.syncLocked()

	return applied(todo)
}

// Patch lists the fields Update should change. Nil pointers mean "don't
// update this field". ID and CreatedAt cannot be patched.
type Patch struct {
	Text        *string
	Description *string
	Completed   *bool
	Priority    *Priority
	DueDate     *time.Time

	// ClearDueDate removes the due date. It cannot be combined with DueDate.
	ClearDueDate bool
}

// IsEmpty returns true if the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return p.Text == nil &&
		p.Description == nil &&
		p.Completed == nil &&
		p.Priority == nil &&
		p.DueDate == nil &&
		!p.ClearDueDate
}

// normalized validates the patch and returns a copy with trimmed text,
// lowercase priority and a UTC due date.
func (p Patch) normalized() (Patch, error) {
	if p.DueDate != nil && p.ClearDueDate {
		return Patch{}, fmt.Errorf("%w: due date both set and cleared", ErrInvalidPatch)
	}

	out := p
	if p.Text != nil {
		text, err := normalizeText(*p.Text)
		if err != nil {
			return Patch{}, err
		}
		out.Text = &text
	}
	if p.Description != nil {
		description := strings.TrimSpace(*p.Description)
		out.Description = &description
	}
	if p.Priority != nil {
		priority, err := normalizePriorityInput(*p.Priority)
		if err != nil {
			return Patch{}, err
		}
		out.Priority = &priority
	}
	out.DueDate = normalizeTimePtr(p.DueDate)
	return out, nil
}

// apply merges the patch into t and reports whether anything changed.
func (p Patch) apply(t *Todo) bool {
	changed := false
	if p.Text != nil && *p.Text != t.Text {
		t.Text = *p.Text
		changed = true
	}
	if p.Description != nil && *p.Description != t.Description {
		t.Description = *p.Description
		changed = true
	}
	if p.Completed != nil && *p.Completed != t.Completed {
		t.Completed = *p.Completed
		changed = true
	}
	if p.Priority != nil && *p.Priority != t.Priority {
		t.Priority = *p.Priority
		changed = true
	}
	if p.DueDate != nil && (t.DueDate == nil || !t.DueDate.Equal(*p.DueDate)) {
		dueDate := *p.DueDate
		t.DueDate = &dueDate
		changed = true
	}
	if p.ClearDueDate && t.DueDate != nil {
		t.DueDate = nil
		changed = true
	}
	return changed
}

// Update merges patch into the todo with the given ID.
//
// An invalid patch is rejected as a whole. A patch that matches the todo's
// current values reports Unchanged and schedules no write.
func (s *Store) Update(id ID, patch Patch) Result {
	patch, err := patch.normalized()
	if err != nil {
		return rejected(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.mutableLocked(); err != nil {
		return rejected(err)
	}

	index := s.indexLocked(id)
	if index < 0 {
		return rejected(fmt.Errorf("%w: %s", ErrTodoNotFound, id))
	}

	todo := s.todos[index].Clone()
	if !patch.apply(&todo) {
		return unchanged(todo)
	}

	now := s.now()
	todo.UpdatedAt = &now
	if err := ValidateTodo(&todo); err != nil {
		return rejected(err)
	}

	s.todos[index] = todo
	s.syncLocked()

	return applied(todo)
}

// ToggleCompleted flips the completed flag of the todo with the given ID.
func (s *Store) ToggleCompleted(id ID) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.mutableLocked(); err != nil {
		return rejected(err)
	}

	index := s.indexLocked(id)
	if index < 0 {
		return rejected(fmt.Errorf("%w: %s", ErrTodoNotFound, id))
	}

	now := s.now()
	s.todos[index].Completed = !s.todos[index].Completed
	s.todos[index].UpdatedAt = &now
	s.syncLocked()

	return applied(s.todos[index])
}

// SetCompleted marks the todo with the given ID as completed or pending.
// It reports Unchanged if the todo is already in that state.
func (s *Store) SetCompleted(id ID, completed bool) Result {
	return s.Update(id, Patch{Completed: &completed})
}

// Remove deletes the todo with the given ID. The returned Result carries
// the removed todo.
func (s *Store) Remove(id ID) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.mutableLocked(); err != nil {
		return rejected(err)
	}

	index := s.indexLocked(id)
	if index < 0 {
		return rejected(fmt.Errorf("%w: %s", ErrTodoNotFound, id))
	}

	removed := s.todos[index]
	s.todos = slices.Delete(s.todos, index, index+1)
	s.syncLocked()

	return applied(removed)
}
