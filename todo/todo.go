package todo

import (
	"encoding/json"
	"time"
)

// Todo represents a single task.
type Todo struct {
	// ID is a unique identifier assigned at creation.
	ID ID `json:"id"`

	// Text is the short summary of the todo (max 500 chars, never blank).
	Text string `json:"text"`

	// Description provides additional context about the todo.
	Description string `json:"description,omitempty"`

	// Completed reports whether the todo is done.
	Completed bool `json:"completed"`

	// Priority is the urgency label (low, medium, high).
	Priority Priority `json:"priority"`

	// CreatedAt is when the todo was created.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when the todo was last modified (nil if never modified).
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`

	// DueDate is when the todo should be done by (nil if unscheduled).
	DueDate *time.Time `json:"dueDate"`
}

// Clone returns a copy of the todo that shares no pointers with the original.
func (t Todo) Clone() Todo {
	clone := t
	if t.UpdatedAt != nil {
		updatedAt := *t.UpdatedAt
		clone.UpdatedAt = &updatedAt
	}
	if t.DueDate != nil {
		dueDate := *t.DueDate
		clone.DueDate = &dueDate
	}
	return clone
}

type todoJSON Todo

// UnmarshalJSON accepts "title" as another name for "text".
func (t *Todo) UnmarshalJSON(data []byte) error {
	var raw struct {
		todoJSON
		Title string `json:"title"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Todo(raw.todoJSON)
	if t.Text == "" {
		t.Text = raw.Title
	}
	return nil
}

func cloneTodos(todos []Todo) []Todo {
	if todos == nil {
		return nil
	}
	clones := make([]Todo, len(todos))
	for i := range todos {
		clones[i] = todos[i].Clone()
	}
	return clones
}
