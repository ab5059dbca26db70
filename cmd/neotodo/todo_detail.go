package main

import (
	"fmt"
	"io"
	"time"

	"github.com/amonks/neotodo/internal/markdown"
	"github.com/amonks/neotodo/internal/ui"
	"github.com/amonks/neotodo/todo"
)

const (
	todoDetailLineWidth = 80
	todoDetailIndent    = 2
)

const detailTimeLayout = "2006-01-02 15:04:05"

// printTodoDetail prints detailed information about a todo.
func printTodoDetail(w io.Writer, t todo.Todo, highlight func(todo.ID) string, now time.Time) {
	status := "pending"
	if t.Completed {
		status = "completed"
	}

	fmt.Fprintf(w, "ID:       %s\n", highlight(t.ID))
	fmt.Fprintf(w, "Text:     %s\n", t.Text)
	fmt.Fprintf(w, "Status:   %s\n", status)
	fmt.Fprintf(w, "Priority: %s\n", ui.PriorityBadge(string(t.Priority)))
	fmt.Fprintf(w, "Created:  %s (%s)\n", t.CreatedAt.Local().Format(detailTimeLayout), ui.FormatTimeAgo(t.CreatedAt, now))

	if t.UpdatedAt != nil {
		fmt.Fprintf(w, "Updated:  %s (%s)\n", t.UpdatedAt.Local().Format(detailTimeLayout), ui.FormatTimeAgo(*t.UpdatedAt, now))
	}

	if t.DueDate != nil {
		due := todo.FormatDueDate(t.DueDate)
		if todo.IsOverdue(t, now) {
			due += " (overdue)"
		}
		fmt.Fprintf(w, "Due:      %s\n", due)
	}

	if description := markdown.Render(todoDetailLineWidth, todoDetailIndent, []byte(t.Description)); description != nil {
		fmt.Fprintf(w, "\nDescription:\n%s\n", description)
	}
}
