package main

import (
	"time"

	"github.com/amonks/neotodo/internal/ui"
	"github.com/amonks/neotodo/todo"
)

func formatTodoTable(todos []todo.Todo, prefixLengths map[string]int, highlight func(string, int) string, now time.Time) string {
	builder := ui.NewTableBuilder([]string{"ID", "DONE", "PRI", "DUE", "AGE", "TEXT"}, len(todos))

	if prefixLengths == nil {
		prefixLengths = todo.NewIDIndex(todos).PrefixLengths()
	}

	for _, t := range todos {
		id := t.ID.String()
		builder.AddRow(
			highlight(displayID(id, ui.PrefixLength(prefixLengths, id)), ui.PrefixLength(prefixLengths, id)),
			ui.Checkbox(t.Completed),
			ui.PriorityBadge(string(t.Priority)),
			formatTodoDue(t, now),
			formatTodoAge(t, now),
			ui.TruncateTableCell(t.Text),
		)
	}

	return builder.String()
}

// displayIDMinLength keeps short IDs whole while trimming UUIDs in tables.
const displayIDMinLength = 8

func displayID(id string, prefixLen int) string {
	length := max(prefixLen, displayIDMinLength)
	if len(id) <= length {
		return id
	}
	return id[:length]
}

func formatTodoAge(item todo.Todo, now time.Time) string {
	ageValue, ok := todo.AgeData(item, now)
	if !ok {
		return "-"
	}
	return ui.FormatDurationShort(ageValue)
}

func formatTodoDue(item todo.Todo, now time.Time) string {
	if item.DueDate == nil {
		return "-"
	}
	if item.Completed {
		return todo.FormatDueDate(item.DueDate)
	}
	return ui.FormatDue(item.DueDate, now)
}
