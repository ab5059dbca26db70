package main

import (
	"time"

	"github.com/amonks/neotodo/todo"
)

// exportRecord is the YAML shape of a todo. Field names match the JSON
// payload.
type exportRecord struct {
	ID          string  `yaml:"id"`
	Text        string  `yaml:"text"`
	Description string  `yaml:"description,omitempty"`
	Completed   bool    `yaml:"completed"`
	Priority    string  `yaml:"priority"`
	CreatedAt   string  `yaml:"createdAt"`
	UpdatedAt   string  `yaml:"updatedAt,omitempty"`
	DueDate     *string `yaml:"dueDate"`
}

func exportRecords(todos []todo.Todo) []exportRecord {
	records := make([]exportRecord, 0, len(todos))
	for _, t := range todos {
		record := exportRecord{
			ID:          t.ID.String(),
			Text:        t.Text,
			Description: t.Description,
			Completed:   t.Completed,
			Priority:    string(t.Priority),
			CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339Nano),
		}
		if t.UpdatedAt != nil {
			record.UpdatedAt = t.UpdatedAt.UTC().Format(time.RFC3339Nano)
		}
		if t.DueDate != nil {
			due := todo.FormatDueDate(t.DueDate)
			record.DueDate = &due
		}
		records = append(records, record)
	}
	return records
}
