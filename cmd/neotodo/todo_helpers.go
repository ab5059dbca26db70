package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amonks/neotodo/internal/ui"
	"github.com/amonks/neotodo/todo"
)

func resolveDescriptionFromStdin(description string, reader io.Reader) (string, error) {
	if description != "-" {
		return description, nil
	}

	input, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read description from stdin: %w", err)
	}

	value := strings.TrimRight(string(input), "\r\n")
	return value, nil
}

// idHighlighter returns a function that highlights each ID's unique prefix
// within the store's current collection.
func idHighlighter(store *todo.Store) func(todo.ID) string {
	lengths := store.IDIndex().PrefixLengths()
	return func(id todo.ID) string {
		return ui.HighlightID(id.String(), ui.PrefixLength(lengths, id.String()))
	}
}

// reportResult prints one line describing a mutation, or returns the
// rejection reason.
func reportResult(w io.Writer, highlight func(todo.ID) string, result todo.Result, appliedVerb, unchangedVerb string) error {
	if err := result.Err(); err != nil {
		return err
	}
	verb := appliedVerb
	if result.Outcome == todo.Unchanged {
		verb = unchangedVerb
	}
	_, err := fmt.Fprintf(w, "%s %s: %s\n", verb, highlight(result.Todo.ID), result.Todo.Text)
	return err
}

// patchFromFlags builds a Patch from the update flags that were set on cmd.
func patchFromFlags(cmd *cobra.Command, values *updateFlags) (todo.Patch, error) {
	var patch todo.Patch
	flags := cmd.Flags()

	if flags.Changed("text") {
		patch.Text = &values.text
	}
	if flags.Changed("description") {
		description, err := resolveDescriptionFromStdin(values.description, cmd.InOrStdin())
		if err != nil {
			return todo.Patch{}, err
		}
		patch.Description = &description
	}
	if flags.Changed("priority") {
		priority := todo.Priority(values.priority)
		patch.Priority = &priority
	}
	if flags.Changed("due") {
		due, err := todo.ParseDueDate(values.due)
		if err != nil {
			return todo.Patch{}, err
		}
		if due == nil {
			patch.ClearDueDate = true
		} else {
			patch.DueDate = due
		}
	}
	if values.clearDue {
		patch.ClearDueDate = true
	}
	return patch, nil
}
