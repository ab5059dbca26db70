package main

import (
	"fmt"

	"github.com/amonks/neotodo/todo"
)

func todoEmptyListMessage(total int, filter todo.Filter) string {
	if total == 0 {
		return "No todos found."
	}

	if filter.Status != "" && filter.Status != todo.StatusAll {
		return fmt.Sprintf("No %s todos match.", filter.Status)
	}
	return "No todos match."
}
