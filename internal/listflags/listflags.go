// Package listflags registers the filter flags shared by list and export.
package listflags

import (
	"github.com/spf13/pflag"

	"github.com/amonks/neotodo/todo"
)

// Filter holds raw filter flag values.
type Filter struct {
	Search            string
	Status            string
	Priority          string
	SearchDescription bool
}

// Register adds the filter flags to flags.
func (f *Filter) Register(flags *pflag.FlagSet) {
	flags.StringVarP(&f.Search, "search", "s", "", "Only todos whose text contains this (case-insensitive)")
	flags.StringVar(&f.Status, "status", string(todo.StatusAll), "Filter by status (all, pending, active, completed)")
	flags.StringVarP(&f.Priority, "priority", "p", "all", "Filter by priority (all, low, medium, high)")
	flags.BoolVar(&f.SearchDescription, "search-description", false, "Also match --search against descriptions")
}

// Parse validates the flag values and returns the filter they describe.
func (f *Filter) Parse() (todo.Filter, error) {
	status, err := todo.ParseStatusFilter(f.Status)
	if err != nil {
		return todo.Filter{}, err
	}
	priority, err := todo.ParsePriorityFilter(f.Priority)
	if err != nil {
		return todo.Filter{}, err
	}
	return todo.Filter{
		Search:            f.Search,
		Status:            status,
		Priority:          priority,
		SearchDescription: f.SearchDescription,
	}, nil
}
