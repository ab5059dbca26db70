package todo

import (
	"fmt"

	"github.com/amonks/neotodo/internal/ids"
	internalstrings "github.com/amonks/neotodo/internal/strings"
)

// IDIndex indexes todo IDs for prefix matching and display.
type IDIndex struct {
	ids      []string
	original map[string]ID
}

// NewIDIndex builds an IDIndex from a slice of todos.
func NewIDIndex(todos []Todo) IDIndex {
	todoIDs := make([]string, 0, len(todos))
	original := make(map[string]ID, len(todos))
	for _, todo := range todos {
		todoIDs = append(todoIDs, string(todo.ID))
		original[internalstrings.NormalizeLower(string(todo.ID))] = todo.ID
	}
	return IDIndex{ids: ids.NormalizeUniqueIDs(todoIDs), original: original}
}

// Resolve returns the full todo ID for a prefix.
func (index IDIndex) Resolve(prefix string) (ID, error) {
	if prefix == "" {
		return "", ErrTodoNotFound
	}

	match, found, ambiguous := ids.MatchPrefixNormalized(index.ids, prefix)
	if !found {
		return "", fmt.Errorf("%w: %s", ErrTodoNotFound, prefix)
	}
	if ambiguous {
		return "", fmt.Errorf("%w: %s", ErrAmbiguousIDPrefix, prefix)
	}

	return index.original[match], nil
}

// PrefixLengths returns the shortest unique prefix length for each ID.
func (index IDIndex) PrefixLengths() map[string]int {
	return ids.UniquePrefixLengthsNormalized(index.ids)
}
