package todo

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/amonks/neotodo/internal/validation"
)

var (
	// ErrEmptyText is returned when a todo's text is empty after trimming.
	ErrEmptyText = errors.New("text cannot be empty")

	// ErrTextTooLong is returned when a todo's text exceeds MaxTextLength.
	ErrTextTooLong = errors.New("text exceeds maximum length")

	// ErrInvalidPriority is returned when a priority is not low, medium, or high.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrInvalidStatusFilter is returned when a status filter is not all, pending, or completed.
	ErrInvalidStatusFilter = errors.New("invalid status filter")

	// ErrInvalidPatch is returned when a patch contradicts itself.
	ErrInvalidPatch = errors.New("invalid patch")

	// ErrMissingID is returned when a todo has no ID.
	ErrMissingID = errors.New("todo id cannot be empty")

	// ErrMissingCreatedAt is returned when a todo has no creation time.
	ErrMissingCreatedAt = errors.New("todo must have created_at timestamp")

	// ErrDuplicateID is returned when two todos share an ID.
	ErrDuplicateID = errors.New("duplicate todo id")

	// ErrTodoNotFound is returned when a todo with the given ID doesn't exist.
	ErrTodoNotFound = errors.New("todo not found")

	// ErrAmbiguousIDPrefix is returned when an ID prefix matches multiple todos.
	ErrAmbiguousIDPrefix = errors.New("ambiguous todo ID prefix")

	// ErrNotReady is returned for mutations attempted before Initialize completes.
	ErrNotReady = errors.New("todo store is still loading")

	// ErrDisposed is returned for mutations attempted after Dispose.
	ErrDisposed = errors.New("todo store is disposed")

	// ErrAlreadyInitialized is returned when Initialize is called more than once.
	ErrAlreadyInitialized = errors.New("todo store already initialized")

	// ErrIDExhausted is returned when the ID generator keeps producing IDs already issued.
	ErrIDExhausted = errors.New("could not generate an unused todo id")

	// ErrMalformedPayload is returned when persisted data cannot be decoded.
	ErrMalformedPayload = errors.New("malformed todo payload")
)

// ValidationError locates a validation failure inside a payload.
type ValidationError struct {
	Path string // JSON path to the error location
	Err  error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateText checks if the text is valid. Surrounding whitespace is ignored.
func ValidateText(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyText
	}
	if length := utf8.RuneCountInString(text); length > MaxTextLength {
		return fmt.Errorf("%w: %d > %d", ErrTextTooLong, length, MaxTextLength)
	}
	return nil
}

// ValidatePriority checks if the priority is valid.
func ValidatePriority(priority Priority) error {
	if !priority.IsValid() {
		return validation.FormatInvalidValueError(ErrInvalidPriority, priority, ValidPriorities())
	}
	return nil
}

// ValidateTodo checks if a todo struct is valid.
func ValidateTodo(t *Todo) error {
	if t.ID == "" {
		return ErrMissingID
	}
	if err := ValidateText(t.Text); err != nil {
		return err
	}
	if err := ValidatePriority(t.Priority); err != nil {
		return err
	}
	if t.CreatedAt.IsZero() {
		return ErrMissingCreatedAt
	}
	return nil
}
