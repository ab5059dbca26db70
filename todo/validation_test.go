package todo

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestValidateText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr error
	}{
		{"valid short", "Buy milk", nil},
		{"valid long", strings.Repeat("a", MaxTextLength), nil},
		{"valid long unicode", strings.Repeat("a", MaxTextLength-1) + "é", nil},
		{"surrounding whitespace ignored", "  " + strings.Repeat("a", MaxTextLength) + "  ", nil},
		{"empty", "", ErrEmptyText},
		{"whitespace", "   ", ErrEmptyText},
		{"too long", strings.Repeat("a", MaxTextLength+1), ErrTextTooLong},
		{"too long unicode", strings.Repeat("a", MaxTextLength) + "é", ErrTextTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateText(tt.text)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateText(%q) unexpected error: %v", tt.text, err)
				}
			} else if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateText(%q) = %v, want %v", tt.text, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePriority(t *testing.T) {
	for _, priority := range ValidPriorities() {
		if err := ValidatePriority(priority); err != nil {
			t.Errorf("ValidatePriority(%q) unexpected error: %v", priority, err)
		}
	}

	err := ValidatePriority("urgent")
	if !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", err)
	}
	if !strings.Contains(err.Error(), "low, medium, high") {
		t.Errorf("expected error to list valid priorities, got %q", err)
	}
}

func TestValidateTodo(t *testing.T) {
	valid := func() Todo {
		return Todo{ID: "a", Text: "x", Priority: PriorityLow, CreatedAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	}

	tests := []struct {
		name    string
		mutate  func(*Todo)
		wantErr error
	}{
		{"valid", func(*Todo) {}, nil},
		{"missing id", func(t *Todo) { t.ID = "" }, ErrMissingID},
		{"blank text", func(t *Todo) { t.Text = " " }, ErrEmptyText},
		{"bad priority", func(t *Todo) { t.Priority = "" }, ErrInvalidPriority},
		{"missing created at", func(t *Todo) { t.CreatedAt = time.Time{} }, ErrMissingCreatedAt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := valid()
			tt.mutate(&item)
			err := ValidateTodo(&item)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Path: "[0].text", Err: ErrEmptyText}

	if err.Error() != "[0].text: text cannot be empty" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, ErrEmptyText) {
		t.Error("expected ValidationError to unwrap")
	}
	if (&ValidationError{Err: ErrEmptyText}).Error() != "text cannot be empty" {
		t.Error("expected pathless error to use the underlying message")
	}
}
