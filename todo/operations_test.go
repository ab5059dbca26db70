package todo

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestAddThenQuery(t *testing.T) {
	store, _, _ := openTestStore(t)

	result := store.Add("  Buy milk  ")
	if !result.OK() || result.Outcome != Applied {
		t.Fatalf("expected add to apply, got %s (%v)", result.Outcome, result.Reason)
	}

	found := store.Query(Filter{Search: "milk"})
	if len(found) != 1 {
		t.Fatalf("expected 1 match, got %d", len(found))
	}
	got := found[0]
	if got.Text != "Buy milk" {
		t.Errorf("expected trimmed text %q, got %q", "Buy milk", got.Text)
	}
	if got.Completed {
		t.Error("expected new todo to be pending")
	}
	if got.Priority != PriorityMedium {
		t.Errorf("expected medium priority, got %q", got.Priority)
	}
	if got.DueDate != nil || got.UpdatedAt != nil {
		t.Errorf("expected no due date or update time, got %v / %v", got.DueDate, got.UpdatedAt)
	}
	if got.CreatedAt.IsZero() || got.CreatedAt.Location() != time.UTC {
		t.Errorf("expected UTC creation time, got %v", got.CreatedAt)
	}
}

func TestAddRejectsEmptyText(t *testing.T) {
	store, _, _ := openTestStore(t)
	mustAdd(t, store, "Existing")
	before := store.Todos()

	for _, text := range []string{"", "   ", "\t\n"} {
		result := store.Add(text)
		if result.OK() {
			t.Fatalf("add %q: expected rejection", text)
		}
		if !errors.Is(result.Err(), ErrEmptyText) {
			t.Fatalf("add %q: expected ErrEmptyText, got %v", text, result.Err())
		}
	}

	after := store.Todos()
	if len(after) != len(before) || after[0].ID != before[0].ID {
		t.Fatal("expected collection unchanged")
	}
}

func TestAddRejectsLongText(t *testing.T) {
	store, _, _ := openTestStore(t)

	if result := store.Add(strings.Repeat("a", MaxTextLength)); !result.OK() {
		t.Fatalf("expected max-length text to be accepted, got %v", result.Err())
	}
	if result := store.Add(strings.Repeat("a", MaxTextLength+1)); !errors.Is(result.Err(), ErrTextTooLong) {
		t.Fatalf("expected ErrTextTooLong, got %v", result.Err())
	}
}

func TestAddPrepends(t *testing.T) {
	store, _, _ := openTestStore(t)

	mustAdd(t, store, "first")
	mustAdd(t, store, "second")
	mustAdd(t, store, "third")

	todos := store.Todos()
	got := []string{todos[0].Text, todos[1].Text, todos[2].Text}
	if strings.Join(got, ",") != "third,second,first" {
		t.Fatalf("expected newest first, got %v", got)
	}
}

func TestAddWithOptions(t *testing.T) {
	store, _, _ := openTestStore(t)
	due := time.Date(2025, 2, 1, 12, 0, 0, 0, time.FixedZone("EST", -5*60*60))

	result := store.AddWithOptions("Plan trip", AddOptions{
		Description: "  flights and hotel  ",
		Priority:    PriorityPtr(" HIGH "),
		DueDate:     &due,
	})
	if result.Outcome != Applied {
		t.Fatalf("expected applied, got %s (%v)", result.Outcome, result.Reason)
	}

	got := result.Todo
	if got.Description != "flights and hotel" {
		t.Errorf("expected trimmed description, got %q", got.Description)
	}
	if got.Priority != PriorityHigh {
		t.Errorf("expected high priority, got %q", got.Priority)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) || got.DueDate.Location() != time.UTC {
		t.Errorf("expected due date normalized to UTC, got %v", got.DueDate)
	}

	if result := store.AddWithOptions("x", AddOptions{Priority: PriorityPtr("urgent")}); !errors.Is(result.Err(), ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got %v", result.Err())
	}
}

func TestToggleTwiceRestores(t *testing.T) {
	store, _, _ := openTestStore(t)
	item := mustAdd(t, store, "Buy milk")

	first := store.ToggleCompleted(item.ID)
	if first.Outcome != Applied || !first.Todo.Completed {
		t.Fatalf("expected first toggle to complete, got %+v", first)
	}
	second := store.ToggleCompleted(first.Todo.ID)
	if second.Outcome != Applied || second.Todo.Completed != item.Completed {
		t.Fatalf("expected second toggle to restore, got %+v", second)
	}
	if second.Todo.UpdatedAt == nil {
		t.Fatal("expected toggle to set UpdatedAt")
	}
}

func TestToggleUnknownID(t *testing.T) {
	store, _, _ := openTestStore(t)
	mustAdd(t, store, "Buy milk")

	result := store.ToggleCompleted("missing")
	if result.Outcome != Rejected || !errors.Is(result.Err(), ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound, got %s (%v)", result.Outcome, result.Err())
	}
}

func TestSetCompleted(t *testing.T) {
	store, _, _ := openTestStore(t)
	item := mustAdd(t, store, "Buy milk")

	if result := store.SetCompleted(item.ID, true); result.Outcome != Applied || !result.Todo.Completed {
		t.Fatalf("expected applied completion, got %+v", result)
	}
	if result := store.SetCompleted(item.ID, true); result.Outcome != Unchanged {
		t.Fatalf("expected unchanged on repeat, got %s", result.Outcome)
	}
	if result := store.SetCompleted(item.ID, false); result.Outcome != Applied || result.Todo.Completed {
		t.Fatalf("expected applied reopen, got %+v", result)
	}
}

func TestRemoveDeletesExactlyOne(t *testing.T) {
	store, _, _ := openTestStore(t)
	var ids []ID
	for _, text := range []string{"a", "b", "c", "d"} {
		ids = append(ids, mustAdd(t, store, text).ID)
	}

	result := store.Remove(ids[1])
	if result.Outcome != Applied || result.Todo.ID != ids[1] {
		t.Fatalf("expected removal of %s, got %+v", ids[1], result)
	}

	todos := store.Todos()
	if len(todos) != len(ids)-1 {
		t.Fatalf("expected %d todos, got %d", len(ids)-1, len(todos))
	}
	for _, item := range todos {
		if item.ID == ids[1] {
			t.Fatalf("expected %s to be gone", ids[1])
		}
	}

	if result := store.Remove(ids[1]); !errors.Is(result.Err(), ErrTodoNotFound) {
		t.Fatalf("expected second removal rejected, got %v", result.Err())
	}
}

func TestUpdatePreservesIdentity(t *testing.T) {
	store, _, _ := openTestStore(t)
	item := mustAdd(t, store, "Buy milk")

	text := "x"
	result := store.Update(item.ID, Patch{Text: &text})
	if result.Outcome != Applied {
		t.Fatalf("expected applied, got %s (%v)", result.Outcome, result.Reason)
	}

	got, _ := store.Get(item.ID)
	if got.ID != item.ID {
		t.Errorf("expected ID %s, got %s", item.ID, got.ID)
	}
	if !got.CreatedAt.Equal(item.CreatedAt) {
		t.Errorf("expected CreatedAt %v, got %v", item.CreatedAt, got.CreatedAt)
	}
	if got.Text != "x" {
		t.Errorf("expected text x, got %q", got.Text)
	}
	if got.UpdatedAt == nil || !got.UpdatedAt.After(got.CreatedAt) {
		t.Errorf("expected UpdatedAt after CreatedAt, got %v", got.UpdatedAt)
	}
	if got.Priority != item.Priority || got.Completed != item.Completed {
		t.Error("expected unspecified fields untouched")
	}
}

func TestUpdateRejectsBlankTextAtomically(t *testing.T) {
	store, _, _ := openTestStore(t)
	item := mustAdd(t, store, "Buy milk")

	blank := "   "
	completed := true
	result := store.Update(item.ID, Patch{Text: &blank, Completed: &completed})
	if !errors.Is(result.Err(), ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", result.Err())
	}

	got, _ := store.Get(item.ID)
	if got.Text != "Buy milk" || got.Completed {
		t.Fatalf("expected no part of the patch applied, got %+v", got)
	}
}

func TestUpdateOutcomes(t *testing.T) {
	due := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	same := "Buy milk"
	description := "  2%  "
	bad := Priority("urgent")

	cases := []struct {
		name    string
		patch   Patch
		outcome Outcome
		wantErr error
		check   func(t *testing.T, got Todo)
	}{
		{name: "empty patch", patch: Patch{}, outcome: Unchanged},
		{name: "same text", patch: Patch{Text: &same}, outcome: Unchanged},
		{name: "clear absent due date", patch: Patch{ClearDueDate: true}, outcome: Unchanged},
		{
			name:    "description trimmed",
			patch:   Patch{Description: &description},
			outcome: Applied,
			check: func(t *testing.T, got Todo) {
				if got.Description != "2%" {
					t.Fatalf("expected trimmed description, got %q", got.Description)
				}
			},
		},
		{
			name:    "priority normalized",
			patch:   Patch{Priority: PriorityPtr("Low")},
			outcome: Applied,
			check: func(t *testing.T, got Todo) {
				if got.Priority != PriorityLow {
					t.Fatalf("expected low priority, got %q", got.Priority)
				}
			},
		},
		{
			name:    "due date set",
			patch:   Patch{DueDate: &due},
			outcome: Applied,
			check: func(t *testing.T, got Todo) {
				if got.DueDate == nil || !got.DueDate.Equal(due) {
					t.Fatalf("expected due date %v, got %v", due, got.DueDate)
				}
			},
		},
		{name: "invalid priority", patch: Patch{Priority: &bad}, outcome: Rejected, wantErr: ErrInvalidPriority},
		{name: "set and clear due", patch: Patch{DueDate: &due, ClearDueDate: true}, outcome: Rejected, wantErr: ErrInvalidPatch},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, _, _ := openTestStore(t)
			item := mustAdd(t, store, "Buy milk")

			result := store.Update(item.ID, tc.patch)
			if result.Outcome != tc.outcome {
				t.Fatalf("expected %s, got %s (%v)", tc.outcome, result.Outcome, result.Reason)
			}
			if tc.wantErr != nil && !errors.Is(result.Err(), tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, result.Err())
			}
			if tc.outcome == Unchanged && result.Todo.UpdatedAt != nil {
				t.Fatal("expected unchanged update not to touch UpdatedAt")
			}
			if tc.check != nil {
				got, _ := store.Get(item.ID)
				tc.check(t, got)
			}
		})
	}
}

func TestUpdateClearsDueDate(t *testing.T) {
	store, _, _ := openTestStore(t)
	due := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	item := store.AddWithOptions("Pay rent", AddOptions{DueDate: &due}).Todo

	result := store.Update(item.ID, Patch{ClearDueDate: true})
	if result.Outcome != Applied || result.Todo.DueDate != nil {
		t.Fatalf("expected due date cleared, got %+v", result)
	}
}

func TestUpdateUnknownID(t *testing.T) {
	store, _, _ := openTestStore(t)

	text := "x"
	if result := store.Update("missing", Patch{Text: &text}); !errors.Is(result.Err(), ErrTodoNotFound) {
		t.Fatalf("expected ErrTodoNotFound, got %v", result.Err())
	}
}

func TestOutcomeString(t *testing.T) {
	for outcome, want := range map[Outcome]string{
		Applied:     "applied",
		Unchanged:   "unchanged",
		Rejected:    "rejected",
		Outcome(42): "unknown",
	} {
		if got := outcome.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}

func TestResultErrOnlyForRejections(t *testing.T) {
	if err := (Result{Outcome: Unchanged, Reason: ErrEmptyText}).Err(); err != nil {
		t.Fatalf("expected nil error for unchanged result, got %v", err)
	}
	if err := (Result{Outcome: Rejected, Reason: ErrEmptyText}).Err(); !errors.Is(err, ErrEmptyText) {
		t.Fatalf("expected ErrEmptyText, got %v", err)
	}
}
