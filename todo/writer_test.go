package todo

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// gatedAdapter records writes in order and blocks each one until released.
type gatedAdapter struct {
	mu      sync.Mutex
	writes  [][]byte
	started chan struct{}
	release chan struct{}
}

func newGatedAdapter() *gatedAdapter {
	return &gatedAdapter{
		started: make(chan struct{}, 100),
		release: make(chan struct{}),
	}
}

func (a *gatedAdapter) Read(context.Context, string) ([]byte, error) {
	return []byte("[]"), nil
}

func (a *gatedAdapter) Write(_ context.Context, _ string, value []byte) error {
	a.started <- struct{}{}
	<-a.release
	a.mu.Lock()
	defer a.mu.Unlock()
	a.writes = append(a.writes, append([]byte(nil), value...))
	return nil
}

func (a *gatedAdapter) Writes() [][]byte {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([][]byte(nil), a.writes...)
}

func TestWriterWritesEverySnapshotInOrder(t *testing.T) {
	adapter := newGatedAdapter()
	store, _ := openTestStoreWith(t, testStoreOptions{adapter: adapter})

	// Hold the first write so the next mutations pile up behind it.
	first := mustAdd(t, store, "first")
	<-adapter.started

	for _, text := range []string{"second", "third", "fourth"} {
		mustAdd(t, store, text)
	}
	if result := store.ToggleCompleted(first.ID); result.Outcome != Applied {
		t.Fatalf("toggle: expected applied, got %s", result.Outcome)
	}
	close(adapter.release)
	mustFlush(t, store)

	writes := adapter.Writes()
	if len(writes) != 5 {
		t.Fatalf("expected one write per applied mutation (5), got %d", len(writes))
	}

	var counts []int
	var firstCompleted []bool
	for i, payload := range writes {
		todos, err := Decode(payload)
		if err != nil {
			t.Fatalf("decode write %d: %v", i, err)
		}
		counts = append(counts, len(todos))
		firstCompleted = append(firstCompleted, todos[0].Completed)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 4, 4}, counts); diff != "" {
		t.Fatalf("unexpected todo counts per write (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]bool{false, false, false, false, true}, firstCompleted); diff != "" {
		t.Fatalf("unexpected completion per write (-want +got):\n%s", diff)
	}

	last, err := Decode(writes[len(writes)-1])
	if err != nil {
		t.Fatalf("decode last write: %v", err)
	}
	if diff := cmp.Diff(store.Todos(), last); diff != "" {
		t.Fatalf("last write is not the final state (-memory +written):\n%s", diff)
	}
}

func TestFlushHonorsContext(t *testing.T) {
	adapter := newGatedAdapter()
	store, _ := openTestStoreWith(t, testStoreOptions{adapter: adapter})
	t.Cleanup(func() { close(adapter.release) })

	mustAdd(t, store, "stuck")
	<-adapter.started

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := store.Flush(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
