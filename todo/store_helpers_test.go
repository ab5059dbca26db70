package todo

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/amonks/neotodo/storage"
)

var testEpoch = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

// fakeClock advances by one second on every reading.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: testEpoch}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

// sequenceIDs hands out the given IDs in order, then empty IDs.
func sequenceIDs(ids ...ID) IDGenerator {
	var mu sync.Mutex
	return IDGeneratorFunc(func() ID {
		mu.Lock()
		defer mu.Unlock()
		if len(ids) == 0 {
			return ""
		}
		id := ids[0]
		ids = ids[1:]
		return id
	})
}

type logEntry struct {
	context string
	err     error
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

func (l *recordingLogger) LogError(context string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, logEntry{context: context, err: err})
}

func (l *recordingLogger) Entries() []logEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]logEntry(nil), l.entries...)
}

type testStoreOptions struct {
	adapter storage.Adapter
	ids     IDGenerator
}

// openTestStore returns an initialized store over a fresh in-memory adapter.
// The store is disposed when the test ends.
func openTestStore(t *testing.T) (*Store, *storage.Memory, *recordingLogger) {
	t.Helper()
	mem := storage.NewMemory()
	store, logger := openTestStoreWith(t, testStoreOptions{adapter: mem})
	return store, mem, logger
}

func openTestStoreWith(t *testing.T, opts testStoreOptions) (*Store, *recordingLogger) {
	t.Helper()

	logger := &recordingLogger{}
	store := New(opts.adapter, Options{
		Clock:  newFakeClock().Now,
		IDs:    opts.ids,
		Logger: logger,
	})
	if err := store.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Dispose(context.Background()); err != nil {
			t.Errorf("dispose: %v", err)
		}
	})
	return store, logger
}

func mustAdd(t *testing.T, store *Store, text string) Todo {
	t.Helper()
	result := store.Add(text)
	if result.Outcome != Applied {
		t.Fatalf("add %q: expected applied, got %s (%v)", text, result.Outcome, result.Reason)
	}
	return result.Todo
}

func mustFlush(t *testing.T, store *Store) {
	t.Helper()
	if err := store.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
}

// persisted decodes what the adapter currently holds under the default key.
func persisted(t *testing.T, adapter storage.Adapter) []Todo {
	t.Helper()
	data, err := adapter.Read(context.Background(), DefaultStorageKey)
	if err != nil {
		t.Fatalf("read persisted todos: %v", err)
	}
	todos, err := Decode(data)
	if err != nil {
		t.Fatalf("decode persisted todos: %v", err)
	}
	return todos
}
