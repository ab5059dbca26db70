package todo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/amonks/neotodo/storage"
)

// maxIDAttempts bounds how many times Add asks the generator for an unused ID.
const maxIDAttempts = 8

// ErrorLogger receives failures that the store recovers from on its own,
// such as unreadable payloads and failed writes.
type ErrorLogger interface {
	LogError(context string, err error)
}

// ErrorLoggerFunc adapts a function to the ErrorLogger interface.
type ErrorLoggerFunc func(context string, err error)

// LogError calls fn.
func (fn ErrorLoggerFunc) LogError(context string, err error) {
	fn(context, err)
}

type noopLogger struct{}

func (noopLogger) LogError(string, error) {}

// Options configures a Store. Every field is optional.
type Options struct {
	// Key is the storage key. Defaults to DefaultStorageKey.
	Key string

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time

	// IDs generates todo IDs. Defaults to UUIDs().
	IDs IDGenerator

	// Logger receives recovered load and save failures. Defaults to discarding them.
	Logger ErrorLogger
}

type storeState int

const (
	stateLoading storeState = iota
	stateInitializing
	stateReady
	stateDisposed
)

// Store owns the todo collection and mediates every read and write of its
// persisted form. Construct it with New, then call Initialize before
// mutating it and Dispose when done.
type Store struct {
	adapter storage.Adapter
	key     string
	clock   func() time.Time
	ids     IDGenerator
	logger  ErrorLogger

	mu     sync.Mutex
	state  storeState
	todos  []Todo
	issued map[ID]struct{}
	writer *writer
}

// New returns a Store in the loading state.
func New(adapter storage.Adapter, opts Options) *Store {
	if opts.Key == "" {
		opts.Key = DefaultStorageKey
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.IDs == nil {
		opts.IDs = UUIDs()
	}
	if opts.Logger == nil {
		opts.Logger = noopLogger{}
	}

	return &Store{
		adapter: adapter,
		key:     opts.Key,
		clock:   opts.Clock,
		ids:     opts.IDs,
		logger:  opts.Logger,
		issued:  make(map[ID]struct{}),
	}
}

// Key returns the storage key the store persists under.
func (s *Store) Key() string {
	return s.key
}

// Initialize loads the persisted collection and makes the store ready.
//
// A missing, unreadable, or malformed payload leaves the store empty; the
// failure is reported to the logger rather than returned. Initialize only
// fails when called twice, with a cancelled context, or when Dispose is
// called before loading finishes.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	if s.state != stateLoading {
		s.mu.Unlock()
		return ErrAlreadyInitialized
	}
	s.state = stateInitializing
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		s.mu.Lock()
		if s.state == stateInitializing {
			s.state = stateLoading
		}
		s.mu.Unlock()
		return err
	}

	todos := s.load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != stateInitializing {
		// Dispose ran while the payload was loading.
		return ErrDisposed
	}
	s.todos = todos
	for _, item := range todos {
		s.issued[item.ID] = struct{}{}
	}
	s.writer = newWriter(s.adapter, s.key, s.logger)
	s.state = stateReady
	return nil
}

func (s *Store) load(ctx context.Context) []Todo {
	data, err := s.adapter.Read(ctx, s.key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		s.logger.LogError("load", fmt.Errorf("read todos: %w", err))
		return nil
	}

	todos, err := Decode(data)
	if err != nil {
		s.logger.LogError("load", fmt.Errorf("decode todos: %w", err))
		return nil
	}
	return todos
}

// Ready returns true once Initialize has completed and until Dispose is called.
func (s *Store) Ready() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == stateReady
}

// Flush waits until every write scheduled so far has been attempted.
func (s *Store) Flush(ctx context.Context) error {
	s.mu.Lock()
	w := s.writer
	s.mu.Unlock()
	if w == nil {
		return nil
	}
	return w.flush(ctx)
}

// Dispose flushes pending writes and stops the background writer. Later
// mutations are rejected with ErrDisposed. Calling Dispose again is a no-op.
func (s *Store) Dispose(ctx context.Context) error {
	s.mu.Lock()
	if s.state == stateDisposed {
		s.mu.Unlock()
		return nil
	}
	s.state = stateDisposed
	w := s.writer
	s.mu.Unlock()

	if w == nil {
		return nil
	}
	if err := w.flush(ctx); err != nil {
		return fmt.Errorf("flush todos: %w", err)
	}
	return w.stop(ctx)
}

// Todos returns a copy of the whole collection in stored order.
func (s *Store) Todos() []Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneTodos(s.todos)
}

// Len returns the number of todos.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.todos)
}

// Get returns a copy of the todo with the given ID.
func (s *Store) Get(id ID) (Todo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	index := s.indexLocked(id)
	if index < 0 {
		return Todo{}, false
	}
	return s.todos[index].Clone(), true
}

// IDIndex returns an index of all todo IDs in the store.
func (s *Store) IDIndex() IDIndex {
	s.mu.Lock()
	defer s.mu.Unlock()
	return NewIDIndex(s.todos)
}

// Resolve returns the full ID of the todo whose ID starts with prefix.
func (s *Store) Resolve(prefix string) (ID, error) {
	return s.IDIndex().Resolve(prefix)
}

// ResolveAll resolves each prefix in order. Prefixes naming a todo that an
// earlier prefix already named are dropped.
func (s *Store) ResolveAll(prefixes []string) ([]ID, error) {
	if len(prefixes) == 0 {
		return nil, fmt.Errorf("no todo IDs provided")
	}

	index := s.IDIndex()
	resolved := make([]ID, 0, len(prefixes))
	seen := make(map[ID]struct{}, len(prefixes))
	for _, prefix := range prefixes {
		id, err := index.Resolve(prefix)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		resolved = append(resolved, id)
	}
	return resolved, nil
}

func (s *Store) indexLocked(id ID) int {
	for i := range s.todos {
		if s.todos[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) mutableLocked() error {
	switch s.state {
	case stateReady:
		return nil
	case stateDisposed:
		return ErrDisposed
	default:
		return ErrNotReady
	}
}

func (s *Store) now() time.Time {
	return normalizeTime(s.clock())
}

func (s *Store) newIDLocked() (ID, error) {
	for range maxIDAttempts {
		id := s.ids.NewID()
		if id == "" {
			continue
		}
		if _, taken := s.issued[id]; taken {
			continue
		}
		s.issued[id] = struct{}{}
		return id, nil
	}
	return "", ErrIDExhausted
}

// syncLocked schedules a write of the whole collection as it is now.
func (s *Store) syncLocked() {
	payload, err := Encode(s.todos)
	if err != nil {
		s.logger.LogError("save", fmt.Errorf("encode todos: %w", err))
		return
	}
	s.writer.enqueue(payload)
}
