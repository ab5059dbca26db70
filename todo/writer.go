package todo

import (
	"context"
	"fmt"
	"sync"

	"github.com/amonks/neotodo/storage"
)

// writer persists snapshots one at a time on a background goroutine.
//
// Every enqueued snapshot is written exactly once, strictly in enqueue order,
// so an older snapshot never lands after a newer one.
type writer struct {
	adapter storage.Adapter
	key     string
	logger  ErrorLogger

	mu         sync.Mutex
	pending  [][]byte
	enqueued uint64
	written  uint64
	progress chan struct{}

	wake    chan struct{}
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

func newWriter(adapter storage.Adapter, key string, logger ErrorLogger) *writer {
	w := &writer{
		adapter:  adapter,
		key:      key,
		logger:   logger,
		progress: make(chan struct{}),
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *writer) enqueue(payload []byte) {
	w.mu.Lock()
	w.pending = append(w.pending, payload)
	w.enqueued++
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *writer) run() {
	defer close(w.stopped)
	for {
		select {
		case <-w.wake:
			w.drain()
		case <-w.done:
			w.drain()
			return
		}
	}
}

func (w *writer) drain() {
	for {
		w.mu.Lock()
		if len(w.pending) == 0 {
			w.mu.Unlock()
			return
		}
		payload := w.pending[0]
		w.pending[0] = nil
		w.pending = w.pending[1:]
		w.mu.Unlock()

		if err := w.adapter.Write(context.Background(), w.key, payload); err != nil {
			w.logger.LogError("save", fmt.Errorf("write todos: %w", err))
		}

		w.mu.Lock()
		w.written++
		close(w.progress)
		w.progress = make(chan struct{})
		w.mu.Unlock()
	}
}

// flush waits until everything enqueued before the call has been written.
func (w *writer) flush(ctx context.Context) error {
	w.mu.Lock()
	target := w.enqueued
	for w.written < target {
		progress := w.progress
		w.mu.Unlock()
		select {
		case <-progress:
		case <-ctx.Done():
			return ctx.Err()
		}
		w.mu.Lock()
	}
	w.mu.Unlock()
	return nil
}

// stop drains remaining snapshots and waits for the goroutine to exit.
func (w *writer) stop(ctx context.Context) error {
	w.once.Do(func() {
		close(w.done)
	})
	select {
	case <-w.stopped:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
