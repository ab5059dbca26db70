// Package storage provides key-value byte stores used to persist todo lists.
//
// Adapter is the only contract the todo package depends on. Memory keeps
// values in process, FileStore writes one file per key, and SQLite keeps
// every key in a single table using pure-Go SQLite (modernc.org/sqlite).
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/amonks/neotodo/internal/validation"
)

var (
	// ErrNotFound is returned by Read when a key has never been written.
	ErrNotFound = errors.New("key not found")

	// ErrInvalidKey is returned when a key is empty.
	ErrInvalidKey = errors.New("storage key cannot be empty")

	// ErrUnknownKind is returned by Open for an unrecognized backend name.
	ErrUnknownKind = errors.New("unknown storage kind")
)

// Adapter reads and writes opaque byte payloads by key.
type Adapter interface {
	// Read returns the value stored under key, or ErrNotFound.
	Read(ctx context.Context, key string) ([]byte, error)

	// Write replaces the value stored under key.
	Write(ctx context.Context, key string, value []byte) error
}

// Backend is an Adapter that holds resources until closed.
type Backend interface {
	Adapter
	io.Closer
}

// Kind names a storage backend.
type Kind string

const (
	// KindMemory keeps values in process memory.
	KindMemory Kind = "memory"

	// KindFile writes one file per key into a directory.
	KindFile Kind = "file"

	// KindSQLite stores keys in a SQLite database file.
	KindSQLite Kind = "sqlite"
)

// ValidKinds returns all backend kinds.
func ValidKinds() []Kind {
	return []Kind{KindFile, KindSQLite, KindMemory}
}

// ParseKind parses a backend name, ignoring case and surrounding whitespace.
func ParseKind(value string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(value)))
	for _, valid := range ValidKinds() {
		if kind == valid {
			return kind, nil
		}
	}
	return "", validation.FormatInvalidValueError(ErrUnknownKind, Kind(value), ValidKinds())
}

// Open opens the backend of the given kind. For KindFile, location is a
// directory; for KindSQLite, a database path. KindMemory ignores location.
func Open(kind Kind, location string) (Backend, error) {
	switch kind {
	case KindMemory:
		return NewMemory(), nil
	case KindFile:
		return NewFileStore(location)
	case KindSQLite:
		return OpenSQLite(location)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	return nil
}
