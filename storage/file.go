package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// FileStore keeps each key in its own JSON file inside a directory.
// Writes go to a temp file that is renamed into place under an exclusive
// lock, so readers never observe a partial payload.
type FileStore struct {
	dir string
}

// NewFileStore returns a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("file store directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory the store writes into.
func (s *FileStore) Dir() string {
	return s.dir
}

// Path returns the file a key is stored in.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, fileName(key)+".json")
}

func (s *FileStore) lockPath(key string) string {
	return filepath.Join(s.dir, "."+fileName(key)+".lock")
}

// Read returns the contents of the key's file.
func (s *FileStore) Read(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var data []byte
	err := withFileLock(s.lockPath(key), func() error {
		var err error
		data, err = os.ReadFile(s.Path(key))
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", key, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Write atomically replaces the key's file with value.
func (s *FileStore) Write(ctx context.Context, key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	path := s.Path(key)
	return withFileLock(s.lockPath(key), func() error {
		if existing, err := os.ReadFile(path); err == nil {
			if bytes.Equal(existing, value) {
				return nil
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("read %s: %w", key, err)
		}

		tmpFile, err := os.CreateTemp(s.dir, filepath.Base(path)+".tmp")
		if err != nil {
			return fmt.Errorf("create temp file: %w", err)
		}
		name := tmpFile.Name()
		_, err = tmpFile.Write(value)
		if err1 := tmpFile.Close(); err1 != nil && err == nil {
			err = err1
		}
		if err != nil {
			os.Remove(name)
			return fmt.Errorf("write temp file: %w", err)
		}

		if err := os.Rename(name, path); err != nil {
			os.Remove(name)
			return fmt.Errorf("rename temp file: %w", err)
		}
		return nil
	})
}

// Close is a no-op.
func (s *FileStore) Close() error {
	return nil
}

// withFileLock executes fn while holding an exclusive lock on the file at path.
// Creates the file if it doesn't exist.
func withFileLock(path string, fn func() error) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer f.Close()

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN)

	return fn()
}

// fileName maps a key to a safe file name.
func fileName(key string) string {
	var builder strings.Builder
	for _, char := range strings.TrimSpace(key) {
		switch {
		case char >= 'a' && char <= 'z', char >= 'A' && char <= 'Z', char >= '0' && char <= '9':
			builder.WriteRune(char)
		case char == '-' || char == '_' || char == '.':
			builder.WriteRune(char)
		default:
			builder.WriteByte('_')
		}
	}
	return strings.TrimLeft(builder.String(), ".")
}
