package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func backends(t *testing.T) map[string]Backend {
	t.Helper()

	fileStore, err := NewFileStore(filepath.Join(t.TempDir(), "files"))
	if err != nil {
		t.Fatalf("open file store: %v", err)
	}
	sqliteStore, err := OpenSQLite(filepath.Join(t.TempDir(), "db", "todos.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	memorySQLite, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("open sqlite memory: %v", err)
	}

	stores := map[string]Backend{
		"memory":        NewMemory(),
		"file":          fileStore,
		"sqlite":        sqliteStore,
		"sqlite-memory": memorySQLite,
	}
	t.Cleanup(func() {
		for name, store := range stores {
			if err := store.Close(); err != nil {
				t.Errorf("close %s: %v", name, err)
			}
		}
	})
	return stores
}

func TestAdapterContract(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if _, err := store.Read(ctx, "todos"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected ErrNotFound for absent key, got %v", err)
			}

			if err := store.Write(ctx, "todos", []byte(`[{"id":"a"}]`)); err != nil {
				t.Fatalf("write: %v", err)
			}
			got, err := store.Read(ctx, "todos")
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if string(got) != `[{"id":"a"}]` {
				t.Fatalf("expected written bytes back, got %q", got)
			}

			if err := store.Write(ctx, "todos", []byte(`[]`)); err != nil {
				t.Fatalf("overwrite: %v", err)
			}
			got, err = store.Read(ctx, "todos")
			if err != nil {
				t.Fatalf("read after overwrite: %v", err)
			}
			if string(got) != `[]` {
				t.Fatalf("expected overwritten bytes, got %q", got)
			}

			if _, err := store.Read(ctx, "other"); !errors.Is(err, ErrNotFound) {
				t.Fatalf("expected keys to be independent, got %v", err)
			}

			if err := store.Write(ctx, "  ", []byte("x")); !errors.Is(err, ErrInvalidKey) {
				t.Fatalf("expected ErrInvalidKey on write, got %v", err)
			}
			if _, err := store.Read(ctx, ""); !errors.Is(err, ErrInvalidKey) {
				t.Fatalf("expected ErrInvalidKey on read, got %v", err)
			}
		})
	}
}

func TestAdapterEmptyValue(t *testing.T) {
	ctx := context.Background()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Write(ctx, "empty", nil); err != nil {
				t.Fatalf("write: %v", err)
			}
			got, err := store.Read(ctx, "empty")
			if err != nil {
				t.Fatalf("expected empty value to exist, got %v", err)
			}
			if len(got) != 0 {
				t.Fatalf("expected empty value, got %q", got)
			}
		})
	}
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()

	value := []byte("abc")
	if err := mem.Write(ctx, "k", value); err != nil {
		t.Fatalf("write: %v", err)
	}
	value[0] = 'z'

	got, _ := mem.Read(ctx, "k")
	if string(got) != "abc" {
		t.Fatalf("expected stored copy, got %q", got)
	}
	got[0] = 'y'
	again, _ := mem.Read(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("expected read copy, got %q", again)
	}
}

func TestMemoryInjectedFailures(t *testing.T) {
	ctx := context.Background()
	mem := NewMemory()
	boom := errors.New("boom")

	mem.FailWrites(boom)
	if err := mem.Write(ctx, "k", []byte("v")); !errors.Is(err, boom) {
		t.Fatalf("expected injected write error, got %v", err)
	}
	if mem.WriteCount() != 1 {
		t.Fatalf("expected failed write to count, got %d", mem.WriteCount())
	}
	mem.FailWrites(nil)

	mem.FailReads(boom)
	if _, err := mem.Read(ctx, "k"); !errors.Is(err, boom) {
		t.Fatalf("expected injected read error, got %v", err)
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for name, store := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := store.Write(ctx, "k", []byte("v")); err == nil {
				t.Fatal("expected write with cancelled context to fail")
			}
		})
	}
}

func TestFileStoreLayout(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if err := store.Write(ctx, "neomorphism_todos", []byte("[]")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "neomorphism_todos.json")); err != nil {
		t.Fatalf("expected key file: %v", err)
	}

	if got := store.Path("../escape/me"); filepath.Dir(got) != dir {
		t.Fatalf("expected sanitized key to stay inside dir, got %s", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, entry := range entries {
		if filepath.Ext(entry.Name()) != ".json" && filepath.Ext(entry.Name()) != ".lock" {
			t.Fatalf("unexpected leftover file %s", entry.Name())
		}
	}
}

func TestFileStoreSkipsIdenticalWrite(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if err := store.Write(ctx, "k", []byte("same")); err != nil {
		t.Fatalf("write: %v", err)
	}
	before, err := os.Stat(store.Path("k"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if err := store.Write(ctx, "k", []byte("same")); err != nil {
		t.Fatalf("second write: %v", err)
	}
	after, err := os.Stat(store.Path("k"))
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !os.SameFile(before, after) {
		t.Fatal("expected identical write to leave the file in place")
	}
}

func TestSQLitePersistsAcrossOpens(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "todos.db")

	first, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := first.Write(ctx, "k", []byte("persisted")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	got, err := second.Read(ctx, "k")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(got, []byte("persisted")) {
		t.Fatalf("expected persisted value, got %q", got)
	}
	if second.Path() != path {
		t.Fatalf("expected path %s, got %s", path, second.Path())
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		kind     string
		location string
		wantErr  bool
	}{
		{kind: "memory"},
		{kind: "FILE", location: filepath.Join(dir, "files")},
		{kind: " sqlite ", location: filepath.Join(dir, "todos.db")},
		{kind: "redis", wantErr: true},
		{kind: "file", location: "", wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.kind, func(t *testing.T) {
			kind, err := ParseKind(tc.kind)
			if err != nil {
				if !tc.wantErr {
					t.Fatalf("parse kind: %v", err)
				}
				if !errors.Is(err, ErrUnknownKind) {
					t.Fatalf("expected ErrUnknownKind, got %v", err)
				}
				return
			}

			backend, err := Open(kind, tc.location)
			if tc.wantErr {
				if err == nil {
					backend.Close()
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			if err := backend.Close(); err != nil {
				t.Fatalf("close: %v", err)
			}
		})
	}
}
