package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amonks/neotodo/internal/config"
	"github.com/amonks/neotodo/internal/logging"
	"github.com/amonks/neotodo/internal/paths"
	"github.com/amonks/neotodo/storage"
	"github.com/amonks/neotodo/todo"
)

const sqliteFileName = "todos.db"

// settings is the resolved storage and logging configuration for one run.
type settings struct {
	Kind      storage.Kind
	Location  string
	Key       string
	IDFormat  string
	LogLevel  string
	LogFormat string
}

// overrides holds global flag values that were explicitly set.
type overrides struct {
	Storage  *string
	Path     *string
	Key      *string
	LogLevel *string
}

func flagOverrides(cmd *cobra.Command) overrides {
	var o overrides
	flags := cmd.Flags()
	if flags.Changed("storage") {
		o.Storage = &globalStorage
	}
	if flags.Changed("path") {
		o.Path = &globalPath
	}
	if flags.Changed("key") {
		o.Key = &globalKey
	}
	if flags.Changed("log-level") {
		o.LogLevel = &globalLogLevel
	}
	return o
}

func resolveSettings(cfg *config.Config, o overrides) (settings, error) {
	if cfg == nil {
		cfg = &config.Config{}
	}

	pick := func(flag *string, value string) string {
		if flag != nil {
			return strings.TrimSpace(*flag)
		}
		return value
	}

	kindName := pick(o.Storage, cfg.Storage.Kind)
	if kindName == "" {
		kindName = string(storage.KindFile)
	}
	kind, err := storage.ParseKind(kindName)
	if err != nil {
		return settings{}, err
	}

	location, err := paths.ExpandHome(pick(o.Path, cfg.Storage.Path))
	if err != nil {
		return settings{}, err
	}
	if location == "" {
		location, err = defaultLocation(kind)
		if err != nil {
			return settings{}, err
		}
	}

	key := pick(o.Key, cfg.Storage.Key)
	if key == "" {
		key = todo.DefaultStorageKey
	}

	logLevel := pick(o.LogLevel, cfg.Log.Level)

	return settings{
		Kind:      kind,
		Location:  location,
		Key:       key,
		IDFormat:  cfg.Todo.IDFormat,
		LogLevel:  logLevel,
		LogFormat: cfg.Log.Format,
	}, nil
}

func defaultLocation(kind storage.Kind) (string, error) {
	switch kind {
	case storage.KindMemory:
		return "", nil
	case storage.KindSQLite:
		dir, err := paths.DefaultStateDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, sqliteFileName), nil
	default:
		return paths.DefaultStateDir()
	}
}

func idGenerator(format string) (todo.IDGenerator, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "uuid":
		return todo.UUIDs(), nil
	case "short":
		return todo.ShortIDs(), nil
	default:
		return nil, fmt.Errorf("unknown id format %q (want uuid or short)", format)
	}
}

// session is an initialized store plus the resources behind it.
type session struct {
	store   *todo.Store
	backend storage.Backend
	logger  *logging.Logger
}

// openSession loads configuration for the working directory, opens the
// configured backend, and initializes a store on it.
func openSession(cmd *cobra.Command) (*session, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	cfg, err := config.Load(cwd)
	if err != nil {
		return nil, err
	}
	resolved, err := resolveSettings(cfg, flagOverrides(cmd))
	if err != nil {
		return nil, err
	}

	logger, err := logging.FromConfig(cmd.ErrOrStderr(), resolved.LogLevel, resolved.LogFormat)
	if err != nil {
		return nil, err
	}
	generator, err := idGenerator(resolved.IDFormat)
	if err != nil {
		return nil, err
	}

	backend, err := storage.Open(resolved.Kind, resolved.Location)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", resolved.Kind, err)
	}
	logger.Info("opened storage", "kind", resolved.Kind, "location", resolved.Location, "key", resolved.Key)

	store := todo.New(backend, todo.Options{
		Key:    resolved.Key,
		IDs:    generator,
		Logger: logger,
	})
	if err := store.Initialize(commandContext(cmd)); err != nil {
		backend.Close()
		return nil, err
	}
	logger.Debug("loaded todos", "count", store.Len())

	return &session{store: store, backend: backend, logger: logger}, nil
}

// Close flushes pending writes and releases the backend.
func (s *session) Close(ctx context.Context) error {
	s.logger.Debug("closing store", "todos", s.store.Len())
	return errors.Join(s.store.Dispose(ctx), s.backend.Close())
}

// resolve maps an ID prefix to a stored todo.
func (s *session) resolve(prefix string) (todo.Todo, error) {
	id, err := s.store.Resolve(prefix)
	if err != nil {
		return todo.Todo{}, err
	}
	item, ok := s.store.Get(id)
	if !ok {
		return todo.Todo{}, fmt.Errorf("%w: %s", todo.ErrTodoNotFound, prefix)
	}
	return item, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// withSession runs fn against an open session and closes it afterwards.
func withSession(cmd *cobra.Command, fn func(*session) error) (err error) {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.Close(commandContext(cmd)); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	return fn(s)
}
