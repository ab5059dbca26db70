// Package config handles loading neotodo.toml configuration files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/amonks/neotodo/internal/paths"
)

// ProjectFileName is the per-directory config file.
const ProjectFileName = "neotodo.toml"

// DotEnvFileName is read for environment overrides when present.
const DotEnvFileName = ".env"

// Environment variables that override file configuration.
const (
	EnvStorage  = "NEOTODO_STORAGE"
	EnvPath     = "NEOTODO_PATH"
	EnvKey      = "NEOTODO_KEY"
	EnvLogLevel = "NEOTODO_LOG_LEVEL"
	EnvIDFormat = "NEOTODO_ID_FORMAT"
)

// Config represents the neotodo.toml configuration file.
type Config struct {
	Storage Storage `toml:"storage"`
	Todo    Todo    `toml:"todo"`
	Log     Log     `toml:"log"`
}

// Storage selects where the todo list is persisted.
type Storage struct {
	// Kind is the adapter name: file, sqlite, or memory.
	Kind string `toml:"kind"`

	// Path is the directory (file) or database path (sqlite).
	Path string `toml:"path"`

	// Key is the storage key the list is saved under.
	Key string `toml:"key"`
}

// Todo contains todo-related configuration.
type Todo struct {
	// IDFormat selects the ID generator: uuid or short.
	IDFormat string `toml:"id-format"`
}

// Log configures diagnostic output.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Load loads configuration from the global config file and dir's
// neotodo.toml, then applies environment overrides. Variables in dir's .env
// apply only when the process environment leaves them unset or blank.
// Returns an empty config if no config files exist.
func Load(dir string) (*Config, error) {
	globalPath, err := paths.GlobalConfigPath()
	if err != nil {
		return nil, err
	}

	globalCfg, _, err := loadConfigFile(globalPath)
	if err != nil {
		return nil, err
	}

	projectCfg, projectMeta, err := loadConfigFile(filepath.Join(dir, ProjectFileName))
	if err != nil {
		return nil, err
	}

	merged := mergeConfigs(globalCfg, projectCfg, projectMeta)

	dotenv, err := loadDotEnv(filepath.Join(dir, DotEnvFileName))
	if err != nil {
		return nil, err
	}
	merged.applyEnv(func(name string) (string, bool) {
		if value, ok := os.LookupEnv(name); ok && strings.TrimSpace(value) != "" {
			return value, true
		}
		value, ok := dotenv[name]
		return value, ok
	})

	if merged.Storage.Path, err = paths.ExpandHome(merged.Storage.Path); err != nil {
		return nil, err
	}
	return merged, nil
}

func loadConfigFile(path string) (*Config, toml.MetaData, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, toml.MetaData{}, nil
	}
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("read config file %s: %w", path, err)
	}

	var cfg Config
	meta, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, toml.MetaData{}, fmt.Errorf("parse config file %s: unknown key %s", path, undecoded[0])
	}

	return &cfg, meta, nil
}

func loadDotEnv(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return values, nil
}

func mergeConfigs(globalCfg, projectCfg *Config, projectMeta toml.MetaData) *Config {
	if globalCfg == nil {
		globalCfg = &Config{}
	}
	if projectCfg == nil {
		projectCfg = &Config{}
	}

	merged := Config{}
	merged.Storage.Kind = mergeString(projectMeta.IsDefined("storage", "kind"), projectCfg.Storage.Kind, globalCfg.Storage.Kind)
	merged.Storage.Path = mergeString(projectMeta.IsDefined("storage", "path"), projectCfg.Storage.Path, globalCfg.Storage.Path)
	merged.Storage.Key = mergeString(projectMeta.IsDefined("storage", "key"), projectCfg.Storage.Key, globalCfg.Storage.Key)
	merged.Todo.IDFormat = mergeString(projectMeta.IsDefined("todo", "id-format"), projectCfg.Todo.IDFormat, globalCfg.Todo.IDFormat)
	merged.Log.Level = mergeString(projectMeta.IsDefined("log", "level"), projectCfg.Log.Level, globalCfg.Log.Level)
	merged.Log.Format = mergeString(projectMeta.IsDefined("log", "format"), projectCfg.Log.Format, globalCfg.Log.Format)

	return &merged
}

func mergeString(projectDefined bool, projectValue, globalValue string) string {
	value := globalValue
	if projectDefined {
		value = projectValue
	}
	return strings.TrimSpace(value)
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	override := func(name string, target *string) {
		if value, ok := lookup(name); ok && strings.TrimSpace(value) != "" {
			*target = strings.TrimSpace(value)
		}
	}
	override(EnvStorage, &c.Storage.Kind)
	override(EnvPath, &c.Storage.Path)
	override(EnvKey, &c.Storage.Key)
	override(EnvLogLevel, &c.Log.Level)
	override(EnvIDFormat, &c.Todo.IDFormat)
}
