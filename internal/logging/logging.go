// Package logging configures leveled console logging for neotodo.
package logging

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	internalstrings "github.com/amonks/neotodo/internal/strings"
)

// Options configures a Logger.
type Options struct {
	Level           log.Level
	Formatter       log.Formatter
	ReportTimestamp bool
	Prefix          string
}

// DefaultOptions logs warnings and errors as plain text.
func DefaultOptions() Options {
	return Options{
		Level:     log.WarnLevel,
		Formatter: log.TextFormatter,
		Prefix:    "neotodo",
	}
}

// Logger writes leveled log lines. It satisfies todo.ErrorLogger.
type Logger struct {
	logger *log.Logger
}

// New returns a Logger writing to w.
func New(w io.Writer, opts Options) *Logger {
	return &Logger{logger: log.NewWithOptions(w, log.Options{
		Level:           opts.Level,
		Formatter:       opts.Formatter,
		ReportTimestamp: opts.ReportTimestamp,
		Prefix:          opts.Prefix,
	})}
}

// FromConfig builds a Logger from the level and format names used in config files.
func FromConfig(w io.Writer, level, format string) (*Logger, error) {
	opts := DefaultOptions()

	parsedLevel, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts.Level = parsedLevel

	formatter, err := ParseFormatter(format)
	if err != nil {
		return nil, err
	}
	opts.Formatter = formatter

	return New(w, opts), nil
}

// LogError records a failure the caller recovered from.
func (l *Logger) LogError(context string, err error) {
	l.logger.Error("recovered failure", "context", context, "err", err)
}

// Debug logs a debug message with key-value pairs.
func (l *Logger) Debug(msg string, keyvals ...any) {
	l.logger.Debug(msg, keyvals...)
}

// Info logs an informational message with key-value pairs.
func (l *Logger) Info(msg string, keyvals ...any) {
	l.logger.Info(msg, keyvals...)
}

// ParseLevel parses a level name. Empty means warn.
func ParseLevel(level string) (log.Level, error) {
	switch internalstrings.NormalizeLowerTrimSpace(level) {
	case "debug":
		return log.DebugLevel, nil
	case "info":
		return log.InfoLevel, nil
	case "", "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return 0, fmt.Errorf("unknown log level %q (want debug, info, warn, error)", level)
	}
}

// ParseFormatter parses a formatter name. Empty means text.
func ParseFormatter(format string) (log.Formatter, error) {
	switch internalstrings.NormalizeLowerTrimSpace(format) {
	case "", "text":
		return log.TextFormatter, nil
	case "json":
		return log.JSONFormatter, nil
	case "logfmt":
		return log.LogfmtFormatter, nil
	default:
		return 0, fmt.Errorf("unknown log format %q (want text, json, logfmt)", format)
	}
}
