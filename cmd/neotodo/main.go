// Package main implements the neotodo CLI tool.
package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exitErr interface{ ExitCode() int }
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "neotodo",
	Short:        "neotodo - a small persistent todo list",
	SilenceUsage: true,
}

var (
	globalStorage  string
	globalPath     string
	globalKey      string
	globalLogLevel string
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&globalStorage, "storage", "", "Storage backend (file, sqlite, memory)")
	flags.StringVar(&globalPath, "path", "", "Storage directory (file) or database path (sqlite)")
	flags.StringVar(&globalKey, "key", "", "Storage key the list is saved under")
	flags.StringVar(&globalLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
}
