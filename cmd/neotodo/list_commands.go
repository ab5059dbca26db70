package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/amonks/neotodo/internal/listflags"
	"github.com/amonks/neotodo/internal/ui"
	"github.com/amonks/neotodo/todo"
)

// list
var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List todos",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

var (
	listFilter listflags.Filter
	listJSON   bool
)

// show
var showCmd = &cobra.Command{
	Use:   "show <id>...",
	Short: "Show detailed information about todos",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runShow,
}

var showJSON bool

// stats
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize the todo list",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var statsJSON bool

// export
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write todos as JSON or YAML",
	Long: `Write the filtered todo list to stdout.

JSON output uses the same format the list is persisted in, so it can be
copied into another store.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportFilter listflags.Filter
	exportFormat string
)

func init() {
	rootCmd.AddCommand(listCmd, showCmd, statsCmd, exportCmd)

	listFilter.Register(listCmd.Flags())
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")

	showCmd.Flags().BoolVar(&showJSON, "json", false, "Output as JSON")

	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output as JSON")

	exportFilter.Register(exportCmd.Flags())
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format (json, yaml)")
}

func runList(cmd *cobra.Command, args []string) error {
	filter, err := listFilter.Parse()
	if err != nil {
		return err
	}

	return withSession(cmd, func(s *session) error {
		items := s.store.Query(filter)
		out := cmd.OutOrStdout()

		if listJSON {
			if items == nil {
				items = []todo.Todo{}
			}
			return encodeJSON(out, items)
		}

		if len(items) == 0 {
			_, err := fmt.Fprintln(out, todoEmptyListMessage(s.store.Len(), filter))
			return err
		}

		lengths := s.store.IDIndex().PrefixLengths()
		_, err := fmt.Fprint(out, formatTodoTable(items, lengths, ui.HighlightID, time.Now()))
		return err
	})
}

func runShow(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *session) error {
		items := make([]todo.Todo, 0, len(args))
		for _, prefix := range args {
			item, err := s.resolve(prefix)
			if err != nil {
				return err
			}
			items = append(items, item)
		}

		out := cmd.OutOrStdout()
		if showJSON {
			return encodeJSON(out, items)
		}

		highlight := idHighlighter(s.store)
		now := time.Now()
		for i, item := range items {
			if i > 0 {
				fmt.Fprintln(out, "---")
			}
			printTodoDetail(out, item, highlight, now)
		}
		return nil
	})
}

func runStats(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *session) error {
		stats := s.store.Stats()
		out := cmd.OutOrStdout()
		if statsJSON {
			return encodeJSON(out, stats)
		}

		_, err := fmt.Fprintf(out, "Total:     %d\nCompleted: %d\nPending:   %d\nHigh priority pending: %d\n",
			stats.Total, stats.Completed, stats.Pending, stats.HighPriorityPending)
		return err
	})
}

func runExport(cmd *cobra.Command, args []string) error {
	filter, err := exportFilter.Parse()
	if err != nil {
		return err
	}
	format := strings.ToLower(strings.TrimSpace(exportFormat))
	if format != "json" && format != "yaml" {
		return fmt.Errorf("unknown export format %q (want json or yaml)", exportFormat)
	}

	return withSession(cmd, func(s *session) error {
		items := s.store.Query(filter)
		out := cmd.OutOrStdout()

		if format == "yaml" {
			return encodeYAML(out, exportRecords(items))
		}

		payload, err := todo.Encode(items)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(payload))
		return err
	})
}
