package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/amonks/neotodo/internal/editor"
	"github.com/amonks/neotodo/todo"
)

// add
var addCmd = &cobra.Command{
	Use:   "add [text...]",
	Short: "Add a todo",
	Long: `Add a todo to the top of the list.

When running interactively with no text, opens $EDITOR on a TOML
representation of the todo. Use --edit to force the editor and
--no-edit to skip it.`,
	RunE: runAdd,
}

var (
	addDescription string
	addPriority    string
	addDue         string
	addEdit        bool
	addNoEdit      bool
)

// update
var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of a todo",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpdate,
}

type updateFlags struct {
	text        string
	description string
	priority    string
	due         string
	clearDue    bool
}

var updateValues updateFlags

// edit
var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit a todo in $EDITOR",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

// toggle
var toggleCmd = &cobra.Command{
	Use:   "toggle <id>...",
	Short: "Flip the completed state of todos",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runToggle,
}

// done
var doneCmd = &cobra.Command{
	Use:   "done <id>...",
	Short: "Mark todos as completed",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetCompleted(cmd, args, true)
	},
}

// undo
var undoCmd = &cobra.Command{
	Use:   "undo <id>...",
	Short: "Mark todos as pending",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSetCompleted(cmd, args, false)
	},
}

// rm
var rmCmd = &cobra.Command{
	Use:     "rm <id>...",
	Aliases: []string{"remove", "delete"},
	Short:   "Remove todos",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runRemove,
}

func init() {
	rootCmd.AddCommand(addCmd, updateCmd, editCmd, toggleCmd, doneCmd, undoCmd, rmCmd)

	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Description (use '-' to read from stdin)")
	addCmd.Flags().StringVarP(&addPriority, "priority", "p", string(todo.PriorityMedium), "Priority (low, medium, high)")
	addCmd.Flags().StringVar(&addDue, "due", "", "Due date (YYYY-MM-DD or RFC 3339)")
	addCmd.Flags().BoolVarP(&addEdit, "edit", "e", false, "Open $EDITOR")
	addCmd.Flags().BoolVar(&addNoEdit, "no-edit", false, "Do not open $EDITOR")

	updateCmd.Flags().StringVar(&updateValues.text, "text", "", "New text")
	updateCmd.Flags().StringVarP(&updateValues.description, "description", "d", "", "New description (use '-' to read from stdin)")
	updateCmd.Flags().StringVarP(&updateValues.priority, "priority", "p", "", "New priority (low, medium, high)")
	updateCmd.Flags().StringVar(&updateValues.due, "due", "", "New due date (YYYY-MM-DD or RFC 3339)")
	updateCmd.Flags().BoolVar(&updateValues.clearDue, "clear-due", false, "Remove the due date")
}

func runAdd(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	flags := cmd.Flags()

	description := addDescription
	if flags.Changed("description") {
		desc, err := resolveDescriptionFromStdin(addDescription, cmd.InOrStdin())
		if err != nil {
			return err
		}
		description = desc
	}

	var opts todo.AddOptions
	useEditor := addEdit || (!addNoEdit && len(args) == 0 && editor.IsInteractive())
	if useEditor {
		data := editor.DefaultCreateData()
		data.Text = text
		data.Description = description
		data.DueDate = addDue
		if flags.Changed("priority") {
			data.Priority = addPriority
		}

		parsed, err := editor.EditTodoWithData(data)
		if err != nil {
			return err
		}
		text = parsed.Text
		opts = parsed.ToAddOptions()
	} else {
		if len(args) == 0 {
			return errors.New("text is required (use --edit to open editor)")
		}
		due, err := todo.ParseDueDate(addDue)
		if err != nil {
			return err
		}
		priority := todo.Priority(addPriority)
		opts = todo.AddOptions{
			Description: description,
			Priority:    &priority,
			DueDate:     due,
		}
	}

	return withSession(cmd, func(s *session) error {
		result := s.store.AddWithOptions(text, opts)
		return reportResult(cmd.OutOrStdout(), idHighlighter(s.store), result, "Added", "Added")
	})
}

func runUpdate(cmd *cobra.Command, args []string) error {
	patch, err := patchFromFlags(cmd, &updateValues)
	if err != nil {
		return err
	}
	if patch.IsEmpty() {
		return errors.New("at least one update flag is required (use edit to open editor)")
	}

	return withSession(cmd, func(s *session) error {
		item, err := s.resolve(args[0])
		if err != nil {
			return err
		}
		result := s.store.Update(item.ID, patch)
		return reportResult(cmd.OutOrStdout(), idHighlighter(s.store), result, "Updated", "Unchanged")
	})
}

func runEdit(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *session) error {
		item, err := s.resolve(args[0])
		if err != nil {
			return err
		}

		parsed, err := editor.EditTodo(&item)
		if err != nil {
			return err
		}

		result := s.store.Update(item.ID, parsed.ToPatch())
		return reportResult(cmd.OutOrStdout(), idHighlighter(s.store), result, "Updated", "Unchanged")
	})
}

func runToggle(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *session) error {
		resolved, err := s.store.ResolveAll(args)
		if err != nil {
			return err
		}

		highlight := idHighlighter(s.store)
		for _, id := range resolved {
			result := s.store.ToggleCompleted(id)
			verb := "Reopened"
			if result.Todo.Completed {
				verb = "Completed"
			}
			if err := reportResult(cmd.OutOrStdout(), highlight, result, verb, verb); err != nil {
				return err
			}
		}
		return nil
	})
}

func runSetCompleted(cmd *cobra.Command, args []string, completed bool) error {
	appliedVerb, unchangedVerb := "Completed", "Already completed"
	if !completed {
		appliedVerb, unchangedVerb = "Reopened", "Already pending"
	}

	return withSession(cmd, func(s *session) error {
		resolved, err := s.store.ResolveAll(args)
		if err != nil {
			return err
		}

		highlight := idHighlighter(s.store)
		for _, id := range resolved {
			result := s.store.SetCompleted(id, completed)
			if err := reportResult(cmd.OutOrStdout(), highlight, result, appliedVerb, unchangedVerb); err != nil {
				return err
			}
		}
		return nil
	})
}

func runRemove(cmd *cobra.Command, args []string) error {
	return withSession(cmd, func(s *session) error {
		resolved, err := s.store.ResolveAll(args)
		if err != nil {
			return err
		}

		highlight := idHighlighter(s.store)
		for _, id := range resolved {
			result := s.store.Remove(id)
			if err := reportResult(cmd.OutOrStdout(), highlight, result, "Removed", "Removed"); err != nil {
				return err
			}
		}
		return nil
	})
}
