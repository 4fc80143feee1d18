package cli

import (
	"fmt"

	"github.com/existflow/irontodo/internal/model"
	"github.com/existflow/irontodo/internal/todos"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit [todo-id]",
	Short: "Edit a todo",
	Long: `Change the fields of a todo. Fields without a flag keep their value.
The id may be shortened to any unique prefix.

Examples:
  irontodo edit 3f2a --title "Buy oat milk"
  irontodo edit 3f2a --due 2025-02-01
  irontodo edit 3f2a --clear-due --status pending`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var (
	editTitle       string
	editDescription string
	editStatus      string
	editDue         string
	editClearDue    bool
)

func init() {
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editDescription, "description", "d", "", "New description")
	editCmd.Flags().StringVarP(&editStatus, "status", "s", "", "New status (pending or completed)")
	editCmd.Flags().StringVar(&editDue, "due", "", "New due date (YYYY-MM-DD)")
	editCmd.Flags().BoolVar(&editClearDue, "clear-due", false, "Remove the due date")
	editCmd.MarkFlagsMutuallyExclusive("due", "clear-due")
}

func runEdit(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if !flags.Changed("title") && !flags.Changed("description") && !flags.Changed("status") &&
		!flags.Changed("due") && !editClearDue {
		return fmt.Errorf("nothing to change: pass at least one of --title, --description, --status, --due or --clear-due")
	}

	a, err := requireAuth(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	todo, err := a.Todos.Lookup(args[0])
	if err != nil {
		return err
	}

	form := todos.NewEditForm(todo)
	if flags.Changed("title") {
		form.Title = editTitle
	}
	if flags.Changed("description") {
		form.Description = editDescription
	}
	if flags.Changed("status") {
		status, err := model.ParseStatus(editStatus)
		if err != nil {
			return err
		}
		form.Status = status
	}
	if flags.Changed("due") {
		form.DueDate = editDue
	}
	if editClearDue {
		form.DueDate = ""
	}

	if _, err := a.Todos.Update(cmd.Context(), form); err != nil {
		return reported(err)
	}
	return nil
}
