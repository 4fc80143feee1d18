package cli

import (
	"fmt"
	"strings"

	"github.com/existflow/irontodo/internal/todos"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new todo",
	Long: `Add a new todo. It shows up first in the list.

Examples:
  irontodo add "Buy groceries"
  irontodo add "Write report" -d "Q3 numbers" --due 2025-01-15`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

var (
	addDescription string
	addDue         string
)

func init() {
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Longer description")
	addCmd.Flags().StringVar(&addDue, "due", "", "Due date (YYYY-MM-DD)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	a, err := requireAuth(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	form := &todos.CreateForm{
		Title:       strings.Join(args, " "),
		Description: addDescription,
		DueDate:     addDue,
	}
	todo, err := a.Todos.Create(cmd.Context(), form)
	if err != nil {
		return reported(err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s\n", shortID(todo.ID), todo.Title)
	return nil
}
