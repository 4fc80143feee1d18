package cli

import (
	"fmt"

	"github.com/existflow/irontodo/internal/todos"
	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete [todo-id]",
	Aliases: []string{"rm"},
	Short:   "Delete a todo",
	Long: `Delete a todo by its id or a unique id prefix.

Examples:
  irontodo delete 3f2a
  irontodo rm 3f2a --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

var deleteYes bool

func init() {
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Do not ask for confirmation")
}

func runDelete(cmd *cobra.Command, args []string) error {
	a, err := requireAuth(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	todo, err := a.Todos.Lookup(args[0])
	if err != nil {
		return err
	}

	confirm := todos.Always
	if !deleteYes && cfg.ConfirmDelete {
		p := newPrompter(cmd)
		confirm = todos.ConfirmFunc(func(prompt string) bool {
			fmt.Fprintf(cmd.OutOrStdout(), "About to delete: \"%s\" (ID: %s)\n", todo.Title, shortID(todo.ID))
			return p.confirm(prompt)
		})
	}

	deleted, err := a.Todos.Delete(cmd.Context(), todo.ID, confirm)
	if err != nil {
		return reported(err)
	}
	if !deleted {
		fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
	}
	return nil
}
