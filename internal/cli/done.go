package cli

import (
	"fmt"

	"github.com/existflow/irontodo/internal/model"
	"github.com/existflow/irontodo/internal/todos"
	"github.com/spf13/cobra"
)

var doneCmd = &cobra.Command{
	Use:   "done [todo-id]",
	Short: "Mark a todo as completed",
	Long: `Mark a todo as completed.

Examples:
  irontodo done 3f2a
  irontodo done 3f2a --undo`,
	Args: cobra.ExactArgs(1),
	RunE: runDone,
}

var doneUndo bool

func init() {
	doneCmd.Flags().BoolVar(&doneUndo, "undo", false, "Mark the todo as pending again")
}

func runDone(cmd *cobra.Command, args []string) error {
	a, err := requireAuth(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	todo, err := a.Todos.Lookup(args[0])
	if err != nil {
		return err
	}

	want := model.StatusCompleted
	if doneUndo {
		want = model.StatusPending
	}
	if todo.Status == want {
		fmt.Fprintf(cmd.OutOrStdout(), "Already %s: \"%s\"\n", want, todo.Title)
		return nil
	}

	form := todos.NewEditForm(todo)
	form.Status = want
	if _, err := a.Todos.Update(cmd.Context(), form); err != nil {
		return reported(err)
	}
	return nil
}
