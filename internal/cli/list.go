package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/existflow/irontodo/internal/model"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List todos",
	Long: `List your todos, newest first.

Examples:
  irontodo list
  irontodo list --filter pending
  irontodo ls -f completed --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listFilter string
	listJSON   bool
)

func init() {
	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "all", "Show all, pending or completed todos")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print todos as JSON")
}

func runList(cmd *cobra.Command, args []string) error {
	filter, err := model.ParseFilter(listFilter)
	if err != nil {
		return err
	}

	a, err := requireAuth(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()
	if err := a.LoadErr(); err != nil {
		return reported(err)
	}

	todos := a.Todos.Filter(filter)
	out := cmd.OutOrStdout()

	if listJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(todos)
	}

	if len(todos) == 0 {
		if filter == model.FilterAll {
			fmt.Fprintln(out, "No todos found. Add one with: irontodo add \"Your todo\"")
		} else {
			fmt.Fprintf(out, "No %s todos.\n", strings.ToLower(filter.Label()))
		}
		return nil
	}

	pending, completed := a.Todos.Counts()
	fmt.Fprintf(out, "\n%s (%d pending, %d completed)\n", filter.Label(), pending, completed)
	fmt.Fprintln(out, strings.Repeat("─", 60))

	now := time.Now()
	for _, t := range todos {
		printTodo(out, t, now)
	}
	fmt.Fprintln(out)
	return nil
}

func printTodo(out io.Writer, t model.Todo, now time.Time) {
	due := ""
	if t.DueDate != nil {
		due = t.DueDate.UTC().Format("Jan 2")
		if t.IsOverdue(now) {
			due = "! " + due
		}
	}

	fmt.Fprintf(out, "  %s  %-8s  %-40s  %s\n", statusIcon(t), shortID(t.ID), truncate(t.Title, 40), due)
}
