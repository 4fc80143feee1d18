package tui

import (
	"time"

	"github.com/existflow/irontodo/internal/model"
)

// DueLayout is how due dates are shown in the list
const DueLayout = "Jan 02, 2006"

// truncate shortens a string to max runes with ellipsis
func truncate(s string, max int) string {
	r := []rune(s)
	if max <= 3 || len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}

// formatDue renders the due date line of a todo, empty when unset
func formatDue(t model.Todo, now time.Time) string {
	if t.DueDate == nil {
		return ""
	}
	line := "Due: " + t.DueDate.UTC().Format(DueLayout)
	if t.IsOverdue(now) {
		return OverdueStyle.Render(line + " (overdue)")
	}
	return HelpStyle.Render(line)
}

// clamp keeps a cursor inside [0, n)
func clamp(cursor, n int) int {
	if n == 0 || cursor < 0 {
		return 0
	}
	if cursor >= n {
		return n - 1
	}
	return cursor
}
