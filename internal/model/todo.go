package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Status is the completion state of a todo
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// DateLayout is the wire and form format for due dates
const DateLayout = "2006-01-02"

// ParseStatus converts user input into a Status
func ParseStatus(s string) (Status, error) {
	switch Status(strings.ToLower(strings.TrimSpace(s))) {
	case StatusPending:
		return StatusPending, nil
	case StatusCompleted:
		return StatusCompleted, nil
	default:
		return "", fmt.Errorf("invalid status %q (want pending or completed)", s)
	}
}

// Toggle returns the opposite status
func (s Status) Toggle() Status {
	if s == StatusCompleted {
		return StatusPending
	}
	return StatusCompleted
}

// Title returns the capitalized label shown in views
func (s Status) Title() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusCompleted:
		return "Completed"
	default:
		return string(s)
	}
}

// Todo represents a single task record owned by the remote API
type Todo struct {
	ID          string     `json:"_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// UnmarshalJSON accepts a due date as a full timestamp, a plain date, an
// empty string or null
func (t *Todo) UnmarshalJSON(data []byte) error {
	type wire Todo
	aux := struct {
		*wire
		DueDate json.RawMessage `json:"dueDate"`
	}{wire: (*wire)(t)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	due, err := parseDueDate(aux.DueDate)
	if err != nil {
		return err
	}
	t.DueDate = due
	return nil
}

func parseDueDate(raw json.RawMessage) (*time.Time, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("dueDate: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}

	if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return &ts, nil
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("dueDate: unrecognized date %q", s)
	}
	return &d, nil
}

// IsCompleted returns true if the todo is done
func (t Todo) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// DueDateString formats the due date for a form field, empty if unset
func (t Todo) DueDateString() string {
	if t.DueDate == nil || t.DueDate.IsZero() {
		return ""
	}
	return t.DueDate.UTC().Format(DateLayout)
}

// IsOverdue returns true if a pending todo is past its due date
func (t Todo) IsOverdue(now time.Time) bool {
	if t.DueDate == nil || t.IsCompleted() {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return t.DueDate.UTC().Before(today)
}

// Filter selects a view-only subset of todos by status
type Filter string

const (
	FilterAll       Filter = "all"
	FilterPending   Filter = "pending"
	FilterCompleted Filter = "completed"
)

// Filters lists every filter in display order
var Filters = []Filter{FilterAll, FilterPending, FilterCompleted}

// ParseFilter converts user input into a Filter
func ParseFilter(s string) (Filter, error) {
	switch Filter(strings.ToLower(strings.TrimSpace(s))) {
	case FilterAll, "":
		return FilterAll, nil
	case FilterPending:
		return FilterPending, nil
	case FilterCompleted:
		return FilterCompleted, nil
	default:
		return "", fmt.Errorf("invalid filter %q (want all, pending or completed)", s)
	}
}

// Match reports whether a todo belongs to the filter
func (f Filter) Match(t Todo) bool {
	if f == FilterAll {
		return true
	}
	return string(t.Status) == string(f)
}

// Next cycles to the following filter
func (f Filter) Next() Filter {
	for i, v := range Filters {
		if v == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// Label returns the display name
func (f Filter) Label() string {
	switch f {
	case FilterPending:
		return "Pending"
	case FilterCompleted:
		return "Completed"
	default:
		return "All"
	}
}
