package todos

import (
	"strings"
	"time"

	"github.com/existflow/irontodo/internal/api"
	"github.com/existflow/irontodo/internal/apperr"
	"github.com/existflow/irontodo/internal/model"
)

// CreateForm holds the add-todo fields
type CreateForm struct {
	Title       string
	Description string
	DueDate     string // YYYY-MM-DD or empty
}

// Validate checks the form before any network call
func (f *CreateForm) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return apperr.Validation("title", "Title is required")
	}
	return validateDueDate(f.DueDate)
}

// Request builds the API body
func (f *CreateForm) Request() api.CreateTodoRequest {
	return api.CreateTodoRequest{
		Title:       strings.TrimSpace(f.Title),
		Description: f.Description,
		DueDate:     strings.TrimSpace(f.DueDate),
	}
}

// Reset clears every field
func (f *CreateForm) Reset() {
	*f = CreateForm{}
}

// EditForm holds the edit-todo fields for the selected todo
type EditForm struct {
	ID          string
	Title       string
	Description string
	Status      model.Status
	DueDate     string
}

// NewEditForm pre-fills the form from a todo
func NewEditForm(todo model.Todo) *EditForm {
	return &EditForm{
		ID:          todo.ID,
		Title:       todo.Title,
		Description: todo.Description,
		Status:      todo.Status,
		DueDate:     todo.DueDateString(),
	}
}

// Validate checks the form before any network call
func (f *EditForm) Validate() error {
	if f.ID == "" {
		return apperr.Validation("id", "No todo selected")
	}
	if strings.TrimSpace(f.Title) == "" {
		return apperr.Validation("title", "Title is required")
	}
	if _, err := model.ParseStatus(string(f.Status)); err != nil {
		return apperr.Validation("status", "Status must be pending or completed")
	}
	return validateDueDate(f.DueDate)
}

// Request builds the full replacement body
func (f *EditForm) Request() api.UpdateTodoRequest {
	return api.UpdateTodoRequest{
		Title:       strings.TrimSpace(f.Title),
		Description: f.Description,
		Status:      f.Status,
		DueDate:     strings.TrimSpace(f.DueDate),
	}
}

func validateDueDate(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.Parse(model.DateLayout, s); err != nil {
		return apperr.Validation("dueDate", "Due date must be YYYY-MM-DD")
	}
	return nil
}
