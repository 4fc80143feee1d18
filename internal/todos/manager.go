// Package todos keeps the local todo collection in step with the API. The
// collection only changes after the server confirms a call.
package todos

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/existflow/irontodo/internal/api"
	"github.com/existflow/irontodo/internal/apperr"
	"github.com/existflow/irontodo/internal/logger"
	"github.com/existflow/irontodo/internal/model"
	"github.com/existflow/irontodo/internal/notify"
)

// DeletePrompt is shown before a todo is deleted
const DeletePrompt = "Are you sure you want to delete this todo?"

// TodoAPI is the part of the API client the manager needs
type TodoAPI interface {
	ListTodos(ctx context.Context) ([]model.Todo, error)
	CreateTodo(ctx context.Context, req api.CreateTodoRequest) (*model.Todo, error)
	UpdateTodo(ctx context.Context, id string, req api.UpdateTodoRequest) (*model.Todo, error)
	DeleteTodo(ctx context.Context, id string) error
}

// Confirmer asks the user a yes/no question
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmFunc adapts a function to Confirmer
type ConfirmFunc func(prompt string) bool

// Confirm implements Confirmer
func (f ConfirmFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// Always is a Confirmer that says yes, for callers that already asked
var Always Confirmer = ConfirmFunc(func(string) bool { return true })

// Manager owns the todo collection: newest first, one entry per id
type Manager struct {
	api    TodoAPI
	notify notify.Notifier

	mu      sync.Mutex
	byID    map[string]model.Todo
	order   []string
	loading bool
}

// NewManager creates an empty manager
func NewManager(api TodoAPI, notifier notify.Notifier) *Manager {
	return &Manager{
		api:    api,
		notify: notifier,
		byID:   make(map[string]model.Todo),
	}
}

// List replaces the collection with the server's todos, in server order.
// On failure the collection is kept.
func (m *Manager) List(ctx context.Context) error {
	m.setLoading(true)
	defer m.setLoading(false)

	todos, err := m.api.ListTodos(ctx)
	if err != nil {
		logger.Error("Failed to fetch todos", logger.Err(err))
		m.notify.Error("Error fetching todos")
		return err
	}

	byID := make(map[string]model.Todo, len(todos))
	order := make([]string, 0, len(todos))
	for _, t := range todos {
		if _, dup := byID[t.ID]; dup {
			logger.Warn("Duplicate todo in list response", logger.F("id", t.ID))
			continue
		}
		byID[t.ID] = t
		order = append(order, t.ID)
	}

	m.mu.Lock()
	m.byID = byID
	m.order = order
	m.mu.Unlock()

	logger.Debug("Todos loaded", logger.F("count", len(order)))
	return nil
}

// Create validates the form, creates the todo and puts it first. The form is
// reset on success.
func (m *Manager) Create(ctx context.Context, form *CreateForm) (*model.Todo, error) {
	if err := form.Validate(); err != nil {
		m.notify.Error(err.Error())
		return nil, err
	}

	todo, err := m.api.CreateTodo(ctx, form.Request())
	if err != nil {
		logger.Error("Failed to create todo", logger.Err(err))
		m.notify.Error("Error adding todo")
		return nil, err
	}

	m.mu.Lock()
	m.removeLocked(todo.ID)
	m.byID[todo.ID] = *todo
	m.order = append([]string{todo.ID}, m.order...)
	m.mu.Unlock()

	form.Reset()
	logger.Info("Todo created", logger.F("id", todo.ID))
	m.notify.Success("Todo added successfully")
	return todo, nil
}

// Update sends the full replacement of the selected todo and swaps the entry
// in place
func (m *Manager) Update(ctx context.Context, form *EditForm) (*model.Todo, error) {
	if err := form.Validate(); err != nil {
		m.notify.Error(err.Error())
		return nil, err
	}

	todo, err := m.api.UpdateTodo(ctx, form.ID, form.Request())
	if err != nil {
		logger.Error("Failed to update todo", logger.Err(err), logger.F("id", form.ID))
		m.notify.Error("Error updating todo")
		return nil, err
	}

	m.mu.Lock()
	if _, ok := m.byID[todo.ID]; ok {
		m.byID[todo.ID] = *todo
	} else {
		logger.Warn("Updated todo is not in the collection", logger.F("id", todo.ID))
	}
	m.mu.Unlock()

	logger.Info("Todo updated", logger.F("id", todo.ID))
	m.notify.Success("Todo updated successfully")
	return todo, nil
}

// Delete asks for confirmation and removes the todo. It returns false when
// the user declined.
func (m *Manager) Delete(ctx context.Context, id string, confirm Confirmer) (bool, error) {
	if confirm != nil && !confirm.Confirm(DeletePrompt) {
		return false, nil
	}

	if err := m.api.DeleteTodo(ctx, id); err != nil {
		logger.Error("Failed to delete todo", logger.Err(err), logger.F("id", id))
		m.notify.Error("Error deleting todo")
		return false, err
	}

	m.mu.Lock()
	m.removeLocked(id)
	m.mu.Unlock()

	logger.Info("Todo deleted", logger.F("id", id))
	m.notify.Success("Todo deleted successfully")
	return true, nil
}

// Filter returns the todos matching f, in collection order
func (m *Manager) Filter(f model.Filter) []model.Todo {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.Todo, 0, len(m.order))
	for _, id := range m.order {
		if t := m.byID[id]; f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Todos returns the whole collection
func (m *Manager) Todos() []model.Todo {
	return m.Filter(model.FilterAll)
}

// Get returns a todo by id
func (m *Manager) Get(id string) (model.Todo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byID[id]
	return t, ok
}

// Lookup finds a todo by full id or unique id prefix
func (m *Manager) Lookup(prefix string) (model.Todo, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return model.Todo{}, apperr.Validation("id", "Todo id is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if t, ok := m.byID[prefix]; ok {
		return t, nil
	}

	var matches []string
	for _, id := range m.order {
		if strings.HasPrefix(id, prefix) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return model.Todo{}, fmt.Errorf("todo %s: %w", prefix, apperr.ErrNotFound)
	case 1:
		return m.byID[matches[0]], nil
	default:
		return model.Todo{}, apperr.Validation("id", fmt.Sprintf("Id %s matches %d todos", prefix, len(matches)))
	}
}

// Len returns the number of todos
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.order)
}

// Loading reports whether a list call is in flight
func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}

// Counts returns the pending and completed tallies
func (m *Manager) Counts() (pending, completed int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range m.byID {
		if t.IsCompleted() {
			completed++
		} else {
			pending++
		}
	}
	return pending, completed
}

// Clear empties the collection, used when the session ends
func (m *Manager) Clear() {
	m.mu.Lock()
	m.byID = make(map[string]model.Todo)
	m.order = nil
	m.mu.Unlock()
}

func (m *Manager) removeLocked(id string) {
	if _, ok := m.byID[id]; !ok {
		return
	}
	delete(m.byID, id)
	for i, v := range m.order {
		if v == id {
			m.order = append(m.order[:i:i], m.order[i+1:]...)
			break
		}
	}
}

func (m *Manager) setLoading(v bool) {
	m.mu.Lock()
	m.loading = v
	m.mu.Unlock()
}
