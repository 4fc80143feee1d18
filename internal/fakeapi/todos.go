package fakeapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/existflow/irontodo/internal/model"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type todoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	DueDate     string `json:"dueDate"`
}

// AddTodo stores a todo for a user directly and returns it. Todos added later
// are listed first.
func (s *Server) AddTodo(email, title string, status model.Status) (model.Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[strings.ToLower(email)]
	if !ok {
		return model.Todo{}, fmt.Errorf("unknown user %s", email)
	}
	todo := model.Todo{
		ID:        uuid.New().String(),
		Title:     title,
		Status:    status,
		CreatedAt: s.now().UTC(),
	}
	s.todos[acc.user.ID] = append([]model.Todo{todo}, s.todos[acc.user.ID]...)
	return todo, nil
}

// Todos returns what GET /api/todos would return for a user
func (s *Server) Todos(email string) []model.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[strings.ToLower(email)]
	if !ok {
		return nil
	}
	return append([]model.Todo(nil), s.todos[acc.user.ID]...)
}

func (s *Server) handleList(c echo.Context) error {
	userID := c.Get("user_id").(string)

	s.mu.Lock()
	todos := append([]model.Todo{}, s.todos[userID]...)
	s.mu.Unlock()

	return c.JSON(http.StatusOK, todos)
}

func (s *Server) handleCreate(c echo.Context) error {
	userID := c.Get("user_id").(string)

	var req todoRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request")
	}
	if strings.TrimSpace(req.Title) == "" {
		return jsonError(c, http.StatusBadRequest, "title is required")
	}
	due, err := parseDueDate(req.DueDate)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	todo := model.Todo{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Status:      model.StatusPending,
		DueDate:     due,
		CreatedAt:   s.now().UTC(),
	}

	s.mu.Lock()
	s.todos[userID] = append([]model.Todo{todo}, s.todos[userID]...)
	s.mu.Unlock()

	return c.JSON(http.StatusCreated, todo)
}

func (s *Server) handleUpdate(c echo.Context) error {
	userID := c.Get("user_id").(string)
	id := c.Param("id")

	var req todoRequest
	if err := c.Bind(&req); err != nil {
		return jsonError(c, http.StatusBadRequest, "invalid request")
	}
	if strings.TrimSpace(req.Title) == "" {
		return jsonError(c, http.StatusBadRequest, "title is required")
	}
	status, err := model.ParseStatus(req.Status)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}
	due, err := parseDueDate(req.DueDate)
	if err != nil {
		return jsonError(c, http.StatusBadRequest, err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	todos := s.todos[userID]
	for i := range todos {
		if todos[i].ID != id {
			continue
		}
		todos[i].Title = req.Title
		todos[i].Description = req.Description
		todos[i].Status = status
		todos[i].DueDate = due
		return c.JSON(http.StatusOK, todos[i])
	}
	return jsonError(c, http.StatusNotFound, "todo not found")
}

func (s *Server) handleDelete(c echo.Context) error {
	userID := c.Get("user_id").(string)
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()

	todos := s.todos[userID]
	for i := range todos {
		if todos[i].ID == id {
			s.todos[userID] = append(todos[:i:i], todos[i+1:]...)
			return c.NoContent(http.StatusNoContent)
		}
	}
	return jsonError(c, http.StatusNotFound, "todo not found")
}

func parseDueDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(model.DateLayout, s); err == nil {
		return &t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("invalid dueDate %q", s)
	}
	return &t, nil
}
