package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/existflow/irontodo/internal/model"
)

// CreateTodoRequest is the body of POST /api/todos
type CreateTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate,omitempty"`
}

// UpdateTodoRequest is the full replacement body of PUT /api/todos/{id}
type UpdateTodoRequest struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      model.Status `json:"status"`
	DueDate     string       `json:"dueDate,omitempty"`
}

// ListTodos fetches every todo of the signed-in user, in server order
func (c *Client) ListTodos(ctx context.Context) ([]model.Todo, error) {
	var todos []model.Todo
	err := c.do(ctx, request{
		op:     "list todos",
		method: http.MethodGet,
		path:   "/api/todos",
		auth:   true,
	}, &todos)
	if err != nil {
		return nil, err
	}
	return todos, nil
}

// CreateTodo creates a todo and returns the server's copy
func (c *Client) CreateTodo(ctx context.Context, req CreateTodoRequest) (*model.Todo, error) {
	var todo model.Todo
	err := c.do(ctx, request{
		op:     "create todo",
		method: http.MethodPost,
		path:   "/api/todos",
		body:   req,
		auth:   true,
	}, &todo)
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

// UpdateTodo replaces a todo's editable fields
func (c *Client) UpdateTodo(ctx context.Context, id string, req UpdateTodoRequest) (*model.Todo, error) {
	var todo model.Todo
	err := c.do(ctx, request{
		op:     "update todo",
		method: http.MethodPut,
		path:   "/api/todos/" + url.PathEscape(id),
		body:   req,
		auth:   true,
	}, &todo)
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

// DeleteTodo removes a todo
func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	return c.do(ctx, request{
		op:     "delete todo",
		method: http.MethodDelete,
		path:   "/api/todos/" + url.PathEscape(id),
		auth:   true,
	}, nil)
}
