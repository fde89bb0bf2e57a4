// Package api holds the RPC contract between todoui and a todo backend: the
// procedure names, the request and response shapes, the error envelope, and
// an HTTP client for it.
package api

import (
	"context"
	"encoding/json"

	"github.com/sandeepkv93/todoui/internal/model"
)

// Procedure names. Each is served at POST /api/<procedure>.
const (
	ProcCreateTodo       = "todo.create"
	ProcListTodos        = "todo.getAll"
	ProcUpdateTodoStatus = "todoStatus.update"
	ProcDeleteTodo       = "todo.delete"
)

const RequestIDHeader = "X-Request-ID"

type CreateTodoInput struct {
	Body string `json:"body" binding:"notblank"`
}

type ListTodosInput struct {
	Statuses []model.Status `json:"statuses" binding:"required,min=1,dive,todostatus"`
}

type UpdateTodoStatusInput struct {
	TodoID int64        `json:"todoId" binding:"required,gt=0"`
	Status model.Status `json:"status" binding:"required,todostatus"`
}

type DeleteTodoInput struct {
	ID int64 `json:"id" binding:"required,gt=0"`
}

type DeleteTodoResult struct {
	ID int64 `json:"id"`
}

// Client is the remote side of the todo UI. Every call blocks until the
// backend answers or ctx is done.
type Client interface {
	CreateTodo(ctx context.Context, in CreateTodoInput) (model.Todo, error)
	ListTodos(ctx context.Context, in ListTodosInput) ([]model.Todo, error)
	UpdateTodoStatus(ctx context.Context, in UpdateTodoStatusInput) (model.Todo, error)
	DeleteTodo(ctx context.Context, in DeleteTodoInput) (DeleteTodoResult, error)
}

// Envelope wraps every response body.
type Envelope struct {
	Result json.RawMessage `json:"result,omitempty"`
	Error  *ErrorBody      `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
