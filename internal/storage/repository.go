package storage

import (
	"context"
	"errors"
	"time"

	"github.com/sandeepkv93/todoui/internal/model"
)

var ErrNotFound = errors.New("storage: not found")

type Repository interface {
	CreateTodo(ctx context.Context, body string) (TodoRecord, error)
	GetTodo(ctx context.Context, id int64) (TodoRecord, error)
	UpdateTodoStatus(ctx context.Context, id int64, status model.Status) (TodoRecord, error)
	DeleteTodo(ctx context.Context, id int64) error
	ListTodos(ctx context.Context, filter TodoListFilter) ([]TodoRecord, error)
}

type TodoRecord struct {
	ID          int64
	Body        string
	Status      model.Status
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time
}

func (r TodoRecord) Todo() model.Todo {
	return model.Todo{ID: r.ID, Body: r.Body, Status: r.Status}
}

// TodoListFilter restricts a listing to Statuses. An empty Statuses lists
// every todo.
type TodoListFilter struct {
	Statuses []model.Status
}
