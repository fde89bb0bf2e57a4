// Package controller holds the view-state of the todo screen: the create
// form's draft and the filtered todo list. Remote calls run as tea.Cmds and
// report back through FetchResultMsg and MutationResultMsg.
package controller

import (
	"context"
	"errors"
	"time"

	"github.com/sandeepkv93/todoui/internal/model"
	"github.com/sandeepkv93/todoui/internal/querycache"
)

var ErrTodoNotVisible = errors.New("controller: todo is not in the current list")

type MutationKind string

const (
	MutationCreate MutationKind = "create"
	MutationStatus MutationKind = "status"
	MutationDelete MutationKind = "delete"
)

// FetchResultMsg completes a list query. Seq orders fetches issued by one
// ListController.
type FetchResultMsg struct {
	Key    querycache.Key
	Filter model.Filter
	Seq    uint64
	Todos  []model.Todo
	Err    error
}

// MutationResultMsg completes a create, status update or delete.
type MutationResultMsg struct {
	Kind   MutationKind
	TodoID int64
	Todo   model.Todo
	Err    error
}

func (m MutationResultMsg) OK() bool {
	return m.Err == nil
}

func callContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(context.Background(), timeout)
	}
	return context.WithCancel(context.Background())
}
