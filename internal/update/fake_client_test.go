package update

import (
	"context"
	"sync"

	"github.com/sandeepkv93/todoui/internal/api"
	"github.com/sandeepkv93/todoui/internal/model"
)

// fakeClient keeps todos in memory and records every call by procedure.
type fakeClient struct {
	mu     sync.Mutex
	todos  []model.Todo
	nextID int64
	fail   map[string]error
	calls  []string
	bodies []string
	lists  []api.ListTodosInput
}

func newFakeClient(seed ...model.Todo) *fakeClient {
	f := &fakeClient{fail: map[string]error{}, nextID: 1}
	for _, t := range seed {
		f.todos = append(f.todos, t)
		if t.ID >= f.nextID {
			f.nextID = t.ID + 1
		}
	}
	return f
}

func (f *fakeClient) failWith(proc string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[proc] = err
}

func (f *fakeClient) record(proc string) error {
	f.calls = append(f.calls, proc)
	return f.fail[proc]
}

func (f *fakeClient) count(proc string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == proc {
			n++
		}
	}
	return n
}

func (f *fakeClient) CreateTodo(_ context.Context, in api.CreateTodoInput) (model.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies = append(f.bodies, in.Body)
	if err := f.record(api.ProcCreateTodo); err != nil {
		return model.Todo{}, err
	}
	t := model.Todo{ID: f.nextID, Body: in.Body, Status: model.StatusPending}
	f.nextID++
	f.todos = append(f.todos, t)
	return t, nil
}

func (f *fakeClient) ListTodos(_ context.Context, in api.ListTodosInput) ([]model.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, in)
	if err := f.record(api.ProcListTodos); err != nil {
		return nil, err
	}
	out := []model.Todo{}
	for _, t := range f.todos {
		for _, s := range in.Statuses {
			if t.Status == s {
				out = append(out, t)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeClient) UpdateTodoStatus(_ context.Context, in api.UpdateTodoStatusInput) (model.Todo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(api.ProcUpdateTodoStatus); err != nil {
		return model.Todo{}, err
	}
	for i := range f.todos {
		if f.todos[i].ID == in.TodoID {
			f.todos[i].Status = in.Status
			return f.todos[i], nil
		}
	}
	return model.Todo{}, &api.RemoteError{Procedure: api.ProcUpdateTodoStatus, Code: api.CodeNotFound, Message: "todo not found"}
}

func (f *fakeClient) DeleteTodo(_ context.Context, in api.DeleteTodoInput) (api.DeleteTodoResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(api.ProcDeleteTodo); err != nil {
		return api.DeleteTodoResult{}, err
	}
	for i := range f.todos {
		if f.todos[i].ID == in.ID {
			f.todos = append(f.todos[:i], f.todos[i+1:]...)
			return api.DeleteTodoResult{ID: in.ID}, nil
		}
	}
	return api.DeleteTodoResult{}, &api.RemoteError{Procedure: api.ProcDeleteTodo, Code: api.CodeNotFound, Message: "todo not found"}
}
