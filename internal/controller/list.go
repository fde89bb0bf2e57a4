package controller

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todoui/internal/api"
	"github.com/sandeepkv93/todoui/internal/model"
	"github.com/sandeepkv93/todoui/internal/querycache"
)

// ListController combines the active filter tab with the last fetched
// snapshot. The snapshot is only ever replaced by a fetch, never patched.
type ListController struct {
	client  api.Client
	cache   *querycache.Cache[[]model.Todo]
	timeout time.Duration

	filter  model.Filter
	todos   []model.Todo
	loading bool
	fetched bool
	lastErr error

	seq     uint64
	applied uint64
	// invalidated is the last seq issued before the cache was cleared.
	// Results at or below it describe pre-mutation state.
	invalidated uint64
}

func NewListController(client api.Client, cache *querycache.Cache[[]model.Todo], timeout time.Duration) ListController {
	if cache == nil {
		cache = querycache.New[[]model.Todo](querycache.DefaultTTL)
	}
	return ListController{
		client:  client,
		cache:   cache,
		timeout: timeout,
		filter:  model.FilterAll,
	}
}

// ListInput is the query sent for filter f.
func ListInput(f model.Filter) api.ListTodosInput {
	return api.ListTodosInput{Statuses: f.Statuses()}
}

func ListKey(f model.Filter) querycache.Key {
	return querycache.NewKey(api.ProcListTodos, ListInput(f))
}

func (l ListController) Filter() model.Filter { return l.filter }
func (l ListController) Key() querycache.Key  { return ListKey(l.filter) }
func (l ListController) Loading() bool        { return l.loading }
func (l ListController) Fetched() bool        { return l.fetched }
func (l ListController) LastError() error     { return l.lastErr }

// Snapshot returns the todos of the last applied fetch in fetch order.
func (l ListController) Snapshot() []model.Todo {
	return append([]model.Todo(nil), l.todos...)
}

// VisibleTodos applies the tab's predicate to the snapshot.
func (l ListController) VisibleTodos() []model.Todo {
	return l.filter.Apply(l.todos)
}

func (l ListController) Lookup(id int64) (model.Todo, bool) {
	for _, t := range l.todos {
		if t.ID == id {
			return t, true
		}
	}
	return model.Todo{}, false
}

func (l *ListController) Init() tea.Cmd {
	return l.fetch()
}

// SetFilter switches tabs. A cached snapshot for the new tab is shown while
// the fetch for it runs.
func (l *ListController) SetFilter(f model.Filter) tea.Cmd {
	if !f.IsValid() || f == l.filter {
		return nil
	}
	l.filter = f
	l.lastErr = nil
	if cached, ok := l.cache.Get(l.Key()); ok {
		l.todos = cached
	} else {
		l.todos = nil
	}
	return l.fetch()
}

// ToggleStatus asks the backend to flip the todo to the opposite status.
func (l *ListController) ToggleStatus(id int64) tea.Cmd {
	todo, ok := l.Lookup(id)
	if !ok {
		err := fmt.Errorf("%w: %d", ErrTodoNotVisible, id)
		return func() tea.Msg {
			return MutationResultMsg{Kind: MutationStatus, TodoID: id, Err: err}
		}
	}
	in := api.UpdateTodoStatusInput{TodoID: id, Status: todo.Status.Toggled()}
	client, timeout := l.client, l.timeout
	return func() tea.Msg {
		ctx, cancel := callContext(timeout)
		defer cancel()
		updated, err := client.UpdateTodoStatus(ctx, in)
		return MutationResultMsg{Kind: MutationStatus, TodoID: id, Todo: updated, Err: err}
	}
}

func (l *ListController) Remove(id int64) tea.Cmd {
	in := api.DeleteTodoInput{ID: id}
	client, timeout := l.client, l.timeout
	return func() tea.Msg {
		ctx, cancel := callContext(timeout)
		defer cancel()
		_, err := client.DeleteTodo(ctx, in)
		return MutationResultMsg{Kind: MutationDelete, TodoID: id, Err: err}
	}
}

// Refetch invalidates every cached list query and fetches the current tab.
func (l *ListController) Refetch() tea.Cmd {
	l.cache.InvalidateOperation(api.ProcListTodos)
	l.invalidated = l.seq
	return l.fetch()
}

// Update reconciles fetch and mutation results. Any successful mutation,
// including a create, triggers Refetch.
func (l *ListController) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case FetchResultMsg:
		l.applyFetch(msg)
	case MutationResultMsg:
		if msg.OK() {
			return l.Refetch()
		}
	}
	return nil
}

func (l *ListController) applyFetch(msg FetchResultMsg) {
	if msg.Seq <= l.invalidated {
		return
	}
	current := msg.Key == l.Key()
	if msg.Err != nil {
		if current && msg.Seq >= l.applied {
			l.loading = msg.Seq < l.seq
			l.lastErr = msg.Err
		}
		return
	}
	if !current {
		l.cache.Set(msg.Key, msg.Todos)
		return
	}
	if msg.Seq < l.applied {
		return
	}
	l.applied = msg.Seq
	l.cache.Set(msg.Key, msg.Todos)
	l.todos = msg.Todos
	l.fetched = true
	l.lastErr = nil
	l.loading = msg.Seq < l.seq
}

func (l *ListController) fetch() tea.Cmd {
	l.seq++
	l.loading = true
	seq, filter, key := l.seq, l.filter, l.Key()
	in := ListInput(filter)
	client, timeout := l.client, l.timeout
	return func() tea.Msg {
		ctx, cancel := callContext(timeout)
		defer cancel()
		todos, err := client.ListTodos(ctx, in)
		return FetchResultMsg{Key: key, Filter: filter, Seq: seq, Todos: todos, Err: err}
	}
}
