package controller

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/todoui/internal/api"
)

type CreateState int

const (
	CreateIdle CreateState = iota
	CreateSubmitting
)

func (s CreateState) String() string {
	if s == CreateSubmitting {
		return "submitting"
	}
	return "idle"
}

// CreateController owns the draft of a new todo. At most one create is in
// flight at a time.
type CreateController struct {
	client  api.Client
	timeout time.Duration
	draft   string
	state   CreateState
}

func NewCreateController(client api.Client, timeout time.Duration) CreateController {
	return CreateController{client: client, timeout: timeout}
}

func (c CreateController) Draft() string      { return c.draft }
func (c CreateController) State() CreateState { return c.state }
func (c CreateController) Submitting() bool   { return c.state == CreateSubmitting }

// SetDraft replaces the draft. Validation waits for Submit.
func (c *CreateController) SetDraft(text string) {
	c.draft = text
}

// Submit sends the draft exactly as typed and clears it without waiting for
// the backend. Blank drafts and submits while a create is outstanding are
// ignored and return nil.
func (c *CreateController) Submit() tea.Cmd {
	if strings.TrimSpace(c.draft) == "" {
		return nil
	}
	if c.state == CreateSubmitting {
		return nil
	}
	body := c.draft
	c.draft = ""
	c.state = CreateSubmitting

	client, timeout := c.client, c.timeout
	return func() tea.Msg {
		ctx, cancel := callContext(timeout)
		defer cancel()
		todo, err := client.CreateTodo(ctx, api.CreateTodoInput{Body: body})
		return MutationResultMsg{Kind: MutationCreate, TodoID: todo.ID, Todo: todo, Err: err}
	}
}

// Update returns the controller to idle once its create completes. The
// draft stays cleared on failure.
func (c *CreateController) Update(msg tea.Msg) {
	if res, ok := msg.(MutationResultMsg); ok && res.Kind == MutationCreate {
		c.state = CreateIdle
	}
}
