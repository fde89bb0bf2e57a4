package update

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todoui/internal/controller"
	"github.com/sandeepkv93/todoui/internal/views"
)

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.initCmd, m.spinner.Tick, textinput.Blink)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.height = typed.Height
		m.helpViewport.Width = paneContentWidth(typed.Width)
		if m.HelpVisible {
			m.refreshHelpViewport()
		}
		return m, nil
	case controller.FetchResultMsg:
		return m.handleFetchResult(typed)
	case controller.MutationResultMsg:
		return m.handleMutationResult(typed)
	case spinner.TickMsg:
		if !m.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(typed)
		return m, cmd
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.reportError("Error", typed.Err)
		return m, nil
	default:
		return m, nil
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}

	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "tab":
		m.cycleFocus(1)
		return m, nil
	case "shift+tab":
		m.cycleFocus(-1)
		return m, nil
	}

	if m.Focus == FocusInput {
		return m.handleInputKey(msg)
	}

	switch msg.String() {
	case m.Keys.Palette:
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
		return m, nil
	case m.Keys.Help:
		m.toggleHelp()
		return m, nil
	case m.Keys.Quit:
		return m.quit()
	case "pgup", "pgdown":
		if m.HelpVisible {
			var cmd tea.Cmd
			m.helpViewport, cmd = m.helpViewport.Update(msg)
			return m, cmd
		}
	case "esc":
		if m.HelpVisible {
			m.toggleHelp()
			return m, nil
		}
	}

	if m.Focus == FocusAdd {
		return m.handleAddKey(msg)
	}
	return m.handleListKey(msg)
}

func (m Model) quit() (Model, tea.Cmd) {
	m.Quitting = true
	m.logger.Info("quitting")
	return m, tea.Quit
}

func (m *Model) cycleFocus(delta int) {
	order := focusOrder()
	idx := 0
	for i, f := range order {
		if f == m.Focus {
			idx = i
			break
		}
	}
	m.Focus = order[(idx+delta+len(order))%len(order)]
}

func (m *Model) toggleHelp() {
	m.HelpVisible = !m.HelpVisible
	if m.HelpVisible {
		m.refreshHelpViewport()
		m.Status = StatusBar{Text: "help shown"}
		return
	}
	m.Status = StatusBar{Text: "help hidden"}
}

func (m Model) handleFetchResult(msg controller.FetchResultMsg) (Model, tea.Cmd) {
	current := msg.Key == m.list.Key()
	cmd := m.list.Update(msg)
	switch {
	case msg.Err != nil && current:
		m.reportError("Error", fmt.Errorf("load %s todos: %w", msg.Filter, msg.Err))
	case msg.Err != nil:
		m.logger.Warn("stale fetch failed", "key", msg.Key.String(), "err", msg.Err)
	default:
		m.logger.Debug("fetched todos", "key", msg.Key.String(), "seq", msg.Seq, "count", len(msg.Todos), "current", current)
	}
	return m, cmd
}

func (m Model) handleMutationResult(msg controller.MutationResultMsg) (Model, tea.Cmd) {
	m.create.Update(msg)
	cmd := m.list.Update(msg)
	if !msg.OK() {
		m.reportError("Error", mutationError(msg))
		return m, cmd
	}

	text := mutationSummary(msg)
	m.logger.Info(text, "kind", string(msg.Kind), "id", msg.TodoID)
	m.Status = StatusBar{Text: text}
	m.notify(mutationTitle(msg.Kind), text, "info")
	return m, tea.Batch(cmd, m.spinner.Tick)
}

// reportError puts err in the status bar and the notification log.
func (m *Model) reportError(title string, err error) {
	if err == nil {
		return
	}
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	m.notify(title, err.Error(), levelFromError(true))
	m.logger.Error(title, "err", err)
}

func mutationError(msg controller.MutationResultMsg) error {
	if errors.Is(msg.Err, controller.ErrTodoNotVisible) {
		return fmt.Errorf("todo #%d: %w", msg.TodoID, msg.Err)
	}
	switch msg.Kind {
	case controller.MutationCreate:
		return fmt.Errorf("add todo: %w", msg.Err)
	case controller.MutationStatus:
		return fmt.Errorf("update todo #%d: %w", msg.TodoID, msg.Err)
	case controller.MutationDelete:
		return fmt.Errorf("delete todo #%d: %w", msg.TodoID, msg.Err)
	default:
		return msg.Err
	}
}

func mutationSummary(msg controller.MutationResultMsg) string {
	switch msg.Kind {
	case controller.MutationCreate:
		return fmt.Sprintf("added todo #%d", msg.Todo.ID)
	case controller.MutationStatus:
		return fmt.Sprintf("marked todo #%d %s", msg.Todo.ID, msg.Todo.Status)
	case controller.MutationDelete:
		return fmt.Sprintf("deleted todo #%d", msg.TodoID)
	default:
		return "done"
	}
}

func mutationTitle(kind controller.MutationKind) string {
	switch kind {
	case controller.MutationCreate:
		return "Added"
	case controller.MutationStatus:
		return "Updated"
	case controller.MutationDelete:
		return "Deleted"
	default:
		return "Todo"
	}
}

func (m Model) View() string {
	if m.Quitting {
		return "bye\n"
	}

	right := m.renderDetailPane()
	if m.HelpVisible {
		right = m.renderHelpView()
	}
	if m.Palette.Active {
		right = m.renderCommandPalette()
	}

	statusText := m.Status.Text
	if statusText == "" {
		statusText = "ready"
	}
	if m.Busy() {
		statusText = m.spinner.View() + " " + statusText
	}

	return views.RenderApp(views.AppData{
		Header:       m.renderHeader(),
		LeftPane:     m.renderMainPane(),
		RightPane:    right,
		StatusLine:   "status: " + statusText,
		StatusError:  m.Status.IsError,
		Notification: m.renderNotificationsView(),
		Footer:       m.helpModel.View(m.shortBindings()),
		Width:        m.width,
	})
}
