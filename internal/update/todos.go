package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todoui/internal/model"
)

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.Cursor < len(m.list.VisibleTodos())-1 {
			m.Cursor++
		}
	case "k", "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case " ", "x":
		todo, ok := m.selectedTodo()
		if !ok {
			return m, nil
		}
		m.Status = StatusBar{Text: fmt.Sprintf("updating todo #%d", todo.ID)}
		return m, m.withSpinner(m.list.ToggleStatus(todo.ID))
	case "d", "delete":
		todo, ok := m.selectedTodo()
		if !ok {
			return m, nil
		}
		m.Status = StatusBar{Text: fmt.Sprintf("deleting todo #%d", todo.ID)}
		return m, m.withSpinner(m.list.Remove(todo.ID))
	case "1", "2", "3":
		idx := int(msg.String()[0] - '1')
		return m.selectFilter(model.Filters()[idx])
	case "h", "left":
		return m.selectFilter(m.list.Filter().Prev())
	case "l", "right":
		return m.selectFilter(m.list.Filter().Next())
	case "r":
		m.Status = StatusBar{Text: "refreshing"}
		return m, m.withSpinner(m.list.Refetch())
	case "y":
		todo, ok := m.selectedTodo()
		if !ok {
			return m, nil
		}
		return m, copyTodoCmd(m.clipboard, todo)
	case "i", "a":
		m.Focus = FocusInput
	}
	return m, nil
}

func (m Model) selectFilter(f model.Filter) (Model, tea.Cmd) {
	cmd := m.list.SetFilter(f)
	if cmd == nil {
		return m, nil
	}
	m.Cursor = 0
	m.Status = StatusBar{Text: fmt.Sprintf("showing %s", f.Label())}
	return m, m.withSpinner(cmd)
}

func (m Model) selectedTodo() (model.Todo, bool) {
	visible := m.list.VisibleTodos()
	if m.Cursor < 0 || m.Cursor >= len(visible) {
		return model.Todo{}, false
	}
	return visible[m.Cursor], true
}

func (m Model) withSpinner(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return tea.Batch(cmd, m.spinner.Tick)
}

func copyTodoCmd(cb Clipboard, todo model.Todo) tea.Cmd {
	return func() tea.Msg {
		if err := cb.WriteAll(todo.Body); err != nil {
			return AppErrorMsg{Err: fmt.Errorf("copy todo #%d: %w", todo.ID, err)}
		}
		return SetStatusMsg{Text: fmt.Sprintf("copied todo #%d", todo.ID)}
	}
}
