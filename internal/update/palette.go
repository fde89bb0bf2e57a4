package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/todoui/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m.quit()
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}

	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m *Model) closePalette() {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.closePalette()
		return m, nil
	}

	var out tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			if m.create.Submitting() {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "a todo is already being added"}
			}
			typed := m.create.Draft()
			m.create.SetDraft(a.Body)
			out = m.create.Submit()
			m.create.SetDraft(typed)
			return commands.Result{Message: "adding todo"}, nil
		},
		Filter: func(f commands.FilterArgs) (commands.Result, error) {
			var next Model
			next, out = m.selectFilter(f.Filter)
			m = next
			return commands.Result{Message: fmt.Sprintf("showing %s", f.Filter.Label())}, nil
		},
		Toggle: func(t commands.TargetArgs) (commands.Result, error) {
			out = m.list.ToggleStatus(t.ID)
			return commands.Result{Message: fmt.Sprintf("updating todo #%d", t.ID)}, nil
		},
		Delete: func(t commands.TargetArgs) (commands.Result, error) {
			out = m.list.Remove(t.ID)
			return commands.Result{Message: fmt.Sprintf("deleting todo #%d", t.ID)}, nil
		},
		Refresh: func() (commands.Result, error) {
			out = m.list.Refetch()
			return commands.Result{Message: "refreshing"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
	} else {
		m.Status = StatusBar{Text: res.Message}
		m.logger.Debug("palette command", "type", string(cmd.Type), "raw", raw)
	}

	m.closePalette()
	return m, m.withSpinner(out)
}
