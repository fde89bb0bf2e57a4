package update

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) handleInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m.submitDraft()
	case "esc":
		m.Focus = FocusList
		return m, nil
	}

	var cmd tea.Cmd
	m.draftInput, cmd = m.draftInput.Update(msg)
	m.create.SetDraft(m.draftInput.Value())
	return m, cmd
}

// handleAddKey drives the add button. It does nothing while a create is in
// flight.
func (m Model) handleAddKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter", " ":
		return m.submitDraft()
	case "i", "a":
		m.Focus = FocusInput
	}
	return m, nil
}

func (m Model) submitDraft() (Model, tea.Cmd) {
	cmd := m.create.Submit()
	if cmd == nil {
		return m, nil
	}
	m.Status = StatusBar{Text: "adding todo"}
	m.logger.Debug("submitting todo")
	return m, tea.Batch(cmd, m.spinner.Tick)
}
