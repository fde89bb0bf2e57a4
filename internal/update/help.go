package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/todoui/internal/commands"
	"github.com/sandeepkv93/todoui/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpView() string {
	return views.RenderHelpPanel(views.HelpPanelData{
		Context: string(m.Focus),
		Body:    m.helpViewport.View(),
	})
}

// refreshHelpViewport renders the help document once per toggle or resize;
// glamour is too slow to run on every frame.
func (m *Model) refreshHelpViewport() {
	m.helpViewport.SetContent(views.RenderMarkdownWidth(m.helpMarkdown(), m.helpViewport.Width))
	m.helpViewport.GotoTop()
}

func (m Model) helpMarkdown() string {
	var b strings.Builder
	b.WriteString("# Keys\n\n## Global\n\n")
	for _, kb := range m.globalBindings() {
		fmt.Fprintf(&b, "- `%s` %s\n", kb.Key, kb.Action)
	}
	fmt.Fprintf(&b, "\n## %s\n\n", strings.ToUpper(string(m.Focus[:1]))+string(m.Focus[1:]))
	for _, kb := range m.focusBindings() {
		fmt.Fprintf(&b, "- `%s` %s\n", kb.Key, kb.Action)
	}
	b.WriteString("\n## Commands\n\n")
	for _, t := range commands.Types() {
		fmt.Fprintf(&b, "- `/%s`\n", commandUsage(t))
	}
	return b.String()
}

func commandUsage(t commands.Type) string {
	switch t {
	case commands.TypeAdd:
		return "add <body>"
	case commands.TypeFilter:
		return "filter all|pending|completed"
	case commands.TypeToggle, commands.TypeDelete:
		return string(t) + " <id>"
	default:
		return string(t)
	}
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: "tab", Action: "next focus"},
		{Key: "shift+tab", Action: "previous focus"},
		{Key: m.Keys.Palette, Action: "command palette"},
		{Key: m.Keys.Help, Action: "toggle help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) focusBindings() []KeyBinding {
	switch m.Focus {
	case FocusInput:
		return []KeyBinding{
			{Key: "enter", Action: "add todo"},
			{Key: "esc", Action: "go to list"},
		}
	case FocusAdd:
		return []KeyBinding{
			{Key: "enter", Action: "add todo"},
			{Key: "i", Action: "edit draft"},
		}
	default:
		return []KeyBinding{
			{Key: "j/k", Action: "move"},
			{Key: "space", Action: "toggle done"},
			{Key: "d", Action: "delete"},
			{Key: "1/2/3", Action: "all/pending/completed"},
			{Key: "h/l", Action: "previous/next tab"},
			{Key: "r", Action: "refresh"},
			{Key: "y", Action: "copy body"},
			{Key: "i", Action: "edit draft"},
		}
	}
}

// shortBindings is the footer: focus keys first, then tab and help.
func (m Model) shortBindings() helpKeyMap {
	bindings := make([]key.Binding, 0, 8)
	for _, kb := range m.focusBindings() {
		bindings = append(bindings, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	bindings = append(bindings,
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
		key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	)
	if m.Focus == FocusInput {
		bindings = append(bindings, key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")))
	}
	return helpKeyMap{short: bindings, full: [][]key.Binding{bindings}}
}
