package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	focusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	doneStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Strikethrough(true)
	activeTabStyle = lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("12"))
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	buttonStyle    = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder())
)

type FormData struct {
	Input        string
	InputFocused bool
	ButtonFocus  bool
	Submitting   bool
	Spinner      string
}

// RenderForm draws the draft input and the add button. The button reads as
// disabled while a create is in flight.
func RenderForm(data FormData) string {
	label := "Add"
	btn := buttonStyle
	switch {
	case data.Submitting:
		label = strings.TrimSpace(data.Spinner + " Adding")
		btn = btn.Foreground(lipgloss.Color("8")).BorderForeground(lipgloss.Color("8"))
	case data.ButtonFocus:
		btn = btn.Foreground(lipgloss.Color("12")).BorderForeground(lipgloss.Color("12"))
	}

	input := data.Input
	if data.InputFocused {
		input = focusStyle.Render("> ") + input
	} else {
		input = "  " + input
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, input, "  ", btn.Render(label))
}

type TabData struct {
	Label  string
	Active bool
}

func RenderTabs(tabs []TabData) string {
	parts := make([]string, 0, len(tabs))
	for i, tab := range tabs {
		text := fmt.Sprintf("%d %s", i+1, tab.Label)
		if tab.Active {
			parts = append(parts, activeTabStyle.Render(text))
			continue
		}
		parts = append(parts, tabStyle.Render(text))
	}
	return strings.Join(parts, "   ")
}

type TodoRow struct {
	ID        int64
	Body      string
	Completed bool
	Selected  bool
}

type ListData struct {
	Rows    []TodoRow
	Focused bool
	Loading bool
	Fetched bool
	Spinner string
	Err     string
}

// RenderTodoList draws one row per todo. Completed rows are checked, dimmed
// and struck through.
func RenderTodoList(data ListData) string {
	var b strings.Builder
	switch {
	case data.Loading && len(data.Rows) == 0:
		b.WriteString(dimStyle.Render(strings.TrimSpace(data.Spinner + " loading todos")))
		b.WriteString("\n")
	case !data.Fetched && len(data.Rows) == 0:
		b.WriteString(dimStyle.Render("nothing loaded yet"))
		b.WriteString("\n")
	case len(data.Rows) == 0:
		b.WriteString(dimStyle.Render("no todos"))
		b.WriteString("\n")
	}

	for _, row := range data.Rows {
		cursor := "  "
		if row.Selected && data.Focused {
			cursor = focusStyle.Render("> ")
		} else if row.Selected {
			cursor = "> "
		}
		box := "[ ]"
		body := row.Body
		if row.Completed {
			box = "[x]"
			body = doneStyle.Render(body)
		}
		fmt.Fprintf(&b, "%s%s #%d %s\n", cursor, box, row.ID, body)
	}

	if data.Loading && len(data.Rows) > 0 {
		b.WriteString(dimStyle.Render(strings.TrimSpace(data.Spinner + " refreshing")))
		b.WriteString("\n")
	}
	if data.Err != "" {
		b.WriteString(errorStyle.Render("last fetch failed: " + data.Err))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// HeaderData describes the active tab only.
type HeaderData struct {
	Title  string
	Filter string
	Shown  int
}

func RenderHeader(data HeaderData) string {
	return fmt.Sprintf("%s | %s tab | %d shown", data.Title, data.Filter, data.Shown)
}

type DetailData struct {
	ID     int64
	Status string
	Body   string
	Width  int
}

// RenderDetail shows the selected todo. The body is rendered as markdown so
// links and emphasis survive.
func RenderDetail(data DetailData) string {
	if data.ID == 0 {
		return dimStyle.Render("no todo selected")
	}
	lines := []string{
		focusStyle.Render(fmt.Sprintf("todo #%d", data.ID)),
		"status: " + data.Status,
		"",
		RenderMarkdownWidth(data.Body, data.Width),
	}
	return strings.Join(lines, "\n")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s\nexamples: add <body>, filter pending, toggle 3, delete 3, refresh", input)
}

func RenderNotification(level, title, body string) string {
	if body == "" {
		return ""
	}
	text := fmt.Sprintf("[%s] %s: %s", level, title, body)
	if level == "error" {
		return errorStyle.Render(text)
	}
	return text
}

type HelpPanelData struct {
	Context string
	Body    string
}

// RenderHelpPanel wraps an already rendered help body.
func RenderHelpPanel(data HelpPanelData) string {
	return strings.Join([]string{
		focusStyle.Render("help: " + data.Context),
		data.Body,
	}, "\n")
}
