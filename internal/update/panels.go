package update

import (
	"strings"
	"time"

	"github.com/sandeepkv93/todoui/internal/model"
	"github.com/sandeepkv93/todoui/internal/views"
)

const defaultNotificationLimit = 40

// paneContentWidth mirrors the pane split in views.RenderApp minus border
// and padding.
func paneContentWidth(total int) int {
	if total <= 0 {
		return 54
	}
	w := total/2 - 8
	if w < 26 {
		return 26
	}
	return w
}

func (m Model) renderHeader() string {
	return views.RenderHeader(views.HeaderData{
		Title:  "todoui",
		Filter: m.list.Filter().Label(),
		Shown:  len(m.list.VisibleTodos()),
	})
}

func (m Model) renderMainPane() string {
	form := views.RenderForm(views.FormData{
		Input:        m.draftInput.View(),
		InputFocused: m.Focus == FocusInput,
		ButtonFocus:  m.Focus == FocusAdd,
		Submitting:   m.create.Submitting(),
		Spinner:      m.spinner.View(),
	})

	tabs := make([]views.TabData, 0, len(model.Filters()))
	for _, f := range model.Filters() {
		tabs = append(tabs, views.TabData{Label: f.Label(), Active: f == m.list.Filter()})
	}

	visible := m.list.VisibleTodos()
	rows := make([]views.TodoRow, 0, len(visible))
	for i, t := range visible {
		rows = append(rows, views.TodoRow{
			ID:        t.ID,
			Body:      t.Body,
			Completed: t.Completed(),
			Selected:  i == m.Cursor,
		})
	}
	errText := ""
	if err := m.list.LastError(); err != nil {
		errText = err.Error()
	}
	list := views.RenderTodoList(views.ListData{
		Rows:    rows,
		Focused: m.Focus == FocusList,
		Loading: m.list.Loading(),
		Fetched: m.list.Fetched(),
		Spinner: m.spinner.View(),
		Err:     errText,
	})

	return strings.Join([]string{form, "", views.RenderTabs(tabs), "", list}, "\n")
}

// detailCache holds the rendered detail pane for one todo and width.
type detailCache struct {
	todo  model.Todo
	width int
	out   string
}

func (m *Model) refreshDetail() {
	todo, ok := m.selectedTodo()
	if !ok {
		m.detail = detailCache{out: views.RenderDetail(views.DetailData{})}
		return
	}
	width := paneContentWidth(m.width)
	if m.detail.todo == todo && m.detail.width == width && m.detail.out != "" {
		return
	}
	m.detail = detailCache{
		todo:  todo,
		width: width,
		out: views.RenderDetail(views.DetailData{
			ID:     todo.ID,
			Status: string(todo.Status),
			Body:   todo.Body,
			Width:  width,
		}),
	}
}

func (m Model) renderDetailPane() string {
	return m.detail.out
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.Value())
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Title, n.Body)
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	}
	limit := m.notifyLimit
	if limit <= 0 {
		limit = defaultNotificationLimit
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > limit {
		m.Notifications = m.Notifications[len(m.Notifications)-limit:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		if err := m.notifier.Send(n); err != nil {
			m.logger.Warn("desktop notification failed", "err", err)
		}
	}
}
