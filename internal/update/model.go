package update

import (
	"fmt"
	"os/exec"
	"runtime"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/sandeepkv93/todoui/internal/api"
	"github.com/sandeepkv93/todoui/internal/controller"
	"github.com/sandeepkv93/todoui/internal/logging"
	"github.com/sandeepkv93/todoui/internal/model"
	"github.com/sandeepkv93/todoui/internal/querycache"
)

// Focus is the widget that receives key presses outside the palette.
type Focus string

const (
	FocusInput Focus = "input"
	FocusAdd   Focus = "add"
	FocusList  Focus = "list"
)

func focusOrder() []Focus {
	return []Focus{FocusInput, FocusAdd, FocusList}
}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Help    string
	Quit    string
	Palette string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

// Clipboard receives todo bodies copied from the list.
type Clipboard interface {
	WriteAll(text string) error
}

type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type Model struct {
	create controller.CreateController
	list   controller.ListController

	Focus         Focus
	Cursor        int
	Palette       CommandPaletteState
	HelpVisible   bool
	Notifications []Notification
	Status        StatusBar
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error

	DesktopEnabled bool
	notifyLimit    int
	notifier       DesktopNotifier
	clipboard      Clipboard
	logger         *log.Logger

	draftInput   textinput.Model
	commandInput textinput.Model
	spinner      spinner.Model
	helpModel    help.Model
	helpViewport viewport.Model
	width        int
	height       int
	detail       detailCache

	// initCmd is the first fetch, issued when the program starts.
	initCmd tea.Cmd
}

// Options carries the collaborators a Model needs besides the API client.
// Zero values fall back to a fresh cache, no desktop notifications, the
// system clipboard and a discarding logger.
type Options struct {
	Cache     *querycache.Cache[[]model.Todo]
	Notifier  DesktopNotifier
	Clipboard Clipboard
	Logger    *log.Logger
}

func NewModel(client api.Client) Model {
	return NewModelWithConfig(client, DefaultRuntimeConfig(), Options{})
}

func NewModelWithConfig(client api.Client, cfg RuntimeConfig, opts Options) Model {
	cache := opts.Cache
	if cache == nil {
		cache = querycache.New[[]model.Todo](cfg.CacheTTL)
	}
	m := Model{
		create:         controller.NewCreateController(client, cfg.RequestTimeout),
		list:           controller.NewListController(client, cache, cfg.RequestTimeout),
		Focus:          FocusInput,
		DesktopEnabled: cfg.DesktopNotifications,
		notifyLimit:    cfg.NotificationLimit,
		notifier:       NoopDesktopNotifier{},
		clipboard:      SystemClipboard{},
		logger:         logging.Discard(),
		Keys: GlobalKeyMap{
			Help:    "?",
			Quit:    "q",
			Palette: "/",
		},
		Status: StatusBar{Text: "ready"},
	}
	if opts.Notifier != nil {
		m.notifier = opts.Notifier
	}
	if opts.Clipboard != nil {
		m.clipboard = opts.Clipboard
	}
	if opts.Logger != nil {
		m.logger = opts.Logger
	}
	m.initBubbleComponents()
	m.initCmd = m.list.Init()
	m.syncBubbleData()
	return m
}

// Filter is the active list tab.
func (m Model) Filter() model.Filter { return m.list.Filter() }

// Draft is the unsent text of the create form.
func (m Model) Draft() string { return m.create.Draft() }

func (m Model) Submitting() bool { return m.create.Submitting() }

// VisibleTodos is what the list currently shows.
func (m Model) VisibleTodos() []model.Todo { return m.list.VisibleTodos() }

// Busy reports whether any remote call is in flight.
func (m Model) Busy() bool {
	return m.create.Submitting() || m.list.Loading()
}

func (m *Model) initBubbleComponents() {
	m.draftInput = textinput.New()
	m.draftInput.Placeholder = "What needs to be done?"
	m.draftInput.Prompt = ""
	m.draftInput.CharLimit = 500
	m.draftInput.Width = 40
	m.draftInput.Focus()

	m.commandInput = textinput.New()
	m.commandInput.Placeholder = "add <body> | filter pending | toggle 3"
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.helpViewport = viewport.New(54, 14)
}

// syncBubbleData copies controller state into the bubble widgets after every
// update so views never read stale component state.
func (m *Model) syncBubbleData() {
	if m.draftInput.Value() != m.create.Draft() {
		m.draftInput.SetValue(m.create.Draft())
	}
	if m.Focus == FocusInput && !m.Palette.Active {
		m.draftInput.Focus()
	} else {
		m.draftInput.Blur()
	}
	m.clampCursor()
	m.refreshDetail()
}

func (m *Model) clampCursor() {
	n := len(m.list.VisibleTodos())
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}
