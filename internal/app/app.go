package app

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/dragtodo/internal/keys"
	appsync "github.com/nhle/dragtodo/internal/sync"
	"github.com/nhle/dragtodo/internal/theme"
	"github.com/nhle/dragtodo/internal/todolist"
	"github.com/nhle/dragtodo/internal/ui"
	"github.com/nhle/dragtodo/internal/ui/board"
	"github.com/nhle/dragtodo/internal/ui/command"
	helpview "github.com/nhle/dragtodo/internal/ui/help"
	"github.com/nhle/dragtodo/internal/ui/todoform"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewHelp
	ViewCommand
	ViewTodoCreate
)

// Options configures the root model.
type Options struct {
	Theme       string
	GridColumns int
	Flash       time.Duration
}

// Model is the root Bubble Tea model that manages view routing,
// layout, and access to the task list.
type Model struct {
	currentView  ViewState
	previousView ViewState
	layout       ui.Layout
	list         *todolist.Store
	relay        *appsync.Relay
	keys         *keys.KeyMap
	theme        *theme.Theme
	board        board.Model
	helpView     helpview.Model
	commandView  command.Model
	todoFormView todoform.Model
	ready        bool
	lastSeq      uint64
	status       string
	statusIsErr  bool
	now          func() time.Time
}

// New creates the root model for list. It registers a change hook on
// list, so call it once per store.
func New(list *todolist.Store, opts Options) Model {
	k := keys.DefaultKeyMap()
	th := theme.Named(opts.Theme)

	relay := appsync.New(16)
	relay.Attach(list)

	b := board.New(k, th, opts.GridColumns, opts.Flash)
	b.SetTasks(list.Tasks())
	b.SetGrid(list.Grid())

	return Model{
		currentView:  ViewList,
		list:         list,
		relay:        relay,
		keys:         k,
		theme:        th,
		board:        b,
		helpView:     helpview.New(k, th, 80, 24),
		commandView:  command.New(th, 80, 24),
		todoFormView: todoform.New(th, 80, 24),
		now:          time.Now,
	}
}

// Init starts listening for task list changes and the status clock.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.relay.Wait(),
		tickStatus(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.board.SetSize(contentWidth, contentHeight)
		m.board.SetTop(m.layout.ContentTop())
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		m.todoFormView.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case appsync.ChangeMsg:
		cmd := m.applyChange(msg.Event)
		return m, tea.Batch(cmd, m.relay.Wait())

	case opResultMsg:
		m.reportResult(msg)
		return m, nil

	case statusTickMsg:
		return m, tickStatus()

	case board.DropReadyMsg:
		return m, m.dropCmd()

	case board.ToggleRequestMsg:
		return m, m.toggleCmd(msg.ID)

	case board.RemoveRequestMsg:
		return m, m.removeCmd(msg.ID)

	case board.YankedMsg:
		if msg.Err != nil {
			m.setError(fmt.Sprintf("clipboard: %v", msg.Err))
		} else {
			m.setStatus(fmt.Sprintf("Copied %q", msg.Name))
		}
		return m, nil

	case todoform.TodoSubmittedMsg:
		m.currentView = ViewList
		return m, m.addCmd(msg.Name)

	case todoform.TodoFormCancelMsg:
		m.currentView = ViewList
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		return m.executeCommand(string(msg))

	case command.CancelMsg:
		m.currentView = m.previousView
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, m.quit()
		}
		m.status, m.statusIsErr = "", false

		if m.currentView == ViewList && !m.board.Dragging() {
			if model, cmd, handled := m.handleListKeys(msg); handled {
				return model, cmd
			}
		}
		if m.currentView == ViewHelp &&
			(key.Matches(msg, m.keys.Help) || key.Matches(msg, m.keys.Back)) {
			m.currentView = m.previousView
			return m, nil
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// handleListKeys handles the global keys of the board view. It reports
// whether the key was consumed.
func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit(), true

	case key.Matches(msg, m.keys.Help):
		m.previousView = m.currentView
		m.currentView = ViewHelp
		return m, nil, true

	case key.Matches(msg, m.keys.Command):
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return m, m.commandView.Focus(), true

	case key.Matches(msg, m.keys.Add):
		m.previousView = m.currentView
		m.currentView = ViewTodoCreate
		return m, m.todoFormView.Start(), true

	case key.Matches(msg, m.keys.Grid):
		return m, m.toggleGridCmd(), true

	case key.Matches(msg, m.keys.Theme):
		m.setTheme(m.theme.Next())
		return m, nil, true
	}
	return m, nil, false
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.board, cmd = m.board.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewTodoCreate:
		m.todoFormView, cmd = m.todoFormView.Update(msg)
	}

	return m, cmd
}

// applyChange mirrors a persisted change onto the board and flashes the
// affected task. Events older than the last one applied carry a stale
// list and are skipped.
func (m *Model) applyChange(ev todolist.Event) tea.Cmd {
	if ev.Seq <= m.lastSeq {
		return nil
	}
	m.lastSeq = ev.Seq
	m.board.SetTasks(ev.Tasks)

	switch ev.Kind {
	case todolist.EventDisplayMode:
		m.board.SetGrid(ev.Grid)
		return nil
	case todolist.EventAdded, todolist.EventReordered:
		m.board.SelectID(ev.TaskID)
	case todolist.EventRemoved:
		return nil
	}
	return m.board.Flash(ev.TaskID)
}

func (m *Model) setTheme(th *theme.Theme) {
	m.theme = th
	m.board.SetTheme(th)
	m.helpView.SetTheme(th)
	m.commandView.SetTheme(th)
	m.todoFormView.SetTheme(th)
	m.setStatus("Theme: " + th.Palette.Name)
}

// executeCommand handles a line from the command palette.
func (m Model) executeCommand(line string) (tea.Model, tea.Cmd) {
	c, err := command.Parse(line)
	if err != nil {
		m.setError(err.Error())
		return m, nil
	}

	switch c.Kind {
	case command.Add:
		return m, m.addCmd(c.Arg)
	case command.Grid:
		return m, m.toggleGridCmd()
	case command.Theme:
		if c.Arg == "" {
			m.setTheme(m.theme.Next())
			return m, nil
		}
		if _, ok := theme.Lookup(c.Arg); !ok {
			m.setError(fmt.Sprintf("unknown theme %q", c.Arg))
			return m, nil
		}
		m.setTheme(theme.Named(c.Arg))
		return m, nil
	case command.Quit:
		return m, m.quit()
	}
	return m, nil
}

func (m Model) quit() tea.Cmd {
	m.relay.Stop()
	return tea.Quit
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader(m.theme, "dragtodo", m.summary())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.theme, m.statusLine())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		return m.board.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewTodoCreate:
		return m.todoFormView.View()
	default:
		return ""
	}
}
