package app

import (
	"errors"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/nhle/dragtodo/internal/todolist"
)

// statusRefresh is how often the "saved … ago" text is recomputed.
const statusRefresh = 30 * time.Second

type statusTickMsg struct{}

func tickStatus() tea.Cmd {
	return tea.Tick(statusRefresh, func(time.Time) tea.Msg {
		return statusTickMsg{}
	})
}

// reportResult shows a failed operation in the status bar. Validation
// messages are shown as is; anything else is also logged.
func (m *Model) reportResult(msg opResultMsg) {
	if msg.err == nil {
		if m.statusIsErr {
			m.status, m.statusIsErr = "", false
		}
		return
	}

	var verr *todolist.ValidationError
	if errors.As(msg.err, &verr) {
		m.setError(verr.Message)
		return
	}
	log.Printf("%s: %v", msg.op, msg.err)
	m.setError(fmt.Sprintf("%s failed: %v", msg.op, msg.err))
}

func (m *Model) setStatus(s string) {
	m.status, m.statusIsErr = s, false
}

func (m *Model) setError(s string) {
	m.status, m.statusIsErr = s, true
}

// summary is the right-hand side of the header.
func (m Model) summary() string {
	tasks := m.board.Tasks()
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}

	saved := "not saved yet"
	if at := m.list.SavedAt(); !at.IsZero() {
		saved = "saved " + humanize.RelTime(at, m.now(), "ago", "from now")
	}
	return fmt.Sprintf("%d/%d done · %s", done, len(tasks), saved)
}

// statusLine is the bottom bar: the last message, or key hints.
func (m Model) statusLine() string {
	if m.status != "" {
		if m.statusIsErr {
			return m.theme.ErrorStyle.Render(m.status)
		}
		return m.status
	}
	return m.keyHints()
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return "enter execute | esc back"
	case ViewTodoCreate:
		return "enter submit | esc cancel"
	}
	if m.board.Dragging() {
		return "j/k move | space/enter drop | esc cancel"
	}
	return "q quit | ? help | n new | space drag | x done | d delete | g grid | T theme"
}
