// Package help renders the "?" overlay: key bindings, drag gestures and
// the palette commands.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dragtodo/internal/keys"
	"github.com/nhle/dragtodo/internal/theme"
	"github.com/nhle/dragtodo/internal/ui/command"
)

var gestures = []string{
	"mouse: press on a todo, move over another, release to drop",
	"keys:  space picks up, j/k choose the target, space or enter drops",
	"esc puts the todo back where it was",
}

// Model is the help overlay.
type Model struct {
	keys   *keys.KeyMap
	theme  *theme.Theme
	help   help.Model
	width  int
	height int
}

func New(k *keys.KeyMap, th *theme.Theme, width, height int) Model {
	m := Model{keys: k, help: help.New()}
	m.SetTheme(th)
	m.SetSize(width, height)
	return m
}

// Update is a no-op; the app closes the overlay.
func (m Model) Update(tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

func (m Model) View() string {
	inner := m.width - 4

	m.help.ShowAll = true
	sections := []string{
		m.theme.TitleStyle.Render("Keys"),
		m.help.View(m.keys),
		"",
		m.theme.TitleStyle.Render("Dragging"),
		m.theme.HelpStyle.Render(strings.Join(gestures, "\n")),
		"",
		m.theme.TitleStyle.Render("Commands"),
		m.commands(),
	}

	return m.theme.PanelStyle.
		Width(inner).
		Height(m.height - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

// commands lays the palette commands out in two aligned columns.
func (m Model) commands() string {
	usages := command.Usages()
	width := 0
	for _, u := range usages {
		width = max(width, lipgloss.Width(u.Syntax))
	}

	syntax := lipgloss.NewStyle().Width(width + 2)
	lines := make([]string, len(usages))
	for i, u := range usages {
		lines[i] = syntax.Render(u.Syntax) + m.theme.HelpStyle.Render(u.Desc)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}

// SetTheme restyles the key list to match th.
func (m *Model) SetTheme(th *theme.Theme) {
	m.theme = th
	m.help.Styles.FullKey = th.TitleStyle.UnsetMarginBottom()
	m.help.Styles.FullDesc = th.HelpStyle
	m.help.Styles.FullSeparator = th.HelpStyle
}
