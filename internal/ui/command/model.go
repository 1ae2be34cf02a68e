package command

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dragtodo/internal/theme"
)

// CommandMsg is emitted when the user executes a command.
type CommandMsg string

// CancelMsg is emitted when the palette is dismissed.
type CancelMsg struct{}

// Model is the command palette view.
type Model struct {
	input  textinput.Model
	theme  *theme.Theme
	width  int
	height int
}

// New creates a new command palette model.
func New(th *theme.Theme, width, height int) Model {
	ti := textinput.New()
	ti.Placeholder = "add <name> | grid | theme <name> | quit"
	ti.Prompt = ": "
	ti.Focus()
	ti.Width = width - 6

	return Model{
		input:  ti,
		theme:  th,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the command palette.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			line := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if line != "" {
				return m, func() tea.Msg {
					return CommandMsg(line)
				}
			}
			return m, nil

		case tea.KeyEsc:
			m.input.Reset()
			return m, func() tea.Msg { return CancelMsg{} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the command palette.
func (m Model) View() string {
	title := m.theme.TitleStyle.Render("Command Palette")
	content := lipgloss.JoinVertical(lipgloss.Left, title, m.input.View())

	return m.theme.PanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the command palette dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = width - 6
}

// SetTheme changes the styles used for rendering.
func (m *Model) SetTheme(th *theme.Theme) { m.theme = th }

// Focus gives keyboard focus to the text input.
func (m *Model) Focus() tea.Cmd {
	return m.input.Focus()
}
