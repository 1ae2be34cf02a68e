package todoform

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/dragtodo/internal/theme"
	"github.com/nhle/dragtodo/internal/todolist"
)

// TodoSubmittedMsg is dispatched when the form is submitted with a valid
// name.
type TodoSubmittedMsg struct {
	Name string
}

// TodoFormCancelMsg is dispatched when the user cancels the form.
type TodoFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name string
}

// Model is the Bubble Tea model for the add form.
type Model struct {
	form   *huh.Form
	fb     *formBindings
	theme  *theme.Theme
	width  int
	height int
}

// New creates a new add form model.
func New(th *theme.Theme, width, height int) Model {
	return Model{
		fb:     &formBindings{},
		theme:  th,
		width:  width,
		height: height,
	}
}

// Start resets the form for a new task.
func (m *Model) Start() tea.Cmd {
	m.fb.name = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the add form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.form = nil
		return m, func() tea.Msg { return TodoFormCancelMsg{} }
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.form = nil
		return m, m.handleSubmit()
	case huh.StateAborted:
		m.form = nil
		return m, func() tea.Msg { return TodoFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the add form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	content := m.theme.TitleStyle.Render("New Todo") + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// SetTheme changes the styles used for rendering.
func (m *Model) SetTheme(th *theme.Theme) { m.theme = th }

func (m *Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Todo").
				Placeholder("What needs to be done?").
				Value(&m.fb.name).
				Validate(todolist.ValidateName),
		),
	).WithWidth(m.formWidth()).WithShowHelp(false)
}

func (m Model) handleSubmit() tea.Cmd {
	name := strings.TrimSpace(m.fb.name)
	return func() tea.Msg { return TodoSubmittedMsg{Name: name} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}
