package board

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/dragtodo/internal/dnd"
	"github.com/nhle/dragtodo/internal/keys"
	"github.com/nhle/dragtodo/internal/model"
	"github.com/nhle/dragtodo/internal/theme"
)

// DropReadyMsg is sent when a drag gesture finished over another task.
// The drop itself is waiting in the board's tracker.
type DropReadyMsg struct{}

// ToggleRequestMsg asks for the completed flag of a task to be flipped.
type ToggleRequestMsg struct {
	ID string
}

// RemoveRequestMsg asks for a task to be removed.
type RemoveRequestMsg struct {
	ID string
}

// YankedMsg reports the result of copying a task name to the clipboard.
type YankedMsg struct {
	Name string
	Err  error
}

// FlashDoneMsg ends the highlight started by Flash. Gen identifies which
// flash it belongs to so an older tick does not cut a newer one short.
type FlashDoneMsg struct {
	ID  string
	Gen int
}

const (
	cardHeight   = 3
	minCardWidth = 10
)

// Model is the task board: the ordered list in list or grid layout, the
// cursor, and the drag gesture in progress.
type Model struct {
	tasks   []model.Task
	grid    bool
	columns int

	cursor int
	offset int

	drag *dnd.Tracker

	flash    map[string]int
	flashGen int
	flashFor time.Duration

	keys  *keys.KeyMap
	theme *theme.Theme

	width  int
	height int
	top    int

	copyName func(string) error
}

// New creates a board. columns is the card count per row in grid mode.
func New(k *keys.KeyMap, th *theme.Theme, columns int, flashFor time.Duration) Model {
	if columns < 1 {
		columns = 1
	}
	return Model{
		columns:  columns,
		drag:     dnd.New(),
		flash:    make(map[string]int),
		flashFor: flashFor,
		keys:     k,
		theme:    th,
		copyName: clipboard.WriteAll,
	}
}

// Tracker is the drag source to hand to the task list on DropReadyMsg.
func (m Model) Tracker() *dnd.Tracker { return m.drag }

// SetTasks replaces the displayed list. A drag whose task disappeared is
// cancelled.
func (m *Model) SetTasks(tasks []model.Task) {
	m.tasks = tasks
	if m.drag.Active() && model.IndexOf(tasks, m.drag.Picked()) < 0 {
		m.drag.Cancel()
	}
	m.clampCursor()
}

// Tasks returns the displayed list.
func (m Model) Tasks() []model.Task { return m.tasks }

// SetGrid switches between list and grid layout.
func (m *Model) SetGrid(grid bool) {
	m.grid = grid
	m.offset = 0
	m.ensureVisible()
}

// Grid reports whether the grid layout is shown.
func (m Model) Grid() bool { return m.grid }

// SetTheme changes the styles used for rendering.
func (m *Model) SetTheme(th *theme.Theme) { m.theme = th }

// SetSize updates the board dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ensureVisible()
}

// SetTop sets the screen row the board is drawn at, used to map mouse
// events onto tasks.
func (m *Model) SetTop(top int) { m.top = top }

// Cursor returns the index of the selected task.
func (m Model) Cursor() int { return m.cursor }

// Selected returns the task under the cursor.
func (m Model) Selected() (model.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return model.Task{}, false
	}
	return m.tasks[m.cursor], true
}

// SelectID moves the cursor onto the task with id, if present.
func (m *Model) SelectID(id string) {
	if i := model.IndexOf(m.tasks, id); i >= 0 {
		m.cursor = i
		m.ensureVisible()
	}
}

// Dragging reports whether a drag gesture is in progress.
func (m Model) Dragging() bool { return m.drag.Active() }

// Flashing reports whether the task with id is currently highlighted.
func (m Model) Flashing(id string) bool {
	_, ok := m.flash[id]
	return ok
}

// Flash highlights the task with id for the configured duration.
func (m *Model) Flash(id string) tea.Cmd {
	if id == "" || m.flashFor <= 0 {
		return nil
	}
	m.flashGen++
	gen := m.flashGen
	m.flash[id] = gen
	return tea.Tick(m.flashFor, func(time.Time) tea.Msg {
		return FlashDoneMsg{ID: id, Gen: gen}
	})
}

// Update handles messages for the board.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case FlashDoneMsg:
		if m.flash[msg.ID] == msg.Gen {
			delete(m.flash, msg.ID)
		}
		return m, nil

	case tea.KeyMsg:
		if m.drag.Active() {
			return m.handleDragKeys(msg)
		}
		return m.handleKeys(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Grab):
		if t, ok := m.Selected(); ok {
			m.drag.Pick(t.ID)
		}

	case key.Matches(msg, m.keys.Complete):
		if t, ok := m.Selected(); ok {
			return m, func() tea.Msg { return ToggleRequestMsg{ID: t.ID} }
		}

	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.Selected(); ok {
			return m, func() tea.Msg { return RemoveRequestMsg{ID: t.ID} }
		}

	case key.Matches(msg, m.keys.Yank):
		if t, ok := m.Selected(); ok {
			copyName := m.copyName
			return m, func() tea.Msg {
				return YankedMsg{Name: t.Name, Err: copyName(t.Name)}
			}
		}
	}
	return m, nil
}

// handleDragKeys runs while a task is picked up: the cursor becomes the
// drop target.
func (m Model) handleDragKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
		m.hoverCursor()

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
		m.hoverCursor()

	case key.Matches(msg, m.keys.Grab), key.Matches(msg, m.keys.Drop):
		cmd := m.finishDrag()
		return m, cmd

	case key.Matches(msg, m.keys.Back):
		picked := m.drag.Picked()
		m.drag.Cancel()
		m.SelectID(picked)
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.moveCursor(-m.step())
			return m, nil
		case tea.MouseButtonWheelDown:
			m.moveCursor(m.step())
			return m, nil
		case tea.MouseButtonLeft:
			i := m.indexAt(msg.X, msg.Y)
			if i < 0 {
				return m, nil
			}
			m.cursor = i
			m.drag.Pick(m.tasks[i].ID)
		}

	case tea.MouseActionMotion:
		if !m.drag.Active() {
			return m, nil
		}
		i := m.indexAt(msg.X, msg.Y)
		if i < 0 {
			m.drag.Over("")
			return m, nil
		}
		m.cursor = i
		m.drag.Over(m.tasks[i].ID)

	case tea.MouseActionRelease:
		if !m.drag.Active() {
			return m, nil
		}
		cmd := m.finishDrag()
		return m, cmd
	}
	return m, nil
}

func (m *Model) finishDrag() tea.Cmd {
	picked := m.drag.Picked()
	if !m.drag.Finish() {
		m.SelectID(picked)
		return nil
	}
	return func() tea.Msg { return DropReadyMsg{} }
}

func (m *Model) hoverCursor() {
	if t, ok := m.Selected(); ok {
		m.drag.Over(t.ID)
	}
}

// step is how far one wheel notch or row moves the cursor.
func (m Model) step() int {
	if m.grid {
		return m.gridColumns()
	}
	return 1
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.tasks) {
		m.cursor = len(m.tasks) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.ensureVisible()
}

// ensureVisible scrolls so the cursor's line is inside the body.
func (m *Model) ensureVisible() {
	line, rows := m.cursor, m.visibleRows()
	if m.grid {
		line = m.cursor / m.gridColumns()
	}
	if line < m.offset {
		m.offset = line
	}
	if line >= m.offset+rows {
		m.offset = line - rows + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// bodyHeight is the space between the "Priority" header and the "Low"
// footer.
func (m Model) bodyHeight() int {
	h := m.height - 2
	if h < 1 {
		return 1
	}
	return h
}

// visibleRows is the number of list rows or card rows that fit.
func (m Model) visibleRows() int {
	if !m.grid {
		return m.bodyHeight()
	}
	rows := m.bodyHeight() / cardHeight
	if rows < 1 {
		return 1
	}
	return rows
}

// gridColumns is the configured column count, reduced when the terminal
// is too narrow for it.
func (m Model) gridColumns() int {
	cols := m.columns
	if m.width > 0 {
		if fit := m.width / minCardWidth; fit < cols {
			cols = fit
		}
	}
	if cols < 1 {
		return 1
	}
	return cols
}

// cardWidth is the outer width of one card including its border.
func (m Model) cardWidth() int {
	if m.width <= 0 {
		return minCardWidth
	}
	return m.width / m.gridColumns()
}

// indexAt maps a screen cell to a task index, or -1 when the cell is not
// over a task.
func (m Model) indexAt(x, y int) int {
	row := y - m.top - 1
	if row < 0 || row >= m.bodyHeight() {
		return -1
	}

	i := m.offset + row
	if m.grid {
		col := x / m.cardWidth()
		if col >= m.gridColumns() || row/cardHeight >= m.visibleRows() {
			return -1
		}
		i = (m.offset+row/cardHeight)*m.gridColumns() + col
	}
	if i < 0 || i >= len(m.tasks) {
		return -1
	}
	return i
}
