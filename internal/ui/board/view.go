package board

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/nhle/dragtodo/internal/model"
)

// View renders the board: the "Priority … High" header line, the tasks,
// and the "Low" footer line.
func (m Model) View() string {
	var body string
	switch {
	case len(m.tasks) == 0:
		body = m.renderEmptyState()
	case m.grid:
		body = m.renderGrid()
	default:
		body = m.renderList()
	}

	body = lipgloss.NewStyle().
		Height(m.bodyHeight()).
		MaxHeight(m.bodyHeight()).
		Render(body)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderScale("Priority", m.theme.HighStyle.Render("High")),
		body,
		m.renderScale("", m.theme.LowStyle.Render("Low")),
	)
}

// renderScale puts label on the left and end on the right edge.
func (m Model) renderScale(label, end string) string {
	left := m.theme.TitleStyle.UnsetMarginBottom().Render(label)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(end)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + end
}

func (m Model) renderEmptyState() string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.bodyHeight()).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(m.theme.Palette.Muted).
		Render("Nothing to do.\n\nPress n to add a todo.")
}

func (m Model) renderList() string {
	end := m.offset + m.visibleRows()
	if end > len(m.tasks) {
		end = len(m.tasks)
	}

	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(i))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(i int) string {
	t := m.tasks[i]
	nameWidth := m.width - 6
	if nameWidth < 1 {
		nameWidth = 1
	}

	name := m.styleName(t, runewidth.Truncate(t.Name, nameWidth, "…"))
	line := checkbox(t) + " " + name

	if i == m.cursor {
		return m.theme.SelectedRowStyle.Render(line)
	}
	return m.theme.RowStyle.Render(line)
}

// styleName applies the done, drag and flash styles to a task name.
func (m Model) styleName(t model.Task, name string) string {
	switch {
	case m.Flashing(t.ID):
		return m.theme.FlashStyle.Render(name)
	case m.drag.Active() && t.ID == m.drag.Picked():
		return m.theme.DraggingStyle.Render(name)
	case m.drag.Active() && t.ID == m.drag.Hovered():
		return m.theme.DropTargetStyle.Render(name)
	case t.Completed:
		return m.theme.DoneStyle.Render(name)
	}
	return name
}

func (m Model) renderGrid() string {
	cols := m.gridColumns()
	first := m.offset * cols
	last := (m.offset + m.visibleRows()) * cols
	if last > len(m.tasks) {
		last = len(m.tasks)
	}

	var rows []string
	for start := first; start < last; start += cols {
		end := start + cols
		if end > last {
			end = last
		}
		cards := make([]string, 0, cols)
		for i := start; i < end; i++ {
			cards = append(cards, m.renderCard(i))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderCard(i int) string {
	t := m.tasks[i]
	outer := m.cardWidth()

	// Width covers padding but not the border. The text also loses the
	// checkbox.
	textWidth := outer - 8
	if textWidth < 1 {
		textWidth = 1
	}
	text := runewidth.Truncate(t.Name, textWidth, "…")
	style := m.theme.CardStyle(t.ID, outer-2)

	switch {
	case m.Flashing(t.ID):
		style = style.Reverse(true)
	case m.drag.Active() && t.ID == m.drag.Picked():
		style = style.Faint(true).Italic(true)
	case m.drag.Active() && t.ID == m.drag.Hovered():
		style = style.Border(lipgloss.ThickBorder()).BorderForeground(m.theme.Palette.Accent)
	case i == m.cursor:
		style = style.BorderForeground(m.theme.Palette.Accent)
	}
	if t.Completed {
		style = style.Strikethrough(true)
	}
	return style.Render(checkbox(t) + " " + text)
}

func checkbox(t model.Task) string {
	if t.Completed {
		return "[x]"
	}
	return "[ ]"
}
