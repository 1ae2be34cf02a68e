package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// opResultMsg is sent after a task list operation finishes. Successful
// changes reach the board separately through the relay.
type opResultMsg struct {
	op  string
	err error
}

// addCmd appends a new task.
func (m Model) addCmd(name string) tea.Cmd {
	list := m.list
	return func() tea.Msg {
		_, err := list.Add(context.Background(), name)
		return opResultMsg{op: "add", err: err}
	}
}

// removeCmd deletes a task.
func (m Model) removeCmd(id string) tea.Cmd {
	list := m.list
	return func() tea.Msg {
		return opResultMsg{op: "remove", err: list.Remove(context.Background(), id)}
	}
}

// toggleCmd flips a task's completed flag.
func (m Model) toggleCmd(id string) tea.Cmd {
	list := m.list
	return func() tea.Msg {
		return opResultMsg{op: "toggle", err: list.ToggleCompleted(context.Background(), id)}
	}
}

// toggleGridCmd flips the display mode.
func (m Model) toggleGridCmd() tea.Cmd {
	list := m.list
	return func() tea.Msg {
		_, err := list.ToggleDisplayMode(context.Background())
		return opResultMsg{op: "grid", err: err}
	}
}

// dropCmd applies the drop waiting in the board's tracker. The drop is
// handed off first so a new gesture can start before the command runs.
func (m Model) dropCmd() tea.Cmd {
	list := m.list
	src := m.board.Tracker().Handoff()
	return func() tea.Msg {
		_, err := list.Drop(context.Background(), src)
		return opResultMsg{op: "reorder", err: err}
	}
}
