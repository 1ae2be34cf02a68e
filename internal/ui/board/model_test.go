package board

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/dragtodo/internal/keys"
	"github.com/nhle/dragtodo/internal/model"
	"github.com/nhle/dragtodo/internal/theme"
	"github.com/nhle/dragtodo/internal/todolist"
)

func sampleTasks() []model.Task {
	return []model.Task{
		{ID: "a", Name: "Alpha"},
		{ID: "b", Name: "Bravo", Completed: true},
		{ID: "c", Name: "Charlie"},
		{ID: "d", Name: "Delta"},
	}
}

func newBoard(t *testing.T) Model {
	t.Helper()
	m := New(keys.DefaultKeyMap(), theme.Named("default"), 2, 50*time.Millisecond)
	m.SetSize(40, 20)
	m.SetTop(1)
	m.SetTasks(sampleTasks())
	return m
}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyDown  = runeKey("j")
	keyUp    = runeKey("k")
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func press(m Model, msgs ...tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		m, cmd = m.Update(msg)
	}
	return m, cmd
}

func TestCursorMovesAndClamps(t *testing.T) {
	m := newBoard(t)

	m, _ = press(m, keyUp)
	if m.Cursor() != 0 {
		t.Errorf("expected cursor 0, got %d", m.Cursor())
	}
	m, _ = press(m, keyDown, keyDown, keyDown, keyDown, keyDown)
	if m.Cursor() != 3 {
		t.Errorf("expected cursor clamped to 3, got %d", m.Cursor())
	}

	m.SetTasks(sampleTasks()[:2])
	if m.Cursor() != 1 {
		t.Errorf("expected cursor clamped to 1 after shrink, got %d", m.Cursor())
	}
}

func TestKeyboardDragProducesDrop(t *testing.T) {
	m := newBoard(t)

	m, _ = press(m, keyDown, keySpace)
	if !m.Dragging() {
		t.Fatal("expected drag to start")
	}
	m, _ = press(m, keyDown, keyDown)
	m, cmd := press(m, keyEnter)
	if m.Dragging() {
		t.Error("expected drag to end")
	}
	if cmd == nil {
		t.Fatal("expected a command")
	}
	if _, ok := cmd().(DropReadyMsg); !ok {
		t.Fatalf("expected DropReadyMsg, got %T", cmd())
	}

	ev, ok := m.Tracker().Release()
	if !ok {
		t.Fatal("expected a pending drop")
	}
	if ev != (todolist.DropEvent{MovedID: "b", TargetID: "d"}) {
		t.Errorf("unexpected drop %+v", ev)
	}
}

func TestDropOnSelfIsNoDrop(t *testing.T) {
	m := newBoard(t)

	m, _ = press(m, keySpace)
	m, cmd := press(m, keySpace)
	if cmd != nil {
		t.Error("expected no command when dropping onto the picked task")
	}
	if _, ok := m.Tracker().Release(); ok {
		t.Error("expected no pending drop")
	}
}

func TestEscCancelsDrag(t *testing.T) {
	m := newBoard(t)

	m, _ = press(m, keySpace, keyDown, keyDown, keyEsc)
	if m.Dragging() {
		t.Error("expected drag cancelled")
	}
	if m.Cursor() != 0 {
		t.Errorf("expected cursor back on the picked task, got %d", m.Cursor())
	}
	if _, ok := m.Tracker().Release(); ok {
		t.Error("expected no pending drop after cancel")
	}
}

func TestActionKeys(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		want tea.Msg
	}{
		{"toggle", runeKey("x"), ToggleRequestMsg{ID: "b"}},
		{"remove", runeKey("d"), RemoveRequestMsg{ID: "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newBoard(t)
			m, cmd := press(m, keyDown, tt.key)
			if cmd == nil {
				t.Fatal("expected a command")
			}
			if got := cmd(); got != tt.want {
				t.Errorf("expected %#v, got %#v", tt.want, got)
			}
			if len(m.Tasks()) != 4 {
				t.Error("board must not change the list itself")
			}
		})
	}
}

func TestActionKeysIgnoredWhileDragging(t *testing.T) {
	m := newBoard(t)
	m, _ = press(m, keySpace)
	if _, cmd := press(m, runeKey("d")); cmd != nil {
		t.Error("expected delete to be ignored during a drag")
	}
}

func TestYankCopiesName(t *testing.T) {
	m := newBoard(t)
	var copied string
	m.copyName = func(s string) error {
		copied = s
		return nil
	}

	_, cmd := press(m, keyDown, keyDown, runeKey("y"))
	msg, ok := cmd().(YankedMsg)
	if !ok {
		t.Fatalf("expected YankedMsg, got %T", cmd())
	}
	if msg.Name != "Charlie" || msg.Err != nil || copied != "Charlie" {
		t.Errorf("unexpected yank %+v, copied %q", msg, copied)
	}

	errNoClipboard := errors.New("no clipboard")
	m.copyName = func(string) error { return errNoClipboard }
	_, cmd = press(m, runeKey("y"))
	if msg := cmd().(YankedMsg); !errors.Is(msg.Err, errNoClipboard) {
		t.Errorf("expected clipboard error, got %v", msg.Err)
	}
}

func mouse(action tea.MouseAction, button tea.MouseButton, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

func TestMouseDragInList(t *testing.T) {
	m := newBoard(t)

	// Row 0 of the body is screen line top+1.
	m, _ = press(m,
		mouse(tea.MouseActionPress, tea.MouseButtonLeft, 3, 2),
		mouse(tea.MouseActionMotion, tea.MouseButtonLeft, 3, 3),
		mouse(tea.MouseActionMotion, tea.MouseButtonLeft, 3, 4),
	)
	if !m.Dragging() || m.Tracker().Picked() != "a" || m.Tracker().Hovered() != "c" {
		t.Fatalf("unexpected drag state picked=%q hovered=%q", m.Tracker().Picked(), m.Tracker().Hovered())
	}

	m, cmd := press(m, mouse(tea.MouseActionRelease, tea.MouseButtonNone, 3, 4))
	if cmd == nil {
		t.Fatal("expected DropReadyMsg command")
	}
	ev, ok := m.Tracker().Release()
	if !ok || ev != (todolist.DropEvent{MovedID: "a", TargetID: "c"}) {
		t.Errorf("unexpected drop %+v ok=%t", ev, ok)
	}
}

func TestMouseReleaseOutsideListIsNoDrop(t *testing.T) {
	m := newBoard(t)

	m, cmd := press(m,
		mouse(tea.MouseActionPress, tea.MouseButtonLeft, 3, 2),
		mouse(tea.MouseActionMotion, tea.MouseButtonLeft, 3, 15),
		mouse(tea.MouseActionRelease, tea.MouseButtonNone, 3, 15),
	)
	if cmd != nil {
		t.Error("expected no drop outside the list")
	}
	if m.Dragging() {
		t.Error("expected drag ended")
	}
}

func TestMouseDragInGrid(t *testing.T) {
	m := newBoard(t)
	m.SetGrid(true)

	// Two 20-wide columns, cards three lines tall: "d" is the second card
	// of the second row.
	m, cmd := press(m,
		mouse(tea.MouseActionPress, tea.MouseButtonLeft, 5, 3),
		mouse(tea.MouseActionMotion, tea.MouseButtonLeft, 25, 5),
		mouse(tea.MouseActionRelease, tea.MouseButtonNone, 25, 5),
	)
	if cmd == nil {
		t.Fatal("expected DropReadyMsg command")
	}
	ev, _ := m.Tracker().Release()
	if ev != (todolist.DropEvent{MovedID: "a", TargetID: "d"}) {
		t.Errorf("unexpected drop %+v", ev)
	}
}

func TestFlashEndsOnMatchingTick(t *testing.T) {
	m := newBoard(t)

	if cmd := m.Flash("a"); cmd == nil {
		t.Fatal("expected tick command")
	}
	first := FlashDoneMsg{ID: "a", Gen: 1}
	m.Flash("a")
	if !m.Flashing("a") {
		t.Fatal("expected task to flash")
	}

	m, _ = press(m, first)
	if !m.Flashing("a") {
		t.Error("stale tick must not end the newer flash")
	}
	m, _ = press(m, FlashDoneMsg{ID: "a", Gen: 2})
	if m.Flashing("a") {
		t.Error("expected flash to end")
	}
}

func TestFlashDisabled(t *testing.T) {
	m := New(keys.DefaultKeyMap(), theme.Named("default"), 2, 0)
	if cmd := m.Flash("a"); cmd != nil {
		t.Error("expected no flash with zero duration")
	}
}

func TestTaskRemovedDuringDragCancels(t *testing.T) {
	m := newBoard(t)
	m, _ = press(m, keySpace)
	m.SetTasks(sampleTasks()[1:])
	if m.Dragging() {
		t.Error("expected drag cancelled when its task disappears")
	}
}

func TestViewShowsScaleAndTasks(t *testing.T) {
	m := newBoard(t)
	out := m.View()
	for _, want := range []string{"Priority", "High", "Low", "Alpha", "[x]"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in view:\n%s", want, out)
		}
	}

	m.SetTasks(nil)
	if !strings.Contains(m.View(), "Nothing to do") {
		t.Error("expected empty state")
	}
}

func TestScrollKeepsCursorVisible(t *testing.T) {
	m := newBoard(t)
	m.SetSize(40, 4)

	m, _ = press(m, keyDown, keyDown, keyDown)
	out := m.View()
	if !strings.Contains(out, "Delta") || strings.Contains(out, "Alpha") {
		t.Errorf("expected view scrolled to Delta:\n%s", out)
	}
}
