package app

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/dragtodo/internal/model"
	appsync "github.com/nhle/dragtodo/internal/sync"
	"github.com/nhle/dragtodo/internal/testutil"
	"github.com/nhle/dragtodo/internal/todolist"
	"github.com/nhle/dragtodo/internal/ui/board"
	"github.com/nhle/dragtodo/internal/ui/command"
	"github.com/nhle/dragtodo/internal/ui/todoform"
)

func newApp(t *testing.T, kv *testutil.FaultyStore) Model {
	t.Helper()
	n := 0
	list, err := todolist.Open(context.Background(), kv, todolist.Options{
		Seed: []model.Task{
			{ID: "a", Name: "Alpha"},
			{ID: "b", Name: "Bravo"},
			{ID: "c", Name: "Charlie"},
		},
		NewID: func() string {
			n++
			return "new" + string(rune('0'+n))
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	m := New(list, Options{Theme: "default", GridColumns: 2})
	return update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

// run executes an operation command and feeds its result, plus the change
// it produced, back into the model.
func run(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	res, ok := cmd().(opResultMsg)
	if !ok {
		t.Fatalf("expected opResultMsg")
	}
	m = update(t, m, res)
	if res.err == nil {
		m = update(t, m, m.relay.Wait()())
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func boardIDs(m Model) []string {
	var out []string
	for _, t := range m.board.Tasks() {
		out = append(out, t.ID)
	}
	return out
}

func TestNewShowsStoredState(t *testing.T) {
	m := newApp(t, testutil.NewFaultyStore(testutil.NewTestStore(t)))
	if got := strings.Join(boardIDs(m), ","); got != "a,b,c" {
		t.Errorf("expected seed on board, got %s", got)
	}
	out := m.View()
	if !strings.Contains(out, "0/3 done") || !strings.Contains(out, "not saved yet") {
		t.Errorf("unexpected header:\n%s", out)
	}
}

func TestKeyboardDragReordersStore(t *testing.T) {
	m := newApp(t, testutil.NewFaultyStore(testutil.NewTestStore(t)))

	space := tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	m = update(t, m, space)
	m = update(t, m, runes("j"))
	m = update(t, m, runes("j"))

	next, cmd := m.Update(space)
	m = next.(Model)
	drop, ok := cmd().(board.DropReadyMsg)
	if !ok {
		t.Fatal("expected DropReadyMsg")
	}

	next, cmd = m.Update(drop)
	m = run(t, next.(Model), cmd)

	if got := strings.Join(ids(m.list.Tasks()), ","); got != "b,c,a" {
		t.Errorf("expected store order b,c,a, got %s", got)
	}
	if got := strings.Join(boardIDs(m), ","); got != "b,c,a" {
		t.Errorf("expected board order b,c,a, got %s", got)
	}
	if m.board.Cursor() != 2 {
		t.Errorf("expected cursor to follow the moved task, got %d", m.board.Cursor())
	}
}

func ids(tasks []model.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.ID
	}
	return out
}

func TestToggleAndRemoveFromBoard(t *testing.T) {
	m := newApp(t, testutil.NewFaultyStore(testutil.NewTestStore(t)))

	_, cmd := m.Update(runes("x"))
	next, cmd := m.Update(cmd())
	m = run(t, next.(Model), cmd)
	if task, _ := m.list.Get("a"); !task.Completed {
		t.Error("expected a completed")
	}
	if !m.board.Tasks()[0].Completed {
		t.Error("expected board to show a completed")
	}

	m = update(t, m, runes("j"))
	_, cmd = m.Update(runes("d"))
	next, cmd = m.Update(cmd())
	m = run(t, next.(Model), cmd)
	if got := strings.Join(boardIDs(m), ","); got != "a,c" {
		t.Errorf("expected a,c after remove, got %s", got)
	}
	if out := m.View(); !strings.Contains(out, "1/2 done · saved ") {
		t.Errorf("expected saved time in header:\n%s", out)
	}
}

func TestStaleChangeIgnored(t *testing.T) {
	m := newApp(t, testutil.NewFaultyStore(testutil.NewTestStore(t)))

	newer := todolist.Event{
		Seq:    2,
		Kind:   todolist.EventAdded,
		TaskID: "d",
		Tasks: []model.Task{
			{ID: "a", Name: "Alpha"},
			{ID: "b", Name: "Bravo"},
			{ID: "c", Name: "Charlie"},
			{ID: "d", Name: "Delta"},
		},
	}
	older := todolist.Event{
		Seq:    1,
		Kind:   todolist.EventAdded,
		TaskID: "c",
		Tasks:  newer.Tasks[:3],
	}

	m = update(t, m, appsync.ChangeMsg{Event: newer})
	m = update(t, m, appsync.ChangeMsg{Event: older})
	if got := strings.Join(boardIDs(m), ","); got != "a,b,c,d" {
		t.Errorf("expected newest list to stay on the board, got %s", got)
	}
	if m.board.Cursor() != 3 {
		t.Errorf("expected cursor to stay on d, got %d", m.board.Cursor())
	}
}

func TestAddFlow(t *testing.T) {
	m := newApp(t, testutil.NewFaultyStore(testutil.NewTestStore(t)))

	m = update(t, m, runes("n"))
	if m.currentView != ViewTodoCreate {
		t.Fatalf("expected add form, got view %d", m.currentView)
	}

	next, cmd := m.Update(todoform.TodoSubmittedMsg{Name: "Buy milk"})
	m = run(t, next.(Model), cmd)

	if m.currentView != ViewList {
		t.Error("expected to return to the list")
	}
	tasks := m.board.Tasks()
	if len(tasks) != 4 || tasks[3].Name != "Buy milk" {
		t.Errorf("expected new task at the end, got %v", tasks)
	}
	if m.board.Cursor() != 3 {
		t.Errorf("expected cursor on the new task, got %d", m.board.Cursor())
	}
}

func TestValidationErrorShownInStatusBar(t *testing.T) {
	m := newApp(t, testutil.NewFaultyStore(testutil.NewTestStore(t)))

	m = run(t, m, m.addCmd("ab"))
	if !m.statusIsErr || m.status != "Todo must be at least 3 characters!" {
		t.Errorf("unexpected status %q", m.status)
	}
	if len(m.board.Tasks()) != 3 {
		t.Error("expected no task added")
	}

	m = update(t, m, runes("j"))
	if m.status != "" {
		t.Error("expected status cleared by next key")
	}
}

func TestStorageFailureShownInStatusBar(t *testing.T) {
	kv := testutil.NewFaultyStore(testutil.NewTestStore(t))
	m := newApp(t, kv)
	kv.FailWrites(true)

	m = run(t, m, m.removeCmd("a"))
	if !m.statusIsErr || !strings.Contains(m.status, "remove failed") {
		t.Errorf("unexpected status %q", m.status)
	}
	if len(m.board.Tasks()) != 3 {
		t.Error("expected board unchanged")
	}
}

func TestGridKeyTogglesDisplayMode(t *testing.T) {
	m := newApp(t, testutil.NewFaultyStore(testutil.NewTestStore(t)))

	next, cmd := m.Update(runes("g"))
	m = run(t, next.(Model), cmd)
	if !m.board.Grid() || !m.list.Grid() {
		t.Error("expected grid mode on")
	}
}

func TestCommandPalette(t *testing.T) {
	m := newApp(t, testutil.NewFaultyStore(testutil.NewTestStore(t)))

	m = update(t, m, runes(":"))
	if m.currentView != ViewCommand {
		t.Fatalf("expected command view, got %d", m.currentView)
	}

	next, cmd := m.Update(command.CommandMsg("add Walk the dog"))
	m = run(t, next.(Model), cmd)
	if m.currentView != ViewList {
		t.Error("expected to return to the list")
	}
	if got := m.board.Tasks(); got[len(got)-1].Name != "Walk the dog" {
		t.Errorf("expected task added, got %v", got)
	}

	m = update(t, m, command.CommandMsg("theme light"))
	if m.theme.Palette.Name != "light" {
		t.Errorf("expected light theme, got %s", m.theme.Palette.Name)
	}

	m = update(t, m, command.CommandMsg("theme neon"))
	if !m.statusIsErr {
		t.Error("expected unknown theme error")
	}

	m = update(t, m, command.CommandMsg("bogus"))
	if !m.statusIsErr || !strings.Contains(m.status, "unknown command") {
		t.Errorf("unexpected status %q", m.status)
	}
}

func TestThemeKeyCycles(t *testing.T) {
	m := newApp(t, testutil.NewFaultyStore(testutil.NewTestStore(t)))
	m = update(t, m, runes("T"))
	if m.theme.Palette.Name != "dark" {
		t.Errorf("expected dark theme, got %s", m.theme.Palette.Name)
	}
}

func TestHelpToggles(t *testing.T) {
	m := newApp(t, testutil.NewFaultyStore(testutil.NewTestStore(t)))
	m = update(t, m, runes("?"))
	if m.currentView != ViewHelp {
		t.Fatal("expected help view")
	}
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Error("expected help content")
	}
	m = update(t, m, runes("?"))
	if m.currentView != ViewList {
		t.Error("expected help closed")
	}
}

func TestQuitStopsRelay(t *testing.T) {
	m := newApp(t, testutil.NewFaultyStore(testutil.NewTestStore(t)))
	_, cmd := m.Update(runes("q"))
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected quit")
	}
	if msg := m.relay.Wait()(); msg != nil {
		t.Errorf("expected relay stopped, got %#v", msg)
	}
}

func TestChangesFromElsewhereReachBoard(t *testing.T) {
	m := newApp(t, testutil.NewFaultyStore(testutil.NewTestStore(t)))

	if err := m.list.Reorder(context.Background(), "c", "a"); err != nil {
		t.Fatal(err)
	}
	msg, ok := m.relay.Wait()().(appsync.ChangeMsg)
	if !ok {
		t.Fatal("expected ChangeMsg")
	}
	m = update(t, m, msg)
	if got := strings.Join(boardIDs(m), ","); got != "c,a,b" {
		t.Errorf("expected c,a,b, got %s", got)
	}
}
