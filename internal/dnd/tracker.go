// Package dnd tracks a drag gesture over the task list, independent of
// whether it comes from a mouse or the keyboard.
package dnd

import "github.com/nhle/dragtodo/internal/todolist"

// Tracker is a single-gesture state machine: Pick starts a drag, Over
// moves the hover target, Finish ends it. The finished drop is handed out
// once by Release.
type Tracker struct {
	picked  string
	hovered string
	active  bool

	pending    todolist.DropEvent
	hasPending bool
}

// New returns an idle tracker.
func New() *Tracker {
	return &Tracker{}
}

// Pick starts dragging the task with id. Any unreleased drop is discarded.
func (t *Tracker) Pick(id string) {
	t.picked = id
	t.hovered = id
	t.active = id != ""
	t.hasPending = false
}

// Over sets the task currently under the dragged one.
func (t *Tracker) Over(id string) {
	if !t.active {
		return
	}
	t.hovered = id
}

// Finish ends the drag. It reports whether a drop is now pending; dropping
// back onto the picked task or onto nothing yields no drop.
func (t *Tracker) Finish() bool {
	if !t.active {
		return false
	}
	moved, target := t.picked, t.hovered
	t.reset()

	if target == "" || target == moved {
		return false
	}
	t.pending = todolist.DropEvent{MovedID: moved, TargetID: target}
	t.hasPending = true
	return true
}

// Cancel abandons the drag without a drop.
func (t *Tracker) Cancel() {
	t.reset()
	t.hasPending = false
}

// Release hands out the pending drop and clears it.
func (t *Tracker) Release() (todolist.DropEvent, bool) {
	if !t.hasPending {
		return todolist.DropEvent{}, false
	}
	ev := t.pending
	t.pending = todolist.DropEvent{}
	t.hasPending = false
	return ev, true
}

// Handoff moves the pending drop into a new tracker, leaving t with
// nothing to release. The new tracker can be applied off the UI goroutine
// while t starts the next gesture.
func (t *Tracker) Handoff() *Tracker {
	h := &Tracker{pending: t.pending, hasPending: t.hasPending}
	t.pending = todolist.DropEvent{}
	t.hasPending = false
	return h
}

// Active reports whether a drag is in progress.
func (t *Tracker) Active() bool { return t.active }

// Picked returns the dragged task id, or "".
func (t *Tracker) Picked() string { return t.picked }

// Hovered returns the current drop target id, or "".
func (t *Tracker) Hovered() string { return t.hovered }

func (t *Tracker) reset() {
	t.picked = ""
	t.hovered = ""
	t.active = false
}

var _ todolist.DragReorderSource = (*Tracker)(nil)
