package todolist

import "context"

// DropEvent is a finished drag gesture: the dragged task was released
// over the target task.
type DropEvent struct {
	MovedID  string
	TargetID string
}

// DragReorderSource turns a pointer or keyboard gesture into a drop.
// Release reports the pending drop, if any, and consumes it.
type DragReorderSource interface {
	Release() (DropEvent, bool)
}

// Drop applies the pending drop from src as a Reorder. It reports whether
// src had a drop to apply.
func (s *Store) Drop(ctx context.Context, src DragReorderSource) (bool, error) {
	ev, ok := src.Release()
	if !ok {
		return false, nil
	}
	return true, s.Reorder(ctx, ev.MovedID, ev.TargetID)
}
