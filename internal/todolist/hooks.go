package todolist

import "github.com/nhle/dragtodo/internal/model"

// EventKind identifies the mutation that produced an Event.
type EventKind int

const (
	EventAdded EventKind = iota
	EventRemoved
	EventToggled
	EventReordered
	EventDisplayMode
)

func (k EventKind) String() string {
	switch k {
	case EventAdded:
		return "added"
	case EventRemoved:
		return "removed"
	case EventToggled:
		return "toggled"
	case EventReordered:
		return "reordered"
	case EventDisplayMode:
		return "display-mode"
	default:
		return "unknown"
	}
}

// Event describes a change that has already been persisted.
type Event struct {
	// Seq numbers changes in commit order, starting at 1. Hooks run
	// outside the store lock, so two events can arrive swapped; observers
	// that keep state should ignore an event older than one already seen.
	Seq uint64

	Kind EventKind

	// TaskID is the added, removed, toggled or moved task. Empty for
	// display mode changes.
	TaskID string

	// Grid is the new display mode for EventDisplayMode.
	Grid bool

	// Tasks is a copy of the list after the change.
	Tasks []model.Task
}

// Hook observes changes. Hooks cannot alter the store's state and are not
// needed for correctness; animations hang off them.
type Hook func(Event)

// OnChange registers h to run after every successful mutation.
func (s *Store) OnChange(h Hook) {
	s.hookMu.Lock()
	defer s.hookMu.Unlock()
	s.hooks = append(s.hooks, h)
}

func (s *Store) notify(ev Event) {
	s.hookMu.Lock()
	hooks := append([]Hook(nil), s.hooks...)
	s.hookMu.Unlock()

	for _, h := range hooks {
		e := ev
		e.Tasks = model.CloneTasks(ev.Tasks)
		s.runHook(h, e)
	}
}

func (s *Store) runHook(h Hook, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Printf("hook panicked on %s event: %v", ev.Kind, r)
		}
	}()
	h(ev)
}
