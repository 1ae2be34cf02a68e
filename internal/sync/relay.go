// Package sync carries task list changes from store hooks, which run on
// whatever goroutine made the change, into the Bubble Tea update loop.
package sync

import (
	gosync "sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/dragtodo/internal/todolist"
)

// ChangeMsg is a tea.Msg carrying one persisted change.
type ChangeMsg struct {
	Event todolist.Event
}

// Relay buffers change events until the UI asks for the next one.
type Relay struct {
	eventCh chan todolist.Event
	stopCh  chan struct{}
	mu      gosync.Mutex
	stopped bool
	dropped int
}

// New creates a Relay holding up to buffer undelivered events.
func New(buffer int) *Relay {
	if buffer < 1 {
		buffer = 1
	}
	return &Relay{
		eventCh: make(chan todolist.Event, buffer),
		stopCh:  make(chan struct{}),
	}
}

// Attach registers the relay as a hook on s.
func (r *Relay) Attach(s *todolist.Store) {
	s.OnChange(r.Publish)
}

// Publish queues ev without blocking. When the buffer is full the oldest
// event is discarded; every event carries the whole list, so the newest
// one is enough to catch up.
func (r *Relay) Publish(ev todolist.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return
	}
	for {
		select {
		case r.eventCh <- ev:
			return
		default:
		}
		select {
		case <-r.eventCh:
			r.dropped++
		default:
		}
	}
}

// Dropped returns how many events were discarded because the UI lagged.
func (r *Relay) Dropped() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}

// Wait returns a tea.Cmd that blocks until the next event. Call it again
// after handling each ChangeMsg to keep listening.
func (r *Relay) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case ev := <-r.eventCh:
			return ChangeMsg{Event: ev}
		case <-r.stopCh:
			return nil
		}
	}
}

// Stop releases any pending Wait. Later events are ignored.
func (r *Relay) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return
	}
	close(r.stopCh)
	r.stopped = true
}
