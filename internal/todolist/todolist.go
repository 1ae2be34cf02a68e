// Package todolist holds the ordered task list, mirrors every change to
// durable storage and notifies observers after each successful change.
package todolist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/nhle/dragtodo/internal/model"
	"github.com/nhle/dragtodo/internal/store"
)

// ErrNameTooShort is wrapped by the ValidationError returned from Add.
var ErrNameTooShort = errors.New("task name too short")

// ErrTaskNotFound is returned by Reorder when either id is not in the list.
var ErrTaskNotFound = errors.New("task not found")

// ValidationError reports input rejected before any state change. Message
// is meant to be shown to the user as is.
type ValidationError struct {
	Message string
	Err     error
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return e.Err }

// Options configures Open.
type Options struct {
	// Seed is used when storage holds no task list yet.
	Seed []model.Task

	// NewID generates task ids. Defaults to uuid.NewString.
	NewID func() string

	// Logger receives lookup misses and recovered storage problems.
	// Defaults to a discarding logger.
	Logger *log.Logger
}

// Store is the task list. Create it with Open.
type Store struct {
	kv    store.Store
	newID func() string
	log   *log.Logger

	mu      sync.Mutex
	tasks   []model.Task
	grid    bool
	savedAt time.Time
	seq     uint64

	hookMu sync.Mutex
	hooks  []Hook
}

// ValidateName checks a task name the way Add does. Surrounding
// whitespace does not count towards the length.
func ValidateName(name string) error {
	if utf8.RuneCountInString(strings.TrimSpace(name)) < model.MinNameLength {
		return &ValidationError{
			Message: fmt.Sprintf("Todo must be at least %d characters!", model.MinNameLength),
			Err:     ErrNameTooShort,
		}
	}
	return nil
}

// Open loads the task list and display mode from kv. Missing or
// unparsable values fall back to opts.Seed and list mode; only a
// cancelled context is reported as an error.
func Open(ctx context.Context, kv store.Store, opts Options) (*Store, error) {
	s := &Store{
		kv:    kv,
		newID: opts.NewID,
		log:   opts.Logger,
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	if s.log == nil {
		s.log = log.New(io.Discard, "", 0)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.tasks = s.loadTasks(ctx, opts.Seed)
	s.grid = s.loadGrid(ctx)

	return s, nil
}

func (s *Store) loadTasks(ctx context.Context, seed []model.Task) []model.Task {
	fallback := model.CloneTasks(seed)

	e, err := s.kv.Get(ctx, store.KeyTodos)
	if errors.Is(err, store.ErrNotFound) {
		return fallback
	}
	if err != nil {
		s.log.Printf("reading %s, using seed list: %v", store.KeyTodos, err)
		return fallback
	}

	var tasks []model.Task
	if err := json.Unmarshal([]byte(e.Value), &tasks); err != nil {
		s.log.Printf("parsing %s, using seed list: %v", store.KeyTodos, err)
		return fallback
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	if dup := firstDuplicateID(tasks); dup != "" {
		s.log.Printf("stored %s has duplicate id %q, using seed list", store.KeyTodos, dup)
		return fallback
	}

	s.savedAt = e.UpdatedAt
	return tasks
}

func (s *Store) loadGrid(ctx context.Context) bool {
	e, err := s.kv.Get(ctx, store.KeyToggleGrid)
	if errors.Is(err, store.ErrNotFound) {
		return false
	}
	if err != nil {
		s.log.Printf("reading %s: %v", store.KeyToggleGrid, err)
		return false
	}

	var grid bool
	if err := json.Unmarshal([]byte(e.Value), &grid); err != nil {
		s.log.Printf("parsing %s: %v", store.KeyToggleGrid, err)
		return false
	}
	return grid
}

func firstDuplicateID(tasks []model.Task) string {
	seen := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			return t.ID
		}
		seen[t.ID] = true
	}
	return ""
}

// Tasks returns a copy of the current ordered list.
func (s *Store) Tasks() []model.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneTasks(s.tasks)
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (model.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := model.IndexOf(s.tasks, id); i >= 0 {
		return s.tasks[i], true
	}
	return model.Task{}, false
}

// Grid reports whether the grid display mode is on.
func (s *Store) Grid() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid
}

// SavedAt is the time of the last successful task list write, as recorded
// by storage. Zero when nothing has been written yet.
func (s *Store) SavedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.savedAt
}

// Add appends a new open task. Names shorter than model.MinNameLength
// after trimming are rejected with a *ValidationError.
func (s *Store) Add(ctx context.Context, name string) (model.Task, error) {
	name = strings.TrimSpace(name)
	if err := ValidateName(name); err != nil {
		return model.Task{}, err
	}

	s.mu.Lock()
	id := s.newID()
	for model.IndexOf(s.tasks, id) >= 0 {
		id = s.newID()
	}
	task := model.Task{ID: id, Name: name}

	next := make([]model.Task, len(s.tasks), len(s.tasks)+1)
	copy(next, s.tasks)
	next = append(next, task)

	if err := s.commitLocked(ctx, next); err != nil {
		s.mu.Unlock()
		return model.Task{}, err
	}
	seq := s.seq
	s.mu.Unlock()

	s.notify(Event{Seq: seq, Kind: EventAdded, TaskID: task.ID, Tasks: next})
	return task, nil
}

// Remove deletes the task with the given id. Unknown ids are ignored.
func (s *Store) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	i := model.IndexOf(s.tasks, id)
	if i < 0 {
		s.mu.Unlock()
		s.log.Printf("remove: no task %q", id)
		return nil
	}

	next := make([]model.Task, 0, len(s.tasks)-1)
	next = append(next, s.tasks[:i]...)
	next = append(next, s.tasks[i+1:]...)

	if err := s.commitLocked(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	seq := s.seq
	s.mu.Unlock()

	s.notify(Event{Seq: seq, Kind: EventRemoved, TaskID: id, Tasks: next})
	return nil
}

// ToggleCompleted flips the completed flag of one task. Unknown ids are
// ignored.
func (s *Store) ToggleCompleted(ctx context.Context, id string) error {
	s.mu.Lock()
	i := model.IndexOf(s.tasks, id)
	if i < 0 {
		s.mu.Unlock()
		s.log.Printf("toggle: no task %q", id)
		return nil
	}

	next := model.CloneTasks(s.tasks)
	next[i].Completed = !next[i].Completed

	if err := s.commitLocked(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	seq := s.seq
	s.mu.Unlock()

	s.notify(Event{Seq: seq, Kind: EventToggled, TaskID: id, Tasks: next})
	return nil
}

// Reorder moves movedID to the index targetID occupied, shifting the
// tasks in between by one. Equal ids are a no-op; an unknown id leaves the
// list untouched and returns ErrTaskNotFound.
func (s *Store) Reorder(ctx context.Context, movedID, targetID string) error {
	if movedID == targetID {
		return nil
	}

	s.mu.Lock()
	from := model.IndexOf(s.tasks, movedID)
	to := model.IndexOf(s.tasks, targetID)
	if from < 0 || to < 0 {
		s.mu.Unlock()
		missing := movedID
		if from >= 0 {
			missing = targetID
		}
		s.log.Printf("reorder: no task %q", missing)
		return fmt.Errorf("reordering %q onto %q: %w: %q", movedID, targetID, ErrTaskNotFound, missing)
	}

	next := Move(s.tasks, from, to)

	if err := s.commitLocked(ctx, next); err != nil {
		s.mu.Unlock()
		return err
	}
	seq := s.seq
	s.mu.Unlock()

	s.notify(Event{Seq: seq, Kind: EventReordered, TaskID: movedID, Tasks: next})
	return nil
}

// Move returns a copy of tasks with the element at from removed and
// reinserted at to.
func Move(tasks []model.Task, from, to int) []model.Task {
	next := make([]model.Task, 0, len(tasks))
	next = append(next, tasks[:from]...)
	next = append(next, tasks[from+1:]...)

	moved := tasks[from]
	next = append(next, model.Task{})
	copy(next[to+1:], next[to:])
	next[to] = moved
	return next
}

// SetDisplayMode stores the grid flag. It is independent of the task list.
func (s *Store) SetDisplayMode(ctx context.Context, grid bool) error {
	s.mu.Lock()
	ev, err := s.setGridLocked(ctx, grid)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	s.notify(ev)
	return nil
}

// ToggleDisplayMode flips the grid flag and returns the new value.
func (s *Store) ToggleDisplayMode(ctx context.Context) (bool, error) {
	s.mu.Lock()
	grid := !s.grid
	ev, err := s.setGridLocked(ctx, grid)
	s.mu.Unlock()
	if err != nil {
		return !grid, err
	}

	s.notify(ev)
	return grid, nil
}

// setGridLocked persists the grid flag and returns the event describing
// the change. s.mu must be held.
func (s *Store) setGridLocked(ctx context.Context, grid bool) (Event, error) {
	if err := s.kv.Set(ctx, store.KeyToggleGrid, encodeBool(grid)); err != nil {
		return Event{}, fmt.Errorf("saving display mode: %w", err)
	}
	s.grid = grid
	s.seq++
	return Event{
		Seq:   s.seq,
		Kind:  EventDisplayMode,
		Grid:  grid,
		Tasks: model.CloneTasks(s.tasks),
	}, nil
}

// commitLocked persists next and, on success, makes it the current list.
// s.mu must be held.
func (s *Store) commitLocked(ctx context.Context, next []model.Task) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("encoding task list: %w", err)
	}
	if err := s.kv.Set(ctx, store.KeyTodos, string(data)); err != nil {
		return fmt.Errorf("saving task list: %w", err)
	}
	s.tasks = next
	s.savedAt = time.Now()
	s.seq++
	return nil
}

func encodeBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
