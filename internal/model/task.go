package model

// MinNameLength is the shortest task name, in runes, accepted after trimming.
const MinNameLength = 3

// Task is a single to-do entry. The JSON layout is the persisted format
// and must not change.
type Task struct {
	// ID is the opaque unique identifier, stable for the task's lifetime.
	ID string `json:"id"`

	// Name is the display text. It cannot be edited after creation.
	Name string `json:"name"`

	// Completed marks the task as done.
	Completed bool `json:"completed"`
}

// IndexOf returns the position of the task with the given id, or -1.
func IndexOf(tasks []Task, id string) int {
	for i, t := range tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// CloneTasks returns a copy of tasks that shares no backing array.
func CloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}
