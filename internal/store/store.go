package store

import (
	"context"
	"errors"
	"time"
)

// Well-known storage keys. Their values are JSON text.
const (
	// KeyTodos holds the ordered task list as a JSON array.
	KeyTodos = "todos"

	// KeyToggleGrid holds the display mode flag as a JSON boolean.
	KeyToggleGrid = "toggleGrid"
)

// ErrNotFound is returned by Get when the key has never been written or
// has been deleted.
var ErrNotFound = errors.New("key not found")

// Entry is a single stored value.
type Entry struct {
	Key       string    `db:"name"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Store is durable string-keyed storage. Values survive process restarts.
type Store interface {
	// Get returns the entry for key, or ErrNotFound.
	Get(ctx context.Context, key string) (Entry, error)

	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists stored keys in ascending order.
	Keys(ctx context.Context) ([]string, error)

	// Close releases the underlying resources.
	Close() error
}
