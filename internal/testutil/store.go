package testutil

import (
	"testing"

	"github.com/99designs/keyring"

	"github.com/nhle/dragtodo/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// NewTestKeyringStore creates a KeyringStore over an in-memory keyring.
func NewTestKeyringStore(t *testing.T) *store.KeyringStore {
	t.Helper()
	return store.NewKeyringStore(keyring.NewArrayKeyring(nil))
}
