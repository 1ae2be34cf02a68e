package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/nhle/dragtodo/internal/model"
	"github.com/nhle/dragtodo/internal/store"
	"github.com/nhle/dragtodo/internal/testutil"
)

func backends(t *testing.T) map[string]store.Store {
	t.Helper()
	return map[string]store.Store{
		"sqlite":  testutil.NewTestStore(t),
		"keyring": testutil.NewTestKeyringStore(t),
	}
}

func TestStoreGetMissing(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(context.Background(), store.KeyTodos)
			if !errors.Is(err, store.ErrNotFound) {
				t.Fatalf("expected ErrNotFound, got %v", err)
			}
		})
	}
}

func TestStoreSetGetOverwrite(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			if err := s.Set(ctx, store.KeyToggleGrid, "false"); err != nil {
				t.Fatalf("set: %v", err)
			}
			if err := s.Set(ctx, store.KeyToggleGrid, "true"); err != nil {
				t.Fatalf("overwrite: %v", err)
			}

			e, err := s.Get(ctx, store.KeyToggleGrid)
			if err != nil {
				t.Fatalf("get: %v", err)
			}
			if e.Key != store.KeyToggleGrid || e.Value != "true" {
				t.Errorf("unexpected entry %+v", e)
			}
			if e.UpdatedAt.IsZero() {
				t.Error("expected UpdatedAt to be set")
			}
		})
	}
}

func TestStoreDeleteAndKeys(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			for _, k := range []string{store.KeyTodos, store.KeyToggleGrid} {
				if err := s.Set(ctx, k, "[]"); err != nil {
					t.Fatalf("set %s: %v", k, err)
				}
			}

			keys, err := s.Keys(ctx)
			if err != nil {
				t.Fatalf("keys: %v", err)
			}
			if len(keys) != 2 || keys[0] != store.KeyTodos || keys[1] != store.KeyToggleGrid {
				t.Errorf("unexpected keys %v", keys)
			}

			if err := s.Delete(ctx, store.KeyTodos); err != nil {
				t.Fatalf("delete: %v", err)
			}
			if err := s.Delete(ctx, store.KeyTodos); err != nil {
				t.Fatalf("deleting a missing key: %v", err)
			}
			if _, err := s.Get(ctx, store.KeyTodos); !errors.Is(err, store.ErrNotFound) {
				t.Errorf("expected ErrNotFound after delete, got %v", err)
			}
		})
	}
}

func TestSQLiteStoreMigrations(t *testing.T) {
	s := testutil.NewTestStore(t)

	v, err := s.SchemaVersion(context.Background())
	if err != nil {
		t.Fatalf("schema version: %v", err)
	}
	if v != 2 {
		t.Errorf("expected schema version 2, got %d", v)
	}
}

func TestSQLiteStoreReopenKeepsData(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "todos.db")

	s, err := store.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Set(ctx, store.KeyTodos, `[{"id":"1","name":"Buy milk","completed":false}]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	s, err = store.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s.Close()

	e, err := s.Get(ctx, store.KeyTodos)
	if err != nil {
		t.Fatalf("get after reopen: %v", err)
	}
	if e.Value != `[{"id":"1","name":"Buy milk","completed":false}]` {
		t.Errorf("unexpected value %q", e.Value)
	}
	if v, _ := s.SchemaVersion(ctx); v != 2 {
		t.Errorf("migrations re-applied or missing: version %d", v)
	}
}

func TestOpenUnknownBackend(t *testing.T) {
	_, err := store.Open(model.StorageConfig{Backend: "etcd"})
	if err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestOpenSQLite(t *testing.T) {
	s, err := store.Open(model.StorageConfig{
		Backend: model.BackendSQLite,
		Path:    filepath.Join(t.TempDir(), "todos.db"),
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	if _, ok := s.(*store.SQLiteStore); !ok {
		t.Errorf("expected *SQLiteStore, got %T", s)
	}
}
