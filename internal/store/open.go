package store

import (
	"fmt"

	"github.com/nhle/dragtodo/internal/model"
)

// Open returns the backend selected by cfg.
func Open(cfg model.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case model.BackendSQLite, "":
		return NewSQLiteStore(cfg.Path)
	case model.BackendKeyring:
		ring, err := OpenKeyring(cfg.KeyringDir)
		if err != nil {
			return nil, err
		}
		return NewKeyringStore(ring), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
