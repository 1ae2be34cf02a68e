package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/99designs/keyring"
)

const serviceName = "dragtodo"

// KeyringStore implements Store on top of the system keyring. Each key is
// one keyring item; the write time is kept in the item description.
type KeyringStore struct {
	ring keyring.Keyring
}

// OpenKeyring returns a keyring using the OS-native backends, falling
// back to encrypted files under dir.
func OpenKeyring(dir string) (keyring.Keyring, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.KeychainBackend,
			keyring.SecretServiceBackend,
			keyring.WinCredBackend,
			keyring.PassBackend,
			keyring.FileBackend,
		},
		FileDir:                  dir,
		FilePasswordFunc:         keyring.FixedStringPrompt("dragtodo-file-key"),
		KeychainTrustApplication: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// NewKeyringStore wraps an already opened keyring.
func NewKeyringStore(ring keyring.Keyring) *KeyringStore {
	return &KeyringStore{ring: ring}
}

// Get retrieves the entry stored under key.
func (s *KeyringStore) Get(_ context.Context, key string) (Entry, error) {
	item, err := s.ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("getting %q: %w", key, err)
	}

	e := Entry{Key: key, Value: string(item.Data)}
	if ts, err := time.Parse(time.RFC3339Nano, item.Description); err == nil {
		e.UpdatedAt = ts
	}
	return e, nil
}

// Set stores value under key.
func (s *KeyringStore) Set(_ context.Context, key, value string) error {
	err := s.ring.Set(keyring.Item{
		Key:         key,
		Data:        []byte(value),
		Label:       serviceName + " " + key,
		Description: time.Now().UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return fmt.Errorf("setting %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Missing keys are ignored.
func (s *KeyringStore) Delete(_ context.Context, key string) error {
	err := s.ring.Remove(key)
	if err != nil && !errors.Is(err, keyring.ErrKeyNotFound) && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("deleting %q: %w", key, err)
	}
	return nil
}

// Keys lists stored keys in ascending order.
func (s *KeyringStore) Keys(_ context.Context) ([]string, error) {
	keys, err := s.ring.Keys()
	if err != nil {
		return nil, fmt.Errorf("listing keys: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close is a no-op; keyrings hold no open handles.
func (s *KeyringStore) Close() error {
	return nil
}
