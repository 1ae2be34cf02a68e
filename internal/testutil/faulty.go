package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/nhle/dragtodo/internal/store"
)

// ErrInjected is returned by FaultyStore writes once failing is switched on.
var ErrInjected = errors.New("injected storage failure")

// FaultyStore wraps a Store and can be told to fail writes.
type FaultyStore struct {
	store.Store

	mu      sync.Mutex
	failing bool
	writes  int
}

// NewFaultyStore wraps inner.
func NewFaultyStore(inner store.Store) *FaultyStore {
	return &FaultyStore{Store: inner}
}

// FailWrites switches write failures on or off.
func (f *FaultyStore) FailWrites(on bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failing = on
}

// Writes returns the number of successful Set calls.
func (f *FaultyStore) Writes() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.writes
}

// Set fails with ErrInjected while failing is on.
func (f *FaultyStore) Set(ctx context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing {
		return ErrInjected
	}
	if err := f.Store.Set(ctx, key, value); err != nil {
		return err
	}
	f.writes++
	return nil
}
