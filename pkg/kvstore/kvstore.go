// Package kvstore provides the durable key-value storage used to mirror
// session state (cart contents, auth tokens) across client invocations.
//
// Consistency is deliberately weak: concurrent writers follow last-write-wins
// with no merge. The store mirrors state for a single visitor's session and is
// not a system of record.
package kvstore

import (
	"context"
	"sync"

	"github.com/go-faster/errors"
)

// ErrNotFound is returned by Get when the key has no stored value.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is a minimal durable key-value store.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the value under key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}

// Memory is an in-process Store used in tests and ephemeral sessions.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(value))
	copy(cp, value)
	m.data[key] = cp
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
