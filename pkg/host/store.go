// Package host runs components against a key-value store with all-or-nothing calls.
package host

import (
	"maps"
	"sync"

	"github.com/go-park/pausable/pkg/pausable"
)

// Store is a pausable.Storage that can apply a batch of changes atomically.
type Store interface {
	pausable.Storage
	// Atomic runs fn against a view of the store. Changes become visible only if fn
	// returns nil.
	Atomic(fn func(s pausable.Storage) error) error
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*GormStore)(nil)
)

type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string][]byte{}}
}

func (m *MemoryStore) StorageRead(key []byte) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[string(key)]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *MemoryStore) StorageWrite(key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[string(key)] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryStore) StorageRemove(key []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, string(key))
	return nil
}

// Len is the number of stored entries.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

func (m *MemoryStore) Atomic(fn func(s pausable.Storage) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	tx := &MemoryStore{data: maps.Clone(m.data)}
	if err := fn(tx); err != nil {
		return err
	}
	m.data = tx.data
	return nil
}
