package kv

import (
	"strings"
	"sync"
)

// MemStore is an in-memory implementation of Store for testing.
// An optional byte capacity makes it emulate a quota-limited backend
// such as localStorage or IndexedDB.
type MemStore struct {
	mu       sync.RWMutex
	values   map[string][]byte
	capacity int // max total value bytes, 0 = unlimited
	used     int
}

// NewMemStore creates a new unlimited in-memory store.
func NewMemStore() *MemStore {
	return NewMemStoreWithCapacity(0)
}

// NewMemStoreWithCapacity creates an in-memory store that rejects writes
// with ErrStoreFull once total value bytes would exceed capacity.
func NewMemStoreWithCapacity(capacity int) *MemStore {
	return &MemStore{
		values:   make(map[string][]byte),
		capacity: capacity,
	}
}

// Close is a no-op for MemStore.
func (s *MemStore) Close() error {
	return nil
}

func (s *MemStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return nil, nil
	}
	// Copy to avoid mutation issues
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (s *MemStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.used - len(s.values[key]) + len(value)
	if s.capacity > 0 && next > s.capacity {
		return ErrStoreFull
	}

	v := make([]byte, len(value))
	copy(v, value)
	s.used = next
	s.values[key] = v
	return nil
}

func (s *MemStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.used -= len(s.values[key])
	delete(s.values, key)
	return nil
}

func (s *MemStore) Keys(prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

// Compile-time interface check
var _ Store = (*MemStore)(nil)
