// Package kv provides the key-value persistence layer for GoSakina.
// The browser build backs it with an IndexedDB filesystem; tests use the
// in-memory implementations.
package kv

import "errors"

// ErrStoreFull signals that the backing storage rejected a write for
// capacity reasons. Callers decide the eviction policy.
var ErrStoreFull = errors.New("kv: store full")

// Store defines the interface for key-value persistence.
// Keys must be path-safe strings; values are opaque bytes.
type Store interface {
	// Get returns the value for key, or nil if the key is absent.
	Get(key string) ([]byte, error)

	// Set writes value under key, overwriting any previous value.
	Set(key string, value []byte) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(key string) error

	// Keys returns all stored keys with the given prefix.
	// An empty prefix returns every key.
	Keys(prefix string) ([]string, error)

	// Lifecycle
	Close() error
}
