package kv

import (
	"errors"
	"fmt"
	"path"
	"strings"
	"sync"

	"github.com/hack-pad/hackpadfs"
)

// FSStore persists one file per key on a hackpadfs filesystem.
// In the browser this sits on an IndexedDB FS; tests use the mem FS.
type FSStore struct {
	mu  sync.RWMutex
	fs  hackpadfs.FS
	dir string
}

// NewFSStore creates a store rooted at dir, creating it if needed.
func NewFSStore(fs hackpadfs.FS, dir string) (*FSStore, error) {
	if err := hackpadfs.MkdirAll(fs, dir, 0755); err != nil && !errors.Is(err, hackpadfs.ErrExist) {
		return nil, fmt.Errorf("kv: create dir %q: %w", dir, err)
	}
	return &FSStore{fs: fs, dir: dir}, nil
}

// Close is a no-op; the underlying FS is owned by the caller.
func (s *FSStore) Close() error {
	return nil
}

func (s *FSStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := hackpadfs.ReadFile(s.fs, path.Join(s.dir, key))
	if errors.Is(err, hackpadfs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("kv: read %q: %w", key, err)
	}
	return data, nil
}

func (s *FSStore) Set(key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := hackpadfs.WriteFullFile(s.fs, path.Join(s.dir, key), value, 0644); err != nil {
		return fmt.Errorf("kv: write %q: %w", key, err)
	}
	return nil
}

func (s *FSStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := hackpadfs.Remove(s.fs, path.Join(s.dir, key))
	if err != nil && !errors.Is(err, hackpadfs.ErrNotExist) {
		return fmt.Errorf("kv: delete %q: %w", key, err)
	}
	return nil
}

func (s *FSStore) Keys(prefix string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := hackpadfs.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, fmt.Errorf("kv: list %q: %w", s.dir, err)
	}

	var keys []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasPrefix(e.Name(), prefix) {
			keys = append(keys, e.Name())
		}
	}
	return keys, nil
}

// Compile-time interface check
var _ Store = (*FSStore)(nil)
