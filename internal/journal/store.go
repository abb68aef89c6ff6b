package journal

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sakina/gosakina/internal/kv"
)

// StorageKey is the fixed key-value slot holding the serialized journal.
const StorageKey = "journal_entries"

// Store owns the durable entry collection. Writes go through to the
// injected key-value layer synchronously, so a reload by the same process
// always reflects the last Append.
type Store struct {
	mu      sync.RWMutex
	kv      kv.Store
	entries []MoodEntry // insertion order, authoritative for tie-breaks
	ids     map[string]struct{}
	log     zerolog.Logger
}

// NewStore creates a store backed by kvs and loads any persisted entries.
func NewStore(kvs kv.Store, log zerolog.Logger) (*Store, error) {
	s := &Store{
		kv:  kvs,
		ids: make(map[string]struct{}),
		log: log,
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	data, err := s.kv.Get(StorageKey)
	if err != nil {
		return fmt.Errorf("journal: load: %w", err)
	}
	if data == nil {
		return nil
	}
	var entries []MoodEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("journal: decode persisted entries: %w", err)
	}
	s.entries = entries
	for _, e := range entries {
		s.ids[e.ID] = struct{}{}
	}
	s.log.Debug().Int("count", len(entries)).Msg("journal loaded")
	return nil
}

// Append validates entry, makes it visible to all subsequent queries and
// persists the collection before returning. Invariant violations return
// ErrInvalidEntry; there is no partial-failure mode.
func (s *Store) Append(entry MoodEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.ids[entry.ID]; dup {
		return fmt.Errorf("%w: duplicate id %q", ErrInvalidEntry, entry.ID)
	}
	if n := len(s.entries); n > 0 && entry.Timestamp < s.entries[n-1].Timestamp {
		return fmt.Errorf("%w: timestamp %d precedes last entry", ErrInvalidEntry, entry.Timestamp)
	}

	s.entries = append(s.entries, entry)
	s.ids[entry.ID] = struct{}{}

	if err := s.persist(); err != nil {
		// Roll back the in-memory append so memory and disk stay in step.
		s.entries = s.entries[:len(s.entries)-1]
		delete(s.ids, entry.ID)
		return err
	}

	s.log.Debug().Str("id", entry.ID).Int("mood", entry.MoodLevel).Msg("entry saved")
	return nil
}

// persist writes the full collection. Callers hold the write lock.
func (s *Store) persist() error {
	data, err := json.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("journal: encode entries: %w", err)
	}
	if err := s.kv.Set(StorageKey, data); err != nil {
		return fmt.Errorf("journal: persist: %w", err)
	}
	return nil
}

// Query returns the entries matching spec, filtered then sorted. It never
// fails and never mutates the store; an identical spec against an unchanged
// store returns an identical ordered sequence.
func (s *Store) Query(spec QuerySpec) []MoodEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return runQuery(s.entries, spec)
}

// Get returns the entry with the given id, or nil.
func (s *Store) Get(id string) *MoodEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.entries {
		if s.entries[i].ID == id {
			e := s.entries[i]
			return &e
		}
	}
	return nil
}

// Count returns the number of persisted entries.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Clear removes every entry from memory and storage.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = nil
	s.ids = make(map[string]struct{})
	if err := s.kv.Delete(StorageKey); err != nil {
		return fmt.Errorf("journal: clear: %w", err)
	}
	return nil
}
