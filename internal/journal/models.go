// Package journal provides the mood-journal store and query engine for
// GoSakina. Entries are append-only and persisted write-through as a JSON
// array under a fixed key in the key-value layer.
package journal

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ThinkingTrap names a cognitive-distortion pattern attachable to an entry.
// Values are the user-facing Arabic labels; they double as the wire encoding.
type ThinkingTrap string

const (
	TrapFortuneTelling     ThinkingTrap = "قراءة الغيب"
	TrapCatastrophizing    ThinkingTrap = "التهويل"
	TrapPersonalization    ThinkingTrap = "الشخصنة"
	TrapBlackAndWhite      ThinkingTrap = "التفكير الأبيض والأسود"
	TrapMindReading        ThinkingTrap = "قراءة الأفكار"
	TrapEmotionalReasoning ThinkingTrap = "التفكير العاطفي"
)

// MoodEntry is one journal record. Entries are immutable once saved.
type MoodEntry struct {
	ID              string         `json:"id"`
	Timestamp       int64          `json:"timestamp"` // unix millis at save time
	MoodLevel       int            `json:"moodLevel"` // 1 = calm, 10 = acute anxiety
	Traps           []ThinkingTrap `json:"traps"`
	OriginalThought string         `json:"originalThought"`
	Reframe         string         `json:"reframe"`
}

// ErrInvalidEntry is returned by Append when an entry violates the data
// model invariants. It signals a caller bug, never a transient condition.
var ErrInvalidEntry = errors.New("journal: invalid entry")

// New builds a MoodEntry ready for Append, assigning a fresh ID and the
// current timestamp.
func New(moodLevel int, traps []ThinkingTrap, thought, reframe string) MoodEntry {
	return MoodEntry{
		ID:              uuid.NewString(),
		Timestamp:       time.Now().UnixMilli(),
		MoodLevel:       moodLevel,
		Traps:           traps,
		OriginalThought: thought,
		Reframe:         reframe,
	}
}

// Validate checks the entry-local invariants. ID uniqueness and timestamp
// ordering are checked by the store at Append time.
func (e MoodEntry) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidEntry)
	}
	if e.MoodLevel < 1 || e.MoodLevel > 10 {
		return fmt.Errorf("%w: moodLevel %d out of range [1,10]", ErrInvalidEntry, e.MoodLevel)
	}
	if e.OriginalThought == "" {
		return fmt.Errorf("%w: empty originalThought", ErrInvalidEntry)
	}
	if e.Reframe == "" {
		return fmt.Errorf("%w: empty reframe", ErrInvalidEntry)
	}
	return nil
}

// HasAnyTrap reports whether the entry carries at least one of the given
// tags. An empty set never matches.
func (e MoodEntry) HasAnyTrap(traps []ThinkingTrap) bool {
	for _, want := range traps {
		for _, have := range e.Traps {
			if have == want {
				return true
			}
		}
	}
	return false
}
