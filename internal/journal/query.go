package journal

import (
	"sort"
	"strings"
)

// SortKey orders query results. Values match the wire encoding used by the
// web layer.
type SortKey string

const (
	SortLatest   SortKey = "LATEST"    // timestamp descending
	SortOldest   SortKey = "OLDEST"    // timestamp ascending
	SortMoodHigh SortKey = "MOOD_HIGH" // moodLevel descending
	SortMoodLow  SortKey = "MOOD_LOW"  // moodLevel ascending
)

// MoodFilter partitions entries by anxiety level.
type MoodFilter string

const (
	MoodAll  MoodFilter = "ALL"
	MoodHigh MoodFilter = "HIGH" // moodLevel >= 7
	MoodLow  MoodFilter = "LOW"  // moodLevel <= 4
)

// QuerySpec describes one derived view of the journal. Filters compose
// conjunctively; the sort applies after filtering. Zero values mean
// "no text filter", "no trap filter", MoodAll and SortLatest.
type QuerySpec struct {
	SearchText string         `json:"searchText,omitempty"`
	Traps      []ThinkingTrap `json:"traps,omitempty"`
	Mood       MoodFilter     `json:"mood,omitempty"`
	Sort       SortKey        `json:"sort,omitempty"`
}

// runQuery filters and sorts entries without mutating the input slice.
// entries must be in insertion order; equal sort keys keep that order
// (sort.SliceStable, since comparator sorts are not stable by default).
func runQuery(entries []MoodEntry, spec QuerySpec) []MoodEntry {
	search := strings.ToLower(spec.SearchText)

	result := make([]MoodEntry, 0, len(entries))
	for _, e := range entries {
		if search != "" &&
			!strings.Contains(strings.ToLower(e.OriginalThought), search) &&
			!strings.Contains(strings.ToLower(e.Reframe), search) {
			continue
		}
		// Trap filter is OR across the selected set.
		if len(spec.Traps) > 0 && !e.HasAnyTrap(spec.Traps) {
			continue
		}
		switch spec.Mood {
		case MoodHigh:
			if e.MoodLevel < 7 {
				continue
			}
		case MoodLow:
			if e.MoodLevel > 4 {
				continue
			}
		}
		result = append(result, e)
	}

	switch spec.Sort {
	case SortOldest:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Timestamp < result[j].Timestamp })
	case SortMoodHigh:
		sort.SliceStable(result, func(i, j int) bool { return result[i].MoodLevel > result[j].MoodLevel })
	case SortMoodLow:
		sort.SliceStable(result, func(i, j int) bool { return result[i].MoodLevel < result[j].MoodLevel })
	default: // SortLatest
		sort.SliceStable(result, func(i, j int) bool { return result[i].Timestamp > result[j].Timestamp })
	}

	return result
}
