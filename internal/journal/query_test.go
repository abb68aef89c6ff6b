package journal

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakina/gosakina/internal/kv"
)

// seedStore loads the fixture used across query tests:
// moods [3, 8, 8, 1] at timestamps t1 < t2 < t3 < t4.
func seedStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(kv.NewMemStore(), zerolog.Nop())
	require.NoError(t, err)

	fixtures := []MoodEntry{
		entry("e1", 100, 3, "القيادة تخيفني", "القيادة مهارة تتحسن بالتدريب", TrapFortuneTelling),
		entry("e2", 200, 8, "الجميع يظن أنني ضعيف", "لا أستطيع قراءة أفكار الآخرين", TrapMindReading, TrapPersonalization),
		entry("e3", 300, 8, "سيحدث أمر كارثي", "معظم مخاوفي لم تتحقق من قبل", TrapCatastrophizing),
		entry("e4", 400, 1, "يوم هادئ", "أستحق لحظات السكينة هذه"),
	}
	for _, e := range fixtures {
		require.NoError(t, s.Append(e))
	}
	return s
}

func ids(entries []MoodEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func TestQueryDefaultsToLatest(t *testing.T) {
	s := seedStore(t)
	assert.Equal(t, []string{"e4", "e3", "e2", "e1"}, ids(s.Query(QuerySpec{})))
}

func TestQuerySortKeys(t *testing.T) {
	s := seedStore(t)

	cases := map[SortKey][]string{
		SortLatest:   {"e4", "e3", "e2", "e1"},
		SortOldest:   {"e1", "e2", "e3", "e4"},
		SortMoodHigh: {"e2", "e3", "e1", "e4"}, // equal moods keep insertion order
		SortMoodLow:  {"e4", "e1", "e2", "e3"},
	}
	for sortKey, want := range cases {
		assert.Equal(t, want, ids(s.Query(QuerySpec{Sort: sortKey})), "sort %s", sortKey)
	}
}

func TestQuerySortStability(t *testing.T) {
	s, err := NewStore(kv.NewMemStore(), zerolog.Nop())
	require.NoError(t, err)

	// Many entries with identical mood must keep insertion order under
	// both mood sorts.
	want := make([]string, 0, 20)
	for i := 0; i < 20; i++ {
		id := string(rune('a' + i))
		require.NoError(t, s.Append(entry(id, int64(i), 5, "t", "r")))
		want = append(want, id)
	}

	assert.Equal(t, want, ids(s.Query(QuerySpec{Sort: SortMoodHigh})))
	assert.Equal(t, want, ids(s.Query(QuerySpec{Sort: SortMoodLow})))
}

func TestQueryIsPureAndDeterministic(t *testing.T) {
	s := seedStore(t)
	spec := QuerySpec{SearchText: "ي", Mood: MoodHigh, Sort: SortMoodLow}

	first := s.Query(spec)
	second := s.Query(spec)
	assert.Equal(t, first, second)

	// Mutating a result must not leak into the store.
	if len(first) > 0 {
		first[0].OriginalThought = "mutated"
		assert.NotEqual(t, "mutated", s.Query(spec)[0].OriginalThought)
	}
}

func TestTrapFilterIsUnion(t *testing.T) {
	s := seedStore(t)

	// e2 has {MindReading, Personalization}: matches a filter containing
	// MindReading plus an unrelated trap. e3 has {Catastrophizing} only.
	got := s.Query(QuerySpec{Traps: []ThinkingTrap{TrapMindReading, TrapFortuneTelling}, Sort: SortOldest})
	assert.Equal(t, []string{"e1", "e2"}, ids(got))

	// Empty set means no filtering.
	assert.Len(t, s.Query(QuerySpec{Traps: nil}), 4)
}

func TestMoodFilterPartition(t *testing.T) {
	s, err := NewStore(kv.NewMemStore(), zerolog.Nop())
	require.NoError(t, err)
	for i := 1; i <= 10; i++ {
		require.NoError(t, s.Append(entry(string(rune('a'+i)), int64(i), i, "t", "r")))
	}

	high := s.Query(QuerySpec{Mood: MoodHigh})
	low := s.Query(QuerySpec{Mood: MoodLow})
	all := s.Query(QuerySpec{Mood: MoodAll})

	assert.Len(t, high, 4, "levels 7..10")
	assert.Len(t, low, 4, "levels 1..4")
	assert.Len(t, all, 10)

	for _, e := range high {
		assert.GreaterOrEqual(t, e.MoodLevel, 7)
	}
	for _, e := range low {
		assert.LessOrEqual(t, e.MoodLevel, 4)
	}
	// Mid-range 5-6 appears under ALL only.
	for _, e := range append(high, low...) {
		assert.NotContains(t, []int{5, 6}, e.MoodLevel)
	}
}

func TestSearchMatchesThoughtOrReframe(t *testing.T) {
	s, err := NewStore(kv.NewMemStore(), zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, s.Append(entry("e1", 1, 5, "a calm morning", "لا بأس بالشعور بالقلق الآن")))
	require.NoError(t, s.Append(entry("e2", 2, 5, "another day", "all good")))

	// Arabic term present only in the reframe still matches.
	got := s.Query(QuerySpec{SearchText: "قلق"})
	assert.Equal(t, []string{"e1"}, ids(got))

	// Case-insensitive over Latin text.
	got = s.Query(QuerySpec{SearchText: "CALM"})
	assert.Equal(t, []string{"e1"}, ids(got))

	// No match yields an empty result, never an error.
	assert.Empty(t, s.Query(QuerySpec{SearchText: "nothing here"}))
}

func TestFiltersComposeConjunctively(t *testing.T) {
	s := seedStore(t)

	got := s.Query(QuerySpec{
		SearchText: "ي",
		Traps:      []ThinkingTrap{TrapMindReading, TrapCatastrophizing},
		Mood:       MoodHigh,
		Sort:       SortOldest,
	})
	assert.Equal(t, []string{"e2", "e3"}, ids(got))
}

func TestQueryOnEmptyStore(t *testing.T) {
	s, err := NewStore(kv.NewMemStore(), zerolog.Nop())
	require.NoError(t, err)
	assert.Empty(t, s.Query(QuerySpec{SearchText: "x", Mood: MoodHigh}))
}
