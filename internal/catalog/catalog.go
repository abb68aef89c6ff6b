// Package catalog holds the static content library: guided audio tracks,
// the DARE panic-response steps and the daily challenges. The data is
// process-wide constant; only filtering and premium gating carry logic.
package catalog

import "strings"

// Category groups audio tracks by purpose.
type Category string

const (
	CategoryRelax       Category = "RELAX"
	CategoryChallenge   Category = "CHALLENGE"
	CategorySleep       Category = "SLEEP"
	CategoryDare        Category = "DARE"
	CategorySituational Category = "SITUATIONAL"
	CategoryBodily      Category = "BODILY"
)

// AudioTrack is one catalog entry. Duration is the display clock ("19:57").
type AudioTrack struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Category    Category `json:"category"`
	Duration    string   `json:"duration"`
	IsPremium   bool     `json:"isPremium"`
	ArabicLabel string   `json:"arabicLabel"`
	Description string   `json:"description,omitempty"`
	Icon        string   `json:"icon,omitempty"`
}

// DareStep is one phase of the guided panic-response flow.
type DareStep struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Instruction string `json:"instruction"`
	AudioText   string `json:"audioText"`
}

// DailyChallenge is a short exposure exercise suggested on the home screen.
type DailyChallenge struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Mode selects which half of the library a screen shows.
type Mode string

const (
	ModeRelax     Mode = "RELAX"
	ModeChallenge Mode = "CHALLENGE"
)

// Filter narrows a track listing. Search matches the Arabic label as-is or
// the English title case-insensitively; Tab restricts by category.
// Conditions compose conjunctively. Zero value returns the whole mode.
type Filter struct {
	Mode   Mode     `json:"mode"`
	Tab    Category `json:"tab,omitempty"` // empty = all tabs
	Search string   `json:"search,omitempty"`
}

// Tracks returns the catalog slice for mode.
func Tracks(mode Mode) []AudioTrack {
	if mode == ModeChallenge {
		return ChallengeContent
	}
	return RelaxContent
}

// FilterTracks returns the tracks of f.Mode matching the filter.
func FilterTracks(f Filter) []AudioTrack {
	source := Tracks(f.Mode)
	search := strings.ToLower(f.Search)

	result := make([]AudioTrack, 0, len(source))
	for _, track := range source {
		if search != "" &&
			!strings.Contains(track.ArabicLabel, f.Search) &&
			!strings.Contains(strings.ToLower(track.Title), search) {
			continue
		}
		if f.Tab != "" && track.Category != f.Tab {
			continue
		}
		result = append(result, track)
	}
	return result
}

// Accessible reports whether a user with the given premium status may play
// the track.
func Accessible(track AudioTrack, premium bool) bool {
	return !track.IsPremium || premium
}

// TrackByID looks a track up across the whole library, or nil.
func TrackByID(id string) *AudioTrack {
	for _, lib := range [][]AudioTrack{RelaxContent, ChallengeContent} {
		for i := range lib {
			if lib[i].ID == id {
				t := lib[i]
				return &t
			}
		}
	}
	return nil
}
