package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// Player is the mock playback transport: a one-second clock the host
// advances while playing. There is no audio decoding; the web layer owns
// the actual sound.
type Player struct {
	mu       sync.Mutex
	track    AudioTrack
	duration int // seconds
	position int
	playing  bool
}

// NewPlayer creates a stopped player at position zero.
func NewPlayer(track AudioTrack) (*Player, error) {
	dur, err := ParseClock(track.Duration)
	if err != nil {
		return nil, fmt.Errorf("catalog: track %s: %w", track.ID, err)
	}
	return &Player{track: track, duration: dur}, nil
}

// Track returns the loaded track.
func (p *Player) Track() AudioTrack {
	return p.track
}

// Toggle flips play/pause and returns the new playing state.
func (p *Player) Toggle() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playing = !p.playing
	return p.playing
}

// Tick advances the clock by one second while playing. Reaching the end
// stops playback and pins the position at the duration.
func (p *Player) Tick() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.playing {
		return
	}
	p.position++
	if p.position >= p.duration {
		p.position = p.duration
		p.playing = false
	}
}

// Position returns the current and total seconds.
func (p *Player) Position() (current, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position, p.duration
}

// Playing reports whether the clock is running.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

// ParseClock converts a "m:ss" display duration to seconds.
func ParseClock(clock string) (int, error) {
	mins, secs, ok := strings.Cut(clock, ":")
	if !ok {
		return 0, fmt.Errorf("invalid duration %q", clock)
	}
	m, err := strconv.Atoi(mins)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", clock)
	}
	s, err := strconv.Atoi(secs)
	if err != nil || s < 0 || s > 59 || len(secs) != 2 || m < 0 {
		return 0, fmt.Errorf("invalid duration %q", clock)
	}
	return m*60 + s, nil
}

// FormatClock renders seconds as the "m:ss" display form.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
