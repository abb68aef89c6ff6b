// Package prefs persists the user's scalar preference flags: theme choice
// and premium status. Values load once and write through on change.
package prefs

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sakina/gosakina/internal/kv"
)

// ThemeMode is the UI theme preference.
type ThemeMode string

const (
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
	ThemeSystem ThemeMode = "system"
)

// Storage keys, one scalar value each.
const (
	themeKey   = "theme_mode"
	premiumKey = "is_premium"
)

// Prefs holds the loaded preference flags.
type Prefs struct {
	mu      sync.RWMutex
	kv      kv.Store
	theme   ThemeMode
	premium bool
	log     zerolog.Logger
}

// Load reads preferences from kvs, applying defaults for absent keys.
func Load(kvs kv.Store, log zerolog.Logger) (*Prefs, error) {
	p := &Prefs{kv: kvs, theme: ThemeSystem, log: log}

	if v, err := kvs.Get(themeKey); err != nil {
		return nil, fmt.Errorf("prefs: load theme: %w", err)
	} else if mode := ThemeMode(v); mode == ThemeLight || mode == ThemeDark || mode == ThemeSystem {
		p.theme = mode
	}

	if v, err := kvs.Get(premiumKey); err != nil {
		return nil, fmt.Errorf("prefs: load premium: %w", err)
	} else if string(v) == "true" {
		p.premium = true
	}

	p.log.Debug().Str("theme", string(p.theme)).Bool("premium", p.premium).Msg("prefs loaded")
	return p, nil
}

// Theme returns the current theme preference.
func (p *Prefs) Theme() ThemeMode {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.theme
}

// SetTheme persists a new theme preference. Unknown modes are rejected.
func (p *Prefs) SetTheme(mode ThemeMode) error {
	if mode != ThemeLight && mode != ThemeDark && mode != ThemeSystem {
		return fmt.Errorf("prefs: unknown theme mode %q", mode)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.kv.Set(themeKey, []byte(mode)); err != nil {
		return fmt.Errorf("prefs: persist theme: %w", err)
	}
	p.theme = mode
	return nil
}

// Premium returns the premium flag.
func (p *Prefs) Premium() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.premium
}

// SetPremium persists the premium flag.
func (p *Prefs) SetPremium(premium bool) error {
	value := "false"
	if premium {
		value = "true"
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.kv.Set(premiumKey, []byte(value)); err != nil {
		return fmt.Errorf("prefs: persist premium: %w", err)
	}
	p.premium = premium
	return nil
}
