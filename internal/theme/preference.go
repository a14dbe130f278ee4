// Package theme owns the light/dark/auto appearance preference.
package theme

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/louisbranch/portfolio/internal/prefs"
)

// Preference is the visitor's appearance choice.
type Preference string

const (
	// Light always renders the default presentation.
	Light Preference = "light"
	// Dark always renders the dark presentation.
	Dark Preference = "dark"
	// Auto follows the ambient color-scheme signal.
	Auto Preference = "auto"
)

// DefaultPreference applies on first run and to unreadable stored values.
const DefaultPreference = Auto

// ErrInvalidPreference is returned when setting an unknown preference.
var ErrInvalidPreference = errors.New("invalid theme preference")

// ParsePreference reports whether value names a preference.
func ParsePreference(value string) (Preference, bool) {
	switch p := Preference(strings.TrimSpace(value)); p {
	case Light, Dark, Auto:
		return p, true
	default:
		return "", false
	}
}

// Valid reports whether p is one of the known preferences.
func (p Preference) Valid() bool {
	_, ok := ParsePreference(string(p))
	return ok
}

// String returns the stored form of p.
func (p Preference) String() string {
	return string(p)
}

// Next returns the preference Toggle moves to: dark becomes light and
// everything else, auto included, becomes dark.
func (p Preference) Next() Preference {
	if p == Dark {
		return Light
	}
	return Dark
}

// Resolve returns the effective dark state for p under the ambient signal.
func Resolve(p Preference, ambientDark bool) bool {
	switch p {
	case Dark:
		return true
	case Light:
		return false
	default:
		return ambientDark
	}
}

// Load reads the stored preference, falling back to DefaultPreference when the
// slot is empty, malformed or unreadable.
func Load(ctx context.Context, store prefs.Store) Preference {
	if store == nil {
		return DefaultPreference
	}
	value, ok, err := store.Get(ctx, prefs.ThemeKey)
	if err != nil {
		log.Printf("theme: read preference: %v", err)
		return DefaultPreference
	}
	if !ok {
		return DefaultPreference
	}
	if p, ok := ParsePreference(value); ok {
		return p
	}
	return DefaultPreference
}
