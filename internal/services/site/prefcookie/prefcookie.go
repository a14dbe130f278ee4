// Package prefcookie stores visitor preferences in browser cookies.
package prefcookie

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/louisbranch/portfolio/internal/platform/id"
	"github.com/louisbranch/portfolio/internal/prefs"
)

const (
	// ThemeCookie holds the theme preference.
	ThemeCookie = "pf_theme"
	// LocaleCookie holds the active locale.
	LocaleCookie = "pf_locale"
	// VisitorCookie holds the anonymous visitor id used by durable stores.
	VisitorCookie = "pf_visitor"

	maxAge = 365 * 24 * time.Hour
)

var errUnknownKey = errors.New("unknown preference key")

// CookieName returns the cookie backing a preference key.
func CookieName(key string) (string, bool) {
	switch key {
	case prefs.ThemeKey:
		return ThemeCookie, true
	case prefs.LocaleKey:
		return LocaleCookie, true
	default:
		return "", false
	}
}

// Store reads preferences from the request cookies and writes them to the
// response. Values written during the request are visible to later reads.
type Store struct {
	w      http.ResponseWriter
	r      *http.Request
	secure bool

	mu      sync.Mutex
	pending map[string]string
}

// New returns a Store bound to one request.
func New(w http.ResponseWriter, r *http.Request, secure bool) *Store {
	return &Store{w: w, r: r, secure: secure, pending: map[string]string{}}
}

// Get implements prefs.Store.
func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	name, ok := CookieName(key)
	if !ok {
		return "", false, fmt.Errorf("%w: %q", errUnknownKey, key)
	}
	s.mu.Lock()
	value, ok := s.pending[key]
	s.mu.Unlock()
	if ok {
		return value, true, nil
	}
	value, ok = Read(s.r, name)
	return value, ok, nil
}

// Set implements prefs.Store.
func (s *Store) Set(_ context.Context, key, value string) error {
	name, ok := CookieName(key)
	if !ok {
		return fmt.Errorf("%w: %q", errUnknownKey, key)
	}
	s.mu.Lock()
	s.pending[key] = value
	s.mu.Unlock()
	Write(s.w, name, value, s.secure)
	return nil
}

// Read returns the trimmed cookie value when present.
func Read(r *http.Request, name string) (string, bool) {
	if r == nil {
		return "", false
	}
	cookie, err := r.Cookie(name)
	if err != nil || cookie == nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}
	return value, true
}

// Write sets a long-lived site cookie.
func Write(w http.ResponseWriter, name, value string, secure bool) {
	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    strings.TrimSpace(value),
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// VisitorID returns the visitor id cookie, issuing a new id when it is missing
// or malformed.
func VisitorID(w http.ResponseWriter, r *http.Request, secure bool) (string, error) {
	if value, ok := Read(r, VisitorCookie); ok && id.Valid(value) {
		return value, nil
	}
	value, err := id.NewID()
	if err != nil {
		return "", fmt.Errorf("issue visitor id: %w", err)
	}
	Write(w, VisitorCookie, value, secure)
	return value, nil
}
