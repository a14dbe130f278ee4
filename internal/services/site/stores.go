package site

import (
	"net/http"

	"github.com/louisbranch/portfolio/internal/prefs"
	"github.com/louisbranch/portfolio/internal/services/site/prefcookie"
)

// PreferenceStores binds a preference store to one request.
type PreferenceStores interface {
	ForRequest(w http.ResponseWriter, r *http.Request) (prefs.Store, error)
}

// CookieStores keeps preferences in browser cookies.
type CookieStores struct {
	Secure bool
}

// ForRequest implements PreferenceStores.
func (s CookieStores) ForRequest(w http.ResponseWriter, r *http.Request) (prefs.Store, error) {
	return prefcookie.New(w, r, s.Secure), nil
}

// VisitorPreferences returns the durable store of one visitor.
type VisitorPreferences interface {
	Visitor(visitorID string) prefs.Store
}

// VisitorStores keeps preferences server-side, keyed by a visitor id cookie.
type VisitorStores struct {
	Preferences VisitorPreferences
	Secure      bool
}

// ForRequest implements PreferenceStores.
func (s VisitorStores) ForRequest(w http.ResponseWriter, r *http.Request) (prefs.Store, error) {
	visitorID, err := prefcookie.VisitorID(w, r, s.Secure)
	if err != nil {
		return nil, err
	}
	return s.Preferences.Visitor(visitorID), nil
}
