// Package clienthint reads the browser's preferred color scheme from the
// Sec-CH-Prefers-Color-Scheme client hint.
package clienthint

import (
	"net/http"
	"strings"

	"github.com/louisbranch/portfolio/internal/colorscheme"
)

// Header is the client hint carrying the browser color scheme.
const Header = "Sec-CH-Prefers-Color-Scheme"

// PrefersDark reports the hinted scheme. ok is false when the hint is absent
// or carries an unknown value.
func PrefersDark(r *http.Request) (dark bool, ok bool) {
	if r == nil {
		return false, false
	}
	value := strings.ToLower(strings.Trim(strings.TrimSpace(r.Header.Get(Header)), `"`))
	switch value {
	case "dark":
		return true, true
	case "light":
		return false, true
	default:
		return false, false
	}
}

// Source returns the ambient signal for one request: the hint when present,
// otherwise fallback. A nil fallback reads as light.
func Source(r *http.Request, fallback colorscheme.Source) colorscheme.Source {
	source, _ := Lookup(r, fallback)
	return source
}

// Lookup is Source that also reports whether the ambient value is known. It is
// unknown when the request carries no hint and there is no fallback, in which
// case only the browser can tell.
func Lookup(r *http.Request, fallback colorscheme.Source) (colorscheme.Source, bool) {
	if dark, ok := PrefersDark(r); ok {
		return colorscheme.Fixed(dark), true
	}
	if fallback == nil {
		return colorscheme.Fixed(false), false
	}
	return fallback, true
}

// Advertise asks the browser to send the hint on later requests and marks
// the response as varying on it.
func Advertise(w http.ResponseWriter) {
	if w == nil {
		return
	}
	h := w.Header()
	h.Set("Accept-CH", Header)
	h.Set("Critical-CH", Header)
	h.Add("Vary", Header)
}
