// Package i18n defines the locales the site is published in.
//
// Route segments, persisted preferences and rendered pages all use the short
// locale codes declared here; BCP 47 tags are derived only at the rendering edge.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Locale is a supported site locale code.
type Locale string

const (
	// English is the default locale.
	English Locale = "en"
	// Chinese is the simplified Chinese locale.
	Chinese Locale = "zh"
	// Finnish is the Finnish locale.
	Finnish Locale = "fi"
)

// Default is the locale used whenever a request carries no supported locale.
const Default = English

var supported = []Locale{English, Chinese, Finnish}

var tags = map[Locale]language.Tag{
	English: language.English,
	Chinese: language.SimplifiedChinese,
	Finnish: language.Finnish,
}

// Supported returns the supported locales in display order.
func Supported() []Locale {
	out := make([]Locale, len(supported))
	copy(out, supported)
	return out
}

// ParseLocale reports whether value is exactly one of the supported codes.
//
// Matching is case-sensitive: "EN" is not a supported locale segment.
func ParseLocale(value string) (Locale, bool) {
	for _, locale := range supported {
		if string(locale) == value {
			return locale, true
		}
	}
	return "", false
}

// IsSupported reports whether value is a supported locale code.
func IsSupported(value string) bool {
	_, ok := ParseLocale(value)
	return ok
}

// NormalizeLocale coerces unknown values to the default locale.
func NormalizeLocale(value string) Locale {
	if locale, ok := ParseLocale(strings.TrimSpace(value)); ok {
		return locale
	}
	return Default
}

// String returns the locale code.
func (l Locale) String() string {
	return string(l)
}

// Tag returns the BCP 47 tag used for rendering and message lookup.
func (l Locale) Tag() language.Tag {
	if tag, ok := tags[l]; ok {
		return tag
	}
	return tags[Default]
}

// SupportedTags returns the tags of all supported locales.
func SupportedTags() []language.Tag {
	out := make([]language.Tag, 0, len(supported))
	for _, locale := range supported {
		out = append(out, locale.Tag())
	}
	return out
}

// DefaultTag returns the tag of the default locale.
func DefaultTag() language.Tag {
	return Default.Tag()
}

// Printer returns a message printer for the locale.
func Printer(locale Locale) *message.Printer {
	return message.NewPrinter(locale.Tag())
}
