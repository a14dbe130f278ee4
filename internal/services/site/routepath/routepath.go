// Package routepath names the fixed HTTP paths served beside localized pages.
package routepath

const (
	Root           = "/"
	Health         = "/up"
	StaticPrefix   = "/static/"
	ThemeToggle    = "/theme/toggle"
	APITheme       = "/api/theme"
	APIThemeToggle = "/api/theme/toggle"
)

// Static returns the public path of a static asset.
func Static(name string) string {
	return StaticPrefix + name
}
