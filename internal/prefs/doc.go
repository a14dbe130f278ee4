// Package prefs declares the key-value storage port used for visitor
// preferences.
//
// Each preference lives in its own named slot. Values are plain strings and
// readers own validation: a missing or malformed value falls back to that
// reader's default rather than surfacing an error.
package prefs
