// Package sqlite provides the durable preference adapter backed by SQLite.
//
// Rows are keyed by an opaque visitor id so one database serves every visitor;
// Visitor returns a prefs.Store bound to a single id.
package sqlite
