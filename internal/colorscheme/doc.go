// Package colorscheme provides ambient "prefers dark" signals.
//
// A Source answers the current preference and notifies subscribers when it
// changes. Signal is the settable source shared by long-lived consumers, Fixed
// is a per-request snapshot, and Watcher keeps a Signal in step with the host
// operating system by polling Detectors.
package colorscheme
