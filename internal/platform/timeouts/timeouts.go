// Package timeouts defines shared timeout constants for the HTTP surface.
package timeouts

import "time"

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long the HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// Detect caps one operating-system color-scheme probe.
const Detect = 2 * time.Second
