package colorscheme

import (
	"context"
	"log"
	"time"

	"github.com/louisbranch/portfolio/internal/platform/timeouts"
)

// DefaultPollInterval is used when a Watcher is built with a non-positive interval.
const DefaultPollInterval = 30 * time.Second

// Watcher polls Detectors and mirrors the answer into a Signal.
type Watcher struct {
	signal    *Signal
	detectors []Detector
	interval  time.Duration
}

// NewWatcher returns a Watcher updating signal every interval.
func NewWatcher(signal *Signal, interval time.Duration, detectors ...Detector) *Watcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Watcher{signal: signal, detectors: detectors, interval: interval}
}

// Signal returns the signal the watcher updates.
func (w *Watcher) Signal() *Signal {
	return w.signal
}

// Poll runs one detection pass. The signal keeps its last value when no
// detector answers.
func (w *Watcher) Poll(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, timeouts.Detect)
	defer cancel()
	dark, _, ok := Detect(ctx, w.detectors)
	if !ok {
		return false
	}
	w.signal.Set(dark)
	return true
}

// Run polls until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	if len(w.detectors) == 0 {
		log.Printf("color scheme watcher: no detectors for this platform")
	}
	w.Poll(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.Poll(ctx)
		}
	}
}
