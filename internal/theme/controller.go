package theme

import (
	"context"
	"fmt"
	"sync"

	"github.com/louisbranch/portfolio/internal/colorscheme"
	"github.com/louisbranch/portfolio/internal/prefs"
)

// Sink receives the presentation attribute: dark marks the root as dark,
// otherwise the attribute is removed and the default presentation applies.
type Sink interface {
	SetDark(dark bool)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(dark bool)

// SetDark calls f(dark).
func (f SinkFunc) SetDark(dark bool) {
	f(dark)
}

// Controller reconciles a stored preference with an ambient color-scheme
// signal.
//
// The controller subscribes to the ambient source on construction and keeps
// the effective dark state current from then on. Presentation is only touched
// after Ready; Close releases the subscription. Sinks and the store are called
// with the controller lock held and must not call back into the controller.
type Controller struct {
	mu      sync.Mutex
	store   prefs.Store
	ambient colorscheme.Source
	sink    Sink

	preference Preference
	dark       bool
	ready      bool
	closed     bool
	cancel     func()
}

// NewController loads the stored preference and subscribes to ambient.
//
// A nil ambient behaves as a light environment and a nil sink discards
// presentation updates.
func NewController(ctx context.Context, store prefs.Store, ambient colorscheme.Source, sink Sink) *Controller {
	if ambient == nil {
		ambient = colorscheme.Fixed(false)
	}
	if sink == nil {
		sink = SinkFunc(func(bool) {})
	}
	c := &Controller{
		store:      store,
		ambient:    ambient,
		sink:       sink,
		preference: Load(ctx, store),
	}
	c.dark = Resolve(c.preference, ambient.PrefersDark())
	c.cancel = ambient.Subscribe(c.ambientChanged)
	return c
}

// Ready runs the initial reconciliation once the presentation can be mutated.
// Later calls, and calls after Close, do nothing.
func (c *Controller) Ready() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ready || c.closed {
		return
	}
	c.ready = true
	c.reconcileLocked()
}

// Get returns the current preference.
func (c *Controller) Get() Preference {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.preference
}

// IsDark returns the effective dark state.
func (c *Controller) IsDark() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dark
}

// Set applies and persists p.
//
// The new preference takes effect even when persisting fails; the storage
// error is returned so callers can report it.
func (c *Controller) Set(ctx context.Context, p Preference) error {
	if !p.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPreference, p)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applyLocked(ctx, p)
}

// Toggle switches dark to light and anything else to dark. The read and the
// write happen under one lock, so concurrent toggles each see the other's
// result.
func (c *Controller) Toggle(ctx context.Context) (Preference, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	next := c.preference.Next()
	return next, c.applyLocked(ctx, next)
}

// applyLocked updates state and persists it while the lock is held, so the
// stored order of changes matches the in-memory order.
func (c *Controller) applyLocked(ctx context.Context, p Preference) error {
	c.preference = p
	c.reconcileLocked()
	if c.store == nil {
		return nil
	}
	if err := c.store.Set(ctx, prefs.ThemeKey, p.String()); err != nil {
		return fmt.Errorf("persist theme preference: %w", err)
	}
	return nil
}

// Close releases the ambient subscription. The controller keeps answering Get
// and IsDark but no longer touches the presentation.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	cancel := c.cancel
	c.cancel = nil
	c.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

func (c *Controller) ambientChanged(bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.reconcileLocked()
}

// reconcileLocked recomputes from authoritative state rather than from the
// notification payload, so out-of-order notifications converge.
func (c *Controller) reconcileLocked() {
	ambientDark := c.ambient.PrefersDark()
	c.dark = Resolve(c.preference, ambientDark)
	if !c.ready || c.closed {
		return
	}
	switch c.preference {
	case Dark:
		c.sink.SetDark(true)
	case Light:
		c.sink.SetDark(false)
	default:
		c.sink.SetDark(ambientDark)
	}
}
