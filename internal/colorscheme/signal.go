package colorscheme

import "sync"

// Source reports whether the environment prefers a dark color scheme.
type Source interface {
	PrefersDark() bool
	// Subscribe registers fn for change notifications. The returned cancel
	// func removes the subscription and is safe to call more than once.
	Subscribe(fn func(prefersDark bool)) (cancel func())
}

// Fixed is a Source that never changes.
type Fixed bool

// PrefersDark returns the fixed value.
func (f Fixed) PrefersDark() bool {
	return bool(f)
}

// Subscribe never notifies; cancel is a no-op.
func (Fixed) Subscribe(func(bool)) func() {
	return func() {}
}

// Signal is a settable Source.
type Signal struct {
	mu          sync.Mutex
	dark        bool
	nextID      int
	subscribers map[int]func(bool)
}

// NewSignal returns a Signal reporting dark.
func NewSignal(dark bool) *Signal {
	return &Signal{dark: dark, subscribers: map[int]func(bool){}}
}

// PrefersDark returns the current value.
func (s *Signal) PrefersDark() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dark
}

// Set updates the value and notifies subscribers when it changed.
//
// Subscribers run on the caller's goroutine after the lock is released, so a
// subscriber may read the signal or cancel itself.
func (s *Signal) Set(dark bool) {
	s.mu.Lock()
	if s.dark == dark {
		s.mu.Unlock()
		return
	}
	s.dark = dark
	listeners := make([]func(bool), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		listeners = append(listeners, fn)
	}
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(dark)
	}
}

// Subscribe registers fn for change notifications.
func (s *Signal) Subscribe(fn func(bool)) func() {
	if fn == nil {
		return func() {}
	}
	s.mu.Lock()
	if s.subscribers == nil {
		s.subscribers = map[int]func(bool){}
	}
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subscribers, id)
			s.mu.Unlock()
		})
	}
}

// Subscribers returns the number of live subscriptions.
func (s *Signal) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subscribers)
}
