// Package reactive provides small observable values whose current state can
// feed style templates. A styler parameter bound with Bind is re-read on
// every render, so requiring the same styler again after a Set picks up the
// new value (and, through classification, a new class).
package reactive

import "sync"

// Signal is the read/write interface for reactive values.
type Signal[T any] interface {
	Get() T
	Set(T)
}

// State is a mutable reactive value with change subscribers.
type State[T any] struct {
	mu    sync.RWMutex
	value T

	subsMu  sync.Mutex
	subs    map[uint64]func()
	nextSub uint64
}

// NewState creates a new state holding initial.
func NewState[T any](initial T) *State[T] {
	return &State[T]{value: initial, subs: make(map[uint64]func())}
}

// Get returns the current value.
func (s *State[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the value and notifies subscribers.
func (s *State[T]) Set(value T) {
	s.mu.Lock()
	s.value = value
	s.mu.Unlock()
	s.notify()
}

// Update atomically reads, modifies, and writes the value, then notifies
// subscribers.
func (s *State[T]) Update(fn func(T) T) {
	s.mu.Lock()
	s.value = fn(s.value)
	s.mu.Unlock()
	s.notify()
}

// Subscribe registers fn to run after every change and returns the matching
// unsubscribe.
func (s *State[T]) Subscribe(fn func()) (unsubscribe func()) {
	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

// Bind returns the zero-argument callable shape the style template engine
// resolves: each invocation reads the state's current value.
func (s *State[T]) Bind() func() any {
	return func() any { return s.Get() }
}

func (s *State[T]) notify() {
	s.subsMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	// Run callbacks outside the lock so a subscriber may resubscribe.
	for _, fn := range fns {
		fn()
	}
}

// Computed is a memoized derived value. It recomputes lazily on Get after an
// Invalidate.
type Computed[T any] struct {
	mu      sync.Mutex
	compute func() T
	value   T
	valid   bool
}

// NewComputed creates a computed value from compute.
func NewComputed[T any](compute func() T) *Computed[T] {
	return &Computed[T]{compute: compute}
}

// Get returns the computed value, recalculating if invalidated.
func (c *Computed[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid {
		c.value = c.compute()
		c.valid = true
	}
	return c.value
}

// Invalidate marks the value as needing recalculation.
func (c *Computed[T]) Invalidate() {
	c.mu.Lock()
	c.valid = false
	c.mu.Unlock()
}

// Bind returns the callable shape the style template engine resolves.
func (c *Computed[T]) Bind() func() any {
	return func() any { return c.Get() }
}
