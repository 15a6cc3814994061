// Package observer provides the listener registries shared by the favorites
// pipeline.
package observer

import (
	"slices"
	"sync"
)

// Set is an ordered registry of listeners for values of type T.
// Notify calls listeners in registration order on the caller's goroutine and
// never holds the registry lock while doing so.
type Set[T any] struct {
	mu     sync.Mutex
	fns    map[int]func(T)
	order  []int
	nextID int
}

// Add registers fn and returns a function that removes it. Calling the
// returned function more than once is harmless.
func (s *Set[T]) Add(fn func(T)) (remove func()) {
	s.mu.Lock()
	if s.fns == nil {
		s.fns = make(map[int]func(T))
	}
	id := s.nextID
	s.nextID++
	s.fns[id] = fn
	s.order = append(s.order, id)
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.fns, id)
			s.order = slices.DeleteFunc(s.order, func(v int) bool { return v == id })
			s.mu.Unlock()
		})
	}
}

// Len returns the number of registered listeners
func (s *Set[T]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.order)
}

// Notify delivers v to every listener registered at the time of the call.
func (s *Set[T]) Notify(v T) {
	s.mu.Lock()
	fns := make([]func(T), 0, len(s.order))
	for _, id := range s.order {
		fns = append(fns, s.fns[id])
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Channel adapts a listener to a channel for consumers that poll or select.
type Channel[T any] struct {
	ch chan<- T
}

// NewChannel creates a new channel-based listener.
func NewChannel[T any](ch chan<- T) *Channel[T] {
	return &Channel[T]{ch: ch}
}

// Send forwards v to the channel (non-blocking if full).
func (c *Channel[T]) Send(v T) {
	select {
	case c.ch <- v:
	default: // Non-blocking if channel full
	}
}

// Latest keeps the most recent value it was handed.
// The zero value is ready to use.
type Latest[T any] struct {
	mu      sync.Mutex
	v       T
	version uint64
}

// Set stores v
func (l *Latest[T]) Set(v T) {
	l.mu.Lock()
	l.v = v
	l.version++
	l.mu.Unlock()
}

// Get returns the stored value and how many times Set has been called
func (l *Latest[T]) Get() (T, uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.v, l.version
}
