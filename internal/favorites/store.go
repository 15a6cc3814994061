// Package favorites holds the set of favorited Pokémon identifiers.
package favorites

import (
	"slices"
	"sync"

	"github.com/mmcdole/pokedex/internal/observer"
)

// Store is an insertion-ordered set of identifiers with change notification.
// It is the single source of truth for "is X favorited". Listeners run
// synchronously on the mutating goroutine after the lock is released, so
// they may call back into the store.
type Store struct {
	mu    sync.Mutex
	ids   []string
	index map[string]struct{}

	listeners observer.Set[[]string]
}

// New creates a store seeded with ids. Duplicates and empty ids are skipped.
func New(ids ...string) *Store {
	s := &Store{index: make(map[string]struct{})}
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := s.index[id]; ok {
			continue
		}
		s.index[id] = struct{}{}
		s.ids = append(s.ids, id)
	}
	return s
}

// Add inserts id at the end of the order. Returns false if it was already present.
func (s *Store) Add(id string) bool {
	if id == "" {
		return false
	}
	s.mu.Lock()
	if _, ok := s.index[id]; ok {
		s.mu.Unlock()
		return false
	}
	s.index[id] = struct{}{}
	s.ids = append(s.ids, id)
	snap := slices.Clone(s.ids)
	s.mu.Unlock()

	s.listeners.Notify(snap)
	return true
}

// Remove deletes id. Returns false if it was not present.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	if _, ok := s.index[id]; !ok {
		s.mu.Unlock()
		return false
	}
	delete(s.index, id)
	s.ids = slices.DeleteFunc(s.ids, func(v string) bool { return v == id })
	snap := slices.Clone(s.ids)
	s.mu.Unlock()

	s.listeners.Notify(snap)
	return true
}

// Toggle adds id if absent and removes it otherwise. Returns the new membership.
func (s *Store) Toggle(id string) bool {
	if s.Remove(id) {
		return false
	}
	return s.Add(id)
}

// Contains reports membership
func (s *Store) Contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.index[id]
	return ok
}

// Snapshot returns a copy of the ids in insertion order
func (s *Store) Snapshot() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.ids)
}

// Len returns the number of favorites
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// Subscribe registers fn for change notifications. Each call receives its
// own copy of the ids.
func (s *Store) Subscribe(fn func(ids []string)) (unsubscribe func()) {
	return s.listeners.Add(func(ids []string) { fn(slices.Clone(ids)) })
}
