// Package state publishes chat state snapshots to concurrent readers.
package state

import (
	"sync"
	"sync/atomic"

	"github.com/cristianoliveira/chatbuf/internal/domain"
)

// Listener is called with the previous and the newly published snapshot.
type Listener func(prev, next domain.Model)

// Store holds the current snapshot. Publishing is a single pointer swap,
// so a reader never observes a partially updated Model.
type Store struct {
	current   atomic.Pointer[domain.Model]
	mu        sync.RWMutex
	listeners []Listener
}

// NewStore returns a store publishing initial.
func NewStore(initial domain.Model) *Store {
	s := &Store{}
	s.current.Store(&initial)
	return s
}

// Load returns the current snapshot.
func (s *Store) Load() domain.Model {
	return *s.current.Load()
}

// Swap publishes next and returns the snapshot it replaced.
func (s *Store) Swap(next domain.Model) domain.Model {
	prev := *s.current.Swap(&next)
	s.notify(prev, next)
	return prev
}

// Update derives a new snapshot from the current one and publishes it.
// If another writer publishes first, fn runs again on the newer snapshot.
// When fn returns an error nothing is published.
func (s *Store) Update(fn func(domain.Model) (domain.Model, error)) (domain.Model, error) {
	for {
		ptr := s.current.Load()
		next, err := fn(*ptr)
		if err != nil {
			return *ptr, err
		}
		if s.current.CompareAndSwap(ptr, &next) {
			s.notify(*ptr, next)
			return next, nil
		}
	}
}

// Subscribe registers l to run after every publish.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

func (s *Store) notify(prev, next domain.Model) {
	s.mu.RLock()
	listeners := s.listeners
	s.mu.RUnlock()
	for _, l := range listeners {
		l(prev, next)
	}
}
