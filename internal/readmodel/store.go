package readmodel

import (
	"sync"
	"sync/atomic"
)

// Store publishes the latest Snapshot. Readers never block; writers are
// serialized so each update is computed from the snapshot it replaces.
type Store struct {
	mu      sync.Mutex
	current atomic.Pointer[Snapshot]
}

func NewStore() *Store {
	s := &Store{}
	s.current.Store(Empty())
	return s
}

// Load returns the current snapshot
func (s *Store) Load() *Snapshot {
	return s.current.Load()
}

// Update replaces the current snapshot with fn(current) and returns it
func (s *Store) Update(fn func(*Snapshot) *Snapshot) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := fn(s.current.Load())
	s.current.Store(next)
	return next
}

