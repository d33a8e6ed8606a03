package session

import (
	"sync"
	"time"
)

// Store exposes keyed session state to the gate service.
type Store interface {
	Get(id string) (State, bool)
	Save(id string, state State)
	// Update runs fn on the live state for id while holding the store lock.
	// The state is written back, with a fresh expiry, only when fn returns
	// true. It reports false when no live state exists.
	Update(id string, fn func(state *State) bool) bool
	Delete(id string)
}

// MemoryStore implements Store with an in-process map. Entries expire ttl
// after their last save.
type MemoryStore struct {
	mu    sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
	items map[string]State
}

// NewMemoryStore returns an empty MemoryStore with the given expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &MemoryStore{
		ttl:   ttl,
		now:   time.Now,
		items: make(map[string]State),
	}
}

// Get returns the live state for id. Expired entries are reported missing
// and dropped on the next Save.
func (s *MemoryStore) Get(id string) (State, bool) {
	s.mu.RLock()
	state, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return State{}, false
	}
	if !s.now().Before(state.ExpiresAt) {
		return State{}, false
	}
	return state, true
}

// Save stores state under id and pushes its expiry forward.
func (s *MemoryStore) Save(id string, state State) {
	now := s.now()
	state.ExpiresAt = now.Add(s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked(now)
	s.items[id] = state
}

// Update applies fn to the live state for id as a single step.
func (s *MemoryStore) Update(id string, fn func(state *State) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	state, ok := s.items[id]
	if !ok || !now.Before(state.ExpiresAt) {
		return false
	}
	if fn(&state) {
		state.ExpiresAt = now.Add(s.ttl)
		s.items[id] = state
	}
	return true
}

// Delete drops the state held for id.
func (s *MemoryStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}

// Len reports the number of stored sessions, expired or not.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *MemoryStore) pruneLocked(now time.Time) {
	for id, state := range s.items {
		if !now.Before(state.ExpiresAt) {
			delete(s.items, id)
		}
	}
}
