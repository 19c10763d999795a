package preferences

import (
	"context"
	"slices"
	"sync"
)

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu    sync.RWMutex
	prefs map[string]Preferences
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{prefs: make(map[string]Preferences)}
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, email string) (*Preferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.prefs[email]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(p), nil
}

// Put implements Store.
func (s *MemoryStore) Put(_ context.Context, p *Preferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[p.Email] = *clone(*p)
	return nil
}

func clone(p Preferences) *Preferences {
	p.Interests = slices.Clone(p.Interests)
	p.Goals = slices.Clone(p.Goals)
	p.PreferredDepartments = slices.Clone(p.PreferredDepartments)
	p.PreferredAvailability = slices.Clone(p.PreferredAvailability)
	return &p
}

var _ Store = (*MemoryStore)(nil)
