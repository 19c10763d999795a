package mentor

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// MemoryStore implements Store in process. The email index is guarded by the
// same lock as the profiles, so create is check-and-insert atomic.
type MemoryStore struct {
	mu      sync.RWMutex
	mentors map[string]*Mentor
	byEmail map[string]string
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		mentors: make(map[string]*Mentor),
		byEmail: make(map[string]string),
	}
}

// List implements Store.
func (s *MemoryStore) List(_ context.Context, q Query) ([]*Mentor, error) {
	s.mu.RLock()
	all := make([]*Mentor, 0, len(s.mentors))
	for _, id := range slices.Sorted(maps.Keys(s.mentors)) {
		all = append(all, s.mentors[id].clone())
	}
	s.mu.RUnlock()
	return Apply(all, q), nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, id string) (*Mentor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.mentors[id]
	if !ok {
		return nil, ErrNotFound
	}
	return m.clone(), nil
}

// GetByEmail implements Store.
func (s *MemoryStore) GetByEmail(_ context.Context, email string) (*Mentor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return s.mentors[id].clone(), nil
}

// Create implements Store.
func (s *MemoryStore) Create(_ context.Context, m *Mentor) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byEmail[m.Email]; exists {
		return ErrAlreadyExists
	}
	if _, exists := s.mentors[m.ID]; exists {
		return ErrAlreadyExists
	}
	s.mentors[m.ID] = m.clone()
	s.byEmail[m.Email] = m.ID
	return nil
}

// Update implements Store.
func (s *MemoryStore) Update(_ context.Context, id string, fn func(*Mentor) error) (*Mentor, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.mentors[id]
	if !ok {
		return nil, ErrNotFound
	}
	next := current.clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	next.ID, next.Email = current.ID, current.Email
	s.mentors[id] = next
	return next.clone(), nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, id string, check func(*Mentor) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.mentors[id]
	if !ok {
		return ErrNotFound
	}
	if err := check(m.clone()); err != nil {
		return err
	}
	delete(s.mentors, id)
	delete(s.byEmail, m.Email)
	return nil
}

// Len returns the number of stored profiles.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.mentors)
}

var _ Store = (*MemoryStore)(nil)
