package identity

import (
	"context"
	"sync"
)

// MemoryStore is an in-process UserStore.
type MemoryStore struct {
	mu    sync.Mutex
	users map[string]User
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]User)}
}

// Upsert implements UserStore.
func (s *MemoryStore) Upsert(_ context.Context, u *User) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := *u
	if existing, ok := s.users[u.Email]; ok {
		next.ID = existing.ID
		next.CreatedAt = existing.CreatedAt
	}
	s.users[u.Email] = next
	return &next, nil
}

// GetByEmail implements UserStore.
func (s *MemoryStore) GetByEmail(_ context.Context, email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

var _ UserStore = (*MemoryStore)(nil)
