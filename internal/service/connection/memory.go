package connection

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu       sync.RWMutex
	requests map[string]*Request
	pending  map[string]string
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{requests: make(map[string]*Request), pending: make(map[string]string)}
}

// Create implements Store.
func (s *MemoryStore) Create(_ context.Context, r *Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.pending[r.pendingKey()]; dup && r.Status == Pending {
		return ErrDuplicate
	}
	c := *r
	s.requests[r.ID] = &c
	if r.Status == Pending {
		s.pending[r.pendingKey()] = r.ID
	}
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, id string) (*Request, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := *r
	return &c, nil
}

// ListFor implements Store.
func (s *MemoryStore) ListFor(_ context.Context, email string) ([]*Request, error) {
	s.mu.RLock()
	var out []*Request
	for _, r := range s.requests {
		if r.RequesterEmail == email || r.MentorEmail == email {
			c := *r
			out = append(out, &c)
		}
	}
	s.mu.RUnlock()
	slices.SortFunc(out, newestFirst)
	return out, nil
}

func newestFirst(a, b *Request) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Update implements Store.
func (s *MemoryStore) Update(_ context.Context, id string, fn func(*Request) error) (*Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.requests[id]
	if !ok {
		return nil, ErrNotFound
	}
	next := *current
	if err := fn(&next); err != nil {
		return nil, err
	}
	if current.Status == Pending && next.Status != Pending {
		delete(s.pending, current.pendingKey())
	}
	s.requests[id] = &next
	c := next
	return &c, nil
}

var _ Store = (*MemoryStore)(nil)
