package interview

import (
	"cmp"
	"context"
	"slices"
	"sync"
)

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions []*Session
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Create implements Store.
func (s *MemoryStore) Create(_ context.Context, sess *Session) error {
	c := *sess
	c.Entries = slices.Clone(sess.Entries)
	s.mu.Lock()
	s.sessions = append(s.sessions, &c)
	s.mu.Unlock()
	return nil
}

// ListByUser implements Store.
func (s *MemoryStore) ListByUser(_ context.Context, email string) ([]*Session, error) {
	s.mu.RLock()
	var out []*Session
	for _, sess := range s.sessions {
		if sess.UserEmail == email {
			c := *sess
			c.Entries = slices.Clone(sess.Entries)
			out = append(out, &c)
		}
	}
	s.mu.RUnlock()
	slices.SortFunc(out, newestFirst)
	return out, nil
}

func newestFirst(a, b *Session) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

var _ Store = (*MemoryStore)(nil)
