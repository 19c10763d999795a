package story

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/careercanvas/career-canvas-api/internal/platform/pagination"
)

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu      sync.RWMutex
	stories map[string]*Story
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{stories: make(map[string]*Story)}
}

// List implements Store.
func (s *MemoryStore) List(_ context.Context, f Filter, p pagination.Params) ([]*Story, int, error) {
	s.mu.RLock()
	var matched []*Story
	for _, st := range s.stories {
		if (f.Category == "" || st.Category == f.Category) &&
			(f.AuthorEmail == "" || st.AuthorEmail == f.AuthorEmail) {
			matched = append(matched, clone(st))
		}
	}
	s.mu.RUnlock()

	slices.SortFunc(matched, newestFirst)
	page, total, _ := pagination.Page(matched, p)
	return page, total, nil
}

func newestFirst(a, b *Story) int {
	if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, id string) (*Story, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.stories[id]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(st), nil
}

// Create implements Store.
func (s *MemoryStore) Create(_ context.Context, st *Story) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stories[st.ID] = clone(st)
	return nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(_ context.Context, id string, check func(*Story) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stories[id]
	if !ok {
		return ErrNotFound
	}
	if err := check(clone(st)); err != nil {
		return err
	}
	delete(s.stories, id)
	return nil
}

// Like implements Store.
func (s *MemoryStore) Like(_ context.Context, id string) (*Story, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.stories[id]
	if !ok {
		return nil, ErrNotFound
	}
	st.Likes++
	return clone(st), nil
}

func clone(st *Story) *Story {
	c := *st
	c.Tags = slices.Clone(st.Tags)
	return &c
}

var _ Store = (*MemoryStore)(nil)
