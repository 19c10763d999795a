package mentor

import (
	"context"
	"errors"
	"testing"

	"github.com/careercanvas/career-canvas-api/internal/platform/cache"
)

type countingStore struct {
	Store
	lists int
	gets  int
}

func (s *countingStore) List(ctx context.Context, q Query) ([]*Mentor, error) {
	s.lists++
	return s.Store.List(ctx, q)
}

func (s *countingStore) Get(ctx context.Context, id string) (*Mentor, error) {
	s.gets++
	return s.Store.Get(ctx, id)
}

func TestCachedStore(t *testing.T) {
	testStore(t, func(*testing.T) Store {
		return NewCachedStore(NewMemoryStore(), cache.NewMemory(), 0)
	})
}

func TestCachedStoreServesRepeatedReads(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{Store: NewMemoryStore()}
	store := NewCachedStore(inner, cache.NewMemory(), 0)
	for _, m := range fixtures() {
		if err := store.Create(ctx, m); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	q := Build(ParseFilter(RawFilter{Departments: "Engineering"}))
	first, err := store.List(ctx, q)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	second, err := store.List(ctx, q)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if inner.lists != 1 {
		t.Errorf("inner List calls = %d, want 1", inner.lists)
	}
	if len(second) != len(first) || second[0].ID != first[0].ID {
		t.Errorf("cached List() = %v, want %v", ids(second), ids(first))
	}
	if !second[0].CreatedAt.Equal(first[0].CreatedAt) {
		t.Errorf("cached CreatedAt = %v, want %v", second[0].CreatedAt, first[0].CreatedAt)
	}

	other := Build(ParseFilter(RawFilter{Departments: "Product"}))
	if _, err := store.List(ctx, other); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if inner.lists != 2 {
		t.Errorf("different query should miss: inner List calls = %d", inner.lists)
	}

	for range 2 {
		if _, err := store.Get(ctx, "m-sarah"); err != nil {
			t.Fatalf("Get() error = %v", err)
		}
	}
	if inner.gets != 1 {
		t.Errorf("inner Get calls = %d, want 1", inner.gets)
	}
}

func TestCachedStoreInvalidatesOnWrite(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{Store: NewMemoryStore()}
	store := NewCachedStore(inner, cache.NewMemory(), 0)
	m := fixtures()[0]
	if err := store.Create(ctx, m); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	q := Build(DefaultFilterSpec())
	if _, err := store.List(ctx, q); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if _, err := store.Update(ctx, m.ID, func(m *Mentor) error {
		m.Title = "Staff Engineer"
		return nil
	}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := store.List(ctx, q)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if inner.lists != 2 {
		t.Errorf("inner List calls = %d, want 2 after write", inner.lists)
	}
	if got[0].Title != "Staff Engineer" {
		t.Errorf("List() served stale title %q", got[0].Title)
	}
}

func TestCachedStoreFallsBackWhenCacheFails(t *testing.T) {
	ctx := context.Background()
	c := cache.NewMemory()
	c.Err = errors.New("connection refused")
	inner := &countingStore{Store: NewMemoryStore()}
	store := NewCachedStore(inner, c, 0)

	if err := store.Create(ctx, fixtures()[0]); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	for range 2 {
		got, err := store.List(ctx, Build(DefaultFilterSpec()))
		if err != nil {
			t.Fatalf("List() error = %v", err)
		}
		if len(got) != 1 {
			t.Errorf("List() = %v", ids(got))
		}
	}
	if inner.lists != 2 {
		t.Errorf("inner List calls = %d, want 2", inner.lists)
	}
}
