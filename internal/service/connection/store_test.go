package connection

import (
	"context"
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/careercanvas/career-canvas-api/internal/testutil"
)

func testStore(t *testing.T, store Store) {
	ctx := context.Background()
	mk := func(id, requester, mentorID, mentorEmail string, offset time.Duration) *Request {
		return &Request{
			ID: id, RequesterEmail: requester, MentorID: mentorID, MentorEmail: mentorEmail,
			Status: Pending, CreatedAt: testNow.Add(offset), UpdatedAt: testNow.Add(offset),
		}
	}

	if err := store.Create(ctx, mk("r-1", "kim@example.com", "m-sarah", "sarah@example.com", 0)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := store.Create(ctx, mk("r-2", "kim@example.com", "m-sarah", "sarah@example.com", time.Minute)); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate Create() error = %v, want ErrDuplicate", err)
	}
	if err := store.Create(ctx, mk("r-3", "sarah@example.com", "m-david", "david@example.com", time.Hour)); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := store.ListFor(ctx, "sarah@example.com")
	if err != nil {
		t.Fatalf("ListFor() error = %v", err)
	}
	if !slices.Equal(requestIDs(got), []string{"r-3", "r-1"}) {
		t.Errorf("ListFor() = %v", requestIDs(got))
	}

	updated, err := store.Update(ctx, "r-1", func(r *Request) error {
		r.Status = Accepted
		return nil
	})
	if err != nil || updated.Status != Accepted {
		t.Fatalf("Update() = %+v, %v", updated, err)
	}
	if err := store.Create(ctx, mk("r-4", "kim@example.com", "m-sarah", "sarah@example.com", 2*time.Hour)); err != nil {
		t.Errorf("Create() after answer error = %v", err)
	}

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v", err)
	}
	if _, err := store.Update(ctx, "missing", func(*Request) error { return nil }); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update() error = %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestFirestoreStore(t *testing.T) {
	testStore(t, NewFirestoreStore(testutil.NewFirestoreClient(t)))
}

func TestMongoStore(t *testing.T) {
	store := NewMongoStore(testutil.MongoDatabase(t))
	if err := store.EnsureIndexes(context.Background()); err != nil {
		t.Fatalf("EnsureIndexes() error = %v", err)
	}
	testStore(t, store)
}
