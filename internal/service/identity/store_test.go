package identity

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/careercanvas/career-canvas-api/internal/testutil"
)

func testStore(t *testing.T, store UserStore) {
	ctx := context.Background()

	if _, err := store.GetByEmail(ctx, "kim@example.com"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetByEmail() error = %v, want ErrNotFound", err)
	}

	first, err := store.Upsert(ctx, &User{
		ID: "u-1", Email: "kim@example.com", Name: "Kim", Provider: Google,
		CreatedAt: testNow, LastLoginAt: testNow,
	})
	if err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if first.ID != "u-1" {
		t.Errorf("ID = %q, want u-1", first.ID)
	}

	later := testNow.Add(48 * time.Hour)
	second, err := store.Upsert(ctx, &User{
		ID: "u-2", Email: "kim@example.com", Name: "Kim Lee", Provider: LinkedIn,
		CreatedAt: later, LastLoginAt: later,
	})
	if err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}
	if second.ID != "u-1" || !second.CreatedAt.Equal(testNow) {
		t.Errorf("second = %+v, want original ID and CreatedAt", second)
	}
	if second.Name != "Kim Lee" || second.Provider != LinkedIn || !second.LastLoginAt.Equal(later) {
		t.Errorf("second = %+v, want refreshed profile", second)
	}

	got, err := store.GetByEmail(ctx, "kim@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if got.ID != "u-1" || got.Name != "Kim Lee" {
		t.Errorf("GetByEmail() = %+v", got)
	}
}

func TestMemoryStore(t *testing.T) {
	testStore(t, NewMemoryStore())
}

func TestFirestoreStore(t *testing.T) {
	testStore(t, NewFirestoreStore(testutil.NewFirestoreClient(t)))
}

func TestMongoStore(t *testing.T) {
	testStore(t, NewMongoStore(testutil.MongoDatabase(t)))
}
