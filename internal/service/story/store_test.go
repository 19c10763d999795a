package story

import (
	"context"
	"testing"

	"github.com/careercanvas/career-canvas-api/internal/testutil"
)

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
