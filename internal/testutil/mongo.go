package testutil

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/careercanvas/career-canvas-api/internal/platform/mongodb"
)

// MongoDatabase connects to MONGODB_TEST_URI and returns a fresh database that
// is dropped when the test ends. The test is skipped when the variable is unset.
func MongoDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}
	name := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
	ctx := context.Background()
	client, err := mongodb.Connect(ctx, mongodb.Config{URI: uri, Database: name})
	if err != nil {
		t.Fatalf("failed to connect to MongoDB: %v", err)
	}
	t.Cleanup(func() {
		_ = client.DB.Drop(context.Background())
		_ = client.Close(context.Background())
	})
	return client.DB
}
