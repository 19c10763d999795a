package interview

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/careercanvas/career-canvas-api/internal/platform/mongodb"
)

type mongoEntry struct {
	Question string `bson:"question"`
	Answer   string `bson:"answer"`
	Feedback string `bson:"feedback,omitempty"`
	Score    int    `bson:"score,omitempty"`
}

type mongoSession struct {
	ID        string       `bson:"_id"`
	UserEmail string       `bson:"userEmail"`
	Role      string       `bson:"role"`
	Level     string       `bson:"level"`
	Entries   []mongoEntry `bson:"entries"`
	CreatedAt time.Time    `bson:"createdAt"`
}

// MongoStore implements Store on MongoDB.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a store over db's interview sessions collection.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(collectionName)}
}

// EnsureIndexes creates the per-user listing index.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	return mongodb.EnsureIndexes(ctx, s.coll.Database(), map[string][]mongo.IndexModel{
		collectionName: {
			{Keys: bson.D{{Key: "userEmail", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	})
}

// Create implements Store.
func (s *MongoStore) Create(ctx context.Context, sess *Session) error {
	entries := make([]mongoEntry, len(sess.Entries))
	for i, e := range sess.Entries {
		entries[i] = mongoEntry(e)
	}
	_, err := s.coll.InsertOne(ctx, mongoSession{
		ID:        sess.ID,
		UserEmail: sess.UserEmail,
		Role:      sess.Role,
		Level:     string(sess.Level),
		Entries:   entries,
		CreatedAt: sess.CreatedAt,
	})
	return err
}

// ListByUser implements Store.
func (s *MongoStore) ListByUser(ctx context.Context, email string) ([]*Session, error) {
	cursor, err := s.coll.Find(ctx,
		bson.D{{Key: "userEmail", Value: email}},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var docs []mongoSession
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*Session, len(docs))
	for i, d := range docs {
		sess := &Session{
			ID:        d.ID,
			UserEmail: d.UserEmail,
			Role:      d.Role,
			Level:     Level(d.Level),
			CreatedAt: d.CreatedAt.UTC(),
		}
		for _, e := range d.Entries {
			sess.Entries = append(sess.Entries, Entry(e))
		}
		out[i] = sess
	}
	return out, nil
}

var _ Store = (*MongoStore)(nil)
