package connection

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/careercanvas/career-canvas-api/internal/platform/mongodb"
)

type mongoRequest struct {
	ID             string    `bson:"_id"`
	RequesterEmail string    `bson:"requesterEmail"`
	RequesterName  string    `bson:"requesterName"`
	MentorID       string    `bson:"mentorId"`
	MentorEmail    string    `bson:"mentorEmail"`
	MentorName     string    `bson:"mentorName"`
	Message        string    `bson:"message"`
	Status         string    `bson:"status"`
	CreatedAt      time.Time `bson:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt"`
}

func (d *mongoRequest) toRequest() *Request {
	return &Request{
		ID:             d.ID,
		RequesterEmail: d.RequesterEmail,
		RequesterName:  d.RequesterName,
		MentorID:       d.MentorID,
		MentorEmail:    d.MentorEmail,
		MentorName:     d.MentorName,
		Message:        d.Message,
		Status:         Status(d.Status),
		CreatedAt:      d.CreatedAt.UTC(),
		UpdatedAt:      d.UpdatedAt.UTC(),
	}
}

func fromRequest(r *Request) mongoRequest {
	return mongoRequest{
		ID:             r.ID,
		RequesterEmail: r.RequesterEmail,
		RequesterName:  r.RequesterName,
		MentorID:       r.MentorID,
		MentorEmail:    r.MentorEmail,
		MentorName:     r.MentorName,
		Message:        r.Message,
		Status:         string(r.Status),
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}

// MongoStore implements Store on MongoDB. A partial unique index allows one
// pending request per requester and mentor.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a store over db's connection requests collection.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(collectionName)}
}

// EnsureIndexes creates the pending uniqueness and participant indexes.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	return mongodb.EnsureIndexes(ctx, s.coll.Database(), map[string][]mongo.IndexModel{
		collectionName: {
			{
				Keys: bson.D{{Key: "requesterEmail", Value: 1}, {Key: "mentorId", Value: 1}},
				Options: options.Index().
					SetUnique(true).
					SetName("unique_pending_request").
					SetPartialFilterExpression(bson.D{{Key: "status", Value: string(Pending)}}),
			},
			{Keys: bson.D{{Key: "mentorEmail", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	})
}

// Create implements Store.
func (s *MongoStore) Create(ctx context.Context, r *Request) error {
	if _, err := s.coll.InsertOne(ctx, fromRequest(r)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// Get implements Store.
func (s *MongoStore) Get(ctx context.Context, id string) (*Request, error) {
	var doc mongoRequest
	if err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc.toRequest(), nil
}

// ListFor implements Store.
func (s *MongoStore) ListFor(ctx context.Context, email string) ([]*Request, error) {
	filter := bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "requesterEmail", Value: email}},
		bson.D{{Key: "mentorEmail", Value: email}},
	}}}
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []mongoRequest
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*Request, len(docs))
	for i := range docs {
		out[i] = docs[i].toRequest()
	}
	return out, nil
}

// Update replaces the document only if its status is unchanged since the read.
func (s *MongoStore) Update(ctx context.Context, id string, fn func(*Request) error) (*Request, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next := *current
	if err := fn(&next); err != nil {
		return nil, err
	}
	next.ID = id
	res, err := s.coll.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: id}, {Key: "status", Value: string(current.Status)}},
		fromRequest(&next))
	if err != nil {
		return nil, err
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotPending
	}
	return &next, nil
}

var _ Store = (*MongoStore)(nil)
