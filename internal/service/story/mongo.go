package story

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/careercanvas/career-canvas-api/internal/platform/mongodb"
	"github.com/careercanvas/career-canvas-api/internal/platform/pagination"
)

type mongoStory struct {
	ID          string    `bson:"_id"`
	AuthorEmail string    `bson:"authorEmail"`
	AuthorName  string    `bson:"authorName"`
	Title       string    `bson:"title"`
	Content     string    `bson:"content"`
	Category    string    `bson:"category"`
	Tags        []string  `bson:"tags"`
	Likes       int       `bson:"likes"`
	CreatedAt   time.Time `bson:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt"`
}

func (d *mongoStory) toStory() *Story {
	return &Story{
		ID:          d.ID,
		AuthorEmail: d.AuthorEmail,
		AuthorName:  d.AuthorName,
		Title:       d.Title,
		Content:     d.Content,
		Category:    d.Category,
		Tags:        d.Tags,
		Likes:       d.Likes,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

// MongoStore implements Store on MongoDB.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a store over db's stories collection.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(collectionName)}
}

// EnsureIndexes creates the listing index.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	return mongodb.EnsureIndexes(ctx, s.coll.Database(), map[string][]mongo.IndexModel{
		collectionName: {
			{Keys: bson.D{{Key: "category", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "authorEmail", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	})
}

// List implements Store.
func (s *MongoStore) List(ctx context.Context, f Filter, p pagination.Params) ([]*Story, int, error) {
	filter := bson.D{}
	if f.Category != "" {
		filter = append(filter, bson.E{Key: "category", Value: f.Category})
	}
	if f.AuthorEmail != "" {
		filter = append(filter, bson.E{Key: "authorEmail", Value: f.AuthorEmail})
	}

	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(int64(p.Offset)).
		SetLimit(int64(p.Limit))
	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	var docs []mongoStory
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, 0, err
	}
	out := make([]*Story, len(docs))
	for i := range docs {
		out[i] = docs[i].toStory()
	}
	return out, int(total), nil
}

// Get implements Store.
func (s *MongoStore) Get(ctx context.Context, id string) (*Story, error) {
	var doc mongoStory
	if err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc.toStory(), nil
}

// Create implements Store.
func (s *MongoStore) Create(ctx context.Context, st *Story) error {
	tags := st.Tags
	if tags == nil {
		tags = []string{}
	}
	_, err := s.coll.InsertOne(ctx, mongoStory{
		ID:          st.ID,
		AuthorEmail: st.AuthorEmail,
		AuthorName:  st.AuthorName,
		Title:       st.Title,
		Content:     st.Content,
		Category:    st.Category,
		Tags:        tags,
		Likes:       st.Likes,
		CreatedAt:   st.CreatedAt,
		UpdatedAt:   st.UpdatedAt,
	})
	return err
}

// Delete removes the story only if it still has the author that check approved.
func (s *MongoStore) Delete(ctx context.Context, id string, check func(*Story) error) error {
	st, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := check(st); err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}, {Key: "authorEmail", Value: st.AuthorEmail}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Like implements Store.
func (s *MongoStore) Like(ctx context.Context, id string) (*Story, error) {
	var doc mongoStory
	err := s.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{{Key: "$inc", Value: bson.D{{Key: "likes", Value: 1}}}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc.toStory(), nil
}

var _ Store = (*MongoStore)(nil)
