package mentor

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/careercanvas/career-canvas-api/internal/platform/mongodb"
)

// maxUpdateAttempts bounds optimistic-concurrency retries on Update.
const maxUpdateAttempts = 3

var errConcurrentUpdate = errors.New("mentor profile changed concurrently")

type mongoMentor struct {
	ID                string       `bson:"_id"`
	Email             string       `bson:"email"`
	Name              string       `bson:"name"`
	Title             string       `bson:"title"`
	Department        string       `bson:"department"`
	Bio               string       `bson:"bio"`
	YearsOfExperience int          `bson:"yearsOfExperience"`
	Skills            []string     `bson:"skills"`
	Interests         []string     `bson:"interests"`
	Availability      string       `bson:"availability"`
	Rating            float64      `bson:"rating"`
	MenteeCount       int          `bson:"menteeCount"`
	History           mongoHistory `bson:"mentorshipHistory"`
	ProfileImage      string       `bson:"profileImage,omitempty"`
	CreatedAt         time.Time    `bson:"createdAt"`
	UpdatedAt         time.Time    `bson:"updatedAt"`
	LastActive        *time.Time   `bson:"lastActive,omitempty"`
}

type mongoHistory struct {
	TotalMentees      int      `bson:"totalMentees"`
	CompletedSessions int      `bson:"completedSessions"`
	AverageRating     float64  `bson:"averageRating"`
	Specializations   []string `bson:"specializations"`
}

// MongoStore implements Store on a MongoDB collection with a unique index on email.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a store over db's mentors collection.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(mentorsCollection)}
}

// EnsureIndexes creates the unique owner index and the filter indexes.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	return mongodb.EnsureIndexes(ctx, s.coll.Database(), map[string][]mongo.IndexModel{
		mentorsCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("unique_owner_email")},
			{Keys: bson.D{{Key: "department", Value: 1}, {Key: "rating", Value: -1}}},
			{Keys: bson.D{{Key: "skills", Value: 1}}},
			{Keys: bson.D{{Key: "rating", Value: -1}}},
		},
	})
}

// List runs q as an aggregation so lastActive can sort on its fallback value
// and name on its lower-cased form. Filters stay case-sensitive.
func (s *MongoStore) List(ctx context.Context, q Query) ([]*Mentor, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: mongoFilter(q.Filter)}},
		{{Key: "$addFields", Value: bson.D{{Key: "effectiveLastActive", Value: bson.D{
			{Key: "$ifNull", Value: bson.A{"$lastActive", "$updatedAt", "$createdAt"}},
		}}, {Key: "nameKey", Value: bson.D{{Key: "$toLower", Value: "$name"}}}}}},
		{{Key: "$sort", Value: bson.D{{Key: mongoSortField(q.SortBy), Value: mongoDirection(q.Order)}, {Key: "_id", Value: 1}}}},
	}
	if q.Limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: int64(q.Limit)}})
	}
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	var docs []mongoMentor
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]*Mentor, len(docs))
	for i := range docs {
		out[i] = docs[i].toMentor()
	}
	return out, nil
}

// mongoFilter translates a filter expression into a query document.
func mongoFilter(e Expr) bson.D {
	switch e := e.(type) {
	case And:
		if len(e) == 0 {
			return bson.D{}
		}
		parts := make(bson.A, len(e))
		for i, sub := range e {
			parts[i] = mongoFilter(sub)
		}
		return bson.D{{Key: "$and", Value: parts}}
	case In:
		return bson.D{{Key: string(e.Field), Value: bson.D{{Key: "$in", Value: e.Values}}}}
	case ContainsAny:
		return bson.D{{Key: string(e.Field), Value: bson.D{{Key: "$in", Value: e.Values}}}}
	case Between:
		return bson.D{{Key: string(e.Field), Value: bson.D{{Key: "$gte", Value: e.Min}, {Key: "$lte", Value: e.Max}}}}
	case Search:
		re := bson.Regex{Pattern: regexp.QuoteMeta(e.Term), Options: "i"}
		alts := make(bson.A, len(e.Fields))
		for i, f := range e.Fields {
			alts[i] = bson.D{{Key: string(f), Value: re}}
		}
		return bson.D{{Key: "$or", Value: alts}}
	}
	panic(fmt.Sprintf("mentor: unsupported filter expression %T", e))
}

func mongoSortField(f SortField) string {
	switch f {
	case SortExperience:
		return "yearsOfExperience"
	case SortName:
		return "nameKey"
	case SortMenteeCount:
		return "menteeCount"
	case SortLastActive:
		return "effectiveLastActive"
	case SortCreatedAt:
		return "createdAt"
	}
	return "rating"
}

func mongoDirection(o SortOrder) int {
	if o == Asc {
		return 1
	}
	return -1
}

// Get implements Store.
func (s *MongoStore) Get(ctx context.Context, id string) (*Mentor, error) {
	return s.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

// GetByEmail implements Store.
func (s *MongoStore) GetByEmail(ctx context.Context, email string) (*Mentor, error) {
	return s.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (s *MongoStore) findOne(ctx context.Context, filter bson.D) (*Mentor, error) {
	var doc mongoMentor
	if err := s.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc.toMentor(), nil
}

// Create inserts m; the unique email index rejects a second profile.
func (s *MongoStore) Create(ctx context.Context, m *Mentor) error {
	if _, err := s.coll.InsertOne(ctx, fromMentor(m)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update reads, applies fn and replaces the document only if it has not
// changed since the read, retrying a bounded number of times.
func (s *MongoStore) Update(ctx context.Context, id string, fn func(*Mentor) error) (*Mentor, error) {
	for range maxUpdateAttempts {
		current, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		next := current.clone()
		if err := fn(next); err != nil {
			return nil, err
		}
		next.ID, next.Email = current.ID, current.Email

		res, err := s.coll.ReplaceOne(ctx,
			bson.D{{Key: "_id", Value: id}, {Key: "updatedAt", Value: current.UpdatedAt}},
			fromMentor(next))
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 1 {
			return next, nil
		}
	}
	return nil, errConcurrentUpdate
}

// Delete implements Store.
func (s *MongoStore) Delete(ctx context.Context, id string, check func(*Mentor) error) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := check(current); err != nil {
		return err
	}
	res, err := s.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func fromMentor(m *Mentor) mongoMentor {
	doc := mongoMentor{
		ID:                m.ID,
		Email:             m.Email,
		Name:              m.Name,
		Title:             m.Title,
		Department:        m.Department,
		Bio:               m.Bio,
		YearsOfExperience: m.YearsOfExperience,
		Skills:            nonNil(m.Skills),
		Interests:         nonNil(m.Interests),
		Availability:      string(m.Availability),
		Rating:            m.Rating,
		MenteeCount:       m.MenteeCount,
		History: mongoHistory{
			TotalMentees:      m.History.TotalMentees,
			CompletedSessions: m.History.CompletedSessions,
			AverageRating:     m.History.AverageRating,
			Specializations:   nonNil(m.History.Specializations),
		},
		ProfileImage: m.ProfileImage,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if !m.LastActive.IsZero() {
		t := m.LastActive
		doc.LastActive = &t
	}
	return doc
}

func (d *mongoMentor) toMentor() *Mentor {
	m := &Mentor{
		ID:                d.ID,
		Email:             d.Email,
		Name:              d.Name,
		Title:             d.Title,
		Department:        d.Department,
		Bio:               d.Bio,
		YearsOfExperience: d.YearsOfExperience,
		Skills:            d.Skills,
		Interests:         d.Interests,
		Availability:      Availability(d.Availability),
		Rating:            d.Rating,
		MenteeCount:       d.MenteeCount,
		History: History{
			TotalMentees:      d.History.TotalMentees,
			CompletedSessions: d.History.CompletedSessions,
			AverageRating:     d.History.AverageRating,
			Specializations:   d.History.Specializations,
		},
		ProfileImage: d.ProfileImage,
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
	if d.LastActive != nil {
		m.LastActive = d.LastActive.UTC()
	}
	return m
}

var _ Store = (*MongoStore)(nil)
