package preferences

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/careercanvas/career-canvas-api/internal/service/mentor"
)

type mongoPreferences struct {
	Email                 string    `bson:"_id"`
	Interests             []string  `bson:"interests"`
	Goals                 []string  `bson:"goals"`
	PreferredDepartments  []string  `bson:"preferredDepartments"`
	PreferredAvailability []string  `bson:"preferredAvailability"`
	UpdatedAt             time.Time `bson:"updatedAt"`
}

// MongoStore keeps one document per user with the email as _id.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a store over db's preferences collection.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(collectionName)}
}

// Get implements Store.
func (s *MongoStore) Get(ctx context.Context, email string) (*Preferences, error) {
	var doc mongoPreferences
	if err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: email}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p := &Preferences{
		Email:                doc.Email,
		Interests:            doc.Interests,
		Goals:                doc.Goals,
		PreferredDepartments: doc.PreferredDepartments,
		UpdatedAt:            doc.UpdatedAt.UTC(),
	}
	for _, a := range doc.PreferredAvailability {
		p.PreferredAvailability = append(p.PreferredAvailability, mentor.Availability(a))
	}
	return p, nil
}

// Put implements Store.
func (s *MongoStore) Put(ctx context.Context, p *Preferences) error {
	_, err := s.coll.ReplaceOne(ctx,
		bson.D{{Key: "_id", Value: p.Email}},
		mongoPreferences{
			Email:                 p.Email,
			Interests:             nonNil(p.Interests),
			Goals:                 nonNil(p.Goals),
			PreferredDepartments:  nonNil(p.PreferredDepartments),
			PreferredAvailability: availabilityStrings(p.PreferredAvailability),
			UpdatedAt:             p.UpdatedAt,
		},
		options.Replace().SetUpsert(true))
	return err
}

var _ Store = (*MongoStore)(nil)
