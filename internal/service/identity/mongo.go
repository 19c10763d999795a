package identity

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type mongoUser struct {
	ID          string    `bson:"id"`
	Email       string    `bson:"_id"`
	Name        string    `bson:"name"`
	Provider    string    `bson:"provider"`
	Picture     string    `bson:"picture,omitempty"`
	CreatedAt   time.Time `bson:"createdAt"`
	LastLoginAt time.Time `bson:"lastLoginAt"`
}

// MongoStore keeps one user document per email, used as _id.
type MongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore creates a store over db's users collection.
func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(collectionName)}
}

// Upsert implements UserStore with one atomic update: ID and CreatedAt are
// only written on insert.
func (s *MongoStore) Upsert(ctx context.Context, u *User) (*User, error) {
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "name", Value: u.Name},
			{Key: "provider", Value: u.Provider},
			{Key: "picture", Value: u.Picture},
			{Key: "lastLoginAt", Value: u.LastLoginAt},
		}},
		{Key: "$setOnInsert", Value: bson.D{
			{Key: "id", Value: u.ID},
			{Key: "createdAt", Value: u.CreatedAt},
		}},
	}
	var doc mongoUser
	err := s.coll.FindOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: u.Email}},
		update,
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, err
	}
	return doc.toUser(), nil
}

// GetByEmail implements UserStore.
func (s *MongoStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	var doc mongoUser
	if err := s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: email}}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc.toUser(), nil
}

func (d *mongoUser) toUser() *User {
	return &User{
		ID:          d.ID,
		Email:       d.Email,
		Name:        d.Name,
		Provider:    d.Provider,
		Picture:     d.Picture,
		CreatedAt:   d.CreatedAt.UTC(),
		LastLoginAt: d.LastLoginAt.UTC(),
	}
}

var _ UserStore = (*MongoStore)(nil)
