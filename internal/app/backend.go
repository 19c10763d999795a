// Package app assembles stores, services and the HTTP handler from Config.
// Both the server binary and the Cloud Function build on it.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.uber.org/zap"

	"github.com/careercanvas/career-canvas-api/internal/platform/cache"
	"github.com/careercanvas/career-canvas-api/internal/platform/config"
	"github.com/careercanvas/career-canvas-api/internal/platform/firebase"
	applog "github.com/careercanvas/career-canvas-api/internal/platform/logging"
	"github.com/careercanvas/career-canvas-api/internal/platform/mongodb"
	"github.com/careercanvas/career-canvas-api/internal/seed"
	"github.com/careercanvas/career-canvas-api/internal/service/connection"
	"github.com/careercanvas/career-canvas-api/internal/service/identity"
	"github.com/careercanvas/career-canvas-api/internal/service/interview"
	"github.com/careercanvas/career-canvas-api/internal/service/mentor"
	"github.com/careercanvas/career-canvas-api/internal/service/preferences"
	"github.com/careercanvas/career-canvas-api/internal/service/story"
)

// Stores holds one store per collection.
type Stores struct {
	Mentors     mentor.Store
	Preferences preferences.Store
	Stories     story.Store
	Connections connection.Store
	Interviews  interview.Store
	Users       identity.UserStore
}

// MemoryStores returns in-process stores. Data is lost on restart.
func MemoryStores() *Stores {
	return &Stores{
		Mentors:     mentor.NewMemoryStore(),
		Preferences: preferences.NewMemoryStore(),
		Stories:     story.NewMemoryStore(),
		Connections: connection.NewMemoryStore(),
		Interviews:  interview.NewMemoryStore(),
		Users:       identity.NewMemoryStore(),
	}
}

// FirestoreStores returns stores backed by client.
func FirestoreStores(client *firestore.Client) *Stores {
	return &Stores{
		Mentors:     mentor.NewFirestoreStore(client),
		Preferences: preferences.NewFirestoreStore(client),
		Stories:     story.NewFirestoreStore(client),
		Connections: connection.NewFirestoreStore(client),
		Interviews:  interview.NewFirestoreStore(client),
		Users:       identity.NewFirestoreStore(client),
	}
}

// MongoStores returns stores backed by db after creating their indexes.
func MongoStores(ctx context.Context, db *mongo.Database) (*Stores, error) {
	mentors := mentor.NewMongoStore(db)
	stories := story.NewMongoStore(db)
	connections := connection.NewMongoStore(db)
	interviews := interview.NewMongoStore(db)
	for _, s := range []interface{ EnsureIndexes(context.Context) error }{mentors, stories, connections, interviews} {
		if err := s.EnsureIndexes(ctx); err != nil {
			return nil, fmt.Errorf("app: ensure indexes: %w", err)
		}
	}
	return &Stores{
		Mentors:     mentors,
		Preferences: preferences.NewMongoStore(db),
		Stories:     stories,
		Connections: connections,
		Interviews:  interviews,
		Users:       identity.NewMongoStore(db),
	}, nil
}

// Backend is the set of opened external resources.
type Backend struct {
	Stores   *Stores
	Firebase *firebase.Clients
	Mongo    *mongodb.Client
	Cache    *cache.Redis
}

// Open connects to the configured store backend, optional Firebase Auth and
// optional Redis. On error everything opened so far is closed.
func Open(ctx context.Context, cfg *config.Config) (b *Backend, err error) {
	b = &Backend{}
	defer func() {
		if err != nil {
			_ = b.Close(context.Background())
			b = nil
		}
	}()

	if cfg.UsesFirestore() || cfg.FirebaseAuthEnabled {
		b.Firebase, err = firebase.InitializeClients(ctx, firebase.Config{
			ProjectID:                    cfg.FirebaseProjectID,
			GoogleApplicationCredentials: cfg.GoogleCredentials,
			WithAuth:                     cfg.FirebaseAuthEnabled,
			WithFirestore:                cfg.UsesFirestore(),
		})
		if err != nil {
			return b, err
		}
	}

	switch cfg.StoreBackend {
	case config.BackendFirestore:
		b.Stores = FirestoreStores(b.Firebase.Firestore)
	case config.BackendMongo:
		b.Mongo, err = mongodb.Connect(ctx, mongodb.Config{URI: cfg.MongoURI, Database: cfg.MongoDatabase})
		if err != nil {
			return b, err
		}
		if b.Stores, err = MongoStores(ctx, b.Mongo.DB); err != nil {
			return b, err
		}
	default:
		b.Stores = MemoryStores()
	}

	if cfg.RedisAddr != "" {
		b.Cache, err = cache.NewRedis(ctx, cache.Config{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			KeyPrefix: "careercanvas:",
		})
		if err != nil {
			return b, err
		}
		b.Stores.Mentors = mentor.NewCachedStore(b.Stores.Mentors, b.Cache, cfg.CacheTTL)
	}

	if cfg.SeedMentors {
		if _, err = seed.Load(ctx, b.Stores.Mentors, b.Stores.Stories, time.Now().UTC()); err != nil {
			return b, err
		}
	}

	applog.LogInfo(ctx, "backend ready",
		zap.String("store", cfg.StoreBackend),
		zap.Bool("firebaseAuth", b.Firebase != nil && b.Firebase.Auth != nil),
		zap.Bool("cache", b.Cache != nil),
	)
	return b, nil
}

// Close releases every opened resource.
func (b *Backend) Close(ctx context.Context) error {
	if b == nil {
		return nil
	}
	var errs []error
	if b.Cache != nil {
		errs = append(errs, b.Cache.Close())
	}
	if b.Mongo != nil {
		errs = append(errs, b.Mongo.Close(ctx))
	}
	if b.Firebase != nil {
		errs = append(errs, b.Firebase.Close())
	}
	return errors.Join(errs...)
}
