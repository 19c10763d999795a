// Package firebase builds the Firebase app and the clients the server injects
// into its stores and verifiers.
package firebase

import (
	"context"
	"errors"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Config holds Firebase configuration.
type Config struct {
	ProjectID                    string
	GoogleApplicationCredentials string // Path to service account JSON (optional)
	// WithAuth creates the Auth client used to verify Firebase ID tokens.
	WithAuth bool
	// WithFirestore creates the Firestore client used by the document stores.
	WithFirestore bool
}

// Clients holds initialized Firebase clients. Fields are nil when not requested.
type Clients struct {
	Auth      *auth.Client
	Firestore *firestore.Client
}

// InitializeClients sets up Firebase and returns the requested clients.
func InitializeClients(ctx context.Context, cfg Config) (*Clients, error) {
	if !cfg.WithAuth && !cfg.WithFirestore {
		return &Clients{}, nil
	}
	if cfg.ProjectID == "" {
		return nil, errors.New("firebase: project ID is required")
	}

	var opts []option.ClientOption
	if cfg.GoogleApplicationCredentials != "" {
		creds, err := os.ReadFile(cfg.GoogleApplicationCredentials)
		if err != nil {
			return nil, fmt.Errorf("firebase: read credentials: %w", err)
		}
		opts = append(opts, option.WithCredentialsJSON(creds))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: cfg.ProjectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase: new app: %w", err)
	}

	clients := &Clients{}
	if cfg.WithAuth {
		if clients.Auth, err = app.Auth(ctx); err != nil {
			return nil, fmt.Errorf("firebase: auth client: %w", err)
		}
	}
	if cfg.WithFirestore {
		if clients.Firestore, err = app.Firestore(ctx); err != nil {
			return nil, fmt.Errorf("firebase: firestore client: %w", err)
		}
	}
	return clients, nil
}

// Close closes the Firestore client.
func (c *Clients) Close() error {
	if c != nil && c.Firestore != nil {
		return c.Firestore.Close()
	}
	return nil
}
