package identity

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/careercanvas/career-canvas-api/internal/platform/auth"
)

const collectionName = "users"

type firestoreUser struct {
	ID          string    `firestore:"id"`
	Email       string    `firestore:"email"`
	Name        string    `firestore:"name"`
	Provider    string    `firestore:"provider"`
	Picture     string    `firestore:"picture,omitempty"`
	CreatedAt   time.Time `firestore:"createdAt"`
	LastLoginAt time.Time `firestore:"lastLoginAt"`
}

// FirestoreStore keeps one user document per email digest.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) doc(email string) *firestore.DocumentRef {
	return s.client.Collection(collectionName).Doc(auth.EmailKey(email))
}

// Upsert implements UserStore in a transaction so concurrent first logins agree on one ID.
func (s *FirestoreStore) Upsert(ctx context.Context, u *User) (*User, error) {
	ref := s.doc(u.Email)
	var result User
	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		result = *u
		snap, err := tx.Get(ref)
		switch {
		case err == nil:
			var existing firestoreUser
			if err := snap.DataTo(&existing); err != nil {
				return err
			}
			result.ID = existing.ID
			result.CreatedAt = existing.CreatedAt.UTC()
		case status.Code(err) != codes.NotFound:
			return err
		}
		return tx.Set(ref, firestoreUser(result))
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetByEmail implements UserStore.
func (s *FirestoreStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	snap, err := s.doc(email).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var fu firestoreUser
	if err := snap.DataTo(&fu); err != nil {
		return nil, err
	}
	u := User(fu)
	u.CreatedAt = u.CreatedAt.UTC()
	u.LastLoginAt = u.LastLoginAt.UTC()
	return &u, nil
}

var _ UserStore = (*FirestoreStore)(nil)
