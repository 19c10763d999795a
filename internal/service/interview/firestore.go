package interview

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
)

const collectionName = "interview_sessions"

type firestoreEntry struct {
	Question string `firestore:"question"`
	Answer   string `firestore:"answer"`
	Feedback string `firestore:"feedback,omitempty"`
	Score    int    `firestore:"score,omitempty"`
}

type firestoreSession struct {
	UserEmail string           `firestore:"userEmail"`
	Role      string           `firestore:"role"`
	Level     string           `firestore:"level"`
	Entries   []firestoreEntry `firestore:"entries"`
	CreatedAt time.Time        `firestore:"createdAt"`
}

// FirestoreStore implements Store on Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// Create implements Store.
func (s *FirestoreStore) Create(ctx context.Context, sess *Session) error {
	entries := make([]firestoreEntry, len(sess.Entries))
	for i, e := range sess.Entries {
		entries[i] = firestoreEntry(e)
	}
	_, err := s.client.Collection(collectionName).Doc(sess.ID).Create(ctx, firestoreSession{
		UserEmail: sess.UserEmail,
		Role:      sess.Role,
		Level:     string(sess.Level),
		Entries:   entries,
		CreatedAt: sess.CreatedAt,
	})
	return err
}

// ListByUser implements Store.
func (s *FirestoreStore) ListByUser(ctx context.Context, email string) ([]*Session, error) {
	docs, err := s.client.Collection(collectionName).
		Where("userEmail", "==", email).
		OrderBy("createdAt", firestore.Desc).
		Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	out := make([]*Session, 0, len(docs))
	for _, d := range docs {
		var fs firestoreSession
		if err := d.DataTo(&fs); err != nil {
			return nil, err
		}
		sess := &Session{
			ID:        d.Ref.ID,
			UserEmail: fs.UserEmail,
			Role:      fs.Role,
			Level:     Level(fs.Level),
			CreatedAt: fs.CreatedAt.UTC(),
		}
		for _, e := range fs.Entries {
			sess.Entries = append(sess.Entries, Entry(e))
		}
		out = append(out, sess)
	}
	return out, nil
}

var _ Store = (*FirestoreStore)(nil)
