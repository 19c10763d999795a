package preferences

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/careercanvas/career-canvas-api/internal/platform/auth"
	"github.com/careercanvas/career-canvas-api/internal/service/mentor"
)

const collectionName = "mentorship_preferences"

type firestorePreferences struct {
	Email                 string    `firestore:"email"`
	Interests             []string  `firestore:"interests"`
	Goals                 []string  `firestore:"goals"`
	PreferredDepartments  []string  `firestore:"preferredDepartments"`
	PreferredAvailability []string  `firestore:"preferredAvailability"`
	UpdatedAt             time.Time `firestore:"updatedAt"`
}

// FirestoreStore keeps one document per user, keyed by a digest of the email.
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

// Get implements Store.
func (s *FirestoreStore) Get(ctx context.Context, email string) (*Preferences, error) {
	snap, err := s.doc(email).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var fp firestorePreferences
	if err := snap.DataTo(&fp); err != nil {
		return nil, err
	}
	p := &Preferences{
		Email:                fp.Email,
		Interests:            fp.Interests,
		Goals:                fp.Goals,
		PreferredDepartments: fp.PreferredDepartments,
		UpdatedAt:            fp.UpdatedAt.UTC(),
	}
	for _, a := range fp.PreferredAvailability {
		p.PreferredAvailability = append(p.PreferredAvailability, mentor.Availability(a))
	}
	return p, nil
}

// Put implements Store.
func (s *FirestoreStore) Put(ctx context.Context, p *Preferences) error {
	_, err := s.doc(p.Email).Set(ctx, firestorePreferences{
		Email:                 p.Email,
		Interests:             nonNil(p.Interests),
		Goals:                 nonNil(p.Goals),
		PreferredDepartments:  nonNil(p.PreferredDepartments),
		PreferredAvailability: availabilityStrings(p.PreferredAvailability),
		UpdatedAt:             p.UpdatedAt,
	})
	return err
}

func availabilityStrings(in []mentor.Availability) []string {
	out := make([]string, len(in))
	for i, a := range in {
		out[i] = string(a)
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

var _ Store = (*FirestoreStore)(nil)
