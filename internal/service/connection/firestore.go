package connection

import (
	"context"
	"slices"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const collectionName = "connection_requests"

type firestoreRequest struct {
	RequesterEmail string    `firestore:"requesterEmail"`
	RequesterName  string    `firestore:"requesterName"`
	MentorID       string    `firestore:"mentorId"`
	MentorEmail    string    `firestore:"mentorEmail"`
	MentorName     string    `firestore:"mentorName"`
	Message        string    `firestore:"message"`
	Status         string    `firestore:"status"`
	PendingKey     string    `firestore:"pendingKey,omitempty"`
	CreatedAt      time.Time `firestore:"createdAt"`
	UpdatedAt      time.Time `firestore:"updatedAt"`
}

// FirestoreStore implements Store on Firestore.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) collection() *firestore.CollectionRef {
	return s.client.Collection(collectionName)
}

// Create queries for a pending duplicate and writes the request in one
// transaction; the query joins the transaction's read set.
func (s *FirestoreStore) Create(ctx context.Context, r *Request) error {
	ref := s.collection().Doc(r.ID)
	doc := encode(r)
	return s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		if r.Status == Pending {
			dups, err := tx.Documents(s.collection().
				Where("pendingKey", "==", r.pendingKey()).
				Limit(1)).GetAll()
			if err != nil {
				return err
			}
			if len(dups) > 0 {
				return ErrDuplicate
			}
		}
		return tx.Create(ref, doc)
	})
}

// Get implements Store.
func (s *FirestoreStore) Get(ctx context.Context, id string) (*Request, error) {
	snap, err := s.collection().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decode(snap)
}

// ListFor runs one disjunctive query over both participant fields.
func (s *FirestoreStore) ListFor(ctx context.Context, email string) ([]*Request, error) {
	q := s.collection().WhereEntity(firestore.OrFilter{Filters: []firestore.EntityFilter{
		firestore.PropertyFilter{Path: "requesterEmail", Operator: "==", Value: email},
		firestore.PropertyFilter{Path: "mentorEmail", Operator: "==", Value: email},
	}})
	docs, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}
	out := make([]*Request, 0, len(docs))
	for _, d := range docs {
		r, err := decode(d)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	slices.SortFunc(out, newestFirst)
	return out, nil
}

// Update implements Store.
func (s *FirestoreStore) Update(ctx context.Context, id string, fn func(*Request) error) (*Request, error) {
	ref := s.collection().Doc(id)
	var result *Request
	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		r, err := decode(snap)
		if err != nil {
			return err
		}
		if err := fn(r); err != nil {
			return err
		}
		r.ID = id
		result = r
		return tx.Set(ref, encode(r))
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func encode(r *Request) firestoreRequest {
	doc := firestoreRequest{
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
	if r.Status == Pending {
		doc.PendingKey = r.pendingKey()
	}
	return doc
}

func decode(snap *firestore.DocumentSnapshot) (*Request, error) {
	var d firestoreRequest
	if err := snap.DataTo(&d); err != nil {
		return nil, err
	}
	return &Request{
		ID:             snap.Ref.ID,
		RequesterEmail: d.RequesterEmail,
		RequesterName:  d.RequesterName,
		MentorID:       d.MentorID,
		MentorEmail:    d.MentorEmail,
		MentorName:     d.MentorName,
		Message:        d.Message,
		Status:         Status(d.Status),
		CreatedAt:      d.CreatedAt.UTC(),
		UpdatedAt:      d.UpdatedAt.UTC(),
	}, nil
}

var _ Store = (*FirestoreStore)(nil)
