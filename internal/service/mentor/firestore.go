package mentor

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/careercanvas/career-canvas-api/internal/platform/auth"
)

const (
	mentorsCollection = "mentors"
	// ownersCollection holds one guard document per owner email. Creating it in
	// the same transaction as the profile makes "one profile per email" a
	// storage constraint.
	ownersCollection = "mentor_owners"

	// Firestore limits disjunctive filters to 30 values.
	maxDisjunctionValues = 30
)

// firestoreMentor maps to Firestore document structure.
type firestoreMentor struct {
	Email             string           `firestore:"email"`
	Name              string           `firestore:"name"`
	Title             string           `firestore:"title"`
	Department        string           `firestore:"department"`
	Bio               string           `firestore:"bio"`
	YearsOfExperience int              `firestore:"yearsOfExperience"`
	Skills            []string         `firestore:"skills"`
	Interests         []string         `firestore:"interests"`
	Availability      string           `firestore:"availability"`
	Rating            float64          `firestore:"rating"`
	MenteeCount       int              `firestore:"menteeCount"`
	History           firestoreHistory `firestore:"mentorshipHistory"`
	ProfileImage      string           `firestore:"profileImage,omitempty"`
	CreatedAt         time.Time        `firestore:"createdAt"`
	UpdatedAt         time.Time        `firestore:"updatedAt"`
	LastActive        *time.Time       `firestore:"lastActive,omitempty"`
}

type firestoreHistory struct {
	TotalMentees      int      `firestore:"totalMentees"`
	CompletedSessions int      `firestore:"completedSessions"`
	AverageRating     float64  `firestore:"averageRating"`
	Specializations   []string `firestore:"specializations"`
}

type firestoreOwner struct {
	MentorID string `firestore:"mentorId"`
	Email    string `firestore:"email"`
}

// FirestoreStore implements Store using Firestore with transactions.
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store.
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) mentors() *firestore.CollectionRef {
	return s.client.Collection(mentorsCollection)
}

func (s *FirestoreStore) owner(email string) *firestore.DocumentRef {
	return s.client.Collection(ownersCollection).Doc(auth.EmailKey(email))
}

// List pushes one disjunctive filter, and the rating range when sorting by
// rating, down to Firestore; the rest of q.Filter is evaluated per document.
// When Firestore can order by the sort field, iteration stops at q.Limit
// matches; otherwise matches are sorted in memory.
func (s *FirestoreStore) List(ctx context.Context, q Query) ([]*Mentor, error) {
	fq, residual, ordered := s.plan(q)

	iter := fq.Documents(ctx)
	defer iter.Stop()

	var out []*Mentor
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		m, err := decodeMentor(doc)
		if err != nil {
			return nil, err
		}
		if !residual.Match(m) {
			continue
		}
		out = append(out, m)
		if ordered && q.Limit > 0 && len(out) >= q.Limit {
			break
		}
	}
	if !ordered {
		out = Apply(out, Query{SortBy: q.SortBy, Order: q.Order, Limit: q.Limit})
	}
	return out, nil
}

func (s *FirestoreStore) plan(q Query) (firestore.Query, And, bool) {
	fq := s.mentors().Query
	var residual And
	disjunction := false
	for _, e := range q.Filter {
		switch e := e.(type) {
		case In:
			if !disjunction && len(e.Values) <= maxDisjunctionValues {
				fq = fq.Where(string(e.Field), "in", e.Values)
				disjunction = true
				continue
			}
		case ContainsAny:
			if !disjunction && len(e.Values) <= maxDisjunctionValues {
				fq = fq.Where(string(e.Field), "array-contains-any", e.Values)
				disjunction = true
				continue
			}
		case Between:
			if e.Field == FieldRating && q.SortBy == SortRating {
				fq = fq.Where(string(FieldRating), ">=", e.Min).Where(string(FieldRating), "<=", e.Max)
				continue
			}
		}
		residual = append(residual, e)
	}

	field, ok := firestoreSortField(q.SortBy)
	if !ok {
		return fq, residual, false
	}
	dir := firestore.Desc
	if q.Order == Asc {
		dir = firestore.Asc
	}
	return fq.OrderBy(field, dir), residual, true
}

// firestoreSortField returns the document field Firestore can order by. Name
// sorts case-insensitively and lastActive falls back across fields, so both
// are sorted in memory.
func firestoreSortField(f SortField) (string, bool) {
	switch f {
	case SortRating:
		return "rating", true
	case SortExperience:
		return "yearsOfExperience", true
	case SortMenteeCount:
		return "menteeCount", true
	case SortCreatedAt:
		return "createdAt", true
	}
	return "", false
}

// Get retrieves a profile by ID.
func (s *FirestoreStore) Get(ctx context.Context, id string) (*Mentor, error) {
	doc, err := s.mentors().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decodeMentor(doc)
}

// GetByEmail resolves the owner guard and loads its profile.
func (s *FirestoreStore) GetByEmail(ctx context.Context, email string) (*Mentor, error) {
	doc, err := s.owner(email).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	var o firestoreOwner
	if err := doc.DataTo(&o); err != nil {
		return nil, err
	}
	return s.Get(ctx, o.MentorID)
}

// Create writes the owner guard and the profile in one transaction.
func (s *FirestoreStore) Create(ctx context.Context, m *Mentor) error {
	guardRef := s.owner(m.Email)
	docRef := s.mentors().Doc(m.ID)

	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(guardRef)
		if err == nil && doc.Exists() {
			return ErrAlreadyExists
		}
		if err != nil && status.Code(err) != codes.NotFound {
			return err
		}
		if err := tx.Create(guardRef, firestoreOwner{MentorID: m.ID, Email: m.Email}); err != nil {
			return err
		}
		return tx.Create(docRef, encodeMentor(m))
	})
	if status.Code(err) == codes.AlreadyExists {
		return ErrAlreadyExists
	}
	return err
}

// Update applies fn inside a transaction.
func (s *FirestoreStore) Update(ctx context.Context, id string, fn func(*Mentor) error) (*Mentor, error) {
	docRef := s.mentors().Doc(id)
	var result *Mentor

	err := s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		m, err := decodeMentor(doc)
		if err != nil {
			return err
		}
		id, email := m.ID, m.Email
		if err := fn(m); err != nil {
			return err
		}
		m.ID, m.Email = id, email
		if err := tx.Set(docRef, encodeMentor(m)); err != nil {
			return err
		}
		result = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete removes the profile and its owner guard in one transaction.
func (s *FirestoreStore) Delete(ctx context.Context, id string, check func(*Mentor) error) error {
	docRef := s.mentors().Doc(id)

	return s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		m, err := decodeMentor(doc)
		if err != nil {
			return err
		}
		if err := check(m); err != nil {
			return err
		}
		if err := tx.Delete(docRef); err != nil {
			return err
		}
		return tx.Delete(s.owner(m.Email))
	})
}

func encodeMentor(m *Mentor) firestoreMentor {
	fm := firestoreMentor{
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
		History: firestoreHistory{
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
		fm.LastActive = &t
	}
	return fm
}

func decodeMentor(doc *firestore.DocumentSnapshot) (*Mentor, error) {
	var fm firestoreMentor
	if err := doc.DataTo(&fm); err != nil {
		return nil, err
	}
	m := &Mentor{
		ID:                doc.Ref.ID,
		Email:             fm.Email,
		Name:              fm.Name,
		Title:             fm.Title,
		Department:        fm.Department,
		Bio:               fm.Bio,
		YearsOfExperience: fm.YearsOfExperience,
		Skills:            fm.Skills,
		Interests:         fm.Interests,
		Availability:      Availability(fm.Availability),
		Rating:            fm.Rating,
		MenteeCount:       fm.MenteeCount,
		History: History{
			TotalMentees:      fm.History.TotalMentees,
			CompletedSessions: fm.History.CompletedSessions,
			AverageRating:     fm.History.AverageRating,
			Specializations:   fm.History.Specializations,
		},
		ProfileImage: fm.ProfileImage,
		CreatedAt:    fm.CreatedAt,
		UpdatedAt:    fm.UpdatedAt,
	}
	if fm.LastActive != nil {
		m.LastActive = *fm.LastActive
	}
	return m, nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

var _ Store = (*FirestoreStore)(nil)
