package story

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"cloud.google.com/go/firestore/apiv1/firestorepb"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/careercanvas/career-canvas-api/internal/platform/pagination"
)

const collectionName = "stories"

type firestoreStory struct {
	AuthorEmail string    `firestore:"authorEmail"`
	AuthorName  string    `firestore:"authorName"`
	Title       string    `firestore:"title"`
	Content     string    `firestore:"content"`
	Category    string    `firestore:"category"`
	Tags        []string  `firestore:"tags"`
	Likes       int       `firestore:"likes"`
	CreatedAt   time.Time `firestore:"createdAt"`
	UpdatedAt   time.Time `firestore:"updatedAt"`
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

// List counts matches with an aggregation query, then reads one page.
func (s *FirestoreStore) List(ctx context.Context, f Filter, p pagination.Params) ([]*Story, int, error) {
	q := s.collection().Query
	if f.Category != "" {
		q = q.Where("category", "==", f.Category)
	}
	if f.AuthorEmail != "" {
		q = q.Where("authorEmail", "==", f.AuthorEmail)
	}

	res, err := q.NewAggregationQuery().WithCount("total").Get(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("count stories: %w", err)
	}
	total := 0
	if v, ok := res["total"].(*firestorepb.Value); ok {
		total = int(v.GetIntegerValue())
	}

	iter := q.OrderBy("createdAt", firestore.Desc).
		OrderBy(firestore.DocumentID, firestore.Asc).
		Offset(p.Offset).
		Limit(p.Limit).
		Documents(ctx)
	defer iter.Stop()

	var out []*Story
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		st, err := decodeStory(doc)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, st)
	}
	return out, total, nil
}

// Get implements Store.
func (s *FirestoreStore) Get(ctx context.Context, id string) (*Story, error) {
	doc, err := s.collection().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decodeStory(doc)
}

// Create implements Store.
func (s *FirestoreStore) Create(ctx context.Context, st *Story) error {
	tags := st.Tags
	if tags == nil {
		tags = []string{}
	}
	_, err := s.collection().Doc(st.ID).Create(ctx, firestoreStory{
		AuthorEmail: st.AuthorEmail,
		AuthorName:  st.AuthorName,
		Title:       st.Title,
		Content:     st.Content,
		Category:    st.Category,
		Tags:        tags,
		Likes:       st.Likes,
		CreatedAt:   st.CreatedAt,
		UpdatedAt:   st.UpdatedAt,
	})
	return err
}

// Delete checks ownership and deletes inside a transaction.
func (s *FirestoreStore) Delete(ctx context.Context, id string, check func(*Story) error) error {
	ref := s.collection().Doc(id)
	return s.client.RunTransaction(ctx, func(_ context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrNotFound
			}
			return err
		}
		st, err := decodeStory(doc)
		if err != nil {
			return err
		}
		if err := check(st); err != nil {
			return err
		}
		return tx.Delete(ref)
	})
}

// Like increments the counter server-side.
func (s *FirestoreStore) Like(ctx context.Context, id string) (*Story, error) {
	_, err := s.collection().Doc(id).Update(ctx, []firestore.Update{
		{Path: "likes", Value: firestore.Increment(1)},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func decodeStory(doc *firestore.DocumentSnapshot) (*Story, error) {
	var fs firestoreStory
	if err := doc.DataTo(&fs); err != nil {
		return nil, err
	}
	return &Story{
		ID:          doc.Ref.ID,
		AuthorEmail: fs.AuthorEmail,
		AuthorName:  fs.AuthorName,
		Title:       fs.Title,
		Content:     fs.Content,
		Category:    fs.Category,
		Tags:        fs.Tags,
		Likes:       fs.Likes,
		CreatedAt:   fs.CreatedAt.UTC(),
		UpdatedAt:   fs.UpdatedAt.UTC(),
	}, nil
}

var _ Store = (*FirestoreStore)(nil)
