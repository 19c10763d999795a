// Package story implements career stories: authored posts listed newest first.
package story

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/careercanvas/career-canvas-api/internal/platform/auth"
	applog "github.com/careercanvas/career-canvas-api/internal/platform/logging"
	"github.com/careercanvas/career-canvas-api/internal/platform/pagination"
	"github.com/careercanvas/career-canvas-api/internal/platform/timeutil"
	"github.com/careercanvas/career-canvas-api/internal/platform/validate"
)

// Service errors
var (
	ErrNotFound  = errors.New("story not found")
	ErrForbidden = errors.New("story belongs to another user")
)

// Content limits.
const (
	MaxTitleLength   = 200
	MaxContentLength = 10000
	MaxTags          = 10
	DefaultCategory  = "General"
)

// Story is a stored career story.
type Story struct {
	ID          string
	AuthorEmail string
	AuthorName  string
	Title       string
	Content     string
	Category    string
	Tags        []string
	Likes       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Input is the author-supplied part of a story.
type Input struct {
	Title    string
	Content  string
	Category string
	Tags     []string
}

// Filter narrows a listing. Empty fields match everything.
type Filter struct {
	Category    string
	AuthorEmail string
}

// Store persists stories.
type Store interface {
	// List returns one page of matching stories, newest first, and the match count.
	List(ctx context.Context, f Filter, p pagination.Params) ([]*Story, int, error)
	Get(ctx context.Context, id string) (*Story, error)
	Create(ctx context.Context, s *Story) error
	// Delete removes the story when check returns nil.
	Delete(ctx context.Context, id string, check func(*Story) error) error
	// Like increments the like counter and returns the updated story.
	Like(ctx context.Context, id string) (*Story, error)
}

// Service implements story operations.
type Service struct {
	store Store
	now   timeutil.Clock
	newID func() string
}

// NewService creates a Service over store.
func NewService(store Store, clock timeutil.Clock) *Service {
	if clock == nil {
		clock = timeutil.SystemClock
	}
	return &Service{store: store, now: clock, newID: uuid.NewString}
}

// List returns a page of stories with the total match count.
func (s *Service) List(ctx context.Context, f Filter, p pagination.Params) ([]*Story, int, error) {
	f.Category = strings.TrimSpace(f.Category)
	f.AuthorEmail = auth.NormalizeEmail(f.AuthorEmail)
	return s.store.List(ctx, f, p.Normalize())
}

// Get returns one story.
func (s *Service) Get(ctx context.Context, id string) (*Story, error) {
	return s.store.Get(ctx, id)
}

// Create stores a story authored by author.
func (s *Service) Create(ctx context.Context, author auth.Identity, in Input) (*Story, error) {
	email := auth.NormalizeEmail(author.Email)
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	in.Category = strings.TrimSpace(in.Category)
	if in.Category == "" {
		in.Category = DefaultCategory
	}
	in.Tags = validate.CleanList(in.Tags)

	var c validate.Collector
	c.Required("title", in.Title)
	c.MaxLength("title", in.Title, MaxTitleLength)
	c.Required("content", in.Content)
	c.MaxLength("content", in.Content, MaxContentLength)
	c.Check(len(in.Tags) <= MaxTags, "tags", "must contain at most %d entries", MaxTags)
	if err := c.Err(); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(author.Name)
	if name == "" {
		name, _, _ = strings.Cut(email, "@")
	}
	now := s.now()
	st := &Story{
		ID:          s.newID(),
		AuthorEmail: email,
		AuthorName:  name,
		Title:       in.Title,
		Content:     in.Content,
		Category:    in.Category,
		Tags:        in.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err := s.store.Create(ctx, st)
	audit(ctx, "create", email, st.ID, err)
	if err != nil {
		return nil, err
	}
	return st, nil
}

// Delete removes story id when email authored it.
func (s *Service) Delete(ctx context.Context, email, id string) error {
	email = auth.NormalizeEmail(email)
	err := s.store.Delete(ctx, id, func(st *Story) error {
		if st.AuthorEmail != email {
			return ErrForbidden
		}
		return nil
	})
	audit(ctx, "delete", email, id, err)
	return err
}

// Like adds one like to story id.
func (s *Service) Like(ctx context.Context, email, id string) (*Story, error) {
	st, err := s.store.Like(ctx, id)
	audit(ctx, "like", auth.NormalizeEmail(email), id, err)
	return st, err
}

func audit(ctx context.Context, action, actor, id string, err error) {
	ev := applog.AuditEvent{
		Action:     action,
		Actor:      actor,
		Resource:   "story",
		ResourceID: id,
		Result:     applog.AuditSuccess,
	}
	if err != nil {
		ev.Result = applog.AuditFailure
		ev.Details = map[string]any{"error": categorizeError(err)}
	}
	applog.LogAuditEvent(ctx, ev)
}

func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	default:
		return "internal_error"
	}
}
