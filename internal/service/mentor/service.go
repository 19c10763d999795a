package mentor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/careercanvas/career-canvas-api/internal/platform/auth"
	applog "github.com/careercanvas/career-canvas-api/internal/platform/logging"
	"github.com/careercanvas/career-canvas-api/internal/platform/timeutil"
	"github.com/careercanvas/career-canvas-api/internal/platform/validate"
)

// Store persists mentor profiles. Implementations enforce one profile per
// normalized email at the storage layer.
type Store interface {
	// List evaluates q and returns at most q.Limit mentors in q's order.
	List(ctx context.Context, q Query) ([]*Mentor, error)
	Get(ctx context.Context, id string) (*Mentor, error)
	GetByEmail(ctx context.Context, email string) (*Mentor, error)
	// Create inserts m, returning ErrAlreadyExists when m.Email already owns a profile.
	Create(ctx context.Context, m *Mentor) error
	// Update applies fn to the stored profile atomically; an error from fn aborts the write.
	Update(ctx context.Context, id string, fn func(*Mentor) error) (*Mentor, error)
	// Delete removes the profile when check returns nil.
	Delete(ctx context.Context, id string, check func(*Mentor) error) error
}

// InterestSource supplies a requester's interests for ranking.
type InterestSource interface {
	Interests(ctx context.Context, email string) ([]string, error)
}

// Owner is the authenticated caller acting on their own profile.
type Owner struct {
	Email string
	Name  string
}

// ProfileInput is the editable part of a profile.
type ProfileInput struct {
	Name              string
	Title             string
	Department        string
	Bio               string
	YearsOfExperience *int
	Skills            []string
	Interests         []string
	Availability      Availability
	ProfileImage      string
	LastActive        *time.Time
}

// ListResult is the outcome of a directory listing.
type ListResult struct {
	Mentors []Ranked
	Total   int
	Filters FilterSpec
	// Ranked is true when mentors were ordered by relevance to a requester.
	Ranked bool
}

// Service is the mentor directory and profile lifecycle.
type Service struct {
	store     Store
	interests InterestSource
	now       timeutil.Clock
	newID     func() string
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(c timeutil.Clock) Option {
	return func(s *Service) { s.now = c }
}

// WithIDGenerator overrides profile ID generation.
func WithIDGenerator(f func() string) Option {
	return func(s *Service) { s.newID = f }
}

// NewService creates a Service. interests may be nil, in which case ranking
// uses StarterInterests.
func NewService(store Store, interests InterestSource, opts ...Option) *Service {
	s := &Service{
		store:     store,
		interests: interests,
		now:       timeutil.SystemClock,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns mentors matching spec. When requesterEmail is set, results are
// re-ranked by interest overlap with that requester.
func (s *Service) List(ctx context.Context, spec FilterSpec, requesterEmail string) (*ListResult, error) {
	q := Build(spec)
	requesterEmail = auth.NormalizeEmail(requesterEmail)

	var (
		mentors   []*Mentor
		interests []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		mentors, err = s.store.List(gctx, q)
		return err
	})
	if requesterEmail != "" {
		g.Go(func() error {
			interests = s.requesterInterests(gctx, requesterEmail)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list mentors: %w", err)
	}

	res := &ListResult{Filters: spec, Ranked: requesterEmail != ""}
	if res.Ranked {
		res.Mentors = Rank(mentors, interests)
	} else {
		res.Mentors = make([]Ranked, len(mentors))
		for i, m := range mentors {
			res.Mentors[i] = Ranked{Mentor: m}
		}
	}
	res.Total = len(res.Mentors)
	return res, nil
}

func (s *Service) requesterInterests(ctx context.Context, email string) []string {
	if s.interests == nil {
		return StarterInterests
	}
	interests, err := s.interests.Interests(ctx, email)
	if err != nil {
		applog.LogWarn(ctx, "falling back to starter interests", zap.Error(err))
		return StarterInterests
	}
	return interests
}

// Get returns the profile with id.
func (s *Service) Get(ctx context.Context, id string) (*Mentor, error) {
	return s.store.Get(ctx, id)
}

// GetByEmail returns the profile owned by email.
func (s *Service) GetByEmail(ctx context.Context, email string) (*Mentor, error) {
	return s.store.GetByEmail(ctx, auth.NormalizeEmail(email))
}

// Create stores a new profile for owner. Rating starts at DefaultRating.
func (s *Service) Create(ctx context.Context, owner Owner, in ProfileInput) (*Mentor, error) {
	email := auth.NormalizeEmail(owner.Email)
	in = in.normalized()
	if err := in.validate(); err != nil {
		return nil, err
	}

	now := s.now()
	m := &Mentor{
		ID:           s.newID(),
		Email:        email,
		Name:         defaultName(owner, email),
		Rating:       DefaultRating,
		Availability: Available,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	in.applyTo(m)

	if err := s.store.Create(ctx, m); err != nil {
		audit(ctx, "create", email, m.ID, err)
		return nil, err
	}
	audit(ctx, "create", email, m.ID, nil)
	return m, nil
}

// Update edits the caller's profile. With an empty id the profile owned by
// owner is updated. Rating, mentee count and history are preserved. Name,
// availability and profile image are kept when blank; experience and interests
// when nil.
func (s *Service) Update(ctx context.Context, owner Owner, id string, in ProfileInput) (*Mentor, error) {
	email := auth.NormalizeEmail(owner.Email)
	in = in.normalized()
	if err := in.validate(); err != nil {
		return nil, err
	}
	if id == "" {
		existing, err := s.store.GetByEmail(ctx, email)
		if err != nil {
			audit(ctx, "update", email, "", err)
			return nil, err
		}
		id = existing.ID
	}

	updated, err := s.store.Update(ctx, id, func(m *Mentor) error {
		if m.Email != email {
			return ErrForbidden
		}
		in.applyTo(m)
		m.UpdatedAt = s.now()
		return nil
	})
	audit(ctx, "update", email, id, err)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes the profile id when owner owns it.
func (s *Service) Delete(ctx context.Context, owner Owner, id string) error {
	email := auth.NormalizeEmail(owner.Email)
	err := s.store.Delete(ctx, id, func(m *Mentor) error {
		if m.Email != email {
			return ErrForbidden
		}
		return nil
	})
	audit(ctx, "delete", email, id, err)
	return err
}

// defaultName names a new profile after the account, else the email's local part.
func defaultName(owner Owner, email string) string {
	if name := strings.TrimSpace(owner.Name); name != "" {
		return name
	}
	local, _, _ := strings.Cut(email, "@")
	return local
}

func (in ProfileInput) normalized() ProfileInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Title = strings.TrimSpace(in.Title)
	in.Department = strings.TrimSpace(in.Department)
	in.Bio = strings.TrimSpace(in.Bio)
	in.ProfileImage = strings.TrimSpace(in.ProfileImage)
	in.Skills = validate.CleanList(in.Skills)
	if in.Interests != nil {
		in.Interests = validate.CleanList(in.Interests)
	}
	in.Availability = Availability(strings.ToLower(strings.TrimSpace(string(in.Availability))))
	return in
}

func (in ProfileInput) validate() error {
	var c validate.Collector
	c.Required("title", in.Title)
	c.Required("department", in.Department)
	c.Required("bio", in.Bio)
	c.MaxLength("bio", in.Bio, MaxBioLength)
	c.NonEmptyList("skills", in.Skills)
	c.Check(len(in.Skills) <= MaxSkills, "skills", "must contain at most %d entries", MaxSkills)
	c.Check(len(in.Interests) <= MaxInterests, "interests", "must contain at most %d entries", MaxInterests)
	if in.YearsOfExperience != nil {
		c.Check(*in.YearsOfExperience >= 0 && *in.YearsOfExperience <= MaxExperience,
			"yearsOfExperience", "must be between 0 and %d", MaxExperience)
	}
	c.Check(in.Availability == "" || in.Availability.Valid(), "availability", "must be one of available, limited, busy")
	return c.Err()
}

func (in ProfileInput) applyTo(m *Mentor) {
	if in.Name != "" {
		m.Name = in.Name
	}
	m.Title = in.Title
	m.Department = in.Department
	m.Bio = in.Bio
	if in.YearsOfExperience != nil {
		m.YearsOfExperience = *in.YearsOfExperience
	}
	m.Skills = in.Skills
	if in.Interests != nil {
		m.Interests = in.Interests
	}
	if in.Availability != "" {
		m.Availability = in.Availability
	}
	if in.ProfileImage != "" {
		m.ProfileImage = in.ProfileImage
	}
	if in.LastActive != nil {
		m.LastActive = in.LastActive.UTC()
	}
}

func audit(ctx context.Context, action, actor, id string, err error) {
	ev := applog.AuditEvent{
		Action:     action,
		Actor:      actor,
		Resource:   "mentor",
		ResourceID: id,
		Result:     applog.AuditSuccess,
	}
	if err != nil {
		ev.Result = applog.AuditFailure
		ev.Details = map[string]any{"error": categorizeError(err)}
	}
	applog.LogAuditEvent(ctx, ev)
}

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, validate.ErrInvalid):
		return "invalid"
	default:
		return "internal_error"
	}
}
