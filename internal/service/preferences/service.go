// Package preferences stores each user's mentorship preferences, the source of
// the interests used to rank the mentor directory.
package preferences

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/careercanvas/career-canvas-api/internal/platform/auth"
	applog "github.com/careercanvas/career-canvas-api/internal/platform/logging"
	"github.com/careercanvas/career-canvas-api/internal/platform/timeutil"
	"github.com/careercanvas/career-canvas-api/internal/platform/validate"
	"github.com/careercanvas/career-canvas-api/internal/service/mentor"
)

// ErrNotFound is returned by stores when a user has no stored preferences.
var ErrNotFound = errors.New("preferences not found")

// Limits on preference lists.
const (
	MaxInterests   = 30
	MaxGoals       = 10
	MaxGoalLength  = 200
	MaxDepartments = 20
)

// Preferences are a user's mentorship preferences.
type Preferences struct {
	Email                 string
	Interests             []string
	Goals                 []string
	PreferredDepartments  []string
	PreferredAvailability []mentor.Availability
	UpdatedAt             time.Time
	// IsDefault is set when nothing is stored and starter values are returned.
	IsDefault bool
}

// Input is the replaceable part of Preferences.
type Input struct {
	Interests             []string
	Goals                 []string
	PreferredDepartments  []string
	PreferredAvailability []string
}

// Store persists preferences keyed by normalized email.
type Store interface {
	Get(ctx context.Context, email string) (*Preferences, error)
	Put(ctx context.Context, p *Preferences) error
}

// Service reads and replaces preferences.
type Service struct {
	store Store
	now   timeutil.Clock
}

// NewService creates a Service over store.
func NewService(store Store, clock timeutil.Clock) *Service {
	if clock == nil {
		clock = timeutil.SystemClock
	}
	return &Service{store: store, now: clock}
}

// Defaults returns the starter preferences for email.
func Defaults(email string) *Preferences {
	return &Preferences{
		Email:     email,
		Interests: slices.Clone(mentor.StarterInterests),
		IsDefault: true,
	}
}

// Get returns the stored preferences for email, or Defaults when none exist.
func (s *Service) Get(ctx context.Context, email string) (*Preferences, error) {
	email = auth.NormalizeEmail(email)
	p, err := s.store.Get(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return Defaults(email), nil
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Put replaces the preferences for email.
func (s *Service) Put(ctx context.Context, email string, in Input) (*Preferences, error) {
	email = auth.NormalizeEmail(email)
	p := &Preferences{
		Email:                email,
		Interests:            validate.CleanList(in.Interests),
		Goals:                validate.CleanList(in.Goals),
		PreferredDepartments: validate.CleanList(in.PreferredDepartments),
		UpdatedAt:            s.now(),
	}

	var c validate.Collector
	for _, a := range validate.CleanList(in.PreferredAvailability) {
		av := mentor.Availability(strings.ToLower(a))
		if !av.Valid() {
			c.Add("preferredAvailability", "unknown availability %q", a)
			continue
		}
		if !slices.Contains(p.PreferredAvailability, av) {
			p.PreferredAvailability = append(p.PreferredAvailability, av)
		}
	}
	c.Check(len(p.Interests) <= MaxInterests, "interests", "must contain at most %d entries", MaxInterests)
	c.Check(len(p.Goals) <= MaxGoals, "goals", "must contain at most %d entries", MaxGoals)
	for _, g := range p.Goals {
		c.MaxLength("goals", g, MaxGoalLength)
	}
	c.Check(len(p.PreferredDepartments) <= MaxDepartments,
		"preferredDepartments", "must contain at most %d entries", MaxDepartments)
	if err := c.Err(); err != nil {
		return nil, err
	}

	err := s.store.Put(ctx, p)
	ev := applog.AuditEvent{
		Action:     "update",
		Actor:      email,
		Resource:   "mentorship_preferences",
		ResourceID: email,
		Result:     applog.AuditSuccess,
	}
	if err != nil {
		ev.Result = applog.AuditFailure
		ev.Details = map[string]any{"error": "internal_error"}
	}
	applog.LogAuditEvent(ctx, ev)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Interests returns the ranking interests for email. Users without stored
// interests rank by the starter set.
func (s *Service) Interests(ctx context.Context, email string) ([]string, error) {
	p, err := s.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(p.Interests) == 0 {
		return mentor.StarterInterests, nil
	}
	return p.Interests, nil
}

var _ mentor.InterestSource = (*Service)(nil)
