// Package connection implements mentorship connection requests between a
// requester and a mentor profile.
package connection

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/careercanvas/career-canvas-api/internal/platform/auth"
	applog "github.com/careercanvas/career-canvas-api/internal/platform/logging"
	"github.com/careercanvas/career-canvas-api/internal/platform/timeutil"
	"github.com/careercanvas/career-canvas-api/internal/platform/validate"
	"github.com/careercanvas/career-canvas-api/internal/service/mentor"
)

// Service errors
var (
	ErrNotFound       = errors.New("connection request not found")
	ErrMentorNotFound = errors.New("mentor not found")
	ErrForbidden      = errors.New("not allowed to act on this connection request")
	ErrDuplicate      = errors.New("a pending request to this mentor already exists")
	ErrNotPending     = errors.New("connection request already answered")
)

// MaxMessageLength bounds the note sent with a request.
const MaxMessageLength = 1000

// Status of a request.
type Status string

// Request statuses.
const (
	Pending  Status = "pending"
	Accepted Status = "accepted"
	Declined Status = "declined"
)

// Request is a stored connection request.
type Request struct {
	ID             string
	RequesterEmail string
	RequesterName  string
	MentorID       string
	MentorEmail    string
	MentorName     string
	Message        string
	Status         Status
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// pendingKey identifies the single pending request allowed per requester and mentor.
func (r *Request) pendingKey() string {
	return r.RequesterEmail + "|" + r.MentorID
}

// Store persists requests. Create rejects a second pending request for the
// same requester and mentor with ErrDuplicate.
type Store interface {
	Create(ctx context.Context, r *Request) error
	Get(ctx context.Context, id string) (*Request, error)
	// ListFor returns requests sent by or addressed to email, newest first.
	ListFor(ctx context.Context, email string) ([]*Request, error)
	// Update applies fn atomically; an error from fn aborts the write.
	Update(ctx context.Context, id string, fn func(*Request) error) (*Request, error)
}

// MentorLookup resolves mentor profiles.
type MentorLookup interface {
	Get(ctx context.Context, id string) (*mentor.Mentor, error)
}

// Service implements connection requests.
type Service struct {
	store   Store
	mentors MentorLookup
	now     timeutil.Clock
	newID   func() string
}

// NewService creates a Service.
func NewService(store Store, mentors MentorLookup, clock timeutil.Clock) *Service {
	if clock == nil {
		clock = timeutil.SystemClock
	}
	return &Service{store: store, mentors: mentors, now: clock, newID: uuid.NewString}
}

// Create sends a pending request from requester to mentorID.
func (s *Service) Create(ctx context.Context, requester auth.Identity, mentorID, message string) (*Request, error) {
	email := auth.NormalizeEmail(requester.Email)
	message = strings.TrimSpace(message)

	var c validate.Collector
	c.Required("mentorId", mentorID)
	c.MaxLength("message", message, MaxMessageLength)
	if err := c.Err(); err != nil {
		return nil, err
	}

	m, err := s.mentors.Get(ctx, mentorID)
	if errors.Is(err, mentor.ErrNotFound) {
		return nil, ErrMentorNotFound
	}
	if err != nil {
		return nil, err
	}
	if m.Email == email {
		audit(ctx, "create", email, mentorID, ErrForbidden)
		return nil, ErrForbidden
	}

	now := s.now()
	r := &Request{
		ID:             s.newID(),
		RequesterEmail: email,
		RequesterName:  strings.TrimSpace(requester.Name),
		MentorID:       m.ID,
		MentorEmail:    m.Email,
		MentorName:     m.Name,
		Message:        message,
		Status:         Pending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	err = s.store.Create(ctx, r)
	audit(ctx, "create", email, r.ID, err)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// List returns the requests sent by or addressed to email.
func (s *Service) List(ctx context.Context, email string) ([]*Request, error) {
	return s.store.ListFor(ctx, auth.NormalizeEmail(email))
}

// Respond lets the addressed mentor accept or decline a pending request.
func (s *Service) Respond(ctx context.Context, email, id string, status Status) (*Request, error) {
	email = auth.NormalizeEmail(email)
	if status != Accepted && status != Declined {
		return nil, &validate.Error{Issues: []validate.Issue{{Field: "status", Message: "must be accepted or declined"}}}
	}
	r, err := s.store.Update(ctx, id, func(r *Request) error {
		if r.MentorEmail != email {
			return ErrForbidden
		}
		if r.Status != Pending {
			return ErrNotPending
		}
		r.Status = status
		r.UpdatedAt = s.now()
		return nil
	})
	audit(ctx, string(status), email, id, err)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func audit(ctx context.Context, action, actor, id string, err error) {
	ev := applog.AuditEvent{
		Action:     action,
		Actor:      actor,
		Resource:   "connection_request",
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
	case errors.Is(err, ErrDuplicate):
		return "duplicate"
	case errors.Is(err, ErrNotPending):
		return "not_pending"
	default:
		return "internal_error"
	}
}
