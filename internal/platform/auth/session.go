package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// DefaultSessionTTL is how long issued session tokens stay valid.
	DefaultSessionTTL = 7 * 24 * time.Hour
	stateTTL          = 10 * time.Minute

	sessionAudience = "career-canvas"
	stateAudience   = "career-canvas-oauth-state"
	issuer          = "career-canvas-api"
)

type sessionClaims struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
	Picture  string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

type stateClaims struct {
	Provider string `json:"provider"`
	jwt.RegisteredClaims
}

// Sessions issues and verifies HS256 session and OAuth state tokens.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// SessionOption configures Sessions.
type SessionOption func(*Sessions)

// WithTTL overrides DefaultSessionTTL.
func WithTTL(ttl time.Duration) SessionOption {
	return func(s *Sessions) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) SessionOption {
	return func(s *Sessions) {
		s.now = now
	}
}

// NewSessions returns a token service signing with secret.
func NewSessions(secret string, opts ...SessionOption) (*Sessions, error) {
	if secret == "" {
		return nil, errors.New("session secret is required")
	}
	s := &Sessions{secret: []byte(secret), ttl: DefaultSessionTTL, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue signs a session token embedding id and returns it with its expiry.
func (s *Sessions) Issue(id Identity) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.ttl)
	claims := sessionClaims{
		Email:    id.Email,
		Name:     id.Name,
		Provider: id.Provider,
		Picture:  id.Picture,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.ID,
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{sessionAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session: %w", err)
	}
	return signed, exp, nil
}

// Verify validates a session token.
func (s *Sessions) Verify(_ context.Context, token string) (*Identity, error) {
	var claims sessionClaims
	if err := s.parse(token, &claims, sessionAudience); err != nil {
		return nil, err
	}
	if claims.Email == "" {
		return nil, ErrNoEmail
	}
	return &Identity{
		ID:       claims.Subject,
		Email:    claims.Email,
		Name:     claims.Name,
		Provider: claims.Provider,
		Picture:  claims.Picture,
	}, nil
}

// IssueState returns a short-lived token bound to provider, used as the OAuth state parameter.
func (s *Sessions) IssueState(provider string) (string, error) {
	now := s.now()
	claims := stateClaims{
		Provider: provider,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{stateAudience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(stateTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// VerifyState checks that state was issued by us for provider and has not expired.
func (s *Sessions) VerifyState(state, provider string) error {
	var claims stateClaims
	if err := s.parse(state, &claims, stateAudience); err != nil {
		return err
	}
	if claims.Provider != provider {
		return ErrInvalidToken
	}
	return nil
}

func (s *Sessions) parse(token string, claims jwt.Claims, audience string) error {
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(audience),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(s.now),
	)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	default:
		return ErrInvalidToken
	}
}

var _ Verifier = (*Sessions)(nil)
