package auth

import (
	"context"
)

// MockVerifier provides fake token verification for tests. When Users is set
// the token selects the identity; unknown tokens are rejected.
type MockVerifier struct {
	User  *Identity
	Users map[string]*Identity
	Error error
}

// Verify returns the configured identity or error.
func (m *MockVerifier) Verify(_ context.Context, token string) (*Identity, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	if m.Users != nil {
		id, ok := m.Users[token]
		if !ok {
			return nil, ErrInvalidToken
		}
		return id, nil
	}
	return m.User, nil
}

// TestUser returns a standard test identity.
func TestUser() *Identity {
	return &Identity{
		ID:       "test-user-123",
		Email:    "test@example.com",
		Name:     "Test User",
		Provider: "google",
	}
}

var _ Verifier = (*MockVerifier)(nil)
