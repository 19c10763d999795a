package auth

import (
	"context"
	"errors"
)

// Chain tries each verifier in order and returns the first identity.
// A token that a verifier recognises but rejects (expired, revoked) stops the chain.
type Chain []Verifier

// Verify implements Verifier.
func (c Chain) Verify(ctx context.Context, token string) (*Identity, error) {
	lastErr := ErrInvalidToken
	for _, v := range c {
		if v == nil {
			continue
		}
		id, err := v.Verify(ctx, token)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, ErrInvalidToken) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

var _ Verifier = Chain(nil)
