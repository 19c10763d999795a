package auth

import (
	"context"

	fbauth "firebase.google.com/go/v4/auth"
)

// ProviderFirebase marks identities verified from Firebase ID tokens.
const ProviderFirebase = "firebase"

// FirebaseVerifier implements Verifier using Firebase Admin SDK.
type FirebaseVerifier struct {
	client *fbauth.Client
}

// NewFirebaseVerifier creates a new verifier with the given auth client.
func NewFirebaseVerifier(client *fbauth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

// Verify validates a Firebase ID token and checks for revocation.
func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*Identity, error) {
	token, err := v.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		switch {
		case fbauth.IsCertificateFetchFailed(err):
			return nil, ErrCertificateFetch
		case fbauth.IsIDTokenExpired(err):
			return nil, ErrTokenExpired
		case fbauth.IsIDTokenRevoked(err):
			return nil, ErrTokenRevoked
		case fbauth.IsUserDisabled(err):
			return nil, ErrUserDisabled
		default:
			return nil, ErrInvalidToken
		}
	}
	return identityFromClaims(token.UID, token.Claims)
}

func identityFromClaims(uid string, claims map[string]any) (*Identity, error) {
	email, _ := claims["email"].(string)
	if email == "" {
		return nil, ErrNoEmail
	}
	name, _ := claims["name"].(string)
	picture, _ := claims["picture"].(string)
	return &Identity{
		ID:       uid,
		Email:    NormalizeEmail(email),
		Name:     name,
		Provider: ProviderFirebase,
		Picture:  picture,
	}, nil
}

var _ Verifier = (*FirebaseVerifier)(nil)
