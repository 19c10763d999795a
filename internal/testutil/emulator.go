// Package testutil connects tests to local Firebase emulators and MongoDB.
// Every helper skips the calling test when its backend is not running.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
)

// ProjectID is the demo project the emulators run under.
const ProjectID = "demo-career-canvas"

const fakeAPIKey = "fake-api-key" //nolint:gosec // emulator only

// AuthEmulatorHost is the Auth emulator address, FIREBASE_AUTH_EMULATOR_HOST or 127.0.0.1:9099.
func AuthEmulatorHost() string {
	return envOr("FIREBASE_AUTH_EMULATOR_HOST", "127.0.0.1:9099")
}

// FirestoreEmulatorHost is the Firestore emulator address, FIRESTORE_EMULATOR_HOST or 127.0.0.1:8081.
func FirestoreEmulatorHost() string {
	return envOr("FIRESTORE_EMULATOR_HOST", "127.0.0.1:8081")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func reachable(host string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", host)
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

// SkipIfEmulatorUnavailable skips unless both the Auth and Firestore emulators answer.
func SkipIfEmulatorUnavailable(t *testing.T) {
	t.Helper()
	if !reachable(AuthEmulatorHost()) || !reachable(FirestoreEmulatorHost()) {
		t.Skip("Firebase emulators not available")
	}
}

// SetupEmulator points the Firebase SDKs at the emulators for the test's duration.
func SetupEmulator(t *testing.T) {
	t.Helper()
	t.Setenv("FIREBASE_AUTH_EMULATOR_HOST", AuthEmulatorHost())
	t.Setenv("FIRESTORE_EMULATOR_HOST", FirestoreEmulatorHost())
}

// NewFirestoreClient returns a client on an emptied emulator database, emptied again on cleanup.
func NewFirestoreClient(t *testing.T) *firestore.Client {
	t.Helper()
	host := FirestoreEmulatorHost()
	if !reachable(host) {
		t.Skip("Firestore emulator not available")
	}
	t.Setenv("FIRESTORE_EMULATOR_HOST", host)
	ClearFirestore(t)

	client, err := firestore.NewClient(context.Background(), ProjectID)
	if err != nil {
		t.Fatalf("failed to create Firestore client: %v", err)
	}
	t.Cleanup(func() {
		ClearFirestore(t)
		_ = client.Close()
	})
	return client
}

// ClearAccounts removes all users from the Auth emulator.
func ClearAccounts(t *testing.T) {
	t.Helper()
	emulatorDelete(t, fmt.Sprintf("http://%s/emulator/v1/projects/%s/accounts", AuthEmulatorHost(), ProjectID))
}

// ClearFirestore removes all documents from the Firestore emulator.
func ClearFirestore(t *testing.T) {
	t.Helper()
	emulatorDelete(t, fmt.Sprintf("http://%s/emulator/v1/projects/%s/databases/(default)/documents",
		FirestoreEmulatorHost(), ProjectID))
}

// ClearEmulators clears both Auth accounts and Firestore documents.
func ClearEmulators(t *testing.T) {
	t.Helper()
	ClearAccounts(t)
	ClearFirestore(t)
}

func emulatorDelete(t *testing.T, url string) {
	t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), http.MethodDelete, url, nil)
	if err != nil {
		t.Fatalf("emulator request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("emulator reset %s: %v", url, err)
	}
	_ = resp.Body.Close()
}

// SignUpResponse is the Auth emulator's sign-up result.
type SignUpResponse struct {
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
}

// CreateTestUser signs up an email/password user on the Auth emulator and
// returns its ID token.
func CreateTestUser(t *testing.T, email, password string) *SignUpResponse {
	t.Helper()
	url := fmt.Sprintf("http://%s/identitytoolkit.googleapis.com/v1/accounts:signUp?key=%s",
		AuthEmulatorHost(), fakeAPIKey)
	body, err := json.Marshal(map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": true,
	})
	if err != nil {
		t.Fatalf("encode sign-up: %v", err)
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("sign-up returned %d", resp.StatusCode)
	}

	var out SignUpResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode sign-up: %v", err)
	}
	return &out
}
