package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"

	"github.com/careercanvas/career-canvas-api/internal/platform/respond"
)

func init() {
	respond.Install()
}

type testOutput struct {
	Body struct {
		Email string `json:"email"`
	}
}

func setupTestAPI(verifier Verifier, requireAuth bool) (*chi.Mux, *bool) {
	router := chi.NewRouter()
	api := humachi.New(router, huma.DefaultConfig("Test", "1.0.0"))
	api.UseMiddleware(NewAuthMiddleware(api, verifier))

	var security []map[string][]string
	if requireAuth {
		security = []map[string][]string{{"bearerAuth": {}}}
	}

	called := false
	huma.Register(api, huma.Operation{
		OperationID: "test-endpoint",
		Method:      http.MethodGet,
		Path:        "/test",
		Security:    security,
	}, func(ctx context.Context, _ *struct{}) (*testOutput, error) {
		called = true
		out := &testOutput{}
		if id := UserFromContext(ctx); id != nil {
			out.Body.Email = id.Email
		}
		return out, nil
	})
	return router, &called
}

func TestMiddlewareSkipsUnsecuredEndpoints(t *testing.T) {
	router, called := setupTestAPI(&MockVerifier{Error: ErrInvalidToken}, false)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/test", nil))

	if rec.Code != http.StatusOK || !*called {
		t.Fatalf("expected 200 and handler call, got %d", rec.Code)
	}
}

func TestMiddlewareRejects(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		verifier Verifier
		status   int
	}{
		{name: "missing header", verifier: &MockVerifier{User: TestUser()}, status: http.StatusUnauthorized},
		{name: "malformed header", header: "Token abc", verifier: &MockVerifier{User: TestUser()}, status: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer bad", verifier: &MockVerifier{Error: ErrInvalidToken}, status: http.StatusUnauthorized},
		{name: "expired token", header: "Bearer old", verifier: &MockVerifier{Error: ErrTokenExpired}, status: http.StatusUnauthorized},
		{name: "certificate fetch", header: "Bearer t", verifier: &MockVerifier{Error: ErrCertificateFetch}, status: http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, called := setupTestAPI(tt.verifier, true)
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
			if *called {
				t.Fatal("handler must not run when auth fails")
			}
			var env respond.ErrorEnvelope
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if tt.status == http.StatusUnauthorized && env.Error.Code != respond.CodeAuthRequired {
				t.Fatalf("expected AUTH_REQUIRED, got %s", env.Error.Code)
			}
		})
	}
}

func TestMiddlewareStoresIdentity(t *testing.T) {
	router, _ := setupTestAPI(&MockVerifier{User: TestUser()}, true)
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer good")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var out struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Email != "test@example.com" {
		t.Fatalf("unexpected email %q", out.Email)
	}
}

func TestCategorizeAuthError(t *testing.T) {
	tests := map[error]string{
		ErrTokenExpired:     "token_expired",
		ErrTokenRevoked:     "token_revoked",
		ErrUserDisabled:     "user_disabled",
		ErrCertificateFetch: "certificate_fetch_failed",
		ErrInvalidToken:     "invalid_token",
		ErrNoEmail:          "no_email",
		context.Canceled:    "unknown",
	}
	for err, want := range tests {
		if got := categorizeAuthError(err); got != want {
			t.Errorf("categorizeAuthError(%v) = %q, want %q", err, got, want)
		}
	}
}

func TestContextWithUser(t *testing.T) {
	ctx := ContextWithUser(context.Background(), TestUser())
	if UserFromContext(ctx).Email != "test@example.com" {
		t.Fatal("expected identity in context")
	}
	if UserFromContext(context.Background()) != nil {
		t.Fatal("expected nil identity")
	}
}
