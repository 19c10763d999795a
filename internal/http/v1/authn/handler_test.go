package authn

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	humachi "github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/careercanvas/career-canvas-api/internal/platform/auth"
	applog "github.com/careercanvas/career-canvas-api/internal/platform/logging"
	appmiddleware "github.com/careercanvas/career-canvas-api/internal/platform/middleware"
	"github.com/careercanvas/career-canvas-api/internal/platform/respond"
	"github.com/careercanvas/career-canvas-api/internal/service/identity"
)

func init() {
	respond.Install()
}

type mockGateway struct {
	login       *identity.Login
	err         error
	gotProvider string
	gotCode     string
}

func (m *mockGateway) Providers() []string {
	return []string{identity.Google, identity.LinkedIn}
}

func (m *mockGateway) LoginURL(provider string) (string, error) {
	if provider != identity.Google {
		return "", identity.ErrUnknownProvider
	}
	return "https://accounts.example.com/auth?state=signed", nil
}

func (m *mockGateway) Callback(_ context.Context, provider, code, _ string) (*identity.Login, error) {
	m.gotProvider = provider
	m.gotCode = code
	if m.err != nil {
		return nil, m.err
	}
	return m.login, nil
}

func testLogin() *identity.Login {
	return &identity.Login{
		Token:     "session.jwt.token",
		ExpiresAt: time.Date(2025, 6, 8, 9, 0, 0, 0, time.UTC),
		User:      &identity.User{ID: "u-1", Email: "kim@example.com", Name: "Kim Lee", Provider: identity.Google},
	}
}

func newTestRouter(gw Gateway, frontendURL string) chi.Router {
	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
		respond.Recoverer(),
	)
	api := humachi.New(router, huma.DefaultConfig("AuthTest", "test"))
	api.UseMiddleware(auth.NewAuthMiddleware(api, &auth.MockVerifier{User: auth.TestUser()}))
	Register(api, gw, frontendURL)
	return router
}

func get(router http.Handler, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestLoginRedirects(t *testing.T) {
	router := newTestRouter(&mockGateway{}, "")

	resp := get(router, "/api/auth/google/login", "")
	if resp.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d: %s", resp.Code, resp.Body.String())
	}
	if loc := resp.Header().Get("Location"); loc != "https://accounts.example.com/auth?state=signed" {
		t.Errorf("Location = %q", loc)
	}

	if resp := get(router, "/api/auth/microsoft/login", ""); resp.Code != http.StatusNotFound {
		t.Errorf("unconfigured provider: expected 404, got %d", resp.Code)
	}
	if resp := get(router, "/api/auth/github/login", ""); resp.Code != http.StatusBadRequest {
		t.Errorf("unknown provider: expected 400, got %d", resp.Code)
	}
}

func TestCallbackJSON(t *testing.T) {
	gw := &mockGateway{login: testLogin()}
	router := newTestRouter(gw, "")

	resp := get(router, "/api/auth/google/callback?code=abc&state=signed", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body CallbackBody
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.Token != "session.jwt.token" || body.User.Email != "kim@example.com" {
		t.Errorf("body = %+v", body)
	}
	if gw.gotProvider != "google" || gw.gotCode != "abc" {
		t.Errorf("gateway called with %q/%q", gw.gotProvider, gw.gotCode)
	}
}

func TestCallbackRedirectsToFrontend(t *testing.T) {
	router := newTestRouter(&mockGateway{login: testLogin()}, "https://app.example.com")

	resp := get(router, "/api/auth/google/callback?code=abc&state=signed", "")
	if resp.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", resp.Code)
	}
	if loc := resp.Header().Get("Location"); loc != "https://app.example.com/auth/callback#token=session.jwt.token" {
		t.Errorf("Location = %q", loc)
	}
}

func TestCallbackErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		err    error
		status int
	}{
		{"provider denied", "/api/auth/google/callback?error=access_denied", nil, http.StatusUnauthorized},
		{"missing code", "/api/auth/google/callback?state=signed", nil, http.StatusBadRequest},
		{"bad state", "/api/auth/google/callback?code=abc&state=forged", identity.ErrInvalidState, http.StatusBadRequest},
		{"exchange failed", "/api/auth/google/callback?code=abc&state=signed", identity.ErrExchange, http.StatusUnauthorized},
		{"no email", "/api/auth/google/callback?code=abc&state=signed", auth.ErrNoEmail, http.StatusUnauthorized},
		{"user info down", "/api/auth/google/callback?code=abc&state=signed", identity.ErrUserInfo, http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&mockGateway{err: tt.err}, "")
			resp := get(router, tt.target, "")
			if resp.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, resp.Code, resp.Body.String())
			}
			if !strings.Contains(resp.Body.String(), `"success":false`) {
				t.Errorf("body = %s, want error envelope", resp.Body.String())
			}
		})
	}
}

func TestMe(t *testing.T) {
	router := newTestRouter(&mockGateway{}, "")

	if resp := get(router, "/api/auth/me", ""); resp.Code != http.StatusUnauthorized {
		t.Fatalf("no token: expected 401, got %d", resp.Code)
	}
	resp := get(router, "/api/auth/me", "valid-token")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var body struct {
		User User `json:"user"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &body)
	if body.User.Email != "test@example.com" || body.User.Provider != "google" {
		t.Errorf("user = %+v", body.User)
	}
}

func TestProviders(t *testing.T) {
	router := newTestRouter(&mockGateway{}, "")

	resp := get(router, "/api/auth/providers", "")
	if !strings.Contains(resp.Body.String(), `"providers":["google","linkedin"]`) {
		t.Errorf("body = %s", resp.Body.String())
	}
}
