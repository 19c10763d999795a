package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fxamacker/cbor/v2"

	"github.com/careercanvas/career-canvas-api/internal/platform/auth"
	"github.com/careercanvas/career-canvas-api/internal/platform/config"
	"github.com/careercanvas/career-canvas-api/internal/platform/respond"
	"github.com/careercanvas/career-canvas-api/internal/service/identity"
)

func testConfig() *config.Config {
	return &config.Config{
		StoreBackend: config.BackendMemory,
		CORSOrigins:  []string{"*"},
		JWTSecret:    "app-test-secret",
		JWTTTL:       auth.DefaultSessionTTL,
		SeedMentors:  true,
	}
}

func testHandler(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	b, err := Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = b.Close(context.Background()) })
	h, err := NewHandler(cfg, b, "test")
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	return h
}

func serve(h http.Handler, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func TestHealth(t *testing.T) {
	resp := serve(testHandler(t, testConfig()), http.MethodGet, "/health", nil)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"healthy"`) {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
	if got := resp.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("expected security headers, got X-Content-Type-Options=%q", got)
	}
}

func TestNotFoundReturnsEnvelope(t *testing.T) {
	resp := serve(testHandler(t, testConfig()), http.MethodGet, "/missing", nil)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
	var env respond.ErrorEnvelope
	if err := json.Unmarshal(resp.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if env.Success || env.Error.Code != respond.CodeNotFound {
		t.Fatalf("unexpected envelope %+v", env)
	}
}

func TestMethodNotAllowedReturnsEnvelope(t *testing.T) {
	resp := serve(testHandler(t, testConfig()), http.MethodPatch, "/health", nil)

	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", resp.Code)
	}
	var env respond.ErrorEnvelope
	if err := json.Unmarshal(resp.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if env.Error.Code != respond.CodeMethodNotAllowed {
		t.Fatalf("unexpected code %q", env.Error.Code)
	}
}

func TestSeededDirectory(t *testing.T) {
	h := testHandler(t, testConfig())

	resp := serve(h, http.MethodGet, "/api/mentors?departments=Engineering&minRating=4.5", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		Success bool `json:"success"`
		Mentors []struct {
			Name string `json:"name"`
		} `json:"mentors"`
		Total int `json:"total"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if !body.Success || body.Total != 1 || len(body.Mentors) != 1 || body.Mentors[0].Name != "Sarah Johnson" {
		t.Fatalf("unexpected listing %+v", body)
	}
}

func TestCORSPreflight(t *testing.T) {
	cfg := testConfig()
	cfg.CORSOrigins = []string{"https://app.example.com"}
	h := testHandler(t, cfg)

	resp := serve(h, http.MethodOptions, "/api/mentors", map[string]string{
		"Origin":                        "https://app.example.com",
		"Access-Control-Request-Method": http.MethodGet,
	})
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Fatalf("expected allowed origin, got %q", got)
	}

	resp = serve(h, http.MethodOptions, "/api/mentors", map[string]string{
		"Origin":                        "https://evil.example.com",
		"Access-Control-Request-Method": http.MethodGet,
	})
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allowed origin, got %q", got)
	}
}

func TestOpenAPIDocument(t *testing.T) {
	resp := serve(testHandler(t, testConfig()), http.MethodGet, "/openapi.json", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Components struct {
			SecuritySchemes map[string]any `json:"securitySchemes"`
		} `json:"components"`
		Paths map[string]map[string]struct {
			RequestBody *struct {
				Content map[string]any `json:"content"`
			} `json:"requestBody"`
			Responses map[string]struct {
				Content map[string]any `json:"content"`
			} `json:"responses"`
		} `json:"paths"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &doc); err != nil {
		t.Fatalf("failed to unmarshal openapi: %v", err)
	}
	if doc.Info.Title != Title {
		t.Fatalf("expected title %q, got %q", Title, doc.Info.Title)
	}
	if _, ok := doc.Components.SecuritySchemes["bearerAuth"]; !ok {
		t.Fatal("expected bearerAuth security scheme")
	}
	create := doc.Paths["/api/createMentorProfile"]["post"]
	if create.RequestBody == nil {
		t.Fatal("expected request body on createMentorProfile")
	}
	if _, ok := create.RequestBody.Content["application/cbor"]; !ok {
		t.Fatal("expected application/cbor request content")
	}
	list := doc.Paths["/api/mentors"]["get"]
	if _, ok := list.Responses["200"].Content["application/cbor"]; !ok {
		t.Fatal("expected application/cbor response content")
	}
}

func TestCBORAcceptHeader(t *testing.T) {
	resp := serve(testHandler(t, testConfig()), http.MethodGet, "/api/mentors", map[string]string{
		"Accept": "application/cbor",
	})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/cbor" {
		t.Fatalf("expected application/cbor, got %q", ct)
	}
	var body map[string]any
	if err := cbor.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode cbor: %v", err)
	}
	if body["success"] != true {
		t.Fatalf("expected success, got %v", body["success"])
	}
}

func TestProvidersFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.OAuthRedirectBaseURL = "https://api.example.com"
	cfg.Google = config.OAuthClient{ClientID: "g", ClientSecret: "gs"}
	cfg.LinkedIn = config.OAuthClient{ClientID: "l"}

	got := providers(cfg)
	if len(got) != 1 || got[0].Name != identity.Google {
		t.Fatalf("expected only google, got %d providers", len(got))
	}
	if want := "https://api.example.com/api/auth/google/callback"; got[0].Config.RedirectURL != want {
		t.Fatalf("expected redirect %q, got %q", want, got[0].Config.RedirectURL)
	}
}

func TestOpenRejectsUnreachableMongo(t *testing.T) {
	cfg := testConfig()
	cfg.StoreBackend = config.BackendMongo
	cfg.MongoURI = "not-a-uri"
	cfg.MongoDatabase = "x"

	if _, err := Open(context.Background(), cfg); err == nil {
		t.Fatal("expected error for invalid mongo uri")
	}
}
