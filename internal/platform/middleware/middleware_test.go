package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestCORSWildcard(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/mentors", nil)
	req.Header.Set("Origin", "http://example.com")
	resp := httptest.NewRecorder()

	CORS(nil)(okHandler()).ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected '*', got %q", got)
	}
	if got := resp.Header().Get("Access-Control-Allow-Credentials"); got != "" {
		t.Fatalf("expected no credentials header, got %q", got)
	}
}

func TestCORSConfiguredOrigin(t *testing.T) {
	h := CORS([]string{"http://localhost:3000"})(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/api/mentors", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("expected echoed origin, got %q", got)
	}
	if got := resp.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("expected credentials allowed, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/mentors", nil)
	req.Header.Set("Origin", "http://evil.example")
	resp = httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("expected no allow-origin for unknown origin, got %q", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	called := false
	h := CORS(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

	req := httptest.NewRequest(http.MethodOptions, "/api/mentorProfile", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPut)
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)

	if called {
		t.Fatal("preflight must not reach the handler")
	}
	if !strings.Contains(resp.Header().Get("Access-Control-Allow-Methods"), http.MethodPut) {
		t.Fatalf("expected PUT allowed, got %q", resp.Header().Get("Access-Control-Allow-Methods"))
	}
}

func TestRequestID(t *testing.T) {
	tests := []struct {
		name    string
		inbound string
		reuse   bool
	}{
		{name: "generated", inbound: ""},
		{name: "reused", inbound: "req-123", reuse: true},
		{name: "control characters", inbound: "bad\nid"},
		{name: "too long", inbound: strings.Repeat("a", maxRequestIDLength+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			h := RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				seen = middleware.GetReqID(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.inbound != "" {
				req.Header.Set(middleware.RequestIDHeader, tt.inbound)
			}
			resp := httptest.NewRecorder()
			h.ServeHTTP(resp, req)

			if seen == "" || resp.Header().Get(middleware.RequestIDHeader) != seen {
				t.Fatalf("context ID %q and header %q must match", seen, resp.Header().Get(middleware.RequestIDHeader))
			}
			if tt.reuse != (seen == tt.inbound) {
				t.Fatalf("reuse=%v but got %q for inbound %q", tt.reuse, seen, tt.inbound)
			}
		})
	}
}

func TestVaryAndSecurity(t *testing.T) {
	h := Vary()(Security("/api-docs")(okHandler()))

	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/mentors", nil))
	if resp.Header().Get("Vary") != "Accept" {
		t.Fatalf("expected Vary: Accept, got %q", resp.Header().Get("Vary"))
	}
	if resp.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatal("expected security headers")
	}

	resp = httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api-docs", nil))
	if resp.Header().Get("X-Frame-Options") != "" {
		t.Fatal("docs path must skip security headers")
	}
}

func TestSecurityHSTS(t *testing.T) {
	h := Security()(okHandler())

	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/api/mentors", nil))
	if got := resp.Header().Get("Strict-Transport-Security"); got != "" {
		t.Fatalf("expected no HSTS over plain HTTP, got %q", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/mentors", nil)
	req.Header.Set("X-Forwarded-Proto", "https, http")
	resp = httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	if got := resp.Header().Get("Strict-Transport-Security"); !strings.HasPrefix(got, "max-age=") {
		t.Fatalf("expected HSTS behind an HTTPS proxy, got %q", got)
	}
}
