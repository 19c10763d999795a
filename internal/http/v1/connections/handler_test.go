package connections

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
	"github.com/careercanvas/career-canvas-api/internal/service/connection"
	"github.com/careercanvas/career-canvas-api/internal/service/mentor"
)

func init() {
	respond.Install()
}

var testNow = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	mentors := mentor.NewMemoryStore()
	err := mentors.Create(context.Background(), &mentor.Mentor{
		ID: "m-sarah", Email: "sarah.johnson@example.com", Name: "Sarah Johnson",
		Title: "Senior Software Engineer", Department: "Engineering", Bio: "Backend.",
		Skills: []string{"Go"}, Availability: mentor.Available, Rating: 4.9,
		CreatedAt: testNow, UpdatedAt: testNow,
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
		respond.Recoverer(),
	)
	api := humachi.New(router, huma.DefaultConfig("ConnectionsTest", "test"))
	api.UseMiddleware(auth.NewAuthMiddleware(api, &auth.MockVerifier{Users: map[string]*auth.Identity{
		"kim":   {ID: "u-1", Email: "kim@example.com", Name: "Kim Lee"},
		"sarah": {ID: "u-2", Email: "sarah.johnson@example.com", Name: "Sarah Johnson"},
		"ana":   {ID: "u-3", Email: "ana@example.com", Name: "Ana Silva"},
	}}))
	Register(api, connection.NewService(connection.NewMemoryStore(), mentors, func() time.Time { return testNow }))
	return router
}

func do(router http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

type requestBody struct {
	Success bool    `json:"success"`
	Request Request `json:"request"`
}

func create(t *testing.T, router http.Handler, token, mentorID string) *httptest.ResponseRecorder {
	t.Helper()
	return do(router, http.MethodPost, "/api/connectionRequests", token, `{"mentorId":"`+mentorID+`","message":"Hi Sarah!"}`)
}

func TestCreateConnectionRequest(t *testing.T) {
	router := newTestRouter(t)

	resp := create(t, router, "kim", "m-sarah")
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var body requestBody
	_ = json.Unmarshal(resp.Body.Bytes(), &body)
	r := body.Request
	if r.Status != "pending" || r.MentorName != "Sarah Johnson" || r.RequesterEmail != "kim@example.com" {
		t.Errorf("request = %+v", r)
	}

	tests := []struct {
		name     string
		token    string
		mentorID string
		status   int
		code     string
	}{
		{"duplicate pending", "kim", "m-sarah", http.StatusConflict, respond.CodeConflict},
		{"own profile", "sarah", "m-sarah", http.StatusForbidden, respond.CodeForbidden},
		{"unknown mentor", "kim", "m-nobody", http.StatusNotFound, respond.CodeNotFound},
		{"no token", "", "m-sarah", http.StatusUnauthorized, respond.CodeAuthRequired},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := create(t, router, tt.token, tt.mentorID)
			if resp.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, resp.Code)
			}
			var env respond.ErrorEnvelope
			_ = json.Unmarshal(resp.Body.Bytes(), &env)
			if env.Error.Code != tt.code {
				t.Errorf("code = %s, want %s", env.Error.Code, tt.code)
			}
		})
	}
}

func TestListAndRespond(t *testing.T) {
	router := newTestRouter(t)

	var created requestBody
	_ = json.Unmarshal(create(t, router, "kim", "m-sarah").Body.Bytes(), &created)
	id := created.Request.ID

	for _, token := range []string{"kim", "sarah"} {
		resp := do(router, http.MethodGet, "/api/connectionRequests", token, "")
		var body struct {
			Requests []Request `json:"requests"`
		}
		_ = json.Unmarshal(resp.Body.Bytes(), &body)
		if len(body.Requests) != 1 || body.Requests[0].ID != id {
			t.Errorf("%s sees %+v", token, body.Requests)
		}
	}
	resp := do(router, http.MethodGet, "/api/connectionRequests", "ana", "")
	if !strings.Contains(resp.Body.String(), `"requests":[]`) {
		t.Errorf("unrelated user sees %s", resp.Body.String())
	}

	if resp := do(router, http.MethodPatch, "/api/connectionRequests/"+id, "kim", `{"status":"accepted"}`); resp.Code != http.StatusForbidden {
		t.Errorf("requester accepting: expected 403, got %d", resp.Code)
	}
	if resp := do(router, http.MethodPatch, "/api/connectionRequests/"+id, "sarah", `{"status":"maybe"}`); resp.Code != http.StatusBadRequest {
		t.Errorf("bad status: expected 400, got %d", resp.Code)
	}

	resp = do(router, http.MethodPatch, "/api/connectionRequests/"+id, "sarah", `{"status":"accepted"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body requestBody
	_ = json.Unmarshal(resp.Body.Bytes(), &body)
	if body.Request.Status != "accepted" {
		t.Errorf("status = %s", body.Request.Status)
	}

	if resp := do(router, http.MethodPatch, "/api/connectionRequests/"+id, "sarah", `{"status":"declined"}`); resp.Code != http.StatusConflict {
		t.Errorf("answered twice: expected 409, got %d", resp.Code)
	}
	if resp := create(t, router, "kim", "m-sarah"); resp.Code != http.StatusCreated {
		t.Errorf("new request after answer: expected 201, got %d", resp.Code)
	}
}
