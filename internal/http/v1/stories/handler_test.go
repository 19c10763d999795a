package stories

import (
	"context"
	"encoding/json"
	"fmt"
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
	"github.com/careercanvas/career-canvas-api/internal/service/story"
)

func init() {
	respond.Install()
}

var users = map[string]*auth.Identity{
	"kim": {ID: "u-1", Email: "kim@example.com", Name: "Kim Lee"},
	"ana": {ID: "u-2", Email: "ana@example.com", Name: "Ana Silva"},
}

func newTestRouter(t *testing.T) (chi.Router, *story.Service) {
	t.Helper()
	router := chi.NewRouter()
	router.Use(
		appmiddleware.RequestID(),
		chimiddleware.RealIP,
		applog.RequestLogger(),
		respond.Recoverer(),
	)
	api := humachi.New(router, huma.DefaultConfig("StoriesTest", "test"))
	api.UseMiddleware(auth.NewAuthMiddleware(api, &auth.MockVerifier{Users: users}))

	tick := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	svc := story.NewService(story.NewMemoryStore(), func() time.Time {
		tick = tick.Add(time.Minute)
		return tick
	})
	Register(api, svc)
	return router, svc
}

func seed(t *testing.T, svc *story.Service, n int) []*story.Story {
	t.Helper()
	out := make([]*story.Story, n)
	for i := range n {
		author := *users["kim"]
		category := "Leadership"
		if i%2 == 1 {
			author = *users["ana"]
			category = "Career Change"
		}
		s, err := svc.Create(context.Background(), author, story.Input{
			Title:    fmt.Sprintf("Story %d", i),
			Content:  "What I learned.",
			Category: category,
		})
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		out[i] = s
	}
	return out
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

type listBody struct {
	Success bool    `json:"success"`
	Stories []Story `json:"stories"`
	Total   int     `json:"total"`
	HasMore bool    `json:"hasMore"`
}

type storyBody struct {
	Success bool  `json:"success"`
	Story   Story `json:"story"`
}

func TestListStoriesPagination(t *testing.T) {
	router, svc := newTestRouter(t)
	seeded := seed(t, svc, 5)

	resp := do(router, http.MethodGet, "/api/stories?limit=2", "", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body listBody
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Total != 5 || !body.HasMore || len(body.Stories) != 2 {
		t.Fatalf("body = %+v", body)
	}
	if body.Stories[0].ID != seeded[4].ID {
		t.Errorf("first story = %s, want newest", body.Stories[0].Title)
	}
	link := resp.Header().Get("Link")
	if !strings.Contains(link, `</api/stories?limit=2&offset=2>; rel="next"`) {
		t.Errorf("Link = %q", link)
	}

	resp = do(router, http.MethodGet, "/api/stories?limit=2&offset=4", "", "")
	_ = json.Unmarshal(resp.Body.Bytes(), &body)
	if body.HasMore || len(body.Stories) != 1 {
		t.Errorf("last page = %+v", body)
	}
	if link := resp.Header().Get("Link"); strings.Contains(link, "next") || !strings.Contains(link, "prev") {
		t.Errorf("last page Link = %q", link)
	}
}

func TestListStoriesFilters(t *testing.T) {
	router, svc := newTestRouter(t)
	seed(t, svc, 4)

	resp := do(router, http.MethodGet, "/api/stories?authorEmail=ANA@example.com", "", "")
	var body listBody
	_ = json.Unmarshal(resp.Body.Bytes(), &body)
	if body.Total != 2 {
		t.Fatalf("total = %d, want 2", body.Total)
	}
	for _, s := range body.Stories {
		if s.AuthorEmail != "ana@example.com" {
			t.Errorf("story by %s in filtered listing", s.AuthorEmail)
		}
	}

	resp = do(router, http.MethodGet, "/api/stories?category=Leadership&limit=1", "", "")
	if link := resp.Header().Get("Link"); !strings.Contains(link, "category=Leadership") {
		t.Errorf("Link = %q, want category preserved", link)
	}
}

func TestCreateStory(t *testing.T) {
	router, _ := newTestRouter(t)

	resp := do(router, http.MethodPost, "/api/stories", "kim", `{"title":"  Moving into management ","content":"It was hard.","tags":["growth","Growth"]}`)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}
	var body storyBody
	_ = json.Unmarshal(resp.Body.Bytes(), &body)
	s := body.Story
	if s.Title != "Moving into management" || s.Category != story.DefaultCategory || s.AuthorName != "Kim Lee" {
		t.Errorf("story = %+v", s)
	}
	if len(s.Tags) != 1 {
		t.Errorf("tags = %v, want deduplicated", s.Tags)
	}
	if loc := resp.Header().Get("Location"); loc != "/api/stories/"+s.ID {
		t.Errorf("Location = %q", loc)
	}

	if resp := do(router, http.MethodPost, "/api/stories", "", `{"title":"x","content":"y"}`); resp.Code != http.StatusUnauthorized {
		t.Errorf("no token: expected 401, got %d", resp.Code)
	}
	if resp := do(router, http.MethodPost, "/api/stories", "kim", `{"title":" ","content":"y"}`); resp.Code != http.StatusBadRequest {
		t.Errorf("blank title: expected 400, got %d", resp.Code)
	}
}

func TestDeleteStory(t *testing.T) {
	router, svc := newTestRouter(t)
	s := seed(t, svc, 1)[0]

	resp := do(router, http.MethodDelete, "/api/stories/"+s.ID, "ana", "")
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
	if resp := do(router, http.MethodGet, "/api/stories/"+s.ID, "", ""); resp.Code != http.StatusOK {
		t.Fatalf("story missing after forbidden delete: %d", resp.Code)
	}

	if resp := do(router, http.MethodDelete, "/api/stories/"+s.ID, "kim", ""); resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp := do(router, http.MethodGet, "/api/stories/"+s.ID, "", ""); resp.Code != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", resp.Code)
	}
}

func TestLikeStory(t *testing.T) {
	router, svc := newTestRouter(t)
	s := seed(t, svc, 1)[0]

	for range 2 {
		resp := do(router, http.MethodPost, "/api/stories/"+s.ID+"/like", "ana", "")
		if resp.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.Code)
		}
	}
	resp := do(router, http.MethodGet, "/api/stories/"+s.ID, "", "")
	var body storyBody
	_ = json.Unmarshal(resp.Body.Bytes(), &body)
	if body.Story.Likes != 2 {
		t.Errorf("likes = %d, want 2", body.Story.Likes)
	}

	if resp := do(router, http.MethodPost, "/api/stories/missing/like", "ana", ""); resp.Code != http.StatusNotFound {
		t.Errorf("unknown story: expected 404, got %d", resp.Code)
	}
}
