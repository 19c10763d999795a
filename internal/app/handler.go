package app

import (
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/careercanvas/career-canvas-api/internal/http/health"
	"github.com/careercanvas/career-canvas-api/internal/http/v1/routes"
	"github.com/careercanvas/career-canvas-api/internal/platform/auth"
	"github.com/careercanvas/career-canvas-api/internal/platform/config"
	applog "github.com/careercanvas/career-canvas-api/internal/platform/logging"
	appmiddleware "github.com/careercanvas/career-canvas-api/internal/platform/middleware"
	"github.com/careercanvas/career-canvas-api/internal/platform/respond"
	"github.com/careercanvas/career-canvas-api/internal/platform/timeutil"
	"github.com/careercanvas/career-canvas-api/internal/service/connection"
	"github.com/careercanvas/career-canvas-api/internal/service/identity"
	"github.com/careercanvas/career-canvas-api/internal/service/interview"
	"github.com/careercanvas/career-canvas-api/internal/service/mentor"
	"github.com/careercanvas/career-canvas-api/internal/service/preferences"
	"github.com/careercanvas/career-canvas-api/internal/service/story"
)

// Title is the OpenAPI document title.
const Title = "Career Canvas API"

// DocsPath serves the interactive API documentation.
const DocsPath = "/api-docs"

const aiTimeout = 20 * time.Second

// NewHandler builds the router, middleware stack and API over b's stores.
func NewHandler(cfg *config.Config, b *Backend, version string) (http.Handler, error) {
	respond.Install()

	sessions, err := auth.NewSessions(cfg.JWTSecret, auth.WithTTL(cfg.JWTTTL))
	if err != nil {
		return nil, fmt.Errorf("app: sessions: %w", err)
	}
	verifier := auth.Chain{sessions}
	if b.Firebase != nil && b.Firebase.Auth != nil {
		verifier = append(verifier, auth.NewFirebaseVerifier(b.Firebase.Auth))
	}

	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	// Base middleware stack
	router.Use(
		appmiddleware.Security(DocsPath),
		appmiddleware.Vary(),
		appmiddleware.CORS(cfg.CORSOrigins),
		appmiddleware.RequestID(),
		// RealIP trusts X-Forwarded-For; only deploy behind a trusted proxy.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(1<<20), // 1 MB limit
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)
	router.Get("/health", health.Handler(version))

	api := humachi.New(router, apiConfig(version))
	addCBORContent(api.OpenAPI())

	routes.Register(api, verifier, services(cfg, b.Stores, sessions))
	return router, nil
}

func apiConfig(version string) huma.Config {
	cfg := huma.DefaultConfig(Title, version)
	cfg.DocsPath = DocsPath
	cfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearerAuth": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
			Description:  "Session token from /api/auth/{provider}/callback or a Firebase ID token.",
		},
	}
	return cfg
}

// addCBORContent advertises application/cbor wherever JSON is accepted or returned.
func addCBORContent(oapi *huma.OpenAPI) {
	oapi.OnAddOperation = append(oapi.OnAddOperation, func(_ *huma.OpenAPI, op *huma.Operation) {
		if op.RequestBody != nil && op.RequestBody.Content != nil {
			if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
				op.RequestBody.Content["application/cbor"] = jsonContent
			}
		}
		for _, resp := range op.Responses {
			if resp.Content == nil {
				continue
			}
			if jsonContent, ok := resp.Content["application/json"]; ok {
				resp.Content["application/cbor"] = jsonContent
			}
		}
	})
}

func services(cfg *config.Config, s *Stores, sessions *auth.Sessions) routes.Services {
	clock := timeutil.SystemClock
	prefs := preferences.NewService(s.Preferences, clock)

	var ai interview.Completer
	if cfg.AIAPIKey != "" {
		ai = interview.NewClient(&http.Client{Timeout: aiTimeout},
			interview.WithBaseURL(cfg.AIBaseURL),
			interview.WithAPIKey(cfg.AIAPIKey),
			interview.WithModel(cfg.AIModel),
		)
	}

	return routes.Services{
		Mentors:     mentor.NewService(s.Mentors, prefs, mentor.WithClock(clock)),
		Preferences: prefs,
		Stories:     story.NewService(s.Stories, clock),
		Connections: connection.NewService(s.Connections, s.Mentors, clock),
		Interview:   interview.NewService(ai, s.Interviews, clock),
		Auth:        identity.NewGateway(sessions, s.Users, providers(cfg), identity.WithClock(clock)),
		FrontendURL: cfg.FrontendURL,
	}
}

// providers returns the OAuth providers whose credentials are configured.
func providers(cfg *config.Config) []*identity.Provider {
	var out []*identity.Provider
	if c := cfg.Google; c.Configured() {
		out = append(out, identity.NewGoogle(credentials(c), cfg.OAuthRedirectBaseURL))
	}
	if c := cfg.Microsoft; c.Configured() {
		out = append(out, identity.NewMicrosoft(credentials(c), cfg.OAuthRedirectBaseURL))
	}
	if c := cfg.LinkedIn; c.Configured() {
		out = append(out, identity.NewLinkedIn(credentials(c), cfg.OAuthRedirectBaseURL))
	}
	return out
}

func credentials(c config.OAuthClient) identity.Credentials {
	return identity.Credentials{ClientID: c.ClientID, ClientSecret: c.ClientSecret, Tenant: c.Tenant}
}
