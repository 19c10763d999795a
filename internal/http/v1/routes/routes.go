package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/careercanvas/career-canvas-api/internal/http/v1/authn"
	"github.com/careercanvas/career-canvas-api/internal/http/v1/connections"
	"github.com/careercanvas/career-canvas-api/internal/http/v1/interview"
	"github.com/careercanvas/career-canvas-api/internal/http/v1/mentors"
	"github.com/careercanvas/career-canvas-api/internal/http/v1/preferences"
	"github.com/careercanvas/career-canvas-api/internal/http/v1/stories"
	"github.com/careercanvas/career-canvas-api/internal/platform/auth"
)

// Services are the handlers' dependencies.
type Services struct {
	Mentors     mentors.Service
	Preferences preferences.Service
	Stories     stories.Service
	Connections connections.Service
	Interview   interview.Service
	Auth        authn.Gateway
	// FrontendURL receives the session token after OAuth login when set.
	FrontendURL string
}

// Register wires all HTTP routes into the provided API router.
func Register(api huma.API, verifier auth.Verifier, svc Services) {
	// Apply auth middleware for protected endpoints
	api.UseMiddleware(auth.NewAuthMiddleware(api, verifier))

	mentors.Register(api, svc.Mentors)
	preferences.Register(api, svc.Preferences)
	stories.Register(api, svc.Stories)
	connections.Register(api, svc.Connections)
	interview.Register(api, svc.Interview)
	authn.Register(api, svc.Auth, svc.FrontendURL)
}
