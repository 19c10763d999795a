package authn

import (
	"github.com/careercanvas/career-canvas-api/internal/platform/respond"
	"github.com/careercanvas/career-canvas-api/internal/platform/timeutil"
)

// User is the signed-in identity.
type User struct {
	ID       string `json:"id"                doc:"Account identifier"`
	Email    string `json:"email"             doc:"Email address"       example:"kim@example.com"`
	Name     string `json:"name"              doc:"Display name"        example:"Kim Lee"`
	Provider string `json:"provider"          doc:"Identity provider"   example:"google"`
	Picture  string `json:"picture,omitempty" doc:"Avatar URL"`
}

// RedirectOutput is a 302 to Location.
type RedirectOutput struct {
	Status   int
	Location string `header:"Location"`
}

// CallbackOutput carries the session token as JSON, or redirects to the
// frontend when one is configured.
type CallbackOutput struct {
	Status   int
	Location string `header:"Location"`
	Body     *CallbackBody
}

// CallbackBody is the JSON callback response.
type CallbackBody struct {
	respond.Meta
	Token     string        `json:"token"     doc:"Bearer session token"`
	ExpiresAt timeutil.Time `json:"expiresAt" doc:"Token expiry"`
	User      User          `json:"user"`
}

// MeOutput for GET /api/auth/me.
type MeOutput struct {
	Body struct {
		respond.Meta
		User User `json:"user"`
	}
}

// ProvidersOutput for GET /api/auth/providers.
type ProvidersOutput struct {
	Body struct {
		respond.Meta
		Providers []string `json:"providers" doc:"Configured identity providers"`
	}
}
