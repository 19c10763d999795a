// Package authn exposes the OAuth sign-in endpoints.
package authn

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	"github.com/careercanvas/career-canvas-api/internal/platform/auth"
	applog "github.com/careercanvas/career-canvas-api/internal/platform/logging"
	"github.com/careercanvas/career-canvas-api/internal/platform/respond"
	"github.com/careercanvas/career-canvas-api/internal/platform/timeutil"
	"github.com/careercanvas/career-canvas-api/internal/service/identity"
)

// Gateway runs OAuth sign-in.
type Gateway interface {
	Providers() []string
	LoginURL(provider string) (string, error)
	Callback(ctx context.Context, provider, code, state string) (*identity.Login, error)
}

// Register registers sign-in endpoints. When frontendURL is set the callback
// redirects there with the token in the URL fragment instead of returning JSON.
func Register(api huma.API, gw Gateway, frontendURL string) {
	huma.Register(api, huma.Operation{
		OperationID: "list-auth-providers",
		Method:      http.MethodGet,
		Path:        "/api/auth/providers",
		Summary:     "List configured identity providers",
		Tags:        []string{"Auth"},
	}, func(_ context.Context, _ *ProvidersInput) (*ProvidersOutput, error) {
		out := &ProvidersOutput{}
		out.Body.Meta = respond.OK()
		out.Body.Providers = gw.Providers()
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "auth-login",
		Method:        http.MethodGet,
		Path:          "/api/auth/{provider}/login",
		Summary:       "Start sign-in",
		Description:   "Redirects to the provider's consent page with a short-lived signed state.",
		Tags:          []string{"Auth"},
		DefaultStatus: http.StatusFound,
	}, func(ctx context.Context, input *LoginInput) (*RedirectOutput, error) {
		loginURL, err := gw.LoginURL(input.Provider)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return &RedirectOutput{Status: http.StatusFound, Location: loginURL}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "auth-callback",
		Method:      http.MethodGet,
		Path:        "/api/auth/{provider}/callback",
		Summary:     "Complete sign-in",
		Description: "Verifies state, exchanges the code, stores the user and issues a 7-day session token.",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *CallbackInput) (*CallbackOutput, error) {
		if input.Error != "" {
			applog.LogWarn(ctx, "provider denied sign-in",
				zap.String("provider", input.Provider),
				zap.String("error", input.Error))
			return nil, huma.Error401Unauthorized("sign-in was cancelled or denied by the provider")
		}
		if input.Code == "" || input.State == "" {
			return nil, huma.Error400BadRequest("code and state are required")
		}

		login, err := gw.Callback(ctx, input.Provider, input.Code, input.State)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}

		if frontendURL != "" {
			fragment := url.Values{"token": {login.Token}}
			return &CallbackOutput{
				Status:   http.StatusFound,
				Location: frontendURL + "/auth/callback#" + fragment.Encode(),
			}, nil
		}
		return &CallbackOutput{
			Status: http.StatusOK,
			Body: &CallbackBody{
				Meta:      respond.OK(),
				Token:     login.Token,
				ExpiresAt: timeutil.NewTime(login.ExpiresAt),
				User:      toHTTPUser(login.User.Identity()),
			},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "auth-me",
		Method:      http.MethodGet,
		Path:        "/api/auth/me",
		Summary:     "Get the signed-in identity",
		Tags:        []string{"Auth"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *MeInput) (*MeOutput, error) {
		user := auth.UserFromContext(ctx)

		out := &MeOutput{}
		out.Body.Meta = respond.OK()
		out.Body.User = toHTTPUser(*user)
		return out, nil
	})
}

func toHTTPUser(id auth.Identity) User {
	return User{
		ID:       id.ID,
		Email:    id.Email,
		Name:     id.Name,
		Provider: id.Provider,
		Picture:  id.Picture,
	}
}

func mapServiceError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, identity.ErrUnknownProvider):
		return huma.Error404NotFound("identity provider not configured")
	case errors.Is(err, identity.ErrInvalidState):
		return huma.Error400BadRequest("invalid or expired sign-in state")
	case errors.Is(err, identity.ErrExchange), errors.Is(err, auth.ErrNoEmail):
		return huma.Error401Unauthorized("sign-in with the provider failed")
	case errors.Is(err, identity.ErrUserInfo):
		return respond.Error(ctx, http.StatusBadGateway, "identity provider unavailable", err)
	default:
		return respond.Error(ctx, http.StatusInternalServerError, "internal error", err)
	}
}
