package preferences

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/careercanvas/career-canvas-api/internal/platform/auth"
	"github.com/careercanvas/career-canvas-api/internal/platform/respond"
	prefsvc "github.com/careercanvas/career-canvas-api/internal/service/preferences"
)

// Service reads and replaces mentorship preferences.
type Service interface {
	Get(ctx context.Context, email string) (*prefsvc.Preferences, error)
	Put(ctx context.Context, email string, in prefsvc.Input) (*prefsvc.Preferences, error)
}

// Register registers mentorship preference endpoints.
func Register(api huma.API, svc Service) {
	huma.Register(api, huma.Operation{
		OperationID: "get-mentorship-preferences",
		Method:      http.MethodGet,
		Path:        "/api/mentorshipPreferences",
		Summary:     "Get the caller's mentorship preferences",
		Description: "Returns stored preferences, or starter defaults with isDefault set when none are stored.",
		Tags:        []string{"Preferences"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *GetInput) (*Output, error) {
		user := auth.UserFromContext(ctx)

		p, err := svc.Get(ctx, user.Email)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return output(p), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "put-mentorship-preferences",
		Method:      http.MethodPut,
		Path:        "/api/mentorshipPreferences",
		Summary:     "Replace the caller's mentorship preferences",
		Tags:        []string{"Preferences"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *PutInput) (*Output, error) {
		user := auth.UserFromContext(ctx)

		p, err := svc.Put(ctx, user.Email, prefsvc.Input{
			Interests:             input.Body.Interests,
			Goals:                 input.Body.Goals,
			PreferredDepartments:  input.Body.PreferredDepartments,
			PreferredAvailability: input.Body.PreferredAvailability,
		})
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return output(p), nil
	})
}

func output(p *prefsvc.Preferences) *Output {
	out := &Output{}
	out.Body.Meta = respond.OK()
	out.Body.Preferences = toHTTPPreferences(p)
	return out
}

func mapServiceError(ctx context.Context, err error) error {
	if se, ok := respond.Invalid(ctx, err); ok {
		return se
	}
	return respond.Error(ctx, http.StatusInternalServerError, "internal error", err)
}
