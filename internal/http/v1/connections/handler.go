package connections

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/careercanvas/career-canvas-api/internal/platform/auth"
	"github.com/careercanvas/career-canvas-api/internal/platform/respond"
	"github.com/careercanvas/career-canvas-api/internal/service/connection"
)

// Service manages connection requests between users and mentors.
type Service interface {
	Create(ctx context.Context, requester auth.Identity, mentorID, message string) (*connection.Request, error)
	List(ctx context.Context, email string) ([]*connection.Request, error)
	Respond(ctx context.Context, email, id string, status connection.Status) (*connection.Request, error)
}

// Register registers connection request endpoints.
func Register(api huma.API, svc Service) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-connection-request",
		Method:        http.MethodPost,
		Path:          "/api/connectionRequests",
		Summary:       "Ask a mentor to connect",
		Description:   "Creates a pending request. Only one pending request per mentor is allowed, and users cannot request their own profile.",
		Tags:          []string{"Connections"},
		DefaultStatus: http.StatusCreated,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *CreateInput) (*RequestOutput, error) {
		user := auth.UserFromContext(ctx)

		r, err := svc.Create(ctx, *user, input.Body.MentorID, input.Body.Message)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return requestOutput(r), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-connection-requests",
		Method:      http.MethodGet,
		Path:        "/api/connectionRequests",
		Summary:     "List the caller's connection requests",
		Description: "Returns requests sent by the caller and requests addressed to the caller's mentor profile, newest first.",
		Tags:        []string{"Connections"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *ListInput) (*ListOutput, error) {
		user := auth.UserFromContext(ctx)

		reqs, err := svc.List(ctx, user.Email)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		out := &ListOutput{}
		out.Body.Meta = respond.OK()
		out.Body.Requests = make([]Request, len(reqs))
		for i, r := range reqs {
			out.Body.Requests[i] = toHTTPRequest(r)
		}
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "respond-connection-request",
		Method:      http.MethodPatch,
		Path:        "/api/connectionRequests/{requestId}",
		Summary:     "Accept or decline a connection request",
		Tags:        []string{"Connections"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *RespondInput) (*RequestOutput, error) {
		user := auth.UserFromContext(ctx)

		r, err := svc.Respond(ctx, user.Email, input.RequestID, connection.Status(input.Body.Status))
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return requestOutput(r), nil
	})
}

func requestOutput(r *connection.Request) *RequestOutput {
	out := &RequestOutput{}
	out.Body.Meta = respond.OK()
	out.Body.Request = toHTTPRequest(r)
	return out
}

func mapServiceError(ctx context.Context, err error) error {
	if se, ok := respond.Invalid(ctx, err); ok {
		return se
	}
	switch {
	case errors.Is(err, connection.ErrNotFound):
		return huma.Error404NotFound("connection request not found")
	case errors.Is(err, connection.ErrMentorNotFound):
		return huma.Error404NotFound("mentor not found")
	case errors.Is(err, connection.ErrForbidden):
		return huma.Error403Forbidden("not allowed to act on this connection request")
	case errors.Is(err, connection.ErrDuplicate):
		return huma.Error409Conflict("a pending request to this mentor already exists")
	case errors.Is(err, connection.ErrNotPending):
		return huma.Error409Conflict("connection request already answered")
	default:
		return respond.Error(ctx, http.StatusInternalServerError, "internal error", err)
	}
}
