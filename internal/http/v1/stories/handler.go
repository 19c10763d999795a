package stories

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	"github.com/careercanvas/career-canvas-api/internal/platform/auth"
	"github.com/careercanvas/career-canvas-api/internal/platform/pagination"
	"github.com/careercanvas/career-canvas-api/internal/platform/respond"
	"github.com/careercanvas/career-canvas-api/internal/service/story"
)

const basePath = "/api/stories"

// Service manages career stories.
type Service interface {
	List(ctx context.Context, f story.Filter, p pagination.Params) ([]*story.Story, int, error)
	Get(ctx context.Context, id string) (*story.Story, error)
	Create(ctx context.Context, author auth.Identity, in story.Input) (*story.Story, error)
	Delete(ctx context.Context, email, id string) error
	Like(ctx context.Context, email, id string) (*story.Story, error)
}

// Register registers story endpoints.
func Register(api huma.API, svc Service) {
	huma.Register(api, huma.Operation{
		OperationID: "list-stories",
		Method:      http.MethodGet,
		Path:        basePath,
		Summary:     "List career stories",
		Description: "Returns stories newest first with offset pagination. Follow the Link header for further pages.",
		Tags:        []string{"Stories"},
	}, func(ctx context.Context, input *ListInput) (*ListOutput, error) {
		p := input.Params.Normalize()
		items, total, err := svc.List(ctx, story.Filter{
			Category:    input.Category,
			AuthorEmail: input.AuthorEmail,
		}, p)
		if err != nil {
			return nil, respond.Error(ctx, http.StatusInternalServerError, "failed to fetch stories", err)
		}

		query := url.Values{}
		if input.Category != "" {
			query.Set("category", input.Category)
		}
		if input.AuthorEmail != "" {
			query.Set("authorEmail", input.AuthorEmail)
		}

		out := &ListOutput{Link: pagination.BuildLinkHeader(basePath, query, p, total)}
		out.Body.Meta = respond.OK()
		out.Body.Stories = make([]Story, len(items))
		for i, s := range items {
			out.Body.Stories[i] = toHTTPStory(s)
		}
		out.Body.Total = total
		out.Body.HasMore = p.HasMore(total)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-story",
		Method:      http.MethodGet,
		Path:        basePath + "/{storyId}",
		Summary:     "Get a career story",
		Tags:        []string{"Stories"},
	}, func(ctx context.Context, input *GetInput) (*StoryOutput, error) {
		s, err := svc.Get(ctx, input.StoryID)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return storyOutput(s), nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-story",
		Method:        http.MethodPost,
		Path:          basePath,
		Summary:       "Publish a career story",
		Tags:          []string{"Stories"},
		DefaultStatus: http.StatusCreated,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *CreateInput) (*CreateOutput, error) {
		user := auth.UserFromContext(ctx)

		s, err := svc.Create(ctx, *user, story.Input{
			Title:    input.Body.Title,
			Content:  input.Body.Content,
			Category: input.Body.Category,
			Tags:     input.Body.Tags,
		})
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		out := &CreateOutput{Location: basePath + "/" + s.ID}
		out.Body.Meta = respond.OK()
		out.Body.Story = toHTTPStory(s)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-story",
		Method:      http.MethodDelete,
		Path:        basePath + "/{storyId}",
		Summary:     "Delete one of the caller's stories",
		Tags:        []string{"Stories"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
		user := auth.UserFromContext(ctx)

		if err := svc.Delete(ctx, user.Email, input.StoryID); err != nil {
			return nil, mapServiceError(ctx, err)
		}
		out := &DeleteOutput{}
		out.Body.Meta = respond.OK()
		out.Body.Message = "Story deleted successfully"
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "like-story",
		Method:      http.MethodPost,
		Path:        basePath + "/{storyId}/like",
		Summary:     "Like a career story",
		Tags:        []string{"Stories"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *LikeInput) (*StoryOutput, error) {
		user := auth.UserFromContext(ctx)

		s, err := svc.Like(ctx, user.Email, input.StoryID)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return storyOutput(s), nil
	})
}

func storyOutput(s *story.Story) *StoryOutput {
	out := &StoryOutput{}
	out.Body.Meta = respond.OK()
	out.Body.Story = toHTTPStory(s)
	return out
}

func mapServiceError(ctx context.Context, err error) error {
	if se, ok := respond.Invalid(ctx, err); ok {
		return se
	}
	switch {
	case errors.Is(err, story.ErrNotFound):
		return huma.Error404NotFound("story not found")
	case errors.Is(err, story.ErrForbidden):
		return huma.Error403Forbidden("you can only delete your own stories")
	default:
		return respond.Error(ctx, http.StatusInternalServerError, "internal error", err)
	}
}
