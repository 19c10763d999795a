package interview

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/careercanvas/career-canvas-api/internal/platform/auth"
	"github.com/careercanvas/career-canvas-api/internal/platform/respond"
	svc "github.com/careercanvas/career-canvas-api/internal/service/interview"
)

// Service runs mock interviews.
type Service interface {
	Questions(ctx context.Context, role, level string, count int) svc.QuestionSet
	Feedback(ctx context.Context, question, answer string) (svc.Feedback, error)
	SaveSession(ctx context.Context, owner string, in svc.SessionInput) (*svc.Session, error)
	ListSessions(ctx context.Context, owner string) ([]*svc.Session, error)
}

// Register registers mock interview endpoints.
func Register(api huma.API, s Service) {
	huma.Register(api, huma.Operation{
		OperationID: "generate-interview-questions",
		Method:      http.MethodPost,
		Path:        "/api/interview/questions",
		Summary:     "Generate interview questions",
		Description: "Generates questions with the configured AI model. When the model is unavailable a static set is returned with source=fallback.",
		Tags:        []string{"Interview"},
	}, func(ctx context.Context, input *QuestionsInput) (*QuestionsOutput, error) {
		set := s.Questions(ctx, input.Body.Role, input.Body.Level, input.Body.Count)

		out := &QuestionsOutput{}
		out.Body.Meta = respond.OK()
		out.Body.Role = set.Role
		out.Body.Level = string(set.Level)
		out.Body.Questions = set.Questions
		out.Body.Source = string(set.Source)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "interview-feedback",
		Method:      http.MethodPost,
		Path:        "/api/interview/feedback",
		Summary:     "Get feedback on an answer",
		Tags:        []string{"Interview"},
	}, func(ctx context.Context, input *FeedbackInput) (*FeedbackOutput, error) {
		fb, err := s.Feedback(ctx, input.Body.Question, input.Body.Answer)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		out := &FeedbackOutput{}
		out.Body.Meta = respond.OK()
		out.Body.Feedback = toHTTPFeedback(fb)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "save-interview-session",
		Method:        http.MethodPost,
		Path:          "/api/interview/sessions",
		Summary:       "Save an interview transcript",
		Tags:          []string{"Interview"},
		DefaultStatus: http.StatusCreated,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *SaveSessionInput) (*SessionOutput, error) {
		user := auth.UserFromContext(ctx)

		entries := make([]svc.Entry, len(input.Body.Entries))
		for i, e := range input.Body.Entries {
			entries[i] = svc.Entry(e)
		}
		sess, err := s.SaveSession(ctx, user.Email, svc.SessionInput{
			Role:    input.Body.Role,
			Level:   input.Body.Level,
			Entries: entries,
		})
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		out := &SessionOutput{}
		out.Body.Meta = respond.OK()
		out.Body.Session = toHTTPSession(sess)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-interview-sessions",
		Method:      http.MethodGet,
		Path:        "/api/interview/sessions",
		Summary:     "List the caller's interview transcripts",
		Tags:        []string{"Interview"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *ListSessionsInput) (*SessionsOutput, error) {
		user := auth.UserFromContext(ctx)

		sessions, err := s.ListSessions(ctx, user.Email)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		out := &SessionsOutput{}
		out.Body.Meta = respond.OK()
		out.Body.Sessions = make([]Session, len(sessions))
		for i, sess := range sessions {
			out.Body.Sessions[i] = toHTTPSession(sess)
		}
		return out, nil
	})
}

func mapServiceError(ctx context.Context, err error) error {
	if se, ok := respond.Invalid(ctx, err); ok {
		return se
	}
	return respond.Error(ctx, http.StatusInternalServerError, "internal error", err)
}
