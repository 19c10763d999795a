package mentors

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/careercanvas/career-canvas-api/internal/platform/auth"
	"github.com/careercanvas/career-canvas-api/internal/platform/respond"
	"github.com/careercanvas/career-canvas-api/internal/service/mentor"
)

// Service is the mentor directory and profile lifecycle.
type Service interface {
	List(ctx context.Context, spec mentor.FilterSpec, requesterEmail string) (*mentor.ListResult, error)
	Get(ctx context.Context, id string) (*mentor.Mentor, error)
	GetByEmail(ctx context.Context, email string) (*mentor.Mentor, error)
	Create(ctx context.Context, owner mentor.Owner, in mentor.ProfileInput) (*mentor.Mentor, error)
	Update(ctx context.Context, owner mentor.Owner, id string, in mentor.ProfileInput) (*mentor.Mentor, error)
	Delete(ctx context.Context, owner mentor.Owner, id string) error
}

// Register registers mentor directory and profile endpoints.
func Register(api huma.API, svc Service) {
	huma.Register(api, huma.Operation{
		OperationID: "list-mentors",
		Method:      http.MethodGet,
		Path:        "/api/mentors",
		Summary:     "Search the mentor directory",
		Description: "Filters, sorts and optionally ranks mentors by shared interests with userEmail. " +
			"Malformed parameters fall back to their defaults; the effective filters are echoed back. At most 100 mentors are returned.",
		Tags: []string{"Mentors"},
	}, func(ctx context.Context, input *ListInput) (*ListOutput, error) {
		spec := mentor.ParseFilter(mentor.RawFilter{
			Departments:   input.Departments,
			Skills:        input.Skills,
			Availability:  input.Availability,
			MinExperience: input.MinExperience,
			MaxExperience: input.MaxExperience,
			MinRating:     input.MinRating,
			MaxRating:     input.MaxRating,
			Search:        input.Search,
			SortBy:        input.SortBy,
			SortOrder:     input.SortOrder,
		})

		res, err := svc.List(ctx, spec, input.UserEmail)
		if err != nil {
			return nil, respond.Error(ctx, http.StatusInternalServerError, "failed to fetch mentors", err)
		}

		out := &ListOutput{}
		out.Body.Meta = respond.OK()
		out.Body.Mentors = make([]Mentor, len(res.Mentors))
		for i, r := range res.Mentors {
			m := toHTTPMentor(r.Mentor)
			if res.Ranked {
				score := r.Relevance
				m.RelevanceScore = &score
			}
			out.Body.Mentors[i] = m
		}
		out.Body.Total = res.Total
		out.Body.Filters = toHTTPFilters(res.Filters)
		out.Body.Ranked = res.Ranked
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-mentor",
		Method:      http.MethodGet,
		Path:        "/api/mentors/{mentorId}",
		Summary:     "Get a mentor profile",
		Tags:        []string{"Mentors"},
	}, func(ctx context.Context, input *GetInput) (*MentorOutput, error) {
		m, err := svc.Get(ctx, input.MentorID)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return mentorOutput(m), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-my-mentor-profile",
		Method:      http.MethodGet,
		Path:        "/api/myMentorProfile",
		Summary:     "Get the caller's mentor profile",
		Tags:        []string{"Mentors"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, _ *MyProfileInput) (*MentorOutput, error) {
		user := auth.UserFromContext(ctx)

		m, err := svc.GetByEmail(ctx, user.Email)
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return mentorOutput(m), nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "create-mentor-profile",
		Method:        http.MethodPost,
		Path:          "/api/createMentorProfile",
		Summary:       "Create or update the caller's mentor profile",
		Description:   "Creates the caller's profile. One profile is allowed per user; with update=true the existing profile is updated instead.",
		Tags:          []string{"Mentors"},
		DefaultStatus: http.StatusCreated,
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *CreateInput) (*SaveOutput, error) {
		user := auth.UserFromContext(ctx)
		if input.Update {
			return update(ctx, svc, user, &input.Body)
		}

		m, err := svc.Create(ctx, ownerOf(user), input.Body.toInput())
		if err != nil {
			return nil, mapServiceError(ctx, err)
		}
		return saveOutput(http.StatusCreated, "Mentor profile created successfully", m), nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-mentor-profile",
		Method:      http.MethodPut,
		Path:        "/api/createMentorProfile",
		Summary:     "Update the caller's mentor profile",
		Description: "Replaces the editable fields. Omitted name, yearsOfExperience, interests, availability and profileImage keep their stored values. Rating, mentee count and mentorship history are preserved.",
		Tags:        []string{"Mentors"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *UpdateInput) (*SaveOutput, error) {
		return update(ctx, svc, auth.UserFromContext(ctx), &input.Body)
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-mentor-profile",
		Method:      http.MethodDelete,
		Path:        "/api/deleteMentorProfile/{mentorId}",
		Summary:     "Delete the caller's mentor profile",
		Tags:        []string{"Mentors"},
		Security: []map[string][]string{
			{"bearerAuth": {}},
		},
	}, func(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
		user := auth.UserFromContext(ctx)

		if err := svc.Delete(ctx, ownerOf(user), input.MentorID); err != nil {
			return nil, mapServiceError(ctx, err)
		}
		out := &DeleteOutput{}
		out.Body.Meta = respond.OK()
		out.Body.Message = "Mentor profile deleted successfully"
		return out, nil
	})
}

func update(ctx context.Context, svc Service, user *auth.Identity, body *ProfileBody) (*SaveOutput, error) {
	m, err := svc.Update(ctx, ownerOf(user), body.ID, body.toInput())
	if err != nil {
		return nil, mapServiceError(ctx, err)
	}
	return saveOutput(http.StatusOK, "Mentor profile updated successfully", m), nil
}

func ownerOf(user *auth.Identity) mentor.Owner {
	return mentor.Owner{Email: user.Email, Name: user.Name}
}

func (b *ProfileBody) toInput() mentor.ProfileInput {
	return mentor.ProfileInput{
		Name:              b.Name,
		Title:             b.Title,
		Department:        b.Department,
		Bio:               b.Bio,
		YearsOfExperience: b.YearsOfExperience,
		Skills:            b.Skills,
		Interests:         b.Interests,
		Availability:      mentor.Availability(b.Availability),
		ProfileImage:      b.ProfileImage,
		LastActive:        b.LastActive,
	}
}

func mentorOutput(m *mentor.Mentor) *MentorOutput {
	out := &MentorOutput{}
	out.Body.Meta = respond.OK()
	out.Body.Mentor = toHTTPMentor(m)
	return out
}

func saveOutput(status int, msg string, m *mentor.Mentor) *SaveOutput {
	out := &SaveOutput{Status: status, Location: "/api/mentors/" + m.ID}
	out.Body.Meta = respond.OK()
	out.Body.Message = msg
	out.Body.Mentor = toHTTPMentor(m)
	return out
}

func mapServiceError(ctx context.Context, err error) error {
	if se, ok := respond.Invalid(ctx, err); ok {
		return se
	}
	switch {
	case errors.Is(err, mentor.ErrNotFound):
		return huma.Error404NotFound("mentor profile not found")
	case errors.Is(err, mentor.ErrAlreadyExists):
		return huma.Error409Conflict("a mentor profile already exists for this user")
	case errors.Is(err, mentor.ErrForbidden):
		return huma.Error403Forbidden("you can only modify your own mentor profile")
	default:
		return respond.Error(ctx, http.StatusInternalServerError, "internal error", err)
	}
}
