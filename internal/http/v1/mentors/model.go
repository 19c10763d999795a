package mentors

import (
	"github.com/careercanvas/career-canvas-api/internal/platform/timeutil"
	"github.com/careercanvas/career-canvas-api/internal/service/mentor"
)

// History is aggregate mentorship data.
type History struct {
	TotalMentees      int      `json:"totalMentees"      doc:"Mentees coached to date"       example:"24"`
	CompletedSessions int      `json:"completedSessions" doc:"Completed mentoring sessions"  example:"156"`
	AverageRating     float64  `json:"averageRating"     doc:"Average session rating"        example:"4.9"`
	Specializations   []string `json:"specializations"   doc:"Areas of focus"`
}

// Mentor is a mentor profile response.
type Mentor struct {
	ID                string         `json:"id"                       doc:"Profile identifier"         example:"3f0c9a52-7d0e-4c1a-9f0e-2a8b6c1d4e5f"`
	Email             string         `json:"email"                    doc:"Owner email"                example:"sarah.johnson@example.com"`
	Name              string         `json:"name"                     doc:"Display name"               example:"Sarah Johnson"`
	Title             string         `json:"title"                    doc:"Job title"                  example:"Senior Software Engineer"`
	Department        string         `json:"department"               doc:"Department"                 example:"Engineering"`
	Bio               string         `json:"bio"                      doc:"Short biography"`
	YearsOfExperience int            `json:"yearsOfExperience"        doc:"Years of experience"        example:"12"`
	Skills            []string       `json:"skills"                   doc:"Skills"`
	Interests         []string       `json:"interests"                doc:"Mentoring interests"`
	Availability      string         `json:"availability"             doc:"Availability"               enum:"available,limited,busy"`
	Rating            float64        `json:"rating"                   doc:"Rating from 0 to 5"         example:"4.9"`
	MenteeCount       int            `json:"menteeCount"              doc:"Current mentees"            example:"8"`
	History           History        `json:"mentorshipHistory"        doc:"Aggregate mentorship data"`
	ProfileImage      string         `json:"profileImage,omitempty"   doc:"Profile image URL"`
	CreatedAt         timeutil.Time  `json:"createdAt"                doc:"Creation timestamp"`
	UpdatedAt         timeutil.Time  `json:"updatedAt"                doc:"Last update timestamp"`
	LastActive        *timeutil.Time `json:"lastActive,omitempty"     doc:"Last activity, falling back to the last update"`
	RelevanceScore    *int           `json:"relevanceScore,omitempty" doc:"Shared interests with the requester, present when ranked"`
}

// ExperienceRange is an inclusive range of years.
type ExperienceRange struct {
	Min int `json:"min" example:"0"`
	Max int `json:"max" example:"50"`
}

// RatingRange is an inclusive rating range.
type RatingRange struct {
	Min float64 `json:"min" example:"0"`
	Max float64 `json:"max" example:"5"`
}

// Filters echoes the effective filters applied to a listing.
type Filters struct {
	Departments     []string        `json:"departments"`
	Skills          []string        `json:"skills"`
	Availability    []string        `json:"availability"`
	ExperienceRange ExperienceRange `json:"experienceRange"`
	RatingRange     RatingRange     `json:"ratingRange"`
	Search          string          `json:"search"`
	SortBy          string          `json:"sortBy"`
	SortOrder       string          `json:"sortOrder"`
}

func toHTTPMentor(m *mentor.Mentor) Mentor {
	return Mentor{
		ID:                m.ID,
		Email:             m.Email,
		Name:              m.Name,
		Title:             m.Title,
		Department:        m.Department,
		Bio:               m.Bio,
		YearsOfExperience: m.YearsOfExperience,
		Skills:            nonNil(m.Skills),
		Interests:         nonNil(m.Interests),
		Availability:      string(m.Availability),
		Rating:            m.Rating,
		MenteeCount:       m.MenteeCount,
		History: History{
			TotalMentees:      m.History.TotalMentees,
			CompletedSessions: m.History.CompletedSessions,
			AverageRating:     m.History.AverageRating,
			Specializations:   nonNil(m.History.Specializations),
		},
		ProfileImage: m.ProfileImage,
		CreatedAt:    timeutil.NewTime(m.CreatedAt),
		UpdatedAt:    timeutil.NewTime(m.UpdatedAt),
		LastActive:   timeutil.Ptr(m.EffectiveLastActive()),
	}
}

func toHTTPFilters(spec mentor.FilterSpec) Filters {
	availability := make([]string, len(spec.Availability))
	for i, a := range spec.Availability {
		availability[i] = string(a)
	}
	return Filters{
		Departments:     nonNil(spec.Departments),
		Skills:          nonNil(spec.Skills),
		Availability:    availability,
		ExperienceRange: ExperienceRange{Min: spec.Experience.Min, Max: spec.Experience.Max},
		RatingRange:     RatingRange{Min: spec.Rating.Min, Max: spec.Rating.Max},
		Search:          spec.Search,
		SortBy:          string(spec.SortBy),
		SortOrder:       string(spec.SortOrder),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
