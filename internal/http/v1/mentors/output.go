package mentors

import "github.com/careercanvas/career-canvas-api/internal/platform/respond"

// ListOutput for GET /api/mentors.
type ListOutput struct {
	Body struct {
		respond.Meta
		Mentors []Mentor `json:"mentors"`
		Total   int      `json:"total"   doc:"Number of mentors returned (at most 100)"`
		Filters Filters  `json:"filters" doc:"Effective filters after defaults and clamping"`
		Ranked  bool     `json:"ranked"  doc:"Whether results are ordered by relevance"`
	}
}

// MentorOutput wraps a single profile.
type MentorOutput struct {
	Body struct {
		respond.Meta
		Mentor Mentor `json:"mentor"`
	}
}

// SaveOutput for profile create and update.
type SaveOutput struct {
	Status   int
	Location string `header:"Location" doc:"URL of the profile"`
	Body     struct {
		respond.Meta
		Message string `json:"message"`
		Mentor  Mentor `json:"mentor"`
	}
}

// DeleteOutput for DELETE /api/deleteMentorProfile/{mentorId}.
type DeleteOutput struct {
	Body struct {
		respond.Meta
		Message string `json:"message"`
	}
}
