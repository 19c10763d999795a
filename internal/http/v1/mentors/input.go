package mentors

import "time"

// ListInput for GET /api/mentors. Every parameter is optional; malformed
// values fall back to their defaults.
type ListInput struct {
	Departments   string `query:"departments"   doc:"Comma-separated departments"             example:"Engineering,Product"`
	Skills        string `query:"skills"        doc:"Comma-separated skills, matching any"    example:"Go,Kubernetes"`
	Availability  string `query:"availability"  doc:"Comma-separated availability values"     example:"available,limited"`
	MinExperience string `query:"minExperience" doc:"Minimum years of experience (0-50)"      example:"5"`
	MaxExperience string `query:"maxExperience" doc:"Maximum years of experience (0-50)"      example:"20"`
	MinRating     string `query:"minRating"     doc:"Minimum rating (0-5)"                    example:"4.5"`
	MaxRating     string `query:"maxRating"     doc:"Maximum rating (0-5)"                    example:"5"`
	Search        string `query:"search"        doc:"Case-insensitive text search"            example:"cloud"`
	SortBy        string `query:"sortBy"        doc:"Sort field"                              example:"rating"`
	SortOrder     string `query:"sortOrder"     doc:"asc or desc (default desc)"              example:"desc"`
	UserEmail     string `query:"userEmail"     doc:"Rank results by this user's interests"   example:"kim@example.com"`
}

// GetInput for GET /api/mentors/{mentorId}.
type GetInput struct {
	MentorID string `path:"mentorId" doc:"Mentor profile ID"`
}

// MyProfileInput for GET /api/myMentorProfile (no parameters).
type MyProfileInput struct{}

// ProfileBody is the editable part of a mentor profile.
type ProfileBody struct {
	ID                string     `json:"id,omitempty"                doc:"Profile to update; defaults to the caller's own"`
	Name              string     `json:"name,omitempty"              doc:"Display name; defaults to the account name" maxLength:"100"`
	Title             string     `json:"title,omitempty"             doc:"Job title"                                  maxLength:"200"`
	Department        string     `json:"department,omitempty"        doc:"Department"                                 maxLength:"100"`
	Bio               string     `json:"bio,omitempty"               doc:"Short biography"`
	YearsOfExperience *int       `json:"yearsOfExperience,omitempty" doc:"Years of experience; kept on update when omitted"`
	Skills            []string   `json:"skills,omitempty"            doc:"At least one skill"`
	Interests         []string   `json:"interests,omitempty"         doc:"Mentoring interests used for ranking"`
	Availability      string     `json:"availability,omitempty"      doc:"available, limited or busy"`
	ProfileImage      string     `json:"profileImage,omitempty"      doc:"Profile image URL"`
	LastActive        *time.Time `json:"lastActive,omitempty"        doc:"Last activity timestamp"`
}

// CreateInput for POST /api/createMentorProfile.
type CreateInput struct {
	Update bool `query:"update" doc:"Update the existing profile instead of creating one"`
	Body   ProfileBody
}

// UpdateInput for PUT /api/createMentorProfile.
type UpdateInput struct {
	Body ProfileBody
}

// DeleteInput for DELETE /api/deleteMentorProfile/{mentorId}.
type DeleteInput struct {
	MentorID string `path:"mentorId" doc:"Mentor profile ID"`
}
