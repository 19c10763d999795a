package preferences

// GetInput for GET /api/mentorshipPreferences (no parameters).
type GetInput struct{}

// PutInput for PUT /api/mentorshipPreferences. The body replaces all stored values.
type PutInput struct {
	Body struct {
		Interests             []string `json:"interests,omitempty"             doc:"Interests; trimmed and deduplicated"`
		Goals                 []string `json:"goals,omitempty"                 doc:"Mentorship goals"`
		PreferredDepartments  []string `json:"preferredDepartments,omitempty"  doc:"Preferred departments"`
		PreferredAvailability []string `json:"preferredAvailability,omitempty" doc:"available, limited or busy"`
	}
}
