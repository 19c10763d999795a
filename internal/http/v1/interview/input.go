package interview

// QuestionsInput for POST /api/interview/questions.
type QuestionsInput struct {
	Body struct {
		Role  string `json:"role,omitempty"  doc:"Target role, default Software Engineer" maxLength:"100" example:"Backend Engineer"`
		Level string `json:"level,omitempty" doc:"entry, mid or senior (default mid)"                     example:"senior"`
		Count int    `json:"count,omitempty" doc:"Number of questions (1-10, default 5)"  minimum:"0" maximum:"10"`
	}
}

// FeedbackInput for POST /api/interview/feedback.
type FeedbackInput struct {
	Body struct {
		Question string `json:"question" doc:"Question that was asked"`
		Answer   string `json:"answer"   doc:"Candidate answer"`
	}
}

// SaveSessionInput for POST /api/interview/sessions.
type SaveSessionInput struct {
	Body struct {
		Role    string  `json:"role,omitempty"  doc:"Practised role"`
		Level   string  `json:"level,omitempty" doc:"Seniority level"`
		Entries []Entry `json:"entries"         doc:"Questions and answers"`
	}
}

// ListSessionsInput for GET /api/interview/sessions (no parameters).
type ListSessionsInput struct{}
