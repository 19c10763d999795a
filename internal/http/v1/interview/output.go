package interview

import "github.com/careercanvas/career-canvas-api/internal/platform/respond"

// QuestionsOutput for POST /api/interview/questions.
type QuestionsOutput struct {
	Body struct {
		respond.Meta
		Role      string   `json:"role"`
		Level     string   `json:"level"`
		Questions []string `json:"questions"`
		Source    string   `json:"source" enum:"ai,fallback"`
	}
}

// FeedbackOutput for POST /api/interview/feedback.
type FeedbackOutput struct {
	Body struct {
		respond.Meta
		Feedback Feedback `json:"feedback"`
	}
}

// SessionOutput for POST /api/interview/sessions (201 Created).
type SessionOutput struct {
	Body struct {
		respond.Meta
		Session Session `json:"session"`
	}
}

// SessionsOutput for GET /api/interview/sessions.
type SessionsOutput struct {
	Body struct {
		respond.Meta
		Sessions []Session `json:"sessions"`
	}
}
