package stories

import "github.com/careercanvas/career-canvas-api/internal/platform/respond"

// ListOutput for GET /api/stories.
type ListOutput struct {
	Link string `header:"Link" doc:"RFC 8288 pagination links"`
	Body struct {
		respond.Meta
		Stories []Story `json:"stories"`
		Total   int     `json:"total"   doc:"Stories matching the filter"`
		HasMore bool    `json:"hasMore" doc:"Whether another page exists"`
	}
}

// StoryOutput wraps one story.
type StoryOutput struct {
	Body struct {
		respond.Meta
		Story Story `json:"story"`
	}
}

// CreateOutput for POST /api/stories (201 Created).
type CreateOutput struct {
	Location string `header:"Location" doc:"URL of the created story"`
	Body     struct {
		respond.Meta
		Story Story `json:"story"`
	}
}

// DeleteOutput for DELETE /api/stories/{storyId}.
type DeleteOutput struct {
	Body struct {
		respond.Meta
		Message string `json:"message"`
	}
}
