package preferences

import "github.com/careercanvas/career-canvas-api/internal/platform/respond"

// Output wraps the caller's preferences.
type Output struct {
	Body struct {
		respond.Meta
		Preferences Preferences `json:"preferences"`
	}
}
