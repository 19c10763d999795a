package connections

import "github.com/careercanvas/career-canvas-api/internal/platform/respond"

// RequestOutput wraps one request.
type RequestOutput struct {
	Body struct {
		respond.Meta
		Request Request `json:"request"`
	}
}

// ListOutput for GET /api/connectionRequests.
type ListOutput struct {
	Body struct {
		respond.Meta
		Requests []Request `json:"requests"`
	}
}
