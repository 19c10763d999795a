package connections

// CreateInput for POST /api/connectionRequests.
type CreateInput struct {
	Body struct {
		MentorID string `json:"mentorId"          doc:"Mentor profile to contact" minLength:"1"`
		Message  string `json:"message,omitempty" doc:"Introduction message"      maxLength:"1000"`
	}
}

// ListInput for GET /api/connectionRequests (no parameters).
type ListInput struct{}

// RespondInput for PATCH /api/connectionRequests/{requestId}.
type RespondInput struct {
	RequestID string `path:"requestId" doc:"Request ID"`
	Body      struct {
		Status string `json:"status" doc:"New status" enum:"accepted,declined"`
	}
}
