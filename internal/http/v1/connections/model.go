package connections

import (
	"github.com/careercanvas/career-canvas-api/internal/platform/timeutil"
	"github.com/careercanvas/career-canvas-api/internal/service/connection"
)

// Request is a connection request response.
type Request struct {
	ID             string        `json:"id"             doc:"Request identifier"`
	RequesterEmail string        `json:"requesterEmail" doc:"Who asked"                example:"kim@example.com"`
	RequesterName  string        `json:"requesterName"  doc:"Requester name"           example:"Kim Lee"`
	MentorID       string        `json:"mentorId"       doc:"Requested mentor profile"`
	MentorEmail    string        `json:"mentorEmail"    doc:"Mentor email"             example:"sarah.johnson@example.com"`
	MentorName     string        `json:"mentorName"     doc:"Mentor name"              example:"Sarah Johnson"`
	Message        string        `json:"message"        doc:"Introduction message"`
	Status         string        `json:"status"         doc:"Request status"           enum:"pending,accepted,declined"`
	CreatedAt      timeutil.Time `json:"createdAt"      doc:"Creation timestamp"`
	UpdatedAt      timeutil.Time `json:"updatedAt"      doc:"Last update timestamp"`
}

func toHTTPRequest(r *connection.Request) Request {
	return Request{
		ID:             r.ID,
		RequesterEmail: r.RequesterEmail,
		RequesterName:  r.RequesterName,
		MentorID:       r.MentorID,
		MentorEmail:    r.MentorEmail,
		MentorName:     r.MentorName,
		Message:        r.Message,
		Status:         string(r.Status),
		CreatedAt:      timeutil.NewTime(r.CreatedAt),
		UpdatedAt:      timeutil.NewTime(r.UpdatedAt),
	}
}
