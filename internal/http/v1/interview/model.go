package interview

import (
	"github.com/careercanvas/career-canvas-api/internal/platform/timeutil"
	svc "github.com/careercanvas/career-canvas-api/internal/service/interview"
)

// Feedback evaluates one answer.
type Feedback struct {
	Score        int      `json:"score"        doc:"Score from 1 to 10" example:"7"`
	Strengths    []string `json:"strengths"    doc:"What went well"`
	Improvements []string `json:"improvements" doc:"What to improve"`
	Summary      string   `json:"summary"      doc:"One-paragraph summary"`
	Source       string   `json:"source"       doc:"Who produced the feedback" enum:"ai,fallback"`
}

// Entry is one question and answer in a transcript.
type Entry struct {
	Question string `json:"question"           doc:"Question asked"`
	Answer   string `json:"answer,omitempty"   doc:"Candidate answer"`
	Feedback string `json:"feedback,omitempty" doc:"Feedback summary"`
	Score    int    `json:"score,omitempty"    doc:"Score from 1 to 10"`
}

// Session is a stored interview transcript.
type Session struct {
	ID        string        `json:"id"        doc:"Session identifier"`
	Role      string        `json:"role"      doc:"Practised role"  example:"Backend Engineer"`
	Level     string        `json:"level"     doc:"Seniority level" enum:"entry,mid,senior"`
	Entries   []Entry       `json:"entries"   doc:"Questions and answers"`
	CreatedAt timeutil.Time `json:"createdAt" doc:"Creation timestamp"`
}

func toHTTPFeedback(f svc.Feedback) Feedback {
	return Feedback{
		Score:        f.Score,
		Strengths:    nonNil(f.Strengths),
		Improvements: nonNil(f.Improvements),
		Summary:      f.Summary,
		Source:       string(f.Source),
	}
}

func toHTTPSession(s *svc.Session) Session {
	entries := make([]Entry, len(s.Entries))
	for i, e := range s.Entries {
		entries[i] = Entry(e)
	}
	return Session{
		ID:        s.ID,
		Role:      s.Role,
		Level:     string(s.Level),
		Entries:   entries,
		CreatedAt: timeutil.NewTime(s.CreatedAt),
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
