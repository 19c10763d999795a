package stories

import (
	"github.com/careercanvas/career-canvas-api/internal/platform/timeutil"
	"github.com/careercanvas/career-canvas-api/internal/service/story"
)

// Story is a career story response.
type Story struct {
	ID          string        `json:"id"          doc:"Story identifier"`
	AuthorEmail string        `json:"authorEmail" doc:"Author email"      example:"kim@example.com"`
	AuthorName  string        `json:"authorName"  doc:"Author name"       example:"Kim Lee"`
	Title       string        `json:"title"       doc:"Title"             example:"From support to SRE"`
	Content     string        `json:"content"     doc:"Story text"`
	Category    string        `json:"category"    doc:"Category"          example:"Career Change"`
	Tags        []string      `json:"tags"        doc:"Tags"`
	Likes       int           `json:"likes"       doc:"Number of likes"   example:"12"`
	CreatedAt   timeutil.Time `json:"createdAt"   doc:"Creation timestamp"`
	UpdatedAt   timeutil.Time `json:"updatedAt"   doc:"Last update timestamp"`
}

func toHTTPStory(s *story.Story) Story {
	tags := s.Tags
	if tags == nil {
		tags = []string{}
	}
	return Story{
		ID:          s.ID,
		AuthorEmail: s.AuthorEmail,
		AuthorName:  s.AuthorName,
		Title:       s.Title,
		Content:     s.Content,
		Category:    s.Category,
		Tags:        tags,
		Likes:       s.Likes,
		CreatedAt:   timeutil.NewTime(s.CreatedAt),
		UpdatedAt:   timeutil.NewTime(s.UpdatedAt),
	}
}
