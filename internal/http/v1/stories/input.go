package stories

import "github.com/careercanvas/career-canvas-api/internal/platform/pagination"

// ListInput for GET /api/stories.
type ListInput struct {
	pagination.Params
	Category    string `query:"category"    doc:"Only stories in this category"     example:"Leadership"`
	AuthorEmail string `query:"authorEmail" doc:"Only stories by this author"       example:"kim@example.com"`
}

// GetInput for GET /api/stories/{storyId}.
type GetInput struct {
	StoryID string `path:"storyId" doc:"Story ID"`
}

// CreateInput for POST /api/stories.
type CreateInput struct {
	Body struct {
		Title    string   `json:"title"              doc:"Title"                        maxLength:"200"   example:"From support to SRE"`
		Content  string   `json:"content"            doc:"Story text"                   maxLength:"10000"`
		Category string   `json:"category,omitempty" doc:"Category, default General"    maxLength:"100"`
		Tags     []string `json:"tags,omitempty"     doc:"Up to 10 tags"`
	}
}

// DeleteInput for DELETE /api/stories/{storyId}.
type DeleteInput struct {
	StoryID string `path:"storyId" doc:"Story ID"`
}

// LikeInput for POST /api/stories/{storyId}/like.
type LikeInput struct {
	StoryID string `path:"storyId" doc:"Story ID"`
}
