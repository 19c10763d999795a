package preferences

import (
	"github.com/careercanvas/career-canvas-api/internal/platform/timeutil"
	prefsvc "github.com/careercanvas/career-canvas-api/internal/service/preferences"
)

// Preferences is a user's mentorship preferences.
type Preferences struct {
	Email                 string         `json:"email"                 doc:"Owner email"                         example:"kim@example.com"`
	Interests             []string       `json:"interests"             doc:"Interests used to rank mentors"`
	Goals                 []string       `json:"goals"                 doc:"Mentorship goals"`
	PreferredDepartments  []string       `json:"preferredDepartments"  doc:"Departments the user prefers"`
	PreferredAvailability []string       `json:"preferredAvailability" doc:"Availability values the user prefers"`
	UpdatedAt             *timeutil.Time `json:"updatedAt,omitempty"   doc:"Last update timestamp"`
	IsDefault             bool           `json:"isDefault"             doc:"True when nothing is stored yet"`
}

func toHTTPPreferences(p *prefsvc.Preferences) Preferences {
	availability := make([]string, len(p.PreferredAvailability))
	for i, a := range p.PreferredAvailability {
		availability[i] = string(a)
	}
	return Preferences{
		Email:                 p.Email,
		Interests:             nonNil(p.Interests),
		Goals:                 nonNil(p.Goals),
		PreferredDepartments:  nonNil(p.PreferredDepartments),
		PreferredAvailability: availability,
		UpdatedAt:             timeutil.Ptr(p.UpdatedAt),
		IsDefault:             p.IsDefault,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
