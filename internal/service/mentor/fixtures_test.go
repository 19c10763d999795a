package mentor

import (
	"time"
)

var fixtureTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixtures() []*Mentor {
	return []*Mentor{
		{
			ID: "m-sarah", Email: "sarah@example.com", Name: "Sarah Johnson",
			Title: "Senior Software Engineer", Department: "Engineering",
			Bio:               "Backend engineer who enjoys helping people grow into tech leads.",
			YearsOfExperience: 12, Skills: []string{"Go", "Distributed Systems", "Mentoring"},
			Interests:    []string{"Leadership", "Technical Skills"},
			Availability: Available, Rating: 4.9, MenteeCount: 8,
			History:   History{TotalMentees: 14, CompletedSessions: 60, AverageRating: 4.9, Specializations: []string{"Backend"}},
			CreatedAt: fixtureTime, UpdatedAt: fixtureTime.Add(2 * time.Hour),
			LastActive: fixtureTime.Add(72 * time.Hour),
		},
		{
			ID: "m-michael", Email: "michael@example.com", Name: "Michael Chen",
			Title: "Product Manager", Department: "Product",
			Bio:               "Ships products with small teams and writes about roadmaps.",
			YearsOfExperience: 8, Skills: []string{"Product Strategy", "Roadmapping"},
			Interests:    []string{"Career Growth", "Leadership"},
			Availability: Limited, Rating: 4.7, MenteeCount: 5,
			CreatedAt: fixtureTime.Add(time.Hour), UpdatedAt: fixtureTime.Add(time.Hour),
		},
		{
			ID: "m-david", Email: "david@example.com", Name: "David Park",
			Title: "Solutions Architect", Department: "Engineering",
			Bio:               "Designs platforms for large migrations.",
			YearsOfExperience: 15, Skills: []string{"Cloud Architecture", "Kubernetes"},
			Interests:    []string{"technical skills", "Infrastructure"},
			Availability: Busy, Rating: 4.3, MenteeCount: 11,
			CreatedAt: fixtureTime.Add(2 * time.Hour), UpdatedAt: fixtureTime.Add(48 * time.Hour),
		},
		{
			ID: "m-emily", Email: "emily@example.com", Name: "Emily Rodriguez",
			Title: "UX Design Lead", Department: "Design",
			Bio:               "Research-driven designer and workshop facilitator.",
			YearsOfExperience: 10, Skills: []string{"User Research", "Figma"},
			Interests:    []string{"Career Growth", "Design Thinking"},
			Availability: Available, Rating: 4.8, MenteeCount: 3,
			CreatedAt: fixtureTime.Add(3 * time.Hour), UpdatedAt: fixtureTime.Add(3 * time.Hour),
		},
	}
}

func ids(mentors []*Mentor) []string {
	out := make([]string, len(mentors))
	for i, m := range mentors {
		out[i] = m.ID
	}
	return out
}

func rankedIDs(ranked []Ranked) []string {
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.ID
	}
	return out
}

func intPtr(v int) *int { return &v }
