package mentor

import (
	"strings"
	"time"

	"github.com/careercanvas/career-canvas-api/internal/service/ranking"
)

// Comparator returns the primary ordering for field and order.
func Comparator(field SortField, order SortOrder) ranking.Comparator[*Mentor] {
	var c ranking.Comparator[*Mentor]
	switch field {
	case SortExperience:
		c = ranking.By(func(m *Mentor) int { return m.YearsOfExperience })
	case SortName:
		c = ranking.By(func(m *Mentor) string { return strings.ToLower(m.Name) })
	case SortMenteeCount:
		c = ranking.By(func(m *Mentor) int { return m.MenteeCount })
	case SortLastActive:
		c = byTime(func(m *Mentor) time.Time { return m.EffectiveLastActive() })
	case SortCreatedAt:
		c = byTime(func(m *Mentor) time.Time { return m.CreatedAt })
	default:
		c = ranking.By(func(m *Mentor) float64 { return m.Rating })
	}
	if order == Asc {
		return c
	}
	return ranking.Desc(c)
}

func byTime(key func(*Mentor) time.Time) ranking.Comparator[*Mentor] {
	return func(a, b *Mentor) int { return key(a).Compare(key(b)) }
}

// Apply evaluates q over mentors in memory: filter, primary sort, cap.
func Apply(mentors []*Mentor, q Query) []*Mentor {
	return ranking.Pipeline[*Mentor]{
		Filter:  q.Filter.Match,
		Primary: Comparator(q.SortBy, q.Order),
		Limit:   q.Limit,
	}.Run(mentors)
}
