package mentor

import (
	"strings"

	"github.com/careercanvas/career-canvas-api/internal/service/ranking"
)

// StarterInterests rank mentors for requesters without stored preferences.
var StarterInterests = []string{"Career Growth", "Leadership", "Technical Skills"}

// Ranked pairs a mentor with its relevance to the requester.
type Ranked struct {
	*Mentor
	Relevance int
}

// Relevance counts the interests a mentor shares with the requester, ignoring case.
func Relevance(m *Mentor, interests []string) int {
	return ranking.Overlap(foldAll(m.Interests), interestSet(interests))
}

// Rank orders mentors by relevance descending then rating descending. The
// sort is stable, so mentors tied on both keep their incoming (primary sort)
// order, which makes Rank idempotent.
func Rank(mentors []*Mentor, interests []string) []Ranked {
	wanted := interestSet(interests)
	ranked := make([]Ranked, len(mentors))
	for i, m := range mentors {
		ranked[i] = Ranked{Mentor: m, Relevance: ranking.Overlap(foldAll(m.Interests), wanted)}
	}
	return ranking.Pipeline[Ranked]{
		Secondary: ranking.Chain(
			ranking.Desc(ranking.By(func(r Ranked) int { return r.Relevance })),
			ranking.Desc(ranking.By(func(r Ranked) float64 { return r.Rating })),
		),
	}.Run(ranked)
}

func interestSet(interests []string) map[string]struct{} {
	set := make(map[string]struct{}, len(interests))
	for _, i := range interests {
		if k := strings.ToLower(strings.TrimSpace(i)); k != "" {
			set[k] = struct{}{}
		}
	}
	return set
}

func foldAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(strings.TrimSpace(v))
	}
	return out
}
