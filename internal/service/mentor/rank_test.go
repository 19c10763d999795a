package mentor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRelevanceIgnoresCase(t *testing.T) {
	m := &Mentor{Interests: []string{"Leadership", "technical skills", "Cooking"}}

	assert.Equal(t, 2, Relevance(m, []string{"leadership", " Technical Skills "}))
	assert.Equal(t, 0, Relevance(m, nil))
	assert.Equal(t, 0, Relevance(&Mentor{}, StarterInterests))
}

func TestRankOrdersByRelevanceThenRating(t *testing.T) {
	primary := Apply(fixtures(), Build(DefaultFilterSpec()))
	ranked := Rank(primary, []string{"Technical Skills", "Infrastructure"})

	// David shares two interests, Sarah one, the rest none.
	assert.Equal(t, []string{"m-david", "m-sarah", "m-emily", "m-michael"}, rankedIDs(ranked))
	assert.Equal(t, []int{2, 1, 0, 0}, []int{ranked[0].Relevance, ranked[1].Relevance, ranked[2].Relevance, ranked[3].Relevance})
}

func TestRankStarterInterests(t *testing.T) {
	primary := Apply(fixtures(), Build(DefaultFilterSpec()))
	ranked := Rank(primary, StarterInterests)

	// Sarah: Leadership + Technical Skills; Michael: Career Growth + Leadership;
	// Emily: Career Growth; David: technical skills.
	assert.Equal(t, []string{"m-sarah", "m-michael", "m-emily", "m-david"}, rankedIDs(ranked))
}

func TestRankKeepsPrimaryOrderOnTies(t *testing.T) {
	a := &Mentor{ID: "a", Rating: 4}
	b := &Mentor{ID: "b", Rating: 4}
	c := &Mentor{ID: "c", Rating: 4}

	assert.Equal(t, []string{"c", "a", "b"}, rankedIDs(Rank([]*Mentor{c, a, b}, []string{"x"})))
}

func TestRankIsIdempotent(t *testing.T) {
	interests := []string{"Career Growth"}
	once := Rank(Apply(fixtures(), Build(DefaultFilterSpec())), interests)

	mentors := make([]*Mentor, len(once))
	for i, r := range once {
		mentors[i] = r.Mentor
	}
	twice := Rank(mentors, interests)

	assert.Equal(t, rankedIDs(once), rankedIDs(twice))
}

func TestRankEmpty(t *testing.T) {
	assert.Empty(t, Rank(nil, StarterInterests))
}
