package mentor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseFilterDefaults(t *testing.T) {
	assert.Equal(t, DefaultFilterSpec(), ParseFilter(RawFilter{}))
}

func TestParseFilterLists(t *testing.T) {
	spec := ParseFilter(RawFilter{
		Departments:  " Engineering , ,Product,Engineering",
		Skills:       "Go,go, Kubernetes ",
		Availability: "Available,unknown, busy,available",
	})

	assert.Equal(t, []string{"Engineering", "Product"}, spec.Departments)
	assert.Equal(t, []string{"Go", "go", "Kubernetes"}, spec.Skills)
	assert.Equal(t, []Availability{Available, Busy}, spec.Availability)
}

func TestParseFilterRanges(t *testing.T) {
	tests := []struct {
		name       string
		raw        RawFilter
		experience IntRange
		rating     FloatRange
	}{
		{
			name:       "within bounds",
			raw:        RawFilter{MinExperience: "3", MaxExperience: "10", MinRating: "4.5", MaxRating: "5"},
			experience: IntRange{Min: 3, Max: 10},
			rating:     FloatRange{Min: 4.5, Max: 5},
		},
		{
			name:       "clamped",
			raw:        RawFilter{MinExperience: "-4", MaxExperience: "80", MinRating: "-1", MaxRating: "9"},
			experience: DefaultExperience,
			rating:     DefaultRatingSpan,
		},
		{
			name:       "unparsable",
			raw:        RawFilter{MinExperience: "five", MinRating: "NaN", MaxRating: "Inf"},
			experience: DefaultExperience,
			rating:     DefaultRatingSpan,
		},
		{
			name:       "inverted resets",
			raw:        RawFilter{MinExperience: "20", MaxExperience: "5", MinRating: "4", MaxRating: "3"},
			experience: DefaultExperience,
			rating:     DefaultRatingSpan,
		},
		{
			name:       "single bound",
			raw:        RawFilter{MinRating: "4.5"},
			experience: DefaultExperience,
			rating:     FloatRange{Min: 4.5, Max: MaxRating},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := ParseFilter(tt.raw)
			assert.Equal(t, tt.experience, spec.Experience)
			assert.Equal(t, tt.rating, spec.Rating)
		})
	}
}

func TestParseFilterSearch(t *testing.T) {
	assert.Equal(t, "cloud", ParseFilter(RawFilter{Search: "  cloud \t"}).Search)

	long := strings.Repeat("é", 150)
	got := ParseFilter(RawFilter{Search: long}).Search
	assert.Equal(t, 100, len([]rune(got)))
}

func TestParseFilterSort(t *testing.T) {
	tests := []struct {
		by, order string
		wantBy    SortField
		wantOrder SortOrder
	}{
		{"", "", SortRating, Desc},
		{"experience", "ASC", SortExperience, Asc},
		{"lastActive", "asc", SortLastActive, Asc},
		{"salary", "sideways", SortRating, Desc},
		{"name", "desc", SortName, Desc},
	}
	for _, tt := range tests {
		spec := ParseFilter(RawFilter{SortBy: tt.by, SortOrder: tt.order})
		assert.Equal(t, tt.wantBy, spec.SortBy, "sortBy %q", tt.by)
		assert.Equal(t, tt.wantOrder, spec.SortOrder, "sortOrder %q", tt.order)
	}
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, SplitList(""))
	assert.Nil(t, SplitList(" , ,"))
	assert.Equal(t, []string{"a", "b"}, SplitList("a, b ,a"))
}
