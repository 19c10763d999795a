package mentor

import (
	"math"
	"strconv"
	"strings"
)

// SortField names a sortable mentor attribute.
type SortField string

// Sort fields.
const (
	SortRating      SortField = "rating"
	SortExperience  SortField = "experience"
	SortName        SortField = "name"
	SortMenteeCount SortField = "menteeCount"
	SortLastActive  SortField = "lastActive"
	SortCreatedAt   SortField = "createdAt"
)

func (f SortField) valid() bool {
	switch f {
	case SortRating, SortExperience, SortName, SortMenteeCount, SortLastActive, SortCreatedAt:
		return true
	}
	return false
}

// SortOrder is the direction of the primary sort.
type SortOrder string

// Sort orders.
const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// IntRange is an inclusive integer range.
type IntRange struct {
	Min int
	Max int
}

// FloatRange is an inclusive decimal range.
type FloatRange struct {
	Min float64
	Max float64
}

// Default ranges: a range equal to its default imposes no constraint.
var (
	DefaultExperience = IntRange{Min: 0, Max: MaxExperience}
	DefaultRatingSpan = FloatRange{Min: 0, Max: MaxRating}
)

const maxSearchLength = 100

// FilterSpec is the effective, validated set of directory constraints.
type FilterSpec struct {
	Departments  []string
	Skills       []string
	Availability []Availability
	Experience   IntRange
	Rating       FloatRange
	Search       string
	SortBy       SortField
	SortOrder    SortOrder
}

// DefaultFilterSpec constrains nothing and sorts by rating descending.
func DefaultFilterSpec() FilterSpec {
	return FilterSpec{
		Experience: DefaultExperience,
		Rating:     DefaultRatingSpan,
		SortBy:     SortRating,
		SortOrder:  Desc,
	}
}

// RawFilter holds untyped request parameters as received.
type RawFilter struct {
	Departments   string
	Skills        string
	Availability  string
	MinExperience string
	MaxExperience string
	MinRating     string
	MaxRating     string
	Search        string
	SortBy        string
	SortOrder     string
}

// ParseFilter turns request parameters into a FilterSpec. It never fails:
// unparsable values fall back to their defaults, numbers are clamped into
// range, an inverted range resets to its default, unknown availability
// tokens are dropped and unknown sort fields sort by rating.
func ParseFilter(raw RawFilter) FilterSpec {
	spec := DefaultFilterSpec()
	spec.Departments = SplitList(raw.Departments)
	spec.Skills = SplitList(raw.Skills)
	for _, a := range SplitList(raw.Availability) {
		if av := Availability(strings.ToLower(a)); av.Valid() {
			spec.Availability = appendUnique(spec.Availability, av)
		}
	}

	spec.Experience = IntRange{
		Min: clampInt(parseInt(raw.MinExperience, DefaultExperience.Min), 0, MaxExperience),
		Max: clampInt(parseInt(raw.MaxExperience, DefaultExperience.Max), 0, MaxExperience),
	}
	if spec.Experience.Min > spec.Experience.Max {
		spec.Experience = DefaultExperience
	}
	spec.Rating = FloatRange{
		Min: clampFloat(parseFloat(raw.MinRating, DefaultRatingSpan.Min), 0, MaxRating),
		Max: clampFloat(parseFloat(raw.MaxRating, DefaultRatingSpan.Max), 0, MaxRating),
	}
	if spec.Rating.Min > spec.Rating.Max {
		spec.Rating = DefaultRatingSpan
	}

	spec.Search = strings.TrimSpace(raw.Search)
	if r := []rune(spec.Search); len(r) > maxSearchLength {
		spec.Search = string(r[:maxSearchLength])
	}
	if f := SortField(strings.TrimSpace(raw.SortBy)); f.valid() {
		spec.SortBy = f
	}
	if strings.EqualFold(strings.TrimSpace(raw.SortOrder), string(Asc)) {
		spec.SortOrder = Asc
	}
	return spec
}

// SplitList splits a comma-separated list, trimming tokens and dropping empty
// ones and duplicates.
func SplitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = appendUnique(out, p)
		}
	}
	return out
}

func appendUnique[T comparable](list []T, v T) []T {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

func parseInt(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}

func parseFloat(s string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}

func clampInt(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

func clampFloat(v, lo, hi float64) float64 {
	return min(max(v, lo), hi)
}
