package mentor

import (
	"strings"
)

// Field names a filterable mentor attribute, spelled as stored in documents.
type Field string

// Filterable fields.
const (
	FieldName         Field = "name"
	FieldTitle        Field = "title"
	FieldDepartment   Field = "department"
	FieldBio          Field = "bio"
	FieldSkills       Field = "skills"
	FieldAvailability Field = "availability"
	FieldExperience   Field = "yearsOfExperience"
	FieldRating       Field = "rating"
)

// SearchFields are matched by free-text search.
var SearchFields = []Field{FieldName, FieldTitle, FieldDepartment, FieldBio, FieldSkills}

// Expr is a backend-neutral filter expression over mentors. Backends translate
// it; Match evaluates it in memory with identical semantics.
type Expr interface {
	Match(m *Mentor) bool
}

// In requires a scalar field to equal one of Values.
type In struct {
	Field  Field
	Values []string
}

// ContainsAny requires an array field to hold at least one of Values.
type ContainsAny struct {
	Field  Field
	Values []string
}

// Between requires a numeric field to lie in [Min, Max].
type Between struct {
	Field Field
	Min   float64
	Max   float64
}

// Search requires Term as a case-insensitive substring of at least one of Fields.
type Search struct {
	Fields []Field
	Term   string
}

// And requires every sub-expression. An empty And matches everything.
type And []Expr

// Match implements Expr.
func (e In) Match(m *Mentor) bool {
	v := scalar(m, e.Field)
	for _, want := range e.Values {
		if v == want {
			return true
		}
	}
	return false
}

// Match implements Expr.
func (e ContainsAny) Match(m *Mentor) bool {
	for _, have := range list(m, e.Field) {
		for _, want := range e.Values {
			if have == want {
				return true
			}
		}
	}
	return false
}

// Match implements Expr.
func (e Between) Match(m *Mentor) bool {
	v := number(m, e.Field)
	return v >= e.Min && v <= e.Max
}

// Match implements Expr.
func (e Search) Match(m *Mentor) bool {
	term := strings.ToLower(e.Term)
	for _, f := range e.Fields {
		if f == FieldSkills {
			for _, s := range m.Skills {
				if strings.Contains(strings.ToLower(s), term) {
					return true
				}
			}
			continue
		}
		if strings.Contains(strings.ToLower(scalar(m, f)), term) {
			return true
		}
	}
	return false
}

// Match implements Expr.
func (e And) Match(m *Mentor) bool {
	for _, sub := range e {
		if !sub.Match(m) {
			return false
		}
	}
	return true
}

// Query is the output of Build: filter, primary sort and result cap.
type Query struct {
	Filter And
	SortBy SortField
	Order  SortOrder
	Limit  int
}

// Build translates a FilterSpec into a Query. Empty sets and default ranges
// contribute no constraint.
func Build(spec FilterSpec) Query {
	var filter And
	if len(spec.Departments) > 0 {
		filter = append(filter, In{Field: FieldDepartment, Values: spec.Departments})
	}
	if len(spec.Skills) > 0 {
		filter = append(filter, ContainsAny{Field: FieldSkills, Values: spec.Skills})
	}
	if len(spec.Availability) > 0 {
		values := make([]string, len(spec.Availability))
		for i, a := range spec.Availability {
			values[i] = string(a)
		}
		filter = append(filter, In{Field: FieldAvailability, Values: values})
	}
	if spec.Experience != DefaultExperience {
		filter = append(filter, Between{
			Field: FieldExperience,
			Min:   float64(spec.Experience.Min),
			Max:   float64(spec.Experience.Max),
		})
	}
	if spec.Rating != DefaultRatingSpan {
		filter = append(filter, Between{Field: FieldRating, Min: spec.Rating.Min, Max: spec.Rating.Max})
	}
	if spec.Search != "" {
		filter = append(filter, Search{Fields: SearchFields, Term: spec.Search})
	}

	q := Query{Filter: filter, SortBy: spec.SortBy, Order: spec.SortOrder, Limit: MaxListedMentors}
	if !q.SortBy.valid() {
		q.SortBy = SortRating
	}
	if q.Order != Asc {
		q.Order = Desc
	}
	return q
}

func scalar(m *Mentor, f Field) string {
	switch f {
	case FieldName:
		return m.Name
	case FieldTitle:
		return m.Title
	case FieldDepartment:
		return m.Department
	case FieldBio:
		return m.Bio
	case FieldAvailability:
		return string(m.Availability)
	}
	return ""
}

func list(m *Mentor, f Field) []string {
	if f == FieldSkills {
		return m.Skills
	}
	return nil
}

func number(m *Mentor, f Field) float64 {
	switch f {
	case FieldExperience:
		return float64(m.YearsOfExperience)
	case FieldRating:
		return m.Rating
	}
	return 0
}
