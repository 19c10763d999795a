package pagination

const (
	// DefaultLimit is the page size when the caller sends none.
	DefaultLimit = 20
	// MaxLimit bounds a single page.
	MaxLimit = 100
)

// Params embeds into Huma input structs for offset pagination.
type Params struct {
	Offset int `query:"offset" doc:"Number of items to skip"  default:"0"  minimum:"0"`
	Limit  int `query:"limit"  doc:"Maximum items per page" default:"20" minimum:"1" maximum:"100"`
}

// Normalize clamps offset and limit into their valid ranges.
func (p Params) Normalize() Params {
	if p.Offset < 0 {
		p.Offset = 0
	}
	switch {
	case p.Limit <= 0:
		p.Limit = DefaultLimit
	case p.Limit > MaxLimit:
		p.Limit = MaxLimit
	}
	return p
}

// HasMore reports whether items remain past the current page.
func (p Params) HasMore(total int) bool {
	return p.Offset+p.Limit < total
}

// Window returns the slice bounds of the page within n items.
func (p Params) Window(n int) (start, end int) {
	start = min(p.Offset, n)
	end = min(start+p.Limit, n)
	return start, end
}

// Page slices items according to p and reports total and hasMore.
func Page[T any](items []T, p Params) (page []T, total int, hasMore bool) {
	p = p.Normalize()
	start, end := p.Window(len(items))
	return items[start:end], len(items), p.HasMore(len(items))
}
