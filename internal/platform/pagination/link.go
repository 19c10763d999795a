package pagination

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// BuildLinkHeader constructs an RFC 8288 Link header with next and prev offsets,
// preserving the other query params.
func BuildLinkHeader(baseURL string, query url.Values, p Params, total int) string {
	p = p.Normalize()
	var links []string
	if p.HasMore(total) {
		links = append(links, link(baseURL, query, p.Offset+p.Limit, p.Limit, "next"))
	}
	if p.Offset > 0 {
		links = append(links, link(baseURL, query, max(p.Offset-p.Limit, 0), p.Limit, "prev"))
	}
	return strings.Join(links, ", ")
}

func link(baseURL string, query url.Values, offset, limit int, rel string) string {
	q := cloneValues(query)
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))
	return fmt.Sprintf("<%s?%s>; rel=%q", baseURL, q.Encode(), rel)
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
