// Package ranking composes filters and comparators into ordering pipelines.
package ranking

import (
	"cmp"
	"slices"
)

// Comparator orders two items: negative when a sorts first, positive when b does.
type Comparator[T any] func(a, b T) int

// Predicate reports whether an item is kept.
type Predicate[T any] func(T) bool

// Desc reverses c.
func Desc[T any](c Comparator[T]) Comparator[T] {
	return func(a, b T) int { return c(b, a) }
}

// By orders items by key ascending.
func By[T any, K cmp.Ordered](key func(T) K) Comparator[T] {
	return func(a, b T) int { return cmp.Compare(key(a), key(b)) }
}

// Chain applies comparators in order; later ones break ties of earlier ones.
// Nil comparators are skipped.
func Chain[T any](cs ...Comparator[T]) Comparator[T] {
	return func(a, b T) int {
		for _, c := range cs {
			if c == nil {
				continue
			}
			if r := c(a, b); r != 0 {
				return r
			}
		}
		return 0
	}
}

// Pipeline filters items, sorts them by Primary, then stably re-sorts by
// Secondary so Primary only decides among Secondary ties.
type Pipeline[T any] struct {
	Filter    Predicate[T]
	Primary   Comparator[T]
	Secondary Comparator[T]
	// Limit caps the output; zero means unlimited.
	Limit int
}

// Run returns a new slice; items is not modified.
func (p Pipeline[T]) Run(items []T) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if p.Filter == nil || p.Filter(it) {
			out = append(out, it)
		}
	}
	if p.Primary != nil {
		slices.SortStableFunc(out, p.Primary)
	}
	if p.Secondary != nil {
		slices.SortStableFunc(out, p.Secondary)
	}
	if p.Limit > 0 && len(out) > p.Limit {
		out = out[:p.Limit]
	}
	return out
}

// Overlap counts the members of candidate that appear in wanted. Duplicates in
// candidate count once.
func Overlap(candidate []string, wanted map[string]struct{}) int {
	if len(wanted) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(candidate))
	n := 0
	for _, c := range candidate {
		if _, ok := wanted[c]; !ok {
			continue
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		n++
	}
	return n
}
