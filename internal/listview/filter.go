package listview

import "strings"

// Filters maps a filter dimension name to its selected value. Every view
// uses single-select radio semantics: at most one value per dimension,
// and "" means the dimension is unset.
type Filters map[string]string

func (f Filters) active() bool {
	for _, v := range f {
		if v != "" {
			return true
		}
	}
	return false
}

// Clone returns an independent copy so cached filter state can't be
// mutated behind a view's back.
func (f Filters) Clone() Filters {
	out := make(Filters, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Schema describes how to read filterable fields off one item type.
// Dimension accessors decide their own case policy: a category-name
// dimension lowers both sides, an identifier dimension compares verbatim.
type Schema[T any] struct {
	Dimensions map[string]func(T) string
	SearchText []func(T) string
}

// Filter derives the displayed subset: every set dimension must match
// exactly, then the query must appear as a case-insensitive substring of
// at least one search field. With nothing set and an empty query the
// input slice itself comes back untouched.
func (s Schema[T]) Filter(items []T, filters Filters, query string) []T {
	query = strings.TrimSpace(query)
	if !filters.active() && query == "" {
		return items
	}

	q := strings.ToLower(query)
	out := make([]T, 0, len(items))

next:
	for _, it := range items {
		for dim, want := range filters {
			if want == "" {
				continue
			}
			get, ok := s.Dimensions[dim]
			if !ok || get(it) != want {
				continue next
			}
		}
		if q != "" {
			hit := false
			for _, get := range s.SearchText {
				if strings.Contains(strings.ToLower(get(it)), q) {
					hit = true
					break
				}
			}
			if !hit {
				continue
			}
		}
		out = append(out, it)
	}
	return out
}

// Head caps a result to its first n items, keeping order. Only the
// related-items contexts use this; primary listings never truncate.
func Head[T any](items []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(items) <= n {
		return items
	}
	return items[:n]
}
