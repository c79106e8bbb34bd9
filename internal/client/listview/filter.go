package listview

import "strings"

// Searchable records expose the textual forms of their searchable fields.
type Searchable interface {
	SearchFields() []string
}

// Filter returns the records with at least one field containing query,
// case-insensitively. An empty query returns a copy of records.
func Filter[T Searchable](records []T, query string) []T {
	q := strings.ToLower(query)
	out := make([]T, 0, len(records))
	for _, r := range records {
		if q == "" || matches(r, q) {
			out = append(out, r)
		}
	}
	return out
}

func matches[T Searchable](r T, q string) bool {
	for _, f := range r.SearchFields() {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
