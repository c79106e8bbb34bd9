package listview

import "slices"

// DefaultPageSize is the number of rows per page in every list view.
const DefaultPageSize = 10

// Paginate returns the page at pageIndex and the number of pages.
// An index past the end (or negative) yields an empty page.
func Paginate[T any](records []T, pageSize, pageIndex int) ([]T, int) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	count := (len(records) + pageSize - 1) / pageSize

	if pageIndex < 0 || pageIndex >= count {
		return []T{}, count
	}
	start := pageIndex * pageSize
	end := min(start+pageSize, len(records))
	return slices.Clone(records[start:end]), count
}
