package listview

// Page is one rendered window of a list view.
type Page[T any] struct {
	Records []T
	// Index is the zero-based page shown.
	Index int
	// Count is the number of pages for the filtered set.
	Count int
	// Total is the number of records that passed the filter.
	Total int
}

// Render composes filter, sort and pagination.
func Render[T Searchable](records []T, query string, cfg SortConfig, pageIndex, pageSize int, keys Keys[T]) (Page[T], error) {
	filtered := Filter(records, query)
	sorted, err := Sort(filtered, keys, cfg)
	if err != nil {
		return Page[T]{}, err
	}
	rows, count := Paginate(sorted, pageSize, pageIndex)
	return Page[T]{Records: rows, Index: pageIndex, Count: count, Total: len(sorted)}, nil
}
