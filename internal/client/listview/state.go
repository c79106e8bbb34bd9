package listview

// State is the mutable view configuration of one list: search text, sort
// and page index. Records are not part of it; they come from the store at
// render time.
type State struct {
	Query    string
	Sort     SortConfig
	Page     int
	PageSize int
}

// NewState returns a view state sorted by defaultKey ascending.
func NewState(defaultKey SortKey, pageSize int) *State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &State{Sort: SortConfig{Key: defaultKey, Direction: Ascending}, PageSize: pageSize}
}

// SetQuery changes the search text and returns to the first page so the
// user is never left on a page the narrower result no longer has.
func (s *State) SetQuery(q string) {
	s.Query = q
	s.Page = 0
}

// ToggleSort applies SortConfig.Toggle for key.
func (s *State) ToggleSort(key SortKey) {
	s.Sort = s.Sort.Toggle(key)
}

// SetPage jumps to index, clamped to [0, count-1].
func (s *State) SetPage(index, count int) {
	switch {
	case count <= 0 || index < 0:
		s.Page = 0
	case index >= count:
		s.Page = count - 1
	default:
		s.Page = index
	}
}

func (s *State) Next(count int) { s.SetPage(s.Page+1, count) }

func (s *State) Prev(count int) { s.SetPage(s.Page-1, count) }

// RenderState renders records with the configuration held in s.
func RenderState[T Searchable](records []T, s *State, keys Keys[T]) (Page[T], error) {
	return Render(records, s.Query, s.Sort, s.Page, s.PageSize, keys)
}
