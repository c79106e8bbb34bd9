package models

import "strconv"

// Item belongs to at most one pack. A nil PackID marks an unassigned item.
type Item struct {
	ID     int64  `json:"id"`
	PackID *int64 `json:"pack_id"`
	Name   string `json:"name"`
}

func (i Item) Key() int64 { return i.ID }

// SearchFields matches items by identifier only.
func (i Item) SearchFields() []string {
	return []string{strconv.FormatInt(i.ID, 10)}
}

// PackLabel renders the owning pack id, or "-" for unassigned items.
func (i Item) PackLabel() string {
	if i.PackID == nil {
		return "-"
	}
	return strconv.FormatInt(*i.PackID, 10)
}
