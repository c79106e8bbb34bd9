// Package models defines the client-side records the packadmin console
// fetches from the remote data service, plus the drafts it submits back.
package models

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Pack statuses as reported by the server. The console renders them but
// never derives them.
const (
	PackStatusAvailable = "available"
	PackStatusSold      = "sold"
)

// Pack is a purchasable bundle of items and images.
type Pack struct {
	ID       int64           `json:"id"`
	Brand    string          `json:"brand"`
	Category string          `json:"category"`
	Price    decimal.Decimal `json:"price"`
	// NumberOfItems mirrors the server's column name on the wire.
	NumberOfItems int `json:"NumberofItems"`
	// CreatedDate is the raw ISO-8601 timestamp; it is parsed only when
	// ordering by date.
	CreatedDate string  `json:"created_date"`
	Status      string  `json:"status"`
	Images      []Image `json:"images"`
}

// Key returns the record identity.
func (p Pack) Key() int64 { return p.ID }

// Sold reports whether the server marks the pack as sold.
func (p Pack) Sold() bool { return p.Status == PackStatusSold }

// SearchFields returns the textual forms matched by the free-text filter.
func (p Pack) SearchFields() []string {
	return []string{
		p.Brand,
		p.Category,
		p.Price.String(),
		strconv.Itoa(p.NumberOfItems),
		strconv.FormatInt(p.ID, 10),
	}
}
