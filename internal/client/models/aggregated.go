package models

import "github.com/shopspring/decimal"

// AggregatedPack is a server-computed per-category rollup. The console only
// sorts and paginates it.
type AggregatedPack struct {
	Category      string          `json:"category"`
	NumberOfPacks int             `json:"number_of_packs"`
	NumberOfItems int             `json:"number_of_items"`
	PacksSold     int             `json:"packs_sold"`
	TotalPrice    decimal.Decimal `json:"total_price"`
}

func (a AggregatedPack) SearchFields() []string {
	return []string{a.Category}
}
