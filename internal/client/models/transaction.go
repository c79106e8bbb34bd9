package models

import (
	"strconv"

	"github.com/shopspring/decimal"
)

// Transaction records the sale of one pack.
type Transaction struct {
	ID       int64           `json:"id"`
	PackID   int64           `json:"pack_id"`
	SaleDate string          `json:"sale_date"`
	Amount   decimal.Decimal `json:"amount"`
	Profit   decimal.Decimal `json:"profit"`
}

func (t Transaction) Key() int64 { return t.ID }

func (t Transaction) SearchFields() []string {
	return []string{
		strconv.FormatInt(t.ID, 10),
		strconv.FormatInt(t.PackID, 10),
		t.SaleDate,
		t.Amount.String(),
		t.Profit.String(),
	}
}
