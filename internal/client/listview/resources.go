package listview

import (
	"github.com/dmitrijs2005/packadmin/internal/client/models"
	"github.com/shopspring/decimal"
)

// Sort keys understood by the console.
const (
	KeyPrice         SortKey = "price"
	KeyDate          SortKey = "date"
	KeyBrand         SortKey = "brand"
	KeyItems         SortKey = "items"
	KeyID            SortKey = "id"
	KeyPack          SortKey = "pack"
	KeyAmount        SortKey = "amount"
	KeyProfit        SortKey = "profit"
	KeyCategory      SortKey = "category"
	KeyNumberOfPacks SortKey = "number_of_packs"
	KeyNumberOfItems SortKey = "number_of_items"
	KeyPacksSold     SortKey = "packs_sold"
	KeyTotalPrice    SortKey = "total_price"
)

var PackKeys = Keys[models.Pack]{
	KeyPrice: ByDecimal(func(p models.Pack) decimal.Decimal { return p.Price }),
	KeyDate:  ByTime(func(p models.Pack) string { return p.CreatedDate }),
	KeyBrand: ByText(func(p models.Pack) string { return p.Brand }),
	KeyItems: ByInt(func(p models.Pack) int64 { return int64(p.NumberOfItems) }),
	KeyID:    ByInt(func(p models.Pack) int64 { return p.ID }),
}

// AggregatedKeys has no date column; "price" orders by total price.
var AggregatedKeys = Keys[models.AggregatedPack]{
	KeyPrice:         ByDecimal(func(a models.AggregatedPack) decimal.Decimal { return a.TotalPrice }),
	KeyTotalPrice:    ByDecimal(func(a models.AggregatedPack) decimal.Decimal { return a.TotalPrice }),
	KeyCategory:      ByText(func(a models.AggregatedPack) string { return a.Category }),
	KeyNumberOfPacks: ByInt(func(a models.AggregatedPack) int64 { return int64(a.NumberOfPacks) }),
	KeyNumberOfItems: ByInt(func(a models.AggregatedPack) int64 { return int64(a.NumberOfItems) }),
	KeyPacksSold:     ByInt(func(a models.AggregatedPack) int64 { return int64(a.PacksSold) }),
}

var TransactionKeys = Keys[models.Transaction]{
	KeyDate:   ByTime(func(t models.Transaction) string { return t.SaleDate }),
	KeyAmount: ByDecimal(func(t models.Transaction) decimal.Decimal { return t.Amount }),
	KeyProfit: ByDecimal(func(t models.Transaction) decimal.Decimal { return t.Profit }),
	KeyID:     ByInt(func(t models.Transaction) int64 { return t.ID }),
}

// ItemKeys orders unassigned items before any pack when sorting by pack.
var ItemKeys = Keys[models.Item]{
	KeyID: ByInt(func(i models.Item) int64 { return i.ID }),
	KeyPack: ByInt(func(i models.Item) int64 {
		if i.PackID == nil {
			return -1
		}
		return *i.PackID
	}),
}
