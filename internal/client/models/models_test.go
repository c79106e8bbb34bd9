package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSale(t *testing.T) {
	price := decimal.NewFromInt(75)

	tests := []struct {
		name       string
		amount     string
		wantMsg    string
		wantProfit string
	}{
		{name: "below price", amount: "50", wantMsg: MsgAmountBelow},
		{name: "not a number", amount: "abc", wantMsg: MsgInvalidAmount},
		{name: "negative", amount: "-5", wantMsg: MsgInvalidAmount},
		{name: "empty", amount: "", wantMsg: MsgInvalidAmount},
		{name: "equal to price", amount: "75", wantProfit: "0"},
		{name: "above price", amount: " 100.50 ", wantProfit: "25.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, profit, err := ValidateSale(tt.amount, price)
			if tt.wantMsg != "" {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrValidation))
				var ve *ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Equal(t, tt.wantMsg, ve.Message)
				assert.Equal(t, "amount", ve.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantProfit, profit.String())
			assert.True(t, amount.GreaterThanOrEqual(price))
		})
	}
}

func TestPackDraft_Validate(t *testing.T) {
	ok := PackDraft{Brand: "Acme", Category: "Tools", Price: decimal.NewFromInt(10), NumberOfItems: 1}
	require.NoError(t, ok.Validate())

	tests := []struct {
		name  string
		draft PackDraft
		field string
	}{
		{"missing brand", PackDraft{Brand: "  ", Category: "Tools", NumberOfItems: 1}, "Brand"},
		{"missing category", PackDraft{Brand: "Acme", NumberOfItems: 1}, "Category"},
		{"negative price", PackDraft{Brand: "Acme", Category: "Tools", Price: decimal.NewFromInt(-1), NumberOfItems: 1}, "Price"},
		{"no items", PackDraft{Brand: "Acme", Category: "Tools", Price: decimal.NewFromInt(1)}, "NumberOfItems"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestSuggestCategories(t *testing.T) {
	cats := []string{"Shoes", "Shirts", "Hats"}
	assert.Equal(t, cats, SuggestCategories(cats, ""))
	assert.Equal(t, []string{"Shoes", "Shirts"}, SuggestCategories(cats, "sh"))
	assert.Empty(t, SuggestCategories(cats, "bags"))
}

func TestSearchFields(t *testing.T) {
	pack := Pack{ID: 7, Brand: "Acme", Category: "Tools", Price: decimal.RequireFromString("12.50"), NumberOfItems: 3}
	assert.Equal(t, []string{"Acme", "Tools", "12.5", "3", "7"}, pack.SearchFields())

	item := Item{ID: 512}
	assert.Equal(t, []string{"512"}, item.SearchFields())
	assert.Equal(t, "-", item.PackLabel())

	tx := Transaction{ID: 42, PackID: 7, SaleDate: "2024-05-01T10:00:00Z", Amount: decimal.NewFromInt(90), Profit: decimal.NewFromInt(15)}
	assert.Equal(t, []string{"42", "7", "2024-05-01T10:00:00Z", "90", "15"}, tx.SearchFields())
}

func TestPack_DecodesServerShape(t *testing.T) {
	raw := `{"id":3,"brand":"Acme","category":"Tools","price":19.99,"NumberofItems":4,
		"created_date":"2024-03-01T08:00:00.000Z","status":"available",
		"images":[{"id":11,"pack_id":3,"data":"aGVsbG8="}]}`

	var p Pack
	require.NoError(t, json.Unmarshal([]byte(raw), &p))
	assert.Equal(t, int64(3), p.ID)
	assert.Equal(t, 4, p.NumberOfItems)
	assert.Equal(t, "19.99", p.Price.String())
	require.Len(t, p.Images, 1)
	assert.Equal(t, []byte("hello"), p.Images[0].Data)
}

func TestPack_Sold(t *testing.T) {
	assert.True(t, Pack{Status: PackStatusSold}.Sold())
	assert.False(t, Pack{Status: PackStatusAvailable}.Sold())
	assert.False(t, Pack{}.Sold())
}
