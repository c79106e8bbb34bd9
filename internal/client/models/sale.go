package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Inline messages shown on the sale amount field.
const (
	MsgInvalidAmount = "Invalid amount entered."
	MsgAmountBelow   = "Amount value should be bigger or equal to price."
)

// ValidateSale parses the entered sale amount and checks it against the
// pack price. It returns the amount and the derived profit. Non-numeric or
// negative input and amounts below the price are rejected with a
// *ValidationError.
func ValidateSale(amountText string, price decimal.Decimal) (decimal.Decimal, decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(amountText))
	if err != nil || amount.IsNegative() {
		return decimal.Zero, decimal.Zero, &ValidationError{Field: "amount", Message: MsgInvalidAmount}
	}
	if amount.LessThan(price) {
		return decimal.Zero, decimal.Zero, &ValidationError{Field: "amount", Message: MsgAmountBelow}
	}
	return amount, amount.Sub(price), nil
}
