package models

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// PackDraft holds the form fields of a pack that has not been created yet.
// Identifier, status and creation date are assigned by the server.
type PackDraft struct {
	Brand         string          `validate:"required"`
	Category      string          `validate:"required"`
	Price         decimal.Decimal `validate:"gte=0"`
	NumberOfItems int             `validate:"min=1"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Validate checks the draft and reports the first offending field.
func (d PackDraft) Validate() error {
	d.Brand = strings.TrimSpace(d.Brand)
	d.Category = strings.TrimSpace(d.Category)

	err := validate.Struct(d)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ValidationError{Field: fe.Field(), Message: "failed on " + fe.Tag()}
	}
	return err
}

// SuggestCategories returns the known categories containing input,
// case-insensitively. Empty input suggests every category.
func SuggestCategories(categories []string, input string) []string {
	q := strings.ToLower(strings.TrimSpace(input))
	out := make([]string, 0, len(categories))
	for _, c := range categories {
		if q == "" || strings.Contains(strings.ToLower(c), q) {
			out = append(out, c)
		}
	}
	return out
}
