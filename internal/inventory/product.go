package inventory

import (
	"github.com/shopspring/decimal"

	errx "github.com/poskit-v1/terminal/internal/core/error"
)

// Product is a catalog entry. The store owns the authoritative copy;
// callers always work with value copies.
type Product struct {
	ID        int
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Validate re-asserts the catalog invariants. The interactive layer already
// rejects bad input, but seed data and tests drive the store directly.
func (p Product) Validate() error {
	if p.ID <= 0 {
		return errx.New(nil, errx.CodeInvalidProduct, "product id must be positive")
	}
	if p.Name == "" {
		return errx.New(nil, errx.CodeInvalidProduct, "product name is required")
	}
	if p.Quantity < 0 {
		return errx.New(nil, errx.CodeInvalidProduct, "product quantity cannot be negative")
	}
	if !p.UnitPrice.IsPositive() {
		return errx.New(nil, errx.CodeInvalidProduct, "product unit price must be positive")
	}
	return nil
}
