package cart

import (
	"iter"

	"github.com/shopspring/decimal"

	errx "github.com/poskit-v1/terminal/internal/core/error"
	logx "github.com/poskit-v1/terminal/pkg/logger"
)

// Line is one staged purchase. Name and UnitPrice are snapshots taken when
// the line was added; later catalog edits do not reach back into the cart.
type Line struct {
	ProductID int
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Subtotal is the snapshot price times the staged quantity.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart holds staged lines in insertion order, unique by product id. Every
// present line has quantity > 0. Not safe for concurrent use.
type Cart struct {
	lines []Line
}

func New() *Cart {
	return &Cart{}
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

func (c *Cart) Len() int {
	return len(c.lines)
}

// AddOrMerge stages a purchase. An id already present accumulates quantity
// onto the existing line; its name and price snapshots stay as first taken.
// A new id is appended at the end.
func (c *Cart) AddOrMerge(productID int, name string, quantity int, unitPrice decimal.Decimal) error {
	if quantity <= 0 {
		return errx.ErrInvalidQuantity
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity += quantity
			logx.Debug().Int("id", productID).Int("quantity", c.lines[i].Quantity).Msg("cart line merged")
			return nil
		}
	}
	c.lines = append(c.lines, Line{
		ProductID: productID,
		Name:      name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	})
	logx.Debug().Int("id", productID).Int("quantity", quantity).Msg("cart line added")
	return nil
}

// FindByID returns a copy of the line for the given product id.
func (c *Cart) FindByID(productID int) (Line, bool) {
	for _, l := range c.lines {
		if l.ProductID == productID {
			return l, true
		}
	}
	return Line{}, false
}

// RemoveByID drops the line for the given id, reporting whether one existed.
func (c *Cart) RemoveByID(productID int) bool {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			logx.Debug().Int("id", productID).Msg("cart line removed")
			return true
		}
	}
	return false
}

// SetQuantity overwrites a line's quantity. Zero removes the line, a
// negative value is rejected, a missing id is reported as not found.
func (c *Cart) SetQuantity(productID int, quantity int) error {
	if quantity < 0 {
		return errx.ErrInvalidQuantity
	}
	if quantity == 0 {
		if !c.RemoveByID(productID) {
			return errx.ErrProductNotFound
		}
		return nil
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = quantity
			logx.Debug().Int("id", productID).Int("quantity", quantity).Msg("cart line quantity set")
			return nil
		}
	}
	return errx.ErrProductNotFound
}

// DrainAll returns every staged line in insertion order and empties the cart
// in the same step, so the cart is empty even if the caller later skips some
// of the returned lines.
func (c *Cart) DrainAll() []Line {
	lines := c.lines
	c.lines = nil
	return lines
}

// Clear discards every staged line.
func (c *Cart) Clear() {
	c.lines = nil
}

// All yields the staged lines in insertion order. The sequence is lazy,
// finite and restartable; lines are yielded as copies.
func (c *Cart) All() iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for _, l := range c.lines {
			if !yield(l) {
				return
			}
		}
	}
}
