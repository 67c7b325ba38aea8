package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/poskit-v1/terminal/internal/cart"
	errx "github.com/poskit-v1/terminal/internal/core/error"
	"github.com/poskit-v1/terminal/internal/inventory"
	logx "github.com/poskit-v1/terminal/pkg/logger"
)

// LineStatus is the settlement outcome of a single cart line.
type LineStatus string

const (
	StatusBilled  LineStatus = "billed"
	StatusSkipped LineStatus = "skipped"
)

// SkipReason says why a line was left out of the bill.
type SkipReason string

const (
	ReasonNone              SkipReason = ""
	ReasonProductNotFound   SkipReason = "product_not_found"
	ReasonInvalidQuantity   SkipReason = "invalid_quantity"
	ReasonInsufficientStock SkipReason = "insufficient_stock"
)

// LineResult records what settlement did with one staged line. Remaining is
// the post-decrement stock for billed lines.
type LineResult struct {
	Line      cart.Line
	Status    LineStatus
	Reason    SkipReason
	Subtotal  decimal.Decimal
	Remaining int
}

// BillResult is the outcome of one settlement pass. Empty marks the
// no-charge case where nothing was staged at all.
type BillResult struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Lines     []LineResult
	Total     decimal.Decimal
	Empty     bool
}

// AnyBilled reports whether at least one line was charged. False means a
// no-charge notice: either an empty cart or every line skipped.
func (r BillResult) AnyBilled() bool {
	for _, l := range r.Lines {
		if l.Status == StatusBilled {
			return true
		}
	}
	return false
}

// Engine settles carts against inventory.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// GenerateBill reconciles the cart against current stock in a single pass.
// Lines are processed in insertion order; a line that cannot be billed is
// skipped with a reason and never aborts the rest. Billed lines decrement
// stock and charge the cart's snapshot price. The cart is drained up front,
// so it ends empty regardless of how many lines were skipped.
//
// Billing nothing is not fatal: an empty cart yields a no-charge result
// alongside errx.ErrEmptyCart, with no inventory mutation.
func (e *Engine) GenerateBill(store *inventory.Store, c *cart.Cart) (BillResult, error) {
	res := BillResult{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		Total:     decimal.Zero,
	}

	if c.IsEmpty() {
		res.Empty = true
		logx.Info().Str("bill", res.ID.String()).Msg("billing attempted with empty cart")
		return res, errx.ErrEmptyCart
	}

	for _, line := range c.DrainAll() {
		lr := LineResult{Line: line, Subtotal: decimal.Zero}

		if line.Quantity <= 0 {
			lr.Status = StatusSkipped
			lr.Reason = ReasonInvalidQuantity
			res.Lines = append(res.Lines, lr)
			continue
		}

		product, ok := store.Search(line.ProductID)
		if !ok {
			lr.Status = StatusSkipped
			lr.Reason = ReasonProductNotFound
			res.Lines = append(res.Lines, lr)
			continue
		}

		if product.Quantity < line.Quantity {
			lr.Status = StatusSkipped
			lr.Reason = ReasonInsufficientStock
			res.Lines = append(res.Lines, lr)
			continue
		}

		if err := store.AdjustQuantity(line.ProductID, -line.Quantity); err != nil {
			lr.Status = StatusSkipped
			lr.Reason = ReasonInsufficientStock
			res.Lines = append(res.Lines, lr)
			continue
		}

		lr.Status = StatusBilled
		lr.Subtotal = line.Subtotal()
		lr.Remaining = product.Quantity - line.Quantity
		res.Total = res.Total.Add(lr.Subtotal)
		res.Lines = append(res.Lines, lr)
	}

	logx.Info().
		Str("bill", res.ID.String()).
		Int("lines", len(res.Lines)).
		Bool("any_billed", res.AnyBilled()).
		Str("total", res.Total.StringFixed(2)).
		Msg("bill generated")
	return res, nil
}
