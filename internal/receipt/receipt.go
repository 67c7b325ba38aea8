package receipt

import (
	"fmt"
	"strings"

	"github.com/poskit-v1/terminal/internal/billing"
)

// Render formats a settled bill as the printable receipt shown to the
// operator and pushed to the back-office feed.
func Render(res billing.BillResult, currency string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "===== BILL %s =====\n", res.ID)
	if res.Empty {
		b.WriteString("Cart empty. Nothing to bill.\n")
		b.WriteString("===== END BILL =====\n")
		return b.String()
	}

	for _, lr := range res.Lines {
		switch lr.Status {
		case billing.StatusBilled:
			fmt.Fprintf(&b, "%s | Qty: %d | Unit: %s | Subtotal: %s | Remaining: %d\n",
				lr.Line.Name, lr.Line.Quantity,
				lr.Line.UnitPrice.StringFixed(2), lr.Subtotal.StringFixed(2), lr.Remaining)
		case billing.StatusSkipped:
			fmt.Fprintf(&b, "%s (ID %d) skipped: %s\n",
				lr.Line.Name, lr.Line.ProductID, skipText(lr.Reason))
		}
	}

	b.WriteString("--------------------------\n")
	if res.AnyBilled() {
		fmt.Fprintf(&b, "TOTAL AMOUNT: %s %s\n", currency, res.Total.StringFixed(2))
	} else {
		b.WriteString("No valid items to bill. Nothing charged.\n")
	}
	b.WriteString("===== END BILL =====\n")
	return b.String()
}

func skipText(r billing.SkipReason) string {
	switch r {
	case billing.ReasonProductNotFound:
		return "not found in inventory"
	case billing.ReasonInvalidQuantity:
		return "invalid quantity"
	case billing.ReasonInsufficientStock:
		return "insufficient stock"
	default:
		return string(r)
	}
}
