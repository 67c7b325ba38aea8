package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/poskit-v1/terminal/internal/billing"
	"github.com/poskit-v1/terminal/internal/cart"
	errx "github.com/poskit-v1/terminal/internal/core/error"
	"github.com/poskit-v1/terminal/internal/inventory"
	"github.com/poskit-v1/terminal/internal/receipt"
	logx "github.com/poskit-v1/terminal/pkg/logger"
)

// Options configures a Terminal.
type Options struct {
	Currency  string
	Publisher receipt.Publisher
}

// Terminal drives the interactive menu loop. It owns the store and cart for
// the life of the process and serializes every operation on them; the core
// packages themselves are single-threaded.
type Terminal struct {
	store     *inventory.Store
	cart      *cart.Cart
	engine    *billing.Engine
	publisher receipt.Publisher
	currency  string

	in  *bufio.Scanner
	out io.Writer
}

func New(store *inventory.Store, c *cart.Cart, in io.Reader, out io.Writer, opts Options) *Terminal {
	pub := opts.Publisher
	if pub == nil {
		pub = receipt.NopPublisher{}
	}
	currency := opts.Currency
	if currency == "" {
		currency = "Rs"
	}
	return &Terminal{
		store:     store,
		cart:      c,
		engine:    billing.NewEngine(),
		publisher: pub,
		currency:  currency,
		in:        bufio.NewScanner(in),
		out:       out,
	}
}

// Run loops over the menu until the operator exits or input ends.
func (t *Terminal) Run(ctx context.Context) {
	for {
		fmt.Fprint(t.out, "\n===== POS SIMULATOR =====\n"+
			"1. Add product to inventory\n"+
			"2. Display inventory\n"+
			"3. Add item to cart\n"+
			"4. Display cart\n"+
			"5. Remove/edit cart item\n"+
			"6. Generate bill\n"+
			"7. Exit\n"+
			"Choose an option: ")

		line, ok := t.readLine()
		if !ok {
			return
		}
		choice, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(t.out, "Invalid option. Try again.")
			continue
		}

		switch choice {
		case 1:
			t.addProduct()
		case 2:
			t.displayInventory()
		case 3:
			t.addToCart()
		case 4:
			t.displayCart()
		case 5:
			t.editCart()
		case 6:
			t.generateBill(ctx)
		case 7:
			t.cart.Clear()
			fmt.Fprintln(t.out, "Exiting... Goodbye!")
			return
		default:
			fmt.Fprintln(t.out, "Invalid option. Try again.")
		}
	}
}

func (t *Terminal) addProduct() {
	id, ok := t.promptPositiveInt("Enter product ID (integer): ")
	if !ok {
		return
	}

	if existing, found := t.store.Search(id); found {
		fmt.Fprintf(t.out, "Product with ID %d already exists (%s).\n", existing.ID, existing.Name)
		answer, ok := t.prompt("Do you want to overwrite it? (y/n): ")
		if !ok {
			return
		}
		if !strings.EqualFold(strings.TrimSpace(answer), "y") {
			fmt.Fprintln(t.out, "Operation cancelled. Product not modified.")
			return
		}
	}

	name, ok := t.promptName("Enter product name: ")
	if !ok {
		return
	}
	qty, ok := t.promptNonNegativeInt("Enter quantity to add: ")
	if !ok {
		return
	}
	price, ok := t.promptPrice("Enter price per unit: ")
	if !ok {
		return
	}

	p := inventory.Product{ID: id, Name: name, Quantity: qty, UnitPrice: price}
	if err := t.store.InsertOrUpdate(p); err != nil {
		fmt.Fprintf(t.out, "Could not save product: %v\n", err)
		return
	}
	logx.Info().Int("id", id).Str("name", name).Msg("product added or updated")
	fmt.Fprintln(t.out, "Product added/updated in inventory.")
}

func (t *Terminal) displayInventory() {
	if t.store.Len() == 0 {
		fmt.Fprintln(t.out, "Inventory is empty.")
		return
	}
	fmt.Fprintln(t.out, "\n--- Inventory (sorted by ID) ---")
	for p := range t.store.All() {
		fmt.Fprintf(t.out, "ID: %d | Name: %s | Qty: %d | Price: %s\n",
			p.ID, p.Name, p.Quantity, p.UnitPrice.StringFixed(2))
	}
	fmt.Fprint(t.out, "--- End Inventory ---\n\n")
}

// addToCart stages a purchase. The stock check here is advisory; settlement
// revalidates against current stock and is authoritative.
func (t *Terminal) addToCart() {
	if t.store.Len() == 0 {
		fmt.Fprintln(t.out, "Inventory empty. Cannot add to cart.")
		return
	}

	id, ok := t.promptPositiveInt("Enter product ID to add to cart: ")
	if !ok {
		return
	}
	p, found := t.store.Search(id)
	if !found {
		fmt.Fprintf(t.out, "Product with ID %d not found.\n", id)
		return
	}
	if p.Quantity == 0 {
		fmt.Fprintf(t.out, "Product '%s' (ID %d) is OUT OF STOCK.\n", p.Name, p.ID)
		return
	}
	fmt.Fprintf(t.out, "Found: %s | Available Qty: %d | Price: %s\n",
		p.Name, p.Quantity, p.UnitPrice.StringFixed(2))

	var qty int
	for {
		qty, ok = t.promptPositiveInt("Enter quantity to add to cart: ")
		if !ok {
			return
		}
		if qty <= p.Quantity {
			break
		}
		fmt.Fprintf(t.out, "Not enough stock. Available: %d\n", p.Quantity)
	}

	if err := t.cart.AddOrMerge(p.ID, p.Name, qty, p.UnitPrice); err != nil {
		fmt.Fprintf(t.out, "Could not add to cart: %v\n", err)
		return
	}
	if line, found := t.cart.FindByID(p.ID); found && line.Quantity > qty {
		fmt.Fprintf(t.out, "Updated cart: %s new qty = %d\n", line.Name, line.Quantity)
	} else {
		fmt.Fprintf(t.out, "Added to cart: %s (qty %d)\n", p.Name, qty)
	}
}

func (t *Terminal) displayCart() {
	if t.cart.IsEmpty() {
		fmt.Fprintln(t.out, "Cart is empty.")
		return
	}
	fmt.Fprintln(t.out, "\n--- Cart ---")
	for l := range t.cart.All() {
		fmt.Fprintf(t.out, "ID: %d | Name: %s | Qty: %d | Unit Price: %s | Subtotal: %s\n",
			l.ProductID, l.Name, l.Quantity, l.UnitPrice.StringFixed(2), l.Subtotal().StringFixed(2))
	}
	fmt.Fprint(t.out, "--- End Cart ---\n\n")
}

func (t *Terminal) editCart() {
	if t.cart.IsEmpty() {
		fmt.Fprintln(t.out, "Cart is empty.")
		return
	}
	id, ok := t.promptPositiveInt("Enter product ID to edit: ")
	if !ok {
		return
	}
	line, found := t.cart.FindByID(id)
	if !found {
		fmt.Fprintf(t.out, "No cart line for ID %d.\n", id)
		return
	}
	fmt.Fprintf(t.out, "Current: %s | Qty: %d\n", line.Name, line.Quantity)

	qty, ok := t.promptNonNegativeInt("Enter new quantity (0 removes): ")
	if !ok {
		return
	}
	if err := t.cart.SetQuantity(id, qty); err != nil {
		fmt.Fprintf(t.out, "Could not update cart: %v\n", err)
		return
	}
	if qty == 0 {
		fmt.Fprintf(t.out, "Removed %s from cart.\n", line.Name)
	} else {
		fmt.Fprintf(t.out, "Updated cart: %s new qty = %d\n", line.Name, qty)
	}
}

func (t *Terminal) generateBill(ctx context.Context) {
	res, err := t.engine.GenerateBill(t.store, t.cart)
	fmt.Fprint(t.out, receipt.Render(res, t.currency))
	if errors.Is(err, errx.ErrEmptyCart) {
		return
	}
	fmt.Fprintln(t.out, "Cart cleared after billing.")
	if err := t.publisher.Publish(ctx, res); err != nil {
		logx.Error().Err(err).Str("bill", res.ID.String()).Msg("receipt publish failed")
	}
}

func (t *Terminal) readLine() (string, bool) {
	if !t.in.Scan() {
		return "", false
	}
	return t.in.Text(), true
}

func (t *Terminal) prompt(label string) (string, bool) {
	fmt.Fprint(t.out, label)
	return t.readLine()
}

func (t *Terminal) promptPositiveInt(label string) (int, bool) {
	for {
		line, ok := t.prompt(label)
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil {
			fmt.Fprintln(t.out, "Invalid input. Only integers allowed.")
			continue
		}
		if n <= 0 {
			fmt.Fprintln(t.out, "Value must be a positive integer.")
			continue
		}
		return n, true
	}
}

func (t *Terminal) promptNonNegativeInt(label string) (int, bool) {
	for {
		line, ok := t.prompt(label)
		if !ok {
			return 0, false
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err != nil || n < 0 {
			fmt.Fprintln(t.out, "Quantity must be a positive integer or zero.")
			continue
		}
		return n, true
	}
}

func (t *Terminal) promptName(label string) (string, bool) {
	for {
		line, ok := t.prompt(label)
		if !ok {
			return "", false
		}
		name := strings.TrimSpace(line)
		if name == "" || strings.ContainsFunc(name, unicode.IsDigit) {
			fmt.Fprintln(t.out, "Product name cannot contain numbers. Try again.")
			continue
		}
		return name, true
	}
}

func (t *Terminal) promptPrice(label string) (decimal.Decimal, bool) {
	for {
		line, ok := t.prompt(label)
		if !ok {
			return decimal.Zero, false
		}
		price, err := decimal.NewFromString(strings.TrimSpace(line))
		if err != nil || !price.IsPositive() {
			fmt.Fprintln(t.out, "Price must be a positive number.")
			continue
		}
		return price, true
	}
}
