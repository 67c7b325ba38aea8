package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errx "github.com/poskit-v1/terminal/internal/core/error"
)

func price(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

// TestAddOrMerge_MergesByID verifies adding the same product id twice yields
// one line with the summed quantity, not two lines.
func TestAddOrMerge_MergesByID(t *testing.T) {
	t.Parallel()

	c := New()
	require.NoError(t, c.AddOrMerge(5, "Pen", 2, price(10.0)))
	require.NoError(t, c.AddOrMerge(5, "Pen", 3, price(10.0)))

	assert.Equal(t, 1, c.Len())
	line, found := c.FindByID(5)
	require.True(t, found)
	assert.Equal(t, 5, line.Quantity)
}

// TestAddOrMerge_MergeKeepsSnapshots verifies a merge accumulates quantity
// only; the first name and price snapshots stay.
func TestAddOrMerge_MergeKeepsSnapshots(t *testing.T) {
	t.Parallel()

	c := New()
	require.NoError(t, c.AddOrMerge(5, "Pen", 2, price(10.0)))
	require.NoError(t, c.AddOrMerge(5, "Gel Pen", 1, price(99.0)))

	line, found := c.FindByID(5)
	require.True(t, found)
	assert.Equal(t, "Pen", line.Name)
	assert.Equal(t, "10.00", line.UnitPrice.StringFixed(2))
	assert.Equal(t, 3, line.Quantity)
}

// TestAddOrMerge_RejectsNonPositiveQuantity verifies qty <= 0 is rejected and
// leaves the cart untouched.
func TestAddOrMerge_RejectsNonPositiveQuantity(t *testing.T) {
	t.Parallel()

	c := New()
	require.ErrorIs(t, c.AddOrMerge(5, "Pen", 0, price(10.0)), errx.ErrInvalidQuantity)
	require.ErrorIs(t, c.AddOrMerge(5, "Pen", -2, price(10.0)), errx.ErrInvalidQuantity)
	assert.True(t, c.IsEmpty())
}

// TestAll_InsertionOrder verifies iteration follows insertion order even
// after merges.
func TestAll_InsertionOrder(t *testing.T) {
	t.Parallel()

	c := New()
	require.NoError(t, c.AddOrMerge(30, "Marker", 1, price(40.0)))
	require.NoError(t, c.AddOrMerge(10, "Pen", 1, price(10.0)))
	require.NoError(t, c.AddOrMerge(20, "Eraser", 1, price(5.0)))
	require.NoError(t, c.AddOrMerge(30, "Marker", 2, price(40.0)))

	var got []int
	for l := range c.All() {
		got = append(got, l.ProductID)
	}
	assert.Equal(t, []int{30, 10, 20}, got)
}

// TestRemoveByID verifies removal reports presence and preserves the other
// lines.
func TestRemoveByID(t *testing.T) {
	t.Parallel()

	c := New()
	require.NoError(t, c.AddOrMerge(1, "Pen", 1, price(10.0)))
	require.NoError(t, c.AddOrMerge(2, "Eraser", 1, price(5.0)))

	assert.True(t, c.RemoveByID(1))
	assert.False(t, c.RemoveByID(1))
	assert.Equal(t, 1, c.Len())

	_, found := c.FindByID(2)
	assert.True(t, found)
}

// TestSetQuantity verifies overwrite, removal at zero, rejection of negative
// values and the not-found case.
func TestSetQuantity(t *testing.T) {
	t.Parallel()

	c := New()
	require.NoError(t, c.AddOrMerge(1, "Pen", 5, price(10.0)))

	require.NoError(t, c.SetQuantity(1, 3))
	line, found := c.FindByID(1)
	require.True(t, found)
	assert.Equal(t, 3, line.Quantity)

	require.ErrorIs(t, c.SetQuantity(1, -1), errx.ErrInvalidQuantity)
	require.ErrorIs(t, c.SetQuantity(99, 2), errx.ErrProductNotFound)

	require.NoError(t, c.SetQuantity(1, 0))
	_, found = c.FindByID(1)
	assert.False(t, found)
	assert.True(t, c.IsEmpty())

	require.ErrorIs(t, c.SetQuantity(1, 0), errx.ErrProductNotFound)
}

// TestDrainAll verifies the staged lines come back in insertion order and the
// cart is empty afterwards.
func TestDrainAll(t *testing.T) {
	t.Parallel()

	c := New()
	require.NoError(t, c.AddOrMerge(2, "Eraser", 1, price(5.0)))
	require.NoError(t, c.AddOrMerge(1, "Pen", 4, price(10.0)))

	lines := c.DrainAll()
	require.Len(t, lines, 2)
	assert.Equal(t, 2, lines[0].ProductID)
	assert.Equal(t, 1, lines[1].ProductID)
	assert.True(t, c.IsEmpty())

	assert.Empty(t, c.DrainAll())
}

// TestSubtotal verifies the line subtotal uses the snapshot price.
func TestSubtotal(t *testing.T) {
	t.Parallel()

	l := Line{ProductID: 1, Name: "Notebook", Quantity: 2, UnitPrice: price(25.5)}
	assert.Equal(t, "51.00", l.Subtotal().StringFixed(2))
}

// TestClear verifies Clear discards everything.
func TestClear(t *testing.T) {
	t.Parallel()

	c := New()
	require.NoError(t, c.AddOrMerge(1, "Pen", 1, price(10.0)))
	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.Len())
}
