package domain

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func product(id string, price int64, discount *int) ProductSnapshot {
	return ProductSnapshot{ID: id, Name: "Product " + id, Price: decimal.NewFromInt(price), DiscountPercent: discount}
}

func pct(d int) *int { return &d }

func TestCart_AddSameProductMerges(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.Add(product("a", 100, nil), 2))
	require.NoError(t, c.Add(product("a", 100, nil), 3))

	entries := c.Entries()
	require.Len(t, entries, 1)
	require.Equal(t, 5, entries[0].Quantity)
}

func TestCart_AddRejectsNonPositiveQuantity(t *testing.T) {
	c := NewCart()
	require.ErrorIs(t, c.Add(product("a", 100, nil), 0), ErrInvalidQuantity)
	require.True(t, c.IsEmpty())
}

func TestCart_UpdateToZeroEqualsRemove(t *testing.T) {
	build := func() *Cart {
		c := NewCart()
		require.NoError(t, c.Add(product("a", 100, nil), 1))
		require.NoError(t, c.Add(product("b", 200, nil), 2))
		require.NoError(t, c.Add(product("c", 300, nil), 3))
		return c
	}
	updated := build()
	touched, err := updated.UpdateQuantity("b", 0)
	require.NoError(t, err)
	require.True(t, touched)
	removed := build()
	require.True(t, removed.Remove("b"))

	require.Equal(t, removed.Entries(), updated.Entries())
	require.Equal(t, []string{"a", "c"}, ids(updated.Entries()))
}

func TestCart_RemoveMissingIsNoop(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.Add(product("a", 100, nil), 1))
	require.False(t, c.Remove("zzz"))
	touched, err := c.UpdateQuantity("zzz", 4)
	require.NoError(t, err)
	require.False(t, touched)
	require.Len(t, c.Entries(), 1)
}

func TestCart_ConcreteTotals(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.Add(product("A", 100, nil), 1))
	require.NoError(t, c.Add(product("B", 200, pct(50)), 3))

	total, err := c.Total()
	require.NoError(t, err)
	require.True(t, total.Equal(decimal.NewFromInt(400)), total.String())
	require.Equal(t, 4, c.ItemCount())
}

func TestCart_EntriesAreCopies(t *testing.T) {
	c := NewCart()
	p := product("a", 100, pct(10))
	p.SizeIDs = []string{"m"}
	require.NoError(t, c.Add(p, 1))

	entries := c.Entries()
	entries[0].Quantity = 99
	*entries[0].Product.DiscountPercent = 90
	entries[0].Product.SizeIDs[0] = "xl"

	again := c.Entries()
	require.Equal(t, 1, again[0].Quantity)
	require.Equal(t, 10, *again[0].Product.DiscountPercent)
	require.Equal(t, "m", again[0].Product.SizeIDs[0])
}

func TestRestore_RejectsInvalidEntries(t *testing.T) {
	_, err := Restore([]Entry{{Product: product("a", 1, nil), Quantity: 0}})
	require.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = Restore([]Entry{{Product: product("a", 1, nil), Quantity: 1}, {Product: product("a", 1, nil), Quantity: 2}})
	require.ErrorIs(t, err, ErrDuplicateEntry)

	_, err = Restore([]Entry{{Quantity: 1}})
	require.ErrorIs(t, err, ErrMissingProduct)

	c, err := Restore([]Entry{{Product: product("a", 1, nil), Quantity: 2}})
	require.NoError(t, err)
	require.Equal(t, 2, c.ItemCount())
}

func ids(entries []Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Product.ID)
	}
	return out
}

func TestCart_AddRejectsUnitOverflow(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.Add(product("a", 100, nil), 2))

	require.ErrorIs(t, c.Add(product("a", 100, nil), math.MaxInt), ErrTooManyUnits)
	require.ErrorIs(t, c.Add(product("b", 100, nil), math.MaxInt-1), ErrTooManyUnits)
	require.Equal(t, 2, c.ItemCount())
	require.Len(t, c.Entries(), 1)
	require.NoError(t, c.Validate())
}

func TestCart_UpdateQuantityRejectsUnitOverflow(t *testing.T) {
	c := NewCart()
	require.NoError(t, c.Add(product("a", 100, nil), 2))
	require.NoError(t, c.Add(product("b", 100, nil), 3))

	_, err := c.UpdateQuantity("a", math.MaxInt)
	require.ErrorIs(t, err, ErrTooManyUnits)
	require.Equal(t, 5, c.ItemCount())

	touched, err := c.UpdateQuantity("a", math.MaxInt-3)
	require.NoError(t, err)
	require.True(t, touched)
}

func TestRestore_RejectsUnitOverflow(t *testing.T) {
	_, err := Restore([]Entry{
		{Product: product("a", 100, nil), Quantity: math.MaxInt},
		{Product: product("b", 100, nil), Quantity: 1},
	})
	require.ErrorIs(t, err, ErrTooManyUnits)
}
