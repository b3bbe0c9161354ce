package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-storefront/internal/shared/validation"
)

func intPtr(i int) *int { return &i }

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestEffectivePrice_NoDiscountReturnsBase(t *testing.T) {
	price, err := EffectivePrice(dec(2500), nil)
	require.NoError(t, err)
	require.True(t, price.Equal(dec(2500)))
}

func TestEffectivePrice_AppliesDiscountWithoutRounding(t *testing.T) {
	price, err := EffectivePrice(dec(333), intPtr(50))
	require.NoError(t, err)
	require.Equal(t, "166.5", price.String())
}

func TestEffectivePrice_MonotonicInDiscount(t *testing.T) {
	prev, err := EffectivePrice(dec(6200), intPtr(0))
	require.NoError(t, err)
	for d := 1; d <= 100; d++ {
		price, err := EffectivePrice(dec(6200), intPtr(d))
		require.NoError(t, err)
		require.True(t, price.LessThanOrEqual(prev), "discount %d increased price", d)
		prev = price
	}
	require.True(t, prev.IsZero())
}

func TestEffectivePrice_RejectsInvalidInput(t *testing.T) {
	_, err := EffectivePrice(dec(-1), nil)
	require.ErrorIs(t, err, validation.ErrValidation)

	_, err = EffectivePrice(dec(100), intPtr(101))
	require.ErrorIs(t, err, validation.ErrValidation)
	fields, _ := validation.FieldsOf(err)
	require.Contains(t, fields, "discount")

	_, err = EffectivePrice(dec(100), intPtr(-5))
	require.ErrorIs(t, err, validation.ErrValidation)
}

func TestUnitPrice_RoundsHalfUp(t *testing.T) {
	price, err := UnitPrice(dec(333), intPtr(50))
	require.NoError(t, err)
	require.True(t, price.Equal(dec(167)))

	price, err = UnitPrice(dec(2500), intPtr(10))
	require.NoError(t, err)
	require.True(t, price.Equal(dec(2250)))
}

func TestLineTotal(t *testing.T) {
	total, err := LineTotal(Line{BasePrice: dec(1000), DiscountPercent: intPtr(10), Quantity: 2})
	require.NoError(t, err)
	require.True(t, total.Equal(dec(1800)))

	_, err = LineTotal(Line{BasePrice: dec(1000), Quantity: 0})
	require.ErrorIs(t, err, validation.ErrValidation)
}

func TestCartTotal_ConcreteScenario(t *testing.T) {
	lines := []Line{
		{BasePrice: dec(100), Quantity: 1},
		{BasePrice: dec(200), DiscountPercent: intPtr(50), Quantity: 3},
	}
	total, err := CartTotal(lines)
	require.NoError(t, err)
	require.True(t, total.Equal(dec(400)))
	require.Equal(t, 4, ItemCount(lines))
}

func TestCartTotal_InvariantUnderReordering(t *testing.T) {
	lines := []Line{
		{BasePrice: dec(2500), DiscountPercent: intPtr(10), Quantity: 1},
		{BasePrice: dec(6200), DiscountPercent: intPtr(15), Quantity: 2},
		{BasePrice: dec(333), DiscountPercent: intPtr(50), Quantity: 3},
	}
	reversed := []Line{lines[2], lines[1], lines[0]}
	a, err := CartTotal(lines)
	require.NoError(t, err)
	b, err := CartTotal(reversed)
	require.NoError(t, err)
	require.True(t, a.Equal(b))
	require.Equal(t, ItemCount(lines), ItemCount(reversed))
}

// The cart display and the order total use different rounding policies and
// can disagree for the same entries.
func TestRoundingPolicies_Diverge(t *testing.T) {
	line := Line{BasePrice: dec(333), DiscountPercent: intPtr(50), Quantity: 3}

	cartTotal, err := CartTotal([]Line{line})
	require.NoError(t, err)
	require.Equal(t, "499.5", cartTotal.String())
	require.True(t, DisplayAmount(cartTotal).Equal(dec(500)))

	orderTotal, err := LineTotal(line)
	require.NoError(t, err)
	require.True(t, orderTotal.Equal(dec(501)))
}

func TestCartTotal_EmptyIsZero(t *testing.T) {
	total, err := CartTotal(nil)
	require.NoError(t, err)
	require.True(t, total.IsZero())
	require.Zero(t, ItemCount(nil))
}
