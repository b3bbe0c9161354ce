// Package pricing computes discounted prices and cart aggregates.
//
// Two rounding policies coexist and are chosen per call site:
// CartTotal sums unrounded effective prices and is rounded only for display,
// while LineTotal (used when deriving orders) rounds the unit price first.
// The two can disagree by a few currency units for the same entries.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-storefront/internal/shared/validation"
)

var hundred = decimal.NewFromInt(100)

// Line is the pricing view of a cart entry.
type Line struct {
	BasePrice       decimal.Decimal
	DiscountPercent *int
	Quantity        int
}

// EffectivePrice applies the optional percentage discount. The result is not rounded.
func EffectivePrice(base decimal.Decimal, discountPercent *int) (decimal.Decimal, error) {
	if base.IsNegative() {
		return decimal.Zero, validation.Field("price", "must not be negative")
	}
	if discountPercent == nil {
		return base, nil
	}
	d := *discountPercent
	if d < 0 || d > 100 {
		return decimal.Zero, validation.Field("discount", "must be between 0 and 100")
	}
	factor := hundred.Sub(decimal.NewFromInt(int64(d))).Div(hundred)
	return base.Mul(factor), nil
}

// UnitPrice is the effective price rounded half-up to a whole currency unit.
func UnitPrice(base decimal.Decimal, discountPercent *int) (decimal.Decimal, error) {
	price, err := EffectivePrice(base, discountPercent)
	if err != nil {
		return decimal.Zero, err
	}
	return Round(price), nil
}

// LineTotal is the rounded unit price times the quantity.
func LineTotal(line Line) (decimal.Decimal, error) {
	if line.Quantity < 1 {
		return decimal.Zero, validation.Field("quantity", "must be at least 1")
	}
	unit, err := UnitPrice(line.BasePrice, line.DiscountPercent)
	if err != nil {
		return decimal.Zero, err
	}
	return unit.Mul(decimal.NewFromInt(int64(line.Quantity))), nil
}

// CartTotal sums unrounded effective prices times quantities.
// Use DisplayAmount to present the result.
func CartTotal(lines []Line) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, line := range lines {
		if line.Quantity < 1 {
			return decimal.Zero, validation.Field("quantity", "must be at least 1")
		}
		price, err := EffectivePrice(line.BasePrice, line.DiscountPercent)
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total, nil
}

// ItemCount sums the quantities.
func ItemCount(lines []Line) int {
	count := 0
	for _, line := range lines {
		count += line.Quantity
	}
	return count
}

// DisplayAmount rounds an aggregate for presentation.
func DisplayAmount(amount decimal.Decimal) decimal.Decimal {
	return Round(amount)
}

// Round rounds half away from zero to a whole unit, which is half-up for prices.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(0)
}
