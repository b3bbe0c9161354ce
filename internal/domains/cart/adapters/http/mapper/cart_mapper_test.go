package mapper

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	"github.com/Apurer/go-gin-storefront/internal/shared/validation"
)

func TestFromView_RoundsPerLine(t *testing.T) {
	discount := 15
	view := &ports.CartView{
		ID: "c1",
		Entries: []domain.Entry{
			{Product: domain.ProductSnapshot{ID: "p1", Name: "Tee", Price: decimal.NewFromInt(999), DiscountPercent: &discount}, Quantity: 2},
		},
		ItemCount:    2,
		DisplayTotal: decimal.NewFromInt(1698),
	}

	body, err := FromView(view)
	require.NoError(t, err)
	require.Len(t, body.Items, 1)
	require.Equal(t, 849.0, body.Items[0].UnitPrice)
	require.Equal(t, 1698.0, body.Items[0].LineTotal)
	require.Equal(t, []string{}, body.Items[0].Sizes)
	require.Equal(t, 1698.0, body.Total)
}

func TestFromView_ReportsPricingErrors(t *testing.T) {
	discount := 120
	view := &ports.CartView{
		ID: "c1",
		Entries: []domain.Entry{
			{Product: domain.ProductSnapshot{ID: "p1", Price: decimal.NewFromInt(100), DiscountPercent: &discount}, Quantity: 1},
		},
	}

	_, err := FromView(view)
	require.ErrorIs(t, err, validation.ErrValidation)
	require.ErrorContains(t, err, `"p1"`)
}

func TestFromView_NilIsEmptyCart(t *testing.T) {
	body, err := FromView(nil)
	require.NoError(t, err)
	require.Empty(t, body.Items)
	require.NotNil(t, body.Items)
}
