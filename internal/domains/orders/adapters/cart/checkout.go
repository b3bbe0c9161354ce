package cart

import (
	"context"
	"errors"
	"fmt"

	cartdomain "github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

var _ ports.Cart = (*Checkout)(nil)

// Checkout drains carts held by the cart service into orders.
type Checkout struct {
	carts cartports.Service
}

func NewCheckout(carts cartports.Service) *Checkout {
	return &Checkout{carts: carts}
}

func (c *Checkout) Checkout(ctx context.Context, cartID string, place ports.PlaceFunc) error {
	err := c.carts.Checkout(ctx, cartID, func(ctx context.Context, entries []cartdomain.Entry) error {
		err := place(ctx, ToItems(entries))
		if errors.Is(err, ports.ErrAlreadyPlaced) {
			return fmt.Errorf("%w: %w", cartports.ErrCheckoutSkipped, err)
		}
		return err
	})
	if errors.Is(err, cartdomain.ErrEmptyCart) {
		return fmt.Errorf("%w: %w", domain.ErrEmptyCart, err)
	}
	return err
}

// ToItems converts cart entries into order items.
func ToItems(entries []cartdomain.Entry) []domain.Item {
	items := make([]domain.Item, 0, len(entries))
	for _, e := range entries {
		p := e.Product.Clone()
		items = append(items, domain.Item{
			ProductID:       p.ID,
			Name:            p.Name,
			Image:           p.Image,
			Price:           p.Price,
			DiscountPercent: p.DiscountPercent,
			Quantity:        e.Quantity,
		})
	}
	return items
}
