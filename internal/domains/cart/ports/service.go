package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
)

// CartView is a read model of a cart with its aggregates.
type CartView struct {
	ID           string
	Entries      []domain.Entry
	ItemCount    int
	Total        decimal.Decimal
	DisplayTotal decimal.Decimal
}

// Service exposes cart use cases keyed by cart id.
type Service interface {
	GetCart(ctx context.Context, cartID string) (*CartView, error)
	AddItem(ctx context.Context, cartID, productID string, quantity int) (*CartView, error)
	UpdateItem(ctx context.Context, cartID, productID string, quantity int) (*CartView, error)
	RemoveItem(ctx context.Context, cartID, productID string) (*CartView, error)
	Clear(ctx context.Context, cartID string) (*CartView, error)
	// Checkout hands the entries to place and clears the cart once place succeeds.
	// An empty cart fails with domain.ErrEmptyCart before place is called.
	Checkout(ctx context.Context, cartID string, place PlaceFunc) error
}

// PlaceFunc turns a cart snapshot into an order.
type PlaceFunc func(ctx context.Context, entries []domain.Entry) error
