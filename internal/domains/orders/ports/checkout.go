package ports

import (
	"context"
	"errors"

	types "github.com/Apurer/go-gin-storefront/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
)

// ErrStoreClosed is returned when checkout is attempted while the storefront is closed.
var ErrStoreClosed = errors.New("the store is closed")

// ErrAlreadyPlaced is returned by a PlaceFunc when the checkout already produced
// an order. The cart is left as it is and no failure is reported to the shopper.
var ErrAlreadyPlaced = errors.New("order already placed for this checkout")

// PlaceFunc receives the items of a cart being checked out.
type PlaceFunc func(ctx context.Context, items []domain.Item) error

// Cart drains a shopping cart into an order. The cart is cleared only when place succeeds.
type Cart interface {
	Checkout(ctx context.Context, cartID string, place PlaceFunc) error
}

// StoreStatus reports whether the storefront accepts orders.
type StoreStatus interface {
	IsClosed(ctx context.Context) (bool, error)
}

// WorkflowOrchestrator runs order placement, durably when a workflow engine is available.
type WorkflowOrchestrator interface {
	PlaceOrder(ctx context.Context, input types.CreateOrderInput) (*domain.Order, error)
}
