package ports

import (
	"context"

	types "github.com/Apurer/go-gin-storefront/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
)

// Service exposes order use cases to adapters.
type Service interface {
	CreateOrder(ctx context.Context, input types.CreateOrderInput) (*domain.Order, error)
	Checkout(ctx context.Context, input types.CheckoutInput) (*domain.Order, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	OrderHistory(ctx context.Context, userID string) ([]*domain.Order, error)
}
