package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists placed orders.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// ListByUser returns the user's orders in storage order.
	ListByUser(ctx context.Context, userID string) ([]*domain.Order, error)
}

// IDGenerator mints the opaque order id and the human-facing order number.
// Order numbers are not checked for collisions.
type IDGenerator interface {
	NewID() string
	NewNumber() string
}
