package types

import "github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"

// CreateOrderInput derives and stores an order for UserID.
// OrderID and Number are minted by the service unless preassigned, which lets a
// retried workflow activity write the same order twice without duplicating it.
type CreateOrderInput struct {
	UserID  string        `json:"userId" validate:"required"`
	Items   []domain.Item `json:"items"`
	OrderID string        `json:"orderId,omitempty"`
	Number  string        `json:"number,omitempty"`
}

// CheckoutInput turns the cart CartID into an order for UserID.
type CheckoutInput struct {
	CartID         string `json:"cartId" validate:"required"`
	UserID         string `json:"userId" validate:"required"`
	IdempotencyKey string `json:"-"`
}
