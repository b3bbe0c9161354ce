package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	ordersapp "github.com/Apurer/go-gin-storefront/internal/domains/orders/application"
	types "github.com/Apurer/go-gin-storefront/internal/domains/orders/application/types"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	ordersports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

const (
	// PersistOrderActivityName derives and stores an order.
	PersistOrderActivityName = "orders.activities.PersistOrder"
	// RejectedOrderErrorType marks failures that retrying cannot fix.
	RejectedOrderErrorType = "RejectedOrder"
)

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	persistService ordersports.Service
}

// NewActivities wires the orders service into the Temporal activities bundle.
// persistService must not route placement back through Temporal.
func NewActivities(persistService ordersports.Service) *Activities {
	return &Activities{persistService: persistService}
}

// PersistOrder stores the order. The input carries a preassigned id, so a retry after
// a successful write returns the stored order instead of creating a second one.
func (a *Activities) PersistOrder(ctx context.Context, input types.CreateOrderInput) (*domain.Order, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.persistService == nil {
		logger.Error("order persist activity not initialized", "orderId", input.OrderID)
		return nil, errors.New("order persist activity not initialized")
	}
	logger.Info("PersistOrder activity started", "orderId", input.OrderID, "userId", input.UserID)
	order, err := a.persistService.CreateOrder(ctx, input)
	if err != nil {
		logger.Error("PersistOrder activity failed", "orderId", input.OrderID, "error", err)
		if errors.Is(err, ordersapp.ErrInvalidInput) || errors.Is(err, ordersapp.ErrUnprocessable) {
			return nil, temporal.NewNonRetryableApplicationError(err.Error(), RejectedOrderErrorType, err)
		}
		return nil, err
	}
	logger.Info("PersistOrder activity completed", "orderId", order.ID, "orderNumber", order.Number)
	return order, nil
}
