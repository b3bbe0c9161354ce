package storefrontserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	ordermapper "github.com/Apurer/go-gin-storefront/internal/domains/orders/adapters/http/mapper"
	ordertypes "github.com/Apurer/go-gin-storefront/internal/domains/orders/application/types"
	orderports "github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

// IdempotencyKeyHeader lets clients retry a checkout without placing a second order.
const IdempotencyKeyHeader = "Idempotency-Key"

// OrdersAPI serves checkout and order history.
type OrdersAPI struct {
	service orderports.Service
}

func NewOrdersAPI(service orderports.Service) OrdersAPI {
	return OrdersAPI{service: service}
}

// Post /api/v1/carts/:cartId/checkout
// Turns the cart into an order and empties it
func (api *OrdersAPI) Checkout(c *gin.Context) {
	var payload ordermapper.CheckoutPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	input := ordertypes.CheckoutInput{
		CartID:         c.Param("cartId"),
		UserID:         payload.UserID,
		IdempotencyKey: strings.TrimSpace(c.GetHeader(IdempotencyKeyHeader)),
	}
	order, err := api.service.Checkout(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ordermapper.FromDomainOrder(order))
}

// Get /api/v1/users/:userId/orders
// Newest first
func (api *OrdersAPI) ListUserOrders(c *gin.Context) {
	orders, err := api.service.OrderHistory(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrders(orders))
}

// Get /api/v1/orders/:orderId
func (api *OrdersAPI) GetOrder(c *gin.Context) {
	order, err := api.service.GetOrder(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, ordermapper.FromDomainOrder(order))
}
