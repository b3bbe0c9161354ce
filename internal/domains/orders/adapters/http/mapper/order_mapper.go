package mapper

import (
	"time"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
)

// OrderItem is one order line as rendered to the customer.
type OrderItem struct {
	ProductID    string  `json:"productId"`
	ProductName  string  `json:"productName"`
	Quantity     int     `json:"quantity"`
	PricePerItem float64 `json:"pricePerItem"`
	Image        string  `json:"image"`
}

// Order is the HTTP representation of a placed order.
type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId"`
	OrderNumber     string      `json:"orderNumber"`
	OrderDate       time.Time   `json:"orderDate"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"totalAmount"`
	Status          string      `json:"status"`
	ShippingAddress string      `json:"shippingAddress,omitempty"`
	TrackingNumber  string      `json:"trackingNumber,omitempty"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// CheckoutPayload is the body of POST /carts/:cartId/checkout.
type CheckoutPayload struct {
	UserID string `json:"userId" binding:"required"`
}

func FromDomainOrder(o *domain.Order) Order {
	if o == nil {
		return Order{Items: []OrderItem{}}
	}
	items := make([]OrderItem, 0, len(o.Lines))
	for _, l := range o.Lines {
		items = append(items, OrderItem{
			ProductID:    l.ProductID,
			ProductName:  l.ProductName,
			Quantity:     l.Quantity,
			PricePerItem: l.UnitPrice.InexactFloat64(),
			Image:        l.Image,
		})
	}
	return Order{
		ID:              o.ID,
		UserID:          o.UserID,
		OrderNumber:     o.Number,
		OrderDate:       o.OrderDate,
		Items:           items,
		TotalAmount:     o.Total.InexactFloat64(),
		Status:          string(o.Status),
		ShippingAddress: o.ShippingAddress,
		TrackingNumber:  o.TrackingNumber,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

func FromDomainOrders(orders []*domain.Order) []Order {
	out := make([]Order, 0, len(orders))
	for _, o := range orders {
		out = append(out, FromDomainOrder(o))
	}
	return out
}
