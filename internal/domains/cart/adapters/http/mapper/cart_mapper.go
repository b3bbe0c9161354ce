package mapper

import (
	"fmt"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	"github.com/Apurer/go-gin-storefront/internal/shared/pricing"
)

// CartItem is one cart line as rendered by the storefront.
type CartItem struct {
	ProductID string   `json:"productId"`
	Name      string   `json:"name"`
	Image     string   `json:"image,omitempty"`
	Sizes     []string `json:"sizes"`
	Price     float64  `json:"price"`
	Discount  *int     `json:"discount,omitempty"`
	UnitPrice float64  `json:"unitPrice"`
	Quantity  int      `json:"quantity"`
	LineTotal float64  `json:"lineTotal"`
}

// Cart is the HTTP representation of a cart.
type Cart struct {
	ID        string     `json:"id"`
	Items     []CartItem `json:"items"`
	ItemCount int        `json:"itemCount"`
	Total     float64    `json:"total"`
}

// AddItemPayload is the body of POST /carts/:cartId/items.
type AddItemPayload struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  *int   `json:"quantity"`
}

// UpdateItemPayload is the body of PUT /carts/:cartId/items/:productId.
type UpdateItemPayload struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// FromView renders a cart. Unit prices and line totals use per-line rounding;
// the cart total is the display-rounded aggregate.
func FromView(view *ports.CartView) (Cart, error) {
	if view == nil {
		return Cart{Items: []CartItem{}}, nil
	}
	items := make([]CartItem, 0, len(view.Entries))
	for _, e := range view.Entries {
		line := e.PricingLine()
		unit, err := pricing.UnitPrice(line.BasePrice, line.DiscountPercent)
		if err != nil {
			return Cart{}, fmt.Errorf("price cart line %q: %w", e.Product.ID, err)
		}
		total, err := pricing.LineTotal(line)
		if err != nil {
			return Cart{}, fmt.Errorf("price cart line %q: %w", e.Product.ID, err)
		}
		sizes := e.Product.SizeIDs
		if sizes == nil {
			sizes = []string{}
		}
		items = append(items, CartItem{
			ProductID: e.Product.ID,
			Name:      e.Product.Name,
			Image:     e.Product.Image,
			Sizes:     sizes,
			Price:     e.Product.Price.InexactFloat64(),
			Discount:  e.Product.DiscountPercent,
			UnitPrice: unit.InexactFloat64(),
			Quantity:  e.Quantity,
			LineTotal: total.InexactFloat64(),
		})
	}
	return Cart{
		ID:        view.ID,
		Items:     items,
		ItemCount: view.ItemCount,
		Total:     view.DisplayTotal.InexactFloat64(),
	}, nil
}
