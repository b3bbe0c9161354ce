package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	cartmapper "github.com/Apurer/go-gin-storefront/internal/domains/cart/adapters/http/mapper"
	cartports "github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
)

// CartAPI serves shopping carts addressed by a client-chosen cart id.
type CartAPI struct {
	service cartports.Service
}

func NewCartAPI(service cartports.Service) CartAPI {
	return CartAPI{service: service}
}

// Get /api/v1/carts/:cartId
// Unknown carts are returned empty
func (api *CartAPI) GetCart(c *gin.Context) {
	view, err := api.service.GetCart(c.Request.Context(), c.Param("cartId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCart(c, view)
}

// Post /api/v1/carts/:cartId/items
// Adds quantity (default 1) units of a product, merging with an existing line
func (api *CartAPI) AddItem(c *gin.Context) {
	var payload cartmapper.AddItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	quantity := 1
	if payload.Quantity != nil {
		quantity = *payload.Quantity
	}
	view, err := api.service.AddItem(c.Request.Context(), c.Param("cartId"), payload.ProductID, quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCart(c, view)
}

// Put /api/v1/carts/:cartId/items/:productId
// A quantity of zero or less removes the line
func (api *CartAPI) UpdateItem(c *gin.Context) {
	var payload cartmapper.UpdateItemPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	view, err := api.service.UpdateItem(c.Request.Context(), c.Param("cartId"), c.Param("productId"), *payload.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCart(c, view)
}

// Delete /api/v1/carts/:cartId/items/:productId
func (api *CartAPI) RemoveItem(c *gin.Context) {
	view, err := api.service.RemoveItem(c.Request.Context(), c.Param("cartId"), c.Param("productId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCart(c, view)
}

// Delete /api/v1/carts/:cartId
func (api *CartAPI) ClearCart(c *gin.Context) {
	view, err := api.service.Clear(c.Request.Context(), c.Param("cartId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCart(c, view)
}

func respondCart(c *gin.Context, view *cartports.CartView) {
	body, err := cartmapper.FromView(view)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, body)
}
