package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BasePath prefixes every storefront route.
const BasePath = "/api/v1"

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the per-context APIs served by the router.
type ApiHandleFunctions struct {
	CatalogAPI   CatalogAPI
	AdminAPI     AdminAPI
	CartAPI      CartAPI
	OrdersAPI    OrdersAPI
	CustomersAPI CustomersAPI
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware...)
	return NewRouterWithGinEngine(router, handleFunctions)
}

// NewRouterWithGinEngine registers the storefront routes on router.
// Middleware must already be attached; gin does not apply Use to routes registered earlier.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}
	router.NoRoute(func(c *gin.Context) {
		responder.NotFound(c, "route", c.Request.URL.Path)
	})
	return router
}

// DefaultHandleFunc is used for routes without a handler.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(h ApiHandleFunctions) []Route {
	return []Route{
		{"GetStoreSettings", http.MethodGet, BasePath + "/store/settings", h.CatalogAPI.GetStoreSettings},
		{"ListProducts", http.MethodGet, BasePath + "/products", h.CatalogAPI.ListProducts},
		{"GetProduct", http.MethodGet, BasePath + "/products/:productId", h.CatalogAPI.GetProduct},
		{"ListBrands", http.MethodGet, BasePath + "/brands", h.CatalogAPI.ListBrands},
		{"ListSizes", http.MethodGet, BasePath + "/sizes", h.CatalogAPI.ListSizes},

		{"GetCart", http.MethodGet, BasePath + "/carts/:cartId", h.CartAPI.GetCart},
		{"AddCartItem", http.MethodPost, BasePath + "/carts/:cartId/items", h.CartAPI.AddItem},
		{"UpdateCartItem", http.MethodPut, BasePath + "/carts/:cartId/items/:productId", h.CartAPI.UpdateItem},
		{"RemoveCartItem", http.MethodDelete, BasePath + "/carts/:cartId/items/:productId", h.CartAPI.RemoveItem},
		{"ClearCart", http.MethodDelete, BasePath + "/carts/:cartId", h.CartAPI.ClearCart},
		{"Checkout", http.MethodPost, BasePath + "/carts/:cartId/checkout", h.OrdersAPI.Checkout},

		{"GetCustomer", http.MethodGet, BasePath + "/users/:userId", h.CustomersAPI.GetProfile},
		{"UpdateCustomer", http.MethodPut, BasePath + "/users/:userId", h.CustomersAPI.UpdateProfile},
		{"ListUserOrders", http.MethodGet, BasePath + "/users/:userId/orders", h.OrdersAPI.ListUserOrders},
		{"GetOrder", http.MethodGet, BasePath + "/orders/:orderId", h.OrdersAPI.GetOrder},

		{"AddProduct", http.MethodPost, BasePath + "/admin/products", h.AdminAPI.AddProduct},
		{"UpdateProduct", http.MethodPut, BasePath + "/admin/products/:productId", h.AdminAPI.UpdateProduct},
		{"DeleteProduct", http.MethodDelete, BasePath + "/admin/products/:productId", h.AdminAPI.DeleteProduct},
		{"AddBrand", http.MethodPost, BasePath + "/admin/brands", h.AdminAPI.AddBrand},
		{"UpdateBrand", http.MethodPut, BasePath + "/admin/brands/:brandId", h.AdminAPI.UpdateBrand},
		{"DeleteBrand", http.MethodDelete, BasePath + "/admin/brands/:brandId", h.AdminAPI.DeleteBrand},
		{"AddSize", http.MethodPost, BasePath + "/admin/sizes", h.AdminAPI.AddSize},
		{"UpdateSize", http.MethodPut, BasePath + "/admin/sizes/:sizeId", h.AdminAPI.UpdateSize},
		{"DeleteSize", http.MethodDelete, BasePath + "/admin/sizes/:sizeId", h.AdminAPI.DeleteSize},
		{"UpdateStoreSettings", http.MethodPut, BasePath + "/admin/store/settings", h.AdminAPI.UpdateStoreSettings},
	}
}
