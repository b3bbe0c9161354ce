package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	customermapper "github.com/Apurer/go-gin-storefront/internal/domains/customers/adapters/http/mapper"
	customerports "github.com/Apurer/go-gin-storefront/internal/domains/customers/ports"
)

// CustomersAPI serves shopper profiles.
type CustomersAPI struct {
	service customerports.Service
}

func NewCustomersAPI(service customerports.Service) CustomersAPI {
	return CustomersAPI{service: service}
}

// Get /api/v1/users/:userId
func (api *CustomersAPI) GetProfile(c *gin.Context) {
	customer, err := api.service.GetProfile(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customermapper.FromDomainCustomer(customer))
}

// Put /api/v1/users/:userId
// Replaces the profile, creating it when absent
func (api *CustomersAPI) UpdateProfile(c *gin.Context) {
	var payload customermapper.ProfilePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	customer, err := api.service.UpdateProfile(c.Request.Context(), payload.ToInput(c.Param("userId")))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, customermapper.FromDomainCustomer(customer))
}
