package storefrontserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	catalogmapper "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/http/mapper"
	catalogtypes "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application/types"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

// AdminAPI serves catalog maintenance. Authentication is left to the deployment.
type AdminAPI struct {
	service catalogports.Service
}

func NewAdminAPI(service catalogports.Service) AdminAPI {
	return AdminAPI{service: service}
}

// Post /api/v1/admin/products
// Creates a product; an unknown brand name creates the brand
func (api *AdminAPI) AddProduct(c *gin.Context) {
	var payload catalogmapper.ProductPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	input := catalogtypes.AddProductInput{ProductMutationInput: catalogmapper.ToMutationInput(payload)}
	product, err := api.service.AddProduct(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondProduct(c, api.service, http.StatusCreated, product)
}

// Put /api/v1/admin/products/:productId
// Applies the fields present in the body
func (api *AdminAPI) UpdateProduct(c *gin.Context) {
	var payload catalogmapper.ProductPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	input := catalogtypes.UpdateProductInput{
		ID:                   c.Param("productId"),
		ProductMutationInput: catalogmapper.ToMutationInput(payload),
	}
	product, err := api.service.UpdateProduct(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondProduct(c, api.service, http.StatusOK, product)
}

// Delete /api/v1/admin/products/:productId
func (api *AdminAPI) DeleteProduct(c *gin.Context) {
	if err := api.service.DeleteProduct(c.Request.Context(), c.Param("productId")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Post /api/v1/admin/brands
func (api *AdminAPI) AddBrand(c *gin.Context) {
	var payload catalogmapper.NamePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	brand, err := api.service.AddBrand(c.Request.Context(), catalogtypes.BrandInput{Name: payload.Name})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, catalogmapper.Brand{ID: brand.ID, Name: brand.Name})
}

// Put /api/v1/admin/brands/:brandId
func (api *AdminAPI) UpdateBrand(c *gin.Context) {
	var payload catalogmapper.NamePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	brand, err := api.service.RenameBrand(c.Request.Context(), c.Param("brandId"), catalogtypes.BrandInput{Name: payload.Name})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.Brand{ID: brand.ID, Name: brand.Name})
}

// Delete /api/v1/admin/brands/:brandId
// Refused with 409 while a product references the brand
func (api *AdminAPI) DeleteBrand(c *gin.Context) {
	if err := api.service.DeleteBrand(c.Request.Context(), c.Param("brandId")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Post /api/v1/admin/sizes
func (api *AdminAPI) AddSize(c *gin.Context) {
	var payload catalogmapper.NamePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	size, err := api.service.AddSize(c.Request.Context(), catalogtypes.SizeInput{Name: payload.Name})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, catalogmapper.Size{ID: size.ID, Name: size.Name})
}

// Put /api/v1/admin/sizes/:sizeId
// Renaming changes the size id; products follow the new id
func (api *AdminAPI) UpdateSize(c *gin.Context) {
	var payload catalogmapper.NamePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	size, err := api.service.RenameSize(c.Request.Context(), c.Param("sizeId"), catalogtypes.SizeInput{Name: payload.Name})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.Size{ID: size.ID, Name: size.Name})
}

// Delete /api/v1/admin/sizes/:sizeId
func (api *AdminAPI) DeleteSize(c *gin.Context) {
	if err := api.service.DeleteSize(c.Request.Context(), c.Param("sizeId")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Put /api/v1/admin/store/settings
func (api *AdminAPI) UpdateStoreSettings(c *gin.Context) {
	var payload catalogmapper.SettingsPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	settings, err := api.service.UpdateSettings(c.Request.Context(), catalogmapper.ToSettingsInput(payload))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainSettings(settings))
}
