package storefrontserver

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	catalogmapper "github.com/Apurer/go-gin-storefront/internal/domains/catalog/adapters/http/mapper"
	catalogtypes "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

// CatalogAPI serves the read-only storefront catalog.
type CatalogAPI struct {
	service catalogports.Service
}

func NewCatalogAPI(service catalogports.Service) CatalogAPI {
	return CatalogAPI{service: service}
}

// ListProductsParams are the query parameters of GET /products.
type ListProductsParams struct {
	BrandID *string `form:"brandId" json:"brandId,omitempty"`
	SizeID  *string `form:"sizeId" json:"sizeId,omitempty"`
}

// Get /api/v1/store/settings
func (api *CatalogAPI) GetStoreSettings(c *gin.Context) {
	settings, err := api.service.GetSettings(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainSettings(settings))
}

// Get /api/v1/products
// Lists products, optionally narrowed by brand and size
func (api *CatalogAPI) ListProducts(c *gin.Context) {
	var params ListProductsParams
	query := c.Request.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "brandId", query, &params.BrandID); err != nil {
		respondBindError(c, err)
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "sizeId", query, &params.SizeID); err != nil {
		respondBindError(c, err)
		return
	}
	input := catalogtypes.ListProductsInput{}
	if params.BrandID != nil {
		input.BrandID = *params.BrandID
	}
	if params.SizeID != nil {
		input.SizeID = *params.SizeID
	}
	products, err := api.service.ListProducts(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	names, err := brandNames(c.Request.Context(), api.service)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainProducts(products, names))
}

// Get /api/v1/products/:productId
func (api *CatalogAPI) GetProduct(c *gin.Context) {
	product, err := api.service.GetProduct(c.Request.Context(), c.Param("productId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondProduct(c, api.service, http.StatusOK, product)
}

// Get /api/v1/brands
func (api *CatalogAPI) ListBrands(c *gin.Context) {
	brands, err := api.service.ListBrands(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainBrands(brands))
}

// Get /api/v1/sizes
func (api *CatalogAPI) ListSizes(c *gin.Context) {
	sizes, err := api.service.ListSizes(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, catalogmapper.FromDomainSizes(sizes))
}

func brandNames(ctx context.Context, service catalogports.Service) (map[string]string, error) {
	brands, err := service.ListBrands(ctx)
	if err != nil {
		return nil, err
	}
	return catalogmapper.BrandNames(brands), nil
}

// respondProduct renders product with its brand's display name.
func respondProduct(c *gin.Context, service catalogports.Service, status int, product *domain.Product) {
	names, err := brandNames(c.Request.Context(), service)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(status, catalogmapper.FromDomainProduct(product, names))
}
