package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/go-gin-storefront/internal/domains/cart/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/cart/ports"
	catalogdomain "github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

var _ ports.ProductCatalog = (*ProductCatalog)(nil)

// ProductCatalog resolves cart products through the catalog service.
type ProductCatalog struct {
	catalog catalogports.Service
}

func NewProductCatalog(catalog catalogports.Service) *ProductCatalog {
	return &ProductCatalog{catalog: catalog}
}

func (c *ProductCatalog) Product(ctx context.Context, id string) (domain.ProductSnapshot, error) {
	product, err := c.catalog.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, catalogdomain.ErrNotFound) {
			return domain.ProductSnapshot{}, fmt.Errorf("%w: %q", ports.ErrProductNotFound, id)
		}
		return domain.ProductSnapshot{}, err
	}
	return ToSnapshot(product), nil
}

// ToSnapshot copies a catalog product into the cart's snapshot type.
func ToSnapshot(p *catalogdomain.Product) domain.ProductSnapshot {
	clone := p.Clone()
	return domain.ProductSnapshot{
		ID:              clone.ID,
		Name:            clone.Name,
		Description:     clone.Description,
		Price:           clone.Price,
		DiscountPercent: clone.DiscountPercent,
		BrandID:         clone.BrandID,
		Image:           clone.Image,
		SizeIDs:         clone.SizeIDs,
		CreatedAt:       clone.CreatedAt,
		UpdatedAt:       clone.UpdatedAt,
	}
}
