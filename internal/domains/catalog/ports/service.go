package ports

import (
	"context"

	types "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
)

// Service exposes catalog and admin use cases to adapters.
type Service interface {
	ListProducts(ctx context.Context, input types.ListProductsInput) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	AddProduct(ctx context.Context, input types.AddProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, input types.UpdateProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error

	ListBrands(ctx context.Context) ([]*domain.Brand, error)
	GetBrand(ctx context.Context, id string) (*domain.Brand, error)
	AddBrand(ctx context.Context, input types.BrandInput) (*domain.Brand, error)
	RenameBrand(ctx context.Context, id string, input types.BrandInput) (*domain.Brand, error)
	DeleteBrand(ctx context.Context, id string) error
	GetOrCreateBrand(ctx context.Context, name string) (*domain.Brand, error)

	ListSizes(ctx context.Context) ([]*domain.Size, error)
	GetSize(ctx context.Context, id string) (*domain.Size, error)
	AddSize(ctx context.Context, input types.SizeInput) (*domain.Size, error)
	RenameSize(ctx context.Context, id string, input types.SizeInput) (*domain.Size, error)
	DeleteSize(ctx context.Context, id string) error

	GetSettings(ctx context.Context) (domain.StoreSettings, error)
	UpdateSettings(ctx context.Context, input types.SettingsInput) (domain.StoreSettings, error)
}
