package ports

import (
	"context"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
)

// ProductFilter narrows product listings. Empty fields are ignored; set fields AND together.
type ProductFilter struct {
	BrandID string
	SizeID  string
}

// Matches reports whether product satisfies the filter.
func (f ProductFilter) Matches(product *domain.Product) bool {
	if f.BrandID != "" && product.BrandID != f.BrandID {
		return false
	}
	if f.SizeID != "" && !product.HasSize(f.SizeID) {
		return false
	}
	return true
}

// ProductRepository stores products. AddProduct and UpdateProduct reject unknown brand or size references.
type ProductRepository interface {
	ListProducts(ctx context.Context, filter ProductFilter) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	AddProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// BrandRepository stores brands with case-insensitive unique names.
type BrandRepository interface {
	ListBrands(ctx context.Context) ([]*domain.Brand, error)
	GetBrand(ctx context.Context, id string) (*domain.Brand, error)
	AddBrand(ctx context.Context, brand *domain.Brand) (*domain.Brand, error)
	UpdateBrand(ctx context.Context, brand *domain.Brand) (*domain.Brand, error)
	DeleteBrand(ctx context.Context, id string) error
	// GetOrCreateBrand returns the brand whose name matches candidate.Name
	// case-insensitively, inserting candidate when none does.
	GetOrCreateBrand(ctx context.Context, candidate *domain.Brand) (brand *domain.Brand, created bool, err error)
}

// SizeRepository stores sizes keyed by their slug.
type SizeRepository interface {
	ListSizes(ctx context.Context) ([]*domain.Size, error)
	GetSize(ctx context.Context, id string) (*domain.Size, error)
	AddSize(ctx context.Context, size *domain.Size) (*domain.Size, error)
	// RenameSize replaces the size stored under oldID with size, whose ID may differ.
	// Products referencing oldID are moved to the new ID in the same operation.
	RenameSize(ctx context.Context, oldID string, size *domain.Size) (*domain.Size, error)
	DeleteSize(ctx context.Context, id string) error
}

// SettingsRepository stores the storefront settings singleton.
type SettingsRepository interface {
	GetSettings(ctx context.Context) (domain.StoreSettings, error)
	SaveSettings(ctx context.Context, settings domain.StoreSettings) (domain.StoreSettings, error)
}

// Repository aggregates the catalog collections. Each method is atomic.
type Repository interface {
	ProductRepository
	BrandRepository
	SizeRepository
	SettingsRepository
}
