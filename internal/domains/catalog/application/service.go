package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	types "github.com/Apurer/go-gin-storefront/internal/domains/catalog/application/types"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-storefront/internal/shared/validation"
)

// Service orchestrates catalog and admin use cases.
type Service struct {
	repo  ports.Repository
	newID func() string
	now   func() time.Time
}

// Option customises the service.
type Option func(*Service)

// WithIDGenerator overrides how product and brand identifiers are minted.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithClock overrides the time source for deterministic testing.
func WithClock(fn func() time.Time) Option {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

// NewService wires the catalog service with its repository.
func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{
		repo:  repo,
		newID: uuid.NewString,
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// ListProducts returns the products matching the brand and size filters.
func (s *Service) ListProducts(ctx context.Context, input types.ListProductsInput) ([]*domain.Product, error) {
	filter := ports.ProductFilter{
		BrandID: strings.TrimSpace(input.BrandID),
		SizeID:  strings.TrimSpace(input.SizeID),
	}
	products, err := s.repo.ListProducts(ctx, filter)
	if err != nil {
		return nil, mapError(err)
	}
	return products, nil
}

// GetProduct loads a single product.
func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return product, nil
}

// AddProduct creates a product, creating its brand on the fly when the name is new.
func (s *Service) AddProduct(ctx context.Context, input types.AddProductInput) (*domain.Product, error) {
	if err := s.validateProductInput(ctx, input.ProductMutationInput, true); err != nil {
		return nil, mapError(err)
	}
	brand, err := s.GetOrCreateBrand(ctx, *input.BrandName)
	if err != nil {
		return nil, err
	}
	now := s.now()
	product := &domain.Product{
		ID:        s.newID(),
		BrandID:   brand.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	applyProductMutation(product, input.ProductMutationInput)
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.AddProduct(ctx, product)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// UpdateProduct applies the non-nil fields of input to an existing product.
func (s *Service) UpdateProduct(ctx context.Context, input types.UpdateProductInput) (*domain.Product, error) {
	if err := s.validateProductInput(ctx, input.ProductMutationInput, false); err != nil {
		return nil, mapError(err)
	}
	existing, err := s.repo.GetProduct(ctx, input.ID)
	if err != nil {
		return nil, mapError(err)
	}
	if input.BrandName != nil {
		brand, err := s.GetOrCreateBrand(ctx, *input.BrandName)
		if err != nil {
			return nil, err
		}
		existing.BrandID = brand.ID
	}
	applyProductMutation(existing, input.ProductMutationInput)
	existing.UpdatedAt = s.now()
	if err := existing.Validate(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.UpdateProduct(ctx, existing)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// DeleteProduct removes a product.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return mapError(s.repo.DeleteProduct(ctx, id))
}

// ListBrands returns every brand in insertion order.
func (s *Service) ListBrands(ctx context.Context) ([]*domain.Brand, error) {
	brands, err := s.repo.ListBrands(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return brands, nil
}

// GetBrand loads a single brand.
func (s *Service) GetBrand(ctx context.Context, id string) (*domain.Brand, error) {
	brand, err := s.repo.GetBrand(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return brand, nil
}

// AddBrand creates a brand whose name is unique ignoring case.
func (s *Service) AddBrand(ctx context.Context, input types.BrandInput) (*domain.Brand, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validation.Struct(input); err != nil {
		return nil, mapError(err)
	}
	brand, err := domain.NewBrand(s.newID(), input.Name)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.AddBrand(ctx, brand)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// RenameBrand changes a brand's name, keeping names unique ignoring case.
func (s *Service) RenameBrand(ctx context.Context, id string, input types.BrandInput) (*domain.Brand, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validation.Struct(input); err != nil {
		return nil, mapError(err)
	}
	brand, err := domain.NewBrand(id, input.Name)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.UpdateBrand(ctx, brand)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// DeleteBrand removes a brand that no product references.
func (s *Service) DeleteBrand(ctx context.Context, id string) error {
	return mapError(s.repo.DeleteBrand(ctx, id))
}

// GetOrCreateBrand finds a brand by trimmed, case-insensitive name or creates it.
func (s *Service) GetOrCreateBrand(ctx context.Context, name string) (*domain.Brand, error) {
	candidate, err := domain.NewBrand(s.newID(), name)
	if err != nil {
		return nil, mapError(validation.Field("brandName", "is required").Wrap(err))
	}
	brand, _, err := s.repo.GetOrCreateBrand(ctx, candidate)
	if err != nil {
		return nil, mapError(err)
	}
	return brand, nil
}

// ListSizes returns every size in insertion order.
func (s *Service) ListSizes(ctx context.Context) ([]*domain.Size, error) {
	sizes, err := s.repo.ListSizes(ctx)
	if err != nil {
		return nil, mapError(err)
	}
	return sizes, nil
}

// GetSize loads a single size by slug.
func (s *Service) GetSize(ctx context.Context, id string) (*domain.Size, error) {
	size, err := s.repo.GetSize(ctx, id)
	if err != nil {
		return nil, mapError(err)
	}
	return size, nil
}

// AddSize creates a size whose slug and name are both unique.
func (s *Service) AddSize(ctx context.Context, input types.SizeInput) (*domain.Size, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validation.Struct(input); err != nil {
		return nil, mapError(err)
	}
	size, err := domain.NewSize(input.Name)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.AddSize(ctx, size)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// RenameSize renames a size. The slug follows the name, so the identifier changes too.
func (s *Service) RenameSize(ctx context.Context, id string, input types.SizeInput) (*domain.Size, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validation.Struct(input); err != nil {
		return nil, mapError(err)
	}
	size, err := domain.NewSize(input.Name)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.RenameSize(ctx, id, size)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

// DeleteSize removes a size that no product references.
func (s *Service) DeleteSize(ctx context.Context, id string) error {
	return mapError(s.repo.DeleteSize(ctx, id))
}

// GetSettings returns the storefront settings.
func (s *Service) GetSettings(ctx context.Context) (domain.StoreSettings, error) {
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return domain.StoreSettings{}, mapError(err)
	}
	return settings, nil
}

// UpdateSettings applies the non-nil fields of input.
func (s *Service) UpdateSettings(ctx context.Context, input types.SettingsInput) (domain.StoreSettings, error) {
	if err := validation.Struct(input); err != nil {
		return domain.StoreSettings{}, mapError(err)
	}
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		return domain.StoreSettings{}, mapError(err)
	}
	if input.IsStoreClosed != nil {
		settings.IsStoreClosed = *input.IsStoreClosed
	}
	if input.LogoURL != nil {
		settings.LogoURL = strings.TrimSpace(*input.LogoURL)
	}
	saved, err := s.repo.SaveSettings(ctx, settings)
	if err != nil {
		return domain.StoreSettings{}, mapError(err)
	}
	return saved, nil
}

func (s *Service) validateProductInput(ctx context.Context, input types.ProductMutationInput, creating bool) error {
	var verr *validation.Error
	if err := validation.Struct(input); err != nil {
		if !errors.As(err, &verr) {
			return err
		}
	}
	if creating {
		if input.Name == nil {
			verr = verr.Merge(validation.Field("name", "is required"))
		}
		if input.Price == nil {
			verr = verr.Merge(validation.Field("price", "is required"))
		}
		if input.BrandName == nil {
			verr = verr.Merge(validation.Field("brandName", "is required"))
		}
	}
	if input.Name != nil && len([]rune(strings.TrimSpace(*input.Name))) < 3 {
		verr = verr.Merge(validation.Field("name", "must be at least 3 characters"))
	}
	if input.Price != nil && !input.Price.IsPositive() {
		verr = verr.Merge(validation.Field("price", "must be greater than 0"))
	}
	if input.SizeIDs != nil {
		missing, err := s.unknownSizes(ctx, *input.SizeIDs)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			verr = verr.Merge(validation.Field("sizes", fmt.Sprintf("unknown size(s): %s", strings.Join(missing, ", "))))
		}
	}
	if verr != nil {
		return verr
	}
	return nil
}

func (s *Service) unknownSizes(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	sizes, err := s.repo.ListSizes(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(sizes))
	for _, size := range sizes {
		known[size.ID] = struct{}{}
	}
	var missing []string
	for _, id := range normalizeSizeIDs(ids) {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	return missing, nil
}

func applyProductMutation(target *domain.Product, input types.ProductMutationInput) {
	if input.Name != nil {
		target.Name = strings.TrimSpace(*input.Name)
	}
	if input.Description != nil {
		target.Description = strings.TrimSpace(*input.Description)
	}
	if input.Price != nil {
		target.Price = *input.Price
	}
	switch {
	case input.RemoveDiscount:
		target.DiscountPercent = nil
	case input.DiscountPercent != nil:
		d := *input.DiscountPercent
		target.DiscountPercent = &d
	}
	if input.Image != nil {
		target.Image = strings.TrimSpace(*input.Image)
	}
	if input.SizeIDs != nil {
		target.SizeIDs = normalizeSizeIDs(*input.SizeIDs)
	}
}

func normalizeSizeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}

var _ ports.Service = (*Service)(nil)
