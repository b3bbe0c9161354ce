package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Store)(nil)

// Store is an in-memory catalog. One lock covers all collections so that
// uniqueness and reference checks see a consistent view.
type Store struct {
	mu       sync.RWMutex
	products []*domain.Product
	brands   []*domain.Brand
	sizes    []*domain.Size
	settings domain.StoreSettings
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) ListProducts(_ context.Context, filter ports.ProductFilter) ([]*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]*domain.Product, 0, len(s.products))
	for _, p := range s.products {
		if filter.Matches(p) {
			list = append(list, p.Clone())
		}
	}
	return list, nil
}

func (s *Store) GetProduct(_ context.Context, id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.productIndex(id)
	if idx < 0 {
		return nil, &domain.NotFoundError{Entity: domain.EntityProduct, ID: id}
	}
	return s.products[idx].Clone(), nil
}

func (s *Store) AddProduct(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.productIndex(product.ID) >= 0 {
		return nil, fmt.Errorf("product %q already exists", product.ID)
	}
	if err := s.checkReferences(product); err != nil {
		return nil, err
	}
	clone := product.Clone()
	s.products = append(s.products, clone)
	return clone.Clone(), nil
}

func (s *Store) UpdateProduct(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.productIndex(product.ID)
	if idx < 0 {
		return nil, &domain.NotFoundError{Entity: domain.EntityProduct, ID: product.ID}
	}
	if err := s.checkReferences(product); err != nil {
		return nil, err
	}
	clone := product.Clone()
	s.products[idx] = clone
	return clone.Clone(), nil
}

func (s *Store) DeleteProduct(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.productIndex(id)
	if idx < 0 {
		return &domain.NotFoundError{Entity: domain.EntityProduct, ID: id}
	}
	s.products = append(s.products[:idx], s.products[idx+1:]...)
	return nil
}

func (s *Store) ListBrands(_ context.Context) ([]*domain.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]*domain.Brand, 0, len(s.brands))
	for _, b := range s.brands {
		list = append(list, b.Clone())
	}
	return list, nil
}

func (s *Store) GetBrand(_ context.Context, id string) (*domain.Brand, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.brandIndex(id)
	if idx < 0 {
		return nil, &domain.NotFoundError{Entity: domain.EntityBrand, ID: id}
	}
	return s.brands[idx].Clone(), nil
}

func (s *Store) AddBrand(_ context.Context, brand *domain.Brand) (*domain.Brand, error) {
	if brand == nil {
		return nil, errors.New("brand is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.brandIndex(brand.ID) >= 0 {
		return nil, fmt.Errorf("brand %q already exists", brand.ID)
	}
	if s.brandNameTaken(brand.Name, "") {
		return nil, &domain.DuplicateNameError{Entity: domain.EntityBrand, Name: brand.Name}
	}
	clone := brand.Clone()
	s.brands = append(s.brands, clone)
	return clone.Clone(), nil
}

func (s *Store) UpdateBrand(_ context.Context, brand *domain.Brand) (*domain.Brand, error) {
	if brand == nil {
		return nil, errors.New("brand is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.brandIndex(brand.ID)
	if idx < 0 {
		return nil, &domain.NotFoundError{Entity: domain.EntityBrand, ID: brand.ID}
	}
	if s.brandNameTaken(brand.Name, brand.ID) {
		return nil, &domain.DuplicateNameError{Entity: domain.EntityBrand, Name: brand.Name}
	}
	clone := brand.Clone()
	s.brands[idx] = clone
	return clone.Clone(), nil
}

func (s *Store) DeleteBrand(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.brandIndex(id)
	if idx < 0 {
		return &domain.NotFoundError{Entity: domain.EntityBrand, ID: id}
	}
	refs := 0
	for _, p := range s.products {
		if p.BrandID == id {
			refs++
		}
	}
	if refs > 0 {
		return &domain.ReferentialIntegrityError{Entity: domain.EntityBrand, ID: id, References: refs}
	}
	s.brands = append(s.brands[:idx], s.brands[idx+1:]...)
	return nil
}

func (s *Store) GetOrCreateBrand(_ context.Context, candidate *domain.Brand) (*domain.Brand, bool, error) {
	if candidate == nil {
		return nil, false, errors.New("brand is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := domain.NameKey(candidate.Name)
	for _, b := range s.brands {
		if domain.NameKey(b.Name) == key {
			return b.Clone(), false, nil
		}
	}
	if s.brandIndex(candidate.ID) >= 0 {
		return nil, false, fmt.Errorf("brand %q already exists", candidate.ID)
	}
	clone := candidate.Clone()
	s.brands = append(s.brands, clone)
	return clone.Clone(), true, nil
}

func (s *Store) ListSizes(_ context.Context) ([]*domain.Size, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := make([]*domain.Size, 0, len(s.sizes))
	for _, sz := range s.sizes {
		list = append(list, sz.Clone())
	}
	return list, nil
}

func (s *Store) GetSize(_ context.Context, id string) (*domain.Size, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.sizeIndex(id)
	if idx < 0 {
		return nil, &domain.NotFoundError{Entity: domain.EntitySize, ID: id}
	}
	return s.sizes[idx].Clone(), nil
}

func (s *Store) AddSize(_ context.Context, size *domain.Size) (*domain.Size, error) {
	if size == nil {
		return nil, errors.New("size is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sizeTaken(size, "") {
		return nil, &domain.DuplicateNameError{Entity: domain.EntitySize, Name: size.Name}
	}
	clone := size.Clone()
	s.sizes = append(s.sizes, clone)
	return clone.Clone(), nil
}

func (s *Store) RenameSize(_ context.Context, oldID string, size *domain.Size) (*domain.Size, error) {
	if size == nil {
		return nil, errors.New("size is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.sizeIndex(oldID)
	if idx < 0 {
		return nil, &domain.NotFoundError{Entity: domain.EntitySize, ID: oldID}
	}
	if s.sizeTaken(size, oldID) {
		return nil, &domain.DuplicateNameError{Entity: domain.EntitySize, Name: size.Name}
	}
	clone := size.Clone()
	s.sizes[idx] = clone
	if oldID != clone.ID {
		for _, p := range s.products {
			p.ReplaceSize(oldID, clone.ID)
		}
	}
	return clone.Clone(), nil
}

func (s *Store) DeleteSize(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.sizeIndex(id)
	if idx < 0 {
		return &domain.NotFoundError{Entity: domain.EntitySize, ID: id}
	}
	refs := 0
	for _, p := range s.products {
		if p.HasSize(id) {
			refs++
		}
	}
	if refs > 0 {
		return &domain.ReferentialIntegrityError{Entity: domain.EntitySize, ID: id, References: refs}
	}
	s.sizes = append(s.sizes[:idx], s.sizes[idx+1:]...)
	return nil
}

func (s *Store) GetSettings(_ context.Context) (domain.StoreSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings, nil
}

func (s *Store) SaveSettings(_ context.Context, settings domain.StoreSettings) (domain.StoreSettings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	return s.settings, nil
}

// checkReferences expects the lock to be held.
func (s *Store) checkReferences(product *domain.Product) error {
	if s.brandIndex(product.BrandID) < 0 {
		return &domain.UnknownReferenceError{Entity: domain.EntityBrand, ID: product.BrandID}
	}
	for _, id := range product.SizeIDs {
		if s.sizeIndex(id) < 0 {
			return &domain.UnknownReferenceError{Entity: domain.EntitySize, ID: id}
		}
	}
	return nil
}

func (s *Store) productIndex(id string) int {
	for i, p := range s.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) brandIndex(id string) int {
	for i, b := range s.brands {
		if b.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) sizeIndex(id string) int {
	for i, sz := range s.sizes {
		if sz.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) brandNameTaken(name, exceptID string) bool {
	key := domain.NameKey(name)
	for _, b := range s.brands {
		if b.ID != exceptID && domain.NameKey(b.Name) == key {
			return true
		}
	}
	return false
}

func (s *Store) sizeTaken(size *domain.Size, exceptID string) bool {
	key := domain.NameKey(size.Name)
	for _, sz := range s.sizes {
		if exceptID != "" && sz.ID == exceptID {
			continue
		}
		if sz.ID == size.ID || domain.NameKey(sz.Name) == key {
			return true
		}
	}
	return false
}
