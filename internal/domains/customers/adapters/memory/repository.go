package memory

import (
	"context"
	"errors"
	"sync"

	"github.com/Apurer/go-gin-storefront/internal/domains/customers/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/customers/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository keeps customer profiles in process memory.
type Repository struct {
	mu        sync.RWMutex
	customers map[string]domain.Customer
}

func NewRepository() *Repository {
	return &Repository{customers: map[string]domain.Customer{}}
}

func (r *Repository) Save(_ context.Context, customer *domain.Customer) (*domain.Customer, error) {
	if customer == nil {
		return nil, errors.New("customer is nil")
	}
	clone := *customer
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers[clone.ID] = clone
	return &clone, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	customer, ok := r.customers[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return &customer, nil
}
