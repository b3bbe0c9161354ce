package ports

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-storefront/internal/domains/customers/domain"
)

var ErrNotFound = errors.New("customer not found")

type Repository interface {
	// Save inserts or replaces the customer keyed by id.
	Save(ctx context.Context, customer *domain.Customer) (*domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}
