package ports

import (
	"context"

	types "github.com/Apurer/go-gin-storefront/internal/domains/customers/application/types"
	"github.com/Apurer/go-gin-storefront/internal/domains/customers/domain"
)

// Service exposes customer profile use cases to adapters.
type Service interface {
	GetProfile(ctx context.Context, id string) (*domain.Customer, error)
	UpdateProfile(ctx context.Context, input types.UpdateProfileInput) (*domain.Customer, error)
}
