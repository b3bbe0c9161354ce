package application

import (
	"context"
	"strings"

	types "github.com/Apurer/go-gin-storefront/internal/domains/customers/application/types"
	"github.com/Apurer/go-gin-storefront/internal/domains/customers/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/customers/ports"
	"github.com/Apurer/go-gin-storefront/internal/shared/validation"
)

// Service exposes customer profile use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetProfile(ctx context.Context, id string) (*domain.Customer, error) {
	customer, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, mapError(err)
	}
	return customer, nil
}

// UpdateProfile replaces the customer's profile, creating it on first use.
func (s *Service) UpdateProfile(ctx context.Context, input types.UpdateProfileInput) (*domain.Customer, error) {
	if err := validation.Struct(input); err != nil {
		return nil, mapError(err)
	}
	customer, err := domain.NewCustomer(input.ID, input.Name)
	if err != nil {
		return nil, mapError(err)
	}
	if err := customer.UpdateContacts(input.TelegramID, input.Email); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, customer)
	if err != nil {
		return nil, mapError(err)
	}
	return saved, nil
}

var _ ports.Service = (*Service)(nil)
