package application

import (
	"context"
	"errors"

	"github.com/Apurer/go-gin-storefront/internal/domains/customers/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/customers/ports"
)

// SeedCustomers stores the demo shopper unless it already exists.
func SeedCustomers(ctx context.Context, repo ports.Repository) error {
	_, err := repo.GetByID(ctx, "user123")
	if err == nil {
		return nil
	}
	if !errors.Is(err, ports.ErrNotFound) {
		return err
	}
	_, err = repo.Save(ctx, &domain.Customer{
		ID:         "user123",
		Name:       "Ivan Ivanov",
		TelegramID: "ivan_telegram",
		Email:      "ivan@example.com",
	})
	return err
}
