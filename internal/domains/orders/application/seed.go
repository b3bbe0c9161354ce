package application

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-storefront/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/orders/ports"
)

// SeedUserID owns the demo order history.
const SeedUserID = "user123"

// SeedOrders stores the demo customer's delivered order unless the customer already has orders.
func SeedOrders(ctx context.Context, repo ports.Repository) error {
	existing, err := repo.ListByUser(ctx, SeedUserID)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	placed := time.Date(2024, time.May, 1, 10, 30, 0, 0, time.UTC)
	_, err = repo.Save(ctx, &domain.Order{
		ID:        "0b7e5f4a-1c2d-4e8f-9a6b-3c5d7e9f1a2b",
		UserID:    SeedUserID,
		Number:    "RF24501",
		OrderDate: placed,
		Lines: []domain.Line{{
			ProductID:   "p1",
			ProductName: "Classic T-Shirt",
			Quantity:    1,
			UnitPrice:   decimal.NewFromInt(2250),
			Image:       domain.DefaultLineImage,
		}},
		Total:           decimal.NewFromInt(2250),
		Status:          domain.StatusDelivered,
		ShippingAddress: domain.DefaultShippingAddress,
		TrackingNumber:  "RU123456789HK",
		CreatedAt:       placed,
		UpdatedAt:       time.Date(2024, time.May, 3, 15, 0, 0, 0, time.UTC),
	})
	return err
}
