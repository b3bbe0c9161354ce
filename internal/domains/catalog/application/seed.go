package application

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

// DefaultLogoURL is the logo shown by a freshly seeded storefront.
const DefaultLogoURL = "https://placehold.co/160x160.png"

// SeedCatalog loads the demo brands, sizes, products and settings.
// It does nothing when the repository already holds brands, so it is safe to call on every start.
func SeedCatalog(ctx context.Context, repo ports.Repository) error {
	existing, err := repo.ListBrands(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, brand := range seedBrands() {
		if _, err := repo.AddBrand(ctx, brand); err != nil {
			return err
		}
	}
	for _, size := range seedSizes() {
		if _, err := repo.AddSize(ctx, size); err != nil {
			return err
		}
	}
	for _, product := range seedProducts() {
		if _, err := repo.AddProduct(ctx, product); err != nil {
			return err
		}
	}
	_, err = repo.SaveSettings(ctx, domain.StoreSettings{IsStoreClosed: false, LogoURL: DefaultLogoURL})
	return err
}

func seedBrands() []*domain.Brand {
	return []*domain.Brand{
		{ID: "1", Name: "CasualWear"},
		{ID: "2", Name: "UrbanStyle"},
		{ID: "3", Name: "SportPro"},
		{ID: "4", Name: "Eleganza"},
	}
}

func seedSizes() []*domain.Size {
	names := []string{"S", "M", "L", "XL", "XXL"}
	sizes := make([]*domain.Size, 0, len(names))
	for _, name := range names {
		size, _ := domain.NewSize(name)
		sizes = append(sizes, size)
	}
	return sizes
}

func seedProducts() []*domain.Product {
	discount := func(d int) *int { return &d }
	at := func(day, hour int) time.Time { return time.Date(2023, time.January, day, hour, 0, 0, 0, time.UTC) }
	products := []*domain.Product{
		{
			ID:              "p1",
			Name:            "Classic T-Shirt",
			Description:     "Comfortable everyday cotton t-shirt.",
			Price:           decimal.NewFromInt(2500),
			DiscountPercent: discount(10),
			BrandID:         "1",
			SizeIDs:         []string{"s", "m", "l"},
			CreatedAt:       at(10, 10),
		},
		{
			ID:          "p2",
			Name:        "Freedom Jeans",
			Description: "Relaxed-fit jeans with a modern cut.",
			Price:       decimal.NewFromInt(4800),
			BrandID:     "2",
			SizeIDs:     []string{"m", "l", "xl"},
			CreatedAt:   at(11, 11),
		},
		{
			ID:              "p3",
			Name:            "Velocity Sneakers",
			Description:     "Lightweight sneakers for an active lifestyle.",
			Price:           decimal.NewFromInt(6200),
			DiscountPercent: discount(15),
			BrandID:         "3",
			SizeIDs:         []string{"s", "m", "l", "xl"},
			CreatedAt:       at(12, 12),
		},
		{
			ID:          "p4",
			Name:        "Evening Dress",
			Description: "Elegant dress for special occasions.",
			Price:       decimal.NewFromInt(8900),
			BrandID:     "4",
			SizeIDs:     []string{"s", "m"},
			CreatedAt:   at(13, 13),
		},
		{
			ID:          "p5",
			Name:        "Comfort Hoodie",
			Description: "Warm, soft hoodie for cool weather.",
			Price:       decimal.NewFromInt(3500),
			BrandID:     "1",
			SizeIDs:     []string{"m", "l", "xl", "xxl"},
			CreatedAt:   at(14, 14),
		},
	}
	for _, p := range products {
		p.UpdatedAt = p.CreatedAt
	}
	return products
}
