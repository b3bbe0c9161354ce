//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/catalog/ports"
)

func setupCatalogPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("storefront_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(Models()...))

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}
	return db, cleanup
}

func seedRefs(t *testing.T, repo *Repository) {
	t.Helper()
	ctx := context.Background()
	_, err := repo.AddBrand(ctx, &domain.Brand{ID: "b1", Name: "Nike"})
	require.NoError(t, err)
	for _, name := range []string{"S", "M", "XXL"} {
		size, err := domain.NewSize(name)
		require.NoError(t, err)
		_, err = repo.AddSize(ctx, size)
		require.NoError(t, err)
	}
}

func TestRepository_ProductLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	seedRefs(t, repo)

	discount := 10
	now := time.Now().UTC().Truncate(time.Second)
	product := &domain.Product{
		ID:              "p1",
		Name:            "Classic T-Shirt",
		Price:           decimal.NewFromInt(2500),
		DiscountPercent: &discount,
		BrandID:         "b1",
		SizeIDs:         []string{"s", "m"},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	saved, err := repo.AddProduct(ctx, product)
	require.NoError(t, err)
	assert.True(t, saved.Price.Equal(decimal.NewFromInt(2500)))
	assert.Equal(t, []string{"s", "m"}, saved.SizeIDs)

	bySize, err := repo.ListProducts(ctx, ports.ProductFilter{SizeID: "m"})
	require.NoError(t, err)
	require.Len(t, bySize, 1)

	product.SizeIDs = []string{"unknown"}
	_, err = repo.UpdateProduct(ctx, product)
	require.ErrorIs(t, err, domain.ErrUnknownSize)

	require.NoError(t, repo.DeleteProduct(ctx, "p1"))
	_, err = repo.GetProduct(ctx, "p1")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRepository_KeepsPriceScale(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	seedRefs(t, repo)

	price := decimal.RequireFromString("1999.995")
	_, err := repo.AddProduct(ctx, &domain.Product{ID: "p2", Name: "Silk Scarf", Price: price, BrandID: "b1"})
	require.NoError(t, err)

	stored, err := repo.GetProduct(ctx, "p2")
	require.NoError(t, err)
	assert.True(t, stored.Price.Equal(price), stored.Price.String())
}

func TestRepository_BrandUniquenessAndReferences(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()
	seedRefs(t, repo)

	_, err := repo.AddBrand(ctx, &domain.Brand{ID: "b2", Name: "nike"})
	require.ErrorIs(t, err, domain.ErrDuplicateName)

	brand, created, err := repo.GetOrCreateBrand(ctx, &domain.Brand{ID: "b3", Name: "NIKE"})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "b1", brand.ID)

	_, err = repo.AddProduct(ctx, &domain.Product{ID: "p1", Name: "Shoe", Price: decimal.NewFromInt(10), BrandID: "b1", SizeIDs: []string{"xxl"}})
	require.NoError(t, err)

	err = repo.DeleteBrand(ctx, "b1")
	require.ErrorIs(t, err, domain.ErrReferenced)

	renamed, err := repo.RenameSize(ctx, "xxl", &domain.Size{ID: "2xl", Name: "2XL"})
	require.NoError(t, err)
	assert.Equal(t, "2xl", renamed.ID)

	product, err := repo.GetProduct(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"2xl"}, product.SizeIDs)
}

func TestRepository_SettingsSingleton(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupCatalogPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	empty, err := repo.GetSettings(ctx)
	require.NoError(t, err)
	assert.False(t, empty.IsStoreClosed)

	_, err = repo.SaveSettings(ctx, domain.StoreSettings{IsStoreClosed: true, LogoURL: "https://example.com/logo.png"})
	require.NoError(t, err)
	_, err = repo.SaveSettings(ctx, domain.StoreSettings{IsStoreClosed: false, LogoURL: "https://example.com/logo2.png"})
	require.NoError(t, err)

	settings, err := repo.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/logo2.png", settings.LogoURL)
}
