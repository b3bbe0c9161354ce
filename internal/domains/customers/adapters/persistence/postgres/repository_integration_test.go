//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-storefront/internal/domains/customers/domain"
	"github.com/Apurer/go-gin-storefront/internal/domains/customers/ports"
)

func TestRepository_SaveAndUpsert(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
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
	defer pgContainer.Terminate(ctx)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(Models()...))

	repo := NewRepository(db)

	_, err = repo.GetByID(ctx, "user123")
	require.ErrorIs(t, err, ports.ErrNotFound)

	saved, err := repo.Save(ctx, &domain.Customer{ID: "user123", Name: "Ivan Ivanov", TelegramID: "ivan_telegram"})
	require.NoError(t, err)
	assert.Equal(t, "Ivan Ivanov", saved.Name)

	updated, err := repo.Save(ctx, &domain.Customer{ID: "user123", Name: "Ivan I.", Email: "ivan@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ivan I.", updated.Name)
	assert.Equal(t, "ivan@example.com", updated.Email)
	assert.Empty(t, updated.TelegramID)

	_, err = repo.Save(ctx, &domain.Customer{ID: "user123"})
	require.ErrorIs(t, err, domain.ErrEmptyName)
}
