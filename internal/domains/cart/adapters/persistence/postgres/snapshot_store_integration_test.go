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

)

func setupCartPostgresContainer(t *testing.T) (*gorm.DB, func()) {
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

func TestSnapshotStore_SaveLoadClear(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupCartPostgresContainer(t)
	defer cleanup()

	store := NewSnapshotStore(db, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "c1", `[]`))
	require.NoError(t, store.Save(ctx, "c1", `[{"quantity":1}]`))

	value, ok, err := store.Load(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[{"quantity":1}]`, value)

	require.NoError(t, store.Clear(ctx, "c1"))
	_, ok, err = store.Load(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSnapshotStore_PurgeExpired(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	db, cleanup := setupCartPostgresContainer(t)
	defer cleanup()

	store := NewSnapshotStore(db, time.Hour)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "old", `[]`))
	require.NoError(t, store.Save(ctx, "fresh", `[]`))

	store.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	require.NoError(t, store.Save(ctx, "fresh", `[]`))

	_, ok, err := store.Load(ctx, "old")
	require.NoError(t, err)
	assert.False(t, ok)

	purged, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), purged)

	_, ok, err = store.Load(ctx, "fresh")
	require.NoError(t, err)
	assert.True(t, ok)
}
