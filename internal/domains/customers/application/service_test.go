package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Apurer/go-gin-storefront/internal/domains/customers/adapters/memory"
	types "github.com/Apurer/go-gin-storefront/internal/domains/customers/application/types"
	"github.com/Apurer/go-gin-storefront/internal/domains/customers/ports"
	"github.com/Apurer/go-gin-storefront/internal/shared/validation"
)

func TestSeedCustomers_Idempotent(t *testing.T) {
	repo := memory.NewRepository()
	ctx := context.Background()
	require.NoError(t, SeedCustomers(ctx, repo))

	svc := NewService(repo)
	_, err := svc.UpdateProfile(ctx, types.UpdateProfileInput{ID: "user123", Name: "Ivan I."})
	require.NoError(t, err)
	require.NoError(t, SeedCustomers(ctx, repo))

	profile, err := svc.GetProfile(ctx, " user123 ")
	require.NoError(t, err)
	require.Equal(t, "Ivan I.", profile.Name)
}

func TestGetProfile_Seeded(t *testing.T) {
	repo := memory.NewRepository()
	require.NoError(t, SeedCustomers(context.Background(), repo))
	svc := NewService(repo)

	profile, err := svc.GetProfile(context.Background(), "user123")
	require.NoError(t, err)
	require.Equal(t, "Ivan Ivanov", profile.Name)
	require.Equal(t, "ivan_telegram", profile.TelegramID)
	require.Equal(t, "ivan@example.com", profile.Email)

	_, err = svc.GetProfile(context.Background(), "nobody")
	require.ErrorIs(t, err, ports.ErrNotFound)
}

func TestUpdateProfile_Validation(t *testing.T) {
	svc := NewService(memory.NewRepository())

	_, err := svc.UpdateProfile(context.Background(), types.UpdateProfileInput{ID: "u1", Name: "  ", Email: "nope"})
	require.ErrorIs(t, err, ErrInvalidInput)
	fields, ok := validation.FieldsOf(err)
	require.True(t, ok)
	require.Equal(t, "is required", fields["name"])
	require.Equal(t, "must be a valid email address", fields["email"])

	saved, err := svc.UpdateProfile(context.Background(), types.UpdateProfileInput{ID: "u1", Name: "Anna", TelegramID: "@anna"})
	require.NoError(t, err)
	require.Equal(t, "anna", saved.TelegramID)
}
