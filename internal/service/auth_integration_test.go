//go:build integration

package service_test

import (
	"context"
	"testing"

	"github.com/cloo-solutions/chairside/internal/domain"
	"github.com/cloo-solutions/chairside/internal/repository"
	"github.com/cloo-solutions/chairside/internal/service"
	"github.com/cloo-solutions/chairside/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Integration_KeyLifecycle(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	shopRepo := repository.NewShopRepository(pool)
	keyRepo := repository.NewAPIKeyRepository(pool)
	svc := service.NewAuthService(shopRepo, keyRepo, &service.DefaultUUIDGenerator{})

	shop, err := svc.CreateShop(ctx, "Fade Factory")
	require.NoError(t, err)

	_, err = svc.CreateShop(ctx, "Fade Factory")
	assert.Equal(t, domain.ErrCodeAlreadyExists, domain.CodeOf(err))

	issued, err := svc.CreateAPIKey(ctx, service.CreateAPIKeyInput{
		ShopID:  shop.ID,
		UserRef: "marcus",
		Role:    "receptionist",
		Name:    "front desk",
	})
	require.NoError(t, err)
	assert.True(t, service.IsValidAPIToken(issued.Token))
	assert.NotEqual(t, issued.Token, issued.Key.KeyHash)

	principal, err := svc.ValidateAPIKey(ctx, issued.Token)
	require.NoError(t, err)
	assert.Equal(t, shop.ID, principal.ShopID)
	assert.Equal(t, "marcus", principal.UserRef)
	assert.Equal(t, domain.RoleReceptionist, principal.Role)

	page, err := svc.ListAPIKeys(ctx, shop.ID, "", 10)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)

	require.NoError(t, svc.RevokeAPIKey(ctx, issued.Key.ID))

	_, err = svc.ValidateAPIKey(ctx, issued.Token)
	assert.Equal(t, domain.ErrCodeUnauthorized, domain.CodeOf(err))
}

func TestAuthService_Integration_CreateAPIKeyWithToken(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	svc := service.NewAuthService(repository.NewShopRepository(pool), repository.NewAPIKeyRepository(pool), &service.DefaultUUIDGenerator{})

	shop, err := svc.CreateShop(ctx, "Clip Joint")
	require.NoError(t, err)

	token := "chs_" + "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	key, err := svc.CreateAPIKeyWithToken(ctx, service.CreateAPIKeyInput{
		ShopID:  shop.ID,
		UserRef: "owner",
		Role:    "owner",
		Name:    "bootstrap",
	}, token)
	require.NoError(t, err)

	found, err := svc.GetAPIKeyByToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, key.ID, found.ID)

	_, err = svc.CreateAPIKeyWithToken(ctx, service.CreateAPIKeyInput{
		ShopID:  shop.ID,
		UserRef: "owner",
		Role:    "owner",
		Name:    "again",
	}, token)
	assert.Error(t, err)
}
