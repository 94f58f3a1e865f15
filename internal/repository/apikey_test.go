//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/cloo-solutions/chairside/internal/domain"
	"github.com/cloo-solutions/chairside/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKey(shopID, hash string, createdAt time.Time) *domain.APIKey {
	return domain.NewAPIKey(uuid.NewString(), shopID, "jo", domain.RoleBarber, "jo laptop", hash, createdAt, nil)
}

func TestAPIKeyRepository_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(ctx, t)
	shopID := testutil.SeedShop(ctx, t, pool, "Fade Street")
	repo := NewAPIKeyRepository(pool)

	key := newKey(shopID, "hash-1", time.Now().UTC().Truncate(time.Microsecond))
	require.NoError(t, repo.Create(ctx, key))

	byID, err := repo.GetByID(ctx, key.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoleBarber, byID.Role)
	assert.Equal(t, "jo", byID.UserRef)
	assert.Nil(t, byID.RevokedAt)

	byHash, err := repo.GetByHash(ctx, "hash-1")
	require.NoError(t, err)
	assert.Equal(t, key.ID, byHash.ID)

	dup := newKey(shopID, "hash-1", time.Now().UTC())
	assert.ErrorIs(t, repo.Create(ctx, dup), domain.ErrAPIKeyAlreadyExists)
}

func TestAPIKeyRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(ctx, t)
	repo := NewAPIKeyRepository(pool)

	_, err := repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrAPIKeyNotFound)

	_, err = repo.GetByHash(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrAPIKeyNotFound)

	assert.ErrorIs(t, repo.Revoke(ctx, "not-a-uuid"), domain.ErrAPIKeyNotFound)
}

func TestAPIKeyRepository_Revoke(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(ctx, t)
	shopID := testutil.SeedShop(ctx, t, pool, "Fade Street")
	repo := NewAPIKeyRepository(pool)

	key := newKey(shopID, "hash-1", time.Now().UTC())
	require.NoError(t, repo.Create(ctx, key))

	require.NoError(t, repo.Revoke(ctx, key.ID))

	revoked, err := repo.GetByID(ctx, key.ID)
	require.NoError(t, err)
	assert.True(t, revoked.IsRevoked())

	assert.ErrorIs(t, repo.Revoke(ctx, key.ID), domain.ErrAPIKeyNotFound, "second revoke finds nothing to revoke")
}

func TestAPIKeyRepository_ListByShopWithCursor(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(ctx, t)
	shopID := testutil.SeedShop(ctx, t, pool, "Fade Street")
	otherShop := testutil.SeedShop(ctx, t, pool, "Other")
	repo := NewAPIKeyRepository(pool)

	base := time.Now().UTC().Truncate(time.Microsecond)
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, newKey(shopID, uuid.NewString(), base.Add(time.Duration(i)*time.Second))))
	}
	require.NoError(t, repo.Create(ctx, newKey(otherShop, uuid.NewString(), base)))

	first, err := repo.ListByShopWithCursor(ctx, shopID, nil, 2)
	require.NoError(t, err)
	assert.Len(t, first.Items, 2)
	assert.True(t, first.HasMore)

	second, err := repo.ListByShopWithCursor(ctx, shopID, decodeCursor(t, first.Cursor), 2)
	require.NoError(t, err)
	assert.Len(t, second.Items, 1)
	assert.False(t, second.HasMore)

	for _, k := range append(first.Items, second.Items...) {
		assert.Equal(t, shopID, k.ShopID)
	}
}
