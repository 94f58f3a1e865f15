//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/cloo-solutions/chairside/internal/domain"
	"github.com/cloo-solutions/chairside/internal/palette"
	"github.com/cloo-solutions/chairside/internal/service"
	"github.com/cloo-solutions/chairside/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchLogRepository_CreateAndSelect(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(ctx, t)
	shopID := testutil.SeedShop(ctx, t, pool, "Fade Street")
	repo := NewSearchLogRepository(pool)

	entry := service.SearchLogEntry{
		ID:          uuid.NewString(),
		ShopID:      shopID,
		UserRef:     "sam",
		Role:        "barber",
		QueryLength: 3,
		Duration:    1500 * time.Microsecond,
		Results: []service.SearchLogResult{
			{Href: "/calendar", Kind: palette.KindNavigation, Score: 100},
		},
	}
	require.NoError(t, repo.CreateSearchLog(ctx, entry))

	require.NoError(t, repo.RecordSearchSelection(ctx, shopID, "sam", entry.ID, "/calendar", palette.KindNavigation))

	var chosen, kind string
	var count int
	var durationUs int64
	err := pool.QueryRow(ctx,
		`SELECT chosen_href, chosen_kind, result_count, duration_us FROM palette_searches WHERE id = $1`,
		entry.ID,
	).Scan(&chosen, &kind, &count, &durationUs)
	require.NoError(t, err)
	assert.Equal(t, "/calendar", chosen)
	assert.Equal(t, "navigation", kind)
	assert.Equal(t, 1, count)
	assert.Equal(t, int64(1500), durationUs)
}

func TestSearchLogRepository_SelectionScopedToUser(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(ctx, t)
	shopID := testutil.SeedShop(ctx, t, pool, "Fade Street")
	repo := NewSearchLogRepository(pool)

	id := uuid.NewString()
	require.NoError(t, repo.CreateSearchLog(ctx, service.SearchLogEntry{ID: id, ShopID: shopID, UserRef: "sam", Role: "barber"}))

	err := repo.RecordSearchSelection(ctx, shopID, "alex", id, "/help", "")
	assert.ErrorIs(t, err, domain.ErrSearchLogNotFound)

	err = repo.RecordSearchSelection(ctx, shopID, "sam", "garbage", "/help", "")
	assert.ErrorIs(t, err, domain.ErrSearchLogNotFound)
}

func TestSearchLogRepository_Prune(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(ctx, t)
	shopID := testutil.SeedShop(ctx, t, pool, "Fade Street")
	repo := NewSearchLogRepository(pool)

	now := time.Now().UTC()
	require.NoError(t, repo.CreateSearchLog(ctx, service.SearchLogEntry{ID: uuid.NewString(), ShopID: shopID, UserRef: "sam", Role: "barber", CreatedAt: now.Add(-40 * 24 * time.Hour)}))
	require.NoError(t, repo.CreateSearchLog(ctx, service.SearchLogEntry{ID: uuid.NewString(), ShopID: shopID, UserRef: "sam", Role: "barber", CreatedAt: now}))

	removed, err := repo.PruneSearchLogs(ctx, now.Add(-30*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
}
