//go:build integration

package repository

import (
	"context"
	"testing"

	"github.com/cloo-solutions/chairside/internal/pagination"
	"github.com/cloo-solutions/chairside/internal/testutil"
	"github.com/jackc/pgx/v5/pgxpool"
)

func newTestPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()

	pc := testutil.NewPostgresContainer(ctx, t)
	t.Cleanup(func() { _ = pc.Terminate(ctx) })

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	t.Cleanup(pool.Close)

	return pool
}

func decodeCursor(t *testing.T, raw string) *pagination.Cursor {
	t.Helper()

	cursor, err := pagination.DecodeCursor(raw)
	if err != nil {
		t.Fatalf("decode cursor: %v", err)
	}
	return cursor
}
