package repository

import (
	"context"
	"errors"
	"time"

	"github.com/cloo-solutions/chairside/internal/domain"
	"github.com/cloo-solutions/chairside/internal/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ShopRepository struct {
	pool *pgxpool.Pool
}

func NewShopRepository(pool *pgxpool.Pool) *ShopRepository {
	return &ShopRepository{pool: pool}
}

func (r *ShopRepository) Create(ctx context.Context, shop *domain.Shop) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO shops (id, name, created_at) VALUES ($1, $2, $3)`,
		shop.ID, shop.Name, shop.CreatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrShopAlreadyExists
	}
	return err
}

func (r *ShopRepository) GetByID(ctx context.Context, id string) (*domain.Shop, error) {
	if !isUUID(id) {
		return nil, domain.ErrShopNotFound
	}
	var shop domain.Shop
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, created_at FROM shops WHERE id = $1`,
		id,
	).Scan(&shop.ID, &shop.Name, &shop.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrShopNotFound
		}
		return nil, err
	}
	return &shop, nil
}

func (r *ShopRepository) GetByName(ctx context.Context, name string) (*domain.Shop, error) {
	var shop domain.Shop
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, created_at FROM shops WHERE name = $1`,
		name,
	).Scan(&shop.ID, &shop.Name, &shop.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrShopNotFound
		}
		return nil, err
	}
	return &shop, nil
}

func (r *ShopRepository) ListWithCursor(ctx context.Context, cursor *pagination.Cursor, limit int) (*pagination.PageResult[*domain.Shop], error) {
	if limit <= 0 {
		limit = pagination.DefaultLimit
	}

	var rows pgx.Rows
	var err error

	if cursor != nil {
		rows, err = r.pool.Query(ctx,
			`SELECT id, name, created_at FROM shops
			 WHERE (created_at, id) < ($1, $2)
			 ORDER BY created_at DESC, id DESC
			 LIMIT $3`,
			cursor.Timestamp, cursor.LastID, limit+1,
		)
	} else {
		rows, err = r.pool.Query(ctx,
			`SELECT id, name, created_at FROM shops
			 ORDER BY created_at DESC, id DESC
			 LIMIT $1`,
			limit+1,
		)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shops []*domain.Shop
	for rows.Next() {
		var shop domain.Shop
		if err := rows.Scan(&shop.ID, &shop.Name, &shop.CreatedAt); err != nil {
			return nil, err
		}
		shops = append(shops, &shop)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	page := pagination.Trim(shops, limit,
		func(s *domain.Shop) string { return s.ID },
		func(s *domain.Shop) time.Time { return s.CreatedAt },
	)
	return &page, nil
}
