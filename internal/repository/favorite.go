package repository

import (
	"context"
	"errors"

	"github.com/cloo-solutions/chairside/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FavoriteRepository struct {
	db dbtx
}

func NewFavoriteRepository(pool *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{db: pool}
}

func NewFavoriteRepositoryWithTx(tx pgx.Tx) *FavoriteRepository {
	return &FavoriteRepository{db: tx}
}

func (r *FavoriteRepository) ListFavorites(ctx context.Context, shopID, userRef string, limit int) ([]*domain.Favorite, error) {
	if limit <= 0 {
		limit = domain.MaxFavorites
	}

	rows, err := r.db.Query(ctx,
		`SELECT shop_id, user_ref, href, name, description, position, created_at
		 FROM favorites
		 WHERE shop_id = $1 AND user_ref = $2
		 ORDER BY position ASC
		 LIMIT $3`,
		shopID, userRef, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	favs := []*domain.Favorite{}
	for rows.Next() {
		var f domain.Favorite
		if err := rows.Scan(&f.ShopID, &f.UserRef, &f.Href, &f.Name, &f.Description, &f.Position, &f.CreatedAt); err != nil {
			return nil, err
		}
		favs = append(favs, &f)
	}
	return favs, rows.Err()
}

func (r *FavoriteRepository) GetFavorite(ctx context.Context, shopID, userRef, href string) (*domain.Favorite, error) {
	var f domain.Favorite
	err := r.db.QueryRow(ctx,
		`SELECT shop_id, user_ref, href, name, description, position, created_at
		 FROM favorites
		 WHERE shop_id = $1 AND user_ref = $2 AND href = $3`,
		shopID, userRef, href,
	).Scan(&f.ShopID, &f.UserRef, &f.Href, &f.Name, &f.Description, &f.Position, &f.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrFavoriteNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *FavoriteRepository) CountFavorites(ctx context.Context, shopID, userRef string) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM favorites WHERE shop_id = $1 AND user_ref = $2`,
		shopID, userRef,
	).Scan(&n)
	return n, err
}

func (r *FavoriteRepository) InsertFavorite(ctx context.Context, fav *domain.Favorite) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO favorites (shop_id, user_ref, href, name, description, position, created_at)
		 SELECT $1, $2, $3, $4, $5, COALESCE(MAX(position), 0) + 1, $6
		 FROM favorites WHERE shop_id = $1 AND user_ref = $2
		 RETURNING position`,
		fav.ShopID, fav.UserRef, fav.Href, fav.Name, fav.Description, fav.CreatedAt,
	).Scan(&fav.Position)
	if isUniqueViolation(err) {
		return domain.NewDomainError(domain.ErrCodeAlreadyExists, "favorite already exists")
	}
	return err
}

func (r *FavoriteRepository) DeleteFavorite(ctx context.Context, shopID, userRef, href string) error {
	cmdTag, err := r.db.Exec(ctx,
		`DELETE FROM favorites WHERE shop_id = $1 AND user_ref = $2 AND href = $3`,
		shopID, userRef, href,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrFavoriteNotFound
	}
	return nil
}

// LockFavorites takes a transaction-scoped advisory lock keyed on the user.
// Outside a transaction the lock is released as soon as the statement ends.
func (r *FavoriteRepository) LockFavorites(ctx context.Context, shopID, userRef string) error {
	_, err := r.db.Exec(ctx,
		`SELECT pg_advisory_xact_lock(hashtextextended($1::text || ':' || $2::text, 0))`,
		shopID, userRef,
	)
	return err
}
