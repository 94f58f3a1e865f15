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

const apiKeyColumns = `id, shop_id, user_ref, role, name, key_hash, created_at, revoked_at`

type APIKeyRepository struct {
	pool *pgxpool.Pool
}

func NewAPIKeyRepository(pool *pgxpool.Pool) *APIKeyRepository {
	return &APIKeyRepository{pool: pool}
}

func scanAPIKey(row pgx.Row) (*domain.APIKey, error) {
	var key domain.APIKey
	var role string
	if err := row.Scan(&key.ID, &key.ShopID, &key.UserRef, &role, &key.Name, &key.KeyHash, &key.CreatedAt, &key.RevokedAt); err != nil {
		return nil, err
	}
	key.Role = domain.Role(role)
	return &key, nil
}

func (r *APIKeyRepository) Create(ctx context.Context, key *domain.APIKey) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO api_keys (`+apiKeyColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		key.ID, key.ShopID, key.UserRef, string(key.Role), key.Name, key.KeyHash, key.CreatedAt, key.RevokedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrAPIKeyAlreadyExists
	}
	return err
}

func (r *APIKeyRepository) GetByID(ctx context.Context, id string) (*domain.APIKey, error) {
	if !isUUID(id) {
		return nil, domain.ErrAPIKeyNotFound
	}
	key, err := scanAPIKey(r.pool.QueryRow(ctx,
		`SELECT `+apiKeyColumns+` FROM api_keys WHERE id = $1`,
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAPIKeyNotFound
		}
		return nil, err
	}
	return key, nil
}

func (r *APIKeyRepository) GetByHash(ctx context.Context, hash string) (*domain.APIKey, error) {
	key, err := scanAPIKey(r.pool.QueryRow(ctx,
		`SELECT `+apiKeyColumns+` FROM api_keys WHERE key_hash = $1`,
		hash,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAPIKeyNotFound
		}
		return nil, err
	}
	return key, nil
}

func (r *APIKeyRepository) ListByShopWithCursor(ctx context.Context, shopID string, cursor *pagination.Cursor, limit int) (*pagination.PageResult[*domain.APIKey], error) {
	if limit <= 0 {
		limit = pagination.DefaultLimit
	}
	if !isUUID(shopID) {
		return &pagination.PageResult[*domain.APIKey]{Items: []*domain.APIKey{}}, nil
	}

	var rows pgx.Rows
	var err error

	if cursor != nil {
		rows, err = r.pool.Query(ctx,
			`SELECT `+apiKeyColumns+`
			 FROM api_keys
			 WHERE shop_id = $1 AND (created_at, id) < ($2, $3)
			 ORDER BY created_at DESC, id DESC
			 LIMIT $4`,
			shopID, cursor.Timestamp, cursor.LastID, limit+1,
		)
	} else {
		rows, err = r.pool.Query(ctx,
			`SELECT `+apiKeyColumns+`
			 FROM api_keys
			 WHERE shop_id = $1
			 ORDER BY created_at DESC, id DESC
			 LIMIT $2`,
			shopID, limit+1,
		)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []*domain.APIKey
	for rows.Next() {
		key, err := scanAPIKey(rows)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	page := pagination.Trim(keys, limit,
		func(k *domain.APIKey) string { return k.ID },
		func(k *domain.APIKey) time.Time { return k.CreatedAt },
	)
	return &page, nil
}

func (r *APIKeyRepository) Revoke(ctx context.Context, id string) error {
	if !isUUID(id) {
		return domain.ErrAPIKeyNotFound
	}
	now := time.Now().UTC()
	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE api_keys SET revoked_at = $1 WHERE id = $2 AND revoked_at IS NULL`,
		now, id,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrAPIKeyNotFound
	}
	return nil
}
