package repository

import (
	"context"
	"math"
	"time"

	"github.com/cloo-solutions/chairside/internal/domain"
	"github.com/cloo-solutions/chairside/internal/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RecentRepository struct {
	pool *pgxpool.Pool
}

func NewRecentRepository(pool *pgxpool.Pool) *RecentRepository {
	return &RecentRepository{pool: pool}
}

// ListRecents pages through a user's visits, newest first. Ties on
// visited_at are broken by href.
func (r *RecentRepository) ListRecents(ctx context.Context, shopID, userRef string, cursor *pagination.Cursor, limit int) (*pagination.PageResult[*domain.RecentVisit], error) {
	if limit <= 0 {
		limit = pagination.DefaultLimit
	}

	var rows pgx.Rows
	var err error

	if cursor != nil {
		rows, err = r.pool.Query(ctx,
			`SELECT shop_id, user_ref, href, name, description, visited_at
			 FROM recent_visits
			 WHERE shop_id = $1 AND user_ref = $2 AND (visited_at, href) < ($3, $4)
			 ORDER BY visited_at DESC, href DESC
			 LIMIT $5`,
			shopID, userRef, cursor.Timestamp, cursor.LastID, limit+1,
		)
	} else {
		rows, err = r.pool.Query(ctx,
			`SELECT shop_id, user_ref, href, name, description, visited_at
			 FROM recent_visits
			 WHERE shop_id = $1 AND user_ref = $2
			 ORDER BY visited_at DESC, href DESC
			 LIMIT $3`,
			shopID, userRef, limit+1,
		)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var visits []*domain.RecentVisit
	for rows.Next() {
		var v domain.RecentVisit
		if err := rows.Scan(&v.ShopID, &v.UserRef, &v.Href, &v.Name, &v.Description, &v.VisitedAt); err != nil {
			return nil, err
		}
		visits = append(visits, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	page := pagination.Trim(visits, limit,
		func(v *domain.RecentVisit) string { return v.Href },
		func(v *domain.RecentVisit) time.Time { return v.VisitedAt },
	)
	return &page, nil
}

// UpsertRecent records a visit, moving an already listed href to the front.
func (r *RecentRepository) UpsertRecent(ctx context.Context, visit *domain.RecentVisit) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO recent_visits (shop_id, user_ref, href, name, description, visited_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (shop_id, user_ref, href)
		 DO UPDATE SET name = EXCLUDED.name,
		               description = EXCLUDED.description,
		               visited_at = GREATEST(recent_visits.visited_at, EXCLUDED.visited_at)`,
		visit.ShopID, visit.UserRef, visit.Href, visit.Name, visit.Description, visit.VisitedAt,
	)
	return err
}

// PruneRecents deletes visits older than olderThan and every visit beyond
// the newest keep per user. A non-positive keep disables the count cap. It
// returns the number of rows removed.
func (r *RecentRepository) PruneRecents(ctx context.Context, keep int, olderThan time.Time) (int64, error) {
	if keep <= 0 {
		keep = math.MaxInt32
	}
	cmdTag, err := r.pool.Exec(ctx,
		`DELETE FROM recent_visits rv
		 USING (
		     SELECT shop_id, user_ref, href,
		            ROW_NUMBER() OVER (PARTITION BY shop_id, user_ref ORDER BY visited_at DESC, href DESC) AS rn
		     FROM recent_visits
		 ) ranked
		 WHERE rv.shop_id = ranked.shop_id
		   AND rv.user_ref = ranked.user_ref
		   AND rv.href = ranked.href
		   AND (ranked.rn > $1 OR rv.visited_at < $2)`,
		keep, olderThan,
	)
	if err != nil {
		return 0, err
	}
	return cmdTag.RowsAffected(), nil
}
