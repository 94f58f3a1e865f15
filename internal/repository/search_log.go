package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cloo-solutions/chairside/internal/domain"
	"github.com/cloo-solutions/chairside/internal/palette"
	"github.com/cloo-solutions/chairside/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SearchLogRepository stores palette searches for ranking feedback.
type SearchLogRepository struct {
	pool *pgxpool.Pool
}

func NewSearchLogRepository(pool *pgxpool.Pool) *SearchLogRepository {
	return &SearchLogRepository{pool: pool}
}

func (r *SearchLogRepository) CreateSearchLog(ctx context.Context, entry service.SearchLogEntry) error {
	results := entry.Results
	if results == nil {
		results = []service.SearchLogResult{}
	}
	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("marshal search results: %w", err)
	}

	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO palette_searches (id, shop_id, user_ref, role, query_length, quick_picks, results, result_count, duration_us, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		entry.ID,
		entry.ShopID,
		entry.UserRef,
		entry.Role,
		entry.QueryLength,
		entry.QuickPicks,
		resultsJSON,
		len(results),
		entry.Duration.Microseconds(),
		createdAt,
	)
	return err
}

// RecordSearchSelection stores the row the user opened. Searches belonging
// to another user are reported as not found.
func (r *SearchLogRepository) RecordSearchSelection(ctx context.Context, shopID, userRef, searchID, href string, kind palette.Kind) error {
	if !isUUID(searchID) {
		return domain.ErrSearchLogNotFound
	}

	var chosenKind *string
	if kind != "" {
		k := string(kind)
		chosenKind = &k
	}

	cmdTag, err := r.pool.Exec(ctx,
		`UPDATE palette_searches
		 SET chosen_href = $1, chosen_kind = $2, chosen_at = $3
		 WHERE id = $4 AND shop_id = $5 AND user_ref = $6`,
		href,
		chosenKind,
		time.Now().UTC(),
		searchID,
		shopID,
		userRef,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrSearchLogNotFound
	}
	return nil
}

func (r *SearchLogRepository) PruneSearchLogs(ctx context.Context, olderThan time.Time) (int64, error) {
	cmdTag, err := r.pool.Exec(ctx,
		`DELETE FROM palette_searches WHERE created_at < $1`,
		olderThan,
	)
	if err != nil {
		return 0, err
	}
	return cmdTag.RowsAffected(), nil
}
