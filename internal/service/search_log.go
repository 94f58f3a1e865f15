package service

import (
	"context"
	"time"

	"github.com/cloo-solutions/chairside/internal/palette"
)

// SearchLogResult captures a single result row for logging.
type SearchLogResult struct {
	Href  string       `json:"href"`
	Kind  palette.Kind `json:"kind"`
	Score int          `json:"score"`
}

// SearchLogEntry captures a palette search and what it returned. The query
// text itself is not kept, only its length.
type SearchLogEntry struct {
	ID          string
	ShopID      string
	UserRef     string
	Role        string
	QueryLength int
	QuickPicks  bool
	Duration    time.Duration
	Results     []SearchLogResult
	CreatedAt   time.Time
}

// SearchLogRepository persists search logs and selection feedback.
type SearchLogRepository interface {
	CreateSearchLog(ctx context.Context, entry SearchLogEntry) error
	RecordSearchSelection(ctx context.Context, shopID, userRef, searchID, href string, kind palette.Kind) error
	PruneSearchLogs(ctx context.Context, olderThan time.Time) (int64, error)
}
