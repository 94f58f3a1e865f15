package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// RecentPruner trims per-user recent visits.
type RecentPruner interface {
	PruneRecents(ctx context.Context, keep int, olderThan time.Time) (int64, error)
}

// SearchLogPruner deletes palette search logs.
type SearchLogPruner interface {
	PruneSearchLogs(ctx context.Context, olderThan time.Time) (int64, error)
}

// PruneOptions controls what the prune job removes. A zero duration disables
// the matching age cutoff.
type PruneOptions struct {
	RecentsRetention   int
	RecentsMaxAge      time.Duration
	SearchLogRetention time.Duration
}

// PruneProcessor keeps the recents and search-log tables bounded.
type PruneProcessor struct {
	recents RecentPruner
	logs    SearchLogPruner
	opts    PruneOptions
	logger  *zap.Logger
	now     func() time.Time
}

func NewPruneProcessor(recents RecentPruner, logs SearchLogPruner, opts PruneOptions, logger *zap.Logger) *PruneProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PruneProcessor{
		recents: recents,
		logs:    logs,
		opts:    opts,
		logger:  logger,
		now:     time.Now,
	}
}

// ProcessJobs implements the JobProcessor interface. Both prunes run even if
// the first one fails.
func (p *PruneProcessor) ProcessJobs(ctx context.Context) error {
	now := p.now().UTC()
	var errs []error

	if p.recents != nil {
		removed, err := p.recents.PruneRecents(ctx, p.opts.RecentsRetention, cutoff(now, p.opts.RecentsMaxAge))
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to prune recents: %w", err))
		} else if removed > 0 {
			p.logger.Info("pruned recents", zap.Int64("removed", removed))
		}
	}

	if p.logs != nil && p.opts.SearchLogRetention > 0 {
		removed, err := p.logs.PruneSearchLogs(ctx, now.Add(-p.opts.SearchLogRetention))
		if err != nil {
			errs = append(errs, fmt.Errorf("failed to prune search logs: %w", err))
		} else if removed > 0 {
			p.logger.Info("pruned search logs", zap.Int64("removed", removed))
		}
	}

	return errors.Join(errs...)
}

// cutoff returns the zero time when maxAge is unset so nothing is aged out.
func cutoff(now time.Time, maxAge time.Duration) time.Time {
	if maxAge <= 0 {
		return time.Time{}
	}
	return now.Add(-maxAge)
}
