package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cloo-solutions/chairside/internal/catalog"
	"github.com/cloo-solutions/chairside/internal/domain"
	"github.com/cloo-solutions/chairside/internal/palette"
	"github.com/cloo-solutions/chairside/internal/telemetry"
	"go.uber.org/zap"
)

const (
	// MaxSearchLimit caps the limit a client may ask for.
	MaxSearchLimit = 50

	// recentCandidates is how many recents join the ranked candidates.
	recentCandidates = 20
)

// PaletteOptions configures result sizes.
type PaletteOptions struct {
	Limit      int
	QuickPicks palette.QuickPickLimits
}

// SearchInput is one palette query.
type SearchInput struct {
	Principal *domain.Principal
	Query     string
	Limit     int
}

// SearchOutput is the ranked rows for one query. SearchID is empty when the
// search could not be logged.
type SearchOutput struct {
	SearchID   string                 `json:"search_id,omitempty"`
	QuickPicks bool                   `json:"quick_picks"`
	Results    []palette.ScoredResult `json:"results"`
}

// SelectionInput reports which row the user opened.
type SelectionInput struct {
	Principal   *domain.Principal
	SearchID    string
	Href        string
	Name        string
	Description string
	Kind        palette.Kind
}

// PaletteService answers palette queries for an authenticated user.
type PaletteService struct {
	store   PreferenceStore
	logs    SearchLogRepository
	uuidGen UUIDGenerator
	opts    PaletteOptions
	logger  *zap.Logger
	now     func() time.Time
}

func NewPaletteService(store PreferenceStore, logs SearchLogRepository, uuidGen UUIDGenerator, opts PaletteOptions, logger *zap.Logger) *PaletteService {
	if opts.Limit <= 0 {
		opts.Limit = palette.DefaultLimit
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaletteService{
		store:   store,
		logs:    logs,
		uuidGen: uuidGen,
		opts:    opts,
		logger:  logger,
		now:     time.Now,
	}
}

// Search ranks the catalog against the query. A blank query returns the
// user's quick picks instead.
func (s *PaletteService) Search(ctx context.Context, input SearchInput) (*SearchOutput, error) {
	p := input.Principal
	if err := requirePrincipal(p); err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartSpan(ctx, "palette.search", telemetry.SpanAttributes{
		ShopID:    p.ShopID,
		UserRef:   p.UserRef,
		Role:      string(p.Role),
		Operation: "search",
	})
	defer span.End()

	start := s.now()
	query := strings.TrimSpace(input.Query)
	limit := s.limit(input.Limit)

	var (
		results    []palette.ScoredResult
		quickPicks = query == ""
		err        error
	)
	if quickPicks {
		results, err = s.quickPicks(ctx, p, limit)
	} else {
		results, err = s.rank(ctx, p, query, limit)
	}
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	out := &SearchOutput{
		QuickPicks: quickPicks,
		Results:    results,
	}

	entry := SearchLogEntry{
		ID:          s.uuidGen.NewString(),
		ShopID:      p.ShopID,
		UserRef:     p.UserRef,
		Role:        string(p.Role),
		QueryLength: utf8.RuneCountInString(query),
		QuickPicks:  quickPicks,
		Duration:    s.now().Sub(start),
		Results:     logResults(results),
		CreatedAt:   start.UTC(),
	}
	if err := s.logs.CreateSearchLog(ctx, entry); err != nil {
		s.logger.Warn("failed to log palette search",
			zap.String("shop_id", p.ShopID),
			zap.Error(err))
	} else {
		out.SearchID = entry.ID
	}

	return out, nil
}

func (s *PaletteService) limit(requested int) int {
	if requested <= 0 {
		return s.opts.Limit
	}
	if requested > MaxSearchLimit {
		return MaxSearchLimit
	}
	return requested
}

func (s *PaletteService) quickPicks(ctx context.Context, p *domain.Principal, limit int) ([]palette.ScoredResult, error) {
	limits := s.opts.QuickPicks
	if limits.Total <= 0 {
		limits.Total = palette.DefaultQuickPickLimits.Total
	}
	if limit < limits.Total {
		limits.Total = limit
	}

	favorites, recents, err := s.preferences(ctx, p, limits.Favorites, limits.Recents)
	if err != nil {
		return nil, err
	}

	items := palette.QuickPicks(favorites, recents, limits)
	results := make([]palette.ScoredResult, 0, len(items))
	for _, item := range items {
		results = append(results, palette.ScoredResult{Item: item})
	}
	return results, nil
}

func (s *PaletteService) rank(ctx context.Context, p *domain.Principal, query string, limit int) ([]palette.ScoredResult, error) {
	favorites, recents, err := s.preferences(ctx, p, domain.MaxFavorites, recentCandidates)
	if err != nil {
		return nil, err
	}

	candidates := catalog.Candidates(p.Role, favorites, recents)
	return palette.Rank(query, candidates, limit), nil
}

func (s *PaletteService) preferences(ctx context.Context, p *domain.Principal, favLimit, recentLimit int) ([]palette.Item, []palette.Item, error) {
	if favLimit <= 0 {
		favLimit = palette.DefaultQuickPickLimits.Favorites
	}
	if recentLimit <= 0 {
		recentLimit = palette.DefaultQuickPickLimits.Recents
	}

	favorites, err := s.store.Favorites(ctx, p.ShopID, p.UserRef, favLimit)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrPreferenceStoreFail, err)
	}
	recents, err := s.store.Recents(ctx, p.ShopID, p.UserRef, recentLimit)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrPreferenceStoreFail, err)
	}
	return favorites, recents, nil
}

// RecordSelection stores the opened row on its search log, when known, and
// moves the page to the front of the user's recents.
func (s *PaletteService) RecordSelection(ctx context.Context, input SelectionInput) error {
	p := input.Principal
	if err := requirePrincipal(p); err != nil {
		return err
	}

	href := strings.TrimSpace(input.Href)
	if err := domain.ValidateHref(href); err != nil {
		return err
	}
	if input.Kind != "" && !input.Kind.IsValid() {
		return domain.ErrInvalidKind
	}

	ctx, span := telemetry.StartSpan(ctx, "palette.selection", telemetry.SpanAttributes{
		ShopID:    p.ShopID,
		UserRef:   p.UserRef,
		Role:      string(p.Role),
		Operation: "selection",
	})
	defer span.End()

	if input.SearchID != "" {
		err := s.logs.RecordSearchSelection(ctx, p.ShopID, p.UserRef, input.SearchID, href, input.Kind)
		switch {
		case errors.Is(err, domain.ErrSearchLogNotFound):
			s.logger.Debug("selection for unknown search", zap.String("search_id", input.SearchID))
		case err != nil:
			s.logger.Warn("failed to record search selection",
				zap.String("search_id", input.SearchID),
				zap.Error(err))
		}
	}

	visit := &domain.RecentVisit{
		ShopID:      p.ShopID,
		UserRef:     p.UserRef,
		Href:        href,
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		VisitedAt:   s.now().UTC(),
	}
	if err := s.store.RecordVisit(ctx, visit); err != nil {
		span.SetError(err)
		return err
	}

	telemetry.AddBreadcrumb(ctx, "palette", "selected "+href)
	return nil
}

// Navigation returns the navigation tree for the caller's role.
func (s *PaletteService) Navigation(ctx context.Context, p *domain.Principal) ([]domain.NavItem, error) {
	if err := requirePrincipal(p); err != nil {
		return nil, err
	}
	return catalog.Navigation(p.Role), nil
}

// QuickActions returns the quick actions for the caller's role.
func (s *PaletteService) QuickActions(ctx context.Context, p *domain.Principal) ([]domain.QuickAction, error) {
	if err := requirePrincipal(p); err != nil {
		return nil, err
	}
	return catalog.QuickActions(p.Role), nil
}

func logResults(results []palette.ScoredResult) []SearchLogResult {
	out := make([]SearchLogResult, 0, len(results))
	for _, r := range results {
		out = append(out, SearchLogResult{
			Href:  r.Item.Href,
			Kind:  r.Item.Kind,
			Score: r.Score,
		})
	}
	return out
}
