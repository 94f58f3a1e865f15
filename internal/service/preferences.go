package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloo-solutions/chairside/internal/domain"
	"github.com/cloo-solutions/chairside/internal/pagination"
	"github.com/cloo-solutions/chairside/internal/palette"
)

// FavoriteRepository stores pinned pages per user.
type FavoriteRepository interface {
	ListFavorites(ctx context.Context, shopID, userRef string, limit int) ([]*domain.Favorite, error)
	GetFavorite(ctx context.Context, shopID, userRef, href string) (*domain.Favorite, error)
	CountFavorites(ctx context.Context, shopID, userRef string) (int, error)
	// InsertFavorite appends fav after the user's last favorite and sets
	// fav.Position.
	InsertFavorite(ctx context.Context, fav *domain.Favorite) error
	DeleteFavorite(ctx context.Context, shopID, userRef, href string) error
	// LockFavorites serialises writers for one user until the surrounding
	// transaction ends.
	LockFavorites(ctx context.Context, shopID, userRef string) error
}

// RecentRepository stores the pages a user visited, newest first.
type RecentRepository interface {
	ListRecents(ctx context.Context, shopID, userRef string, cursor *pagination.Cursor, limit int) (*pagination.PageResult[*domain.RecentVisit], error)
	UpsertRecent(ctx context.Context, visit *domain.RecentVisit) error
	PruneRecents(ctx context.Context, keep int, olderThan time.Time) (int64, error)
}

// PreferenceStore is the read/write view of a user's favorites and recents
// that palette ranking needs.
type PreferenceStore interface {
	Favorites(ctx context.Context, shopID, userRef string, limit int) ([]palette.Item, error)
	Recents(ctx context.Context, shopID, userRef string, limit int) ([]palette.Item, error)
	RecordVisit(ctx context.Context, visit *domain.RecentVisit) error
}

// AddFavoriteInput is the page to pin.
type AddFavoriteInput struct {
	Href        string
	Name        string
	Description string
}

// PreferenceService manages favorites and recents. It also serves as the
// PreferenceStore behind the palette.
type PreferenceService struct {
	tx        TxRunner
	favorites FavoriteRepository
	recents   RecentRepository
}

func NewPreferenceService(tx TxRunner, favorites FavoriteRepository, recents RecentRepository) *PreferenceService {
	return &PreferenceService{
		tx:        tx,
		favorites: favorites,
		recents:   recents,
	}
}

func (s *PreferenceService) ListFavorites(ctx context.Context, p *domain.Principal) ([]*domain.Favorite, error) {
	if err := requirePrincipal(p); err != nil {
		return nil, err
	}
	return s.favorites.ListFavorites(ctx, p.ShopID, p.UserRef, domain.MaxFavorites)
}

// AddFavorite pins a page. Pinning an already pinned href returns the
// existing favorite unchanged.
func (s *PreferenceService) AddFavorite(ctx context.Context, p *domain.Principal, input AddFavoriteInput) (*domain.Favorite, error) {
	if err := requirePrincipal(p); err != nil {
		return nil, err
	}

	fav := &domain.Favorite{
		ShopID:      p.ShopID,
		UserRef:     p.UserRef,
		Href:        strings.TrimSpace(input.Href),
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		CreatedAt:   time.Now().UTC(),
	}
	if err := domain.ValidateFavorite(fav); err != nil {
		return nil, err
	}

	var result *domain.Favorite
	err := s.tx.WithTx(ctx, func(repos TxRepositories) error {
		favorites := repos.Favorites()

		if err := favorites.LockFavorites(ctx, p.ShopID, p.UserRef); err != nil {
			return err
		}

		existing, err := favorites.GetFavorite(ctx, p.ShopID, p.UserRef, fav.Href)
		if err == nil {
			result = existing
			return nil
		}
		if !errors.Is(err, domain.ErrFavoriteNotFound) {
			return err
		}

		count, err := favorites.CountFavorites(ctx, p.ShopID, p.UserRef)
		if err != nil {
			return err
		}
		if count >= domain.MaxFavorites {
			return domain.ErrFavoritesFull
		}

		if err := favorites.InsertFavorite(ctx, fav); err != nil {
			return err
		}
		result = fav
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *PreferenceService) RemoveFavorite(ctx context.Context, p *domain.Principal, href string) error {
	if err := requirePrincipal(p); err != nil {
		return err
	}
	href = strings.TrimSpace(href)
	if err := domain.ValidateHref(href); err != nil {
		return err
	}
	return s.favorites.DeleteFavorite(ctx, p.ShopID, p.UserRef, href)
}

func (s *PreferenceService) ListRecents(ctx context.Context, p *domain.Principal, cursor string, limit int) (*pagination.PageResult[*domain.RecentVisit], error) {
	if err := requirePrincipal(p); err != nil {
		return nil, err
	}

	c, err := pagination.DecodeCursor(cursor)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid cursor", err)
	}

	return s.recents.ListRecents(ctx, p.ShopID, p.UserRef, c, pagination.ClampLimit(limit))
}

// PruneRecents keeps the newest keep visits per user and drops anything
// visited before olderThan.
func (s *PreferenceService) PruneRecents(ctx context.Context, keep int, olderThan time.Time) (int64, error) {
	return s.recents.PruneRecents(ctx, keep, olderThan)
}

func (s *PreferenceService) Favorites(ctx context.Context, shopID, userRef string, limit int) ([]palette.Item, error) {
	favs, err := s.favorites.ListFavorites(ctx, shopID, userRef, limit)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	items := make([]palette.Item, 0, len(favs))
	for _, f := range favs {
		items = append(items, palette.Item{
			Name:        f.Name,
			Description: f.Description,
			Href:        f.Href,
			Kind:        palette.KindFavorite,
		})
	}
	return items, nil
}

func (s *PreferenceService) Recents(ctx context.Context, shopID, userRef string, limit int) ([]palette.Item, error) {
	page, err := s.recents.ListRecents(ctx, shopID, userRef, nil, limit)
	if err != nil {
		return nil, fmt.Errorf("list recents: %w", err)
	}

	items := make([]palette.Item, 0, len(page.Items))
	for _, v := range page.Items {
		items = append(items, palette.Item{
			Name:        v.Name,
			Description: v.Description,
			Href:        v.Href,
			Kind:        palette.KindRecent,
		})
	}
	return items, nil
}

func (s *PreferenceService) RecordVisit(ctx context.Context, visit *domain.RecentVisit) error {
	if err := domain.ValidateRecentVisit(visit); err != nil {
		return err
	}
	if visit.VisitedAt.IsZero() {
		visit.VisitedAt = time.Now().UTC()
	}
	return s.recents.UpsertRecent(ctx, visit)
}

func requirePrincipal(p *domain.Principal) error {
	if p == nil || p.ShopID == "" || p.UserRef == "" {
		return domain.NewDomainError(domain.ErrCodeUnauthorized, "authenticated principal required")
	}
	return nil
}
