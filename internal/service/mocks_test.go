package service

import (
	"context"
	"time"

	"github.com/cloo-solutions/chairside/internal/domain"
	"github.com/cloo-solutions/chairside/internal/pagination"
	"github.com/cloo-solutions/chairside/internal/palette"
	"github.com/stretchr/testify/mock"
)

type MockUUIDGenerator struct {
	uuids     []string
	callCount int
}

func NewMockUUIDGenerator(uuids ...string) *MockUUIDGenerator {
	return &MockUUIDGenerator{uuids: uuids}
}

func (m *MockUUIDGenerator) NewString() string {
	if m.callCount < len(m.uuids) {
		uuid := m.uuids[m.callCount]
		m.callCount++
		return uuid
	}
	return "default-uuid"
}

type MockShopRepository struct {
	mock.Mock
}

func (m *MockShopRepository) Create(ctx context.Context, shop *domain.Shop) error {
	args := m.Called(ctx, shop)
	return args.Error(0)
}

func (m *MockShopRepository) GetByID(ctx context.Context, id string) (*domain.Shop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shop), args.Error(1)
}

func (m *MockShopRepository) GetByName(ctx context.Context, name string) (*domain.Shop, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shop), args.Error(1)
}

func (m *MockShopRepository) ListWithCursor(ctx context.Context, cursor *pagination.Cursor, limit int) (*pagination.PageResult[*domain.Shop], error) {
	args := m.Called(ctx, cursor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.PageResult[*domain.Shop]), args.Error(1)
}

type MockAPIKeyRepository struct {
	mock.Mock
}

func (m *MockAPIKeyRepository) Create(ctx context.Context, key *domain.APIKey) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockAPIKeyRepository) GetByID(ctx context.Context, id string) (*domain.APIKey, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.APIKey), args.Error(1)
}

func (m *MockAPIKeyRepository) GetByHash(ctx context.Context, hash string) (*domain.APIKey, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.APIKey), args.Error(1)
}

func (m *MockAPIKeyRepository) ListByShopWithCursor(ctx context.Context, shopID string, cursor *pagination.Cursor, limit int) (*pagination.PageResult[*domain.APIKey], error) {
	args := m.Called(ctx, shopID, cursor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.PageResult[*domain.APIKey]), args.Error(1)
}

func (m *MockAPIKeyRepository) Revoke(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockFavoriteRepository struct {
	mock.Mock
}

func (m *MockFavoriteRepository) ListFavorites(ctx context.Context, shopID, userRef string, limit int) ([]*domain.Favorite, error) {
	args := m.Called(ctx, shopID, userRef, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) GetFavorite(ctx context.Context, shopID, userRef, href string) (*domain.Favorite, error) {
	args := m.Called(ctx, shopID, userRef, href)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Favorite), args.Error(1)
}

func (m *MockFavoriteRepository) CountFavorites(ctx context.Context, shopID, userRef string) (int, error) {
	args := m.Called(ctx, shopID, userRef)
	return args.Int(0), args.Error(1)
}

func (m *MockFavoriteRepository) InsertFavorite(ctx context.Context, fav *domain.Favorite) error {
	args := m.Called(ctx, fav)
	return args.Error(0)
}

func (m *MockFavoriteRepository) DeleteFavorite(ctx context.Context, shopID, userRef, href string) error {
	args := m.Called(ctx, shopID, userRef, href)
	return args.Error(0)
}

func (m *MockFavoriteRepository) LockFavorites(ctx context.Context, shopID, userRef string) error {
	args := m.Called(ctx, shopID, userRef)
	return args.Error(0)
}

type MockRecentRepository struct {
	mock.Mock
}

func (m *MockRecentRepository) ListRecents(ctx context.Context, shopID, userRef string, cursor *pagination.Cursor, limit int) (*pagination.PageResult[*domain.RecentVisit], error) {
	args := m.Called(ctx, shopID, userRef, cursor, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pagination.PageResult[*domain.RecentVisit]), args.Error(1)
}

func (m *MockRecentRepository) UpsertRecent(ctx context.Context, visit *domain.RecentVisit) error {
	args := m.Called(ctx, visit)
	return args.Error(0)
}

func (m *MockRecentRepository) PruneRecents(ctx context.Context, keep int, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, keep, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

type MockPreferenceStore struct {
	mock.Mock
}

func (m *MockPreferenceStore) Favorites(ctx context.Context, shopID, userRef string, limit int) ([]palette.Item, error) {
	args := m.Called(ctx, shopID, userRef, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]palette.Item), args.Error(1)
}

func (m *MockPreferenceStore) Recents(ctx context.Context, shopID, userRef string, limit int) ([]palette.Item, error) {
	args := m.Called(ctx, shopID, userRef, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]palette.Item), args.Error(1)
}

func (m *MockPreferenceStore) RecordVisit(ctx context.Context, visit *domain.RecentVisit) error {
	args := m.Called(ctx, visit)
	return args.Error(0)
}

type MockSearchLogRepository struct {
	mock.Mock
}

func (m *MockSearchLogRepository) CreateSearchLog(ctx context.Context, entry SearchLogEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockSearchLogRepository) RecordSearchSelection(ctx context.Context, shopID, userRef, searchID, href string, kind palette.Kind) error {
	args := m.Called(ctx, shopID, userRef, searchID, href, kind)
	return args.Error(0)
}

func (m *MockSearchLogRepository) PruneSearchLogs(ctx context.Context, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

// MockTxRunner runs fn directly against the wrapped repositories.
type MockTxRunner struct {
	favorites FavoriteRepository
}

func (m *MockTxRunner) WithTx(ctx context.Context, fn func(repos TxRepositories) error) error {
	return fn(m)
}

func (m *MockTxRunner) Favorites() FavoriteRepository {
	return m.favorites
}
