package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cloo-solutions/chairside/internal/api/handlers"
	"github.com/cloo-solutions/chairside/internal/catalog"
	"github.com/cloo-solutions/chairside/internal/domain"
	"github.com/cloo-solutions/chairside/internal/pagination"
	"github.com/cloo-solutions/chairside/internal/palette"
	"github.com/cloo-solutions/chairside/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const (
	validToken = "chs_0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"
	adminToken = "operator-secret"
)

var principal = &domain.Principal{KeyID: "key-1", ShopID: "shop-1", UserRef: "sam", Role: domain.RoleBarber}

type MockAuthValidator struct {
	mock.Mock
}

func (m *MockAuthValidator) ValidateAPIKey(ctx context.Context, token string) (*domain.Principal, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Principal), args.Error(1)
}

// fakePalette answers from the static catalog.
type fakePalette struct{}

func (fakePalette) Search(ctx context.Context, input service.SearchInput) (*service.SearchOutput, error) {
	results := palette.Rank(input.Query, catalog.Candidates(input.Principal.Role, nil, nil), palette.DefaultLimit)
	return &service.SearchOutput{Results: results}, nil
}

func (fakePalette) RecordSelection(ctx context.Context, input service.SelectionInput) error {
	return nil
}

func (fakePalette) Navigation(ctx context.Context, p *domain.Principal) ([]domain.NavItem, error) {
	return catalog.Navigation(p.Role), nil
}

func (fakePalette) QuickActions(ctx context.Context, p *domain.Principal) ([]domain.QuickAction, error) {
	return catalog.QuickActions(p.Role), nil
}

type fakePreferences struct{}

func (fakePreferences) ListFavorites(ctx context.Context, p *domain.Principal) ([]*domain.Favorite, error) {
	return []*domain.Favorite{}, nil
}

func (fakePreferences) AddFavorite(ctx context.Context, p *domain.Principal, input service.AddFavoriteInput) (*domain.Favorite, error) {
	return &domain.Favorite{Href: input.Href, Name: input.Name, Position: 1, CreatedAt: time.Now()}, nil
}

func (fakePreferences) RemoveFavorite(ctx context.Context, p *domain.Principal, href string) error {
	return nil
}

func (fakePreferences) ListRecents(ctx context.Context, p *domain.Principal, cursor string, limit int) (*pagination.PageResult[*domain.RecentVisit], error) {
	return &pagination.PageResult[*domain.RecentVisit]{Items: []*domain.RecentVisit{}}, nil
}

type fakeAdmin struct{}

func (fakeAdmin) CreateShop(ctx context.Context, name string) (*domain.Shop, error) {
	return &domain.Shop{ID: "shop-2", Name: name, CreatedAt: time.Now()}, nil
}

func (fakeAdmin) ListShops(ctx context.Context, cursor string, limit int) (*pagination.PageResult[*domain.Shop], error) {
	return &pagination.PageResult[*domain.Shop]{Items: []*domain.Shop{}}, nil
}

func (fakeAdmin) CreateAPIKey(ctx context.Context, input service.CreateAPIKeyInput) (*service.IssuedAPIKey, error) {
	return nil, domain.ErrShopNotFound
}

func (fakeAdmin) ListAPIKeys(ctx context.Context, shopID, cursor string, limit int) (*pagination.PageResult[*domain.APIKey], error) {
	return &pagination.PageResult[*domain.APIKey]{Items: []*domain.APIKey{}}, nil
}

func (fakeAdmin) RevokeAPIKey(ctx context.Context, keyID string) error {
	return nil
}

func newTestRouter(adminTok string) http.Handler {
	return newLoggedTestRouter(adminTok, nil)
}

func newLoggedTestRouter(adminTok string, logger *zap.Logger) http.Handler {
	validator := new(MockAuthValidator)
	validator.On("ValidateAPIKey", mock.Anything, validToken).Return(principal, nil)
	validator.On("ValidateAPIKey", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidAPIKey)

	return NewRouter(RouterConfig{
		Logger:            logger,
		AuthValidator:     validator,
		AdminToken:        adminTok,
		HealthHandler:     handlers.NewHealthHandler(nil),
		PaletteHandler:    handlers.NewPaletteHandler(fakePalette{}),
		PreferenceHandler: handlers.NewPreferenceHandler(fakePreferences{}),
		AdminHandler:      handlers.NewAdminHandler(fakeAdmin{}),
	})
}

func do(router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouter_Health(t *testing.T) {
	w := do(newTestRouter(""), http.MethodGet, "/health", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"status":"ok"}}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRouter_AccessLogIgnoresClientShopHeader(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		token    string
		wantCode int
		wantShop string
	}{
		{"unauthenticated health", "/health", "", http.StatusOK, ""},
		{"rejected key", "/favorites", "chs_bogus", http.StatusUnauthorized, ""},
		{"valid key", "/favorites", validToken, http.StatusOK, principal.ShopID},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			router := newLoggedTestRouter("", zap.New(core))

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set("X-Shop-ID", "victim-shop")
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.wantCode, w.Code)

			entries := logs.FilterMessage("http request").All()
			require.Len(t, entries, 1)
			fields := entries[0].ContextMap()
			if tt.wantShop == "" {
				assert.NotContains(t, fields, "shop_id")
			} else {
				assert.Equal(t, tt.wantShop, fields["shop_id"])
			}
		})
	}
}

func TestRouter_AuthenticatedRoutes(t *testing.T) {
	router := newTestRouter("")

	tests := []struct {
		method string
		path   string
		body   string
		want   int
	}{
		{http.MethodPost, "/palette/search", `{"query":"cal"}`, http.StatusOK},
		{http.MethodPost, "/palette/selections", `{"href":"/calendar","name":"Calendar"}`, http.StatusNoContent},
		{http.MethodGet, "/navigation", "", http.StatusOK},
		{http.MethodGet, "/actions", "", http.StatusOK},
		{http.MethodGet, "/favorites", "", http.StatusOK},
		{http.MethodPut, "/favorites", `{"href":"/clients","name":"Clients"}`, http.StatusOK},
		{http.MethodDelete, "/favorites?href=/clients", "", http.StatusNoContent},
		{http.MethodGet, "/recents?limit=5", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, do(router, tt.method, tt.path, validToken, tt.body).Code)
			assert.Equal(t, http.StatusUnauthorized, do(router, tt.method, tt.path, "", tt.body).Code)
			assert.Equal(t, http.StatusUnauthorized, do(router, tt.method, tt.path, "chs_bogus", tt.body).Code)
		})
	}
}

func TestRouter_SearchFiltersByRole(t *testing.T) {
	w := do(newTestRouter(""), http.MethodPost, "/palette/search", validToken, `{"query":"billing"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "/settings/billing")
}

func TestRouter_AdminNotMountedWithoutToken(t *testing.T) {
	w := do(newTestRouter(""), http.MethodPost, "/admin/shops", "", `{"name":"Fade Street"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouter_AdminRoutes(t *testing.T) {
	router := newTestRouter(adminToken)

	w := do(router, http.MethodPost, "/admin/shops", adminToken, `{"name":"Fade Street"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(router, http.MethodPost, "/admin/shops", validToken, `{"name":"Fade Street"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code, "api keys do not grant admin access")

	w = do(router, http.MethodGet, "/admin/shops", adminToken, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(router, http.MethodPost, "/admin/apikeys", adminToken, `{"shop_id":"nope","user_ref":"sam","role":"owner","name":"x"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(router, http.MethodDelete, "/admin/apikeys/key-1", adminToken, "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRouter_BodyLimit(t *testing.T) {
	big := `{"query":"` + string(bytes.Repeat([]byte("a"), 128*1024)) + `"}`
	w := do(newTestRouter(""), http.MethodPost, "/palette/search", validToken, big)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
