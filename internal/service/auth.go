package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/cloo-solutions/chairside/internal/domain"
	"github.com/cloo-solutions/chairside/internal/pagination"
)

const apiKeyPrefix = "chs_"

type ShopRepository interface {
	Create(ctx context.Context, shop *domain.Shop) error
	GetByID(ctx context.Context, id string) (*domain.Shop, error)
	GetByName(ctx context.Context, name string) (*domain.Shop, error)
	ListWithCursor(ctx context.Context, cursor *pagination.Cursor, limit int) (*pagination.PageResult[*domain.Shop], error)
}

type APIKeyRepository interface {
	Create(ctx context.Context, key *domain.APIKey) error
	GetByID(ctx context.Context, id string) (*domain.APIKey, error)
	GetByHash(ctx context.Context, hash string) (*domain.APIKey, error)
	ListByShopWithCursor(ctx context.Context, shopID string, cursor *pagination.Cursor, limit int) (*pagination.PageResult[*domain.APIKey], error)
	Revoke(ctx context.Context, id string) error
}

// CreateAPIKeyInput describes a key for one staff member of a shop.
type CreateAPIKeyInput struct {
	ShopID  string
	UserRef string
	Role    string
	Name    string
}

// IssuedAPIKey is returned once at creation; Token is never stored.
type IssuedAPIKey struct {
	Key   *domain.APIKey
	Token string
}

type AuthService struct {
	shopRepo ShopRepository
	keyRepo  APIKeyRepository
	uuidGen  UUIDGenerator
}

func NewAuthService(shopRepo ShopRepository, keyRepo APIKeyRepository, uuidGen UUIDGenerator) *AuthService {
	return &AuthService{
		shopRepo: shopRepo,
		keyRepo:  keyRepo,
		uuidGen:  uuidGen,
	}
}

func (s *AuthService) CreateShop(ctx context.Context, name string) (*domain.Shop, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewDomainError(domain.ErrCodeValidation, "shop name is required")
	}

	shop := domain.NewShop(s.uuidGen.NewString(), name, time.Now().UTC())
	if err := domain.ValidateShop(shop); err != nil {
		return nil, err
	}

	if err := s.shopRepo.Create(ctx, shop); err != nil {
		return nil, err
	}

	return shop, nil
}

func (s *AuthService) GetShopByName(ctx context.Context, name string) (*domain.Shop, error) {
	return s.shopRepo.GetByName(ctx, strings.TrimSpace(name))
}

func (s *AuthService) ListShops(ctx context.Context, cursor string, limit int) (*pagination.PageResult[*domain.Shop], error) {
	c, err := pagination.DecodeCursor(cursor)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid cursor", err)
	}
	return s.shopRepo.ListWithCursor(ctx, c, pagination.ClampLimit(limit))
}

func (s *AuthService) CreateAPIKey(ctx context.Context, input CreateAPIKeyInput) (*IssuedAPIKey, error) {
	token, err := generateAPIToken()
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeInternalError, "failed to generate API key", err)
	}

	key, err := s.createKey(ctx, input, token)
	if err != nil {
		return nil, err
	}

	return &IssuedAPIKey{Key: key, Token: token}, nil
}

// CreateAPIKeyWithToken registers a caller-supplied token, used to bootstrap
// a known owner key on first start.
func (s *AuthService) CreateAPIKeyWithToken(ctx context.Context, input CreateAPIKeyInput, token string) (*domain.APIKey, error) {
	if !IsValidAPIToken(token) {
		return nil, domain.NewDomainError(domain.ErrCodeValidation, "invalid API key format (expected chs_<64 hex chars>)")
	}
	return s.createKey(ctx, input, token)
}

func (s *AuthService) createKey(ctx context.Context, input CreateAPIKeyInput, token string) (*domain.APIKey, error) {
	if input.ShopID == "" {
		return nil, domain.NewDomainError(domain.ErrCodeValidation, "shop ID is required")
	}
	if strings.TrimSpace(input.UserRef) == "" {
		return nil, domain.NewDomainError(domain.ErrCodeValidation, "user reference is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.NewDomainError(domain.ErrCodeValidation, "API key name is required")
	}

	role, err := domain.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}

	if _, err := s.shopRepo.GetByID(ctx, input.ShopID); err != nil {
		return nil, err
	}

	key := domain.NewAPIKey(
		s.uuidGen.NewString(),
		input.ShopID,
		strings.TrimSpace(input.UserRef),
		role,
		strings.TrimSpace(input.Name),
		hashToken(token),
		time.Now().UTC(),
		nil,
	)

	if err := domain.ValidateAPIKey(key); err != nil {
		return nil, err
	}

	if err := s.keyRepo.Create(ctx, key); err != nil {
		return nil, err
	}

	return key, nil
}

// ValidateAPIKey resolves a bearer token to the principal it authenticates.
func (s *AuthService) ValidateAPIKey(ctx context.Context, token string) (*domain.Principal, error) {
	if !IsValidAPIToken(token) {
		return nil, domain.ErrInvalidAPIKey
	}

	key, err := s.keyRepo.GetByHash(ctx, hashToken(token))
	if err != nil {
		if errors.Is(err, domain.ErrAPIKeyNotFound) {
			return nil, domain.ErrInvalidAPIKey
		}
		return nil, err
	}

	if key.IsRevoked() {
		return nil, domain.ErrAPIKeyRevoked
	}

	return key.Principal(), nil
}

func (s *AuthService) RevokeAPIKey(ctx context.Context, keyID string) error {
	if keyID == "" {
		return domain.NewDomainError(domain.ErrCodeValidation, "API key ID is required")
	}

	return s.keyRepo.Revoke(ctx, keyID)
}

func (s *AuthService) ListAPIKeys(ctx context.Context, shopID, cursor string, limit int) (*pagination.PageResult[*domain.APIKey], error) {
	if shopID == "" {
		return nil, domain.NewDomainError(domain.ErrCodeValidation, "shop ID is required")
	}

	c, err := pagination.DecodeCursor(cursor)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeValidation, "invalid cursor", err)
	}

	return s.keyRepo.ListByShopWithCursor(ctx, shopID, c, pagination.ClampLimit(limit))
}

func (s *AuthService) GetAPIKeyByToken(ctx context.Context, token string) (*domain.APIKey, error) {
	if !IsValidAPIToken(token) {
		return nil, domain.ErrInvalidAPIKey
	}
	return s.keyRepo.GetByHash(ctx, hashToken(token))
}

func generateAPIToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return apiKeyPrefix + hex.EncodeToString(bytes), nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

func IsValidAPIToken(token string) bool {
	if !strings.HasPrefix(token, apiKeyPrefix) {
		return false
	}
	hexPart := token[len(apiKeyPrefix):]
	if len(hexPart) != 64 {
		return false
	}
	for _, c := range hexPart {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
