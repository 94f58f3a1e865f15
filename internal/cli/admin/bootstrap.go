package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloo-solutions/chairside/internal/config"
	"github.com/cloo-solutions/chairside/internal/domain"
	"github.com/cloo-solutions/chairside/internal/service"
	"go.uber.org/zap"
)

type bootstrapper interface {
	GetShopByName(ctx context.Context, name string) (*domain.Shop, error)
	CreateShop(ctx context.Context, name string) (*domain.Shop, error)
	GetAPIKeyByToken(ctx context.Context, token string) (*domain.APIKey, error)
	CreateAPIKeyWithToken(ctx context.Context, input service.CreateAPIKeyInput, token string) (*domain.APIKey, error)
}

// bootstrapInitialShop makes sure the configured shop exists and, when an
// init key is set, that it authenticates as that shop's owner. It is safe to
// run on every start.
func bootstrapInitialShop(ctx context.Context, cfg *config.Config, auth bootstrapper, logger *zap.Logger) error {
	shop, err := auth.GetShopByName(ctx, cfg.InitShopName)
	if err != nil && !errors.Is(err, domain.ErrShopNotFound) {
		return fmt.Errorf("failed to check existing shop: %w", err)
	}

	if shop == nil {
		shop, err = auth.CreateShop(ctx, cfg.InitShopName)
		if err != nil {
			return fmt.Errorf("failed to create shop: %w", err)
		}
		logger.Info("bootstrap: created shop", zap.String("name", shop.Name), zap.String("shop_id", shop.ID))
	} else {
		logger.Info("bootstrap: shop already exists", zap.String("name", shop.Name), zap.String("shop_id", shop.ID))
	}

	if cfg.InitAPIKey == "" {
		return nil
	}

	if !service.IsValidAPIToken(cfg.InitAPIKey) {
		return fmt.Errorf("invalid CHAIRSIDE_INIT_API_KEY format (expected 'chs_<64 hex chars>')")
	}

	existing, err := auth.GetAPIKeyByToken(ctx, cfg.InitAPIKey)
	if err == nil && existing != nil {
		if existing.ShopID != shop.ID {
			return fmt.Errorf("CHAIRSIDE_INIT_API_KEY already belongs to another shop")
		}
		logger.Info("bootstrap: API key already exists", zap.String("key_id", existing.ID))
		return nil
	}
	if err != nil && !errors.Is(err, domain.ErrAPIKeyNotFound) {
		return fmt.Errorf("failed to check existing API key: %w", err)
	}

	key, err := auth.CreateAPIKeyWithToken(ctx, service.CreateAPIKeyInput{
		ShopID:  shop.ID,
		UserRef: cfg.InitUserRef,
		Role:    string(domain.RoleOwner),
		Name:    "bootstrap",
	}, cfg.InitAPIKey)
	if err != nil {
		return fmt.Errorf("failed to create API key: %w", err)
	}
	logger.Info("bootstrap: created owner API key", zap.String("key_id", key.ID), zap.String("user_ref", key.UserRef))

	return nil
}
