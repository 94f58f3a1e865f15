package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port  string `envconfig:"PORT" default:"8080"`
	Debug bool   `envconfig:"DEBUG" default:"false"`

	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	DBMaxConns  int32  `envconfig:"DB_MAX_CONNS" default:"10"`
	DBMinConns  int32  `envconfig:"DB_MIN_CONNS" default:"2"`

	PaletteLimit       int `envconfig:"PALETTE_LIMIT" default:"8"`
	QuickPickFavorites int `envconfig:"QUICK_PICK_FAVORITES" default:"5"`
	QuickPickRecents   int `envconfig:"QUICK_PICK_RECENTS" default:"5"`
	QuickPickTotal     int `envconfig:"QUICK_PICK_TOTAL" default:"8"`

	RecentsRetention   int           `envconfig:"RECENTS_RETENTION" default:"20"`
	RecentsMaxAge      time.Duration `envconfig:"RECENTS_MAX_AGE" default:"2160h"`
	SearchLogRetention time.Duration `envconfig:"SEARCH_LOG_RETENTION" default:"720h"`
	PruneInterval      time.Duration `envconfig:"PRUNE_INTERVAL" default:"1h"`

	// Admin routes are only mounted when a token is set
	AdminToken string `envconfig:"ADMIN_TOKEN"`

	// Bootstrap: create initial shop and owner API key on startup
	InitShopName string `envconfig:"INIT_SHOP_NAME"`
	InitAPIKey   string `envconfig:"INIT_API_KEY"`
	InitUserRef  string `envconfig:"INIT_USER_REF" default:"owner"`

	SentryDSN   string `envconfig:"SENTRY_DSN"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("CHAIRSIDE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.DBMinConns > cfg.DBMaxConns {
		return nil, fmt.Errorf("DB_MIN_CONNS (%d) exceeds DB_MAX_CONNS (%d)", cfg.DBMinConns, cfg.DBMaxConns)
	}

	return &cfg, nil
}

func (c *Config) HasAdmin() bool {
	return c.AdminToken != ""
}

func (c *Config) HasSentry() bool {
	return c.SentryDSN != ""
}

func (c *Config) HasPruning() bool {
	return c.PruneInterval > 0
}
