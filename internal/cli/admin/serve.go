package admin

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloo-solutions/chairside/internal/api/handlers"
	"github.com/cloo-solutions/chairside/internal/config"
	"github.com/cloo-solutions/chairside/internal/jobs"
	"github.com/cloo-solutions/chairside/internal/logging"
	"github.com/cloo-solutions/chairside/internal/palette"
	"github.com/cloo-solutions/chairside/internal/repository"
	"github.com/cloo-solutions/chairside/internal/server"
	"github.com/cloo-solutions/chairside/internal/service"
	"github.com/cloo-solutions/chairside/internal/telemetry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the chairside palette API server and the background prune job",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "", "Port to listen on (overrides CHAIRSIDE_PORT)")
	cmd.Flags().Bool("no-migrate", false, "Skip automatic database migrations on startup")
	cmd.Flags().String("migrations", "migrations", "Directory containing SQL migrations")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer logger.Sync()

	if cfg.HasSentry() {
		// 10% of traces in production, everything elsewhere
		sampleRate := 0.1
		if cfg.Environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              cfg.SentryDSN,
			Environment:      cfg.Environment,
			TracesSampleRate: sampleRate,
		}, logger)
		if err != nil {
			logger.Warn("telemetry init failed, continuing without tracing", zap.Error(err))
		} else {
			defer shutdownTelemetry()
		}
	}

	if port, _ := cmd.Flags().GetString("port"); port != "" {
		cfg.Port = port
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := openPool(ctx, cfg)
	if err != nil {
		return err
	}
	defer pool.Close()
	logger.Info("connected to database")

	if noMigrate, _ := cmd.Flags().GetBool("no-migrate"); !noMigrate {
		dir, _ := cmd.Flags().GetString("migrations")
		if err := runMigrations(cfg.DatabaseURL, dir, logger); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	shopRepo := repository.NewShopRepository(pool)
	apiKeyRepo := repository.NewAPIKeyRepository(pool)
	favoriteRepo := repository.NewFavoriteRepository(pool)
	recentRepo := repository.NewRecentRepository(pool)
	searchLogRepo := repository.NewSearchLogRepository(pool)
	txRunner := repository.NewTxRunner(pool)

	uuidGen := &service.DefaultUUIDGenerator{}
	authSvc := service.NewAuthService(shopRepo, apiKeyRepo, uuidGen)
	preferenceSvc := service.NewPreferenceService(txRunner, favoriteRepo, recentRepo)
	paletteSvc := service.NewPaletteService(preferenceSvc, searchLogRepo, uuidGen, service.PaletteOptions{
		Limit: cfg.PaletteLimit,
		QuickPicks: palette.QuickPickLimits{
			Favorites: cfg.QuickPickFavorites,
			Recents:   cfg.QuickPickRecents,
			Total:     cfg.QuickPickTotal,
		},
	}, logger.Named("palette"))

	if cfg.InitShopName != "" {
		if err := bootstrapInitialShop(ctx, cfg, authSvc, logger); err != nil {
			return fmt.Errorf("failed to bootstrap initial shop: %w", err)
		}
	}

	router := server.NewRouter(server.RouterConfig{
		Logger:            logger.Named("http"),
		AuthValidator:     authSvc,
		AdminToken:        cfg.AdminToken,
		HealthHandler:     handlers.NewHealthHandler(pool),
		PaletteHandler:    handlers.NewPaletteHandler(paletteSvc),
		PreferenceHandler: handlers.NewPreferenceHandler(preferenceSvc),
		AdminHandler:      handlers.NewAdminHandler(authSvc),
	})
	if !cfg.HasAdmin() {
		logger.Info("admin routes disabled (CHAIRSIDE_ADMIN_TOKEN not set)")
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	if cfg.HasPruning() {
		processor := jobs.NewPruneProcessor(preferenceSvc, searchLogRepo, jobs.PruneOptions{
			RecentsRetention:   cfg.RecentsRetention,
			RecentsMaxAge:      cfg.RecentsMaxAge,
			SearchLogRetention: cfg.SearchLogRetention,
		}, logger.Named("prune"))
		worker := jobs.NewWorker(processor, cfg.PruneInterval, logger.Named("worker"))
		g.Go(func() error {
			worker.Start(gctx)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("server exited")
	return nil
}

// exitOnSignal is used by one-shot commands that should abort cleanly on ^C.
func exitOnSignal() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
