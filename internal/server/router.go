package server

import (
	"net/http"

	"github.com/cloo-solutions/chairside/internal/api/handlers"
	"github.com/cloo-solutions/chairside/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type RouterConfig struct {
	Logger            *zap.Logger
	AuthValidator     middleware.AuthValidator
	AdminToken        string
	HealthHandler     *handlers.HealthHandler
	PaletteHandler    *handlers.PaletteHandler
	PreferenceHandler *handlers.PreferenceHandler
	AdminHandler      *handlers.AdminHandler
}

// NewRouter wires the HTTP API. Admin routes are only mounted when both an
// admin token and handler are configured.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	const maxBodyBytes int64 = 64 * 1024

	r.Use(middleware.RequestID)
	r.Use(middleware.SentryMiddleware)
	r.Use(middleware.AccessLog(cfg.Logger))
	r.Use(middleware.MaxBodyBytes(maxBodyBytes))

	r.Get("/health", cfg.HealthHandler.Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.APIKeyAuth(cfg.AuthValidator))

		r.Route("/palette", func(r chi.Router) {
			r.Post("/search", cfg.PaletteHandler.Search)
			r.Post("/selections", cfg.PaletteHandler.RecordSelection)
		})
		r.Get("/navigation", cfg.PaletteHandler.Navigation)
		r.Get("/actions", cfg.PaletteHandler.QuickActions)

		r.Route("/favorites", func(r chi.Router) {
			r.Get("/", cfg.PreferenceHandler.ListFavorites)
			r.Put("/", cfg.PreferenceHandler.AddFavorite)
			r.Delete("/", cfg.PreferenceHandler.RemoveFavorite)
		})
		r.Get("/recents", cfg.PreferenceHandler.ListRecents)
	})

	if cfg.AdminToken != "" && cfg.AdminHandler != nil {
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminToken(cfg.AdminToken))

			r.Post("/shops", cfg.AdminHandler.CreateShop)
			r.Get("/shops", cfg.AdminHandler.ListShops)
			r.Post("/apikeys", cfg.AdminHandler.CreateAPIKey)
			r.Get("/apikeys", cfg.AdminHandler.ListAPIKeys)
			r.Delete("/apikeys/{id}", cfg.AdminHandler.RevokeAPIKey)
		})
	}

	return r
}
