// Package api provides the local HTTP shell for SkyTracker.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/skytracker/skytracker/internal/api/handler"
	"github.com/skytracker/skytracker/internal/api/middleware"
	"github.com/skytracker/skytracker/internal/app"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Logger  zerolog.Logger
	Metrics *middleware.Metrics
	Shell   *app.Shell
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware - order matters
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing())
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware())
	}
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.SecurityHeaders)

	opsHandler := handler.NewOpsHandler(cfg.Shell)
	credentialHandler := handler.NewCredentialHandler(cfg.Shell)
	weatherHandler := handler.NewWeatherHandler(cfg.Shell)
	airHandler := handler.NewAirHandler(cfg.Shell)
	lifeHandler := handler.NewLifeHandler(cfg.Shell)
	oceanHandler := handler.NewOceanHandler(cfg.Shell)
	geoHandler := handler.NewGeoHandler(cfg.Shell)
	helperHandler := handler.NewHelperHandler(cfg.Shell)

	credentialRateLimit := middleware.RateLimitByIP(middleware.CredentialRateLimit) // 10 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)     // 100 req/min

	r.Route("/v1", func(r chi.Router) {
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		// Every submission is validated against the vendor.
		r.Route("/credential", func(r chi.Router) {
			r.Get("/", credentialHandler.State)
			r.With(credentialRateLimit, middleware.RequireJSON).Post("/", credentialHandler.Submit)
			r.Delete("/", credentialHandler.Forget)
		})

		// Feature screens - reachable once an API key is accepted
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireUnlocked(cfg.Shell))
			r.Use(standardRateLimit)

			r.Route("/weather", func(r chi.Router) {
				r.Get("/current", weatherHandler.Current)
				r.Get("/daily", weatherHandler.Daily)
				r.Get("/hourly", weatherHandler.Hourly)
				r.Get("/history", weatherHandler.History)
				r.Get("/alerts", weatherHandler.Alerts)
				r.Post("/alerts/next", weatherHandler.NextAlert)
				r.Post("/alerts/prev", weatherHandler.PrevAlert)
			})

			r.Route("/air", func(r chi.Router) {
				r.Get("/current", airHandler.Current)
				r.Get("/ranking", airHandler.Ranking)
				r.Get("/daily", airHandler.Daily)
				r.Post("/daily/next", airHandler.NextDay)
				r.Post("/daily/prev", airHandler.PrevDay)
				r.Get("/hourly", airHandler.Hourly)
				r.Get("/history", airHandler.History)
			})

			r.Route("/life", func(r chi.Router) {
				r.Get("/index", lifeHandler.Index)
				r.Post("/index/next", lifeHandler.NextIndex)
				r.Post("/index/prev", lifeHandler.PrevIndex)
				r.Get("/lunar", lifeHandler.Lunar)
				r.Get("/restriction", lifeHandler.Restriction)
				r.Get("/restriction/cities", lifeHandler.RestrictionCities)
			})

			r.Route("/ocean", func(r chi.Router) {
				r.Get("/tide", oceanHandler.Tide)
				r.Post("/tide/next", oceanHandler.NextDay)
				r.Post("/tide/prev", oceanHandler.PrevDay)
			})

			r.Route("/geo", func(r chi.Router) {
				r.Get("/sun", geoHandler.Sun)
				r.Get("/moon", geoHandler.Moon)
			})

			r.Route("/helper", func(r chi.Router) {
				r.Get("/search", helperHandler.Search)
				r.Post("/search/next", helperHandler.Next)
				r.Post("/search/prev", helperHandler.Prev)
			})
		})
	})

	return r
}
