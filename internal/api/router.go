// Package api provides the HTTP API for the store locator service.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/storelocator/storelocator/internal/api/handler"
	"github.com/storelocator/storelocator/internal/api/middleware"
	"github.com/storelocator/storelocator/internal/auth"
	"github.com/storelocator/storelocator/internal/catalog"
	"github.com/storelocator/storelocator/internal/directions"
	"github.com/storelocator/storelocator/internal/featureflags"
	"github.com/storelocator/storelocator/internal/provider/resilience"
	"github.com/storelocator/storelocator/internal/session"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version           string
	BuildTime         string
	Logger            zerolog.Logger
	ServiceName       string
	Metrics           *middleware.Metrics
	AuthService       *auth.Service
	CatalogService    *catalog.Service
	DirectionsService *directions.Service
	SessionService    *session.Service
	FlagService       *featureflags.Service
	ProviderRegistry  *resilience.Registry
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "storelocator-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.ProviderRegistry, cfg.CatalogService, cfg.SessionService)
	catalogHandler := handler.NewCatalogHandler(cfg.CatalogService)
	themeHandler := handler.NewThemeHandler()
	sessionHandler := handler.NewSessionHandler(cfg.SessionService)
	routeHandler := handler.NewRouteHandler(cfg.DirectionsService, cfg.FlagService)
	adminHandler := handler.NewAdminHandler(cfg.CatalogService, cfg.FlagService, cfg.Logger)

	// Admin auth middleware
	adminAuth := middleware.AdminAuth(cfg.AuthService)

	// Rate limit middleware for different endpoint categories
	adminRateLimit := middleware.RateLimitByIP(middleware.AdminRateLimit)         // 10 req/min
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			// Status endpoint requires authentication
			r.With(adminAuth).Get("/status", opsHandler.SystemStatus)
		})

		// Catalog endpoints (public) - standard rate limiting
		r.Route("/locations", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", catalogHandler.ListLocations)
			r.Get("/{index}", catalogHandler.GetLocation)
		})

		// Theme endpoints (public) - standard rate limiting
		r.Route("/themes", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", themeHandler.ListThemes)
			r.Get("/{id}", themeHandler.GetTheme)
		})

		// Session endpoints - per-session rate limiting where a session
		// is addressed, IP-based on creation
		r.Route("/sessions", func(r chi.Router) {
			r.With(standardRateLimit).Post("/", sessionHandler.CreateSession)
			r.Route("/{sessionId}", func(r chi.Router) {
				r.Use(middleware.RateLimitBySession(middleware.StandardRateLimit))
				r.Get("/", sessionHandler.GetSnapshot)
				r.Delete("/", sessionHandler.DeleteSession)
				r.Post("/marker-click", sessionHandler.MarkerClick)
				r.Post("/card-click", sessionHandler.CardClick)
				r.Delete("/selection", sessionHandler.ClearSelection)
				r.Get("/navigation", sessionHandler.NavigationHandOff)
			})
		})

		// Route preview - hits the directions provider, strict rate limiting
		r.With(expensiveRateLimit).Post("/routes:preview", routeHandler.PreviewRoute)

		// Admin endpoints (authenticated)
		r.Route("/admin", func(r chi.Router) {
			r.Use(adminAuth)
			r.Use(adminRateLimit)

			r.Post("/catalog:reload", adminHandler.ReloadCatalog)

			// Capability flags management
			r.Route("/flags", func(r chi.Router) {
				r.Get("/", adminHandler.ListFlags)
				r.Put("/", adminHandler.UpsertFlags)
				r.Post("/invalidate", adminHandler.InvalidateFlagCache)
			})
		})
	})

	return r
}
