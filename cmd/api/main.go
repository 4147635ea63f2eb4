// Package main provides the entrypoint for the store locator API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/storelocator/storelocator/assets"
	"github.com/storelocator/storelocator/internal/api"
	"github.com/storelocator/storelocator/internal/api/middleware"
	"github.com/storelocator/storelocator/internal/auth"
	"github.com/storelocator/storelocator/internal/catalog"
	"github.com/storelocator/storelocator/internal/database"
	"github.com/storelocator/storelocator/internal/directions"
	"github.com/storelocator/storelocator/internal/directions/google"
	"github.com/storelocator/storelocator/internal/directions/mapbox"
	"github.com/storelocator/storelocator/internal/featureflags"
	"github.com/storelocator/storelocator/internal/provider/resilience"
	"github.com/storelocator/storelocator/internal/session"
	"github.com/storelocator/storelocator/internal/telemetry"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	_ = godotenv.Load()

	const serviceName = "storelocator-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting store locator API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Connect to database when enabled; catalog and flags fall back to
	// in-memory stores otherwise.
	var catalogRepo catalog.Repository
	var flagRepo featureflags.Repository

	if os.Getenv("DB_ENABLED") == "true" {
		dbConfig := database.ConfigFromEnv()
		pool, connErr := database.Connect(ctx, dbConfig)
		if connErr != nil {
			log.Fatal().Err(connErr).Msg("failed to connect to database")
		}
		defer pool.Close()
		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")

		catalogRepo = catalog.NewPostgresRepository(pool)
		flagRepo = featureflags.NewPostgresRepository(pool)
	} else {
		catalogRepo = catalog.NewInMemoryRepository(nil)
		flagRepo = featureflags.NewInMemoryRepository()
		log.Info().Msg("database disabled, using in-memory stores")
	}

	// Initialize catalog service and seed it from the bundled feature
	// collection when empty.
	catalogService := catalog.NewService(catalog.ServiceConfig{
		Repository: catalogRepo,
		Logger:     log,
	})
	count, err := catalogService.Count(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to read catalog")
	}
	if count == 0 {
		count, err = catalogService.Reload(ctx, assets.LocationsGeoJSON)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to seed catalog")
		}
	}
	log.Info().Int("locations", count).Msg("catalog service initialized")

	// Initialize capability flags service
	flagService := featureflags.NewService(featureflags.ServiceConfig{
		Repository: flagRepo,
		Logger:     log,
		CacheTTL:   1 * time.Minute,
	})
	log.Info().Msg("capability flags service initialized")

	// Initialize admin auth service
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		jwtSigningKey = "local-dev-signing-key-change-in-production"
		log.Warn().Msg("using default JWT signing key - not secure for production")
	}
	authService := auth.NewService(auth.ServiceConfig{
		SigningKey: jwtSigningKey,
		Issuer:     "https://api.storelocator.dev",
		Audience:   "storelocator-api",
	})
	log.Info().Msg("auth service initialized")

	// Initialize directions provider and service
	registry := resilience.NewRegistry()
	provider, err := buildDirectionsProvider(log, registry)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize directions provider")
	}
	directionsService := directions.NewService(directions.ServiceConfig{
		Provider: provider,
		Logger:   log,
	})
	log.Info().
		Str("provider", provider.Name()).
		Msg("directions service initialized")

	// Initialize session service
	sessionService := session.NewService(session.ServiceConfig{
		Catalog:    catalogService,
		Directions: directionsService,
		Flags:      flagService,
		Logger:     log,
	})
	log.Info().Msg("session service initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:           Version,
		BuildTime:         BuildTime,
		Logger:            log,
		ServiceName:       serviceName,
		Metrics:           metrics,
		AuthService:       authService,
		CatalogService:    catalogService,
		DirectionsService: directionsService,
		SessionService:    sessionService,
		FlagService:       flagService,
		ProviderRegistry:  registry,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}

// buildDirectionsProvider selects the directions provider from the
// environment. DIRECTIONS_PROVIDER chooses between mapbox (default) and
// google.
func buildDirectionsProvider(log zerolog.Logger, registry *resilience.Registry) (directions.Provider, error) {
	switch os.Getenv("DIRECTIONS_PROVIDER") {
	case google.ProviderName:
		return google.NewClient(google.ClientConfig{
			APIKey: os.Getenv("GOOGLE_MAPS_API_KEY"),
			Logger: log,
		})
	default:
		return mapbox.NewClient(mapbox.ClientConfig{
			AccessToken: os.Getenv("MAPBOX_ACCESS_TOKEN"),
			Registry:    registry,
			Logger:      log,
		}), nil
	}
}
