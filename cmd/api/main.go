package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zatekoja/surgicalbooking/internal/adapters/cache"
	"github.com/zatekoja/surgicalbooking/internal/adapters/database"
	"github.com/zatekoja/surgicalbooking/internal/adapters/events"
	"github.com/zatekoja/surgicalbooking/internal/adapters/providers/catalog"
	"github.com/zatekoja/surgicalbooking/internal/adapters/providers/payment"
	"github.com/zatekoja/surgicalbooking/internal/adapters/providers/registration"
	"github.com/zatekoja/surgicalbooking/internal/adapters/state"
	"github.com/zatekoja/surgicalbooking/internal/api/handlers"
	"github.com/zatekoja/surgicalbooking/internal/api/routes"
	"github.com/zatekoja/surgicalbooking/internal/application/pricing"
	"github.com/zatekoja/surgicalbooking/internal/application/services"
	"github.com/zatekoja/surgicalbooking/internal/domain/providers"
	"github.com/zatekoja/surgicalbooking/internal/domain/repositories"
	"github.com/zatekoja/surgicalbooking/internal/infrastructure/clients/collaborator"
	"github.com/zatekoja/surgicalbooking/internal/infrastructure/clients/postgres"
	"github.com/zatekoja/surgicalbooking/internal/infrastructure/clients/redis"
	"github.com/zatekoja/surgicalbooking/internal/infrastructure/observability"
	"github.com/zatekoja/surgicalbooking/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)
	logger := observability.GetLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					logger.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			logger.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Bookings are durable and require PostgreSQL
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	if err := database.InitSchema(ctx, pgClient); err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize bookings schema")
	}
	bookingRepo := database.NewBookingAdapter(pgClient)
	logger.Info().Msg("PostgreSQL client initialized")

	// Redis backs journey state, catalog caching and cross-instance events.
	// Without it everything runs in-process.
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewClient(&cfg.Redis)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Redis client; using in-memory journey store")
			redisClient = nil
		} else {
			defer redisClient.Close()
			logger.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("Redis client initialized")
		}
	}

	journeyTTL := time.Duration(cfg.Journey.TTLMinutes) * time.Minute

	var (
		journeyRepo   repositories.JourneyRepository
		cacheProvider providers.CacheProvider
		eventBus      providers.EventBus
	)
	if redisClient != nil {
		journeyRepo = state.NewRedisJourneyAdapter(redisClient, journeyTTL)
		cacheProvider = cache.NewRedisAdapter(redisClient)
		eventBus = events.NewRedisEventBus(redisClient)
	} else {
		journeyRepo = state.NewMemoryJourneyAdapter(journeyTTL)
		eventBus = events.NewMemoryEventBus()
	}

	// Collaborators
	collaboratorTimeout := time.Duration(cfg.Collaborators.TimeoutSeconds) * time.Second
	var (
		catalogProvider  = catalog.NewStaticAdapter()
		fallbackCatalog  providers.CatalogProvider
		identityProvider providers.IdentityProvider
	)
	if cfg.Collaborators.CatalogURL != "" || cfg.Collaborators.RegistrationURL != "" {
		client := collaborator.NewClient(cfg.Collaborators.CatalogURL, cfg.Collaborators.RegistrationURL, collaboratorTimeout)
		if cfg.Collaborators.CatalogURL != "" {
			catalogProvider = catalog.NewCatalogProvider(client)
			fallbackCatalog = catalog.NewStaticAdapter()
			logger.Info().Str("url", cfg.Collaborators.CatalogURL).Msg("Remote catalog configured with built-in fallback")
		}
		if cfg.Collaborators.RegistrationURL != "" {
			identityProvider = registration.NewHTTPAdapter(client)
			logger.Info().Str("url", cfg.Collaborators.RegistrationURL).Msg("Patient registration configured")
		}
	}
	if identityProvider == nil {
		logger.Warn().Bool("allow_placeholder", cfg.Identity.AllowPlaceholder).Msg("REGISTRATION_API_URL is not set; identities will be placeholders")
	}

	calculator := pricing.NewCalculator(cfg.Pricing)
	catalogService := services.NewCatalogService(catalogProvider, fallbackCatalog, cacheProvider, cfg.Journey.CatalogCacheSeconds)
	identityService := services.NewIdentityService(identityProvider, cfg.Identity.AllowPlaceholder)

	journeyService := services.NewJourneyService(journeyRepo, catalogService, identityService, calculator)
	journeyService.SetEventBus(eventBus)
	journeyService.SetScopeIdleTTL(journeyTTL)
	journeyService.SetMetrics(metrics)

	finalizerService := services.NewFinalizerService(journeyService, bookingRepo, payment.NewSimulatedAdapter())

	journeyHandler := handlers.NewJourneyHandler(journeyService, finalizerService)
	sseHandler := handlers.NewSSEHandler(eventBus, journeyService)

	router := routes.NewRouter(journeyHandler, sseHandler, cfg.Server.AllowedOrigins, metrics)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// No write timeout: the event stream is long-lived
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", serverAddr).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Error during server shutdown")
	}

	if err := eventBus.Close(); err != nil {
		logger.Error().Err(err).Msg("Error closing event bus")
	}

	logger.Info().Msg("Server stopped")
}
