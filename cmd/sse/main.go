package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/zatekoja/surgicalbooking/internal/adapters/events"
	"github.com/zatekoja/surgicalbooking/internal/adapters/state"
	"github.com/zatekoja/surgicalbooking/internal/api/handlers"
	"github.com/zatekoja/surgicalbooking/internal/api/middleware"
	"github.com/zatekoja/surgicalbooking/internal/domain/entities"
	"github.com/zatekoja/surgicalbooking/internal/domain/repositories"
	"github.com/zatekoja/surgicalbooking/internal/infrastructure/clients/redis"
	"github.com/zatekoja/surgicalbooking/internal/infrastructure/observability"
	"github.com/zatekoja/surgicalbooking/pkg/config"
)

// journeyReader exposes read-only journey lookups to the stream handler
type journeyReader struct {
	repo repositories.JourneyRepository
}

func (r journeyReader) Get(ctx context.Context, id string) (*entities.Journey, error) {
	return r.repo.GetByID(ctx, id)
}

// The stream server fans journey events out to browsers from a separate
// process. It shares journey state and the event bus with cmd/api through Redis.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName+"-sse", cfg.Env)
	logger := observability.GetLogger()

	logger.Info().Msg("Starting journey stream server...")

	// Redis is required: without it there is nothing to fan out
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize Redis client")
	}
	defer redisClient.Close()

	eventBus := events.NewRedisEventBus(redisClient)
	journeys := state.NewRedisJourneyAdapter(redisClient, time.Duration(cfg.Journey.TTLMinutes)*time.Minute)

	sseHandler := handlers.NewSSEHandler(eventBus, journeyReader{repo: journeys})

	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("GET /api/journeys/{id}/events", sseHandler.StreamJourneyUpdates)

	mux.HandleFunc("GET /api/stream/stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"connected_clients": sseHandler.GetClientCount()})
	})

	var handler http.Handler = mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RecoverMiddleware(handler)
	handler = middleware.CORSMiddleware(cfg.Server.AllowedOrigins)(handler)

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:        serverAddr,
		Handler:     handler,
		ReadTimeout: 30 * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	go func() {
		logger.Info().Str("addr", serverAddr).Msg("Stream server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Stream server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Stream server shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Error during server shutdown")
	}

	if err := eventBus.Close(); err != nil {
		logger.Error().Err(err).Msg("Error closing event bus")
	}

	logger.Info().Msg("Stream server stopped")
}
