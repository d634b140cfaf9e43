// cmd/api-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"tripscout/internal/common/auth"
	"tripscout/internal/common/config"
	"tripscout/internal/common/database"
	"tripscout/internal/common/logger"
	"tripscout/internal/handlers"
	"tripscout/internal/places"
	"tripscout/internal/search"
	"tripscout/internal/store"
)

// retryWithBackoff attempts to execute a function with exponential backoff.
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("starting api-server",
		zap.String("address", cfg.Server.Address),
		zap.String("cache_backend", cfg.Search.CacheBackend),
	)

	// --- Elasticsearch with retry ---
	var esClient *database.ElasticsearchClient
	err = retryWithBackoff(func() error {
		var err error
		esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			return err
		}
		return esClient.Ping()
	}, 5, 2*time.Second, zapLog, "Elasticsearch initialization")
	if err != nil {
		zapLog.Fatal("elasticsearch unavailable", zap.Error(err))
	}

	// --- Cache backend ---
	cacheTTL := time.Duration(cfg.Search.CacheTTL) * time.Second
	var queryCache search.Cache
	switch cfg.Search.CacheBackend {
	case "redis":
		redisClient, err := database.NewRedis(cfg.Database.Redis)
		if err != nil {
			zapLog.Fatal("redis init failed", zap.Error(err))
		}
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx); err != nil {
			cancel()
			zapLog.Fatal("redis unavailable", zap.Error(err))
		}
		cancel()
		queryCache = search.NewRedisCache(redisClient.Client, cacheTTL)
	default:
		queryCache = search.NewMemoryCache(cacheTTL, cfg.Search.CacheMaxEntries)
	}

	// --- Wiring ---
	provider := places.NewClient(cfg.Places, log)
	attractionStore := store.NewAttractionStore(esClient.Client, cfg.Database.Elasticsearch.Index, log)
	orchestrator := search.NewOrchestrator(provider, attractionStore, queryCache, log, search.Options{
		DefaultLimit:    cfg.Search.DefaultLimit,
		LocalStoreLimit: cfg.Search.LocalStoreLimit,
	})

	validator := auth.NewValidator(cfg.Auth)
	handler := handlers.NewAttractionsHandler(orchestrator, log)
	router := handlers.NewRouter(handler, validator, log)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	zapLog.Info("shutting down", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("shutdown error", zap.Error(err))
	}
	zapLog.Info("server stopped")
}
