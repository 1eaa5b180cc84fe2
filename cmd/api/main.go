// ABOUTME: Main entry point for the microfeed API server
// ABOUTME: Wires together storage, cache, services and the HTTP server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"microfeed-api/api"
	"microfeed-api/api/handlers"
	"microfeed-api/core/builder"
	"microfeed-api/core/content"
	"microfeed-api/core/importer"
	"microfeed-api/core/interfaces"
	"microfeed-api/core/liturgy"
	"microfeed-api/core/sanitize"
	"microfeed-api/infrastructure/cache/memory"
	"microfeed-api/infrastructure/cache/redis"
	stdhttp "microfeed-api/infrastructure/http/standard"
	logruslogger "microfeed-api/infrastructure/logger/logrus"
	"microfeed-api/infrastructure/storage/sqlite"
	"microfeed-api/pkg/config"
	"microfeed-api/pkg/metrics"
)

// meteredSupplementary counts provider failures before handing the error
// back to the builder, which swallows it.
type meteredSupplementary struct {
	provider  builder.SupplementaryProvider
	collector *metrics.Collector
}

func (m *meteredSupplementary) FetchDailyItem(ctx context.Context) (*builder.PublicItem, error) {
	item, err := m.provider.FetchDailyItem(ctx)
	if err != nil {
		m.collector.RecordSupplementaryFailure()
	}
	return item, err
}

func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logruslogger.NewLogger(cfg.Server.LogLevel)
	logger.Info("Starting microfeed API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"base_url":   cfg.Feed.BaseURL,
		"cache_type": cfg.Cache.Type,
	})

	// Cache backend, falling back to memory when Redis is unreachable
	var cache interfaces.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			cache = memory.NewMemoryCache(5*time.Minute, 10*time.Minute)
		} else {
			cache = redisCache
			logger.Info("Using Redis cache", map[string]interface{}{
				"address": cfg.Cache.Redis.Address,
			})
		}
	default:
		cache = memory.NewMemoryCache(5*time.Minute, 10*time.Minute)
		logger.Info("Using memory cache", nil)
	}

	httpClient := stdhttp.NewStandardHTTPClient(30 * time.Second)

	deps := interfaces.Dependencies{
		Cache:      cache,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	repo, err := sqlite.NewRepository(cfg.Storage.DSN)
	if err != nil {
		log.Fatalf("Failed to open content database: %v", err)
	}
	defer repo.Close()

	collector := metrics.NewCollector()

	// Services
	contentService := content.NewService(repo, sanitize.NewSanitizer(), logger)
	importService := importer.NewService(deps, repo)

	var supplementary builder.SupplementaryProvider
	if cfg.Feed.LiturgyURL != "" {
		supplementary = &meteredSupplementary{
			provider:  liturgy.NewService(deps, cfg.Feed.LiturgyURL),
			collector: collector,
		}
		logger.Info("Supplementary liturgy provider enabled", map[string]interface{}{
			"url": cfg.Feed.LiturgyURL,
		})
	}

	// Handlers and router
	feedHandler := handlers.NewFeedHandler(contentService, supplementary, cache, collector, cfg.Feed, logger)
	itemHandler := handlers.NewItemHandler(contentService, logger)
	channelHandler := handlers.NewChannelHandler(importService, logger)

	router, limiter := api.NewRouter(api.ServerConfig{
		Feed:      feedHandler,
		Items:     itemHandler,
		Channel:   channelHandler,
		Metrics:   collector,
		Logger:    logger,
		RateLimit: cfg.Server.RateLimit,
	})
	if limiter != nil {
		defer limiter.Stop()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped", nil)
}
