package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/storelink/backend/internal/application/feed"
	"github.com/storelink/backend/internal/domain/catalog"
	"github.com/storelink/backend/internal/infrastructure/cache"
	"github.com/storelink/backend/internal/infrastructure/config"
	"github.com/storelink/backend/internal/infrastructure/logger"
	"github.com/storelink/backend/internal/infrastructure/scheduler"
	"github.com/storelink/backend/internal/infrastructure/shopify"
	"github.com/storelink/backend/internal/infrastructure/storage"
	"github.com/storelink/backend/internal/interfaces/http/handler"
	"github.com/storelink/backend/internal/interfaces/http/middleware"
	"github.com/storelink/backend/internal/interfaces/http/router"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() { _ = logger.Sync(log) }()

	log.Info("Starting catalog sync service",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
	)

	// Shopify adapter; missing credentials are not fatal, the service
	// reports shopify_connected=false until configured
	adapter := shopify.NewAdapter(&shopify.Config{
		ShopDomain:     cfg.Shopify.ShopDomain,
		AccessToken:    cfg.Shopify.AccessToken,
		APIVersion:     cfg.Shopify.APIVersion,
		WebhookSecret:  cfg.Shopify.WebhookSecret,
		PageSize:       cfg.Shopify.PageSize,
		TimeoutSeconds: cfg.Shopify.TimeoutSeconds,
	}, log)
	if !adapter.Configured() {
		log.Warn("Shopify credentials not configured, sync will be unavailable")
	}

	// Artifact sink
	var store feed.ArtifactStore
	switch cfg.Storage.Backend {
	case "s3":
		s3Store, err := storage.NewS3ArtifactStore(&storage.S3Config{
			Endpoint:     cfg.Storage.S3Endpoint,
			Region:       cfg.Storage.S3Region,
			Bucket:       cfg.Storage.S3Bucket,
			AccessKey:    cfg.Storage.S3AccessKey,
			SecretKey:    cfg.Storage.S3SecretKey,
			KeyPrefix:    cfg.Storage.S3KeyPrefix,
			UseSSL:       cfg.Storage.S3UseSSL,
			UsePathStyle: cfg.Storage.S3PathStyle,
		}, storage.WithLogger(log))
		if err != nil {
			log.Fatal("Failed to initialize S3 artifact store", zap.Error(err))
		}
		ensureCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := s3Store.EnsureBucket(ensureCtx); err != nil {
			log.Fatal("Failed to ensure S3 bucket", zap.Error(err))
		}
		cancel()
		store = s3Store
	default:
		localStore, err := storage.NewLocalArtifactStore(cfg.Storage.LocalDir, log)
		if err != nil {
			log.Fatal("Failed to initialize local artifact store", zap.Error(err))
		}
		store = localStore
	}

	// Sync service with optional redis snapshot warm cache
	normalizer := catalog.NewNormalizer(cfg.Sync.StorefrontBaseURL, cfg.Sync.Currency)
	opts := []feed.SyncServiceOption{}
	if cfg.Redis.Enabled {
		snapshotCache, err := cache.NewRedisSnapshotCache(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn("Redis snapshot cache unavailable, continuing without it", zap.Error(err))
		} else {
			defer func() { _ = snapshotCache.Close() }()
			opts = append(opts, feed.WithSnapshotCache(snapshotCache))
		}
	}
	syncService := feed.NewSyncService(adapter, store, normalizer, log, opts...)

	warmCtx, cancelWarm := context.WithTimeout(context.Background(), 10*time.Second)
	syncService.WarmStart(warmCtx)
	cancelWarm()

	// Debouncer for webhook-driven resyncs
	debouncer, err := scheduler.NewResyncDebouncer(scheduler.ResyncDebouncerConfig{
		Enabled:     cfg.Sync.WebhookEnabled,
		Window:      cfg.Sync.DebounceWindow,
		SyncTimeout: cfg.Sync.SyncTimeout,
	}, syncService, log)
	if err != nil {
		log.Fatal("Failed to initialize resync debouncer", zap.Error(err))
	}
	if err := debouncer.Start(context.Background()); err != nil {
		log.Fatal("Failed to start resync debouncer", zap.Error(err))
	}

	// HTTP engine and middleware
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("Invalid trusted proxies", zap.Error(err))
		}
	}
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log, "/healthz"))
	engine.Use(middleware.SecurityHeaders())
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	catalogHandler := handler.NewCatalogHandler(syncService, debouncer, adapter)
	router.NewRouter(engine).
		Register(catalogHandler).
		RegisterWebhooks(catalogHandler).
		Setup()

	// HTTP server
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown: stop accepting webhook work first, then drain HTTP
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := debouncer.Stop(ctx); err != nil {
		log.Warn("Resync debouncer did not stop cleanly", zap.Error(err))
	}
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}
