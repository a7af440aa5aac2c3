package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	cartapp "github.com/zaylo/backend/internal/application/cart"
	"github.com/zaylo/backend/internal/application/importer"
	"github.com/zaylo/backend/internal/domain/cart"
	"github.com/zaylo/backend/internal/infrastructure/cartstore"
	"github.com/zaylo/backend/internal/infrastructure/config"
	"github.com/zaylo/backend/internal/infrastructure/logger"
	"github.com/zaylo/backend/internal/infrastructure/persistence"
	"github.com/zaylo/backend/internal/infrastructure/shopify"
	"github.com/zaylo/backend/internal/infrastructure/supplier"
	"github.com/zaylo/backend/internal/interfaces/http/handler"
	"github.com/zaylo/backend/internal/interfaces/http/middleware"
	"github.com/zaylo/backend/internal/interfaces/http/router"
)

const shutdownTimeout = 30 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	zapLogger, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = zapLogger.Sync() }()

	zapLogger.Info("starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLogger := logger.NewGormLogger(zapLogger, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogger)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			zapLogger.Error("failed to close database", zap.Error(err))
		}
	}()

	if err := db.AutoMigrate(); err != nil {
		zapLogger.Fatal("failed to run database migrations", zap.Error(err))
	}

	// Cart IDs live in Redis so any instance can serve a session. Without
	// Redis a single instance still works off process memory.
	var (
		ids        cart.IDStore
		redisStore *cartstore.RedisStore
	)
	redisStore, err = cartstore.NewRedisStore(&cfg.Redis)
	if err != nil {
		zapLogger.Warn("redis unavailable, using in-memory cart store", zap.Error(err))
		redisStore = nil
		ids = cartstore.NewInMemoryStore()
	} else {
		ids = redisStore
		defer func() { _ = redisStore.Close() }()
	}

	storefront := shopify.NewStorefrontClient(&cfg.Shopify, zapLogger)
	admin := shopify.NewAdminClient(&cfg.Shopify, zapLogger)

	supplierClient := supplier.NewClient(&cfg.Supplier, zapLogger)
	fetcher := supplier.NewPageFetcher(cfg.Supplier.Timeout)
	extractor := supplier.NewPageExtractor("https://" + cfg.Supplier.Domain)

	cartService := cartapp.NewService(storefront, ids, zapLogger)
	importService := importer.NewImportService(fetcher, extractor, admin,
		cfg.Supplier.Domain, cfg.Shopify.StoreDomain, zapLogger)

	runRepo := persistence.NewGormSyncRunRepository(db.DB)
	syncService := importer.NewSyncService(supplierClient, admin, runRepo,
		importer.NewFixedDelayLimiter(cfg.Sync.ItemDelay), &cfg.Sync, zapLogger)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		zapLogger.Fatal("failed to set trusted proxies", zap.Error(err))
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(zapLogger))
	engine.Use(logger.GinMiddleware(zapLogger))
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))
	engine.Use(middleware.SessionKey())
	if cfg.HTTP.RateLimitEnabled {
		engine.Use(middleware.RateLimit(
			middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)))
	}

	var storePinger handler.StorePinger
	if redisStore != nil {
		storePinger = redisStore
	}
	systemHandler := handler.NewSystemHandler(db, storePinger)
	engine.GET("/health", systemHandler.Health)

	router.NewRouter(engine, router.WithAPIVersion("v1")).
		Register(systemHandler).
		Register(handler.NewCartHandler(cartService)).
		Register(handler.NewCatalogHandler(storefront)).
		Register(handler.NewImportHandler(importService)).
		Register(handler.NewSyncHandler(syncService, runRepo, &cfg.Sync)).
		Setup()

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		zapLogger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zapLogger.Error("forced shutdown", zap.Error(err))
	}

	zapLogger.Info("server stopped")
}
