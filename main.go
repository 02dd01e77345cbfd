package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"storefront/config"
	"storefront/models"
	"storefront/services"
	"storefront/storage"
)

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Setup Database
	db, err := storage.OpenPostgres(cfg)
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.Error(err))
	}
	logging.Info("Successfully connected to storefront database.")

	if cfg.AutoMigrate {
		logging.Info("Running database auto-migration...")
		if err := storage.Migrate(db); err != nil {
			logging.Fatal("Auto-migration failed", zap.Error(err))
		}
	}

	// Setup Cache
	var cache services.ListCache
	if cfg.CacheEnabled() {
		client, err := storage.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logging.Warn("Redis unavailable, product list cache disabled", zap.Error(err))
		} else {
			defer client.Close()
			cache = storage.NewListCache(client, "storefront:", cfg.CacheTTL)
			logging.Info("Product list cache enabled", zap.String("addr", cfg.RedisAddr), zap.Duration("ttl", cfg.CacheTTL))
		}
	}

	h := newHandlers(cfg, db, cache, logging)

	// Setup Cron
	cronScheduler := cron.New()
	if _, err := cronScheduler.AddFunc(cfg.StatsCron, func() { refreshStats(context.Background(), h.Statistics, logging) }); err != nil {
		logging.Fatal("Invalid STATS_CRON schedule", zap.String("schedule", cfg.StatsCron), zap.Error(err))
	}
	cronScheduler.Start()
	refreshStats(ctx, h.Statistics, logging)

	router := newRouter(cfg, h, logging)

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Failed to run server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logging.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	<-cronScheduler.Stop().Done()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Error("Server shutdown failed", zap.Error(err))
	}
	logging.Info("Server stopped")
}

func newHandlers(cfg *config.Config, db *gorm.DB, cache services.ListCache, logging *zap.Logger) *handlers {
	tokens := services.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	auth := services.NewAuthService(db, tokens, logging)
	products := services.NewProductService(db, storage.NewProductRepository(db, logging), cache, logging)

	return &handlers{
		Auth:       auth,
		Tokens:     tokens,
		Users:      services.NewUserService(db, auth, logging),
		Products:   products,
		Categories: services.NewCategoryService(db, products, logging),
		Reviews:    services.NewReviewService(db, products, logging),
		Orders: services.NewOrderService(db, logging, func(*models.Order) {
			ordersPlacedCounter.Inc()
		}),
		Statistics: services.NewStatisticsService(db, logging),
	}
}

func newRouter(cfg *config.Config, h *handlers, logging *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(loggerMiddleware(logging))
	router.Use(metricsMiddleware())
	router.Use(corsMiddleware(cfg.AllowedOrigins()))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup Routes
	api := router.Group("/api")
	setupAuthRoutes(api, h, logging)
	setupUserRoutes(api, h, logging)
	setupProductRoutes(api, h, logging)
	setupCategoryRoutes(api, h, logging)
	setupReviewRoutes(api, h, logging)
	setupOrderRoutes(api, h, logging)
	setupStatisticsRoutes(api, h, logging)

	return router
}

// refreshStats aktualisiert die Kennzahlen-Gauges.
func refreshStats(ctx context.Context, stats *services.StatisticsService, logging *zap.Logger) {
	sum, err := stats.Summary(ctx)
	if err != nil {
		logging.Error("Statistics job failed", zap.Error(err))
		return
	}
	storeStatsGauge.WithLabelValues("orders").Set(float64(sum.Orders))
	storeStatsGauge.WithLabelValues("reviews").Set(float64(sum.Reviews))
	storeStatsGauge.WithLabelValues("users").Set(float64(sum.Users))
	storeStatsGauge.WithLabelValues("products").Set(float64(sum.Products))
	storeStatsGauge.WithLabelValues("total_amount").Set(float64(sum.TotalAmount))
	logging.Info("Statistics refreshed", zap.Int64("orders", sum.Orders), zap.Int64("total_amount", sum.TotalAmount))
}
