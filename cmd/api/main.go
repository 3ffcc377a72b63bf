package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/faisalcam/cctv-shop-api/api/swagger"
	"github.com/faisalcam/cctv-shop-api/internal/handler"
	"github.com/faisalcam/cctv-shop-api/internal/idgen"
	"github.com/faisalcam/cctv-shop-api/internal/middleware"
	"github.com/faisalcam/cctv-shop-api/internal/repository"
	"github.com/faisalcam/cctv-shop-api/internal/service"
	"github.com/faisalcam/cctv-shop-api/pkg/cache"
	"github.com/faisalcam/cctv-shop-api/pkg/config"
	"github.com/faisalcam/cctv-shop-api/pkg/database"
	"github.com/faisalcam/cctv-shop-api/pkg/imagestore"
	"github.com/faisalcam/cctv-shop-api/pkg/logger"
	corsmiddleware "github.com/faisalcam/cctv-shop-api/pkg/middleware/cors"
	reqidmiddleware "github.com/faisalcam/cctv-shop-api/pkg/middleware/requestid"

	"go.uber.org/zap"
)

// @title CCTV Shop API
// @version 1.0.0
// @description Warranty, claim, and quotation backend for the camera shop
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Stats.CacheEnabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Sugar().Warnw("redis unavailable, stats caching disabled", "error", err)
			redisClient = nil
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	validate := validator.New()
	ids := idgen.New()
	metricsSvc := service.NewMetricsService()

	warrantyRepo := repository.NewWarrantyRepository(db)
	claimRepo := repository.NewClaimRepository(db)
	productRepo := repository.NewProductRepository(db)
	quotationRepo := repository.NewQuotationRepository(db)
	userRepo := repository.NewUserRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close()

	notifier := service.NewNotificationService(cfg.Notifications, logr)
	notifier.Start(ctx)
	defer notifier.Stop()

	warrantySvc := service.NewWarrantyService(warrantyRepo, productRepo, ids, cacheRepo, cfg.Stats.CacheTTL, validate, logr)
	claimSvc := service.NewClaimService(claimRepo, warrantyRepo, productRepo, ids, notifier, cacheRepo, cfg.Stats.CacheTTL, validate, logr)
	quotationSvc := service.NewQuotationService(quotationRepo, imagestore.New(cfg.ImageStore), validate, logr)
	authSvc := service.NewAuthService(userRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret:  cfg.JWT.Secret,
		AccessTokenExpiry:  cfg.JWT.Expiration,
		RefreshTokenExpiry: cfg.JWT.RefreshExpiration,
		Issuer:             "cctv-shop-api",
		SingleSession:      true,
	})
	exportSvc := service.NewExportService(warrantySvc, claimSvc, logr)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	handler.Register(r, handler.Handlers{
		Auth:       handler.NewAuthHandler(authSvc),
		Warranties: handler.NewWarrantyHandler(warrantySvc, exportSvc, metricsSvc),
		Claims:     handler.NewClaimHandler(claimSvc, exportSvc, metricsSvc),
		Quotations: handler.NewQuotationHandler(quotationSvc),
		Metrics:    handler.NewMetricsHandler(metricsSvc),
	}, authSvc)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	var scheduler *cron.Cron
	if cfg.Sweep.Enabled {
		scheduler = cron.New()
		_, err := scheduler.AddFunc(cfg.Sweep.Schedule, func() {
			result, err := warrantySvc.SweepExpired(context.Background())
			if err != nil {
				logr.Error("scheduled warranty sweep failed", zap.Error(err))
				return
			}
			metricsSvc.RecordSweep(result.ModifiedCount)
		})
		if err != nil {
			logr.Sugar().Fatalw("invalid sweep schedule", "schedule", cfg.Sweep.Schedule, "error", err)
		}
		scheduler.Start()
		defer scheduler.Stop()
		logr.Sugar().Infow("warranty sweep scheduled", "schedule", cfg.Sweep.Schedule)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
