package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/vitrine-sites/booking-api/api/swagger"
	"github.com/vitrine-sites/booking-api/internal/flow"
	"github.com/vitrine-sites/booking-api/internal/handler"
	"github.com/vitrine-sites/booking-api/internal/middleware"
	"github.com/vitrine-sites/booking-api/internal/repository"
	"github.com/vitrine-sites/booking-api/internal/service"
	"github.com/vitrine-sites/booking-api/internal/submit"
	"github.com/vitrine-sites/booking-api/pkg/cache"
	"github.com/vitrine-sites/booking-api/pkg/config"
	"github.com/vitrine-sites/booking-api/pkg/logger"
	corsmiddleware "github.com/vitrine-sites/booking-api/pkg/middleware/cors"
	reqidmiddleware "github.com/vitrine-sites/booking-api/pkg/middleware/requestid"
)

// @title Vitrine Booking API
// @version 1.0.0
// @description Availability, calendar and booking flow service for themed showcase sites
// @BasePath /api/v1
// @schemes http

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sites, err := repository.NewSiteConfigRepository(cfg.Sites.Dir, logr)
	if err != nil {
		logr.Sugar().Fatalw("failed to load site configurations", "dir", cfg.Sites.Dir, "error", err)
	}

	metricsSvc := service.NewMetricsService()

	var redisClient *redis.Client
	var cacheSvc *service.CacheService
	if cfg.Booking.CacheEnabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, availability cache disabled", zap.Error(err))
		} else {
			cacheRepo := repository.NewCacheRepository(redisClient, logr)
			cacheSvc = service.NewCacheService(cacheRepo, metricsSvc, cfg.Booking.AvailabilityTTL, logr, true)
		}
	}

	var submitter flow.Submitter
	if cfg.Booking.SubmitMock || cfg.Booking.SubmitURL == "" {
		submitter = submit.NewMockSubmitter(cfg.Booking.SubmitMockDelay, logr)
	} else {
		submitter = submit.NewHTTPClient(cfg.Booking.SubmitURL, cfg.Booking.SubmitTimeout, logr)
	}

	availabilitySvc := service.NewAvailabilityService(
		sites, cacheSvc, metricsSvc, logr,
		time.Now,
		cfg.Booking.AvailabilityTTL, cfg.Booking.CalendarGridTTL,
	)
	bookingSvc := service.NewBookingService(
		sites, submitter, validator.New(), metricsSvc, logr,
		time.Now,
		cfg.Booking.SessionTTL,
	)
	bookingSvc.StartSweeper(ctx, cfg.Booking.SessionSweep)
	exportSvc := service.NewExportService(sites, logr)

	availabilityHandler := handler.NewAvailabilityHandler(availabilitySvc)
	adminHandler := handler.NewAdminHandler(sites, availabilitySvc)
	bookingHandler := handler.NewBookingHandler(bookingSvc)
	exportHandler := handler.NewExportHandler(exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/metrics", metricsHandler.Prometheus)
	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.GET("/sites/:site/availability", availabilityHandler.DaySlots)
		api.GET("/sites/:site/calendar", availabilityHandler.Calendar)
		api.GET("/sites/:site/schedule/export", exportHandler.Schedule)
		api.POST("/sites/:site/booking-sessions", bookingHandler.Create)

		api.GET("/booking-sessions/:id", bookingHandler.Get)
		api.POST("/booking-sessions/:id/date", bookingHandler.SelectDate)
		api.POST("/booking-sessions/:id/time", bookingHandler.SelectTime)
		api.POST("/booking-sessions/:id/confirm", bookingHandler.Confirm)
		api.POST("/booking-sessions/:id/back", bookingHandler.Back)
		api.POST("/booking-sessions/:id/submit", bookingHandler.Submit)

		api.POST("/admin/sites/reload", adminHandler.ReloadSites)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env, "sites", len(sites.Sites()))
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
