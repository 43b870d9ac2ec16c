package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ikkim/realty-review-backend/config"
	"github.com/ikkim/realty-review-backend/internal/app/controller"
	"github.com/ikkim/realty-review-backend/internal/app/repository"
	"github.com/ikkim/realty-review-backend/internal/app/service"
	"github.com/ikkim/realty-review-backend/internal/db"
	"github.com/ikkim/realty-review-backend/internal/middleware"
	"github.com/ikkim/realty-review-backend/internal/router"
	"github.com/ikkim/realty-review-backend/internal/websocket"
	"github.com/ikkim/realty-review-backend/pkg/logger"
	"github.com/ikkim/realty-review-backend/pkg/redis"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := cfg.Log.Level
	if logLevel == "" {
		logLevel = "info"
		if cfg.Server.Environment == "development" {
			logLevel = "debug"
		}
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      cfg.Log.Format,
		EnableColor: cfg.Log.Format == "console",
	})

	logger.Info("Starting Realty Review Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
		"locale":      cfg.Notification.Locale,
	})

	database, err := db.Open(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(database); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(database); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Realtime delivery: local hub, optionally fanned out through Redis
	hub := websocket.NewHub()
	go hub.Run(ctx)

	sinks := []service.NotificationSink{hub}
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err != nil {
			logger.Fatal("Failed to initialize Redis", err)
		}
		defer func() {
			if err := redis.Close(); err != nil {
				logger.Error("Failed to close Redis connection", err)
			}
		}()

		publisher := redis.NewNotificationPublisher(redis.GetClient(), cfg.Redis.Channel)
		sinks = []service.NotificationSink{publisher}
		go func() {
			if err := publisher.Subscribe(ctx, hub.DeliverEvent); err != nil {
				logger.Error("Notification subscriber stopped", err, map[string]interface{}{
					"channel": cfg.Redis.Channel,
				})
			}
		}()
	}

	// Initialize repositories
	profileRepo := repository.NewProfileRepository(database)
	companyRepo := repository.NewCompanyRepository(database)
	reviewRepo := repository.NewReviewRepository(database)
	replyRepo := repository.NewReplyRepository(database)
	voteRepo := repository.NewVoteRepository(database)
	reportRepo := repository.NewReportRepository(database)
	notificationRepo := repository.NewNotificationRepository(database)

	// Initialize services
	identityService := service.NewIdentityService(profileRepo)
	notificationService := service.NewNotificationService(
		notificationRepo,
		profileRepo,
		cfg.Notification.Locale,
		sinks...,
	)
	reviewService := service.NewReviewService(reviewRepo, companyRepo, voteRepo, notificationService.NotifyNewReview)
	replyService := service.NewReplyService(replyRepo, reviewRepo, notificationService)
	engagementService := service.NewEngagementService(voteRepo, reviewRepo, replyRepo)
	reportService := service.NewReportService(reportRepo, reviewRepo, replyRepo)
	moderationService := service.NewModerationService(reviewRepo, replyRepo, reportRepo, notificationService)

	// Initialize controllers
	reviewController := controller.NewReviewController(reviewService)
	replyController := controller.NewReplyController(replyService)
	engagementController := controller.NewEngagementController(engagementService, reportService)
	moderationController := controller.NewModerationController(moderationService)
	notificationController := controller.NewNotificationController(notificationService)
	webSocketController := controller.NewWebSocketController(hub, cfg.CORS.AllowedOrigins)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret, identityService)

	// Setup router
	r := router.NewRouter(
		reviewController,
		replyController,
		engagementController,
		moderationController,
		notificationController,
		webSocketController,
		authMiddleware,
		cfg,
	)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           r.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	<-ctx.Done()
	logger.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}

	logger.Info("Server stopped successfully")
}
