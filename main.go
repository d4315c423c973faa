package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/openelearn/platform-service/internal/config"
	"github.com/openelearn/platform-service/internal/events"
	"github.com/openelearn/platform-service/internal/handlers"
	"github.com/openelearn/platform-service/internal/repositories/mongodb"
	"github.com/openelearn/platform-service/internal/services"
	"github.com/openelearn/platform-service/internal/utils"
	"github.com/openelearn/platform-service/internal/validator"
	"github.com/openelearn/platform-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// JSON logs on stdout, level from config
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	// Build the store client. A missing or unreachable store is not
	// fatal: the service keeps running in degraded mode.
	client, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Warn("Database connection failed, continuing without store", "error", err)
		client = nil
	}
	if client == nil {
		logger.Warn("No database configured, store-backed operations will be unavailable")
	}

	// Redis is optional; without it the caches degrade to pass-through
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			log.Printf("Warning: Failed to initialize Redis: %v", err)
		}
	}

	// Events go to Kafka when brokers are configured, to the log
	// otherwise
	var publisher events.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := events.NewKafkaEventPublisher(cfg.KafkaBrokers, slogLogger)
		if err != nil {
			log.Fatalf("Failed to initialize Kafka publisher: %v", err)
		}
		publisher = kafkaPublisher
	} else {
		publisher = events.NewLogEventPublisher(slogLogger)
	}

	// Repository layer over the store handle
	repoConfig := mongodb.RepositoryConfig{
		Client:       client,
		DatabaseName: cfg.DatabaseName,
		RedisClient:  redisClient,
	}
	repoManager := mongodb.NewRepositoryManager(repoConfig)
	if err := repoManager.Initialize(); err != nil {
		// The degraded repository is still usable, only connectivity
		// verification failed.
		logger.Warn("Repository connectivity check failed", "error", err)
	}

	validator := validator.New()

	// Service layer
	hasher := services.NewCredentialHasher(cfg.Auth.PasswordHashKey, cfg.Auth.TokenKey)
	serviceManager := services.NewDefaultServiceManager(repoManager.GetRepository(), hasher, publisher, slogLogger, validator)
	if err := serviceManager.Initialize(context.Background()); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Baseline data, before the server accepts traffic. Seeding
	// failures never prevent startup.
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	if err := serviceManager.Seed().Run(seedCtx); err != nil {
		logger.Warn("Seeding finished with errors", "error", err)
	}
	cancelSeed()

	// HTTP surface
	handlerManager := handlers.NewHandlerManager(serviceManager, logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handlers.SetupMiddleware(router, logger)
	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Block until asked to stop, then drain within the timeout
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Services close the event publisher; the repository manager closes
	// the store and Redis.
	if err := serviceManager.Shutdown(ctx); err != nil {
		log.Printf("Failed to shutdown services: %v", err)
	}
	if err := repoManager.Shutdown(ctx); err != nil {
		log.Printf("Failed to shutdown repositories: %v", err)
	}

	logger.Info("Server exited")
}
