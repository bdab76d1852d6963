package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/portal-provas/exam-service/internal/cache"
	"github.com/portal-provas/exam-service/internal/config"
	"github.com/portal-provas/exam-service/internal/events"
	"github.com/portal-provas/exam-service/internal/handlers"
	"github.com/portal-provas/exam-service/internal/services"
	"github.com/portal-provas/exam-service/internal/store"
	"github.com/portal-provas/exam-service/internal/utils"
	"github.com/portal-provas/exam-service/internal/validator"
	"github.com/portal-provas/exam-service/pkg"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	// Initialize Redis (if configured)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to initialize Redis: %v", err)
		}
	}

	// Initialize snapshot store
	snapshotStore, err := buildStore(cfg, redisClient)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}

	// Initialize event publisher
	var publisher events.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		publisher, err = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.EventTopic, slogLogger)
		if err != nil {
			log.Fatalf("Failed to initialize Kafka publisher: %v", err)
		}
	} else {
		publisher = events.NewGoChannelPublisher(cfg.EventTopic, slogLogger)
	}

	// Catalog read cache only runs when Redis is available.
	var catalogCache *cache.CacheHelper
	if redisClient != nil {
		catalogCache = cache.NewCacheHelper(redisClient, "exam-service")
	}

	// Initialize services
	serviceManager := services.NewServiceManager(services.ServiceManagerConfig{
		Store:     snapshotStore,
		Logger:    slogLogger,
		Validator: validator.New(),
		Publisher: publisher,
		Cache:     catalogCache,
	})

	// Initialize handlers
	handlerManager := handlers.NewHandlerManager(serviceManager, logger)

	// Setup Gin router
	router := gin.New()

	// Setup middleware
	handlers.SetupMiddleware(router, logger)

	// Setup routes
	handlerManager.SetupRoutes(router)

	// Create HTTP server
	server := &http.Server{
		Addr:    cfg.Addr,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", "addr", cfg.Addr, "store", string(cfg.StoreBackend))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Close event publisher
	if err := publisher.Close(); err != nil {
		log.Printf("Failed to close event publisher: %v", err)
	}

	// Close Redis connection
	if redisClient != nil {
		redisClient.Close()
	}

	logger.Info("Server exited")
}

func buildStore(cfg *config.Config, redisClient *redis.Client) (store.Store, error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		return store.NewMemoryStore(), nil
	case config.StoreRedis:
		return store.NewRedisStore(redisClient, "exam-service:"), nil
	case config.StorePostgres:
		db, err := pkg.InitDatabase(cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		return store.NewPostgresStore(db)
	default:
		return store.NewFileStore(cfg.SnapshotPath), nil
	}
}
