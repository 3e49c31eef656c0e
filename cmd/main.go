package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"stocktrack/internal/caching"
	"stocktrack/internal/handlers"
	"stocktrack/internal/jobs"
	"stocktrack/internal/jobs/background"
	"stocktrack/internal/middleware"
	"stocktrack/internal/ratelimit"
	"stocktrack/internal/repositories"
	"stocktrack/internal/services"
	"stocktrack/pkg/database"
)

const version = "1.0.0"

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Println("WARNING: JWT_SECRET not set; bearer tokens will not resolve")
	}

	// Singleton cache client, shared by the listing read path and the
	// rate limiter.
	cacheStore := caching.NewRedisStore(caching.Config{
		Addr:        envOr("REDIS_ADDR", "localhost:6379"),
		Password:    os.Getenv("REDIS_PASSWORD"),
		DB:          envIntOr("REDIS_DB", 0),
		DialTimeout: time.Duration(envIntOr("REDIS_TIMEOUT_MS", 1000)) * time.Millisecond,
		ReadTimeout: time.Duration(envIntOr("REDIS_TIMEOUT_MS", 1000)) * time.Millisecond,
		MaxRetries:  envIntOr("REDIS_MAX_RETRIES", 5),
		PoolSize:    envIntOr("REDIS_POOL_SIZE", 10),
	})

	imageSvc, err := services.NewMinioImageService(
		envOr("MINIO_ENDPOINT", "localhost:9000"),
		envOr("MINIO_ACCESS_KEY", "minioadmin"),
		envOr("MINIO_SECRET_KEY", "minioadmin"),
		envOr("MINIO_BUCKET", "item-images"),
		os.Getenv("MINIO_USE_SSL") == "true",
	)
	if err != nil {
		log.Fatalf("Failed to initialize image service: %v", err)
	}
	if err := imageSvc.EnsureBucket(context.Background()); err != nil {
		log.Printf("WARN: could not ensure image bucket: %v", err)
	}

	// Repositories
	itemRepo := repositories.NewItemRepo(pool)
	imageRepo := repositories.NewItemImageRepo(pool)
	movementRepo := repositories.NewMovementRepo(pool)
	notificationRepo := repositories.NewNotificationRepo(pool)
	categoryRepo := repositories.NewCategoryRepo(pool)
	supplierRepo := repositories.NewSupplierRepo(pool)
	activityRepo := repositories.NewActivityRepo(pool)

	// Services
	ledgerSvc := services.NewLedgerService(pool, movementRepo, cacheStore)
	itemSvc := services.NewItemService(itemRepo, imageRepo, movementRepo, categoryRepo, supplierRepo, imageSvc, cacheStore)
	notificationSvc := services.NewNotificationService(notificationRepo)

	// Handlers
	itemHandlers := handlers.NewItemHandlers(itemSvc)
	movementHandlers := handlers.NewMovementHandlers(ledgerSvc)
	notificationHandlers := handlers.NewNotificationHandlers(notificationSvc)
	catalogHandlers := handlers.NewCatalogHandlers(categoryRepo, supplierRepo)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheStore)

	limiter := ratelimit.NewLimiter(cacheStore, ratelimit.DefaultWindow, ratelimit.DefaultBudget)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(limiter)
	identityMiddleware := middleware.NewIdentityMiddleware(jwtSecret)
	activityMiddleware := middleware.NewActivityMiddleware(activityRepo)

	e := echo.New()
	e.HideBanner = true

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints bypass rate limiting
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	api := e.Group("/api")
	api.Use(rateLimitMiddleware.Limit())
	api.Use(identityMiddleware.Resolve())
	api.Use(activityMiddleware.Record())

	api.GET("/items", itemHandlers.ListItems)
	api.POST("/items", itemHandlers.CreateItem)
	api.GET("/items/:id", itemHandlers.GetItem)
	api.POST("/items/batch", itemHandlers.BatchItems)

	api.GET("/stock-movements", movementHandlers.ListMovements)
	api.POST("/stock-movements", movementHandlers.CreateMovement)

	api.GET("/notifications", notificationHandlers.ListNotifications)
	api.PUT("/notifications/:id/read", notificationHandlers.MarkRead)

	api.GET("/categories", catalogHandlers.ListCategories)
	api.POST("/categories", catalogHandlers.CreateCategory)
	api.GET("/suppliers", catalogHandlers.ListSuppliers)
	api.POST("/suppliers", catalogHandlers.CreateSupplier)

	// Background jobs
	reorderScan := jobs.NewReorderScanService(itemRepo)
	scheduler, err := background.NewScheduler(reorderScan)
	if err != nil {
		log.Fatalf("Failed to create scheduler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	port := envIntOr("PORT", 8080)
	log.Printf("stocktrack v%s starting on port %d", version, port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}
