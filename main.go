package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"meal-planner-be/internal/cache"
	"meal-planner-be/internal/config"
	"meal-planner-be/internal/controllers"
	"meal-planner-be/internal/database"
	"meal-planner-be/internal/jwt"
	"meal-planner-be/internal/logging"
	"meal-planner-be/internal/middleware"
	"meal-planner-be/internal/repository"
	"meal-planner-be/internal/router"
	"meal-planner-be/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/multierr"
	"golang.org/x/time/rate"
)

func main() {
	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logging.New(cfg.LogLevel, os.Stdout)

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.DBConnectRetries)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run database migrations
	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		db.Close()
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis cache (optional - continue if Redis is unavailable)
	var cacheClient cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.NewRedisCache(cfg.RedisURL)
		if err != nil {
			log.Printf("Warning: Failed to connect to Redis (%v). Continuing without cache.", err)
			cacheClient = nil
		} else {
			log.Println("Connected to Redis cache")
		}
	}

	// Initialize repositories
	mealRepo := repository.NewMealRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize JWT service
	jwtService := jwt.NewJWTService(
		cfg.JWTSecret,
		time.Duration(cfg.JWTTTL)*time.Hour,
	)

	// Initialize services
	mealService := service.NewMealService(mealRepo, cacheClient, cfg.MealsCacheTTL, logger)
	authService := service.NewAuthService(userRepo, jwtService)

	// Initialize rate limiters
	generalRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	authRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitAuthRPS), cfg.RateLimitAuthBurst)
	bulkRateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimitBulkRPS), cfg.RateLimitBulkBurst)

	routes := &router.Router{
		AuthController:   controllers.NewAuthController(authService, logger),
		MealController:   controllers.NewMealController(mealService, logger),
		QRCodeController: controllers.NewQRCodeController(mealService, logger),
		Global: []gin.HandlerFunc{
			middleware.RequestLogger(logger),
			middleware.CORS(cfg.CORSOrigin),
		},
		AuthMW:    middleware.AuthMiddleware(jwtService, userRepo),
		GeneralRL: generalRateLimiter.LimitMiddleware(),
		AuthRL:    authRateLimiter.LimitMiddleware(),
		BulkRL:    bulkRateLimiter.LimitMiddleware(),
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.New(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("Server starting on http://localhost:%s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	shutdownErr := server.Shutdown(shutdownCtx)

	generalRateLimiter.Close()
	authRateLimiter.Close()
	bulkRateLimiter.Close()

	closeErr := db.Close()
	if cacheClient != nil {
		closeErr = multierr.Append(closeErr, cacheClient.Close())
	}
	if err := multierr.Combine(shutdownErr, closeErr); err != nil {
		log.Printf("Shutdown finished with errors: %v", err)
	}
}
