package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/onurcolak/listener-text-service/environments"
	"github.com/onurcolak/listener-text-service/handlers"
	"github.com/onurcolak/listener-text-service/internal/hub"
	"github.com/onurcolak/listener-text-service/internal/repository"
	"github.com/onurcolak/listener-text-service/internal/service"
	"github.com/onurcolak/listener-text-service/internal/session"
	"github.com/onurcolak/listener-text-service/internal/sweeper"
	"github.com/onurcolak/listener-text-service/pkg/carrier"
	"github.com/onurcolak/listener-text-service/pkg/database"
	"github.com/onurcolak/listener-text-service/pkg/logger"
	"github.com/onurcolak/listener-text-service/pkg/redis"
	"github.com/onurcolak/listener-text-service/pkg/validator"
	"github.com/onurcolak/listener-text-service/routes"

	_ "github.com/onurcolak/listener-text-service/docs" // swagger docs
)

// @title Listener Text Service API
// @version 1.0
// @description Inbound listener SMS, live staff dashboard and reply tools for a radio show
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/onurcolak/listener-text-service

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @schemes http https
func main() {
	// .env is optional; real environment variables win
	_ = godotenv.Load()

	logger.Init(environments.GetEnv("LOG_LEVEL", "info"))

	// Load config
	cfg := environments.Load()

	// Hard-fail if required secrets are missing
	if cfg.Auth.Username == "" {
		logger.Fatalf("AUTH_USERNAME is required but not set")
	}
	if cfg.Auth.Password == "" && cfg.Auth.PasswordHash == "" {
		logger.Fatalf("AUTH_PASSWORD or AUTH_PASSWORD_HASH is required but not set")
	}
	if cfg.Carrier.AccountSID == "" || cfg.Carrier.AuthToken == "" || cfg.Carrier.FromNumber == "" {
		logger.Fatalf("CARRIER_ACCOUNT_SID, CARRIER_AUTH_TOKEN and CARRIER_FROM_NUMBER are required")
	}

	logger.Infof("Starting Listener Text Service...")

	// Init DB
	db, err := database.NewMySQLDB(cfg.Database)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.RunMigrations(db); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed data
	if os.Getenv("SEED_DATA") == "true" {
		if err := database.SeedTestData(db); err != nil {
			logger.Warnf("Failed to seed test data: %v", err)
		}
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Sessions live in Valkey; fall back to process memory when it is unreachable
	var (
		sessionStore session.Store
		redisClient  *redis.Client
		sessionSweep *sweeper.Sweeper
	)
	redisClient, err = redis.NewRedisClient(cfg.Redis)
	if err != nil {
		logger.Warnf("Redis not available, sessions kept in memory: %v", err)
		redisClient = nil

		memoryStore := session.NewMemoryStore()
		sessionStore = memoryStore
		sessionSweep = sweeper.NewSweeper(memoryStore, 10*time.Minute)
		if err := sessionSweep.Start(ctx); err != nil {
			logger.Warnf("Failed to start session sweeper: %v", err)
		}
	} else {
		sessionStore = redisClient
	}

	sessions := session.NewManager(sessionStore, cfg.Session, cfg.IsProduction())

	// Live connection registry, closed on shutdown
	liveHub := hub.NewHub(cfg.Realtime.SendBuffer)

	// Initialize carrier client
	carrierClient := carrier.NewClient(cfg.Carrier)
	logger.Infof("Carrier configured: %s", carrierClient.GetBaseURL())

	// Initialize repositories
	messageRepo := repository.NewMessageRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Initialize services
	messageService := service.NewMessageService(messageRepo, carrierClient, liveHub, cfg.Message)
	settingsService := service.NewSettingsService(settingsRepo, liveHub)
	authService := service.NewAuthService(cfg.Auth, sessions, liveHub)

	// Health reports "memory" when there is no Valkey to ping
	var healthHandler *handlers.HealthHandler
	if redisClient != nil {
		healthHandler = handlers.NewHealthHandler(db, redisClient, liveHub.ConnectionCount)
	} else {
		healthHandler = handlers.NewHealthHandler(db, nil, liveHub.ConnectionCount)
	}

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{cfg.Server.FrontendURL},
		AllowCredentials: true,
		AllowMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
		},
	}))

	// Setup routes
	routes.RegisterRoutes(e, routes.Handlers{
		Health:   healthHandler,
		Auth:     handlers.NewAuthHandler(authService, sessions),
		Messages: handlers.NewMessageHandler(messageService),
		Settings: handlers.NewSettingsHandler(settingsService),
		Webhook:  handlers.NewWebhookHandler(messageService),
		Admin:    handlers.NewAdminHandler(messageService),
		Realtime: handlers.NewRealtimeHandler(liveHub, sessions, cfg.Realtime, cfg.Server.FrontendURL),
		Sweeper:  handlers.NewSweeperHandler(sessionSweep),
	}, sessions, cfg)

	// Start server in goroutine
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Infof("Server starting on http://localhost%s", addr)
		logger.Infof("Swagger docs available at http://localhost%s/swagger/index.html", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Shutting down gracefully...")

	// Cancel context to signal all goroutines to stop
	cancel()

	if sessionSweep != nil {
		if err := sessionSweep.Stop(); err != nil {
			logger.Errorf("Error stopping session sweeper: %v", err)
		}
	}

	// Hijacked websocket connections are not tracked by Shutdown, so close them first
	logger.Infof("Closing %d live connections...", liveHub.ConnectionCount())
	liveHub.Close()

	// Shutdown HTTP server (with timeout)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	logger.Infof("Shutting down HTTP server...")
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	} else {
		logger.Infof("HTTP server stopped successfully")
	}

	// Close database connection
	logger.Infof("Closing database connection...")
	if err := db.Close(); err != nil {
		logger.Errorf("Error closing database: %v", err)
	}

	// Close Redis connection
	if redisClient != nil {
		logger.Infof("Closing Redis connection...")
		if err := redisClient.Close(); err != nil {
			logger.Errorf("Error closing Redis: %v", err)
		}
	}

	logger.Infof("Graceful shutdown completed")
}
