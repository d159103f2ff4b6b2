package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"careercard/internal/ai"
	"careercard/internal/auth"
	"careercard/internal/card"
	"careercard/internal/config"
	"careercard/internal/database"
	httpServer "careercard/internal/http"
	"careercard/internal/logging"
	"careercard/internal/ratelimit"
	"careercard/internal/user"
)

// @title           CareerCard API
// @version         1.0
// @description     REST API for building, persisting and sharing career cards, with AI-assisted resume and portfolio import.

// @host      localhost:8080
// @BasePath  /

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	logger := logging.NewLogger(cfg.Server.IsDevelopment())
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
	)

	// Initialize database connection
	db, err := database.Connect(cfg.Database.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	// Initialize Redis connection
	redisClient, err := initRedis(cfg.Redis)
	if err != nil {
		return fmt.Errorf("failed to initialize Redis: %w", err)
	}
	defer redisClient.Close()

	// Initialize repositories
	userRepo := user.NewRepository(db)
	sessionRepo := auth.NewSessionRepository(db)
	cardRepo := card.NewRepository(db)

	// Initialize rate limiter
	rateLimiter := ratelimit.NewLimiter(redisClient)

	// Initialize Gemini client; an empty key leaves AI routes degraded
	// but the rest of the API fully functional
	gemini, err := ai.NewGemini(context.Background(), cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	if err != nil {
		return fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	if !gemini.Configured() {
		logger.Warn("GEMINI_API_KEY not set, AI routes fall back to local parsing where possible")
	}
	fetcher := ai.NewFetcher(cfg.AI.FetchTimeout)

	// Initialize auth service
	authService := auth.NewService(userRepo, sessionRepo, logger, cfg.Session.Duration)

	isProduction := !cfg.Server.IsDevelopment()

	// Initialize HTTP handlers
	authHandler := auth.NewHandler(authService, rateLimiter, logger, isProduction, cfg.Session.Duration)
	authMiddleware := auth.NewMiddleware(sessionRepo)
	cardHandler := card.NewHandler(cardRepo, logger)
	aiHandler := ai.NewHandler(gemini, fetcher, rateLimiter, logger)

	// Initialize router
	router := httpServer.NewRouter(cfg, authHandler, authMiddleware, cardHandler, aiHandler, logger)

	// Initialize HTTP server
	serverAddr := ":" + cfg.Server.Port
	server := httpServer.NewServer(
		serverAddr,
		router,
		cfg.Server.ReadTimeout,
		cfg.Server.WriteTimeout,
	)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// Wait for interrupt signal or server error
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Printf("Received signal: %v", sig)

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// initRedis initializes the Redis connection and returns a Redis client
func initRedis(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Verify connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return client, nil
}
