package main

import (
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/wanderlink/admin-gateway/config"
	"github.com/wanderlink/admin-gateway/internal/api"
	"github.com/wanderlink/admin-gateway/internal/api/handlers"
	"github.com/wanderlink/admin-gateway/internal/querycache"
	"github.com/wanderlink/admin-gateway/internal/resources"
	"github.com/wanderlink/admin-gateway/internal/screen"
	"github.com/wanderlink/admin-gateway/internal/session"
	"github.com/wanderlink/admin-gateway/internal/upstream"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Validate critical configuration
	if cfg.Upstream.URL == "" {
		log.Fatalf("UPSTREAM_URL environment variable is required")
	}
	if cfg.Session.Secret == "" {
		log.Fatalf("SESSION_SECRET environment variable is required")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Upstream client and query cache
	client := upstream.NewClient(cfg.Upstream.URL, cfg.Upstream.Timeout)
	cache := querycache.New()

	// Initialize services
	resourceService := resources.NewService(client, cache)
	sessionService := session.NewService(client, &cfg.Session)
	registry := screen.NewRegistry(resourceService, screen.DefaultDebounce)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(sessionService, registry)
	resourceHandler := handlers.NewResourceHandler(resourceService)
	screenHandler := handlers.NewScreenHandler(registry)
	overviewHandler := handlers.NewOverviewHandler(resourceService)
	profileHandler := handlers.NewProfileHandler(sessionService)

	// Setup router
	router := api.NewRouter(
		sessionService,
		logger,
		authHandler,
		resourceHandler,
		screenHandler,
		overviewHandler,
		profileHandler,
	)

	engine := router.Setup(cfg.Server.Mode)

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down server")
		os.Exit(0)
	}()

	// Start server
	logger.Info("starting server", "port", cfg.Server.Port, "upstream", cfg.Upstream.URL)
	if err := engine.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
