package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"

	"studio-lab-backend/config"
	"studio-lab-backend/internal/ai"
	"studio-lab-backend/internal/api"
	"studio-lab-backend/internal/db"
	"studio-lab-backend/internal/engine"
	"studio-lab-backend/internal/notification"
	"studio-lab-backend/internal/release"
	"studio-lab-backend/internal/store"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "studio-backend ", log.LstdFlags)

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	var webpushOptions *webpush.Options
	if cfg.Push.PublicKey != "" && cfg.Push.PrivateKey != "" {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
	} else {
		logger.Println("VAPID keys not configured; availability pushes are disabled")
	}

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	// Create a context that can be cancelled
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Wire the state layers: snapshot store, notification sink, engine.
	appStore := store.NewGormStore(gormDB)
	sink := notification.NewSink(cfg.Notifications.TTL)
	appEngine := engine.New(appStore, sink)
	logger.Println("reservation engine initialized")

	aiClient := ai.NewClient(&cfg.AI)

	// Availability pushes and the booking-expiry sweep run in the
	// background.
	var pool *notification.WorkerPool
	var dispatcher release.Dispatcher
	if webpushOptions != nil {
		pool = notification.NewWorkerPool(cfg.WorkerPool.Size, appEngine, webpushOptions)
		pool.Start(ctx)
		dispatcher = pool
	}

	if cfg.Release.Enabled {
		releaseWorker := release.NewWorker(appEngine, dispatcher, cfg.Release.Interval)
		go releaseWorker.Run(ctx)
	}

	// Initialize router
	handler := api.NewHandler(appEngine, sink, aiClient, webpushOptions)
	router := api.NewRouter(handler, api.RouterOptions{
		RateLimitPerSec: cfg.Server.RateLimitPerSec,
		RateLimitBurst:  cfg.Server.RateLimitBurst,
		CacheTTL:        time.Duration(cfg.Server.CacheTTLSeconds) * time.Second,
	})
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
