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

	"open-rooms-backend/config"
	"open-rooms-backend/internal/api"
	"open-rooms-backend/internal/db"
	"open-rooms-backend/internal/engine"
	"open-rooms-backend/internal/notify"
	"open-rooms-backend/internal/refresher"
	"open-rooms-backend/internal/store"
)

func main() {
	logger := log.New(os.Stdout, "open-rooms-backend ", log.LstdFlags)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded successfully from %s", configPath)

	loc, err := time.LoadLocation(cfg.Engine.Timezone)
	if err != nil {
		logger.Fatalf("failed to load campus timezone %q: %v", cfg.Engine.Timezone, err)
	}

	var webpushOptions *webpush.Options
	if cfg.Push.PublicKey != "" && cfg.Push.PrivateKey != "" {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
	} else if cfg.Notifier.Enabled {
		logger.Fatalf("notifier is enabled but VAPID keys are not configured")
	}

	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)
	logger.Println("data store initialized")

	availEngine := engine.New(appStore, engine.Config{
		Location:           loc,
		MinGapMinutes:      cfg.Engine.MinGapMinutes,
		OpeningSoonMinutes: cfg.Engine.OpeningSoonMinutes,
		SourceTimeout:      cfg.Engine.SourceTimeout,
	})

	// Daily cache refresh in the background.
	refreshSvc := refresher.NewService(cfg, appStore, availEngine)
	go refreshSvc.Run(ctx)

	// Availability push notifications in the background.
	if webpushOptions != nil {
		pool := notify.NewWorkerPool(cfg.WorkerPool.Size, appStore, webpushOptions)
		sweeper := notify.NewSweeper(cfg, availEngine, pool)
		go sweeper.Run(ctx)
	}

	router := api.NewRouter(appStore, availEngine, refreshSvc, webpushOptions,
		time.Duration(cfg.Server.CacheTTLSeconds)*time.Second)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Fatalf("HTTP server Shutdown: %v", err)
	}

	logger.Println("Server gracefully stopped")
}
