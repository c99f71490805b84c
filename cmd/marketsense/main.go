package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/marketsense/marketsense/internal/api"
	"github.com/marketsense/marketsense/internal/config"
	"github.com/marketsense/marketsense/internal/gateway"
	"github.com/marketsense/marketsense/internal/repository"
	"github.com/marketsense/marketsense/internal/service"
)

var (
	configPath = flag.String("config", "", "Path to config file")
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx := context.Background()

	// Initialize key-value store (Redis when enabled, SQLite otherwise)
	var kv repository.KV
	if cfg.Redis.Enabled {
		store, err := repository.NewRedisStore(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer store.Close()
		kv = store
	} else {
		db, err := repository.NewDB(cfg.Database.Path)
		if err != nil {
			logger.Fatal("Failed to initialize database", zap.Error(err))
		}
		defer db.Close()
		kv = db
	}

	// Initialize repositories
	noteRepo := repository.NewNoteRepository(kv)
	researchRepo := repository.NewResearchRepository(kv)
	historyRepo := repository.NewHistoryRepository(kv)

	// Initialize LLM gateway
	model, err := gateway.NewModel(ctx, cfg.LLM)
	if err != nil {
		logger.Fatal("Failed to initialize LLM provider", zap.Error(err))
	}
	client := gateway.NewClient(model, logger)

	// Initialize services
	researchService := service.NewResearchService(client, historyRepo, logger)
	feedService := service.NewFeedService(client, logger)
	libraryService := service.NewLibraryService(noteRepo, researchRepo, historyRepo, client, logger)

	// Setup router
	router := api.SetupRouter(researchService, feedService, libraryService, api.RouterConfig{
		AllowOrigins: []string{"*"},
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting MarketSense server",
			zap.String("address", cfg.Address()),
			zap.String("llm_provider", cfg.LLM.Provider),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
