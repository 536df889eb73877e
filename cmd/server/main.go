package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/observer/parley/docs"
	"github.com/observer/parley/internal/api"
	"github.com/observer/parley/internal/chat"
	"github.com/observer/parley/internal/config"
	"github.com/observer/parley/internal/middleware"
	"github.com/observer/parley/internal/pubsub"
	"github.com/observer/parley/internal/server"
	"github.com/observer/parley/internal/storage"
	"github.com/observer/parley/internal/websocket"
)

func main() {
	// Structured logging from the start
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Optional .env for local development
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Pick the pubsub backbone (in-memory for single instance, Redis when scaling out)
	var ps pubsub.PubSub
	switch cfg.PubSubType {
	case "redis":
		ps, err = pubsub.NewRedisPubSub(cfg.RedisURL)
		if err != nil {
			slog.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		slog.Info("redis pubsub initialized", "url", cfg.RedisURL)
	default:
		ps = pubsub.NewMemoryPubSub()
	}
	defer ps.Close()

	// Pick the upload storage backend
	var store storage.Store
	switch cfg.StorageType {
	case "r2":
		store, err = storage.NewR2Storage(cfg.R2Endpoint, cfg.R2AccessKeyID, cfg.R2SecretAccessKey, cfg.R2Bucket)
		if err != nil {
			slog.Error("failed to initialize R2 storage", "error", err)
			os.Exit(1)
		}
		slog.Info("R2 storage initialized", "bucket", cfg.R2Bucket)
	default:
		store, err = storage.NewLocalStorage(cfg.UploadDir)
		if err != nil {
			slog.Error("failed to initialize local storage", "error", err)
			os.Exit(1)
		}
		slog.Info("local storage initialized", "dir", cfg.UploadDir)
	}

	// Chat engine and its WebSocket transport. The hub dispatches inbound
	// events to the engine and the engine emits through the hub, so the
	// transport is attached after both exist.
	engine := chat.NewEngine(logger)
	hub := websocket.NewHub(engine, ps, logger)
	engine.SetTransport(hub)
	wsHandler := websocket.NewHandler(hub, logger)

	// Broadcaster for API handlers to push room events through pubsub
	broadcaster := websocket.NewPubSubBroadcaster(ps)

	// Initialize handlers
	uploadHandler := api.NewUploadHandler(store, cfg.MaxUploadBytes, logger)
	messagesHandler := api.NewMessagesHandler(engine, broadcaster, logger)
	debugHandler := api.NewDebugHandler(engine)

	// Rate limiting for mutating endpoints, with periodic cleanup of idle entries
	rateLimiter := middleware.NewRateLimiter(cfg.UploadsPerMin)
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			rateLimiter.Cleanup()
		}
	}()

	// Create and start server
	deps := &server.Dependencies{
		WSHandler:       wsHandler,
		UploadHandler:   uploadHandler,
		MessagesHandler: messagesHandler,
		DebugHandler:    debugHandler,
		RateLimiter:     rateLimiter,
		StaticDir:       cfg.StaticDir,
		Logger:          logger,
	}

	srv := server.New(cfg, deps)

	// Graceful shutdown setup
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-shutdownCtx.Done()
	slog.Info("shutting down gracefully...")

	// Give active connections 10 seconds to finish
	timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer timeoutCancel()

	if err := srv.Shutdown(timeoutCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
