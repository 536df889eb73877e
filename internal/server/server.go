package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/observer/parley/internal/api"
	"github.com/observer/parley/internal/config"
	"github.com/observer/parley/internal/middleware"
	"github.com/observer/parley/internal/websocket"
)

// Dependencies holds all service dependencies for the server
type Dependencies struct {
	WSHandler       *websocket.Handler
	UploadHandler   *api.UploadHandler
	MessagesHandler *api.MessagesHandler
	DebugHandler    *api.DebugHandler
	RateLimiter     *middleware.RateLimiter
	StaticDir       string
	Logger          *slog.Logger
}

// New creates an HTTP server with all routes configured.
func New(cfg *config.Config, deps *Dependencies) *http.Server {
	mux := http.NewServeMux()

	// Register routes
	registerRoutes(mux, deps)

	// Wrap with middleware
	handler := chainMiddleware(mux,
		requestIDMiddleware,
		corsMiddleware(cfg),
		loggingMiddleware(deps.Logger),
		recoverMiddleware(deps.Logger),
	)

	return &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func registerRoutes(mux *http.ServeMux, deps *Dependencies) {
	limited := deps.RateLimiter.Middleware

	// =========================================================================
	// Status routes
	// =========================================================================
	mux.HandleFunc("GET /health", deps.DebugHandler.Health)
	mux.HandleFunc("GET /stats", deps.DebugHandler.Stats)

	// =========================================================================
	// Debug routes
	// =========================================================================
	mux.HandleFunc("GET /debug", deps.DebugHandler.Debug)
	mux.HandleFunc("GET /debug/connections", deps.DebugHandler.Connections)
	mux.HandleFunc("GET /debug/user/{id}", deps.DebugHandler.User)
	mux.HandleFunc("GET /debug/video_calls", deps.DebugHandler.VideoCalls)

	// =========================================================================
	// Message routes
	// =========================================================================
	mux.HandleFunc("GET /messages/{room}", deps.MessagesHandler.History)
	mux.Handle("POST /messages/edit", limited(http.HandlerFunc(deps.MessagesHandler.Edit)))
	mux.Handle("POST /messages/delete", limited(http.HandlerFunc(deps.MessagesHandler.Delete)))

	// =========================================================================
	// Upload routes
	// =========================================================================
	mux.Handle("POST /upload", limited(http.HandlerFunc(deps.UploadHandler.Upload)))
	mux.HandleFunc("GET /uploads/{filename}", deps.UploadHandler.Download)

	// =========================================================================
	// WebSocket route
	// =========================================================================
	mux.Handle("GET /ws", deps.WSHandler)

	// =========================================================================
	// Observability and docs
	// =========================================================================
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /swagger/", httpSwagger.WrapHandler)

	// =========================================================================
	// Root - static frontend when configured, API banner otherwise
	// =========================================================================
	if deps.StaticDir != "" {
		staticFS := http.FileServer(http.Dir(deps.StaticDir))
		mux.Handle("GET /", staticFS)
	} else {
		mux.HandleFunc("GET /{$}", deps.DebugHandler.Root)
	}
}
