// ABOUTME: Entry point for the small-world topology analyzer service
// ABOUTME: Provides HTTP API for graph metrics and shortcut optimization

package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/topologylab/smallworld/cache"
	"github.com/topologylab/smallworld/config"
	"github.com/topologylab/smallworld/handlers"
	"github.com/topologylab/smallworld/logger"
	"github.com/topologylab/smallworld/middleware"
	"github.com/topologylab/smallworld/services"
)

func main() {
	// Initialize structured logging
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting Small-World Topology Analyzer",
		"version", handlers.Version,
		"default_goal", cfg.DefaultGoal,
	)

	// Initialize cache
	cacheTTL := time.Duration(cfg.CacheTTL) * time.Second
	c := cache.New(cacheTTL)
	slog.Info("Cache initialized", "ttl", cacheTTL)

	// Gamification store and WebSocket hub
	scoreboard := services.NewScoreboard()
	hub := handlers.NewHub()

	// Initialize handlers
	h := handlers.NewHandler(cfg, c, scoreboard, hub)

	// Rate limiters: write endpoints get a stricter budget
	var writeLimiter, defaultLimiter *middleware.RateLimiter
	if cfg.RateLimitEnabled {
		writeLimiter = middleware.NewRateLimiter(cfg.RateLimitWrite, time.Minute)
		defaultLimiter = middleware.NewRateLimiter(cfg.RateLimitDefault, time.Minute)
		slog.Info("Rate limiting enabled", "write_rpm", cfg.RateLimitWrite, "default_rpm", cfg.RateLimitDefault)
	} else {
		slog.Warn("Rate limiting disabled")
	}

	// Register routes with middleware
	mux := http.NewServeMux()
	for _, route := range h.Routes() {
		limiter := defaultLimiter
		if route.IsWrite() {
			limiter = writeLimiter
		}
		handler := middleware.Chain(route.Handler,
			middleware.CORS,
			middleware.LogRequest,
			middleware.RateLimit(limiter, middleware.ClientIP),
		)
		mux.HandleFunc(route.Method+" "+route.Path, handler)
	}

	// WebSocket endpoint skips CORS preflight handling (not applicable)
	mux.HandleFunc("GET /ws", middleware.Chain(hub.ServeWS, middleware.LogRequest))

	// Start server
	addr := ":" + cfg.Port
	slog.Info("Server listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
