// ReFAQ - Re Protocol FAQ chat widget server
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/reprotocol/refaq/internal/api"
	"github.com/reprotocol/refaq/internal/chat"
	"github.com/reprotocol/refaq/internal/config"
	"github.com/reprotocol/refaq/internal/identity"
	"github.com/reprotocol/refaq/internal/llm"
	"github.com/reprotocol/refaq/internal/middleware"
	"github.com/reprotocol/refaq/internal/ratelimit"
	"github.com/reprotocol/refaq/internal/store"
	"github.com/reprotocol/refaq/web"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server", "port", cfg.Port, "dev", cfg.IsDevelopment(),
		"daily_limit", cfg.RateLimit.DailyLimit, "hourly_limit", cfg.RateLimit.HourlyLimit)

	// Initialize dependencies.
	repo, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()

	if err := repo.Ping(context.Background()); err != nil {
		slog.Error("Database health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database connected")

	// Remote completion client. Without an API key the widget still works;
	// every question resolves through the local rule-based pipeline.
	llmCfg := llm.DefaultConfig()
	llmCfg.APIKey = cfg.Remote.APIKey
	llmCfg.Model = cfg.Remote.Model
	llmCfg.Timeout = cfg.Remote.Timeout
	if cfg.Remote.BaseURL != "" {
		llmCfg.BaseURL = cfg.Remote.BaseURL
	}
	remote := llm.New(llmCfg)

	if remote.Configured() {
		// Best-effort connectivity probe: diagnostic logging only, never
		// blocks startup or changes user-facing behavior.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Remote.Timeout)
			defer cancel()
			if err := remote.Heartbeat(ctx); err != nil {
				slog.Warn("Completion API unreachable, questions will resolve locally until it recovers", "error", err)
				return
			}
			slog.Info("Completion API connection successful", "model", cfg.Remote.Model)
		}()
	} else {
		slog.Info("Completion API key not configured, using local responses only")
	}

	transcript, err := chat.NewTranscriptLogger(chat.TranscriptLogConfig{
		Enabled:   cfg.Transcript.Enabled,
		Dir:       cfg.Transcript.Dir,
		QueueSize: cfg.Transcript.QueueSize,
	}, logger)
	if err != nil {
		slog.Error("Failed to initialize transcript logger", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := transcript.Close(); closeErr != nil {
			slog.Warn("Failed to close transcript logger", "error", closeErr)
		}
	}()

	// Initialize the pipeline.
	limiter := ratelimit.New(repo, ratelimit.Config{
		DailyLimit:  cfg.RateLimit.DailyLimit,
		HourlyLimit: cfg.RateLimit.HourlyLimit,
	})
	resolver := chat.NewResolver(remote)

	// Initialize handlers.
	chatHandler := chat.NewHandler(resolver, limiter, transcript)
	wsHandler := chat.NewWebSocketHandler(resolver, limiter, transcript, cfg.RevealDelay, cfg.FrontendURL, cfg.IsDevelopment())
	healthHandler := api.NewHealthHandler(repo, remote.Configured())
	meHandler := api.NewMeHandler(repo, remote.Configured())

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/ping"))
	corsOrigins := []string{"*"}
	if cfg.FrontendURL != "" {
		corsOrigins = []string{cfg.FrontendURL}
	}
	r.Use(middleware.CORS(corsOrigins))
	r.Use(identity.Middleware(repo, cfg.IsDevelopment()))

	// Public routes.
	healthHandler.RegisterHealth(r)

	// API routes (anonymous identity, no auth needed).
	meHandler.RegisterRoutes(r)
	chatHandler.RegisterRoutes(r)

	// WebSocket endpoint for streamed replies.
	r.Get("/ws/chat", wsHandler.ServeHTTP)

	// Serve embedded widget frontend (SPA catch-all).
	r.Handle("/*", web.SPAHandler())

	// Create server. WriteTimeout stays 0 so long reveals over the
	// WebSocket are never cut off mid-stream.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start server.
	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal.
	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}
