package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"moviehub/database"
	"moviehub/internal/config"
	"moviehub/internal/microservices/http-api/events"
	"moviehub/internal/microservices/http-api/middleware"
	"moviehub/internal/microservices/http-api/repository"
	"moviehub/internal/microservices/http-api/router"
	"moviehub/internal/microservices/http-api/service"
)

func main() {
	// 1. Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}

	// 2. Setup structured logging
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// 3. Connect to the database
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database_connect_failed", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)

	// 4. Event publisher (optional)
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.EventsEnabled() {
		rp, err := events.NewRedisPublisher(cfg.RedisURL, cfg.RedisPassword, cfg.EventsChannel)
		if err != nil {
			// events are best-effort, keep serving without them
			logger.Warn("redis_unavailable_events_disabled", "error", err)
		} else {
			defer rp.Close()
			publisher = rp
			logger.Info("movie_events_enabled", "channel", cfg.EventsChannel)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var limiter *middleware.RateLimiter
	if cfg.RateLimitEnabled() {
		limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
		go limiter.RunCleanup(ctx, time.Minute)
	} else {
		logger.Info("rate_limiting_disabled")
	}

	// 5. Setup Gin
	movieService := service.NewMovieService(repository.NewMovieRepo(db), publisher, logger)
	r, err := router.New(router.Deps{
		Movies:         movieService,
		Ping:           func(ctx context.Context) error { return database.Ping(ctx, db) },
		Limiter:        limiter,
		Logger:         logger,
		TrustedProxies: cfg.TrustedProxies,
	})
	if err != nil {
		logger.Error("router_setup_failed", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Info("http_server_starting", "addr", srv.Addr, "env", cfg.GoEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		logger.Info("received_shutdown_signal")
	case err := <-errChan:
		logger.Error("server_error", "error", err.Error())
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
		return
	}
	logger.Info("server_stopped_gracefully")
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
