// Command todoweb-server starts the todo web application.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"todoweb/internal/config"
	"todoweb/internal/limiter"
	"todoweb/internal/migrate"
	"todoweb/internal/repository/postgres"
	"todoweb/internal/server/web"
	"todoweb/internal/service"
	"todoweb/internal/token"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// Rate limiting defaults for login attempts.
const (
	limiterWindow   = 15 * time.Minute
	limiterMaxFails = 5
	limiterBlockFor = 15 * time.Minute
)

// main loads configuration, runs migrations, and starts the HTTP server.
func main() {
	logger, _ := zap.NewProduction()
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("config", zap.Error(err))
	}
	logger.Info("starting",
		zap.String("version", version),
		zap.String("buildDate", buildDate),
		zap.String("addr", cfg.Address),
	)

	// Context with OS signals
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := migrate.Up(ctx, cfg.DatabaseDSN); err != nil {
		logger.Fatal("migrate up", zap.Error(err))
	}

	// DB pool
	db, err := postgres.New(ctx, cfg.DatabaseDSN)
	if err != nil {
		logger.Fatal("connect to database", zap.Error(err))
	}
	defer db.Close()

	// Repositories
	userRepo := postgres.NewUserRepo(db)
	todoRepo := postgres.NewTodoRepo(db)

	lim := limiter.NewPGWithQuerier(db.Pool, limiterWindow, limiterMaxFails, limiterBlockFor)

	// Services
	tokens := token.NewService([]byte(cfg.JWTSecret), cfg.AccessTokenTTL)
	authSvc := service.NewAuthService(userRepo, tokens, lim)
	todoSvc := service.NewTodoService(todoRepo)

	srv := web.NewServer(authSvc, todoSvc, tokens, db.Pool, logger, cfg.SecureCookies).
		HTTPServer(cfg.Address)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Address))
		errCh <- srv.ListenAndServe()
	}()

	// Wait for stop
	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			_ = srv.Close()
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}

	logger.Info("shutdown complete")
}
