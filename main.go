package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msomdec/waitlist-backend/internal/config"
	"github.com/msomdec/waitlist-backend/internal/domain"
	"github.com/msomdec/waitlist-backend/internal/handler"
	"github.com/msomdec/waitlist-backend/internal/mailer"
	"github.com/msomdec/waitlist-backend/internal/repository/postgres"
	"github.com/msomdec/waitlist-backend/internal/repository/sqlite"
	"github.com/msomdec/waitlist-backend/internal/service"
)

const healthCheckTTL = 30 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	slog.Info("waitlist backend starting up")

	var db domain.Database
	switch cfg.DBDriver {
	case "sqlite":
		db, err = sqlite.New(cfg.SQLitePath)
	default:
		db, err = postgres.New(postgres.Options{
			Host:     cfg.Postgres.Host,
			Port:     cfg.Postgres.Port,
			User:     cfg.Postgres.User,
			Password: cfg.Postgres.Password,
			Database: cfg.Postgres.Database,
			SSLMode:  cfg.Postgres.SSLMode,
		})
	}
	if err != nil {
		slog.Error("failed to open database", "driver", cfg.DBDriver, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied", "driver", cfg.DBDriver)

	mail := mailer.NewResendClient(cfg.ResendAPIURL, cfg.ResendAPIKey, cfg.ResendFromAdr)
	signupService := service.NewSignupService(db.Signups(), mail)
	healthService := service.NewHealthService(healthCheckTTL, time.Now)
	limiter := service.NewSlidingWindow(5, time.Minute)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux,
		handler.NewContactHandler(signupService),
		handler.NewHealthHandler(healthService),
		limiter,
	)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.CORS(cfg.CORSOrigins)(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
