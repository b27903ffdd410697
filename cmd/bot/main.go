package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"

	"filerelay/internal/config"
	"filerelay/internal/database"
	"filerelay/internal/database/migration"
	handlers "filerelay/internal/http/handler"
	"filerelay/internal/http/middleware"
	"filerelay/internal/links"
	"filerelay/internal/logging"
	"filerelay/internal/otel"
	"filerelay/internal/repository"
	"filerelay/internal/repository/memory"
	"filerelay/internal/repository/postgres"
	"filerelay/internal/service"
	"filerelay/internal/storage"
	"filerelay/internal/telegram"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	logger := logging.New()

	ctx := context.Background()

	shutdownTracing, err := otel.Init(ctx, logging.Component(logger, "otel"))
	if err != nil {
		logger.Error("tracing_setup_failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Error("tracing_shutdown_failed", slog.String("error", err.Error()))
		}
	}()

	// Durable record store when a database is configured, in-process fallback
	// store otherwise.
	var db *sql.DB
	var repo repository.RecordRepository
	if cfg.Database.Host != "" {
		db, err = database.NewPostgres(ctx, cfg.Database, logging.Component(logger, "database"))
		if err != nil {
			logger.Error("database_connect_failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer db.Close()

		if err := migration.EnsureMigrated(ctx, db, logging.Component(logger, "migration"), cfg.Database.Host); err != nil {
			logger.Error("migration_failed", slog.String("error", err.Error()))
			os.Exit(1)
		}

		repo = postgres.NewRecordPostgres(db, cfg.Relay.DurableTTL)
		logger.Info("record_store_ready", slog.String("store", "postgres"))
	} else {
		repo = memory.NewRecordMemory(cfg.Relay.FallbackTTL)
		logger.Info("record_store_ready", slog.String("store", "memory"))
	}

	// Hosting backend for the transfer path.
	var transferer storage.Transferer
	switch cfg.Relay.Backend {
	case "s3":
		transferer, err = storage.NewS3Transferer(cfg.MinIO, cfg.Relay.DurableTTL, logging.Component(logger, "storage"))
		if err != nil {
			logger.Error("storage_setup_failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	default:
		transferer = storage.NewGoFileClient(cfg.GoFile, logging.Component(logger, "storage"))
	}

	reg := prometheus.NewRegistry()
	metrics, err := service.NewMetrics(reg)
	if err != nil {
		logger.Error("metrics_setup_failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		logger.Error("metrics_setup_failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	adapter, err := telegram.New(cfg.Telegram, cfg.Relay, logging.Component(logger, "telegram"))
	if err != nil {
		logger.Error("bot_setup_failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	generator := links.NewLinkGenerator(cfg.Relay.LinkBaseURL, repo, logging.Component(logger, "links"))
	svc := service.NewRelayService(
		adapter.Platform(),
		generator,
		transferer,
		repo,
		cfg.Relay.MaxFileSize,
		cfg.Relay.ResolveTimeout,
		logging.Component(logger, "relay"),
		metrics,
	)
	adapter.Bind(svc)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(logging.Component(logger, "http")))
	app.Use(otelfiber.Middleware())
	app.Use(promMiddleware.Handler())

	handlers.RegisterRoutes(app, db, svc, reg)

	go func() {
		logger.Info("bot_starting", slog.String("backend", cfg.Relay.Backend))
		adapter.Start()
	}()

	go func() {
		addr := ":" + cfg.Port
		logger.Info("http_listening", slog.String("addr", addr))
		if err := app.Listen(addr); err != nil {
			logger.Error("http_server_failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting_down")
	adapter.Stop()
	if err := app.Shutdown(); err != nil {
		logger.Error("http_shutdown_failed", slog.String("error", err.Error()))
	}
}
