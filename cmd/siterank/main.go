package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/solgrid-labs/siterank/internal/ahp"
	"github.com/solgrid-labs/siterank/internal/api"
	"github.com/solgrid-labs/siterank/internal/config"
	"github.com/solgrid-labs/siterank/internal/events"
	"github.com/solgrid-labs/siterank/internal/geodata"
	"github.com/solgrid-labs/siterank/internal/metrics"
	"github.com/solgrid-labs/siterank/internal/reporter"
	"github.com/solgrid-labs/siterank/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.Logging)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Scoring core
	registry, err := geodata.DefaultRegistry()
	if err != nil {
		logger.Error("failed to build criteria registry", "error", err)
		os.Exit(1)
	}
	thresholds := ahp.Thresholds{
		Highly:     cfg.Scoring.Thresholds.Highly,
		Moderately: cfg.Scoring.Thresholds.Moderately,
		Marginally: cfg.Scoring.Thresholds.Marginally,
	}
	if err := thresholds.Validate(); err != nil {
		logger.Error("invalid scoring thresholds", "error", err)
		os.Exit(1)
	}
	evaluator := ahp.NewEvaluator(registry, thresholds, cfg.Scoring.CRLimit, logger)

	// Database
	db, err := store.NewPostgresStore(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("connected to database")

	// Events (optional)
	var eventsClient events.Client
	if cfg.Events.URL != "" {
		ec, err := events.NewNATSClient(ctx, cfg.Events.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to event bus, running without events", "error", err)
		} else {
			eventsClient = ec
			defer ec.Close()
			logger.Info("connected to event bus")
		}
	}

	// Geodata source
	var source geodata.ValueSource
	switch cfg.Geodata.Source {
	case "http":
		source = geodata.NewHTTPClient(cfg.Geodata.URL, cfg.Geodata.Token)
	default:
		source = geodata.NewSyntheticSource()
	}
	logger.Info("geodata source configured", "source", cfg.Geodata.Source)

	// Metrics
	m := metrics.New()

	// Stats reporter
	rep := reporter.New(db, eventsClient, cfg.ReporterInterval(), logger)
	rep.Start(ctx)
	defer rep.Stop()
	logger.Info("stats reporter started", "interval", cfg.ReporterInterval())

	// Subscribe to bus events for bookkeeping
	rep.SetupSubscriptions()

	// API server
	router := api.NewRouter(evaluator, source, db, eventsClient, m, cfg.Server.AdminToken, logger)
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: api.NewMetricsRouter(),
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
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
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
