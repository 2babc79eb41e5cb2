// Package main is the entry point for the hpn-llm-router HTTP server.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hpn/hpn-llm-router/internal/config"
	"github.com/hpn/hpn-llm-router/internal/domain"
	"github.com/hpn/hpn-llm-router/internal/handler"
	"github.com/hpn/hpn-llm-router/internal/metrics"
	"github.com/hpn/hpn-llm-router/internal/router"
	"github.com/hpn/hpn-llm-router/internal/security"
	"github.com/hpn/hpn-llm-router/internal/ui"
	"github.com/prometheus/client_golang/prometheus"
)

var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// =========================================================================
	// 1. Load configuration (Singleton)
	// =========================================================================
	cfg, err := config.GetConfigWithPath(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// =========================================================================
	// 2. Setup structured logger with credential redaction
	// =========================================================================
	logger := setupLogger(os.Stdout, cfg.Logging)
	slog.SetDefault(logger)

	logger.Info("configuration loaded",
		slog.String("source", cfg.Source),
		slog.String("host", cfg.Server.Host),
		slog.Int("port", cfg.Server.Port),
		slog.Duration("http_timeout", cfg.HTTPTimeout()),
		slog.Bool("metrics", cfg.Metrics.Enabled),
	)

	// =========================================================================
	// 3. Wire router, handler and HTTP server
	// =========================================================================
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	srv, providers, err := buildServer(cfg, logger)
	if err != nil {
		logger.Error("failed to build server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ui.PrintBanner(version)
	if cfg.Source != "" {
		ui.PrintInfo("Config: " + cfg.Source)
	}
	ui.PrintStartupInfo(cfg.Server.Host, cfg.Server.Port, providers, cfg.Metrics.Enabled)

	go func() {
		logger.Info("server starting", slog.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// =========================================================================
	// 4. Graceful shutdown on SIGTERM/SIGINT
	// =========================================================================
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", slog.String("signal", sig.String()))
	ui.PrintShutdown()

	shutdownTimeout := time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
	ui.PrintGoodbye()
}

// buildServer assembles the dispatch router, the gin engine and the
// http.Server from configuration.
func buildServer(cfg *config.Configuration, logger *slog.Logger) (*http.Server, []domain.ProviderType, error) {
	routerOpts := []router.Option{
		router.WithTimeout(cfg.HTTPTimeout()),
		router.WithLogger(logger),
	}
	for _, provider := range domain.KnownProviders() {
		routerOpts = append(routerOpts, router.WithBaseURL(provider, cfg.Endpoints.Get(provider)))
	}

	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		recorder, err := metrics.NewPrometheusRecorder(registry)
		if err != nil {
			return nil, nil, fmt.Errorf("register metrics: %w", err)
		}
		routerOpts = append(routerOpts, router.WithRecorder(recorder))
		metricsHandler = metrics.Handler(registry)
	}

	r := router.New(routerOpts...)

	dispatchHandler := handler.NewDispatchHandler(r,
		handler.WithLogger(logger),
		handler.WithCredentials(cfg.Credentials.Get),
	)
	engine := handler.NewEngine(dispatchHandler, logger, metricsHandler)

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	return srv, r.Providers(), nil
}

// setupLogger creates a structured logger that redacts credentials.
func setupLogger(w io.Writer, cfg config.LoggingConfig) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLevel(cfg.Level),
	}

	var inner slog.Handler
	if cfg.Format == "text" {
		inner = slog.NewTextHandler(w, opts)
	} else {
		inner = slog.NewJSONHandler(w, opts)
	}

	return slog.New(security.NewRedactedHandler(inner))
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
