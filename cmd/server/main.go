package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/couchcryptid/weather-mcp-service/internal/adapter/httpadapter"
	"github.com/couchcryptid/weather-mcp-service/internal/adapter/mcpserver"
	"github.com/couchcryptid/weather-mcp-service/internal/adapter/nws"
	"github.com/couchcryptid/weather-mcp-service/internal/config"
	"github.com/couchcryptid/weather-mcp-service/internal/observability"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	client := nws.NewClient(cfg.NWSBaseURL, cfg.NWSUserAgent, cfg.NWSTimeout, metrics, logger)
	srv := mcpserver.New(client, cfg.ForecastPeriods, metrics, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Optional health/metrics listener. The MCP session itself runs over
	// stdio and opens no port.
	var debug *httpadapter.Server
	if cfg.MetricsAddr != "" {
		debug = httpadapter.NewServer(cfg.MetricsAddr, logger)
		go func() {
			if err := debug.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("http server error", "error", err)
			}
		}()
	}

	if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("mcp server error", "error", err)
	}

	logger.Info("shutting down")

	if debug != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := debug.Shutdown(shutdownCtx); err != nil {
			logger.Error("http server shutdown error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
