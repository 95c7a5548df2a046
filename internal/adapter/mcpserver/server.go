// Package mcpserver exposes the weather tools over the Model Context
// Protocol. The host speaks to the process over stdio; one session is served
// per process.
package mcpserver

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/couchcryptid/weather-mcp-service/internal/domain"
	"github.com/couchcryptid/weather-mcp-service/internal/observability"
)

const (
	serverName    = "weather"
	serverTitle   = "Weather MCP Server"
	serverVersion = "1.0.0"

	toolGetAlerts   = "get_alerts"
	toolGetForecast = "get_forecast"
)

// Server wires the weather provider into MCP tool handlers. Handlers hold no
// mutable state, so concurrent invocations need no synchronization.
type Server struct {
	provider    domain.Provider
	periodLimit int
	metrics     *observability.Metrics
	logger      *slog.Logger
	mcpServer   *mcp.Server
}

// New constructs the MCP server and registers both tools on it.
func New(provider domain.Provider, periodLimit int, metrics *observability.Metrics, logger *slog.Logger) *Server {
	s := &Server{
		provider:    provider,
		periodLimit: periodLimit,
		metrics:     metrics,
		logger:      logger,
	}

	srv := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Title:   serverTitle,
		Version: serverVersion,
	}, &mcp.ServerOptions{
		Instructions: "Provides weather alerts and forecasts from the US National Weather Service.",
	})

	mcp.AddTool(srv, &mcp.Tool{
		Name: toolGetAlerts,
		Description: "Get active weather alerts, warnings, and watches for a US state. " +
			"Returns event type, affected areas, severity, description, and instructions for each alert.",
	}, s.handleGetAlerts)

	mcp.AddTool(srv, &mcp.Tool{
		Name: toolGetForecast,
		Description: "Get the weather forecast for a location. " +
			"Returns the next several forecast periods with temperature, wind, and detailed conditions.",
	}, s.handleGetForecast)

	s.mcpServer = srv
	return s
}

// Run serves the stdio session until ctx is canceled or the host disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("mcp server starting",
		"name", serverName, "version", serverVersion, "transport", "stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
