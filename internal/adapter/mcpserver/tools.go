package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/couchcryptid/weather-mcp-service/internal/domain"
)

// User-facing messages. Every terminal outcome, success or failure, becomes a
// completed result carrying one of these; a tool call never surfaces a raw
// fault to the host.
const (
	msgAlertsUnavailable   = "Unable to fetch alerts or no alerts found."
	msgNoActiveAlerts      = "No active alerts for this state."
	msgPointsUnavailable   = "Unable to fetch forecast data for this location."
	msgForecastUnavailable = "Unable to fetch detailed forecast."
)

// AlertsInput is the get_alerts parameter block.
type AlertsInput struct {
	State string `json:"state" jsonschema:"two-letter US state code, e.g. CA or NY"`
}

// AlertsOutput is the structured get_alerts result.
type AlertsOutput struct {
	State      string         `json:"state"`
	Alerts     []domain.Alert `json:"alerts"`
	AlertCount int            `json:"alert_count"`
	Message    string         `json:"message"`
}

func (s *Server) handleGetAlerts(ctx context.Context, _ *mcp.CallToolRequest, in AlertsInput) (*mcp.CallToolResult, AlertsOutput, error) {
	start := time.Now()
	state := strings.ToUpper(strings.TrimSpace(in.State))

	alerts, err := s.provider.ActiveAlerts(ctx, state)
	if err != nil {
		s.logger.Warn("get_alerts failed", "state", state, "error", err)
		s.observe(toolGetAlerts, start, "error")
		out := AlertsOutput{State: state, Alerts: []domain.Alert{}, Message: msgAlertsUnavailable}
		return errorResult(msgAlertsUnavailable), out, nil
	}

	s.observe(toolGetAlerts, start, "success")

	if len(alerts) == 0 {
		out := AlertsOutput{State: state, Alerts: []domain.Alert{}, Message: msgNoActiveAlerts}
		return textResult(msgNoActiveAlerts), out, nil
	}

	out := AlertsOutput{
		State:      state,
		Alerts:     alerts,
		AlertCount: len(alerts),
		Message:    fmt.Sprintf("%d active alert(s) for %s.", len(alerts), state),
	}
	return textResult(domain.FormatAlerts(alerts)), out, nil
}

// ForecastInput is the get_forecast parameter block.
type ForecastInput struct {
	Latitude  float64 `json:"latitude" jsonschema:"latitude in decimal degrees, e.g. 37.7749"`
	Longitude float64 `json:"longitude" jsonschema:"longitude in decimal degrees, e.g. -122.4194"`
}

// ForecastOutput is the structured get_forecast result.
type ForecastOutput struct {
	Location        domain.Coordinate       `json:"location"`
	ForecastPeriods []domain.ForecastPeriod `json:"forecast_periods"`
	Summary         string                  `json:"summary"`
}

func (s *Server) handleGetForecast(ctx context.Context, _ *mcp.CallToolRequest, in ForecastInput) (*mcp.CallToolResult, ForecastOutput, error) {
	start := time.Now()
	loc := domain.Coordinate{Latitude: in.Latitude, Longitude: in.Longitude}

	periods, err := s.provider.Forecast(ctx, in.Latitude, in.Longitude)
	if err != nil {
		// The chain's two steps fail with distinct messages so callers can
		// tell a bad coordinate lookup from a broken forecast fetch.
		msg := msgPointsUnavailable
		if errors.Is(err, domain.ErrForecastUnavailable) {
			msg = msgForecastUnavailable
		}
		s.logger.Warn("get_forecast failed",
			"latitude", in.Latitude, "longitude", in.Longitude, "error", err)
		s.observe(toolGetForecast, start, "error")
		out := ForecastOutput{Location: loc, ForecastPeriods: []domain.ForecastPeriod{}, Summary: msg}
		return errorResult(msg), out, nil
	}

	if periods == nil {
		periods = []domain.ForecastPeriod{}
	}
	if len(periods) > s.periodLimit {
		periods = periods[:s.periodLimit]
	}

	s.observe(toolGetForecast, start, "success")

	out := ForecastOutput{
		Location:        loc,
		ForecastPeriods: periods,
		Summary:         fmt.Sprintf("Forecast for %v, %v: next %d period(s).", in.Latitude, in.Longitude, len(periods)),
	}
	return textResult(domain.FormatPeriods(periods)), out, nil
}

func (s *Server) observe(tool string, start time.Time, outcome string) {
	s.metrics.ToolCalls.WithLabelValues(tool, outcome).Inc()
	s.metrics.ToolDuration.WithLabelValues(tool).Observe(time.Since(start).Seconds())
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	r := textResult(text)
	r.IsError = true
	return r
}
