package nws

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/weather-mcp-service/internal/domain"
	"github.com/couchcryptid/weather-mcp-service/internal/observability"
)

// Endpoint labels for metrics and error reporting.
const (
	endpointAlerts   = "alerts"
	endpointPoints   = "points"
	endpointForecast = "forecast"
)

// Fallback values substituted when an alert feature omits a property.
const (
	defaultEvent        = "Unknown"
	defaultArea         = "Unknown"
	defaultSeverity     = "Unknown"
	defaultDescription  = "No description available"
	defaultInstructions = "No specific instructions provided"
)

// Client implements domain.Provider against the National Weather Service API.
// Each request is independent: no retries, no upstream response caching.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	clock      clockwork.Clock
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates an NWS API client. The timeout bounds each individual
// HTTP call; the forecast chain may block for up to twice that.
func NewClient(baseURL, userAgent string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		clock:   clockwork.NewRealClock(),
		metrics: metrics,
		logger:  logger,
	}
}

// ActiveAlerts returns all active alerts for a two-letter US state code.
func (c *Client) ActiveAlerts(ctx context.Context, state string) ([]domain.Alert, error) {
	u := fmt.Sprintf("%s/alerts/active/area/%s", c.baseURL, strings.ToUpper(state))

	var payload alertsResponse
	if err := c.get(ctx, u, endpointAlerts, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAlertsUnavailable, err)
	}

	// A well-formed alerts payload always carries a features key, even when
	// empty. Its absence means upstream returned an error document.
	if payload.Features == nil {
		return nil, fmt.Errorf("%w: response missing features", domain.ErrAlertsUnavailable)
	}

	alerts := make([]domain.Alert, 0, len(*payload.Features))
	for _, f := range *payload.Features {
		alerts = append(alerts, f.Properties.toAlert())
	}
	return alerts, nil
}

// Forecast resolves a coordinate to its forecast grid, then fetches the
// grid's periods. The two steps are sequential; the second depends on the
// forecast URL returned by the first.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) ([]domain.ForecastPeriod, error) {
	pointsURL := fmt.Sprintf("%s/points/%v,%v", c.baseURL, lat, lon)

	var points pointsResponse
	if err := c.get(ctx, pointsURL, endpointPoints, &points); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrGridPointUnavailable, err)
	}

	forecastURL := points.Properties.Forecast
	if forecastURL == "" {
		return nil, fmt.Errorf("%w: points response missing forecast URL", domain.ErrGridPointUnavailable)
	}

	var forecast forecastResponse
	if err := c.get(ctx, forecastURL, endpointForecast, &forecast); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrForecastUnavailable, err)
	}

	periods := make([]domain.ForecastPeriod, 0, len(forecast.Properties.Periods))
	for _, p := range forecast.Properties.Periods {
		periods = append(periods, domain.ForecastPeriod{
			Name:             p.Name,
			Temperature:      p.Temperature,
			TemperatureUnit:  p.TemperatureUnit,
			WindSpeed:        p.WindSpeed,
			WindDirection:    p.WindDirection,
			DetailedForecast: p.DetailedForecast,
		})
	}
	return periods, nil
}

// get performs one GET against the NWS API, decoding the JSON body into v and
// recording metrics for the outcome.
func (c *Client) get(ctx context.Context, fullURL, endpoint string, v any) error {
	start := c.clock.Now()
	apiErr := c.fetch(ctx, fullURL, endpoint, v)
	c.metrics.UpstreamDuration.WithLabelValues(endpoint).Observe(c.clock.Since(start).Seconds())

	if apiErr != nil {
		c.metrics.UpstreamRequests.WithLabelValues(endpoint, string(apiErr.Kind)).Inc()
		c.logger.Warn("nws request failed", "endpoint", endpoint, "url", fullURL, "kind", apiErr.Kind, "error", apiErr)
		return apiErr
	}

	c.metrics.UpstreamRequests.WithLabelValues(endpoint, "success").Inc()
	return nil
}

func (c *Client) fetch(ctx context.Context, fullURL, endpoint string, v any) *APIError {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return &APIError{Endpoint: endpoint, Kind: KindTransport, Err: err}
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/geo+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &APIError{Endpoint: endpoint, Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &APIError{
			Endpoint:   endpoint,
			Kind:       KindStatus,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body))),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return &APIError{Endpoint: endpoint, Kind: KindDecode, Err: err}
	}
	return nil
}

// ErrorKind classifies an APIError for callers that care which layer failed.
type ErrorKind string

const (
	KindTransport ErrorKind = "transport_error"
	KindStatus    ErrorKind = "http_error"
	KindDecode    ErrorKind = "decode_error"
)

// APIError describes one failed NWS request. The tool layer collapses all
// kinds into a single user-facing message; the kind feeds metrics and logs.
type APIError struct {
	Endpoint   string
	Kind       ErrorKind
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("nws %s request: %v", e.Endpoint, e.Err)
}

func (e *APIError) Unwrap() error { return e.Err }

// NWS API response types.

type alertsResponse struct {
	// Pointer distinguishes a missing features key from an empty list.
	Features *[]alertFeature `json:"features"`
}

type alertFeature struct {
	Properties alertProperties `json:"properties"`
}

type alertProperties struct {
	Event       string `json:"event"`
	AreaDesc    string `json:"areaDesc"`
	Severity    string `json:"severity"`
	Description string `json:"description"`
	Instruction string `json:"instruction"`
}

func (p alertProperties) toAlert() domain.Alert {
	return domain.Alert{
		Event:        orDefault(p.Event, defaultEvent),
		Area:         orDefault(p.AreaDesc, defaultArea),
		Severity:     orDefault(p.Severity, defaultSeverity),
		Description:  orDefault(p.Description, defaultDescription),
		Instructions: orDefault(p.Instruction, defaultInstructions),
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

type pointsResponse struct {
	Properties struct {
		Forecast string `json:"forecast"`
	} `json:"properties"`
}

type forecastResponse struct {
	Properties struct {
		Periods []periodEntry `json:"periods"`
	} `json:"properties"`
}

type periodEntry struct {
	Name             string `json:"name"`
	Temperature      int    `json:"temperature"`
	TemperatureUnit  string `json:"temperatureUnit"`
	WindSpeed        string `json:"windSpeed"`
	WindDirection    string `json:"windDirection"`
	DetailedForecast string `json:"detailedForecast"`
}
