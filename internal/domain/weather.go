package domain

import (
	"context"
	"errors"
)

// ForecastPeriodLimit is the default number of forecast periods returned per
// lookup. The NWS forecast endpoint returns up to 14 (a week of day/night
// pairs); callers rarely want more than the next few.
const ForecastPeriodLimit = 5

// Alert is one active weather alert, warning, or watch for a state.
type Alert struct {
	Event        string `json:"event"`
	Area         string `json:"area"`
	Severity     string `json:"severity"`
	Description  string `json:"description"`
	Instructions string `json:"instructions"`
}

// ForecastPeriod is one named forecast window, e.g. "Tonight" or "Monday".
type ForecastPeriod struct {
	Name             string `json:"name"`
	Temperature      int    `json:"temperature"`
	TemperatureUnit  string `json:"temperature_unit"`
	WindSpeed        string `json:"wind_speed"`
	WindDirection    string `json:"wind_direction"`
	DetailedForecast string `json:"detailed_forecast"`
}

// Coordinate is a caller-supplied WGS-84 latitude/longitude pair, echoed back
// unchanged in forecast results. No range validation is applied; out-of-range
// values surface as upstream lookup failures.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Sentinel errors wrapped by the NWS adapter so the tool layer can pick the
// right user-facing message without inspecting HTTP details. The forecast
// chain's two steps fail with distinct sentinels.
var (
	ErrAlertsUnavailable    = errors.New("alerts unavailable")
	ErrGridPointUnavailable = errors.New("forecast grid point unavailable")
	ErrForecastUnavailable  = errors.New("detailed forecast unavailable")
)

// Provider fetches weather data for the tool surface.
type Provider interface {
	// ActiveAlerts returns all active alerts for a two-letter US state code,
	// in upstream order. An empty slice means no active alerts.
	ActiveAlerts(ctx context.Context, state string) ([]Alert, error)

	// Forecast returns the forecast periods for a coordinate, in upstream
	// order and uncapped; the caller applies any period limit.
	Forecast(ctx context.Context, lat, lon float64) ([]ForecastPeriod, error)
}
