package mcpserver

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/couchcryptid/weather-mcp-service/internal/domain"
	"github.com/couchcryptid/weather-mcp-service/internal/observability"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeProvider struct {
	alerts      []domain.Alert
	alertsErr   error
	alertStates []string

	periods     []domain.ForecastPeriod
	forecastErr error
}

func (f *fakeProvider) ActiveAlerts(_ context.Context, state string) ([]domain.Alert, error) {
	f.alertStates = append(f.alertStates, state)
	if f.alertsErr != nil {
		return nil, f.alertsErr
	}
	return f.alerts, nil
}

func (f *fakeProvider) Forecast(_ context.Context, _, _ float64) ([]domain.ForecastPeriod, error) {
	if f.forecastErr != nil {
		return nil, f.forecastErr
	}
	return f.periods, nil
}

func newTestServer(p domain.Provider) *Server {
	return New(p, domain.ForecastPeriodLimit,
		observability.NewMetricsForTesting(),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content")
	return tc.Text
}

func makePeriods(n int) []domain.ForecastPeriod {
	periods := make([]domain.ForecastPeriod, n)
	for i := range periods {
		periods[i] = domain.ForecastPeriod{
			Name:            fmt.Sprintf("Period %d", i+1),
			Temperature:     60 + i,
			TemperatureUnit: "F",
		}
	}
	return periods
}

func TestGetAlerts_NoActiveAlerts(t *testing.T) {
	s := newTestServer(&fakeProvider{alerts: []domain.Alert{}})

	res, out, err := s.handleGetAlerts(context.Background(), nil, AlertsInput{State: "FL"})
	require.NoError(t, err)

	assert.False(t, res.IsError)
	assert.Equal(t, "No active alerts for this state.", resultText(t, res))
	assert.Equal(t, "FL", out.State)
	assert.NotNil(t, out.Alerts)
	assert.Empty(t, out.Alerts)
	assert.Zero(t, out.AlertCount)
	assert.Equal(t, "No active alerts for this state.", out.Message)
}

func TestGetAlerts_UppercasesState(t *testing.T) {
	p := &fakeProvider{alerts: []domain.Alert{}}
	s := newTestServer(p)

	_, out, err := s.handleGetAlerts(context.Background(), nil, AlertsInput{State: " ca "})
	require.NoError(t, err)

	assert.Equal(t, "CA", out.State)
	assert.Equal(t, []string{"CA"}, p.alertStates, "provider must receive the normalized code")
}

func TestGetAlerts_ReturnsAllInOrder(t *testing.T) {
	alerts := []domain.Alert{
		{Event: "Tornado Warning", Severity: "Extreme"},
		{Event: "Flood Watch", Severity: "Moderate"},
		{Event: "Wind Advisory", Severity: "Minor"},
	}
	s := newTestServer(&fakeProvider{alerts: alerts})

	res, out, err := s.handleGetAlerts(context.Background(), nil, AlertsInput{State: "TX"})
	require.NoError(t, err)

	assert.False(t, res.IsError)
	assert.Equal(t, alerts, out.Alerts)
	assert.Equal(t, 3, out.AlertCount)
	assert.Equal(t, "3 active alert(s) for TX.", out.Message)
	assert.Equal(t, domain.FormatAlerts(alerts), resultText(t, res))
}

func TestGetAlerts_FetchFailure(t *testing.T) {
	s := newTestServer(&fakeProvider{
		alertsErr: fmt.Errorf("%w: boom", domain.ErrAlertsUnavailable),
	})

	res, out, err := s.handleGetAlerts(context.Background(), nil, AlertsInput{State: "TX"})
	require.NoError(t, err, "failures must complete as results, not faults")

	assert.True(t, res.IsError)
	assert.Equal(t, "Unable to fetch alerts or no alerts found.", resultText(t, res))
	assert.Equal(t, "Unable to fetch alerts or no alerts found.", out.Message)
	assert.Empty(t, out.Alerts)
}

func TestGetForecast_CapsPeriods(t *testing.T) {
	s := newTestServer(&fakeProvider{periods: makePeriods(14)})

	_, out, err := s.handleGetForecast(context.Background(), nil, ForecastInput{Latitude: 39.7456, Longitude: -97.0892})
	require.NoError(t, err)

	require.Len(t, out.ForecastPeriods, 5)
	for i, p := range out.ForecastPeriods {
		assert.Equal(t, fmt.Sprintf("Period %d", i+1), p.Name, "order must be preserved")
	}
	assert.Equal(t, "Forecast for 39.7456, -97.0892: next 5 period(s).", out.Summary)
}

func TestGetForecast_FewerThanLimit(t *testing.T) {
	s := newTestServer(&fakeProvider{periods: makePeriods(2)})

	_, out, err := s.handleGetForecast(context.Background(), nil, ForecastInput{Latitude: 1, Longitude: 2})
	require.NoError(t, err)
	assert.Len(t, out.ForecastPeriods, 2)
}

func TestGetForecast_EchoesLocation(t *testing.T) {
	s := newTestServer(&fakeProvider{periods: makePeriods(1)})

	_, out, err := s.handleGetForecast(context.Background(), nil, ForecastInput{Latitude: 37.7749, Longitude: -122.4194})
	require.NoError(t, err)

	assert.Equal(t, domain.Coordinate{Latitude: 37.7749, Longitude: -122.4194}, out.Location)
}

func TestGetForecast_ErrorPathsDistinct(t *testing.T) {
	pointsFail := newTestServer(&fakeProvider{
		forecastErr: fmt.Errorf("%w: status 404", domain.ErrGridPointUnavailable),
	})
	detailFail := newTestServer(&fakeProvider{
		forecastErr: fmt.Errorf("%w: status 500", domain.ErrForecastUnavailable),
	})

	in := ForecastInput{Latitude: 37.7749, Longitude: -122.4194}

	res1, out1, err := pointsFail.handleGetForecast(context.Background(), nil, in)
	require.NoError(t, err)
	res2, out2, err := detailFail.handleGetForecast(context.Background(), nil, in)
	require.NoError(t, err)

	assert.True(t, res1.IsError)
	assert.True(t, res2.IsError)
	assert.Equal(t, "Unable to fetch forecast data for this location.", out1.Summary)
	assert.Equal(t, "Unable to fetch detailed forecast.", out2.Summary)
	assert.NotEqual(t, out1.Summary, out2.Summary)
}

func TestGetForecast_MissingForecastURLIsWellFormed(t *testing.T) {
	s := newTestServer(&fakeProvider{
		forecastErr: fmt.Errorf("%w: points response missing forecast URL", domain.ErrGridPointUnavailable),
	})

	res, out, err := s.handleGetForecast(context.Background(), nil, ForecastInput{Latitude: 37.7749, Longitude: -122.4194})
	require.NoError(t, err)

	assert.True(t, res.IsError)
	assert.Equal(t, "Unable to fetch forecast data for this location.", resultText(t, res))
	assert.NotNil(t, out.ForecastPeriods)
}

func TestToolHandlers_Idempotent(t *testing.T) {
	s := newTestServer(&fakeProvider{
		alerts:  []domain.Alert{{Event: "Heat Advisory"}},
		periods: makePeriods(3),
	})

	_, alertsFirst, err := s.handleGetAlerts(context.Background(), nil, AlertsInput{State: "AZ"})
	require.NoError(t, err)
	_, alertsSecond, err := s.handleGetAlerts(context.Background(), nil, AlertsInput{State: "AZ"})
	require.NoError(t, err)
	assert.Equal(t, alertsFirst, alertsSecond)

	in := ForecastInput{Latitude: 33.4484, Longitude: -112.074}
	_, forecastFirst, err := s.handleGetForecast(context.Background(), nil, in)
	require.NoError(t, err)
	_, forecastSecond, err := s.handleGetForecast(context.Background(), nil, in)
	require.NoError(t, err)
	assert.Equal(t, forecastFirst, forecastSecond)
}
