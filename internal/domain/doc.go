// Package domain models the weather data served to MCP tool callers, sourced
// from the National Weather Service (NWS) public API at https://api.weather.gov.
//
// # Alerts
//
// Active alerts for a state come from GET /alerts/active/area/{STATE} as a
// GeoJSON feature collection. Each feature's properties carry the event name,
// affected area description, severity, a long-form description, and optional
// instructions. Any of these may be absent upstream; the adapter substitutes
// fixed fallback text so callers always see a complete record.
//
// # Forecasts
//
// The NWS forecast lookup is a two-step chain: GET /points/{lat},{lon} resolves
// the coordinate to a forecast grid and returns the grid's forecast URL in
// properties.forecast; fetching that URL yields properties.periods, an ordered
// list of named forecast windows ("Tonight", "Monday", ...). Periods are served
// to callers in upstream order, capped at [ForecastPeriodLimit] by default.
//
// All types here are immutable value types scoped to a single tool invocation;
// nothing is persisted or shared across calls.
package domain
