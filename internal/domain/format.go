package domain

import (
	"fmt"
	"strings"
)

// blockSeparator joins per-record text blocks in rendered output.
const blockSeparator = "\n---\n"

// FormatAlert renders one alert as a multi-line text block.
func FormatAlert(a Alert) string {
	return fmt.Sprintf("Event: %s\nArea: %s\nSeverity: %s\nDescription: %s\nInstructions: %s",
		a.Event, a.Area, a.Severity, a.Description, a.Instructions)
}

// FormatAlerts renders alerts as text blocks separated by "---" lines.
func FormatAlerts(alerts []Alert) string {
	blocks := make([]string, len(alerts))
	for i, a := range alerts {
		blocks[i] = FormatAlert(a)
	}
	return strings.Join(blocks, blockSeparator)
}

// FormatPeriod renders one forecast period as a multi-line text block.
func FormatPeriod(p ForecastPeriod) string {
	return fmt.Sprintf("%s:\nTemperature: %d°%s\nWind: %s %s\nForecast: %s",
		p.Name, p.Temperature, p.TemperatureUnit, p.WindSpeed, p.WindDirection, p.DetailedForecast)
}

// FormatPeriods renders periods as text blocks separated by "---" lines.
func FormatPeriods(periods []ForecastPeriod) string {
	blocks := make([]string, len(periods))
	for i, p := range periods {
		blocks[i] = FormatPeriod(p)
	}
	return strings.Join(blocks, blockSeparator)
}
