package travel

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/voyagekit/mcp-server-travel-bridge/pkg/upstream"
)

// DefaultWeatherURL is the Open-Meteo API base
const DefaultWeatherURL = "https://api.open-meteo.com/v1"

const maxForecastDays = 16

// Weather fetches forecasts from Open-Meteo
type Weather struct {
	client  *upstream.Client
	baseURL string
}

// NewWeather creates a weather client against the default Open-Meteo endpoint
func NewWeather(client *upstream.Client) *Weather {
	return NewWeatherWithURL(client, DefaultWeatherURL)
}

// NewWeatherWithURL creates a weather client against a specific endpoint
func NewWeatherWithURL(client *upstream.Client, baseURL string) *Weather {
	return &Weather{client: client, baseURL: baseURL}
}

// Forecast is the subset of the Open-Meteo response the tools render
type Forecast struct {
	CurrentWeather struct {
		Time        string  `json:"time"`
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
	Daily struct {
		Time                        []string  `json:"time"`
		TemperatureMax              []float64 `json:"temperature_2m_max"`
		TemperatureMin              []float64 `json:"temperature_2m_min"`
		PrecipitationProbabilityMax []int     `json:"precipitation_probability_max"`
		WindSpeedMax                []float64 `json:"windspeed_10m_max"`
	} `json:"daily"`
}

// Fetch returns the forecast for a coordinate pair. days is clamped to the
// Open-Meteo maximum of 16.
func (w *Weather) Fetch(ctx context.Context, latitude, longitude float64, days int) (*Forecast, error) {
	if days < 1 {
		days = 1
	}
	if days > maxForecastDays {
		days = maxForecastDays
	}

	params := url.Values{
		"latitude":        {strconv.FormatFloat(latitude, 'f', -1, 64)},
		"longitude":       {strconv.FormatFloat(longitude, 'f', -1, 64)},
		"current_weather": {"true"},
		"daily":           {"temperature_2m_max,temperature_2m_min,precipitation_probability_max,windspeed_10m_max"},
		"timezone":        {"auto"},
		"forecast_days":   {strconv.Itoa(days)},
	}

	var forecast Forecast
	if err := w.client.GetJSON(ctx, w.baseURL+"/forecast", params, &forecast); err != nil {
		return nil, fmt.Errorf("weather fetch failed: %w", err)
	}

	return &forecast, nil
}

// Format renders a forecast as the summary block handed back to the model.
func (f *Forecast) Format() string {
	var out strings.Builder
	out.WriteString("Summarise this for me. Do not modify or add information. Weather Forecast:\n\n")

	if f.CurrentWeather.Time != "" {
		out.WriteString(fmt.Sprintf("Current Weather (%s):\n", f.CurrentWeather.Time))
		out.WriteString(fmt.Sprintf("   Temperature: %.1f°C\n", f.CurrentWeather.Temperature))
		out.WriteString(fmt.Sprintf("   Wind Speed: %.1f km/h\n", f.CurrentWeather.WindSpeed))
		out.WriteString(fmt.Sprintf("   Weather Code: %d\n\n", f.CurrentWeather.WeatherCode))
	}

	if len(f.Daily.Time) > 0 {
		out.WriteString("Daily Forecast:\n")

		limit := len(f.Daily.Time)
		if limit > 7 {
			limit = 7
		}

		for i := 0; i < limit; i++ {
			line := fmt.Sprintf("   %s: ", f.Daily.Time[i])
			if i < len(f.Daily.TemperatureMin) && i < len(f.Daily.TemperatureMax) {
				line += fmt.Sprintf("%.1f°C - %.1f°C", f.Daily.TemperatureMin[i], f.Daily.TemperatureMax[i])
			}
			if i < len(f.Daily.PrecipitationProbabilityMax) {
				line += fmt.Sprintf(", %d%% rain chance", f.Daily.PrecipitationProbabilityMax[i])
			}
			out.WriteString(line + "\n")
		}
	}

	return out.String()
}
