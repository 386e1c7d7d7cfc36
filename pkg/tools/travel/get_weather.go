package travel

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/openai/openai-go"

	"github.com/voyagekit/mcp-server-travel-bridge/core"
	"github.com/voyagekit/mcp-server-travel-bridge/pkg/travel"
)

// WeatherArgs are the parameters for the get_weather_by_location tool
type WeatherArgs struct {
	Location string `json:"location" jsonschema_description:"Location name (country, city, etc.) - e.g. 'Paris', 'Tokyo', 'New York'"`
	Days     int    `json:"days,omitempty" jsonschema_description:"Number of days to forecast (1-16, default 7)"`
}

var weatherSchema = GenerateSchema[WeatherArgs]()

// WeatherTool resolves a location name and fetches its forecast.
type WeatherTool struct {
	handle   mcp.Tool
	geocoder *travel.Geocoder
	weather  *travel.Weather
}

// NewWeatherTool creates the get_weather_by_location tool.
func NewWeatherTool(geocoder *travel.Geocoder, weather *travel.Weather) core.Tool {
	return &WeatherTool{
		geocoder: geocoder,
		weather:  weather,
		handle: mcp.NewTool(
			"get_weather_by_location",
			mcp.WithDescription("Get a weather forecast for a location by name, including current conditions, daily temperature ranges, precipitation probability, and wind speeds."),
			mcp.WithString(
				"location",
				mcp.Required(),
				mcp.Description("Location name (country, city, etc.) - e.g. 'Paris', 'Tokyo', 'New York'"),
			),
			mcp.WithNumber(
				"days",
				mcp.Description("Number of days to forecast (1-16, default 7)"),
			),
		),
	}
}

// Handle returns the tool's definition.
func (tool *WeatherTool) Handle() mcp.Tool {
	return tool.handle
}

// ToOpenAITool converts the tool to OpenAI format
func (tool *WeatherTool) ToOpenAITool() openai.ChatCompletionToolParam {
	return ToOpenAIFunction(tool.handle, weatherSchema)
}

// Handler executes the tool.
func (tool *WeatherTool) Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	location, err := GetStringArg(request, "location")
	if err != nil {
		return core.NewErrorResult(fmt.Errorf("%w: %v", core.ErrInvalidArguments, err)), nil
	}

	days := GetIntArgDefault(request, "days", 7)

	coords, err := tool.geocoder.Resolve(ctx, location)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Unable to find coordinates for location: %s", location)), nil
	}

	forecast, err := tool.weather.Fetch(ctx, coords.Latitude, coords.Longitude, days)
	if err != nil {
		return core.NewErrorResult(fmt.Errorf("%w: %v", core.ErrUpstreamAPI, err)), nil
	}

	return core.NewTextResult(forecast.Format()), nil
}
