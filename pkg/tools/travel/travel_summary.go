package travel

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/openai/openai-go"

	"github.com/voyagekit/mcp-server-travel-bridge/core"
	"github.com/voyagekit/mcp-server-travel-bridge/pkg/travel"
)

// TravelSummaryArgs are the parameters for the get_travel_summary tool
type TravelSummaryArgs struct {
	Location string `json:"location" jsonschema_description:"Destination to summarise - a city or country name, e.g. 'Phoenix, Arizona' or 'Japan'"`
	Country  string `json:"country,omitempty" jsonschema_description:"Country of the destination when the location is a city, e.g. 'United States'"`
}

var travelSummarySchema = GenerateSchema[TravelSummaryArgs]()

const (
	summaryForecastDays = 5
	summaryPOILimit     = 5
)

// TravelSummaryTool composes country information, a short weather forecast,
// popular attractions, and upcoming public holidays into a single overview.
type TravelSummaryTool struct {
	handle    mcp.Tool
	geocoder  *travel.Geocoder
	weather   *travel.Weather
	overpass  *travel.Overpass
	countries *travel.Countries
	holidays  *travel.Holidays
}

// NewTravelSummaryTool creates the get_travel_summary tool.
func NewTravelSummaryTool(
	geocoder *travel.Geocoder,
	weather *travel.Weather,
	overpass *travel.Overpass,
	countries *travel.Countries,
	holidays *travel.Holidays,
) core.Tool {
	return &TravelSummaryTool{
		geocoder:  geocoder,
		weather:   weather,
		overpass:  overpass,
		countries: countries,
		holidays:  holidays,
		handle: mcp.NewTool(
			"get_travel_summary",
			mcp.WithDescription("Get a comprehensive travel summary for a destination: country information, current weather forecast, popular attractions, and upcoming public holidays. Perfect for initial travel research."),
			mcp.WithString(
				"location",
				mcp.Required(),
				mcp.Description("Destination to summarise - a city or country name, e.g. 'Phoenix, Arizona' or 'Japan'"),
			),
			mcp.WithString(
				"country",
				mcp.Description("Country of the destination when the location is a city, e.g. 'United States'"),
			),
		),
	}
}

// Handle returns the tool's definition.
func (tool *TravelSummaryTool) Handle() mcp.Tool {
	return tool.handle
}

// ToOpenAITool converts the tool to OpenAI format
func (tool *TravelSummaryTool) ToOpenAITool() openai.ChatCompletionToolParam {
	return ToOpenAIFunction(tool.handle, travelSummarySchema)
}

// Handler executes the tool.
func (tool *TravelSummaryTool) Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	location, err := GetStringArg(request, "location")
	if err != nil {
		return core.NewErrorResult(fmt.Errorf("%w: %v", core.ErrInvalidArguments, err)), nil
	}

	countryName := GetStringArgDefault(request, "country", "")

	coords, err := tool.geocoder.Resolve(ctx, location)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Unable to find coordinates for location: %s", location)), nil
	}

	var out strings.Builder
	out.WriteString(fmt.Sprintf("Summarise this for me. Do not modify or add information. Travel Summary for %s:\n%s\n\n", location, strings.Repeat("=", 50)))

	countryCode := coords.CountryCode
	if countryName != "" {
		if country, err := tool.countries.ByName(ctx, countryName); err == nil {
			out.WriteString(country.Format() + "\n\n")
			countryCode = country.CCA2
		} else {
			log.Warn("Skipping country section", "country", countryName, "error", err)
		}
	} else if countryCode != "" {
		if country, err := tool.countries.ByCode(ctx, countryCode); err == nil {
			out.WriteString(country.Format() + "\n\n")
		} else {
			log.Warn("Skipping country section", "code", countryCode, "error", err)
		}
	}

	if forecast, err := tool.weather.Fetch(ctx, coords.Latitude, coords.Longitude, summaryForecastDays); err == nil {
		out.WriteString(forecast.Format() + "\n\n")
	} else {
		out.WriteString(fmt.Sprintf("Unable to fetch weather data for %s.\n\n", location))
	}

	if pois, err := tool.overpass.Search(ctx, "attractions", coords.Latitude, coords.Longitude, 10000, summaryPOILimit); err == nil {
		out.WriteString(travel.FormatPOIs(pois, "attractions", location, summaryPOILimit) + "\n\n")
	} else {
		out.WriteString(fmt.Sprintf("Unable to fetch POI data for %s.\n\n", location))
	}

	// Holidays are best-effort: a failed lookup never fails the summary
	if countryCode != "" {
		year := time.Now().Year()
		if holidays, err := tool.holidays.Fetch(ctx, year, countryCode); err == nil {
			out.WriteString(travel.FormatHolidays(holidays, countryCode, year) + "\n\n")
		} else {
			log.Warn("Skipping holidays section", "code", countryCode, "error", err)
		}
	}

	return core.NewTextResult(out.String()), nil
}
