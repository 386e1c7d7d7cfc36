package travel

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/openai/openai-go"

	"github.com/voyagekit/mcp-server-travel-bridge/core"
	"github.com/voyagekit/mcp-server-travel-bridge/pkg/travel"
)

// HolidaysArgs are the parameters for the get_public_holidays tool
type HolidaysArgs struct {
	Year        int    `json:"year" jsonschema_description:"Year to get holidays for (e.g. 2024, 2025)"`
	CountryCode string `json:"country_code" jsonschema_description:"Two letter country code (e.g. 'US', 'GB', 'DE', 'JP', 'AU')"`
}

var holidaysSchema = GenerateSchema[HolidaysArgs]()

// HolidaysTool lists the public holidays of a country for a year.
type HolidaysTool struct {
	handle   mcp.Tool
	holidays *travel.Holidays
}

// NewHolidaysTool creates the get_public_holidays tool.
func NewHolidaysTool(holidays *travel.Holidays) core.Tool {
	return &HolidaysTool{
		holidays: holidays,
		handle: mcp.NewTool(
			"get_public_holidays",
			mcp.WithDescription("Get official public holidays for a specific country and year, including local names and dates, for planning travel around national celebrations."),
			mcp.WithNumber(
				"year",
				mcp.Required(),
				mcp.Description("Year to get holidays for (e.g. 2024, 2025)"),
			),
			mcp.WithString(
				"country_code",
				mcp.Required(),
				mcp.Description("Two letter country code (e.g. 'US', 'GB', 'DE', 'JP', 'AU')"),
			),
		),
	}
}

// Handle returns the tool's definition.
func (tool *HolidaysTool) Handle() mcp.Tool {
	return tool.handle
}

// ToOpenAITool converts the tool to OpenAI format
func (tool *HolidaysTool) ToOpenAITool() openai.ChatCompletionToolParam {
	return ToOpenAIFunction(tool.handle, holidaysSchema)
}

// Handler executes the tool.
func (tool *HolidaysTool) Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	year, err := GetIntArg(request, "year")
	if err != nil {
		return core.NewErrorResult(fmt.Errorf("%w: %v", core.ErrInvalidArguments, err)), nil
	}

	countryCode, err := GetStringArg(request, "country_code")
	if err != nil {
		return core.NewErrorResult(fmt.Errorf("%w: %v", core.ErrInvalidArguments, err)), nil
	}

	holidays, err := tool.holidays.Fetch(ctx, year, countryCode)
	if err != nil {
		return core.NewErrorResult(fmt.Errorf("%w: the public holidays API is not working for %s in %d", core.ErrUpstreamAPI, countryCode, year)), nil
	}

	return core.NewTextResult(travel.FormatHolidays(holidays, countryCode, year)), nil
}
