package travel

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/openai/openai-go"

	"github.com/voyagekit/mcp-server-travel-bridge/core"
	"github.com/voyagekit/mcp-server-travel-bridge/pkg/travel"
)

// CountryCodeArgs are the parameters for the get_country_code tool
type CountryCodeArgs struct {
	CountryName string `json:"country_name" jsonschema_description:"Name of the country (e.g. 'france', 'japan', 'brazil', 'australia')"`
}

var countryCodeSchema = GenerateSchema[CountryCodeArgs]()

// CountryCodeTool resolves a country name to its ISO code and detailed
// country information.
type CountryCodeTool struct {
	handle    mcp.Tool
	countries *travel.Countries
}

// NewCountryCodeTool creates the get_country_code tool.
func NewCountryCodeTool(countries *travel.Countries) core.Tool {
	return &CountryCodeTool{
		countries: countries,
		handle: mcp.NewTool(
			"get_country_code",
			mcp.WithDescription("Get the two letter country code and detailed information for a country: official name, capital, demographics, languages, currencies, and time zones. If the name is not a country, do not use this tool."),
			mcp.WithString(
				"country_name",
				mcp.Required(),
				mcp.Description("Name of the country (e.g. 'france', 'japan', 'brazil', 'australia')"),
			),
		),
	}
}

// Handle returns the tool's definition.
func (tool *CountryCodeTool) Handle() mcp.Tool {
	return tool.handle
}

// ToOpenAITool converts the tool to OpenAI format
func (tool *CountryCodeTool) ToOpenAITool() openai.ChatCompletionToolParam {
	return ToOpenAIFunction(tool.handle, countryCodeSchema)
}

// Handler executes the tool.
func (tool *CountryCodeTool) Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := GetStringArg(request, "country_name")
	if err != nil {
		return core.NewErrorResult(fmt.Errorf("%w: %v", core.ErrInvalidArguments, err)), nil
	}

	country, err := tool.countries.ByName(ctx, name)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Unable to fetch information for country: %s", name)), nil
	}

	return core.NewTextResult(country.Format()), nil
}
