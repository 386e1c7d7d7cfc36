package travel

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/openai/openai-go"

	"github.com/voyagekit/mcp-server-travel-bridge/core"
	"github.com/voyagekit/mcp-server-travel-bridge/pkg/travel"
)

// SearchPOIArgs are the parameters for the search_poi tool
type SearchPOIArgs struct {
	Location string `json:"location" jsonschema_description:"Location to search in (city, country, etc.) - e.g. 'Paris', 'Tokyo'"`
	POIType  string `json:"poi_type,omitempty" jsonschema_description:"Type of POI to search for, e.g. 'restaurants', 'hotels', 'attractions', 'museums'"`
	Limit    int    `json:"limit,omitempty" jsonschema_description:"Maximum number of results (default 10, max 50)"`
	Radius   int    `json:"radius,omitempty" jsonschema_description:"Search radius in meters (default 10000, max 50000)"`
}

var searchPOISchema = GenerateSchema[SearchPOIArgs]()

// SearchPOITool finds points of interest around a location through
// OpenStreetMap's Overpass API.
type SearchPOITool struct {
	handle   mcp.Tool
	geocoder *travel.Geocoder
	overpass *travel.Overpass
}

// NewSearchPOITool creates the search_poi tool.
func NewSearchPOITool(geocoder *travel.Geocoder, overpass *travel.Overpass) core.Tool {
	return &SearchPOITool{
		geocoder: geocoder,
		overpass: overpass,
		handle: mcp.NewTool(
			"search_poi",
			mcp.WithDescription(fmt.Sprintf("Search for Points of Interest (POI) in a location using OpenStreetMap: contact details, opening hours, and addresses for travel planning. Available types: %s.", strings.Join(travel.AvailablePOITypes(), ", "))),
			mcp.WithString(
				"location",
				mcp.Required(),
				mcp.Description("Location to search in (city, country, etc.) - e.g. 'Paris', 'Tokyo'"),
			),
			mcp.WithString(
				"poi_type",
				mcp.Description("Type of POI to search for - options include 'restaurants', 'hotels', 'attractions', 'museums', 'shopping', 'banks'"),
			),
			mcp.WithNumber(
				"limit",
				mcp.Description("Maximum number of results (default 10, max 50)"),
			),
			mcp.WithNumber(
				"radius",
				mcp.Description("Search radius in meters (default 10000, max 50000)"),
			),
		),
	}
}

// Handle returns the tool's definition.
func (tool *SearchPOITool) Handle() mcp.Tool {
	return tool.handle
}

// ToOpenAITool converts the tool to OpenAI format
func (tool *SearchPOITool) ToOpenAITool() openai.ChatCompletionToolParam {
	return ToOpenAIFunction(tool.handle, searchPOISchema)
}

// Handler executes the tool.
func (tool *SearchPOITool) Handler(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	location, err := GetStringArg(request, "location")
	if err != nil {
		return core.NewErrorResult(fmt.Errorf("%w: %v", core.ErrInvalidArguments, err)), nil
	}

	poiType := GetStringArgDefault(request, "poi_type", "attractions")
	limit := GetIntArgDefault(request, "limit", 10)
	radius := GetIntArgDefault(request, "radius", 10000)

	// Reject bad POI types before spending a geocoding call
	if _, err := travel.BuildOverpassQuery(poiType, 0, 0, radius, limit); err != nil {
		return core.NewErrorResult(fmt.Errorf("%w: %v", core.ErrInvalidArguments, err)), nil
	}

	coords, err := tool.geocoder.Resolve(ctx, location)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Unable to find coordinates for location: %s", location)), nil
	}

	pois, err := tool.overpass.Search(ctx, poiType, coords.Latitude, coords.Longitude, radius, limit)
	if err != nil {
		return core.NewErrorResult(fmt.Errorf("%w: unable to fetch POI data for %s", core.ErrUpstreamAPI, location)), nil
	}

	return core.NewTextResult(travel.FormatPOIs(pois, poiType, location, limit)), nil
}
