package travel

import (
	"github.com/voyagekit/mcp-server-travel-bridge/core"
	"github.com/voyagekit/mcp-server-travel-bridge/pkg/travel"
	"github.com/voyagekit/mcp-server-travel-bridge/pkg/upstream"
)

// Clients bundles the upstream API clients the travel tools depend on.
type Clients struct {
	Geocoder  *travel.Geocoder
	Weather   *travel.Weather
	Overpass  *travel.Overpass
	Countries *travel.Countries
	Holidays  *travel.Holidays
	Exchange  *travel.Exchange
}

// NewClients creates the default upstream client set.
func NewClients(client *upstream.Client) *Clients {
	return &Clients{
		Geocoder:  travel.NewGeocoder(client),
		Weather:   travel.NewWeather(client),
		Overpass:  travel.NewOverpass(client),
		Countries: travel.NewCountries(client),
		Holidays:  travel.NewHolidays(client),
		Exchange:  travel.NewExchange(client),
	}
}

// RegisterTravelTools registers the six travel tools on a registry. The
// declared set is fixed: clients of /tools rely on these exact names.
func RegisterTravelTools(registry *core.Registry, clients *Clients) error {
	tools := []core.Tool{
		NewConvertCurrencyTool(clients.Exchange),
		NewWeatherTool(clients.Geocoder, clients.Weather),
		NewHolidaysTool(clients.Holidays),
		NewCountryCodeTool(clients.Countries),
		NewSearchPOITool(clients.Geocoder, clients.Overpass),
		NewTravelSummaryTool(clients.Geocoder, clients.Weather, clients.Overpass, clients.Countries, clients.Holidays),
	}

	for _, tool := range tools {
		if err := registry.Register(tool); err != nil {
			return err
		}
	}

	return nil
}
