package travel

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/voyagekit/mcp-server-travel-bridge/pkg/upstream"
)

// DefaultCountriesURL is the REST Countries API base
const DefaultCountriesURL = "https://restcountries.com/v3.1"

// Countries fetches country details from the REST Countries API
type Countries struct {
	client  *upstream.Client
	baseURL string
}

// NewCountries creates a countries client against the default endpoint
func NewCountries(client *upstream.Client) *Countries {
	return NewCountriesWithURL(client, DefaultCountriesURL)
}

// NewCountriesWithURL creates a countries client against a specific endpoint
func NewCountriesWithURL(client *upstream.Client, baseURL string) *Countries {
	return &Countries{client: client, baseURL: baseURL}
}

// Country is the subset of the REST Countries payload the tools use
type Country struct {
	Name struct {
		Common   string `json:"common"`
		Official string `json:"official"`
	} `json:"name"`
	CCA2       string            `json:"cca2"`
	Capital    []string          `json:"capital"`
	Region     string            `json:"region"`
	Subregion  string            `json:"subregion"`
	Population int64             `json:"population"`
	Languages  map[string]string `json:"languages"`
	Currencies map[string]struct {
		Name   string `json:"name"`
		Symbol string `json:"symbol"`
	} `json:"currencies"`
	LatLng    []float64 `json:"latlng"`
	Timezones []string  `json:"timezones"`
	Flag      string    `json:"flag"`
}

// ByName looks a country up by its common or official name.
func (c *Countries) ByName(ctx context.Context, name string) (*Country, error) {
	endpoint := c.baseURL + "/name/" + url.PathEscape(strings.TrimSpace(name))
	return c.fetchOne(ctx, endpoint, name)
}

// ByCode looks a country up by its alpha-2 or alpha-3 code.
func (c *Countries) ByCode(ctx context.Context, code string) (*Country, error) {
	endpoint := c.baseURL + "/alpha/" + url.PathEscape(strings.TrimSpace(code))
	return c.fetchOne(ctx, endpoint, code)
}

func (c *Countries) fetchOne(ctx context.Context, endpoint, query string) (*Country, error) {
	var countries []Country
	if err := c.client.GetJSON(ctx, endpoint, nil, &countries); err != nil {
		return nil, fmt.Errorf("country lookup failed for %q: %w", query, err)
	}

	if len(countries) == 0 {
		return nil, fmt.Errorf("no country found for %q", query)
	}

	return &countries[0], nil
}

// Format renders country details as the summary block handed back to the model.
func (c *Country) Format() string {
	var out strings.Builder
	out.WriteString(fmt.Sprintf("Summarise this for me. Do not modify or add information. Country Information: %s\n\n", c.Name.Common))

	out.WriteString(fmt.Sprintf("Country Code: %s\n", c.CCA2))
	out.WriteString(fmt.Sprintf("Official Name: %s\n", c.Name.Official))

	capital := "Unknown"
	if len(c.Capital) > 0 {
		capital = c.Capital[0]
	}
	out.WriteString(fmt.Sprintf("Capital: %s\n", capital))

	out.WriteString(fmt.Sprintf("Region: %s", c.Region))
	if c.Subregion != "" {
		out.WriteString(fmt.Sprintf(" (%s)", c.Subregion))
	}
	out.WriteString(fmt.Sprintf("\nPopulation: %d\n", c.Population))

	if len(c.Languages) > 0 {
		out.WriteString(fmt.Sprintf("Languages: %s\n", strings.Join(sortedValues(c.Languages), ", ")))
	}

	if len(c.Currencies) > 0 {
		codes := make([]string, 0, len(c.Currencies))
		for code := range c.Currencies {
			codes = append(codes, code)
		}
		sort.Strings(codes)

		currencies := make([]string, 0, len(codes))
		for _, code := range codes {
			info := c.Currencies[code]
			entry := fmt.Sprintf("%s (%s)", info.Name, code)
			if info.Symbol != "" {
				entry += " " + info.Symbol
			}
			currencies = append(currencies, entry)
		}
		out.WriteString(fmt.Sprintf("Currencies: %s\n", strings.Join(currencies, ", ")))
	}

	if len(c.LatLng) >= 2 {
		out.WriteString(fmt.Sprintf("Coordinates: %g, %g\n", c.LatLng[0], c.LatLng[1]))
	}

	if len(c.Timezones) > 0 {
		out.WriteString(fmt.Sprintf("Time Zones: %s\n", strings.Join(c.Timezones, ", ")))
	}

	if c.Flag != "" {
		out.WriteString(fmt.Sprintf("Flag: %s\n", c.Flag))
	}

	return out.String()
}

func sortedValues(m map[string]string) []string {
	values := make([]string, 0, len(m))
	for _, v := range m {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
