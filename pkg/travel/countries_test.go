package travel

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagekit/mcp-server-travel-bridge/pkg/upstream"
)

const franceBody = `[{
	"name": {"common": "France", "official": "French Republic"},
	"cca2": "FR",
	"capital": ["Paris"],
	"region": "Europe",
	"subregion": "Western Europe",
	"population": 67391582,
	"languages": {"fra": "French"},
	"currencies": {"EUR": {"name": "Euro", "symbol": "€"}},
	"latlng": [46.0, 2.0],
	"timezones": ["UTC+01:00"],
	"flag": "🇫🇷"
}]`

func TestCountriesByName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/name/france", r.URL.Path)
		w.Write([]byte(franceBody))
	}))
	defer server.Close()

	countries := NewCountriesWithURL(upstream.New(), server.URL)

	country, err := countries.ByName(context.Background(), "france")
	require.NoError(t, err)
	assert.Equal(t, "FR", country.CCA2)
	assert.Equal(t, "France", country.Name.Common)
}

func TestCountriesByCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/alpha/FR", r.URL.Path)
		w.Write([]byte(franceBody))
	}))
	defer server.Close()

	countries := NewCountriesWithURL(upstream.New(), server.URL)

	country, err := countries.ByCode(context.Background(), "FR")
	require.NoError(t, err)
	assert.Equal(t, "French Republic", country.Name.Official)
}

func TestCountriesNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	countries := NewCountriesWithURL(upstream.New(), server.URL)

	_, err := countries.ByName(context.Background(), "atlantis")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no country found")
}

func TestCountryFormat(t *testing.T) {
	country := &Country{}
	country.Name.Common = "France"
	country.Name.Official = "French Republic"
	country.CCA2 = "FR"
	country.Capital = []string{"Paris"}
	country.Region = "Europe"
	country.Subregion = "Western Europe"
	country.Population = 67391582
	country.Languages = map[string]string{"fra": "French"}
	country.Timezones = []string{"UTC+01:00"}

	text := country.Format()
	assert.Contains(t, text, "Country Information: France")
	assert.Contains(t, text, "Country Code: FR")
	assert.Contains(t, text, "Capital: Paris")
	assert.Contains(t, text, "Region: Europe (Western Europe)")
	assert.Contains(t, text, "Languages: French")
}
