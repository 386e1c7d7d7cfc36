// Package travel contains typed clients for the external travel APIs.
package travel

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/voyagekit/mcp-server-travel-bridge/pkg/upstream"
)

// DefaultGeocodingURL is the Nominatim search endpoint
const DefaultGeocodingURL = "https://nominatim.openstreetmap.org/search"

// Coordinates is a resolved geographic position. CountryCode is the ISO 3166-1
// alpha-2 code of the containing country when the geocoder reports one.
type Coordinates struct {
	Latitude    float64
	Longitude   float64
	CountryCode string
}

// Geocoder resolves location names to coordinates via Nominatim, caching
// results in memory since the same locations recur across tool calls.
type Geocoder struct {
	client  *upstream.Client
	baseURL string

	mu    sync.RWMutex
	cache map[string]Coordinates
}

// NewGeocoder creates a geocoder against the default Nominatim endpoint
func NewGeocoder(client *upstream.Client) *Geocoder {
	return NewGeocoderWithURL(client, DefaultGeocodingURL)
}

// NewGeocoderWithURL creates a geocoder against a specific endpoint
func NewGeocoderWithURL(client *upstream.Client, baseURL string) *Geocoder {
	return &Geocoder{
		client:  client,
		baseURL: baseURL,
		cache:   make(map[string]Coordinates),
	}
}

type geocodeResult struct {
	Lat     string `json:"lat"`
	Lon     string `json:"lon"`
	Address struct {
		CountryCode string `json:"country_code"`
	} `json:"address"`
}

// Resolve returns the coordinates for a location name.
func (g *Geocoder) Resolve(ctx context.Context, location string) (Coordinates, error) {
	key := strings.ToLower(strings.TrimSpace(location))

	g.mu.RLock()
	coords, ok := g.cache[key]
	g.mu.RUnlock()
	if ok {
		return coords, nil
	}

	params := url.Values{
		"q":              {location},
		"format":         {"json"},
		"limit":          {"1"},
		"addressdetails": {"1"},
	}

	var results []geocodeResult
	if err := g.client.GetJSON(ctx, g.baseURL, params, &results); err != nil {
		return Coordinates{}, fmt.Errorf("geocoding failed for %q: %w", location, err)
	}

	if len(results) == 0 {
		return Coordinates{}, fmt.Errorf("no coordinates found for location: %s", location)
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lon, lonErr := strconv.ParseFloat(results[0].Lon, 64)
	if latErr != nil || lonErr != nil {
		return Coordinates{}, fmt.Errorf("invalid coordinates for %q: lat=%s lon=%s", location, results[0].Lat, results[0].Lon)
	}

	coords = Coordinates{
		Latitude:    lat,
		Longitude:   lon,
		CountryCode: strings.ToUpper(results[0].Address.CountryCode),
	}

	g.mu.Lock()
	g.cache[key] = coords
	g.mu.Unlock()

	return coords, nil
}
