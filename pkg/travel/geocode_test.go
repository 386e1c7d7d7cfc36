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

func TestGeocoderResolve(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "Phoenix, Arizona", r.URL.Query().Get("q"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		assert.Equal(t, "1", r.URL.Query().Get("addressdetails"))
		w.Write([]byte(`[{"lat": "33.4484", "lon": "-112.074", "address": {"country_code": "us"}}]`))
	}))
	defer server.Close()

	geocoder := NewGeocoderWithURL(upstream.New(), server.URL)

	coords, err := geocoder.Resolve(context.Background(), "Phoenix, Arizona")
	require.NoError(t, err)
	assert.InDelta(t, 33.4484, coords.Latitude, 0.0001)
	assert.InDelta(t, -112.074, coords.Longitude, 0.0001)
	assert.Equal(t, "US", coords.CountryCode)
}

func TestGeocoderCachesResults(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(`[{"lat": "48.8566", "lon": "2.3522", "address": {"country_code": "fr"}}]`))
	}))
	defer server.Close()

	geocoder := NewGeocoderWithURL(upstream.New(), server.URL)

	_, err := geocoder.Resolve(context.Background(), "Paris")
	require.NoError(t, err)

	// Case changes hit the same cache entry
	coords, err := geocoder.Resolve(context.Background(), "PARIS")
	require.NoError(t, err)

	assert.Equal(t, 1, requests)
	assert.Equal(t, "FR", coords.CountryCode)
}

func TestGeocoderNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	geocoder := NewGeocoderWithURL(upstream.New(), server.URL)

	_, err := geocoder.Resolve(context.Background(), "Nowhereville")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no coordinates found")
}

func TestGeocoderInvalidCoordinates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat": "not-a-number", "lon": "2.3522"}]`))
	}))
	defer server.Close()

	geocoder := NewGeocoderWithURL(upstream.New(), server.URL)

	_, err := geocoder.Resolve(context.Background(), "Paris")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid coordinates")
}
