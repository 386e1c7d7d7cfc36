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

func TestExchangeConvert(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest/USD", r.URL.Path)
		w.Write([]byte(`{"base": "USD", "rates": {"MYR": 4.7, "EUR": 0.92}}`))
	}))
	defer server.Close()

	exchange := NewExchangeWithURL(upstream.New(), server.URL)

	conversion, err := exchange.Convert(context.Background(), 4000, "usd", "myr")
	require.NoError(t, err)
	assert.InDelta(t, 18800.0, conversion.Converted, 0.01)
	assert.InDelta(t, 4.7, conversion.Rate, 0.0001)
	assert.Equal(t, "USD", conversion.From)
	assert.Equal(t, "MYR", conversion.To)
}

func TestExchangeConvertUnknownCurrency(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"base": "USD", "rates": {"EUR": 0.92}}`))
	}))
	defer server.Close()

	exchange := NewExchangeWithURL(upstream.New(), server.URL)

	_, err := exchange.Convert(context.Background(), 100, "USD", "XXX")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "currency XXX not found")
}

func TestConversionFormat(t *testing.T) {
	conversion := &Conversion{
		Amount:    4000,
		From:      "USD",
		To:        "MYR",
		Rate:      4.7,
		Converted: 18800,
	}

	text := conversion.Format()
	assert.Contains(t, text, "4000 USD = 18800.00 MYR")
	assert.Contains(t, text, "1 USD = 4.7000 MYR")
}
