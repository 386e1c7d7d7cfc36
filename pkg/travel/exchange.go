package travel

import (
	"context"
	"fmt"
	"strings"

	"github.com/voyagekit/mcp-server-travel-bridge/pkg/upstream"
)

// DefaultExchangeURL is the exchangerate-api.com base
const DefaultExchangeURL = "https://api.exchangerate-api.com/v4"

// Exchange fetches currency rates from exchangerate-api.com
type Exchange struct {
	client  *upstream.Client
	baseURL string
}

// NewExchange creates an exchange client against the default endpoint
func NewExchange(client *upstream.Client) *Exchange {
	return NewExchangeWithURL(client, DefaultExchangeURL)
}

// NewExchangeWithURL creates an exchange client against a specific endpoint
func NewExchangeWithURL(client *upstream.Client, baseURL string) *Exchange {
	return &Exchange{client: client, baseURL: baseURL}
}

type rateTable struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// Conversion is the result of a currency conversion
type Conversion struct {
	Amount    float64
	From      string
	To        string
	Rate      float64
	Converted float64
}

// Convert converts an amount between two currencies at the current rate.
func (e *Exchange) Convert(ctx context.Context, amount float64, from, to string) (*Conversion, error) {
	from = strings.ToUpper(strings.TrimSpace(from))
	to = strings.ToUpper(strings.TrimSpace(to))

	var table rateTable
	endpoint := e.baseURL + "/latest/" + from
	if err := e.client.GetJSON(ctx, endpoint, nil, &table); err != nil {
		return nil, fmt.Errorf("rate fetch failed for %s: %w", from, err)
	}

	rate, ok := table.Rates[to]
	if !ok {
		return nil, fmt.Errorf("currency %s not found in exchange rates for %s", to, from)
	}

	return &Conversion{
		Amount:    amount,
		From:      from,
		To:        to,
		Rate:      rate,
		Converted: amount * rate,
	}, nil
}

// Format renders a conversion as the summary block handed back to the model.
func (c *Conversion) Format() string {
	return fmt.Sprintf(
		"Summarise this for me. Do not modify or add information. Currency Conversion:\n%g %s = %.2f %s\n(Exchange rate: 1 %s = %.4f %s)",
		c.Amount, c.From, c.Converted, c.To, c.From, c.Rate,
	)
}
