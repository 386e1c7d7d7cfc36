package travel

import (
	"context"
	"fmt"
	"strings"

	"github.com/voyagekit/mcp-server-travel-bridge/pkg/upstream"
)

// DefaultHolidaysURL is the Nager.Date API base
const DefaultHolidaysURL = "https://date.nager.at/api/v3"

const maxListedHolidays = 15

// Holidays fetches public holidays from the Nager.Date API
type Holidays struct {
	client  *upstream.Client
	baseURL string
}

// NewHolidays creates a holidays client against the default Nager.Date endpoint
func NewHolidays(client *upstream.Client) *Holidays {
	return NewHolidaysWithURL(client, DefaultHolidaysURL)
}

// NewHolidaysWithURL creates a holidays client against a specific endpoint
func NewHolidaysWithURL(client *upstream.Client, baseURL string) *Holidays {
	return &Holidays{client: client, baseURL: baseURL}
}

// Holiday is a single public holiday
type Holiday struct {
	Date      string `json:"date"`
	Name      string `json:"name"`
	LocalName string `json:"localName"`
}

// Fetch returns the public holidays for a country and year.
func (h *Holidays) Fetch(ctx context.Context, year int, countryCode string) ([]Holiday, error) {
	countryCode = strings.ToUpper(strings.TrimSpace(countryCode))

	var holidays []Holiday
	endpoint := fmt.Sprintf("%s/PublicHolidays/%d/%s", h.baseURL, year, countryCode)
	if err := h.client.GetJSON(ctx, endpoint, nil, &holidays); err != nil {
		return nil, fmt.Errorf("holiday fetch failed for %s/%d: %w", countryCode, year, err)
	}

	return holidays, nil
}

// FormatHolidays renders a holiday list, capped at 15 entries.
func FormatHolidays(holidays []Holiday, countryCode string, year int) string {
	if len(holidays) == 0 {
		return fmt.Sprintf("No public holidays were found for %s in %d.", countryCode, year)
	}

	var out strings.Builder
	out.WriteString(fmt.Sprintf("Summarise this for me. Do not modify or add information. Public holidays in %s for %d:\n\n", countryCode, year))

	limit := len(holidays)
	if limit > maxListedHolidays {
		limit = maxListedHolidays
	}

	for _, holiday := range holidays[:limit] {
		out.WriteString(fmt.Sprintf("%s: %s", holiday.Date, holiday.Name))
		if holiday.LocalName != "" && holiday.LocalName != holiday.Name {
			out.WriteString(fmt.Sprintf(" (%s)", holiday.LocalName))
		}
		out.WriteString("\n")
	}

	if len(holidays) > maxListedHolidays {
		out.WriteString(fmt.Sprintf("\n... and %d more holidays", len(holidays)-maxListedHolidays))
	}

	return out.String()
}
