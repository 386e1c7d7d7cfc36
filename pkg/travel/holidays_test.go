package travel

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyagekit/mcp-server-travel-bridge/pkg/upstream"
)

func TestHolidaysFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/PublicHolidays/2025/US", r.URL.Path)
		w.Write([]byte(`[
			{"date": "2025-01-01", "name": "New Year's Day", "localName": "New Year's Day"},
			{"date": "2025-07-04", "name": "Independence Day", "localName": "Independence Day"}
		]`))
	}))
	defer server.Close()

	holidays := NewHolidaysWithURL(upstream.New(), server.URL)

	list, err := holidays.Fetch(context.Background(), 2025, "us")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "New Year's Day", list[0].Name)
}

func TestFormatHolidays(t *testing.T) {
	list := []Holiday{
		{Date: "2025-10-03", Name: "German Unity Day", LocalName: "Tag der Deutschen Einheit"},
	}

	text := FormatHolidays(list, "DE", 2025)
	assert.Contains(t, text, "Public holidays in DE for 2025")
	assert.Contains(t, text, "2025-10-03: German Unity Day (Tag der Deutschen Einheit)")
}

func TestFormatHolidaysCapsAtFifteen(t *testing.T) {
	var list []Holiday
	for i := 1; i <= 20; i++ {
		list = append(list, Holiday{
			Date: fmt.Sprintf("2025-01-%02d", i),
			Name: fmt.Sprintf("Holiday %d", i),
		})
	}

	text := FormatHolidays(list, "JP", 2025)
	assert.Contains(t, text, "Holiday 15")
	assert.NotContains(t, text, "Holiday 16")
	assert.Contains(t, text, "... and 5 more holidays")
}

func TestFormatHolidaysEmpty(t *testing.T) {
	text := FormatHolidays(nil, "GB", 2025)
	assert.Equal(t, "No public holidays were found for GB in 2025.", text)
}
