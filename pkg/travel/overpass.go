package travel

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/voyagekit/mcp-server-travel-bridge/pkg/upstream"
)

// DefaultOverpassURL is the Overpass API interpreter endpoint
const DefaultOverpassURL = "https://overpass-api.de/api/interpreter"

const (
	// MaxPOIResults caps the number of POIs a single query may return
	MaxPOIResults = 50
	// MaxPOIRadius caps the search radius in meters
	MaxPOIRadius = 50000
)

// poiFilters maps each supported POI type to its Overpass node filter.
var poiFilters = map[string]string{
	// Food & drink
	"restaurants": `["amenity"="restaurant"]`,
	"fast_food":   `["amenity"="fast_food"]`,
	"cafes":       `["amenity"="cafe"]`,
	"bars":        `["amenity"~"^(bar|pub)$"]`,
	"nightlife":   `["amenity"~"^(bar|pub|nightclub|biergarten)$"]`,

	// Attractions & tourism
	"attractions": `["tourism"~"^(attraction|museum|monument|artwork|viewpoint)$"]`,
	"museums":     `["tourism"="museum"]`,
	"monuments":   `["historic"~"^(monument|memorial)$"]`,
	"parks":       `["leisure"~"^(park|garden)$"]`,
	"viewpoints":  `["tourism"="viewpoint"]`,
	"religious":   `["amenity"="place_of_worship"]`,
	"historic":    `["historic"]`,

	// Accommodation
	"hotels":        `["tourism"="hotel"]`,
	"hostels":       `["tourism"="hostel"]`,
	"accommodation": `["tourism"~"^(hotel|hostel|guest_house|apartment)$"]`,

	// Shopping
	"shopping":     `["shop"]`,
	"malls":        `["shop"="mall"]`,
	"markets":      `["amenity"="marketplace"]`,
	"supermarkets": `["shop"="supermarket"]`,

	// Transport
	"transport": `["public_transport"~"^(station|stop_position)$"]`,
	"stations":  `["railway"="station"]`,
	"airports":  `["aeroway"="aerodrome"]`,

	// Services
	"healthcare":   `["amenity"~"^(hospital|clinic|pharmacy)$"]`,
	"banks":        `["amenity"~"^(bank|atm)$"]`,
	"gas_stations": `["amenity"="fuel"]`,
}

// allPOIFilters are the filters combined by the "all_pois" type.
var allPOIFilters = []string{
	`["amenity"~"^(restaurant|cafe|bar|hotel)$"]`,
	`["tourism"~"^(attraction|museum|monument)$"]`,
	`["shop"~"^(mall|supermarket)$"]`,
	`["leisure"~"^(park|garden)$"]`,
}

// AvailablePOITypes returns the supported POI types, sorted.
func AvailablePOITypes() []string {
	types := make([]string, 0, len(poiFilters)+1)
	for name := range poiFilters {
		types = append(types, name)
	}
	types = append(types, "all_pois")
	sort.Strings(types)
	return types
}

// BuildOverpassQuery constructs the Overpass QL query for a POI type around a
// coordinate. Unsupported types return an error listing the valid ones.
func BuildOverpassQuery(poiType string, lat, lon float64, radius, limit int) (string, error) {
	if radius <= 0 {
		radius = 10000
	}
	if radius > MaxPOIRadius {
		radius = MaxPOIRadius
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > MaxPOIResults {
		limit = MaxPOIResults
	}

	around := fmt.Sprintf("(around:%d,%g,%g)", radius, lat, lon)

	if poiType == "all_pois" {
		var nodes []string
		for _, filter := range allPOIFilters {
			nodes = append(nodes, "node"+filter+around+";")
		}
		return fmt.Sprintf("[out:json];(%s);out %d;", strings.Join(nodes, ""), limit), nil
	}

	filter, ok := poiFilters[poiType]
	if !ok {
		return "", fmt.Errorf("unknown POI type: %s. Available: %s", poiType, strings.Join(AvailablePOITypes(), ", "))
	}

	return fmt.Sprintf("[out:json];(node%s%s;);out %d;", filter, around, limit), nil
}

// Overpass queries OpenStreetMap through the Overpass API
type Overpass struct {
	client  *upstream.Client
	baseURL string
}

// NewOverpass creates an Overpass client against the default endpoint
func NewOverpass(client *upstream.Client) *Overpass {
	return NewOverpassWithURL(client, DefaultOverpassURL)
}

// NewOverpassWithURL creates an Overpass client against a specific endpoint
func NewOverpassWithURL(client *upstream.Client, baseURL string) *Overpass {
	return &Overpass{client: client, baseURL: baseURL}
}

// POI is a single point of interest node
type POI struct {
	Type string            `json:"type"`
	Tags map[string]string `json:"tags"`
}

type overpassResponse struct {
	Elements []POI `json:"elements"`
}

// Search runs a POI query around a coordinate.
func (o *Overpass) Search(ctx context.Context, poiType string, lat, lon float64, radius, limit int) ([]POI, error) {
	query, err := BuildOverpassQuery(poiType, lat, lon, radius, limit)
	if err != nil {
		return nil, err
	}

	params := url.Values{"data": {query}}

	var response overpassResponse
	if err := o.client.GetJSON(ctx, o.baseURL, params, &response); err != nil {
		return nil, fmt.Errorf("overpass query failed: %w", err)
	}

	return response.Elements, nil
}

// FormatPOIs renders a POI list, keeping only named node elements and the
// tags worth surfacing in a travel summary.
func FormatPOIs(pois []POI, poiType, location string, limit int) string {
	if limit <= 0 {
		limit = 10
	}

	var out strings.Builder
	out.WriteString(fmt.Sprintf("Summarise this for me. Do not modify or add information. Points of Interest (%s) in %s:\n\n", poiType, location))

	count := 0
	for _, poi := range pois {
		if count >= limit {
			break
		}
		if poi.Type != "node" || len(poi.Tags) == 0 {
			continue
		}

		name := poi.Tags["name"]
		if name == "" {
			name = poi.Tags["tourism"]
		}
		if name == "" {
			name = "Unnamed POI"
		}

		out.WriteString(name + "\n")

		if website := poi.Tags["website"]; website != "" {
			out.WriteString("   Website: " + website + "\n")
		}
		if phone := poi.Tags["phone"]; phone != "" {
			out.WriteString("   Phone: " + phone + "\n")
		}
		if hours := poi.Tags["opening_hours"]; hours != "" {
			out.WriteString("   Hours: " + hours + "\n")
		}
		if cuisine := poi.Tags["cuisine"]; cuisine != "" {
			out.WriteString("   Cuisine: " + cuisine + "\n")
		}
		if street := poi.Tags["addr:street"]; street != "" {
			out.WriteString(fmt.Sprintf("   Address: %s %s\n", poi.Tags["addr:housenumber"], street))
		}
		if brand := poi.Tags["brand"]; brand != "" {
			out.WriteString("   Brand: " + brand + "\n")
		}
		if stars := poi.Tags["stars"]; stars != "" {
			out.WriteString("   Rating: " + stars + " stars\n")
		}

		out.WriteString("\n")
		count++
	}

	if count == 0 {
		return fmt.Sprintf("No %s POIs found in %s.", poiType, location)
	}

	if len(pois) > limit {
		out.WriteString(fmt.Sprintf("... and %d more POIs", len(pois)-limit))
	}

	return out.String()
}
