package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

// GoogleGeocoder handles geocoding through the Google Maps Geocoding API.
// Used instead of Open-Meteo when GOOGLE_MAPS_API_KEY is set.
type GoogleGeocoder struct {
	client *maps.Client
}

// NewGoogleGeocoder creates a GoogleGeocoder with the given API Key.
// Extra client options (e.g. maps.WithBaseURL in tests) are applied after the key.
func NewGoogleGeocoder(apiKey string, opts ...maps.ClientOption) (*GoogleGeocoder, error) {
	opts = append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)
	client, err := maps.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &GoogleGeocoder{client: client}, nil
}

// Geocode returns the first result's coordinates and formatted address.
func (g *GoogleGeocoder) Geocode(ctx context.Context, place string) (Location, error) {
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{
		Address:  place,
		Language: "en",
	})
	if err != nil {
		return Unresolved(place), fmt.Errorf("maps api error: %w", err)
	}
	if len(results) == 0 {
		return Unresolved(place), ErrNoMatch
	}

	res := results[0]
	label := res.FormattedAddress
	if label == "" {
		label = place
	}
	return Location{
		Lat:   ptr(res.Geometry.Location.Lat),
		Lon:   ptr(res.Geometry.Location.Lng),
		Label: label,
	}, nil
}
