// README: Geocoding; resolves a free-text place to coordinates and a canonical label.
package maps

import (
	"context"
	"errors"
	"strings"
)

// ErrNoMatch means the geocoder answered but found nothing for the query.
var ErrNoMatch = errors.New("maps: no geocoding match")

// Location is a geocoding result. Lat/Lon are nil when the place could not be resolved,
// in which case Label is the caller's input unchanged.
type Location struct {
	Lat   *float64 `json:"lat"`
	Lon   *float64 `json:"lon"`
	Label string   `json:"canonical_location"`
}

// HasCoordinates reports whether both coordinates are known.
func (l Location) HasCoordinates() bool {
	return l.Lat != nil && l.Lon != nil
}

// Unresolved is the fallback result for place.
func Unresolved(place string) Location {
	return Location{Label: place}
}

// Geocoder resolves a place name.
type Geocoder interface {
	Geocode(ctx context.Context, place string) (Location, error)
}

// joinLabel joins the non-empty parts with ", ".
func joinLabel(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

func ptr(f float64) *float64 { return &f }
