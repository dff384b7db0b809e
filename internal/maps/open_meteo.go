package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// OpenMeteoGeocoder uses the keyless Open-Meteo geocoding API.
type OpenMeteoGeocoder struct {
	baseURL    string
	httpClient *http.Client
}

// NewOpenMeteoGeocoder creates a geocoder against baseURL (e.g. https://geocoding-api.open-meteo.com).
func NewOpenMeteoGeocoder(baseURL string, timeout time.Duration) *OpenMeteoGeocoder {
	return &OpenMeteoGeocoder{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type openMeteoSearch struct {
	Results []struct {
		Name      string  `json:"name"`
		Admin1    string  `json:"admin1"`
		Country   string  `json:"country"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

// Geocode returns the best match for place, labelled "name, admin1, country".
func (g *OpenMeteoGeocoder) Geocode(ctx context.Context, place string) (Location, error) {
	q := url.Values{}
	q.Set("name", place)
	q.Set("count", "1")
	q.Set("language", "en")
	q.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/v1/search?"+q.Encode(), nil)
	if err != nil {
		return Unresolved(place), fmt.Errorf("maps: build geocode request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return Unresolved(place), fmt.Errorf("maps: geocode: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return Unresolved(place), fmt.Errorf("maps: geocode failed (%d): %s", resp.StatusCode, string(body))
	}

	var data openMeteoSearch
	if err := json.Unmarshal(body, &data); err != nil {
		return Unresolved(place), fmt.Errorf("maps: parse geocode response: %w", err)
	}
	if len(data.Results) == 0 {
		return Unresolved(place), ErrNoMatch
	}

	res := data.Results[0]
	label := joinLabel(res.Name, res.Admin1, res.Country)
	if label == "" {
		label = place
	}
	return Location{Lat: ptr(res.Latitude), Lon: ptr(res.Longitude), Label: label}, nil
}
