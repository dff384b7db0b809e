// README: Open-Meteo daily forecast client used to enrich plan prompts.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const dailyFields = "temperature_2m_max,temperature_2m_min,precipitation_sum,weathercode"

// Day is one forecast day. Values the upstream omitted are nil.
type Day struct {
	Date   string   `json:"date"`
	TMax   *float64 `json:"t_max"`
	TMin   *float64 `json:"t_min"`
	Precip *float64 `json:"precip"`
	Code   *float64 `json:"code"`
}

// Client fetches daily forecasts from the Open-Meteo API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type forecastResponse struct {
	Daily struct {
		Time    []string   `json:"time"`
		TMax    []*float64 `json:"temperature_2m_max"`
		TMin    []*float64 `json:"temperature_2m_min"`
		Precip  []*float64 `json:"precipitation_sum"`
		Weather []*float64 `json:"weathercode"`
	} `json:"daily"`
}

// Daily returns one Day per date in [start, end] (YYYY-MM-DD) at the given coordinates,
// in the location's local timezone.
func (c *Client) Daily(ctx context.Context, lat, lon float64, start, end string) ([]Day, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("daily", dailyFields)
	q.Set("timezone", "auto")
	q.Set("start_date", start)
	q.Set("end_date", end)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/forecast?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("weather: build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather: forecast: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather: forecast failed (%d): %s", resp.StatusCode, string(body))
	}

	var data forecastResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("weather: parse forecast: %w", err)
	}

	d := data.Daily
	days := make([]Day, 0, len(d.Time))
	for i, date := range d.Time {
		days = append(days, Day{
			Date:   date,
			TMax:   at(d.TMax, i),
			TMin:   at(d.TMin, i),
			Precip: at(d.Precip, i),
			Code:   at(d.Weather, i),
		})
	}
	return days, nil
}

// at tolerates series shorter than the time axis.
func at(series []*float64, i int) *float64 {
	if i < len(series) {
		return series[i]
	}
	return nil
}
