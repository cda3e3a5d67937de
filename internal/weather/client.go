// Package weather provides the forecast and geocoding clients for the
// weather panel. Both providers are keyless; failures degrade the panel
// only and never the rest of the dashboard.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultForecastBase = "https://api.open-meteo.com/v1"
	defaultGeocodeBase  = "https://nominatim.openstreetmap.org"
)

// Hourly holds the parallel hourly forecast arrays.
type Hourly struct {
	Time                     []string  `json:"time"`
	Temperature              []float64 `json:"temperature_2m"`
	Weathercode              []int     `json:"weathercode"`
	PrecipitationProbability []int     `json:"precipitation_probability"`
}

// Daily holds the parallel daily forecast arrays.
type Daily struct {
	Time           []string  `json:"time"`
	Weathercode    []int     `json:"weathercode"`
	TemperatureMax []float64 `json:"temperature_2m_max"`
	TemperatureMin []float64 `json:"temperature_2m_min"`
}

// Forecast is the Open-Meteo forecast response.
type Forecast struct {
	Hourly Hourly `json:"hourly"`
	Daily  Daily  `json:"daily"`
}

// CurrentIndex finds the hourly slot matching now's local hour. Returns 0
// when no slot matches.
func (f *Forecast) CurrentIndex(now time.Time) int {
	for i, ts := range f.Hourly.Time {
		t, err := time.ParseInLocation("2006-01-02T15:04", ts, now.Location())
		if err != nil {
			continue
		}
		if t.Hour() == now.Hour() && t.YearDay() == now.YearDay() && t.Year() == now.Year() {
			return i
		}
	}
	return 0
}

// Client talks to Open-Meteo and Nominatim.
type Client struct {
	forecastBase string
	geocodeBase  string
	locateBase   string
	httpClient   *http.Client
	logger       *slog.Logger
}

// NewClient creates a Client against the public endpoints.
func NewClient(logger *slog.Logger) *Client {
	return &Client{
		forecastBase: defaultForecastBase,
		geocodeBase:  defaultGeocodeBase,
		httpClient:   &http.Client{},
		logger:       logger,
	}
}

// Forecast fetches the hourly and 7-day forecast for the coordinates.
func (c *Client) Forecast(ctx context.Context, lat, lon float64) (*Forecast, error) {
	url := fmt.Sprintf("%s/forecast?latitude=%f&longitude=%f"+
		"&hourly=temperature_2m,weathercode,precipitation_probability"+
		"&daily=weathercode,temperature_2m_max,temperature_2m_min"+
		"&timezone=auto&forecast_days=7",
		c.forecastBase, lat, lon)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Open-Meteo HTTP %d", resp.StatusCode)
	}

	var forecast Forecast
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &forecast, nil
}

// PlaceName reverse-geocodes the coordinates to a settlement name. Any
// failure yields an empty string; the panel then shows a generic label.
func (c *Client) PlaceName(ctx context.Context, lat, lon float64) string {
	url := fmt.Sprintf("%s/reverse?lat=%f&lon=%f&format=json", c.geocodeBase, lat, lon)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("Accept-Language", "en")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("reverse geocode failed", "error", err)
		return ""
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	var payload struct {
		Address struct {
			City    string `json:"city"`
			Town    string `json:"town"`
			Village string `json:"village"`
			County  string `json:"county"`
		} `json:"address"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return ""
	}

	for _, name := range []string{payload.Address.City, payload.Address.Town, payload.Address.Village, payload.Address.County} {
		if name != "" {
			return name
		}
	}
	return ""
}
