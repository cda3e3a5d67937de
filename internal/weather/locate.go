package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

const defaultLocateBase = "http://ip-api.com/json"

// locateTimeout bounds location acquisition. Every other fetch relies on
// the transport's own limits.
const locateTimeout = 10 * time.Second

// Location is a resolved position.
type Location struct {
	Lat  float64
	Lon  float64
	Name string
}

// Locate resolves the position to show weather for. Configured coordinates
// win; otherwise the position is estimated from the machine's public IP.
// Errors carry one of three distinct messages: denied, unavailable or
// timed out.
func (c *Client) Locate(ctx context.Context, cfgLat, cfgLon float64) (*Location, error) {
	if cfgLat != 0 || cfgLon != 0 {
		return &Location{Lat: cfgLat, Lon: cfgLon}, nil
	}

	ctx, cancel := context.WithTimeout(ctx, locateTimeout)
	defer cancel()

	loc, err := c.locateByIP(ctx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, errors.New("location request timed out, press R to retry")
		}
		return nil, err
	}
	return loc, nil
}

func (c *Client) locateByIP(ctx context.Context) (*Location, error) {
	base := c.locateBase
	if base == "" {
		base = defaultLocateBase
	}

	req, err := http.NewRequestWithContext(ctx, "GET", base, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, context.DeadlineExceeded
		}
		return nil, errors.New("location unavailable, check your network and retry")
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests {
		return nil, errors.New("location lookup denied by the geolocation service, set latitude/longitude in config.json instead")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("location unavailable, check your network and retry")
	}

	var payload struct {
		Status string  `json:"status"`
		Lat    float64 `json:"lat"`
		Lon    float64 `json:"lon"`
		City   string  `json:"city"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, errors.New("location unavailable, check your network and retry")
	}
	if payload.Status != "success" {
		return nil, errors.New("location lookup denied by the geolocation service, set latitude/longitude in config.json instead")
	}

	return &Location{Lat: payload.Lat, Lon: payload.Lon, Name: payload.City}, nil
}
