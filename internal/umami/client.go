// Package umami fetches per-site analytics from the Umami HTTP API.
// The overlay is entirely optional: without an API key the client is
// disabled and never populates anything.
package umami

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/nikbrunner/newtab/internal/model"
)

// Figure is one metric value with its prior-window comparison.
type Figure struct {
	Value int `json:"value"`
	Prev  int `json:"prev"`
}

// Stats holds the metrics for one site over one window.
// Absent metrics decode to zero values.
type Stats struct {
	Visitors  Figure `json:"visitors"`
	Pageviews Figure `json:"pageviews"`
	Visits    Figure `json:"visits"`
}

// Value returns the current figure for the metric.
func (s Stats) Value(m model.Metric) int {
	switch m {
	case model.MetricPageviews:
		return s.Pageviews.Value
	case model.MetricVisits:
		return s.Visits.Value
	default:
		return s.Visitors.Value
	}
}

// Prev returns the prior-window figure for the metric.
func (s Stats) Prev(m model.Metric) int {
	switch m {
	case model.MetricPageviews:
		return s.Pageviews.Prev
	case model.MetricVisits:
		return s.Visits.Prev
	default:
		return s.Visitors.Prev
	}
}

// Client talks to the Umami stats API.
type Client struct {
	apiBase    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Client. An empty apiKey yields a disabled client.
func NewClient(apiBase, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		apiBase:    apiBase,
		apiKey:     apiKey,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

// Stats fetches the metrics for one site over [startAt, endAt] (unix ms).
func (c *Client) Stats(ctx context.Context, siteID string, startAt, endAt int64) (*Stats, error) {
	url := fmt.Sprintf("%s/websites/%s/stats?startAt=%d&endAt=%d", c.apiBase, siteID, startAt, endAt)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-umami-api-key", c.apiKey)

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
		return nil, fmt.Errorf("stats request for %s: HTTP %d", siteID, resp.StatusCode)
	}

	var stats Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &stats, nil
}

// fetchConcurrency bounds the number of in-flight stats requests.
const fetchConcurrency = 5

// FetchAll fetches stats for every site id over the period ending now.
// All requests are independent with all-settle semantics: a failure is
// logged and skipped, never failing the batch. The returned map holds only
// the sites that succeeded.
func (c *Client) FetchAll(ctx context.Context, siteIDs []string, period model.Period) map[string]Stats {
	if !c.Enabled() || len(siteIDs) == 0 {
		return map[string]Stats{}
	}

	endAt := time.Now().UnixMilli()
	startAt := time.Now().Add(-period.Duration()).UnixMilli()

	results := make(map[string]Stats, len(siteIDs))
	var mu sync.Mutex

	jobs := make(chan string, len(siteIDs))
	var wg sync.WaitGroup

	for w := 0; w < fetchConcurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for siteID := range jobs {
				stats, err := c.Stats(ctx, siteID, startAt, endAt)
				if err != nil {
					c.logger.Warn("stats fetch failed", "site", siteID, "error", err)
					continue
				}
				mu.Lock()
				results[siteID] = *stats
				mu.Unlock()
			}
		}()
	}

	for _, id := range siteIDs {
		jobs <- id
	}
	close(jobs)

	wg.Wait()
	return results
}
