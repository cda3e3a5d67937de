// Package football provides the Premier League panel's data client and
// the relay that keeps the football-data.org credential off the client
// side.
package football

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// ErrDisabled signals that the relay has no API credential configured.
// The panel shows an instructive placeholder instead of an error.
var ErrDisabled = errors.New("football data disabled, set footballApiKey in config.json")

// Team identifies a club in standings and fixtures.
type Team struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Crest     string `json:"crest"`
}

// TableRow is one league-table entry.
type TableRow struct {
	Position       int  `json:"position"`
	Team           Team `json:"team"`
	PlayedGames    int  `json:"playedGames"`
	Won            int  `json:"won"`
	Draw           int  `json:"draw"`
	Lost           int  `json:"lost"`
	GoalDifference int  `json:"goalDifference"`
	Points         int  `json:"points"`
}

// Match is one scheduled fixture.
type Match struct {
	UTCDate     time.Time `json:"utcDate"`
	HomeTeam    Team      `json:"homeTeam"`
	AwayTeam    Team      `json:"awayTeam"`
	Competition struct {
		Name string `json:"name"`
	} `json:"competition"`
}

// Opponent returns the other club and whether teamID plays at home.
func (m Match) Opponent(teamID int) (Team, bool) {
	if m.HomeTeam.ID == teamID {
		return m.AwayTeam, true
	}
	return m.HomeTeam, false
}

// Client fetches standings and fixtures through the relay.
type Client struct {
	relayURL   string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Client against the relay at relayURL.
func NewClient(relayURL string, logger *slog.Logger) *Client {
	return &Client{
		relayURL:   relayURL,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

func (c *Client) get(ctx context.Context, kind string, out any) error {
	url := fmt.Sprintf("%s/football?type=%s", c.relayURL, kind)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode == http.StatusServiceUnavailable {
		return ErrDisabled
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s request: HTTP %d", kind, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Standings fetches the current league table.
func (c *Client) Standings(ctx context.Context) ([]TableRow, error) {
	var payload struct {
		Standings []struct {
			Table []TableRow `json:"table"`
		} `json:"standings"`
	}
	if err := c.get(ctx, "standings", &payload); err != nil {
		return nil, err
	}
	if len(payload.Standings) == 0 {
		return []TableRow{}, nil
	}
	return payload.Standings[0].Table, nil
}

// fixtureLimit caps how many upcoming matches the panel shows.
const fixtureLimit = 5

// Fixtures fetches the next scheduled matches for the followed team.
func (c *Client) Fixtures(ctx context.Context) ([]Match, error) {
	var payload struct {
		Matches []Match `json:"matches"`
	}
	if err := c.get(ctx, "fixtures", &payload); err != nil {
		return nil, err
	}
	if len(payload.Matches) > fixtureLimit {
		payload.Matches = payload.Matches[:fixtureLimit]
	}
	return payload.Matches, nil
}
