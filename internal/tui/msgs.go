package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/newtab/internal/catalog"
	"github.com/nikbrunner/newtab/internal/football"
	"github.com/nikbrunner/newtab/internal/model"
	"github.com/nikbrunner/newtab/internal/umami"
	"github.com/nikbrunner/newtab/internal/weather"
)

// catalogMsg carries the loaded link catalog.
type catalogMsg struct {
	links []model.Link
	err   error
}

// statsMsg carries one analytics fetch cycle. gen identifies the cycle: a
// result tagged with a superseded generation is discarded instead of
// overwriting a newer cache.
type statsMsg struct {
	gen   int
	stats map[string]umami.Stats
}

// weatherMsg carries the forecast panel's data.
type weatherMsg struct {
	forecast *weather.Forecast
	place    string
	err      error
}

// footballMsg carries the football panel's data.
type footballMsg struct {
	table    []football.TableRow
	fixtures []football.Match
	err      error
}

func (a App) loadCatalogCmd() tea.Cmd {
	path := a.cfg.LinksFile
	return func() tea.Msg {
		links, err := catalog.LoadFile(path)
		return catalogMsg{links: links, err: err}
	}
}

func (a App) fetchStatsCmd(gen int, siteIDs []string, period model.Period) tea.Cmd {
	client := a.stats
	return func() tea.Msg {
		return statsMsg{gen: gen, stats: client.FetchAll(context.Background(), siteIDs, period)}
	}
}

func (a App) fetchWeatherCmd() tea.Cmd {
	client := a.weather
	lat, lon := a.cfg.Latitude, a.cfg.Longitude
	return func() tea.Msg {
		ctx := context.Background()

		loc, err := client.Locate(ctx, lat, lon)
		if err != nil {
			return weatherMsg{err: err}
		}

		forecast, err := client.Forecast(ctx, loc.Lat, loc.Lon)
		if err != nil {
			return weatherMsg{err: err}
		}

		place := loc.Name
		if place == "" {
			geoCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			place = client.PlaceName(geoCtx, loc.Lat, loc.Lon)
		}

		return weatherMsg{forecast: forecast, place: place}
	}
}

func (a App) fetchFootballCmd() tea.Cmd {
	client := a.football
	return func() tea.Msg {
		ctx := context.Background()

		table, err := client.Standings(ctx)
		if err != nil {
			return footballMsg{err: err}
		}

		fixtures, err := client.Fixtures(ctx)
		if err != nil {
			return footballMsg{err: err}
		}

		return footballMsg{table: table, fixtures: fixtures}
	}
}
