package tui

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/newtab/internal/football"
	"github.com/nikbrunner/newtab/internal/model"
	"github.com/nikbrunner/newtab/internal/reset"
)

// resetWindows is the modal's selection order.
var resetWindows = []reset.Window{reset.Hour, reset.Day, reset.Week, reset.All}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case catalogMsg:
		if msg.err != nil {
			a.catalogErr = "Could not load links, run `newtab refresh` or check linksFile in config.json"
			return a, nil
		}
		a.catalog = msg.links
		a.catalogErr = ""
		a.rebuildRows()
		return a, a.refetchStats()

	case statsMsg:
		// A response from a superseded fetch cycle is stale: the user has
		// already changed the period or forced a refresh. Drop it.
		if msg.gen != a.statsGen {
			return a, nil
		}
		a.statsCache = msg.stats
		a.statsPending = false
		return a, nil

	case weatherMsg:
		if msg.err != nil {
			a.weatherErr = msg.err.Error()
			return a, nil
		}
		a.forecast = msg.forecast
		a.place = msg.place
		a.weatherErr = ""
		return a, nil

	case footballMsg:
		if msg.err != nil {
			if errors.Is(msg.err, football.ErrDisabled) {
				a.footballDisabled = true
				a.footballErr = ""
			} else {
				a.footballErr = fmt.Sprintf("Football data unavailable (%v)", msg.err)
			}
			return a, nil
		}
		a.table = msg.table
		a.fixtures = msg.fixtures
		a.footballErr = ""
		a.footballDisabled = false
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.status = ""

	if a.searching {
		return a.handleSearchKey(msg)
	}
	if a.resetting {
		return a.handleResetKey(msg)
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.cursor = a.firstLinkRow()
			if a.cursor < 0 {
				a.cursor = 0
			}
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		a.moveCursor(1)

	case key.Matches(msg, a.keys.Up):
		a.moveCursor(-1)

	case key.Matches(msg, a.keys.Bottom):
		if idx := a.lastLinkRow(); idx >= 0 {
			a.cursor = idx
		}

	case key.Matches(msg, a.keys.Open):
		return a.openSelected()

	case key.Matches(msg, a.keys.YankURL):
		if row, ok := a.selectedRow(); ok {
			if err := clipboard.WriteAll(row.Link.URL); err != nil {
				a.status = "Could not copy URL to clipboard"
			} else {
				a.status = "Copied " + row.Link.URL
			}
		}

	case key.Matches(msg, a.keys.Search):
		a.searching = true
		a.searchInput.Focus()
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Sort):
		a.sortMode = a.sortMode.Toggle()
		if err := a.prefs.SetSortMode(a.sortMode); err != nil {
			a.status = "Could not save sort mode"
		}
		a.rebuildRows()

	case key.Matches(msg, a.keys.Metric):
		a.metric = a.metric.Next()
		if err := a.prefs.SetMetric(a.metric); err != nil {
			a.status = "Could not save metric"
		}

	case key.Matches(msg, a.keys.Period):
		a.period = a.period.Next()
		if err := a.prefs.SetPeriod(a.period); err != nil {
			a.status = "Could not save period"
		}
		return a, a.refetchStats()

	case key.Matches(msg, a.keys.SortBar):
		a.sortBar = !a.sortBar
		if err := a.prefs.SetSortBarVisible(a.sortBar); err != nil {
			a.status = "Could not save sort bar visibility"
		}

	case key.Matches(msg, a.keys.Reset):
		a.resetting = true
		a.resetIdx = 0

	case key.Matches(msg, a.keys.Refresh):
		a.weatherErr = ""
		a.footballErr = ""
		return a, tea.Batch(a.fetchWeatherCmd(), a.fetchFootballCmd(), a.refetchStats())

	case key.Matches(msg, a.keys.NextTab):
		a.tab = (a.tab + 1) % tabCount

	case key.Matches(msg, a.keys.Help):
		a.showHelp = true
	}

	return a, nil
}

func (a App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		a.searching = false
		a.searchInput.Reset()
		a.searchInput.Blur()
		a.rebuildRows()
		return a, nil

	case tea.KeyEnter:
		query := a.Query()
		a.searching = false
		a.searchInput.Blur()
		if a.firstLinkRow() >= 0 {
			// Matches exist, open the selection.
			return a.openSelected()
		}
		if query == "" {
			return a, nil
		}
		return a.openWebSearch(query)
	}

	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	a.rebuildRows()
	return a, cmd
}

func (a App) handleResetKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEsc:
		a.resetting = false
		return a, nil

	case key.Matches(msg, a.keys.Down):
		if a.resetIdx < len(resetWindows)-1 {
			a.resetIdx++
		}
		return a, nil

	case key.Matches(msg, a.keys.Up):
		if a.resetIdx > 0 {
			a.resetIdx--
		}
		return a, nil

	case msg.Type == tea.KeyEnter:
		window := resetWindows[a.resetIdx]
		label, err := reset.Apply(window, a.clicks, a.recent, time.Now())
		a.resetting = false
		if err != nil {
			a.status = "Reset failed: " + err.Error()
			return a, nil
		}
		a.status = "Cleared click history for " + label
		a.rebuildRows()
		return a, nil

	case key.Matches(msg, a.keys.Quit):
		a.resetting = false
		return a, nil
	}

	return a, nil
}

// selectedRow returns the link row under the cursor.
func (a App) selectedRow() (Row, bool) {
	if a.cursor < 0 || a.cursor >= len(a.rows) || !a.rows[a.cursor].IsLink() {
		return Row{}, false
	}
	return a.rows[a.cursor], true
}

// openSelected records the click, then launches the browser. The write
// happens before the handler returns, so the re-render that follows
// already sees the new count. Catalog opens never touch the recent list;
// that is reserved for ad-hoc destinations like web searches.
func (a App) openSelected() (tea.Model, tea.Cmd) {
	row, ok := a.selectedRow()
	if !ok {
		return a, nil
	}

	if err := a.clicks.RecordClick(row.Link.URL); err != nil {
		a.status = "Could not record click"
	}

	a.rebuildRows()
	if a.openURL != nil {
		a.openURL(row.Link.URL)
	}
	return a, nil
}

// openWebSearch submits the query to a web search and records it as a
// recent destination.
func (a App) openWebSearch(query string) (tea.Model, tea.Cmd) {
	searchURL := "https://www.google.com/search?q=" + url.QueryEscape(query)

	visit := model.RecentLink{
		URL:  searchURL,
		Name: "🔍 " + query,
		Logo: "https://www.google.com/favicon.ico",
	}
	if err := a.recent.RecordVisit(visit); err != nil {
		a.status = "Could not record visit"
	}

	a.searchInput.Reset()
	a.rebuildRows()
	if a.openURL != nil {
		a.openURL(searchURL)
	}
	return a, nil
}
