// Package tui contains the bubbletea dashboard. Every mutation flows
// through Update and is followed by a View pass, so each panel's data can
// arrive asynchronously without ad-hoc redraw calls.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/newtab/internal/config"
	"github.com/nikbrunner/newtab/internal/football"
	"github.com/nikbrunner/newtab/internal/model"
	"github.com/nikbrunner/newtab/internal/rank"
	"github.com/nikbrunner/newtab/internal/store"
	"github.com/nikbrunner/newtab/internal/tui/layout"
	"github.com/nikbrunner/newtab/internal/umami"
	"github.com/nikbrunner/newtab/internal/weather"
)

// Tab selects the visible dashboard panel.
type Tab int

const (
	TabLinks Tab = iota
	TabWeather
	TabFootball
	tabCount
)

// App is the main bubbletea model for the dashboard.
type App struct {
	clicks   *store.ClickLedger
	recent   *store.RecentList
	prefs    *store.Preferences
	cfg      *config.Config
	stats    *umami.Client
	weather  *weather.Client
	football *football.Client

	// openURL launches a URL in the browser. Nil in tests.
	openURL func(url string)

	keys   KeyMap
	styles Styles
	layout layout.Config

	tab Tab

	catalog    []model.Link
	catalogErr string

	// Links tab state
	searchInput textinput.Model
	searching   bool
	rows        []Row
	cursor      int
	sortMode    model.SortMode
	sortBar     bool

	// Analytics overlay
	metric       model.Metric
	period       model.Period
	statsGen     int
	statsCache   map[string]umami.Stats
	statsPending bool

	// Weather tab state
	forecast   *weather.Forecast
	place      string
	weatherErr string

	// Football tab state
	table            []football.TableRow
	fixtures         []football.Match
	footballErr      string
	footballDisabled bool

	// Reset modal
	resetting bool
	resetIdx  int

	status   string
	showHelp bool

	// For gg command
	lastKeyWasG bool

	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Clicks   *store.ClickLedger
	Recent   *store.RecentList
	Prefs    *store.Preferences
	Config   *config.Config
	Stats    *umami.Client
	Weather  *weather.Client
	Football *football.Client

	// OpenURL launches a URL in the browser; optional, no-op if nil.
	OpenURL func(url string)

	Keys   *KeyMap // optional, uses default if nil
	Styles *Styles // optional, uses default if nil
}

// NewApp creates a new App with the given parameters. Persisted
// preferences decide the initial sort mode, metric, period and sort bar
// visibility.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	cfg := layout.DefaultConfig()

	input := textinput.New()
	input.Placeholder = "Search links..."
	input.CharLimit = cfg.Input.SearchCharLimit
	input.Width = cfg.Input.SearchWidth

	app := App{
		clicks:      params.Clicks,
		recent:      params.Recent,
		prefs:       params.Prefs,
		cfg:         params.Config,
		stats:       params.Stats,
		weather:     params.Weather,
		football:    params.Football,
		openURL:     params.OpenURL,
		keys:        keys,
		styles:      styles,
		layout:      cfg,
		searchInput: input,
		sortMode:    params.Prefs.SortMode(),
		sortBar:     params.Prefs.SortBarVisible(),
		metric:      params.Prefs.Metric(),
		period:      params.Prefs.Period(),
		statsCache:  map[string]umami.Stats{},
		width:       80,
		height:      24,
	}

	return app
}

// WithDimensions returns a copy of the App with the given window size.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// Rows returns the current list rows.
func (a App) Rows() []Row {
	return a.rows
}

// ActiveTab returns the visible tab.
func (a App) ActiveTab() Tab {
	return a.tab
}

// Status returns the transient status line.
func (a App) Status() string {
	return a.status
}

// Query returns the active search text.
func (a App) Query() string {
	return a.searchInput.Value()
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(a.loadCatalogCmd(), a.fetchWeatherCmd(), a.fetchFootballCmd())
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}

// rebuildRows recomputes the list from the catalog, the active query, the
// sort mode and the click counts. Reads the stores fresh so the view
// always reflects the latest persisted state.
func (a *App) rebuildRows() {
	counts := a.clicks.Counts()
	filtered := rank.Filter(a.catalog, a.Query())

	rows := make([]Row, 0, len(filtered))
	if a.sortMode == model.SortFrequency {
		for _, link := range rank.ByFrequency(filtered, counts) {
			rows = append(rows, Row{Kind: RowLink, Link: link, Count: counts[link.URL]})
		}
	} else {
		// Membership of the synthetic Recent group is checked against the
		// full catalog, not the filtered slice, so a filtered-out link
		// never shows up twice.
		for _, group := range rank.Groups(filtered, a.catalog, a.recent.Recents()) {
			rows = append(rows, Row{Kind: RowHeader, Category: group.Category})
			for _, link := range group.Links {
				rows = append(rows, Row{Kind: RowLink, Link: link, Count: counts[link.URL]})
			}
		}
	}

	a.rows = rows
	a.snapCursor()
}

// snapCursor clamps the cursor into range and onto a selectable row.
func (a *App) snapCursor() {
	if len(a.rows) == 0 {
		a.cursor = 0
		return
	}
	if a.cursor >= len(a.rows) {
		a.cursor = len(a.rows) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
	if a.rows[a.cursor].IsLink() {
		return
	}
	for i := a.cursor + 1; i < len(a.rows); i++ {
		if a.rows[i].IsLink() {
			a.cursor = i
			return
		}
	}
	for i := a.cursor - 1; i >= 0; i-- {
		if a.rows[i].IsLink() {
			a.cursor = i
			return
		}
	}
}

// moveCursor advances the cursor by direction, skipping header rows.
func (a *App) moveCursor(direction int) {
	for i := a.cursor + direction; i >= 0 && i < len(a.rows); i += direction {
		if a.rows[i].IsLink() {
			a.cursor = i
			return
		}
	}
}

// firstLinkRow returns the index of the first selectable row, or -1.
func (a App) firstLinkRow() int {
	for i, row := range a.rows {
		if row.IsLink() {
			return i
		}
	}
	return -1
}

// lastLinkRow returns the index of the last selectable row, or -1.
func (a App) lastLinkRow() int {
	for i := len(a.rows) - 1; i >= 0; i-- {
		if a.rows[i].IsLink() {
			return i
		}
	}
	return -1
}

// siteIDs collects the analytics identifiers of tracked catalog links.
func (a App) siteIDs() []string {
	var ids []string
	for _, link := range a.catalog {
		if link.AnalyticsID != "" {
			ids = append(ids, link.AnalyticsID)
		}
	}
	return ids
}

// refetchStats starts a new analytics fetch cycle. The cache is cleared
// and the generation bumped first, so any response still in flight from
// the previous cycle is discarded on arrival.
func (a *App) refetchStats() tea.Cmd {
	ids := a.siteIDs()
	if !a.stats.Enabled() || len(ids) == 0 {
		return nil
	}

	a.statsGen++
	a.statsCache = map[string]umami.Stats{}
	a.statsPending = true
	return a.fetchStatsCmd(a.statsGen, ids, a.period)
}
