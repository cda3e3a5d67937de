package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/newtab/internal/tui/layout"
	"github.com/nikbrunner/newtab/internal/weather"
)

var tabLabels = []string{"Links", "Weather", "Football"}

func (a App) renderView() string {
	if a.showHelp {
		return a.styles.App.Render(a.renderHelp())
	}

	var b strings.Builder

	b.WriteString(a.renderTabs())
	b.WriteString("\n")

	if a.resetting {
		b.WriteString(a.renderResetModal())
		return a.styles.App.Render(b.String())
	}

	switch a.tab {
	case TabWeather:
		b.WriteString(a.renderWeather())
	case TabFootball:
		b.WriteString(a.renderFootball())
	default:
		b.WriteString(a.renderLinks())
	}

	if a.status != "" {
		b.WriteString("\n")
		b.WriteString(a.styles.Status.Render(a.status))
	}

	b.WriteString("\n")
	b.WriteString(a.renderHints())

	return a.styles.App.Render(b.String())
}

func (a App) renderTabs() string {
	var tabs []string
	for i, label := range tabLabels {
		style := a.styles.Tab
		if Tab(i) == a.tab {
			style = a.styles.TabActive
		}
		tabs = append(tabs, style.Render(label))
	}
	return a.styles.Title.Render("newtab") + "  " + strings.Join(tabs, " ")
}

// renderLinks draws the catalog list with the search line, the sort bar
// and the analytics overlay.
func (a App) renderLinks() string {
	var b strings.Builder

	if a.searching || a.Query() != "" {
		b.WriteString(a.searchInput.View())
		b.WriteString("\n")
	}

	if a.sortBar {
		bar := fmt.Sprintf("sort: %s (s)   metric: %s (m)   period: %s (p)",
			a.sortMode.Label(), a.metric.Label(), a.period.Label())
		b.WriteString(a.styles.SortBar.Render(bar))
		b.WriteString("\n")
	}

	if a.catalogErr != "" {
		b.WriteString(a.styles.Error.Render(a.catalogErr))
		return b.String()
	}
	if len(a.rows) == 0 {
		if a.Query() != "" {
			b.WriteString(a.styles.Empty.Render(fmt.Sprintf("No links match %q", a.Query())))
		} else {
			b.WriteString(a.styles.Empty.Render("No links yet, run `newtab refresh` to build the catalog"))
		}
		return b.String()
	}

	visible := layout.CalculateListHeight(a.height, a.layout.List)
	start, end := layout.CalculateVisibleRows(a.cursor, len(a.rows), visible)

	for i := start; i < end; i++ {
		b.WriteString(a.renderRow(i))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}

func (a App) renderRow(i int) string {
	row := a.rows[i]

	if row.Kind == RowHeader {
		return a.styles.Category.Render(row.Category)
	}

	marker := "  "
	style := a.styles.Item
	if i == a.cursor {
		marker = "> "
		style = a.styles.ItemSelected
	}

	line := marker + style.Render(row.Link.Name)
	if row.Count > 0 {
		line += "  " + a.styles.Count.Render(fmt.Sprintf("%d clicks", row.Count))
	}
	if cell := a.overlayCell(row); cell != "" {
		line += "  " + cell
	}

	return layout.TruncateANSIAware(line, a.width-4, a.layout.Text)
}

// overlayCell renders the analytics overlay for one link: a pending
// placeholder while the fetch cycle is in flight, then the cached figure
// with its delta against the previous window.
func (a App) overlayCell(row Row) string {
	if !a.stats.Enabled() || row.Link.AnalyticsID == "" {
		return ""
	}
	if a.statsPending {
		return a.styles.Pending.Render("…")
	}
	stats, ok := a.statsCache[row.Link.AnalyticsID]
	if !ok {
		return ""
	}

	value := stats.Value(a.metric)
	delta := value - stats.Prev(a.metric)
	cell := fmt.Sprintf("%s %d", a.metric.Label(), value)
	if delta != 0 {
		cell += fmt.Sprintf(" %+d", delta)
	}
	return a.styles.Overlay.Render(cell)
}

func (a App) renderWeather() string {
	if a.weatherErr != "" {
		return a.styles.Error.Render(a.weatherErr)
	}
	if a.forecast == nil {
		return a.styles.Placeholder.Render("Loading weather...")
	}

	var b strings.Builder

	place := a.place
	if place == "" {
		place = "Your Location"
	}
	b.WriteString(a.styles.Title.Render("📍 " + place))
	b.WriteString("\n\n")

	now := time.Now()
	idx := a.forecast.CurrentIndex(now)
	hourly := a.forecast.Hourly

	if idx < len(hourly.Temperature) {
		b.WriteString(fmt.Sprintf("%s %.0f° %s\n\n",
			weather.Glyph(hourly.Weathercode[idx]),
			hourly.Temperature[idx],
			weather.Describe(hourly.Weathercode[idx])))
	}

	for i := idx; i < idx+8 && i < len(hourly.Time); i++ {
		label := "Now"
		if i != idx {
			if t, err := time.ParseInLocation("2006-01-02T15:04", hourly.Time[i], now.Location()); err == nil {
				label = t.Format("15:04")
			}
		}
		line := fmt.Sprintf("%-6s %s %3.0f°", label, weather.Glyph(hourly.Weathercode[i]), hourly.Temperature[i])
		if i < len(hourly.PrecipitationProbability) && hourly.PrecipitationProbability[i] > 0 {
			line += fmt.Sprintf("  %d%%", hourly.PrecipitationProbability[i])
		}
		b.WriteString(a.styles.Item.Render(line))
		b.WriteString("\n")
	}

	daily := a.forecast.Daily
	if len(daily.Time) > 0 {
		b.WriteString("\n")
		b.WriteString(a.styles.Category.Render("7-Day Forecast"))
		b.WriteString("\n")
		for i, date := range daily.Time {
			name := "Today"
			if i != 0 {
				if t, err := time.ParseInLocation("2006-01-02", date, now.Location()); err == nil {
					name = t.Format("Mon")
				}
			}
			b.WriteString(a.styles.Item.Render(fmt.Sprintf("%-6s %s %3.0f° / %.0f°",
				name, weather.Glyph(daily.Weathercode[i]), daily.TemperatureMax[i], daily.TemperatureMin[i])))
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func (a App) renderFootball() string {
	if a.footballDisabled {
		return a.styles.Placeholder.Render("Add footballApiKey to config.json and start `newtab relay` to enable.")
	}
	if a.footballErr != "" {
		return a.styles.Error.Render(a.footballErr)
	}
	if a.table == nil {
		return a.styles.Placeholder.Render("Loading Premier League table...")
	}

	var b strings.Builder

	b.WriteString(a.styles.Category.Render("Premier League"))
	b.WriteString("\n")
	b.WriteString(a.styles.Count.Render(fmt.Sprintf(" %2s  %-18s %2s %2s %2s %2s %4s %4s",
		"#", "Team", "P", "W", "D", "L", "GD", "Pts")))
	b.WriteString("\n")

	for _, entry := range a.table {
		name := entry.Team.ShortName
		if name == "" {
			name = entry.Team.Name
		}
		name, _ = layout.TruncateText(name, 18, a.layout.Text)
		line := fmt.Sprintf(" %2d  %-18s %2d %2d %2d %2d %+4d %4d",
			entry.Position, name, entry.PlayedGames, entry.Won, entry.Draw, entry.Lost,
			entry.GoalDifference, entry.Points)

		style := a.styles.Item
		if entry.Team.ID == a.cfg.FootballTeamID {
			style = a.styles.Overlay
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if len(a.fixtures) > 0 {
		b.WriteString("\n")
		b.WriteString(a.styles.Category.Render("Upcoming Fixtures"))
		b.WriteString("\n")
		for _, match := range a.fixtures {
			opponent, home := match.Opponent(a.cfg.FootballTeamID)
			name := opponent.ShortName
			if name == "" {
				name = opponent.Name
			}
			venue := "(A)"
			versus := "@"
			if home {
				venue = "(H)"
				versus = "vs"
			}
			when := match.UTCDate.Local().Format("Mon 2 Jan 15:04")
			b.WriteString(a.styles.Item.Render(fmt.Sprintf("%s  %s %s %s  %s",
				when, versus, name, venue, match.Competition.Name)))
			b.WriteString("\n")
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func (a App) renderResetModal() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Reset click history"))
	b.WriteString("\n\n")

	for i, window := range resetWindows {
		marker := "  "
		style := a.styles.Item
		if i == a.resetIdx {
			marker = "> "
			style = a.styles.ItemSelected
		}
		b.WriteString(marker + style.Render(window.Label()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("enter confirm  esc cancel"))

	width := layout.CalculateModalWidth(a.width, a.layout.Modal)
	modal := a.styles.Modal.Width(width).Render(b.String())
	return lipgloss.Place(a.width-4, a.height-4, lipgloss.Center, lipgloss.Center, modal)
}

func (a App) renderHints() string {
	hints := []struct {
		key  string
		desc string
	}{
		{"j/k", "move"},
		{"enter", "open"},
		{"/", "search"},
		{"s", "sort"},
		{"m/p", "metric/period"},
		{"r", "reset"},
		{"tab", "panels"},
		{"?", "help"},
		{"q", "quit"},
	}

	var parts []string
	for _, h := range hints {
		parts = append(parts, a.styles.HintKey.Render(h.key)+" "+a.styles.HintDesc.Render(h.desc))
	}
	return a.styles.Help.Render(strings.Join(parts, "  "))
}

func (a App) renderHelp() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("newtab help"))
	b.WriteString("\n\n")

	bindings := []struct {
		keys string
		desc string
	}{
		{"j/k, arrows", "move selection"},
		{"gg / G", "jump to top / bottom"},
		{"enter, o", "open link in browser"},
		{"Y", "copy URL to clipboard"},
		{"/", "fuzzy search, enter on no match searches the web"},
		{"s", "toggle grouping / frequency sort"},
		{"m", "cycle analytics metric"},
		{"p", "cycle analytics period"},
		{"t", "toggle sort bar"},
		{"r", "reset click history by window"},
		{"R", "refresh weather, football and analytics"},
		{"tab", "switch Links / Weather / Football"},
		{"q", "quit"},
	}

	for _, bind := range bindings {
		b.WriteString(fmt.Sprintf("  %s %s\n",
			a.styles.HintKey.Render(fmt.Sprintf("%-12s", bind.keys)),
			a.styles.HintDesc.Render(bind.desc)))
	}

	b.WriteString("\n")
	b.WriteString(a.styles.Help.Render("press any key to close"))

	return b.String()
}
