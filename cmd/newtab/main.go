package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/newtab/internal/catalog"
	"github.com/nikbrunner/newtab/internal/config"
	"github.com/nikbrunner/newtab/internal/culler"
	"github.com/nikbrunner/newtab/internal/exporter"
	"github.com/nikbrunner/newtab/internal/football"
	"github.com/nikbrunner/newtab/internal/model"
	"github.com/nikbrunner/newtab/internal/picker"
	"github.com/nikbrunner/newtab/internal/rank"
	"github.com/nikbrunner/newtab/internal/reset"
	"github.com/nikbrunner/newtab/internal/store"
	"github.com/nikbrunner/newtab/internal/tui"
	"github.com/nikbrunner/newtab/internal/umami"
	"github.com/nikbrunner/newtab/internal/weather"
)

func main() {
	if len(os.Args) >= 2 {
		switch os.Args[1] {
		case "help", "--help", "-h":
			printHelp()
			return
		case "relay":
			runRelay()
			return
		case "refresh":
			runRefresh()
			return
		case "reset":
			if len(os.Args) < 3 {
				fmt.Fprintf(os.Stderr, "Usage: newtab reset <hour|day|week|all>\n")
				os.Exit(1)
			}
			runReset(os.Args[2])
			return
		case "export":
			var outputPath string
			if len(os.Args) >= 3 {
				outputPath = os.Args[2]
			}
			runExport(outputPath)
			return
		case "check":
			runCheck()
			return
		default:
			// Treat as search query (join all remaining args)
			query := strings.Join(os.Args[1:], " ")
			runQuickSearch(query)
			return
		}
	}

	// No args - run full TUI
	runTUI()
}

func printHelp() {
	help := `newtab - terminal start page

Usage:
  newtab                Open the dashboard
  newtab <query>        Quick search -> select -> open
  newtab refresh        Rebuild the link catalog from the source file
  newtab reset <window> Clear click history (hour, day, week or all)
  newtab export [path]  Export the catalog as bookmarks HTML
  newtab check          Report dead links in the catalog
  newtab relay          Run the football data relay
  newtab help           Show this help

Dashboard Keybindings:
  Navigation:
    j/k         Move down/up
    gg/G        Jump to top/bottom
    tab         Switch Links / Weather / Football

  Actions:
    enter/o     Open link in browser
    Y           Copy URL to clipboard
    /           Fuzzy search (enter on no match searches the web)
    s           Toggle grouping / frequency sort
    m/p         Cycle analytics metric / period
    t           Toggle sort bar
    r           Reset click history
    R           Refresh weather, football and analytics

  Other:
    ?           Show help overlay
    q           Quit

Data Storage:
  ~/.config/newtab/config.json
  ~/.config/newtab/links.json
  ~/.config/newtab/state/ (or state.db)
`
	fmt.Print(help)
}

// loadEnv opens the config and the engagement stores shared by every
// subcommand.
func loadEnv() (*config.Config, *store.ClickLedger, *store.RecentList, *store.Preferences) {
	configPath, err := config.DefaultPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error getting config path: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	backend, err := store.OpenBackend()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening state storage: %v\n", err)
		os.Exit(1)
	}

	clicks, err := store.NewClickLedger(backend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening click ledger: %v\n", err)
		os.Exit(1)
	}

	return cfg, clicks, store.NewRecentList(backend), store.NewPreferences(backend)
}

// tuiLogger writes to a log file so slog output never corrupts the
// alternate screen.
func tuiLogger() *slog.Logger {
	home, err := os.UserHomeDir()
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	path := filepath.Join(home, ".config", "newtab", "newtab.log")
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(file, nil))
}

// runTUI runs the full interactive dashboard.
func runTUI() {
	cfg, clicks, recent, prefs := loadEnv()
	logger := tuiLogger()

	app := tui.NewApp(tui.AppParams{
		Clicks:   clicks,
		Recent:   recent,
		Prefs:    prefs,
		Config:   cfg,
		Stats:    umami.NewClient(cfg.UmamiAPIBase, cfg.UmamiAPIKey, logger),
		Weather:  weather.NewClient(logger),
		Football: football.NewClient(cfg.RelayURL, logger),
		OpenURL:  openURL,
	})

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running app: %v\n", err)
		os.Exit(1)
	}
}

// runQuickSearch fuzzy-matches the catalog and opens the selected link.
func runQuickSearch(query string) {
	cfg, clicks, _, _ := loadEnv()

	links, err := catalog.LoadFile(cfg.LinksFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading links: %v\n", err)
		os.Exit(1)
	}

	results := rank.Filter(links, query)

	if len(results) == 0 {
		fmt.Printf("No links found for '%s'\n", query)
		os.Exit(0)
	}

	var selected *model.Link

	if len(results) == 1 {
		// Single result - select it directly
		selected = &results[0]
		fmt.Printf("Opening: %s\n", selected.Name)
	} else {
		// Multiple results - show picker
		p := picker.New(results, query)
		program := tea.NewProgram(p)
		finalModel, err := program.Run()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running picker: %v\n", err)
			os.Exit(1)
		}

		finalPicker := finalModel.(picker.Picker)
		if finalPicker.Cancelled() {
			os.Exit(0)
		}
		selected = finalPicker.SelectedLink()
	}

	if selected == nil {
		os.Exit(0)
	}

	if err := clicks.RecordClick(selected.URL); err != nil {
		fmt.Fprintf(os.Stderr, "Error recording click: %v\n", err)
	}

	openURL(selected.URL)
}

// openURL opens a URL in the default browser.
func openURL(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	}
	if cmd != nil {
		_ = cmd.Start()
	}
}

// runRefresh rebuilds the link catalog from the configured source file.
func runRefresh() {
	cfg, _, _, _ := loadEnv()

	if cfg.SourceFile == "" {
		fmt.Fprintf(os.Stderr, "No sourceFile configured in config.json\n")
		os.Exit(1)
	}

	file, err := os.Open(cfg.SourceFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening source file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	var links []model.Link
	if strings.HasSuffix(cfg.SourceFile, ".html") {
		links, err = catalog.ParseHTMLBookmarks(file)
	} else {
		links, err = catalog.ParseMarkdown(file, cfg.SourceHeading)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing source file: %v\n", err)
		os.Exit(1)
	}

	if err := catalog.WriteFile(cfg.LinksFile, links); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing catalog: %v\n", err)
		os.Exit(1)
	}

	tracked := 0
	for _, link := range links {
		if link.AnalyticsID != "" {
			tracked++
		}
	}
	fmt.Printf("Wrote %d links to %s", len(links), cfg.LinksFile)
	if tracked > 0 {
		fmt.Printf(" (%d tracked)", tracked)
	}
	fmt.Println()
}

// runReset clears click history for the given window from the command line.
func runReset(arg string) {
	window, err := reset.ParseWindow(arg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	_, clicks, recent, _ := loadEnv()

	label, err := reset.Apply(window, clicks, recent, time.Now())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resetting history: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Cleared click history for %s\n", label)
}

// runExport writes the catalog as Netscape bookmarks HTML.
func runExport(outputPath string) {
	cfg, _, _, _ := loadEnv()

	if outputPath == "" {
		var err error
		outputPath, err = exporter.DefaultExportPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting default export path: %v\n", err)
			os.Exit(1)
		}
	}

	links, err := catalog.LoadFile(cfg.LinksFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading links: %v\n", err)
		os.Exit(1)
	}

	html := exporter.ExportHTML(links)

	if err := os.WriteFile(outputPath, []byte(html), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Exported %d links to %s\n", len(links), outputPath)
}

// runCheck reports dead or unreachable catalog links.
func runCheck() {
	cfg, _, _, _ := loadEnv()

	links, err := catalog.LoadFile(cfg.LinksFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading links: %v\n", err)
		os.Exit(1)
	}
	if len(links) == 0 {
		fmt.Println("No links to check, run `newtab refresh` first")
		return
	}

	results := culler.CheckCatalog(links, culler.Options{
		PrivateDomains: cfg.CheckPrivateDomains,
		Progress: func(done, total int) {
			fmt.Printf("\rChecking %d/%d", done, total)
		},
	})
	fmt.Println()

	healthy := 0
	for _, group := range culler.ByCategory(results) {
		var lines []string
		for _, result := range group.Results {
			name := result.Link.Name
			if result.Project {
				name += " (project)"
			}
			switch result.Status {
			case culler.Healthy:
				healthy++
			case culler.Dead:
				lines = append(lines, fmt.Sprintf("  DEAD        %s (%d) %s", name, result.StatusCode, result.URL))
			case culler.Unreachable:
				lines = append(lines, fmt.Sprintf("  UNREACHABLE %s (%s) %s", name, result.Error, result.URL))
			}
		}
		if len(lines) > 0 {
			fmt.Println(group.Category)
			for _, line := range lines {
				fmt.Println(line)
			}
		}
	}
	fmt.Printf("%d/%d targets healthy\n", healthy, len(results))
}

// runRelay serves the football data proxy.
func runRelay() {
	cfg, _, _, _ := loadEnv()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	if cfg.FootballAPIKey == "" {
		logger.Warn("no footballApiKey configured, relay will answer 503")
	}

	relay := football.NewRelay(cfg.FootballAPIKey, cfg.FootballTeamID, logger)
	if err := relay.ListenAndServe(cfg.RelayAddr); err != nil {
		fmt.Fprintf(os.Stderr, "Relay error: %v\n", err)
		os.Exit(1)
	}
}
