// Package config loads the application configuration from a JSON file,
// creating it with defaults on first run.
package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config holds application configuration.
type Config struct {
	// Catalog
	LinksFile     string `json:"linksFile"`     // generated catalog (links.json)
	SourceFile    string `json:"sourceFile"`    // markdown file the catalog is refreshed from
	SourceHeading string `json:"sourceHeading"` // heading of the links table in the source file

	// Umami analytics; empty APIKey disables the overlay entirely.
	UmamiAPIBase string `json:"umamiApiBase"`
	UmamiAPIKey  string `json:"umamiApiKey"`

	// Football; empty APIKey disables the widget.
	FootballAPIKey string `json:"footballApiKey"`
	FootballTeamID int    `json:"footballTeamId"`
	RelayAddr      string `json:"relayAddr"` // listen address for `newtab relay`
	RelayURL       string `json:"relayUrl"`  // base URL the dashboard fetches football data from

	// Weather; zero coordinates fall back to IP geolocation.
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// CheckPrivateDomains lists hosts where `newtab check` treats a 404
	// as auth-required instead of dead (private repo hosts, intranets).
	CheckPrivateDomains []string `json:"checkPrivateDomains,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	linksFile := ""
	if dir, err := defaultConfigDir(); err == nil {
		linksFile = filepath.Join(dir, "links.json")
	}
	return Config{
		LinksFile:      linksFile,
		SourceHeading:  "Links List",
		UmamiAPIBase:   "https://api.umami.is/v1",
		FootballTeamID: 64, // Liverpool FC
		RelayAddr:      ":8787",
		RelayURL:       "http://localhost:8787",
	}
}

// Load reads config from the JSON file.
// Creates the file with defaults if it doesn't exist.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			config := DefaultConfig()
			// Create the config file with defaults
			if saveErr := Save(path, &config); saveErr != nil {
				// Non-fatal: return defaults even if save fails
				return &config, nil
			}
			return &config, nil
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	// Apply defaults for missing fields
	defaults := DefaultConfig()
	if config.LinksFile == "" {
		config.LinksFile = defaults.LinksFile
	}
	if config.SourceHeading == "" {
		config.SourceHeading = defaults.SourceHeading
	}
	if config.UmamiAPIBase == "" {
		config.UmamiAPIBase = defaults.UmamiAPIBase
	}
	if config.FootballTeamID == 0 {
		config.FootballTeamID = defaults.FootballTeamID
	}
	if config.RelayAddr == "" {
		config.RelayAddr = defaults.RelayAddr
	}
	if config.RelayURL == "" {
		config.RelayURL = defaults.RelayURL
	}

	return &config, nil
}

// Save writes config to the JSON file.
// Creates the directory if it doesn't exist.
func Save(path string, config *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultPath returns the default config path: ~/.config/newtab/config.json
func DefaultPath() (string, error) {
	dir, err := defaultConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func defaultConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "newtab"), nil
}
