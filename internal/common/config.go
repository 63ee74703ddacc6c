// Package common provides shared utilities for Heatcheck
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Heatcheck
type Config struct {
	Environment string          `toml:"environment"`
	Archive     ArchiveConfig   `toml:"archive"`
	Feeds       FeedsConfig     `toml:"feeds"`
	Portfolio   PortfolioConfig `toml:"portfolio"`
	Clients     ClientsConfig   `toml:"clients"`
	Mail        MailConfig      `toml:"mail"`
	Schedule    ScheduleConfig  `toml:"schedule"`
	Logging     LoggingConfig   `toml:"logging"`
}

// ArchiveConfig holds the newsletter archive location
type ArchiveConfig struct {
	Dir string `toml:"dir"`
}

// FeedsConfig holds news feed configuration
type FeedsConfig struct {
	Sources    []FeedSource `toml:"sources"`
	Lookback   string       `toml:"lookback"`     // freshness window, duration string
	Timeout    string       `toml:"timeout"`      // per-request HTTP timeout
	MaxPerFeed int          `toml:"max_per_feed"` // parsed prefix of each feed
	RateLimit  int          `toml:"rate_limit"`   // requests per second
}

// FeedSource is one (category, URL) syndication endpoint
type FeedSource struct {
	Category string `toml:"category"`
	URL      string `toml:"url"`
}

// GetLookback parses and returns the freshness window
func (c *FeedsConfig) GetLookback() time.Duration {
	d, err := time.ParseDuration(c.Lookback)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// GetTimeout parses and returns the per-request timeout
func (c *FeedsConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 15 * time.Second
	}
	return d
}

// PortfolioConfig holds portfolio sourcing configuration
type PortfolioConfig struct {
	// Fallback is the ticker list used when the spreadsheet is unavailable
	Fallback []string `toml:"fallback"`
}

// ClientsConfig holds API client configurations
type ClientsConfig struct {
	Gemini GeminiConfig `toml:"gemini"`
	Sheets SheetsConfig `toml:"sheets"`
}

// GeminiConfig holds Gemini API configuration
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model"`
}

// SheetsConfig holds Google Sheets configuration. An absent credentials
// file disables the spreadsheet feature rather than aborting the run.
type SheetsConfig struct {
	CredentialsFile string `toml:"credentials_file"`
	SpreadsheetID   string `toml:"spreadsheet_id"`
	PortfolioTab    string `toml:"portfolio_tab"`
	HistoryTab      string `toml:"history_tab"`
	TickerColumns   []int  `toml:"ticker_columns"` // 1-based column indices
}

// MailConfig holds outbound mail relay configuration
type MailConfig struct {
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
	From      string `toml:"from"`
	FromName  string `toml:"from_name"`
	Password  string `toml:"password"` // app-scoped credential
	Recipient string `toml:"recipient"`
	UseTLS    bool   `toml:"use_tls"` // implicit TLS submission
}

// IsConfigured reports whether enough mail settings are present to attempt
// a send. Missing settings degrade the feature, they never abort the run.
func (c *MailConfig) IsConfigured() bool {
	return c.Host != "" && c.From != "" && c.Password != "" && c.Recipient != ""
}

// ScheduleConfig holds the optional daily run schedule
type ScheduleConfig struct {
	Cron string `toml:"cron"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// DefaultFeedSources lists the Google News feeds consumed when the config
// file provides none.
func DefaultFeedSources() []FeedSource {
	return []FeedSource{
		{Category: "World", URL: "https://news.google.com/rss/topics/CAAqJggKIiBDQkFTRWdvSUwyMHZNRGx1YlY4U0FtVnVHZ0pWVXlnQVAB?hl=en-US&gl=US&ceid=US:en"},
		{Category: "Business", URL: "https://news.google.com/rss/topics/CAAqJggKIiBDQkFTRWdvSUwyMHZNRGx6TVdZU0FtVnVHZ0pWVXlnQVAB?hl=en-US&gl=US&ceid=US:en"},
		{Category: "Technology", URL: "https://news.google.com/rss/topics/CAAqJggKIiBDQkFTRWdvSUwyMHZNRGRqTVhZU0FtVnVHZ0pWVXlnQVAB?hl=en-US&gl=US&ceid=US:en"},
		{Category: "Stock Markets", URL: "https://news.google.com/rss/search?q=stock%20markets&hl=en-US&gl=US&ceid=US:en"},
		{Category: "Cryptocurrency", URL: "https://news.google.com/rss/topics/CAAqJAgKIh5DQkFTRUFvS0wyMHZNSFp3YWpSZlloSUNaVzRvQUFQAQ?hl=en-US&gl=US&ceid=US:en"},
	}
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Archive: ArchiveConfig{
			Dir: "archive",
		},
		Feeds: FeedsConfig{
			Sources:    DefaultFeedSources(),
			Lookback:   "24h",
			Timeout:    "15s",
			MaxPerFeed: 8,
			RateLimit:  2,
		},
		Portfolio: PortfolioConfig{
			Fallback: []string{"AAPL", "GOOGL", "MSFT", "SPY", "BTC"},
		},
		Clients: ClientsConfig{
			Gemini: GeminiConfig{
				Model: "gemini-3-flash-preview",
			},
			Sheets: SheetsConfig{
				CredentialsFile: "service_account.json",
				PortfolioTab:    "Sheet1",
				HistoryTab:      "History",
				TickerColumns:   []int{2},
			},
		},
		Mail: MailConfig{
			Host:     "smtp.gmail.com",
			Port:     465,
			FromName: "Heatcheck",
			UseTLS:   true,
		},
		Schedule: ScheduleConfig{
			Cron: "0 7 * * *",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Outputs:    []string{"console"},
			FilePath:   "./logs/heatcheck.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// Apply environment overrides
	applyEnvOverrides(config)

	if len(config.Feeds.Sources) == 0 {
		config.Feeds.Sources = DefaultFeedSources()
	}

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config.
// The EMAIL_* and GOOGLE_* names match the original deployment environment.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("HEATCHECK_ENV"); env != "" {
		config.Environment = env
	}

	if level := os.Getenv("HEATCHECK_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if dir := os.Getenv("HEATCHECK_ARCHIVE_DIR"); dir != "" {
		config.Archive.Dir = dir
	}

	if key := ResolveAPIKey("gemini_api_key", config.Clients.Gemini.APIKey); key != "" {
		config.Clients.Gemini.APIKey = key
	}

	if model := os.Getenv("HEATCHECK_GEMINI_MODEL"); model != "" {
		config.Clients.Gemini.Model = model
	}

	if addr := os.Getenv("EMAIL_ADDRESS"); addr != "" {
		config.Mail.From = addr
	}
	if pw := os.Getenv("EMAIL_APP_PASSWORD"); pw != "" {
		config.Mail.Password = pw
	}
	if rcpt := os.Getenv("EMAIL_RECIPIENT"); rcpt != "" {
		config.Mail.Recipient = rcpt
	}
	if port := os.Getenv("HEATCHECK_SMTP_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Mail.Port = p
		}
	}

	if id := os.Getenv("GOOGLE_SHEET_ID"); id != "" {
		config.Clients.Sheets.SpreadsheetID = id
	}
	if tab := os.Getenv("PORTFOLIO_TAB_NAME"); tab != "" {
		config.Clients.Sheets.PortfolioTab = tab
	}
	if creds := os.Getenv("HEATCHECK_CREDENTIALS_FILE"); creds != "" {
		config.Clients.Sheets.CredentialsFile = creds
	}

	if cron := os.Getenv("HEATCHECK_SCHEDULE"); cron != "" {
		config.Schedule.Cron = cron
	}
}

// ResolveAPIKey resolves an API key from environment or fallback
func ResolveAPIKey(name string, fallback string) string {
	keyToEnvMapping := map[string][]string{
		"gemini_api_key": {"GEMINI_API_KEY", "HEATCHECK_GEMINI_API_KEY", "GOOGLE_API_KEY"},
	}

	if envVarNames, ok := keyToEnvMapping[name]; ok {
		for _, envVarName := range envVarNames {
			if envValue := os.Getenv(envVarName); envValue != "" {
				return envValue
			}
		}
	}

	return fallback
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
