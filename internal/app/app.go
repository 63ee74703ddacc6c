// Package app wires clients and services into the newsletter pipeline
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bobmcallan/heatcheck/internal/clients/gemini"
	"github.com/bobmcallan/heatcheck/internal/clients/gnews"
	"github.com/bobmcallan/heatcheck/internal/clients/gsheets"
	"github.com/bobmcallan/heatcheck/internal/common"
	"github.com/bobmcallan/heatcheck/internal/interfaces"
	"github.com/bobmcallan/heatcheck/internal/services/composer"
	"github.com/bobmcallan/heatcheck/internal/services/feed"
	"github.com/bobmcallan/heatcheck/internal/services/portfolio"
	"github.com/bobmcallan/heatcheck/internal/services/publisher"
)

// App holds all initialized services and clients for one process.
type App struct {
	Config           *common.Config
	Logger           *common.Logger
	FeedService      interfaces.FeedService
	PortfolioService interfaces.PortfolioService
	ComposerService  interfaces.ComposerService
	PublisherService interfaces.PublisherService
	StartupTime      time.Time
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes configuration, logging, clients and services.
// configPath may be empty, in which case the default resolution logic is
// used. Missing credentials disable their feature rather than failing.
func NewApp(configPath string) (*App, error) {
	startupStart := time.Now()

	common.LoadVersionFromFile()

	binDir := getBinaryDir()

	// Check provided path, HEATCHECK_CONFIG, then binary dir, then fallback
	if configPath == "" {
		configPath = os.Getenv("HEATCHECK_CONFIG")
	}
	if configPath == "" {
		configPath = filepath.Join(binDir, "heatcheck.toml")
		if _, err := os.Stat(configPath); os.IsNotExist(err) {
			configPath = "config/heatcheck.toml" // fallback for development
		}
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	ctx := context.Background()

	// Generation client — absence degrades to placeholder newsletter text
	var geminiClient interfaces.GenerativeClient
	if config.Clients.Gemini.APIKey != "" {
		c, err := gemini.NewClient(ctx, config.Clients.Gemini.APIKey,
			gemini.WithLogger(logger),
			gemini.WithModel(config.Clients.Gemini.Model),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Failed to initialize Gemini client")
		} else {
			geminiClient = c
		}
	} else {
		logger.Warn().Msg("Gemini API key not configured - newsletter generation will be unavailable")
	}

	// Sheets client — a missing credentials file disables the feature
	var sheetClient interfaces.SheetClient
	if config.Clients.Sheets.SpreadsheetID != "" {
		c, err := gsheets.NewClient(ctx,
			config.Clients.Sheets.CredentialsFile,
			config.Clients.Sheets.SpreadsheetID,
			gsheets.WithLogger(logger),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Spreadsheet unavailable - portfolio enrichment disabled")
		} else {
			sheetClient = c
		}
	} else {
		logger.Info().Msg("No spreadsheet configured - using fallback ticker list")
	}

	feedClient := gnews.NewClient(
		gnews.WithLogger(logger),
		gnews.WithTimeout(config.Feeds.GetTimeout()),
		gnews.WithRateLimit(config.Feeds.RateLimit),
		gnews.WithMaxItems(config.Feeds.MaxPerFeed),
	)

	mailer := publisher.NewMailer(config.Mail, logger)
	if mailer == nil {
		logger.Warn().Msg("Mail not configured - newsletter will not be emailed")
	}

	a := &App{
		Config:           config,
		Logger:           logger,
		FeedService:      feed.NewService(feedClient, config.Feeds, logger),
		PortfolioService: portfolio.NewService(sheetClient, config.Clients.Sheets, logger),
		ComposerService:  composer.NewService(geminiClient, logger),
		PublisherService: publisher.NewService(config.Archive.Dir, mailer, logger),
		StartupTime:      startupStart,
	}

	logger.Info().Dur("startup", time.Since(startupStart)).Msg("App initialized")

	return a, nil
}
