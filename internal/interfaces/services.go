package interfaces

import (
	"context"

	"github.com/bobmcallan/heatcheck/internal/models"
)

// FeedService collects headlines across all configured feeds
type FeedService interface {
	// Collect fetches every configured feed, applies the freshness filter
	// (fail-open for items without a publish time) and de-duplicates by
	// normalized title, first occurrence winning. Per-feed failures are
	// logged and isolated; a failed feed contributes zero articles.
	Collect(ctx context.Context) ([]models.Article, error)
}

// PortfolioService reads the spreadsheet and derives the portfolio summary
type PortfolioService interface {
	// Enabled reports whether the spreadsheet feature is available.
	Enabled() bool

	// LoadTickers reads the configured ticker columns, dropping blanks and
	// header words. Failures disable portfolio enrichment for the run.
	LoadTickers(ctx context.Context) ([]string, error)

	// LoadHistory reads the (date, ticker, value) history rows.
	LoadHistory(ctx context.Context) ([]models.SnapshotRow, error)

	// Aggregate computes the per-ticker summary from history rows. Empty
	// or fully unparsable input yields an empty summary, never an error.
	Aggregate(rows []models.SnapshotRow) *models.PortfolioSummary
}

// ComposerService assembles the prompt and calls the generation service
type ComposerService interface {
	// Compose builds the newsletter prompt from articles, the active
	// ticker list and the optional history block, then makes one
	// generation call. The error return carries the generation failure;
	// the caller substitutes placeholder content.
	Compose(ctx context.Context, articles []models.Article, tickers []string, history string) (string, error)
}

// PublisherService persists and distributes the generated newsletter
type PublisherService interface {
	// Archive writes the content to the dated archive file, creating the
	// directory if absent. Later runs the same day overwrite. Returns the
	// file path written.
	Archive(content string) (string, error)

	// Send relays the content as a two-part (plain + HTML) email through
	// the configured mail relay. One authenticated session per call.
	Send(ctx context.Context, content string) error
}
