// Package interfaces defines client and service contracts for Heatcheck
package interfaces

import (
	"context"

	"github.com/bobmcallan/heatcheck/internal/models"
)

// FeedClient fetches and parses a single syndication feed
type FeedClient interface {
	// Fetch performs a timed GET against the feed URL and returns at most
	// the configured prefix of items. Items missing a title or link are
	// skipped; a missing source falls back to "Unknown".
	Fetch(ctx context.Context, category models.FeedCategory, url string) ([]models.Article, error)
}

// GenerativeClient produces text from a composed prompt
type GenerativeClient interface {
	// GenerateContent makes a single request/response generation call.
	// There is no retry or streaming; the caller decides how to degrade.
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// SheetClient reads cells from the configured spreadsheet
type SheetClient interface {
	// ColumnValues returns the non-empty cells of one column (1-based) of
	// the named tab. A missing tab falls back to the first sheet.
	ColumnValues(ctx context.Context, tab string, column int) ([]string, error)

	// Rows returns all rows of the named tab as raw cell strings.
	// A missing tab falls back to the first sheet.
	Rows(ctx context.Context, tab string) ([][]string, error)
}
