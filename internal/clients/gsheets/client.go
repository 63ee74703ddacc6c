// Package gsheets provides a read-only client for Google Sheets
package gsheets

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"

	"github.com/bobmcallan/heatcheck/internal/common"
	"github.com/bobmcallan/heatcheck/internal/interfaces"
)

// Client implements the SheetClient interface against one spreadsheet.
type Client struct {
	service       *sheets.Service
	spreadsheetID string
	logger        *common.Logger

	tabTitles []string // resolved lazily, cached for the run
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a sheets client authenticated with a service account
// credentials file. A missing credentials file is reported as an error so
// the caller can disable the spreadsheet feature for the run.
func NewClient(ctx context.Context, credentialsFile, spreadsheetID string, opts ...ClientOption) (*Client, error) {
	if _, err := os.Stat(credentialsFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("credentials file %s not found", credentialsFile)
	}

	service, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsReadonlyScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	c := &Client{
		service:       service,
		spreadsheetID: spreadsheetID,
		logger:        common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// resolveTab returns the requested tab title if it exists, otherwise the
// first sheet title. Mirrors the tolerant worksheet lookup of the original
// deployment: a missing tab degrades to the first sheet, never an error.
func (c *Client) resolveTab(ctx context.Context, tab string) (string, error) {
	if c.tabTitles == nil {
		meta, err := c.service.Spreadsheets.Get(c.spreadsheetID).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("failed to read spreadsheet metadata: %w", err)
		}
		for _, s := range meta.Sheets {
			if s.Properties != nil {
				c.tabTitles = append(c.tabTitles, s.Properties.Title)
			}
		}
	}

	if len(c.tabTitles) == 0 {
		return "", fmt.Errorf("spreadsheet %s has no sheets", c.spreadsheetID)
	}

	for _, title := range c.tabTitles {
		if title == tab {
			return title, nil
		}
	}

	c.logger.Warn().Str("tab", tab).Str("fallback", c.tabTitles[0]).Msg("Worksheet not found, using first sheet")
	return c.tabTitles[0], nil
}

// values fetches the used range of a tab as raw cell strings.
func (c *Client) values(ctx context.Context, tab string) ([][]string, error) {
	resolved, err := c.resolveTab(ctx, tab)
	if err != nil {
		return nil, err
	}

	rangeRef := "'" + strings.ReplaceAll(resolved, "'", "''") + "'"
	resp, err := c.service.Spreadsheets.Values.Get(c.spreadsheetID, rangeRef).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", rangeRef, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = fmt.Sprint(cell)
		}
		rows = append(rows, cells)
	}

	return rows, nil
}

// ColumnValues returns the non-empty cells of one column (1-based).
func (c *Client) ColumnValues(ctx context.Context, tab string, column int) ([]string, error) {
	if column < 1 {
		return nil, fmt.Errorf("column index %d out of range", column)
	}

	rows, err := c.values(ctx, tab)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, row := range rows {
		if len(row) < column {
			continue
		}
		if cell := strings.TrimSpace(row[column-1]); cell != "" {
			out = append(out, cell)
		}
	}

	return out, nil
}

// Rows returns all rows of the named tab.
func (c *Client) Rows(ctx context.Context, tab string) ([][]string, error) {
	return c.values(ctx, tab)
}

// Ensure Client implements SheetClient
var _ interfaces.SheetClient = (*Client)(nil)
