// Package portfolio reads the spreadsheet and derives the run's
// portfolio summary
package portfolio

import (
	"context"
	"fmt"
	"strings"

	"github.com/bobmcallan/heatcheck/internal/common"
	"github.com/bobmcallan/heatcheck/internal/interfaces"
	"github.com/bobmcallan/heatcheck/internal/models"
)

// Compile-time interface check
var _ interfaces.PortfolioService = (*Service)(nil)

// headerWords are column headings filtered out of ticker columns.
var headerWords = map[string]struct{}{
	"ticker": {},
	"symbol": {},
	"asset":  {},
	"stock":  {},
}

// Service implements PortfolioService. A nil sheet client means the
// spreadsheet feature is disabled for the run.
type Service struct {
	sheets interfaces.SheetClient
	cfg    common.SheetsConfig
	logger *common.Logger
}

// NewService creates a new portfolio service
func NewService(sheets interfaces.SheetClient, cfg common.SheetsConfig, logger *common.Logger) *Service {
	return &Service{
		sheets: sheets,
		cfg:    cfg,
		logger: logger,
	}
}

// Enabled reports whether the spreadsheet feature is available.
func (s *Service) Enabled() bool {
	return s.sheets != nil
}

// LoadTickers reads the configured ticker columns from the portfolio tab,
// trims cells, and drops blanks and header words.
func (s *Service) LoadTickers(ctx context.Context) ([]string, error) {
	if s.sheets == nil {
		return nil, fmt.Errorf("spreadsheet feature disabled")
	}

	var tickers []string
	for _, col := range s.cfg.TickerColumns {
		values, err := s.sheets.ColumnValues(ctx, s.cfg.PortfolioTab, col)
		if err != nil {
			return nil, fmt.Errorf("failed to read ticker column %d: %w", col, err)
		}
		for _, v := range values {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			if _, ok := headerWords[strings.ToLower(v)]; ok {
				continue
			}
			tickers = append(tickers, v)
		}
	}

	s.logger.Info().Int("count", len(tickers)).Msg("Tickers loaded from sheet")
	return tickers, nil
}

// LoadHistory reads (date, ticker, value) rows from the history tab.
// The first row is skipped when it looks like a header. Short rows are
// dropped; value parsing happens later, during aggregation.
func (s *Service) LoadHistory(ctx context.Context) ([]models.SnapshotRow, error) {
	if s.sheets == nil {
		return nil, fmt.Errorf("spreadsheet feature disabled")
	}

	rows, err := s.sheets.Rows(ctx, s.cfg.HistoryTab)
	if err != nil {
		return nil, fmt.Errorf("failed to read history tab: %w", err)
	}

	var out []models.SnapshotRow
	for i, row := range rows {
		if len(row) < 3 {
			continue
		}
		date := strings.TrimSpace(row[0])
		ticker := strings.TrimSpace(row[1])
		value := strings.TrimSpace(row[2])

		if i == 0 && isHeaderRow(date, ticker) {
			continue
		}
		if date == "" || ticker == "" {
			continue
		}

		out = append(out, models.SnapshotRow{Date: date, Ticker: ticker, Value: value})
	}

	s.logger.Info().Int("rows", len(out)).Msg("History rows loaded from sheet")
	return out, nil
}

// isHeaderRow detects a leading header row in the history tab.
func isHeaderRow(date, ticker string) bool {
	if strings.EqualFold(date, "date") {
		return true
	}
	_, ok := headerWords[strings.ToLower(ticker)]
	return ok
}
