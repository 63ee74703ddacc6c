package portfolio

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/heatcheck/internal/common"
)

// --- mock implementations ---

// memSheetClient serves canned column and row data for tests.
type memSheetClient struct {
	columns map[int][]string
	rows    [][]string
	err     error
}

func (m *memSheetClient) ColumnValues(_ context.Context, _ string, column int) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.columns[column], nil
}

func (m *memSheetClient) Rows(_ context.Context, _ string) ([][]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.rows, nil
}

func TestEnabled(t *testing.T) {
	assert.False(t, NewService(nil, common.SheetsConfig{}, common.NewSilentLogger()).Enabled())
	assert.True(t, NewService(&memSheetClient{}, common.SheetsConfig{}, common.NewSilentLogger()).Enabled())
}

func TestLoadTickers_FiltersHeadersAndBlanks(t *testing.T) {
	client := &memSheetClient{columns: map[int][]string{
		2: {"Ticker", "AAPL", "  MSFT ", "", "BTC"},
	}}
	s := NewService(client, common.SheetsConfig{TickerColumns: []int{2}}, common.NewSilentLogger())

	tickers, err := s.LoadTickers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT", "BTC"}, tickers)
}

func TestLoadTickers_MultipleColumns(t *testing.T) {
	client := &memSheetClient{columns: map[int][]string{
		1: {"Symbol", "AAPL"},
		3: {"Asset", "BTC", "ETH"},
	}}
	s := NewService(client, common.SheetsConfig{TickerColumns: []int{1, 3}}, common.NewSilentLogger())

	tickers, err := s.LoadTickers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "BTC", "ETH"}, tickers)
}

func TestLoadTickers_Disabled(t *testing.T) {
	s := NewService(nil, common.SheetsConfig{TickerColumns: []int{2}}, common.NewSilentLogger())
	_, err := s.LoadTickers(context.Background())
	assert.Error(t, err)
}

func TestLoadTickers_ClientError(t *testing.T) {
	client := &memSheetClient{err: fmt.Errorf("boom")}
	s := NewService(client, common.SheetsConfig{TickerColumns: []int{2}}, common.NewSilentLogger())
	_, err := s.LoadTickers(context.Background())
	assert.Error(t, err)
}

func TestLoadHistory(t *testing.T) {
	client := &memSheetClient{rows: [][]string{
		{"Date", "Ticker", "Value"},
		{"2025-01-01", "AAPL", "$1,000.00"},
		{"2025-01-01", "MSFT"}, // short row dropped
		{"", "BTC", "500"},     // blank date dropped
		{"2025-02-01", "AAPL", "1,100"},
	}}
	s := NewService(client, common.SheetsConfig{HistoryTab: "History"}, common.NewSilentLogger())

	rows, err := s.LoadHistory(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "AAPL", rows[0].Ticker)
	assert.Equal(t, "$1,000.00", rows[0].Value)
	assert.Equal(t, "2025-02-01", rows[1].Date)
}

func TestLoadHistory_NoHeaderRow(t *testing.T) {
	// A first row that is real data must survive.
	client := &memSheetClient{rows: [][]string{
		{"2025-01-01", "AAPL", "1000"},
	}}
	s := NewService(client, common.SheetsConfig{}, common.NewSilentLogger())

	rows, err := s.LoadHistory(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
