package models

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func f(v float64) *float64 { return &v }

func TestPortfolioSummaryIsEmpty(t *testing.T) {
	var nilSummary *PortfolioSummary
	if !nilSummary.IsEmpty() {
		t.Error("nil summary should be empty")
	}
	if !(&PortfolioSummary{}).IsEmpty() {
		t.Error("zero summary should be empty")
	}
	if (&PortfolioSummary{LatestDate: "2025-06-01"}).IsEmpty() {
		t.Error("summary with a latest date should not be empty")
	}
}

func TestReport(t *testing.T) {
	summary := &PortfolioSummary{
		EarliestDate: "2025-01-01",
		LatestDate:   "2025-06-01",
		TotalValue:   decimal.NewFromFloat(3500),
		Holdings: []TickerStats{
			{
				Ticker:      "MSFT",
				Latest:      decimal.NewFromInt(2000),
				WeightPct:   57.1,
				OverallPct:  f(30.0),
				Change7Pct:  f(2.5),
				Change30Pct: f(8.0),
				Peak:        decimal.NewFromInt(2000),
				PeakDate:    "2025-06-01",
				AllTimeHigh: true,
			},
			{
				Ticker:       "AAPL",
				Latest:       decimal.NewFromInt(1500),
				WeightPct:    42.9,
				OverallPct:   f(-12.0),
				Peak:         decimal.NewFromInt(1800),
				PeakDate:     "2025-03-15",
				DrawdownPct:  -16.7,
				DeepDrawdown: true,
			},
		},
		ClosedTickers:   []string{"GONE"},
		TopPerformer:    "MSFT (+30.0%)",
		BottomPerformer: "AAPL (-12.0%)",
	}

	report := summary.Report()

	for _, want := range []string{
		"Portfolio history 2025-01-01 to 2025-06-01",
		"Total value at 2025-06-01: 3500.00",
		"- MSFT: weight 57.1%, overall +30.0%, 7d +2.5%, 30d +8.0%, peak 2000.00 on 2025-06-01 [at all-time high]",
		"- AAPL: weight 42.9%, overall -12.0%, peak 1800.00 on 2025-03-15, drawdown -16.7% [deep drawdown]",
		"Closed positions: GONE",
		"Top performer: MSFT (+30.0%) | Bottom performer: AAPL (-12.0%)",
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q\n%s", want, report)
		}
	}
}

func TestReport_OmitsMissingFigures(t *testing.T) {
	summary := &PortfolioSummary{
		EarliestDate: "2025-05-01",
		LatestDate:   "2025-06-01",
		TotalValue:   decimal.NewFromInt(100),
		Holdings: []TickerStats{
			{
				Ticker:      "NEW",
				Latest:      decimal.NewFromInt(100),
				WeightPct:   100,
				Peak:        decimal.NewFromInt(100),
				PeakDate:    "2025-06-01",
				AllTimeHigh: true,
			},
		},
	}

	report := summary.Report()
	if strings.Contains(report, "overall") {
		t.Errorf("report should omit the overall figure when absent:\n%s", report)
	}
	if strings.Contains(report, "7d") || strings.Contains(report, "30d") {
		t.Errorf("report should omit lookback figures when absent:\n%s", report)
	}
	if strings.Contains(report, "Closed positions") {
		t.Errorf("report should omit closed positions when none exist:\n%s", report)
	}
}

func TestReport_Empty(t *testing.T) {
	if got := (&PortfolioSummary{}).Report(); got != "" {
		t.Errorf("empty summary should render an empty report, got %q", got)
	}
}
