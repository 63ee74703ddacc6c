package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// SnapshotRow is one (date, ticker, value) observation read from the
// portfolio history sheet. Value is free-form text ("$1,234.56") and is
// parsed during aggregation; rows that fail to parse are discarded.
type SnapshotRow struct {
	Date   string `json:"date"`
	Ticker string `json:"ticker"`
	Value  string `json:"value"`
}

// TickerSeries maps date keys (calendar-day granularity) to observed values
// for a single ticker.
type TickerSeries map[string]decimal.Decimal

// TickerStats holds the derived per-ticker figures at the latest date.
// Pointer fields are nil when the comparison value was absent from the
// series; the field is then omitted from the report rather than shown as 0.
type TickerStats struct {
	Ticker       string          `json:"ticker"`
	Latest       decimal.Decimal `json:"latest"`
	WeightPct    float64         `json:"weight_pct"`
	OverallPct   *float64        `json:"overall_pct,omitempty"`
	Change7Pct   *float64        `json:"change_7d_pct,omitempty"`
	Change30Pct  *float64        `json:"change_30d_pct,omitempty"`
	Peak         decimal.Decimal `json:"peak"`
	PeakDate     string          `json:"peak_date"`
	DrawdownPct  float64         `json:"drawdown_pct"` // always <= 0
	AllTimeHigh  bool            `json:"all_time_high"`
	DeepDrawdown bool            `json:"deep_drawdown"` // drawdown below -10%
}

// PortfolioSummary is the derived view of the full history table, computed
// fresh once per run and never persisted.
type PortfolioSummary struct {
	EarliestDate string          `json:"earliest_date"`
	LatestDate   string          `json:"latest_date"`
	TotalValue   decimal.Decimal `json:"total_value"`

	// Holdings are tickers present at the latest date, ranked by OverallPct
	// descending (tickers without an overall figure sort last, alphabetical).
	Holdings []TickerStats `json:"holdings"`

	// ClosedTickers were observed in the history but are absent at the
	// latest date; they contribute nothing to weights or drawdown.
	ClosedTickers []string `json:"closed_tickers,omitempty"`

	// CurrentTickers is exactly the set of tickers present at the latest
	// date, replacing any previously configured ticker list for this run.
	CurrentTickers []string `json:"current_tickers"`

	TopPerformer    string `json:"top_performer,omitempty"`
	BottomPerformer string `json:"bottom_performer,omitempty"`
}

// IsEmpty reports whether the summary carries no history at all, which the
// caller must treat as "no history available".
func (p *PortfolioSummary) IsEmpty() bool {
	return p == nil || p.LatestDate == ""
}

// Report renders the summary as a deterministic human-readable text block
// suitable for inclusion in the generation prompt.
func (p *PortfolioSummary) Report() string {
	if p.IsEmpty() {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Portfolio history %s to %s\n", p.EarliestDate, p.LatestDate)
	fmt.Fprintf(&sb, "Total value at %s: %s\n\n", p.LatestDate, p.TotalValue.StringFixed(2))

	for _, h := range p.Holdings {
		fmt.Fprintf(&sb, "- %s: weight %.1f%%", h.Ticker, h.WeightPct)
		if h.OverallPct != nil {
			fmt.Fprintf(&sb, ", overall %+.1f%%", *h.OverallPct)
		}
		if h.Change7Pct != nil {
			fmt.Fprintf(&sb, ", 7d %+.1f%%", *h.Change7Pct)
		}
		if h.Change30Pct != nil {
			fmt.Fprintf(&sb, ", 30d %+.1f%%", *h.Change30Pct)
		}
		fmt.Fprintf(&sb, ", peak %s on %s", h.Peak.StringFixed(2), h.PeakDate)
		if h.AllTimeHigh {
			sb.WriteString(" [at all-time high]")
		} else {
			fmt.Fprintf(&sb, ", drawdown %.1f%%", h.DrawdownPct)
			if h.DeepDrawdown {
				sb.WriteString(" [deep drawdown]")
			}
		}
		sb.WriteString("\n")
	}

	if len(p.ClosedTickers) > 0 {
		fmt.Fprintf(&sb, "\nClosed positions: %s\n", strings.Join(p.ClosedTickers, ", "))
	}
	if p.TopPerformer != "" {
		fmt.Fprintf(&sb, "\nTop performer: %s", p.TopPerformer)
		if p.BottomPerformer != "" && p.BottomPerformer != p.TopPerformer {
			fmt.Fprintf(&sb, " | Bottom performer: %s", p.BottomPerformer)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
