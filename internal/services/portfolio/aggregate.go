package portfolio

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bobmcallan/heatcheck/internal/models"
)

const deepDrawdownPct = -10.0

// ParseValue parses a currency-like cell ("$1,234.56", "A$ 2 500") into a
// decimal. Thousands separators and spaces are removed, then any currency
// prefix ("$", "US$", "€") is trimmed; whatever remains must be a plain
// number.
func ParseValue(raw string) (decimal.Decimal, error) {
	cleaned := strings.NewReplacer(",", "", " ", "", " ", "").Replace(strings.TrimSpace(raw))
	cleaned = strings.TrimLeftFunc(cleaned, func(r rune) bool {
		return (r < '0' || r > '9') && r != '-' && r != '.'
	})

	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty value %q", raw)
	}

	v, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unparsable value %q: %w", raw, err)
	}
	return v, nil
}

// parseDay parses a date key at calendar-day granularity. ISO form is
// expected; a day/month/year form is attempted as fallback.
func parseDay(s string) (time.Time, bool) {
	for _, layout := range []string{"2006-01-02", "02/01/2006", "2/1/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// closestDate returns the date in the observed (sorted) set minimizing
// absolute day-distance to target. Ties break on iteration order: the
// first minimal distance found wins. Dates that fail to parse are skipped.
func closestDate(dates []string, target time.Time) string {
	best := ""
	bestDist := -1

	for _, d := range dates {
		t, ok := parseDay(d)
		if !ok {
			continue
		}
		dist := int(t.Sub(target).Hours() / 24)
		if dist < 0 {
			dist = -dist
		}
		if bestDist < 0 || dist < bestDist {
			best = d
			bestDist = dist
		}
	}

	return best
}

// pctChange returns (now-then)/then as a percentage.
func pctChange(now, then decimal.Decimal) float64 {
	return now.Sub(then).Div(then).InexactFloat64() * 100
}

// Aggregate computes the portfolio summary from unordered history rows.
// Rows with unparsable values are discarded; duplicate (ticker, date)
// observations overwrite earlier ones (last row wins). Empty or fully
// unparsable input yields an empty summary and no error — the caller
// treats that as "no history available".
func (s *Service) Aggregate(rows []models.SnapshotRow) *models.PortfolioSummary {
	series := make(map[string]models.TickerSeries)
	dateSet := make(map[string]struct{})

	for _, r := range rows {
		v, err := ParseValue(r.Value)
		if err != nil {
			s.logger.Debug().Str("ticker", r.Ticker).Str("date", r.Date).Msg("Discarding unparsable history row")
			continue
		}
		if series[r.Ticker] == nil {
			series[r.Ticker] = make(models.TickerSeries)
		}
		series[r.Ticker][r.Date] = v
		dateSet[r.Date] = struct{}{}
	}

	if len(dateSet) == 0 {
		return &models.PortfolioSummary{}
	}

	// Dates arrive in a sortable ISO form, so lexicographic order is
	// chronological order.
	dates := make([]string, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	earliest, latest := dates[0], dates[len(dates)-1]

	tickers := make([]string, 0, len(series))
	for t := range series {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)

	summary := &models.PortfolioSummary{
		EarliestDate: earliest,
		LatestDate:   latest,
		TotalValue:   decimal.Zero,
	}

	// Tickers absent at the latest date are closed and contribute zero.
	for _, t := range tickers {
		if v, ok := series[t][latest]; ok {
			summary.TotalValue = summary.TotalValue.Add(v)
			summary.CurrentTickers = append(summary.CurrentTickers, t)
		} else {
			summary.ClosedTickers = append(summary.ClosedTickers, t)
		}
	}

	latestDay, latestDayOK := parseDay(latest)

	for _, t := range summary.CurrentTickers {
		ts := series[t]
		latestVal := ts[latest]

		stats := models.TickerStats{
			Ticker: t,
			Latest: latestVal,
		}

		if summary.TotalValue.IsPositive() {
			stats.WeightPct = latestVal.Div(summary.TotalValue).InexactFloat64() * 100
		}

		if ev, ok := ts[earliest]; ok && !ev.IsZero() {
			overall := pctChange(latestVal, ev)
			stats.OverallPct = &overall
		}

		if latestDayOK {
			stats.Change7Pct = s.lookbackChange(ts, dates, latestVal, latestDay, 7)
			stats.Change30Pct = s.lookbackChange(ts, dates, latestVal, latestDay, 30)
		}

		stats.Peak, stats.PeakDate = seriesPeak(ts, dates)
		if !stats.Peak.IsZero() {
			stats.DrawdownPct = pctChange(latestVal, stats.Peak)
		}
		stats.AllTimeHigh = latestVal.Equal(stats.Peak)
		stats.DeepDrawdown = stats.DrawdownPct < deepDrawdownPct

		summary.Holdings = append(summary.Holdings, stats)
	}

	rankHoldings(summary.Holdings)

	for _, h := range summary.Holdings {
		if h.OverallPct != nil {
			if summary.TopPerformer == "" {
				summary.TopPerformer = fmt.Sprintf("%s (%+.1f%%)", h.Ticker, *h.OverallPct)
			}
			summary.BottomPerformer = fmt.Sprintf("%s (%+.1f%%)", h.Ticker, *h.OverallPct)
		}
	}

	return summary
}

// lookbackChange computes the percent change against the closest observed
// date to daysBack days before the latest date, or nil when the ticker has
// no usable value there.
func (s *Service) lookbackChange(ts models.TickerSeries, dates []string, latestVal decimal.Decimal, latestDay time.Time, daysBack int) *float64 {
	target := latestDay.AddDate(0, 0, -daysBack)
	ref := closestDate(dates, target)
	if ref == "" {
		return nil
	}
	v, ok := ts[ref]
	if !ok || v.IsZero() {
		return nil
	}
	chg := pctChange(latestVal, v)
	return &chg
}

// seriesPeak returns the maximum observed value and its date, scanning
// dates chronologically so the earliest occurrence wins on ties.
func seriesPeak(ts models.TickerSeries, dates []string) (decimal.Decimal, string) {
	peak := decimal.Zero
	peakDate := ""
	for _, d := range dates {
		v, ok := ts[d]
		if !ok {
			continue
		}
		if peakDate == "" || v.GreaterThan(peak) {
			peak = v
			peakDate = d
		}
	}
	return peak, peakDate
}

// rankHoldings orders by overall percent change descending. Holdings
// without an overall figure sort last; ties and the tail stay alphabetical.
func rankHoldings(holdings []models.TickerStats) {
	sort.SliceStable(holdings, func(i, j int) bool {
		a, b := holdings[i].OverallPct, holdings[j].OverallPct
		switch {
		case a != nil && b != nil:
			if *a != *b {
				return *a > *b
			}
			return holdings[i].Ticker < holdings[j].Ticker
		case a != nil:
			return true
		case b != nil:
			return false
		default:
			return holdings[i].Ticker < holdings[j].Ticker
		}
	})
}
