// Package models defines data structures for Heatcheck
package models

import (
	"strings"
	"time"
)

// FeedCategory identifies the news feed a headline came from
type FeedCategory string

const (
	CategoryWorld        FeedCategory = "World"
	CategoryBusiness     FeedCategory = "Business"
	CategoryTechnology   FeedCategory = "Technology"
	CategoryStockMarkets FeedCategory = "Stock Markets"
	CategoryCrypto       FeedCategory = "Cryptocurrency"
)

// Article is a single headline entry fetched from a news feed.
// Published is nil when the feed item carried no parsable pubDate.
type Article struct {
	Title     string       `json:"title"`
	URL       string       `json:"url"`
	Source    string       `json:"source"`
	Category  FeedCategory `json:"category"`
	Published *time.Time   `json:"published,omitempty"`
}

// TitleKey returns the normalized title used for de-duplication:
// case-insensitive, surrounding whitespace trimmed.
func (a *Article) TitleKey() string {
	return strings.ToLower(strings.TrimSpace(a.Title))
}

// IsFresh reports whether the article was published within the lookback
// window ending at now. Articles without a parsable publish time are
// treated as fresh (fail open, not closed).
func (a *Article) IsFresh(now time.Time, lookback time.Duration) bool {
	if a.Published == nil {
		return true
	}
	return !a.Published.Before(now.Add(-lookback))
}
