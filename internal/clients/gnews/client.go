// Package gnews provides a client for Google News RSS feeds
package gnews

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed/rss"
	"golang.org/x/time/rate"

	"github.com/bobmcallan/heatcheck/internal/common"
	"github.com/bobmcallan/heatcheck/internal/interfaces"
	"github.com/bobmcallan/heatcheck/internal/models"
)

const (
	DefaultTimeout   = 15 * time.Second
	DefaultRateLimit = 2 // requests per second
	DefaultMaxItems  = 8 // parsed prefix per feed

	userAgent = "heatcheck/1.0 (+https://github.com/bobmcallan/heatcheck)"
)

// Client implements the FeedClient interface
type Client struct {
	httpClient *http.Client
	parser     *rss.Parser
	limiter    *rate.Limiter
	maxItems   int
	logger     *common.Logger
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTimeout sets the per-request HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithMaxItems sets the parsed prefix size per feed
func WithMaxItems(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxItems = n
		}
	}
}

// NewClient creates a new Google News feed client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		parser:   &rss.Parser{},
		limiter:  rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		maxItems: DefaultMaxItems,
		logger:   common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Fetch retrieves one feed and returns at most maxItems articles.
// Items missing a title or link are skipped; a missing <source> element
// falls back to "Unknown"; an unparsable pubDate leaves Published nil.
func (c *Client) Fetch(ctx context.Context, category models.FeedCategory, url string) ([]models.Article, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/xml, text/xml")

	c.logger.Debug().Str("category", string(category)).Msg("Fetching feed")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed %s returned status %d", category, resp.StatusCode)
	}

	feed, err := c.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	items := feed.Items
	if len(items) > c.maxItems {
		items = items[:c.maxItems]
	}

	articles := make([]models.Article, 0, len(items))
	for _, item := range items {
		if item.Title == "" || item.Link == "" {
			continue
		}

		source := "Unknown"
		if item.Source != nil && item.Source.Title != "" {
			source = item.Source.Title
		}

		a := models.Article{
			Title:    item.Title,
			URL:      item.Link,
			Source:   source,
			Category: category,
		}
		if item.PubDateParsed != nil {
			t := *item.PubDateParsed
			a.Published = &t
		}
		articles = append(articles, a)
	}

	return articles, nil
}

// Ensure Client implements FeedClient
var _ interfaces.FeedClient = (*Client)(nil)
