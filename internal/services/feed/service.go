// Package feed collects and filters headlines across the configured feeds
package feed

import (
	"context"
	"time"

	"github.com/bobmcallan/heatcheck/internal/common"
	"github.com/bobmcallan/heatcheck/internal/interfaces"
	"github.com/bobmcallan/heatcheck/internal/models"
)

// Compile-time interface check
var _ interfaces.FeedService = (*Service)(nil)

// Service implements FeedService
type Service struct {
	client   interfaces.FeedClient
	sources  []common.FeedSource
	lookback time.Duration
	logger   *common.Logger

	// now is injected for tests; defaults to time.Now
	now func() time.Time
}

// NewService creates a new feed service
func NewService(client interfaces.FeedClient, cfg common.FeedsConfig, logger *common.Logger) *Service {
	return &Service{
		client:   client,
		sources:  cfg.Sources,
		lookback: cfg.GetLookback(),
		logger:   logger,
		now:      time.Now,
	}
}

// Collect fetches every configured feed sequentially, keeps items within
// the freshness window (items without a parsable publish time are kept —
// fail open), and de-duplicates globally by normalized title with the
// first occurrence winning. A failure on one feed is logged and isolated;
// that feed contributes zero articles.
func (s *Service) Collect(ctx context.Context) ([]models.Article, error) {
	var all []models.Article

	for _, src := range s.sources {
		articles, err := s.client.Fetch(ctx, models.FeedCategory(src.Category), src.URL)
		if err != nil {
			s.logger.Warn().Err(err).Str("category", src.Category).Msg("Feed fetch failed")
			continue
		}
		s.logger.Debug().Str("category", src.Category).Int("count", len(articles)).Msg("Feed fetched")
		all = append(all, articles...)
	}

	now := s.now()
	fresh := make([]models.Article, 0, len(all))
	for _, a := range all {
		if a.IsFresh(now, s.lookback) {
			fresh = append(fresh, a)
		}
	}

	seen := make(map[string]struct{}, len(fresh))
	unique := make([]models.Article, 0, len(fresh))
	for _, a := range fresh {
		key := a.TitleKey()
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, a)
	}

	s.logger.Info().
		Int("fetched", len(all)).
		Int("fresh", len(fresh)).
		Int("unique", len(unique)).
		Msg("Headlines collected")

	return unique, nil
}
