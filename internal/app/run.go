package app

import (
	"context"
	"fmt"
	"time"

	"github.com/bobmcallan/heatcheck/internal/models"
	"github.com/bobmcallan/heatcheck/internal/services/composer"
)

// ErrNoArticles halts the run before generation: with nothing fresh to
// summarize there is no newsletter to produce.
var ErrNoArticles = fmt.Errorf("no fresh articles collected")

// Run executes one full pipeline pass: portfolio load, feed collection,
// composition, archive write and mail send. Each external call is
// attempted exactly once; a failure degrades only its own step. The only
// early halt is an empty article set.
func (a *App) Run(ctx context.Context) (*models.Newsletter, error) {
	log := a.Logger

	// Portfolio enrichment (optional)
	tickers, history := a.loadPortfolio(ctx)

	// Headlines
	articles, err := a.FeedService.Collect(ctx)
	if err != nil {
		return nil, fmt.Errorf("feed collection failed: %w", err)
	}
	if len(articles) == 0 {
		return nil, ErrNoArticles
	}

	// Generation — a failure becomes placeholder content, not a failed run
	content, err := a.ComposerService.Compose(ctx, articles, tickers, history)
	if err != nil {
		log.Warn().Err(err).Msg("Generation failed, publishing placeholder")
		content = composer.Placeholder(err)
	}

	used := len(articles)
	if used > composer.MaxPromptArticles {
		used = composer.MaxPromptArticles
	}

	result := &models.Newsletter{
		Date:            time.Now(),
		Content:         content,
		ArticlesFetched: len(articles),
		ArticlesUsed:    used,
		TickerCount:     len(tickers),
	}

	// Archive first; a later mail failure does not undo the written file
	path, err := a.PublisherService.Archive(content)
	if err != nil {
		return nil, fmt.Errorf("archive write failed: %w", err)
	}
	result.ArchivePath = path

	if err := a.PublisherService.Send(ctx, content); err != nil {
		log.Warn().Err(err).Msg("Newsletter email not sent")
	} else {
		result.Emailed = true
	}

	log.Info().
		Str("archive", result.ArchivePath).
		Bool("emailed", result.Emailed).
		Int("articles", result.ArticlesUsed).
		Msg("Run complete")

	return result, nil
}

// loadPortfolio resolves the active ticker list and the history summary
// text for this run. Any spreadsheet failure degrades to the configured
// fallback list with no history block; the current-portfolio list is
// threaded through return values, never held as shared state.
func (a *App) loadPortfolio(ctx context.Context) ([]string, string) {
	log := a.Logger

	if !a.PortfolioService.Enabled() {
		log.Info().Strs("tickers", a.Config.Portfolio.Fallback).Msg("Using fallback portfolio")
		return a.Config.Portfolio.Fallback, ""
	}

	tickers, err := a.PortfolioService.LoadTickers(ctx)
	if err != nil || len(tickers) == 0 {
		if err != nil {
			log.Warn().Err(err).Msg("Ticker load failed, using fallback portfolio")
		} else {
			log.Warn().Msg("Sheet ticker columns empty, using fallback portfolio")
		}
		tickers = a.Config.Portfolio.Fallback
	}

	rows, err := a.PortfolioService.LoadHistory(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("History load failed, proceeding without performance block")
		return tickers, ""
	}

	summary := a.PortfolioService.Aggregate(rows)
	if summary.IsEmpty() {
		log.Info().Msg("No portfolio history available")
		return tickers, ""
	}

	// The history table is authoritative: tickers present at the latest
	// date replace the configured list for this run.
	if len(summary.CurrentTickers) > 0 {
		tickers = summary.CurrentTickers
	}

	return tickers, summary.Report()
}
