// Package composer assembles the newsletter prompt and calls the
// generation service
package composer

import (
	"context"
	"fmt"
	"strings"

	"github.com/bobmcallan/heatcheck/internal/common"
	"github.com/bobmcallan/heatcheck/internal/interfaces"
	"github.com/bobmcallan/heatcheck/internal/models"
)

// Compile-time interface check
var _ interfaces.ComposerService = (*Service)(nil)

// MaxPromptArticles caps how many articles enter the prompt; the rest of
// the collected set is fetched but unused.
const MaxPromptArticles = 25

// Service implements ComposerService
type Service struct {
	client interfaces.GenerativeClient
	logger *common.Logger
}

// NewService creates a new composer service
func NewService(client interfaces.GenerativeClient, logger *common.Logger) *Service {
	return &Service{
		client: client,
		logger: logger,
	}
}

// Compose builds the full prompt and makes a single generation call.
// No retries and no streaming; a generation failure is returned to the
// caller, which substitutes placeholder content for the rest of the run.
func (s *Service) Compose(ctx context.Context, articles []models.Article, tickers []string, history string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("generation service not configured")
	}

	prompt := BuildPrompt(articles, tickers, history)
	s.logger.Debug().Int("articles", len(articles)).Int("tickers", len(tickers)).Msg("Composing newsletter")

	text, err := s.client.GenerateContent(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("generation call failed: %w", err)
	}

	s.logger.Info().Int("length", len(text)).Msg("Newsletter generated")
	return text, nil
}

// NewsText renders the fetched articles as the prompt's input block,
// capped at MaxPromptArticles.
func NewsText(articles []models.Article) string {
	if len(articles) == 0 {
		return "No news articles found."
	}

	var sb strings.Builder
	sb.WriteString("# Latest News from Google News\n\n")

	n := len(articles)
	if n > MaxPromptArticles {
		n = MaxPromptArticles
	}
	for i := 0; i < n; i++ {
		a := articles[i]
		fmt.Fprintf(&sb, "## Article %d: %s\n", i+1, a.Title)
		fmt.Fprintf(&sb, "Category: %s\n", a.Category)
		fmt.Fprintf(&sb, "Source: %s\n", a.Source)
		fmt.Fprintf(&sb, "URL: %s\n", a.URL)
		sb.WriteString("\n---\n\n")
	}

	return sb.String()
}

// BuildPrompt substitutes the news block, ticker list and optional history
// block into the fixed newsletter instruction template.
func BuildPrompt(articles []models.Article, tickers []string, history string) string {
	var portfolio strings.Builder
	for _, t := range tickers {
		portfolio.WriteString("- ")
		portfolio.WriteString(t)
		portfolio.WriteString("\n")
	}

	historyBlock := ""
	if strings.TrimSpace(history) != "" {
		historyBlock = fmt.Sprintf(`
*** PORTFOLIO HISTORY & PERFORMANCE ***
%s**********************
`, history)
	}

	return fmt.Sprintf(`You are a high-level Geopolitical Macro Strategist.
**Style:** Conversational, raw, insightful. "Real talk" only. No fluff.
**Data:** You MUST include precise numbers (Yields, Basis Points, P/E ratios, specific Ticker movement) from the text.
**Perspective:** Filter for LONG-TERM signal vs. short-term noise.

Input Text:
%s

*** USER PORTFOLIO & STRATEGY ***
%s**********************
%s
Create a concise "Geopolitical Heat Check" newsletter:

## 🎤 The Bit (The Macro Thesis)
(One sharp sentence. The single most important structural shift driving the market right now. Ignore the noise.)

## 🌍 The Setup (Top 5 High-Impact Stories)
(Focus on stories that shift economic reality over the next 1-5 years. ALWAYS include 1 cryptocurrency-related news story, 1 stock market story)

For each story use this EXACT format:

### **Headline Here**

4 sentences max explaining the leverage point. What does this actually mean? Why should I care?

**The Data:** Hard numbers from the text (Revenue impact, supply chain %%, rate shifts).

👉 [Read more](USE THE ACTUAL URL FROM THE ARTICLE)

## 💼 Bag Check (Portfolio Stress Test)
(Cross-reference the news strictly against the "User Portfolio" list above.)
* **Direct Hit:** List specific tickers from the portfolio that are directly affected.
* **The Verdict:** [Thesis Intact / Thesis Broken / Buy the Dip]
* **The Logic:** Analyze the correlation. If the news is bad for the sector but good for the specific asset, explain why. Distinguish between a temporary price drop and a fundamental business break.

## 🔔 The Playbook (Actionable Moves)
(Bullet points: 3 specific strategic moves. Hedge? Accumulate? Sit on hands?)

---
**Constraint:** Be brief. If the news is just noise for a long-term holder, explicitly say "Just noise. Keep holding."
**IMPORTANT:** Each "Read more" link MUST be the actual URL from the input articles, not a placeholder.
`, NewsText(articles), portfolio.String(), historyBlock)
}

// Placeholder converts a generation failure into the error string that
// flows through the rest of the pipeline as newsletter content.
func Placeholder(err error) string {
	return fmt.Sprintf("Error creating newsletter: %v", err)
}
