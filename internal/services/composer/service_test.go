package composer

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/heatcheck/internal/common"
	"github.com/bobmcallan/heatcheck/internal/models"
)

// --- mock implementations ---

type memGenerativeClient struct {
	lastPrompt string
	response   string
	err        error
}

func (m *memGenerativeClient) GenerateContent(_ context.Context, prompt string) (string, error) {
	m.lastPrompt = prompt
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func sampleArticles(n int) []models.Article {
	out := make([]models.Article, n)
	for i := range out {
		out[i] = models.Article{
			Title:    fmt.Sprintf("Headline %d", i+1),
			URL:      fmt.Sprintf("https://news.example.com/%d", i+1),
			Source:   "Reuters",
			Category: models.CategoryBusiness,
		}
	}
	return out
}

func TestCompose(t *testing.T) {
	client := &memGenerativeClient{response: "## 🎤 The Bit\nMarkets are fine."}
	s := NewService(client, common.NewSilentLogger())

	got, err := s.Compose(context.Background(), sampleArticles(2), []string{"AAPL", "BTC"}, "")
	require.NoError(t, err)
	assert.Equal(t, client.response, got)

	assert.Contains(t, client.lastPrompt, "Headline 1")
	assert.Contains(t, client.lastPrompt, "- AAPL\n- BTC\n")
}

func TestCompose_NoClient(t *testing.T) {
	s := NewService(nil, common.NewSilentLogger())
	_, err := s.Compose(context.Background(), sampleArticles(1), nil, "")
	assert.Error(t, err)
}

func TestCompose_GenerationFailure(t *testing.T) {
	client := &memGenerativeClient{err: fmt.Errorf("quota exceeded")}
	s := NewService(client, common.NewSilentLogger())

	_, err := s.Compose(context.Background(), sampleArticles(1), nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestNewsText(t *testing.T) {
	text := NewsText(sampleArticles(2))
	assert.True(t, strings.HasPrefix(text, "# Latest News from Google News\n"))
	assert.Contains(t, text, "## Article 1: Headline 1")
	assert.Contains(t, text, "## Article 2: Headline 2")
	assert.Contains(t, text, "URL: https://news.example.com/1")
	assert.Contains(t, text, "Category: Business")
}

func TestNewsText_Empty(t *testing.T) {
	assert.Equal(t, "No news articles found.", NewsText(nil))
}

func TestNewsText_Cap(t *testing.T) {
	text := NewsText(sampleArticles(40))
	assert.Contains(t, text, "## Article 25:")
	assert.NotContains(t, text, "## Article 26:")
}

func TestBuildPrompt_HistoryBlock(t *testing.T) {
	withHistory := BuildPrompt(sampleArticles(1), []string{"AAPL"}, "- AAPL: weight 100.0%\n")
	assert.Contains(t, withHistory, "*** PORTFOLIO HISTORY & PERFORMANCE ***")
	assert.Contains(t, withHistory, "- AAPL: weight 100.0%")

	withoutHistory := BuildPrompt(sampleArticles(1), []string{"AAPL"}, "  ")
	assert.NotContains(t, withoutHistory, "PORTFOLIO HISTORY")
}

func TestBuildPrompt_TemplateSections(t *testing.T) {
	prompt := BuildPrompt(sampleArticles(1), []string{"AAPL"}, "")
	for _, section := range []string{
		"Geopolitical Macro Strategist",
		"## 🎤 The Bit",
		"## 🌍 The Setup",
		"## 💼 Bag Check",
		"## 🔔 The Playbook",
		"*** USER PORTFOLIO & STRATEGY ***",
	} {
		assert.Contains(t, prompt, section)
	}
	// The literal percent in the template must not leak fmt verbs.
	assert.Contains(t, prompt, "supply chain %")
	assert.NotContains(t, prompt, "%!")
}

func TestPlaceholder(t *testing.T) {
	got := Placeholder(fmt.Errorf("quota exceeded"))
	assert.Equal(t, "Error creating newsletter: quota exceeded", got)
}
