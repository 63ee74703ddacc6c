package models

import "time"

// Newsletter is the outcome of one pipeline run.
type Newsletter struct {
	Date        time.Time `json:"date"`
	Content     string    `json:"content"`
	ArchivePath string    `json:"archive_path"`
	Emailed     bool      `json:"emailed"`

	// Run counters, reported at completion.
	ArticlesFetched int `json:"articles_fetched"`
	ArticlesUsed    int `json:"articles_used"`
	TickerCount     int `json:"ticker_count"`
}
