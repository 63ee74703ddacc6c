// Package publisher persists the generated newsletter and relays it by mail
package publisher

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/bobmcallan/heatcheck/internal/common"
	"github.com/bobmcallan/heatcheck/internal/interfaces"
)

// Compile-time interface check
var _ interfaces.PublisherService = (*Service)(nil)

// Service implements PublisherService
type Service struct {
	archiveDir string
	mailer     *Mailer
	logger     *common.Logger

	// now is injected for tests; defaults to time.Now
	now func() time.Time
}

// NewService creates a new publisher service. mailer may be nil when mail
// is not configured; Send then degrades to a no-op error.
func NewService(archiveDir string, mailer *Mailer, logger *common.Logger) *Service {
	return &Service{
		archiveDir: archiveDir,
		mailer:     mailer,
		logger:     logger,
		now:        time.Now,
	}
}

// Archive writes the newsletter to one file per calendar day, prefixed
// with a title header. Later runs the same day overwrite the earlier file
// (last write wins, no locking).
func (s *Service) Archive(content string) (string, error) {
	if err := os.MkdirAll(s.archiveDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create archive dir: %w", err)
	}

	today := s.now().Format("2006-01-02")
	path := filepath.Join(s.archiveDir, fmt.Sprintf("newsletter_%s.md", today))

	body := fmt.Sprintf("# Financial Newsletter - %s\n\n%s", today, content)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("failed to write archive file: %w", err)
	}

	s.logger.Info().Str("path", path).Msg("Newsletter archived")
	return path, nil
}

// Send relays the newsletter as a two-part (plain + HTML) message through
// the configured mail relay. One authenticated session per call.
func (s *Service) Send(ctx context.Context, content string) error {
	if s.mailer == nil {
		return fmt.Errorf("mail not configured")
	}

	today := s.now().Format("2006-01-02")
	subject := fmt.Sprintf("🔥 Geopolitical Heat Check - %s", today)
	htmlBody := RenderHTML(content)

	if err := s.mailer.SendHTMLEmail(ctx, subject, htmlBody, content); err != nil {
		return err
	}

	s.logger.Info().Str("to", s.mailer.Recipient()).Msg("Newsletter emailed")
	return nil
}

// markdown converter shared across renders. GFM for tables, XHTML output
// for mail client compatibility.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
		html.WithXHTML(),
	),
)

// RenderHTML converts the markdown newsletter into a styled standalone
// HTML document for the mail body.
func RenderHTML(md string) string {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(md), &buf); err != nil {
		// Unconvertible content still ships as preformatted text.
		buf.Reset()
		buf.WriteString("<pre>")
		buf.WriteString(md)
		buf.WriteString("</pre>")
	}
	return fmt.Sprintf(htmlTemplate, buf.String())
}

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<style>
body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
    line-height: 1.6;
    color: #333;
    max-width: 800px;
    margin: 0 auto;
    padding: 20px;
}
h1 {
    color: #1a1a1a;
    border-bottom: 2px solid #ff6b35;
    padding-bottom: 10px;
}
h2 {
    color: #2d3748;
    margin-top: 30px;
}
a {
    color: #3182ce;
}
strong {
    color: #1a1a1a;
}
ul {
    padding-left: 20px;
}
li {
    margin-bottom: 8px;
}
hr {
    border: none;
    border-top: 1px solid #e2e8f0;
    margin: 20px 0;
}
</style>
</head>
<body>
%s
</body>
</html>
`
