package publisher

import (
	"context"
	"crypto/rand"
	"crypto/tls"
	"encoding/base64"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/bobmcallan/heatcheck/internal/common"
)

// Mailer submits messages to the configured outbound relay. Implicit-TLS
// submission is the default (Gmail port 465); STARTTLS is the fallback
// when the direct TLS dial fails.
type Mailer struct {
	cfg    common.MailConfig
	logger *common.Logger
}

// NewMailer creates a mailer from the mail configuration. Returns nil when
// the configuration is incomplete so the feature degrades rather than
// failing mid-run.
func NewMailer(cfg common.MailConfig, logger *common.Logger) *Mailer {
	if !cfg.IsConfigured() {
		return nil
	}
	return &Mailer{cfg: cfg, logger: logger}
}

// Recipient returns the configured destination address.
func (m *Mailer) Recipient() string {
	return m.cfg.Recipient
}

// SendHTMLEmail submits a multipart/alternative message with plain text
// and HTML parts. Parts are base64 encoded so long generated lines stay
// within RFC 5322 limits.
func (m *Mailer) SendHTMLEmail(ctx context.Context, subject, htmlBody, textBody string) error {
	boundary := generateBoundary()

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", m.cfg.FromName, m.cfg.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", m.cfg.Recipient))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=\"%s\"\r\n", boundary))
	msg.WriteString("\r\n")

	if textBody != "" {
		msg.WriteString(fmt.Sprintf("--%s\r\n", boundary))
		msg.WriteString("Content-Type: text/plain; charset=\"UTF-8\"\r\n")
		msg.WriteString("Content-Transfer-Encoding: base64\r\n")
		msg.WriteString("\r\n")
		msg.WriteString(encodeBase64WithLineBreaks(textBody))
		msg.WriteString("\r\n")
	}

	msg.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	msg.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	msg.WriteString("Content-Transfer-Encoding: base64\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(encodeBase64WithLineBreaks(htmlBody))
	msg.WriteString("\r\n")

	msg.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	if err := ctx.Err(); err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	auth := smtp.PlainAuth("", m.cfg.From, m.cfg.Password, m.cfg.Host)

	if m.cfg.UseTLS {
		return m.sendWithTLS(addr, auth, msg.String())
	}

	return smtp.SendMail(addr, auth, m.cfg.From, []string{m.cfg.Recipient}, []byte(msg.String()))
}

// sendWithTLS submits over an implicit-TLS connection, falling back to a
// STARTTLS upgrade when the TLS dial is refused.
func (m *Mailer) sendWithTLS(addr string, auth smtp.Auth, msg string) error {
	host := strings.Split(addr, ":")[0]

	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: host})
	if err != nil {
		m.logger.Debug().Err(err).Msg("TLS dial failed, falling back to STARTTLS")
		return m.sendWithSTARTTLS(addr, auth, msg)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	return m.submit(client, auth, msg)
}

// sendWithSTARTTLS submits over a plain connection upgraded to TLS.
func (m *Mailer) sendWithSTARTTLS(addr string, auth smtp.Auth, msg string) error {
	host := strings.Split(addr, ":")[0]

	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()

	if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	return m.submit(client, auth, msg)
}

// submit runs the authenticated SMTP transaction on an open client.
func (m *Mailer) submit(client *smtp.Client, auth smtp.Auth, msg string) error {
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}

	if err := client.Mail(m.cfg.From); err != nil {
		return fmt.Errorf("failed to set mail from: %w", err)
	}

	if err := client.Rcpt(m.cfg.Recipient); err != nil {
		return fmt.Errorf("failed to set mail recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to start data: %w", err)
	}

	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}

// generateBoundary creates a unique MIME boundary string
func generateBoundary() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "heatcheck_boundary_fallback"
	}
	return fmt.Sprintf("heatcheck_%x", b)
}

// encodeBase64WithLineBreaks encodes content as base64 with 76-char line
// breaks per RFC 2045.
func encodeBase64WithLineBreaks(content string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(content))

	var result strings.Builder
	const lineLen = 76

	for i := 0; i < len(encoded); i += lineLen {
		end := i + lineLen
		if end > len(encoded) {
			end = len(encoded)
		}
		result.WriteString(encoded[i:end])
		if end < len(encoded) {
			result.WriteString("\r\n")
		}
	}

	return result.String()
}
