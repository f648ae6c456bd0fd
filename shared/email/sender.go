package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"outlier-scout/internal/models"
	"outlier-scout/internal/scoring"
	"outlier-scout/shared/config"
)

// Digest is one scheduled-watch email: the new outliers found for a niche.
type Digest struct {
	Niche  string
	Date   time.Time
	Videos []models.ScoredVideo
}

type Sender struct {
	config *config.EmailConfig
}

func NewSender(cfg *config.EmailConfig) *Sender {
	return &Sender{
		config: cfg,
	}
}

// SendDigest emails the new outliers for a niche. A digest with no videos is
// silently skipped.
func (s *Sender) SendDigest(digest *Digest) error {
	if digest == nil {
		return fmt.Errorf("digest cannot be nil")
	}
	if len(digest.Videos) == 0 {
		return nil // Nothing new to report
	}

	subject := fmt.Sprintf("Outlier Digest: %d new outliers in %q (%s)",
		len(digest.Videos), digest.Niche, digest.Date.Format("Jan 2, 2006"))

	body, err := s.generateDigestBody(digest)
	if err != nil {
		return fmt.Errorf("failed to generate digest body: %w", err)
	}

	return s.SendHTML(subject, body)
}

// SendHTML sends an email with custom HTML content.
func (s *Sender) SendHTML(subject, htmlBody string) error {
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.SMTPServer)

	to := []string{s.config.ToEmail}
	msg := []byte(fmt.Sprintf(`To: %s
From: %s
Subject: %s
MIME-Version: 1.0
Content-Type: text/html; charset=UTF-8

%s`, s.config.ToEmail, s.config.FromEmail, subject, htmlBody))

	addr := fmt.Sprintf("%s:%d", s.config.SMTPServer, s.config.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.FromEmail, to, msg)
}

var digestTemplate = template.Must(template.New("digest").Funcs(template.FuncMap{
	"views": scoring.FormatViews,
	"ratio": func(r *float64) string {
		if r == nil {
			return "n/a"
		}
		return fmt.Sprintf("%.1fx", *r)
	},
}).Parse(digestHTML))

func (s *Sender) generateDigestBody(digest *Digest) (string, error) {
	var buf bytes.Buffer
	if err := digestTemplate.Execute(&buf, digest); err != nil {
		return "", err
	}
	return buf.String(), nil
}

const digestHTML = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: -apple-system, Helvetica, Arial, sans-serif; color: #1a1a1a; max-width: 680px; margin: 0 auto;">
  <h2 style="border-bottom: 2px solid #e63946; padding-bottom: 8px;">New outliers in &ldquo;{{.Niche}}&rdquo;</h2>
  <p>{{len .Videos}} video(s) broke out since the last check ({{.Date.Format "Jan 2, 2006"}}).</p>
  <table style="width: 100%; border-collapse: collapse;">
    <tr style="text-align: left; border-bottom: 1px solid #ccc;">
      <th style="padding: 6px;">#</th>
      <th style="padding: 6px;">Grade</th>
      <th style="padding: 6px;">Title</th>
      <th style="padding: 6px;">Views</th>
      <th style="padding: 6px;">Views/Sub</th>
    </tr>
    {{range .Videos}}
    <tr style="border-bottom: 1px solid #eee;">
      <td style="padding: 6px;">{{.Rank}}</td>
      <td style="padding: 6px;"><strong>{{.Grade}}</strong></td>
      <td style="padding: 6px;"><a href="https://youtube.com/watch?v={{.Snippet.VideoID}}">{{.Snippet.Title}}</a><br>
        <span style="color: #666; font-size: 13px;">{{.Snippet.ChannelTitle}}</span></td>
      <td style="padding: 6px;">{{views .Stats.ViewCount}}</td>
      <td style="padding: 6px;">{{ratio .Scores.ViewsToSubRatio}}</td>
    </tr>
    {{end}}
  </table>
  <p style="color: #666; font-size: 12px; margin-top: 24px;">Sent by outlier-scout watch.</p>
</body>
</html>`
