package email

import (
	"strings"
	"testing"
	"time"

	"outlier-scout/internal/models"
	"outlier-scout/shared/config"
)

func TestGenerateDigestBody(t *testing.T) {
	ratio := 4.2
	digest := &Digest{
		Niche: "ai agents",
		Date:  time.Date(2025, 8, 25, 9, 0, 0, 0, time.UTC),
		Videos: []models.ScoredVideo{
			{
				Rank:  1,
				Grade: "A+",
				Snippet: models.VideoSnippet{
					VideoID:      "abc123",
					Title:        "Agents <Explained>",
					ChannelTitle: "Maker Lab",
				},
				Stats:  models.VideoStats{ViewCount: 1_200_000},
				Scores: models.ScoreBreakdown{ViewsToSubRatio: &ratio},
			},
			{
				Rank:    2,
				Grade:   "B+",
				Snippet: models.VideoSnippet{VideoID: "def456", Title: "Hidden Subs Video"},
				Stats:   models.VideoStats{ViewCount: 45000},
			},
		},
	}

	sender := NewSender(&config.EmailConfig{})
	body, err := sender.generateDigestBody(digest)
	if err != nil {
		t.Fatalf("generateDigestBody: %v", err)
	}

	for _, want := range []string{
		"ai agents",
		"https://youtube.com/watch?v=abc123",
		"1.2M",
		"4.2x",
		"Maker Lab",
		"n/a", // hidden-subs video has no ratio
	} {
		if !strings.Contains(body, want) {
			t.Errorf("digest body missing %q", want)
		}
	}

	// html/template escapes the angle brackets in the title.
	if strings.Contains(body, "Agents <Explained>") {
		t.Error("title should be HTML-escaped")
	}
	if !strings.Contains(body, "Agents &lt;Explained&gt;") {
		t.Error("escaped title not found in body")
	}
}

func TestSendDigestSkipsEmpty(t *testing.T) {
	sender := NewSender(&config.EmailConfig{})

	// No SMTP server configured; an empty digest must not try to send.
	if err := sender.SendDigest(&Digest{Niche: "x", Date: time.Now()}); err != nil {
		t.Errorf("SendDigest with no videos = %v, want nil", err)
	}

	if err := sender.SendDigest(nil); err == nil {
		t.Error("SendDigest(nil) should error")
	}
}
