package export

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"outlier-scout/internal/models"
)

func TestWriteVideosCSV(t *testing.T) {
	ratio := 4.56
	videos := []models.ScoredVideo{
		{
			Rank:  1,
			Grade: "A+",
			Snippet: models.VideoSnippet{
				VideoID:      "abc123",
				Title:        `Top 10 Tools, "Ranked"`,
				ChannelTitle: "Maker Lab",
				PublishedAt:  time.Date(2025, 8, 20, 14, 0, 0, 0, time.UTC),
				Duration:     "PT12M30S",
			},
			Stats:  models.VideoStats{ViewCount: 45600, SubscriberCount: 10000},
			Scores: models.ScoreBreakdown{ViewsToSubRatio: &ratio, Velocity: 912.3, Engagement: 5.67, Composite: 2.14},
		},
		{
			Rank:    2,
			Grade:   "B",
			Snippet: models.VideoSnippet{VideoID: "def456", Title: "Hidden Channel Video"},
			Scores:  models.ScoreBreakdown{Composite: 0.6},
		},
	}

	var buf strings.Builder
	if err := WriteVideosCSV(&buf, videos); err != nil {
		t.Fatalf("WriteVideosCSV: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("got %d records, want header + 2 rows", len(records))
	}

	if len(records[0]) != 13 {
		t.Errorf("header has %d columns, want 13", len(records[0]))
	}
	if records[0][0] != "Rank" || records[0][12] != "Video URL" {
		t.Errorf("unexpected header: %v", records[0])
	}

	row := records[1]
	if row[2] != "2.1" {
		t.Errorf("score = %q, want %q", row[2], "2.1")
	}
	// The comma and quotes in the title survive a round trip.
	if row[3] != `Top 10 Tools, "Ranked"` {
		t.Errorf("title = %q", row[3])
	}
	if row[7] != "4.56" {
		t.Errorf("views/sub = %q, want %q", row[7], "4.56")
	}
	if row[10] != "2025-08-20" {
		t.Errorf("published = %q, want date only", row[10])
	}
	if row[12] != "https://youtube.com/watch?v=abc123" {
		t.Errorf("url = %q", row[12])
	}

	// Hidden subscriber count: no ratio to report.
	if records[2][7] != "n/a" {
		t.Errorf("hidden-subs ratio = %q, want %q", records[2][7], "n/a")
	}
}

func TestWriteIdeasCSV(t *testing.T) {
	ideas := []models.VideoIdea{
		{
			ID:             1,
			Type:           models.IdeaTrendingTopic,
			SuggestedTitle: "Make a video about agents",
			Reasoning:      "Agents are trending, three videos prove it",
			BasedOn: []models.VideoRef{
				{VideoID: "v1", Title: "First"},
				{VideoID: "v2", Title: "Second"},
			},
			CommonTags:    []string{"ai", "agents"},
			AvgScore:      1.52,
			OptimalLength: "10-15 minutes",
			Competition:   models.CompetitionLow,
		},
	}

	var buf strings.Builder
	if err := WriteIdeasCSV(&buf, ideas); err != nil {
		t.Fatalf("WriteIdeasCSV: %v", err)
	}

	records, err := csv.NewReader(strings.NewReader(buf.String())).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want header + 1 row", len(records))
	}

	row := records[1]
	if row[1] != "Trending Topic" {
		t.Errorf("type = %q", row[1])
	}
	if row[4] != "First; Second" {
		t.Errorf("based on = %q, want joined titles", row[4])
	}
	if row[5] != "ai, agents" {
		t.Errorf("tags = %q", row[5])
	}
	if row[6] != "1.5" {
		t.Errorf("avg score = %q, want %q", row[6], "1.5")
	}
	if row[8] != "low" {
		t.Errorf("competition = %q, want %q", row[8], "low")
	}
}

func TestWriteVideosCSVEmpty(t *testing.T) {
	var buf strings.Builder
	if err := WriteVideosCSV(&buf, nil); err != nil {
		t.Fatalf("WriteVideosCSV: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "Rank,") {
		t.Errorf("empty export should still carry the header, got %q", buf.String())
	}
}
