package ai

import (
	"strings"
	"testing"
	"time"

	"outlier-scout/internal/models"
)

func promptVideo(id, title string, views int64, grade string) models.ScoredVideo {
	ratio := 3.5
	return models.ScoredVideo{
		Grade: grade,
		Snippet: models.VideoSnippet{
			VideoID:      id,
			Title:        title,
			ChannelTitle: "Channel",
			PublishedAt:  time.Now(),
			Duration:     "PT12M",
		},
		Stats:  models.VideoStats{ViewCount: views, SubscriberCount: 10000},
		Scores: models.ScoreBreakdown{ViewsToSubRatio: &ratio, Velocity: 1000, Engagement: 4.2, Composite: 1.8},
	}
}

func TestExtractJSONArray(t *testing.T) {
	tests := []struct {
		name     string
		response string
		want     string
	}{
		{"Bare array", `[{"title":"x"}]`, `[{"title":"x"}]`},
		{"Fenced", "```json\n[{\"title\":\"x\"}]\n```", `[{"title":"x"}]`},
		{"Prose around array", `Here are the ideas: [{"title":"x"}] Hope this helps!`, `[{"title":"x"}]`},
		{"No array at all", "sorry, I cannot do that", "sorry, I cannot do that"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSONArray(tt.response); got != tt.want {
				t.Errorf("extractJSONArray(%q) = %q, want %q", tt.response, got, tt.want)
			}
		})
	}
}

func TestParseBriefsResponse(t *testing.T) {
	videos := []models.ScoredVideo{
		promptVideo("v1", "First Video", 50000, "A+"),
		promptVideo("v2", "Second Video", 20000, "B+"),
	}

	response := "```json\n" + `[
  {
    "title": "10 AI Tools That Replace a Full Editing Team",
    "hook": "Open on a split screen",
    "outline": ["Tool one", "Tool two"],
    "thumbnailConcept": "Red background, shocked face",
    "whyThisWillWork": "Video 1 pulled 50K views",
    "uniqueAngle": "Focus on free tiers",
    "optimalLength": "12-15 minutes",
    "suggestedTags": ["ai tools", "editing"],
    "basedOnIndices": [0, 1, 99]
  },
  {
    "title": "",
    "basedOnIndices": [0]
  }
]` + "\n```"

	briefs, err := parseBriefsResponse(response, videos)
	if err != nil {
		t.Fatalf("parseBriefsResponse: %v", err)
	}

	// The empty-title entry is dropped.
	if len(briefs) != 1 {
		t.Fatalf("got %d briefs, want 1", len(briefs))
	}

	b := briefs[0]
	if b.ID != 1 {
		t.Errorf("ID = %d, want 1", b.ID)
	}
	if len(b.BasedOn) != 2 {
		t.Fatalf("got %d basedOn refs, want 2 (out-of-range index dropped)", len(b.BasedOn))
	}
	if b.BasedOn[0].VideoID != "v1" || b.BasedOn[0].Grade != "A+" || b.BasedOn[0].Views != 50000 {
		t.Errorf("basedOn[0] = %+v, want v1 with grade A+ and 50000 views", b.BasedOn[0])
	}
	if len(b.Outline) != 2 {
		t.Errorf("outline has %d sections, want 2", len(b.Outline))
	}
}

func TestParseBriefsResponseDefaultsLength(t *testing.T) {
	videos := []models.ScoredVideo{promptVideo("v1", "Video", 1000, "B")}

	briefs, err := parseBriefsResponse(`[{"title": "An Idea"}]`, videos)
	if err != nil {
		t.Fatalf("parseBriefsResponse: %v", err)
	}
	if briefs[0].OptimalLength != "varies" {
		t.Errorf("OptimalLength = %q, want %q", briefs[0].OptimalLength, "varies")
	}
}

func TestParseBriefsResponseRejectsGarbage(t *testing.T) {
	videos := []models.ScoredVideo{promptVideo("v1", "Video", 1000, "B")}

	for _, response := range []string{"not json at all", "{}", "[]", `[{"hook": "no title"}]`} {
		if _, err := parseBriefsResponse(response, videos); err == nil {
			t.Errorf("parseBriefsResponse(%q) succeeded, want error", response)
		}
	}
}

func TestBuildBriefsPromptContract(t *testing.T) {
	videos := make([]models.ScoredVideo, 36)
	for i := range videos {
		videos[i] = promptVideo("v", "How to Build AI Agents in 2026", 10000, "B+")
	}

	prompt := buildBriefsPrompt("ai agents", videos)

	// ceil(36/3) = 12 beats the floor of 10.
	if !strings.Contains(prompt, "at LEAST 12 video ideas") {
		t.Error("prompt should demand at least 12 ideas for 36 videos")
	}
	if !strings.Contains(prompt, `"ai agents"`) {
		t.Error("prompt should name the niche")
	}
	if !strings.Contains(prompt, "basedOnIndices") {
		t.Error("prompt should specify the response schema")
	}
}

func TestBuildBriefsPromptMinimumFloor(t *testing.T) {
	videos := []models.ScoredVideo{promptVideo("v1", "Video", 1000, "B")}

	prompt := buildBriefsPrompt("cooking", videos)
	if !strings.Contains(prompt, "at LEAST 10 video ideas") {
		t.Error("prompt should hold the 10-idea floor for small populations")
	}
}

func TestBuildTitlesPrompt(t *testing.T) {
	idea := models.VideoIdea{
		Type:           models.IdeaTrendingTopic,
		SuggestedTitle: "Make a video about agents",
		Reasoning:      "Agents are trending",
		OptimalLength:  "10-15 minutes",
	}
	videos := []models.ScoredVideo{
		promptVideo("v1", "Top Video", 100000, "A+"),
	}

	prompt := buildTitlesPrompt("ai agents", idea, videos)
	if !strings.Contains(prompt, "exactly 8 title variations") {
		t.Error("prompt should request exactly 8 variations")
	}
	if !strings.Contains(prompt, "Trending Topic") {
		t.Error("prompt should include the idea type")
	}
	if !strings.Contains(prompt, `"Top Video"`) {
		t.Error("prompt should list the top videos")
	}
}
