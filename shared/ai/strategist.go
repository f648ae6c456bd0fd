package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"outlier-scout/internal/models"
	"outlier-scout/internal/scoring"
	"outlier-scout/shared/config"

	"google.golang.org/genai"
)

const maxPromptVideos = 50

// Strategist turns a scored outlier population into full production briefs and
// title variants using Gemini.
type Strategist struct {
	client *genai.Client
	model  string
}

func NewStrategist(cfg *config.Config) (*Strategist, error) {
	if cfg.AI.GeminiAPIKey == "" {
		return nil, fmt.Errorf("Gemini API key is required (set GEMINI_API_KEY)")
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.AI.GeminiAPIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Strategist{client: client, model: cfg.AI.Model}, nil
}

// GenerateBriefs asks the model for one production brief per distinct trend it
// finds in the scored videos. The prompt demands at least max(10, n/3) ideas
// so the model covers the whole population instead of stopping early.
func (s *Strategist) GenerateBriefs(ctx context.Context, niche string, videos []models.ScoredVideo) ([]models.VideoBrief, error) {
	if len(videos) == 0 {
		return nil, fmt.Errorf("no scored videos to work from")
	}
	if len(videos) > maxPromptVideos {
		videos = videos[:maxPromptVideos]
	}

	prompt := buildBriefsPrompt(niche, videos)

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate briefs for %q: %w", niche, err)
	}

	responseText := result.Text()
	if responseText == "" {
		return nil, fmt.Errorf("empty response from AI for niche %q", niche)
	}

	briefs, err := parseBriefsResponse(responseText, videos)
	if err != nil {
		return nil, fmt.Errorf("failed to parse briefs response: %w", err)
	}

	log.Printf("AI strategist produced %d briefs for %q", len(briefs), niche)
	return briefs, nil
}

// GenerateTitles asks the model for 8 title variants for one idea.
func (s *Strategist) GenerateTitles(ctx context.Context, niche string, idea models.VideoIdea, topVideos []models.ScoredVideo) ([]models.TitleSuggestion, error) {
	prompt := buildTitlesPrompt(niche, idea, topVideos)

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}

	result, err := s.client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate titles: %w", err)
	}

	responseText := result.Text()
	if responseText == "" {
		return nil, fmt.Errorf("empty response from AI")
	}

	var titles []models.TitleSuggestion
	if err := json.Unmarshal([]byte(extractJSONArray(responseText)), &titles); err != nil {
		return nil, fmt.Errorf("failed to parse titles response: %w", err)
	}
	return titles, nil
}

func buildBriefsPrompt(niche string, videos []models.ScoredVideo) string {
	var videoList strings.Builder
	for i, v := range videos {
		ratio := 0.0
		if v.Scores.ViewsToSubRatio != nil {
			ratio = *v.Scores.ViewsToSubRatio
		}
		tags := "none"
		if len(v.Snippet.Tags) > 0 {
			capped := v.Snippet.Tags
			if len(capped) > 5 {
				capped = capped[:5]
			}
			tags = strings.Join(capped, ", ")
		}
		fmt.Fprintf(&videoList, "%d. %q by %s\n   Grade: %s | Score: %.2f | Views: %s | Velocity: %.0f views/day | Engagement: %.1f%% | Subs: %s | Views/Sub: %.1fx | Tags: %s\n",
			i+1, v.Snippet.Title, v.Snippet.ChannelTitle,
			v.Grade, v.Scores.Composite, scoring.FormatViews(v.Stats.ViewCount),
			v.Scores.Velocity, v.Scores.Engagement,
			scoring.FormatViews(v.Stats.SubscriberCount), ratio, tags)
	}

	patternList := "No clear dominant patterns detected."
	if patterns := scoring.AnalyzeTitlePatterns(videos); len(patterns) > 0 {
		var b strings.Builder
		for _, p := range patterns {
			fmt.Fprintf(&b, "- %q: %d videos use this, avg score %.2f\n", p.Pattern, p.Count, p.AvgScore)
		}
		patternList = strings.TrimRight(b.String(), "\n")
	}

	clusterList := "No clear topic clusters detected."
	if clusters := scoring.ExtractTopicClusters(videos, 10); len(clusters) > 0 {
		var b strings.Builder
		for _, c := range clusters {
			fmt.Fprintf(&b, "- %q: %d videos, avg score %.2f\n", c.Topic, len(c.Videos), c.AvgScore)
		}
		clusterList = strings.TrimRight(b.String(), "\n")
	}

	minIdeas := (len(videos) + 2) / 3
	if minIdeas < 10 {
		minIdeas = 10
	}
	now := time.Now()

	return fmt.Sprintf(`You are an elite YouTube content strategist. You combine data analysis with creative storytelling to generate video ideas that creators can execute immediately.

## Important Context
Today's date is %s. All video ideas MUST be relevant to the current time. Never reference past years in titles or content. Everything should feel fresh and timely for %d.

## Task
Analyze ALL %d trending videos below in the %q niche. You MUST generate at LEAST %d video ideas (one per distinct trend, angle, or sub-topic). Do NOT stop at 5. Scan every single video, group them by theme, and produce one original idea per group. More groups = more ideas.

## Data: Top %d Outlier Videos (ranked by composite score)
%s
## Pattern Analysis: Title Formats That Work
%s

## Topic Clusters: Trending Subjects
%s

## For each idea, provide:
1. TITLE: Clear, specific, optimized for CTR, 40-70 characters. Use a proven pattern from the data. Do NOT copy existing titles. Create something original that a viewer would click instantly.
2. HOOK: The first 30 seconds. Be specific about what the creator says, shows, or does. Write it as a mini-script with exact words.
3. OUTLINE: 5-8 detailed sections forming a narrative arc. Each section MUST include specific names, tools, examples, numbers, or techniques, NOT vague descriptions. The creator should be able to film directly from the outline without doing additional research.
4. THUMBNAIL_CONCEPT: Specific visual (colors, text overlay max 4 words, facial expression, objects, layout) that a designer could execute.
5. WHY_THIS_WILL_WORK: Reference specific videos from the data by number, their metrics, and why demand exists. Use actual numbers.
6. UNIQUE_ANGLE: What makes this different from the existing videos? The creator needs a clear reason to exist.
7. OPTIMAL_LENGTH: Recommended video duration based on what works in the data.
8. SUGGESTED_TAGS: 5-8 tags optimized for YouTube search.
9. BASED_ON_INDICES: Array of 0-indexed positions of videos from the data above that inspired this idea.

## Rules
- You MUST produce at least %d ideas. Do NOT stop at 5.
- Group similar videos and create ONE strong idea per group
- Every video above should be covered by at least one idea
- Rank ideas by estimated potential (best first)
- Titles must be crystal clear so a viewer knows exactly what the video is about
- Outlines must name specific tools, products, techniques, or examples
- Be specific and actionable, not generic
- Reference real data to justify each idea

Respond ONLY with valid JSON array (no markdown fences, no extra text):
[
  {
    "title": "...",
    "hook": "...",
    "outline": ["...", "...", "...", "...", "..."],
    "thumbnailConcept": "...",
    "whyThisWillWork": "...",
    "uniqueAngle": "...",
    "optimalLength": "...",
    "suggestedTags": ["...", "..."],
    "basedOnIndices": [0, 3]
  }
]`,
		now.Format("2006-01-02"), now.Year(),
		len(videos), niche, minIdeas,
		len(videos), videoList.String(),
		patternList, clusterList, minIdeas)
}

func buildTitlesPrompt(niche string, idea models.VideoIdea, topVideos []models.ScoredVideo) string {
	var topList strings.Builder
	capped := topVideos
	if len(capped) > 5 {
		capped = capped[:5]
	}
	for i, v := range capped {
		fmt.Fprintf(&topList, "%d. %q (Grade: %s, Score: %.1f, Views: %s)\n",
			i+1, v.Snippet.Title, v.Grade, v.Scores.Composite, scoring.FormatViews(v.Stats.ViewCount))
	}

	return fmt.Sprintf(`You are a YouTube title optimization expert. Based on the analysis of trending videos in the %q niche, generate 8 click-worthy title suggestions.

## Context
The user is exploring the %q niche. Their content idea is:
- Type: %s
- Concept: %q
- Reasoning: %s
- Optimal length: %s

## Top Performing Videos in This Niche
%s
## Instructions
Generate exactly 8 title variations. Each title should:
- Use proven YouTube patterns (curiosity gap, numbers, emotional hooks, power words)
- Be 40-70 characters for optimal CTR
- Feel natural, not clickbaity
- Be distinct from each other (different angles/hooks)

Respond ONLY with valid JSON, no markdown fences:
[{"title": "...", "reasoning": "..."}]

Each reasoning should be 1 short sentence explaining the hook used.`,
		niche, niche, idea.Type, idea.SuggestedTitle, idea.Reasoning, idea.OptimalLength,
		topList.String())
}

// rawBrief mirrors the JSON shape the prompt asks for.
type rawBrief struct {
	Title            string   `json:"title"`
	Hook             string   `json:"hook"`
	Outline          []string `json:"outline"`
	ThumbnailConcept string   `json:"thumbnailConcept"`
	WhyThisWillWork  string   `json:"whyThisWillWork"`
	UniqueAngle      string   `json:"uniqueAngle"`
	OptimalLength    string   `json:"optimalLength"`
	SuggestedTags    []string `json:"suggestedTags"`
	BasedOnIndices   []int    `json:"basedOnIndices"`
}

func parseBriefsResponse(response string, videos []models.ScoredVideo) ([]models.VideoBrief, error) {
	var raw []rawBrief
	if err := json.Unmarshal([]byte(extractJSONArray(response)), &raw); err != nil {
		return nil, fmt.Errorf("response is not a JSON array: %w", err)
	}

	briefs := make([]models.VideoBrief, 0, len(raw))
	for i, item := range raw {
		if item.Title == "" {
			continue
		}

		var basedOn []models.BriefRef
		for _, idx := range item.BasedOnIndices {
			if idx < 0 || idx >= len(videos) {
				continue
			}
			v := videos[idx]
			basedOn = append(basedOn, models.BriefRef{
				VideoID: v.Snippet.VideoID,
				Title:   v.Snippet.Title,
				Views:   v.Stats.ViewCount,
				Grade:   v.Grade,
			})
		}

		length := item.OptimalLength
		if length == "" {
			length = "varies"
		}

		briefs = append(briefs, models.VideoBrief{
			ID:               i + 1,
			Title:            item.Title,
			Hook:             item.Hook,
			Outline:          item.Outline,
			ThumbnailConcept: item.ThumbnailConcept,
			WhyThisWillWork:  item.WhyThisWillWork,
			UniqueAngle:      item.UniqueAngle,
			BasedOn:          basedOn,
			OptimalLength:    length,
			SuggestedTags:    item.SuggestedTags,
		})
	}

	if len(briefs) == 0 {
		return nil, fmt.Errorf("no usable briefs in response")
	}
	return briefs, nil
}

// extractJSONArray strips markdown fences and any prose around the first JSON
// array in the response.
func extractJSONArray(response string) string {
	cleaned := strings.ReplaceAll(response, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = strings.TrimSpace(cleaned)

	startIdx := strings.Index(cleaned, "[")
	endIdx := strings.LastIndex(cleaned, "]")
	if startIdx == -1 || endIdx == -1 || endIdx < startIdx {
		return cleaned
	}
	return cleaned[startIdx : endIdx+1]
}
