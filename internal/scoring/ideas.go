package scoring

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"outlier-scout/internal/models"
)

// detectTitlePatterns returns the labels of every title pattern the cleaned
// title matches, in fixed table order.
func detectTitlePatterns(title string) []string {
	var labels []string
	for _, p := range titlePatterns {
		if p.re.MatchString(title) {
			labels = append(labels, p.label)
		}
	}
	return labels
}

// durationMinutes parses an ISO 8601 duration into fractional minutes.
func durationMinutes(iso string) float64 {
	return float64(ParseDuration(iso)) / 60
}

// formatDurationRange reports the 25th-75th percentile of the contributing
// videos' durations in minutes. A single parseable duration yields an
// approximate value; none at all yields "varies".
func formatDurationRange(videos []models.ScoredVideo) string {
	var durations []float64
	for _, v := range videos {
		if d := durationMinutes(v.Snippet.Duration); d > 0 {
			durations = append(durations, d)
		}
	}
	sort.Float64s(durations)

	switch len(durations) {
	case 0:
		return "varies"
	case 1:
		return fmt.Sprintf("~%d minutes", int(math.Round(durations[0])))
	}

	p25 := durations[int(float64(len(durations))*0.25)]
	p75 := durations[int(float64(len(durations))*0.75)]
	return fmt.Sprintf("%d-%d minutes", int(math.Round(p25)), int(math.Round(p75)))
}

// estimateCompetition buckets an idea purely by how many videos back it.
func estimateCompetition(videoCount int) models.CompetitionLevel {
	switch {
	case videoCount <= 3:
		return models.CompetitionLow
	case videoCount <= 8:
		return models.CompetitionMedium
	default:
		return models.CompetitionHigh
	}
}

// collectTags returns the most frequent tags across the videos, capped at max.
func collectTags(videos []models.ScoredVideo, max int) []string {
	freq := make(map[string]int)
	var order []string
	for _, v := range videos {
		for _, tag := range v.Snippet.Tags {
			if freq[tag] == 0 {
				order = append(order, tag)
			}
			freq[tag]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return freq[order[i]] > freq[order[j]]
	})
	if len(order) > max {
		order = order[:max]
	}
	return order
}

// PatternSummary reports how one title format performs across a ranked
// population.
type PatternSummary struct {
	Pattern  string  `json:"pattern"`
	Count    int     `json:"count"`
	AvgScore float64 `json:"avgScore"`
}

// AnalyzeTitlePatterns summarizes which title formats appear at least twice,
// best-performing first.
func AnalyzeTitlePatterns(videos []models.ScoredVideo) []PatternSummary {
	matched := make(map[string][]float64)
	for _, v := range videos {
		for _, label := range detectTitlePatterns(cleanTitle(v.Snippet.Title)) {
			matched[label] = append(matched[label], v.Scores.Composite)
		}
	}

	var summaries []PatternSummary
	for _, p := range titlePatterns {
		scores := matched[p.label]
		if len(scores) < 2 {
			continue
		}
		sum := 0.0
		for _, s := range scores {
			sum += s
		}
		summaries = append(summaries, PatternSummary{
			Pattern:  p.label,
			Count:    len(scores),
			AvgScore: sum / float64(len(scores)),
		})
	}
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].AvgScore > summaries[j].AvgScore
	})
	return summaries
}

// FormatViews renders a view count compactly, e.g. 1.2M or 45K.
func FormatViews(n int64) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.0fK", float64(n)/1_000)
	default:
		return fmt.Sprintf("%d", n)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func sortByComposite(videos []models.ScoredVideo) []models.ScoredVideo {
	sorted := make([]models.ScoredVideo, len(videos))
	copy(sorted, videos)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Scores.Composite > sorted[j].Scores.Composite
	})
	return sorted
}

// GenerateIdeas derives up to maxIdeas structured content suggestions from a
// ranked video population. Three strategies run in fixed order, each with a
// roughly equal share of the budget: topic clusters, standout single videos,
// and winning title formats. Later strategies are skipped once the budget is
// spent.
func GenerateIdeas(videos []models.ScoredVideo, maxIdeas int) []models.VideoIdea {
	if len(videos) == 0 {
		return []models.VideoIdea{}
	}
	if maxIdeas <= 0 {
		maxIdeas = 9
	}

	ideas := []models.VideoIdea{}
	nextID := 1
	usedVideoIDs := make(map[string]bool)

	// Strategy 1: trending topics.
	slotShare := (maxIdeas + 2) / 3
	clusters := ExtractTopicClusters(videos, slotShare)

	for _, cluster := range clusters {
		best := sortByComposite(cluster.Videos)
		if len(best) > 3 {
			best = best[:3]
		}

		topTitle := cleanTitle(best[0].Snippet.Title)
		topViews := FormatViews(best[0].Stats.ViewCount)

		var formats []string
		for _, v := range best {
			formats = append(formats, detectTitlePatterns(cleanTitle(v.Snippet.Title))...)
		}
		formatHint := ""
		if len(formats) > 0 {
			formatHint = fmt.Sprintf(" The %q format works well here.", formats[0])
		}

		basedOn := make([]models.VideoRef, 0, len(best))
		for _, v := range best {
			basedOn = append(basedOn, models.VideoRef{VideoID: v.Snippet.VideoID, Title: cleanTitle(v.Snippet.Title)})
			usedVideoIDs[v.Snippet.VideoID] = true
		}

		ideas = append(ideas, models.VideoIdea{
			ID:   nextID,
			Type: models.IdeaTrendingTopic,
			SuggestedTitle: fmt.Sprintf("Make a video about %q — %d outlier videos prove demand",
				capitalize(cluster.Topic), len(cluster.Videos)),
			Reasoning: fmt.Sprintf("%q is trending in this niche. %d videos feature this topic with an avg outlier score of %.1f. The top performer %q hit %s views.%s",
				capitalize(cluster.Topic), len(cluster.Videos), cluster.AvgScore, topTitle, topViews, formatHint),
			BasedOn:       basedOn,
			CommonTags:    collectTags(cluster.Videos, 8),
			AvgScore:      cluster.AvgScore,
			OptimalLength: formatDurationRange(cluster.Videos),
			Competition:   estimateCompetition(len(cluster.Videos)),
		})
		nextID++
	}

	// Strategy 2: standout videos. Individual A+/A/B+ performers not already
	// claimed by a topic cluster, in existing rank order.
	standoutSlots := (maxIdeas + 2) / 3
	var standouts []models.ScoredVideo
	for _, v := range videos {
		if v.Grade != "A+" && v.Grade != "A" && v.Grade != "B+" {
			continue
		}
		if usedVideoIDs[v.Snippet.VideoID] {
			continue
		}
		standouts = append(standouts, v)
		if len(standouts) >= standoutSlots*2 {
			break
		}
	}

	for _, video := range standouts {
		if len(ideas) >= len(clusters)+standoutSlots {
			break
		}

		cleaned := cleanTitle(video.Snippet.Title)
		patterns := detectTitlePatterns(cleaned)
		viewsStr := FormatViews(video.Stats.ViewCount)

		ratio := 0.0
		if video.Scores.ViewsToSubRatio != nil {
			ratio = *video.Scores.ViewsToSubRatio
		}

		formatAdvice := "Find your own unique angle on this topic."
		if len(patterns) > 0 {
			formatAdvice = fmt.Sprintf("Use the %q format — it clearly resonates.", patterns[0])
		}

		ideas = append(ideas, models.VideoIdea{
			ID:   nextID,
			Type: models.IdeaStandoutVideo,
			SuggestedTitle: fmt.Sprintf("Create your own take on %q — it hit %s views (%.1fx subs)",
				cleaned, viewsStr, ratio),
			Reasoning: fmt.Sprintf("This video scored %s (%.1f) with %s views — that's %.1fx the channel's subscriber count. %s Put your unique spin on this angle.",
				video.Grade, video.Scores.Composite, viewsStr, ratio, formatAdvice),
			BasedOn:       []models.VideoRef{{VideoID: video.Snippet.VideoID, Title: cleaned}},
			CommonTags:    firstN(video.Snippet.Tags, 8),
			AvgScore:      video.Scores.Composite,
			OptimalLength: formatDurationRange([]models.ScoredVideo{video}),
			Competition:   models.CompetitionLow,
		})
		nextID++
		usedVideoIDs[video.Snippet.VideoID] = true
	}

	// Strategy 3: winning title formats, with whatever budget remains.
	formatSlots := maxIdeas - len(ideas)
	if formatSlots > 0 {
		patternVideos := make(map[string][]models.ScoredVideo)
		for _, v := range videos {
			for _, label := range detectTitlePatterns(cleanTitle(v.Snippet.Title)) {
				patternVideos[label] = append(patternVideos[label], v)
			}
		}

		type rankedPattern struct {
			label    string
			videos   []models.ScoredVideo
			avgScore float64
		}
		var ranked []rankedPattern
		for _, p := range titlePatterns {
			vids := patternVideos[p.label]
			if len(vids) < 2 {
				continue
			}
			sum := 0.0
			for _, v := range vids {
				sum += v.Scores.Composite
			}
			avg := sum / float64(len(vids))
			if avg <= -0.5 {
				continue
			}
			ranked = append(ranked, rankedPattern{p.label, vids, avg})
		}
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].avgScore > ranked[j].avgScore
		})

		for i := 0; i < len(ranked) && i < formatSlots; i++ {
			entry := ranked[i]
			best := sortByComposite(entry.videos)
			bestTitle := cleanTitle(best[0].Snippet.Title)
			bestViews := FormatViews(best[0].Stats.ViewCount)

			cite := best
			if len(cite) > 3 {
				cite = cite[:3]
			}
			basedOn := make([]models.VideoRef, 0, len(cite))
			for _, v := range cite {
				basedOn = append(basedOn, models.VideoRef{VideoID: v.Snippet.VideoID, Title: cleanTitle(v.Snippet.Title)})
			}

			ideas = append(ideas, models.VideoIdea{
				ID:   nextID,
				Type: models.IdeaWinningFormat,
				SuggestedTitle: fmt.Sprintf("Try the %q format — %d top videos use it (avg score %.1f)",
					entry.label, len(entry.videos), entry.avgScore),
				Reasoning: fmt.Sprintf("The %q title structure is outperforming in this niche. %d videos use it with an average score of %.1f. Best example: %q with %s views. Structure your next video this way.",
					entry.label, len(entry.videos), entry.avgScore, bestTitle, bestViews),
				BasedOn:       basedOn,
				CommonTags:    collectTags(entry.videos, 8),
				AvgScore:      entry.avgScore,
				OptimalLength: formatDurationRange(entry.videos),
				Competition:   estimateCompetition(len(entry.videos)),
			})
			nextID++
		}
	}

	if len(ideas) > maxIdeas {
		ideas = ideas[:maxIdeas]
	}
	return ideas
}

func firstN(tags []string, n int) []string {
	if len(tags) > n {
		return tags[:n]
	}
	return tags
}
