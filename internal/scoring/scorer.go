package scoring

import (
	"sort"
	"time"

	"outlier-scout/internal/models"
)

// Filters narrows the candidate population before scoring.
type Filters struct {
	MinViews           int64 // discard videos below this view count
	MaxChannelSubs     int64 // discard channels above this subscriber count; 0 = unlimited
	PublishedAfterDays int   // discard videos older than this many days
	IncludeShorts      bool  // keep videos with duration <= 60s
	TopN               int   // maximum number of results
}

// enrichedVideo joins a video with its channel plus the derived signals.
// Lives only within one ScoreVideos call.
type enrichedVideo struct {
	video              models.VideoRecord
	channelTitle       string
	channelSubscribers int64
	hiddenSubs         bool
	velocity           float64
	engagementRate     float64
	viewsSubRatio      *float64 // nil when subscriber count is hidden or zero
}

// ScoreVideos filters, enriches, normalizes, and ranks the candidate videos.
// Videos whose channel is missing from channelsByID are silently excluded.
// An empty post-filter population yields an empty slice, never an error.
func ScoreVideos(videos []models.VideoRecord, channelsByID map[string]models.ChannelRecord, filters Filters) []models.ScoredVideo {
	now := time.Now()
	cutoff := now.Add(-time.Duration(filters.PublishedAfterDays) * 24 * time.Hour)

	// Step 1: filter and enrich.
	var enriched []enrichedVideo
	for _, video := range videos {
		if video.ViewCount < filters.MinViews {
			continue
		}
		if video.PublishedAt.Before(cutoff) {
			continue
		}
		if !filters.IncludeShorts && video.IsShort {
			continue
		}

		channel, ok := channelsByID[video.ChannelID]
		if !ok {
			continue
		}
		if !channel.HiddenSubs && filters.MaxChannelSubs > 0 && channel.SubscriberCount > filters.MaxChannelSubs {
			continue
		}

		daysSincePublished := now.Sub(video.PublishedAt).Hours() / 24
		if daysSincePublished < 0.5 {
			daysSincePublished = 0.5
		}

		velocity := float64(video.ViewCount) / daysSincePublished

		views := video.ViewCount
		if views < 1 {
			views = 1
		}
		engagementRate := float64(video.LikeCount+video.CommentCount) / float64(views)

		var viewsSubRatio *float64
		if !channel.HiddenSubs && channel.SubscriberCount > 0 {
			r := float64(video.ViewCount) / float64(channel.SubscriberCount)
			viewsSubRatio = &r
		}

		enriched = append(enriched, enrichedVideo{
			video:              video,
			channelTitle:       channel.Title,
			channelSubscribers: channel.SubscriberCount,
			hiddenSubs:         channel.HiddenSubs,
			velocity:           velocity,
			engagementRate:     engagementRate,
			viewsSubRatio:      viewsSubRatio,
		})
	}

	if len(enriched) == 0 {
		return []models.ScoredVideo{}
	}

	// Step 2: z-scores across the surviving population. The views-to-sub
	// ratio is normalized only over the subset where it is defined.
	velocityValues := make([]float64, len(enriched))
	engagementValues := make([]float64, len(enriched))
	for i, e := range enriched {
		velocityValues[i] = e.velocity
		engagementValues[i] = e.engagementRate
	}
	velocityZ := ComputeZScores(velocityValues)
	engagementZ := ComputeZScores(engagementValues)

	var vsrIndices []int
	var vsrValues []float64
	for i, e := range enriched {
		if e.viewsSubRatio != nil {
			vsrIndices = append(vsrIndices, i)
			vsrValues = append(vsrValues, *e.viewsSubRatio)
		}
	}
	vsrZ := ComputeZScores(vsrValues)
	vsrZByIndex := make(map[int]float64, len(vsrIndices))
	for j, idx := range vsrIndices {
		vsrZByIndex[idx] = vsrZ[j]
	}

	// Step 3: composite score and grade. A video with a hidden subscriber
	// count uses the alternate weight table; both formulas can appear in
	// the same run.
	scored := make([]models.ScoredVideo, len(enriched))
	for i, e := range enriched {
		var composite float64
		if z, ok := vsrZByIndex[i]; ok {
			composite = weightViewsSub*z + weightVelocity*velocityZ[i] + weightEngagement*engagementZ[i]
		} else {
			composite = weightVelocityAlt*velocityZ[i] + weightEngagementAlt*engagementZ[i]
		}

		scored[i] = models.ScoredVideo{
			Grade: AssignGrade(composite),
			Snippet: models.VideoSnippet{
				VideoID:      e.video.VideoID,
				Title:        e.video.Title,
				ChannelID:    e.video.ChannelID,
				ChannelTitle: e.channelTitle,
				PublishedAt:  e.video.PublishedAt,
				ThumbnailURL: e.video.ThumbnailURL,
				Tags:         e.video.Tags,
				Duration:     e.video.Duration,
			},
			Stats: models.VideoStats{
				ViewCount:       e.video.ViewCount,
				LikeCount:       e.video.LikeCount,
				CommentCount:    e.video.CommentCount,
				SubscriberCount: e.channelSubscribers,
			},
			Scores: models.ScoreBreakdown{
				ViewsToSubRatio: e.viewsSubRatio,
				Velocity:        e.velocity,
				Engagement:      e.engagementRate * 100,
				Composite:       composite,
			},
		}
	}

	// Step 4: rank and truncate. Stable sort keeps original relative order
	// on ties.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Scores.Composite > scored[j].Scores.Composite
	})

	if filters.TopN > 0 && len(scored) > filters.TopN {
		scored = scored[:filters.TopN]
	}
	for i := range scored {
		scored[i].Rank = i + 1
	}

	return scored
}
