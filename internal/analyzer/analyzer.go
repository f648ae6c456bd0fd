package analyzer

import (
	"context"
	"fmt"
	"log"
	"time"

	"outlier-scout/internal/models"
	"outlier-scout/internal/scoring"
	"outlier-scout/internal/youtube"
	"outlier-scout/shared/config"
)

// VideoSource is the slice of the YouTube client the analyzer depends on.
type VideoSource interface {
	Search(ctx context.Context, opts youtube.SearchOptions) (*youtube.SearchResponse, error)
	VideoDetails(ctx context.Context, videoIDs []string) ([]models.VideoRecord, int, error)
	ChannelStats(ctx context.Context, channelIDs []string) (map[string]models.ChannelRecord, int, error)
	ResolveChannel(ctx context.Context, input string) (string, int, error)
	ChannelInfoByID(ctx context.Context, channelID string) (*youtube.ChannelIdentity, int, error)
	ChannelVideoIDs(ctx context.Context, channelID string) ([]string, int, error)
}

// Analyzer runs the full niche and channel analysis pipelines: fetch, score,
// and derive ideas.
type Analyzer struct {
	source   VideoSource
	defaults config.AnalysisConfig
}

func New(source VideoSource, defaults config.AnalysisConfig) *Analyzer {
	return &Analyzer{source: source, defaults: defaults}
}

// AnalyzeNiche searches a niche, enriches the hits with video and channel
// statistics, ranks the outliers, and derives content ideas.
func (a *Analyzer) AnalyzeNiche(ctx context.Context, req models.AnalyzeRequest) (*models.AnalyzeResponse, error) {
	if req.Niche == "" {
		return nil, fmt.Errorf("niche query is required")
	}
	req = a.withDefaults(req)

	// Scale pages per region so multi-region runs stay within quota.
	pagesPerRegion := req.MaxPages
	if len(req.Regions) > 1 {
		pagesPerRegion = (req.MaxPages + len(req.Regions) - 1) / len(req.Regions)
		if pagesPerRegion < 1 {
			pagesPerRegion = 1
		}
	}

	quota := 0
	seen := make(map[string]bool)
	var hits []youtube.SearchHit

	for _, region := range req.Regions {
		result, err := a.source.Search(ctx, youtube.SearchOptions{
			Query:              req.Niche,
			MaxPages:           pagesPerRegion,
			PublishedAfterDays: req.PublishedWithinDays,
			RegionCode:         region,
			Language:           "en",
		})
		if err != nil {
			return nil, fmt.Errorf("search region %s: %w", region, err)
		}
		quota += result.QuotaUsed

		for _, hit := range result.Hits {
			if !seen[hit.VideoID] {
				seen[hit.VideoID] = true
				hits = append(hits, hit)
			}
		}
	}

	if len(hits) == 0 {
		return nil, fmt.Errorf("no videos found for %q; try different keywords or a wider date range", req.Niche)
	}
	log.Printf("Search found %d videos for %q across %d region(s)", len(hits), req.Niche, len(req.Regions))

	videoIDs := make([]string, 0, len(hits))
	thumbnails := make(map[string]string, len(hits))
	for _, hit := range hits {
		videoIDs = append(videoIDs, hit.VideoID)
		if hit.ThumbnailURL != "" {
			thumbnails[hit.VideoID] = hit.ThumbnailURL
		}
	}

	videos, detailQuota, err := a.source.VideoDetails(ctx, videoIDs)
	quota += detailQuota
	if err != nil {
		return nil, fmt.Errorf("fetch video details: %w", err)
	}

	channelIDs := make([]string, 0, len(videos))
	for _, v := range videos {
		channelIDs = append(channelIDs, v.ChannelID)
	}
	channels, channelQuota, err := a.source.ChannelStats(ctx, channelIDs)
	quota += channelQuota
	if err != nil {
		return nil, fmt.Errorf("fetch channel stats: %w", err)
	}

	scored := scoring.ScoreVideos(videos, channels, scoring.Filters{
		MinViews:           req.MinViews,
		MaxChannelSubs:     0,
		PublishedAfterDays: req.PublishedWithinDays,
		IncludeShorts:      req.IncludeShorts,
		TopN:               a.defaults.TopN,
	})

	// Search thumbnails are higher quality than the videos.list defaults.
	for i := range scored {
		if scored[i].Snippet.ThumbnailURL == "" {
			scored[i].Snippet.ThumbnailURL = thumbnails[scored[i].Snippet.VideoID]
		}
	}

	ideas := scoring.GenerateIdeas(scored, req.MaxIdeas)
	log.Printf("Scored %d outliers, generated %d ideas (quota used: %d)", len(scored), len(ideas), quota)

	return &models.AnalyzeResponse{
		Videos:    scored,
		Ideas:     ideas,
		QuotaUsed: quota,
		Query:     req.Niche,
		Timestamp: time.Now().UTC(),
	}, nil
}

// SpyChannel ranks one channel's recent uploads against each other, so the
// scores are channel-relative rather than niche-relative.
func (a *Analyzer) SpyChannel(ctx context.Context, req models.ChannelSpyRequest) (*models.ChannelSpyResponse, error) {
	if req.ChannelInput == "" {
		return nil, fmt.Errorf("channel URL or handle is required")
	}

	channelID, quota, err := a.source.ResolveChannel(ctx, req.ChannelInput)
	if err != nil {
		return nil, err
	}

	identity, infoQuota, err := a.source.ChannelInfoByID(ctx, channelID)
	quota += infoQuota
	if err != nil {
		return nil, err
	}

	videoIDs, searchQuota, err := a.source.ChannelVideoIDs(ctx, channelID)
	quota += searchQuota
	if err != nil {
		return nil, err
	}
	if len(videoIDs) == 0 {
		return nil, fmt.Errorf("no videos found for channel %q", identity.Title)
	}

	videos, detailQuota, err := a.source.VideoDetails(ctx, videoIDs)
	quota += detailQuota
	if err != nil {
		return nil, fmt.Errorf("fetch video details: %w", err)
	}

	channels := map[string]models.ChannelRecord{
		channelID: {
			ChannelID:       channelID,
			Title:           identity.Title,
			SubscriberCount: identity.SubscriberCount,
			TotalViews:      identity.TotalViews,
			VideoCount:      identity.VideoCount,
			HiddenSubs:      identity.HiddenSubs || identity.SubscriberCount <= 0,
		},
	}

	scored := scoring.ScoreVideos(videos, channels, scoring.Filters{
		MinViews:           0,
		MaxChannelSubs:     0,
		PublishedAfterDays: 365, // last year of uploads
		IncludeShorts:      true,
		TopN:               a.defaults.TopN,
	})

	return &models.ChannelSpyResponse{
		Channel: models.ChannelInfo{
			ChannelID:       identity.ChannelID,
			Title:           identity.Title,
			SubscriberCount: identity.SubscriberCount,
			TotalViews:      identity.TotalViews,
			VideoCount:      identity.VideoCount,
			ThumbnailURL:    identity.ThumbnailURL,
		},
		Videos:    scored,
		QuotaUsed: quota,
		Timestamp: time.Now().UTC(),
	}, nil
}

func (a *Analyzer) withDefaults(req models.AnalyzeRequest) models.AnalyzeRequest {
	if req.MaxPages == 0 {
		req.MaxPages = a.defaults.MaxPages
	}
	if req.PublishedWithinDays == 0 {
		req.PublishedWithinDays = a.defaults.PublishedWithinDays
	}
	if req.MinViews == 0 {
		req.MinViews = a.defaults.MinViews
	}
	if len(req.Regions) == 0 {
		req.Regions = a.defaults.Regions
	}
	if req.MaxIdeas == 0 {
		req.MaxIdeas = a.defaults.MaxIdeas
	}
	return req
}
