package youtube

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"outlier-scout/internal/models"
	"outlier-scout/internal/scoring"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Quota costs per the YouTube Data API v3 pricing table.
const (
	searchQuotaCost = 100
	listQuotaCost   = 1

	batchSize = 50
)

// Client wraps the YouTube Data API for the read-only calls the analyzer
// needs: niche search, video details, and channel statistics.
type Client struct {
	service *youtube.Service
}

// NewClient creates an API-key authenticated client. All public-data
// operations work with a plain API key; only Mine() calls need OAuth.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	return &Client{service: service}, nil
}

// SearchOptions controls one paginated niche search.
type SearchOptions struct {
	Query              string
	MaxPages           int
	PublishedAfterDays int
	Order              string // defaults to "relevance"
	RegionCode         string
	Language           string
}

// SearchHit is one search result before detail enrichment.
type SearchHit struct {
	VideoID      string
	ChannelID    string
	Title        string
	Description  string
	PublishedAt  time.Time
	ThumbnailURL string
}

// SearchResponse carries the deduplicated hits plus quota accounting.
type SearchResponse struct {
	Hits         []SearchHit
	PagesFetched int
	QuotaUsed    int
}

// Search pages through search.list results for a niche query, deduplicating
// by video ID. Each page costs 100 quota units.
func (c *Client) Search(ctx context.Context, opts SearchOptions) (*SearchResponse, error) {
	order := opts.Order
	if order == "" {
		order = "relevance"
	}
	publishedAfter := time.Now().
		Add(-time.Duration(opts.PublishedAfterDays) * 24 * time.Hour).
		Format(time.RFC3339)

	resp := &SearchResponse{}
	seen := make(map[string]bool)
	pageToken := ""

	for page := 0; page < opts.MaxPages; page++ {
		call := c.service.Search.List([]string{"snippet"}).
			Q(opts.Query).
			Type("video").
			Order(order).
			MaxResults(batchSize).
			PublishedAfter(publishedAfter).
			Context(ctx)
		if opts.RegionCode != "" {
			call = call.RegionCode(opts.RegionCode)
		}
		if opts.Language != "" {
			call = call.RelevanceLanguage(opts.Language)
		}
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		result, err := call.Do()
		resp.QuotaUsed += searchQuotaCost
		if err != nil {
			return nil, fmt.Errorf("search page %d for %q: %w", page+1, opts.Query, err)
		}
		resp.PagesFetched++

		for _, item := range result.Items {
			if item.Id == nil || item.Id.VideoId == "" || seen[item.Id.VideoId] {
				continue
			}
			seen[item.Id.VideoId] = true

			hit := SearchHit{VideoID: item.Id.VideoId}
			if item.Snippet != nil {
				hit.ChannelID = item.Snippet.ChannelId
				hit.Title = item.Snippet.Title
				hit.Description = item.Snippet.Description
				hit.ThumbnailURL = bestThumbnail(item.Snippet.Thumbnails)
				if publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
					hit.PublishedAt = publishedAt
				}
			}
			resp.Hits = append(resp.Hits, hit)
		}

		pageToken = result.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return resp, nil
}

// VideoDetails fetches snippet, statistics, and content details for the given
// video IDs, batching into groups of 50. Returns the records plus quota used.
func (c *Client) VideoDetails(ctx context.Context, videoIDs []string) ([]models.VideoRecord, int, error) {
	if len(videoIDs) == 0 {
		return nil, 0, nil
	}

	var records []models.VideoRecord
	quota := 0

	for i := 0; i < len(videoIDs); i += batchSize {
		end := i + batchSize
		if end > len(videoIDs) {
			end = len(videoIDs)
		}

		result, err := c.service.Videos.List([]string{"snippet", "statistics", "contentDetails"}).
			Id(strings.Join(videoIDs[i:end], ",")).
			Context(ctx).
			Do()
		quota += listQuotaCost
		if err != nil {
			return nil, quota, fmt.Errorf("fetch video details batch: %w", err)
		}

		for _, item := range result.Items {
			record := models.VideoRecord{VideoID: item.Id}

			if item.Snippet != nil {
				record.ChannelID = item.Snippet.ChannelId
				record.Title = item.Snippet.Title
				record.Tags = item.Snippet.Tags
				record.CategoryID = item.Snippet.CategoryId
				record.ThumbnailURL = bestThumbnail(item.Snippet.Thumbnails)
				if publishedAt, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
					record.PublishedAt = publishedAt
				}
			}
			if item.ContentDetails != nil {
				record.Duration = item.ContentDetails.Duration
				record.DurationSeconds = scoring.ParseDuration(item.ContentDetails.Duration)
				record.IsShort = record.DurationSeconds > 0 && record.DurationSeconds <= 60
			}
			if item.Statistics != nil {
				record.ViewCount = int64(item.Statistics.ViewCount)
				record.LikeCount = int64(item.Statistics.LikeCount)
				record.CommentCount = int64(item.Statistics.CommentCount)
			}

			records = append(records, record)
		}
	}

	return records, quota, nil
}

// ChannelStats fetches channel statistics keyed by channel ID. Input IDs are
// deduplicated and batched. Hidden subscriber counts are preserved as a flag,
// never as a zero count.
func (c *Client) ChannelStats(ctx context.Context, channelIDs []string) (map[string]models.ChannelRecord, int, error) {
	seen := make(map[string]bool)
	var unique []string
	for _, id := range channelIDs {
		if id != "" && !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}
	if len(unique) == 0 {
		return map[string]models.ChannelRecord{}, 0, nil
	}

	channels := make(map[string]models.ChannelRecord, len(unique))
	quota := 0

	for i := 0; i < len(unique); i += batchSize {
		end := i + batchSize
		if end > len(unique) {
			end = len(unique)
		}

		result, err := c.service.Channels.List([]string{"snippet", "statistics"}).
			Id(strings.Join(unique[i:end], ",")).
			Context(ctx).
			Do()
		quota += listQuotaCost
		if err != nil {
			return nil, quota, fmt.Errorf("fetch channel stats batch: %w", err)
		}

		for _, item := range result.Items {
			record := models.ChannelRecord{ChannelID: item.Id}
			if item.Snippet != nil {
				record.Title = item.Snippet.Title
			}
			if item.Statistics != nil {
				record.HiddenSubs = item.Statistics.HiddenSubscriberCount
				if !record.HiddenSubs {
					record.SubscriberCount = int64(item.Statistics.SubscriberCount)
				}
				record.TotalViews = int64(item.Statistics.ViewCount)
				record.VideoCount = int64(item.Statistics.VideoCount)
			}
			channels[item.Id] = record
		}
	}

	log.Printf("Fetched stats for %d/%d channels", len(channels), len(unique))
	return channels, quota, nil
}

func bestThumbnail(details *youtube.ThumbnailDetails) string {
	if details == nil {
		return ""
	}
	if details.High != nil && details.High.Url != "" {
		return details.High.Url
	}
	if details.Medium != nil && details.Medium.Url != "" {
		return details.Medium.Url
	}
	if details.Default != nil {
		return details.Default.Url
	}
	return ""
}
