package youtube

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var (
	channelIDRe  = regexp.MustCompile(`^UC[\w-]{22}$`)
	channelURLRe = regexp.MustCompile(`/channel/(UC[\w-]{22})`)
	handleRe     = regexp.MustCompile(`@([\w.-]+)`)
)

// ResolveChannel turns a channel URL, @handle, or raw UC... ID into a channel
// ID. Handles are resolved via channels.list forHandle; anything else falls
// back to a channel search.
func (c *Client) ResolveChannel(ctx context.Context, input string) (string, int, error) {
	trimmed := strings.TrimSpace(input)
	quota := 0

	if channelIDRe.MatchString(trimmed) {
		return trimmed, quota, nil
	}
	if m := channelURLRe.FindStringSubmatch(trimmed); m != nil {
		return m[1], quota, nil
	}

	if m := handleRe.FindStringSubmatch(trimmed); m != nil {
		result, err := c.service.Channels.List([]string{"id"}).
			ForHandle(m[1]).
			Context(ctx).
			Do()
		quota += listQuotaCost
		if err == nil && len(result.Items) > 0 {
			return result.Items[0].Id, quota, nil
		}
	}

	// Last resort: search for the channel by name.
	result, err := c.service.Search.List([]string{"snippet"}).
		Q(trimmed).
		Type("channel").
		MaxResults(1).
		Context(ctx).
		Do()
	quota += searchQuotaCost
	if err != nil {
		return "", quota, fmt.Errorf("channel search for %q: %w", trimmed, err)
	}
	if len(result.Items) > 0 && result.Items[0].Id != nil && result.Items[0].Id.ChannelId != "" {
		return result.Items[0].Id.ChannelId, quota, nil
	}

	return "", quota, fmt.Errorf("could not resolve channel %q; try a direct channel URL or @handle", input)
}

// ChannelInfoByID fetches a single channel's identity and statistics.
func (c *Client) ChannelInfoByID(ctx context.Context, channelID string) (*ChannelIdentity, int, error) {
	result, err := c.service.Channels.List([]string{"snippet", "statistics"}).
		Id(channelID).
		Context(ctx).
		Do()
	if err != nil {
		return nil, listQuotaCost, fmt.Errorf("fetch channel %s: %w", channelID, err)
	}
	if len(result.Items) == 0 {
		return nil, listQuotaCost, fmt.Errorf("channel %s not found", channelID)
	}

	item := result.Items[0]
	info := &ChannelIdentity{ChannelID: item.Id}
	if item.Snippet != nil {
		info.Title = item.Snippet.Title
		info.ThumbnailURL = bestThumbnail(item.Snippet.Thumbnails)
	}
	if item.Statistics != nil {
		info.HiddenSubs = item.Statistics.HiddenSubscriberCount
		if !info.HiddenSubs {
			info.SubscriberCount = int64(item.Statistics.SubscriberCount)
		}
		info.TotalViews = int64(item.Statistics.ViewCount)
		info.VideoCount = int64(item.Statistics.VideoCount)
	}
	return info, listQuotaCost, nil
}

// ChannelIdentity is a resolved channel plus its headline statistics.
type ChannelIdentity struct {
	ChannelID       string
	Title           string
	SubscriberCount int64
	TotalViews      int64
	VideoCount      int64
	HiddenSubs      bool
	ThumbnailURL    string
}

// ChannelVideoIDs returns up to 50 recent video IDs for a channel, newest
// first. Costs one search call.
func (c *Client) ChannelVideoIDs(ctx context.Context, channelID string) ([]string, int, error) {
	result, err := c.service.Search.List([]string{"id"}).
		ChannelId(channelID).
		Type("video").
		Order("date").
		MaxResults(batchSize).
		Context(ctx).
		Do()
	if err != nil {
		return nil, searchQuotaCost, fmt.Errorf("list videos for channel %s: %w", channelID, err)
	}

	var ids []string
	for _, item := range result.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			ids = append(ids, item.Id.VideoId)
		}
	}
	return ids, searchQuotaCost, nil
}

// MyChannelID resolves the authenticated user's own channel. Requires an
// OAuth-backed client; API-key clients get a quota-free error from the API.
func (c *Client) MyChannelID(ctx context.Context) (string, error) {
	result, err := c.service.Channels.List([]string{"id"}).
		Mine(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("fetch own channel (did you authorize with --oauth?): %w", err)
	}
	if len(result.Items) == 0 {
		return "", fmt.Errorf("no channel associated with the authorized account")
	}
	return result.Items[0].Id, nil
}
