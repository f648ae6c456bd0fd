package models

import "time"

// ChannelInfo is the resolved identity of a channel being spied on.
type ChannelInfo struct {
	ChannelID       string `json:"channelId"`
	Title           string `json:"title"`
	SubscriberCount int64  `json:"subscriberCount"`
	TotalViews      int64  `json:"totalViews"`
	VideoCount      int64  `json:"videoCount"`
	ThumbnailURL    string `json:"thumbnailUrl"`
}

// AnalyzeRequest describes one niche analysis run.
type AnalyzeRequest struct {
	Niche               string   `json:"niche"`
	MaxPages            int      `json:"maxPages,omitempty"`
	PublishedWithinDays int      `json:"publishedWithinDays,omitempty"`
	MinViews            int64    `json:"minViews,omitempty"`
	Regions             []string `json:"regions,omitempty"`
	IncludeShorts       bool     `json:"includeShorts,omitempty"`
	MaxIdeas            int      `json:"maxIdeas,omitempty"`
}

// AnalyzeResponse is the full result of a niche analysis run.
type AnalyzeResponse struct {
	Videos    []ScoredVideo `json:"videos"`
	Ideas     []VideoIdea   `json:"ideas"`
	QuotaUsed int           `json:"quotaUsed"`
	Query     string        `json:"query"`
	Timestamp time.Time     `json:"timestamp"`
}

// ChannelSpyRequest asks for a channel-relative outlier analysis.
type ChannelSpyRequest struct {
	ChannelInput string `json:"channelInput"` // URL, @handle, or raw UC... ID
}

// ChannelSpyResponse ranks a single channel's recent uploads against each other.
type ChannelSpyResponse struct {
	Channel   ChannelInfo   `json:"channel"`
	Videos    []ScoredVideo `json:"videos"`
	QuotaUsed int           `json:"quotaUsed"`
	Timestamp time.Time     `json:"timestamp"`
}

// WebTrend is one related news headline for a niche.
type WebTrend struct {
	Title       string    `json:"title"`
	Source      string    `json:"source"`
	Link        string    `json:"link"`
	PublishedAt time.Time `json:"publishedAt"`
}
