package models

import "time"

// VideoRecord holds the raw per-video metrics fetched from the YouTube Data
// API. Records are immutable once fetched; the scorer never mutates them.
type VideoRecord struct {
	VideoID         string    `json:"video_id"`
	ChannelID       string    `json:"channel_id"`
	Title           string    `json:"title"`
	PublishedAt     time.Time `json:"published_at"`
	ViewCount       int64     `json:"view_count"`
	LikeCount       int64     `json:"like_count"`
	CommentCount    int64     `json:"comment_count"`
	Duration        string    `json:"duration"` // ISO 8601, e.g. "PT12M30S"
	DurationSeconds int       `json:"duration_seconds"`
	IsShort         bool      `json:"is_short"` // duration <= 60s
	Tags            []string  `json:"tags"`
	CategoryID      string    `json:"category_id"`
	ThumbnailURL    string    `json:"thumbnail_url"`
}

// ChannelRecord holds per-channel statistics, keyed by channel ID.
type ChannelRecord struct {
	ChannelID       string `json:"channel_id"`
	Title           string `json:"channel_title"`
	SubscriberCount int64  `json:"subscriber_count"`
	TotalViews      int64  `json:"total_views"`
	VideoCount      int64  `json:"video_count"`
	HiddenSubs      bool   `json:"hidden_subscriber_count"`
}

// VideoSnippet is the descriptive part of a scored video.
type VideoSnippet struct {
	VideoID      string    `json:"videoId"`
	Title        string    `json:"title"`
	ChannelID    string    `json:"channelId"`
	ChannelTitle string    `json:"channelTitle"`
	PublishedAt  time.Time `json:"publishedAt"`
	ThumbnailURL string    `json:"thumbnailUrl"`
	Tags         []string  `json:"tags"`
	Duration     string    `json:"duration"`
}

// VideoStats carries the raw counters a scored video was judged on.
type VideoStats struct {
	ViewCount       int64 `json:"viewCount"`
	LikeCount       int64 `json:"likeCount"`
	CommentCount    int64 `json:"commentCount"`
	SubscriberCount int64 `json:"subscriberCount"`
}

// ScoreBreakdown holds the derived performance signals.
// ViewsToSubRatio is nil when the channel hides its subscriber count; a
// missing ratio is never the same thing as a ratio of zero.
type ScoreBreakdown struct {
	ViewsToSubRatio *float64 `json:"viewsToSubRatio"`
	Velocity        float64  `json:"velocity"`   // views per day
	Engagement      float64  `json:"engagement"` // (likes+comments)/views as percentage
	Composite       float64  `json:"composite"`
}

// ScoredVideo is one ranked entry in the scorer's output. Rank is dense and
// 1-based, assigned after the stable sort by composite score descending.
type ScoredVideo struct {
	Rank    int            `json:"rank"`
	Grade   string         `json:"grade"` // "A+", "A", "B+", "B", "C"
	Snippet VideoSnippet   `json:"snippet"`
	Stats   VideoStats     `json:"stats"`
	Scores  ScoreBreakdown `json:"scores"`
}
