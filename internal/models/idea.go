package models

// IdeaType names the strategy that produced a VideoIdea.
type IdeaType string

const (
	IdeaTrendingTopic IdeaType = "Trending Topic"
	IdeaStandoutVideo IdeaType = "Standout Video"
	IdeaWinningFormat IdeaType = "Winning Format"
)

// CompetitionLevel is a count-based estimate of how crowded an idea is.
type CompetitionLevel string

const (
	CompetitionLow    CompetitionLevel = "low"
	CompetitionMedium CompetitionLevel = "medium"
	CompetitionHigh   CompetitionLevel = "high"
)

// VideoRef points an idea back at one of the videos it was derived from.
type VideoRef struct {
	VideoID string `json:"videoId"`
	Title   string `json:"title"`
}

// TopicCluster groups videos that share a fuzzy topical keyword.
type TopicCluster struct {
	Topic    string        `json:"topic"`
	Videos   []ScoredVideo `json:"videos"`
	AvgScore float64       `json:"avg_score"`
	TopVideo ScoredVideo   `json:"top_video"`
}

// VideoIdea is one structured content suggestion.
type VideoIdea struct {
	ID             int              `json:"id"`
	Type           IdeaType         `json:"type"`
	SuggestedTitle string           `json:"suggestedTitle"`
	Reasoning      string           `json:"reasoning"`
	BasedOn        []VideoRef       `json:"basedOn"`
	CommonTags     []string         `json:"commonTags"`
	AvgScore       float64          `json:"avgScore"`
	OptimalLength  string           `json:"optimalLength"` // e.g. "10-15 minutes"
	Competition    CompetitionLevel `json:"competition"`
}
