package models

// BriefRef links a brief back to a source video with the headline numbers the
// strategist cited.
type BriefRef struct {
	VideoID string `json:"videoId"`
	Title   string `json:"title"`
	Views   int64  `json:"views"`
	Grade   string `json:"grade"`
}

// VideoBrief is a full production brief generated by the AI strategist, as
// opposed to the heuristic VideoIdea.
type VideoBrief struct {
	ID               int        `json:"id"`
	Title            string     `json:"title"`
	Hook             string     `json:"hook"`
	Outline          []string   `json:"outline"`
	ThumbnailConcept string     `json:"thumbnailConcept"`
	WhyThisWillWork  string     `json:"whyThisWillWork"`
	UniqueAngle      string     `json:"uniqueAngle"`
	BasedOn          []BriefRef `json:"basedOn"`
	OptimalLength    string     `json:"optimalLength"`
	SuggestedTags    []string   `json:"suggestedTags"`
}

// TitleSuggestion is one AI-generated title variant for an idea.
type TitleSuggestion struct {
	Title     string `json:"title"`
	Reasoning string `json:"reasoning"`
}
