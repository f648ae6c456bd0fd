package scoring

import "regexp"

// Composite score weights. The primary set applies when the channel's
// subscriber count is known; the alternate set applies when it is hidden.
const (
	weightViewsSub   = 0.45
	weightVelocity   = 0.30
	weightEngagement = 0.25

	weightVelocityAlt   = 0.55
	weightEngagementAlt = 0.45
)

// gradeBracket maps a minimum composite score to a letter grade.
// Brackets are evaluated top-down; first match wins, "C" is the floor.
type gradeBracket struct {
	min   float64
	grade string
}

var gradeBrackets = []gradeBracket{
	{2.0, "A+"},
	{1.5, "A"},
	{1.0, "B+"},
	{0.5, "B"},
}

// stopWords are excluded from topic keyword extraction.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "are": true, "was": true,
	"were": true, "be": true, "been": true, "being": true, "have": true,
	"has": true, "had": true, "do": true, "does": true, "did": true,
	"will": true, "would": true, "could": true, "should": true, "may": true,
	"might": true, "shall": true, "can": true, "to": true, "of": true,
	"in": true, "for": true, "on": true, "with": true, "at": true, "by": true,
	"from": true, "as": true, "into": true, "through": true, "during": true,
	"before": true, "after": true, "and": true, "but": true, "or": true,
	"nor": true, "not": true, "so": true, "yet": true, "both": true,
	"either": true, "neither": true, "each": true, "every": true, "all": true,
	"any": true, "few": true, "more": true, "most": true, "other": true,
	"some": true, "such": true, "no": true, "only": true, "own": true,
	"same": true, "than": true, "too": true, "very": true, "just": true,
	"about": true, "above": true, "below": true, "between": true, "this": true,
	"that": true, "these": true, "those": true, "i": true, "me": true,
	"my": true, "we": true, "you": true, "your": true, "he": true, "him": true,
	"his": true, "she": true, "her": true, "it": true, "its": true,
	"they": true, "them": true, "their": true, "what": true, "which": true,
	"who": true, "whom": true, "how": true, "when": true, "where": true,
	"why": true, "up": true, "out": true, "if": true, "then": true,
	"here": true, "there": true, "also": true, "over": true,
}

// titlePattern is one stylistic category of video title.
type titlePattern struct {
	re    *regexp.Regexp
	label string
}

// titlePatterns is evaluated in order against cleaned titles.
var titlePatterns = []titlePattern{
	{regexp.MustCompile(`(?i)top\s+\d+`), "Top N Listicle"},
	{regexp.MustCompile(`(?i)best\s+\d+`), "Best N Listicle"},
	{regexp.MustCompile(`(?i)^\d+\s+`), "Numbered List"},
	{regexp.MustCompile(`(?i)i\s+(tried|spent|bought|tested|lived)`), "Personal Experiment"},
	{regexp.MustCompile(`(?i)how\s+to`), "How-To Tutorial"},
	{regexp.MustCompile(`(?i)\bvs\.?\b|\bversus\b|\bcompared?\b`), "Comparison / Versus"},
	{regexp.MustCompile(`(?i)beginner|beginners|starting|started|from\s+zero`), "Beginner-Focused"},
	{regexp.MustCompile(`(?i)20\d{2}`), "Year-Tagged"},
	{regexp.MustCompile(`(?i)review`), "Review"},
	{regexp.MustCompile(`(?i)tutorial|step[\s-]by[\s-]step|guide`), "Tutorial"},
	{regexp.MustCompile(`(?i)why\s+(you|i|we|most|nobody|everybody|everyone)`), "Why / Explanation"},
	{regexp.MustCompile(`(?i)don'?t|stop|never|worst|mistake|avoid|wrong`), "Negative Framing"},
}
