package scoring

import (
	"regexp"
	"sort"
	"strings"

	"outlier-scout/internal/models"
)

var (
	hashtagRe    = regexp.MustCompile(`#\S+`)
	emojiRe      = regexp.MustCompile(`[\x{1F600}-\x{1F9FF}]`)
	whitespaceRe = regexp.MustCompile(`\s{2,}`)
	nonAlnumRe   = regexp.MustCompile(`[^a-z0-9\s]`)
)

// cleanTitle strips hashtags, emoji, and redundant whitespace from a raw
// video title.
func cleanTitle(raw string) string {
	s := hashtagRe.ReplaceAllString(raw, "")
	s = emojiRe.ReplaceAllString(s, "")
	s = whitespaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// stem strips common English suffixes. It is a deliberate heuristic, just
// enough to merge "agent"/"agents" or "automate"/"automation"; collisions
// and misses are acceptable.
func stem(word string) string {
	w := word
	if strings.HasSuffix(w, "ies") {
		w = w[:len(w)-3] + "y"
	}
	if strings.HasSuffix(w, "tion") {
		w = w[:len(w)-4] + "t"
	}
	for _, suffix := range []string{"ing", "ed", "er", "ly", "ment", "ness"} {
		if strings.HasSuffix(w, suffix) {
			w = w[:len(w)-len(suffix)]
			break
		}
	}
	if strings.HasSuffix(w, "es") {
		w = w[:len(w)-2]
	} else if strings.HasSuffix(w, "s") {
		w = w[:len(w)-1]
	}
	if r := []rune(w); len(r) >= 2 && r[len(r)-1] == r[len(r)-2] {
		w = string(r[:len(r)-1])
	}
	return w
}

// sameTopic reports whether two keywords are essentially the same topic:
// exact match, matching stem, or one contained in the other when both are
// long enough for substring containment to mean anything.
func sameTopic(a, b string) bool {
	if a == b {
		return true
	}
	if stem(a) == stem(b) {
		return true
	}
	if len(a) >= 4 && len(b) >= 4 {
		if strings.Contains(a, b) || strings.Contains(b, a) {
			return true
		}
	}
	return false
}

// topicTokens extracts candidate topic keywords from a title: lowercase
// alphanumeric words longer than three characters that are not stop words.
func topicTokens(title string) []string {
	lowered := strings.ToLower(cleanTitle(title))
	lowered = nonAlnumRe.ReplaceAllString(lowered, "")

	var tokens []string
	for _, w := range strings.Fields(lowered) {
		if len(w) > 3 && !stopWords[w] {
			tokens = append(tokens, w)
		}
	}
	return tokens
}

type topicCandidate struct {
	keyword  string
	indices  []int
	avgScore float64
	topVideo models.ScoredVideo
}

// ExtractTopicClusters groups videos under fuzzy topical keywords. Keywords
// must appear in at least two videos and have at least one reasonably strong
// performer; related keywords (same stem, substring, or heavy video overlap)
// collapse into the first accepted cluster. At most maxClusters are returned,
// strongest first by popularity-weighted average score.
func ExtractTopicClusters(videos []models.ScoredVideo, maxClusters int) []models.TopicCluster {
	// Word -> indices of videos whose title contains it, first occurrence
	// per video only. keywordOrder keeps iteration deterministic.
	keywordVideos := make(map[string][]int)
	var keywordOrder []string

	for idx, v := range videos {
		seen := make(map[string]bool)
		for _, word := range topicTokens(v.Snippet.Title) {
			if seen[word] {
				continue
			}
			seen[word] = true
			if _, ok := keywordVideos[word]; !ok {
				keywordOrder = append(keywordOrder, word)
			}
			keywordVideos[word] = append(keywordVideos[word], idx)
		}
	}

	// Score candidates: keywords shared by 2+ videos whose best video
	// clears the weak-signal floor.
	var candidates []topicCandidate
	for _, keyword := range keywordOrder {
		indices := keywordVideos[keyword]
		if len(indices) < 2 {
			continue
		}

		sum := 0.0
		top := videos[indices[0]]
		for _, i := range indices {
			sum += videos[i].Scores.Composite
			if videos[i].Scores.Composite > top.Scores.Composite {
				top = videos[i]
			}
		}
		if top.Scores.Composite <= 0.3 {
			continue
		}

		candidates = append(candidates, topicCandidate{
			keyword:  keyword,
			indices:  indices,
			avgScore: sum / float64(len(indices)),
			topVideo: top,
		})
	}

	// Popularity-weighted ranking: rewards both strength and breadth, not
	// average score alone.
	sort.SliceStable(candidates, func(i, j int) bool {
		wi := candidates[i].avgScore * float64(len(candidates[i].indices))
		wj := candidates[j].avgScore * float64(len(candidates[j].indices))
		return wi > wj
	})

	var clusters []models.TopicCluster
	var usedKeywords []string
	var usedSets []map[int]bool

	for _, c := range candidates {
		if len(clusters) >= maxClusters {
			break
		}

		duplicate := false
		for _, used := range usedKeywords {
			if sameTopic(c.keyword, used) {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}

		for _, used := range usedSets {
			overlap := 0
			for _, i := range c.indices {
				if used[i] {
					overlap++
				}
			}
			if float64(overlap) > float64(len(c.indices))*0.4 {
				duplicate = true
				break
			}
		}
		if duplicate {
			continue
		}

		set := make(map[int]bool, len(c.indices))
		members := make([]models.ScoredVideo, 0, len(c.indices))
		for _, i := range c.indices {
			set[i] = true
			members = append(members, videos[i])
		}

		usedKeywords = append(usedKeywords, c.keyword)
		usedSets = append(usedSets, set)
		clusters = append(clusters, models.TopicCluster{
			Topic:    c.keyword,
			Videos:   members,
			AvgScore: c.avgScore,
			TopVideo: c.topVideo,
		})
	}

	return clusters
}
