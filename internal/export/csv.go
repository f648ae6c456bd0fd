package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"outlier-scout/internal/models"
)

// WriteVideosCSV writes the ranked videos as CSV, one row per video.
func WriteVideosCSV(w io.Writer, videos []models.ScoredVideo) error {
	cw := csv.NewWriter(w)

	header := []string{
		"Rank", "Grade", "Score", "Title", "Channel", "Subscribers", "Views",
		"Views/Sub", "Velocity (/day)", "Engagement (%)", "Published",
		"Duration", "Video URL",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, v := range videos {
		ratio := "n/a"
		if v.Scores.ViewsToSubRatio != nil {
			ratio = strconv.FormatFloat(*v.Scores.ViewsToSubRatio, 'f', 2, 64)
		}

		row := []string{
			strconv.Itoa(v.Rank),
			v.Grade,
			strconv.FormatFloat(v.Scores.Composite, 'f', 1, 64),
			v.Snippet.Title,
			v.Snippet.ChannelTitle,
			strconv.FormatInt(v.Stats.SubscriberCount, 10),
			strconv.FormatInt(v.Stats.ViewCount, 10),
			ratio,
			strconv.FormatFloat(v.Scores.Velocity, 'f', 1, 64),
			strconv.FormatFloat(v.Scores.Engagement, 'f', 2, 64),
			v.Snippet.PublishedAt.Format("2006-01-02"),
			v.Snippet.Duration,
			"https://youtube.com/watch?v=" + v.Snippet.VideoID,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteIdeasCSV writes the generated ideas as CSV, one row per idea.
func WriteIdeasCSV(w io.Writer, ideas []models.VideoIdea) error {
	cw := csv.NewWriter(w)

	header := []string{
		"#", "Type", "Suggested Title", "Reasoning", "Based On", "Tags",
		"Avg Score", "Optimal Length", "Competition",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, idea := range ideas {
		titles := make([]string, 0, len(idea.BasedOn))
		for _, ref := range idea.BasedOn {
			titles = append(titles, ref.Title)
		}

		row := []string{
			strconv.Itoa(idea.ID),
			string(idea.Type),
			idea.SuggestedTitle,
			idea.Reasoning,
			strings.Join(titles, "; "),
			strings.Join(idea.CommonTags, ", "),
			strconv.FormatFloat(idea.AvgScore, 'f', 1, 64),
			idea.OptimalLength,
			string(idea.Competition),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
