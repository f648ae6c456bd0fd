package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"outlier-scout/internal/models"
	"outlier-scout/internal/scoring"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"
)

const maxTitleWidth = 60

// Videos renders the ranked outlier table.
func Videos(w io.Writer, videos []models.ScoredVideo) {
	if len(videos) == 0 {
		fmt.Fprintln(w, "No videos matched the filters.")
		return
	}

	tw := newTable(w)
	tw.AppendHeader(table.Row{"#", "Grade", "Score", "Title", "Channel", "Views", "V/Sub", "Views/Day", "Eng%"})

	for _, v := range videos {
		ratio := "n/a"
		if v.Scores.ViewsToSubRatio != nil {
			ratio = fmt.Sprintf("%.1fx", *v.Scores.ViewsToSubRatio)
		}
		tw.AppendRow(table.Row{
			v.Rank,
			v.Grade,
			fmt.Sprintf("%.2f", v.Scores.Composite),
			truncate(v.Snippet.Title, maxTitleWidth),
			truncate(v.Snippet.ChannelTitle, 24),
			scoring.FormatViews(v.Stats.ViewCount),
			ratio,
			fmt.Sprintf("%.0f", v.Scores.Velocity),
			fmt.Sprintf("%.1f", v.Scores.Engagement),
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
		{Number: 8, Align: text.AlignRight},
		{Number: 9, Align: text.AlignRight},
	})
	tw.Render()
}

// Ideas renders the generated content ideas as numbered cards.
func Ideas(w io.Writer, ideas []models.VideoIdea) {
	if len(ideas) == 0 {
		fmt.Fprintln(w, "No ideas generated.")
		return
	}

	for _, idea := range ideas {
		fmt.Fprintf(w, "\n%d. [%s] %s\n", idea.ID, idea.Type, idea.SuggestedTitle)
		fmt.Fprintf(w, "   %s\n", idea.Reasoning)
		fmt.Fprintf(w, "   Length: %s | Competition: %s | Avg score: %.1f\n",
			idea.OptimalLength, idea.Competition, idea.AvgScore)
		if len(idea.CommonTags) > 0 {
			fmt.Fprintf(w, "   Tags: %s\n", strings.Join(idea.CommonTags, ", "))
		}
		for _, ref := range idea.BasedOn {
			fmt.Fprintf(w, "   - %s (https://youtube.com/watch?v=%s)\n", truncate(ref.Title, maxTitleWidth), ref.VideoID)
		}
	}
}

// Briefs renders AI production briefs.
func Briefs(w io.Writer, briefs []models.VideoBrief) {
	for _, b := range briefs {
		fmt.Fprintf(w, "\n%d. %s\n", b.ID, b.Title)
		if b.Hook != "" {
			fmt.Fprintf(w, "   Hook: %s\n", b.Hook)
		}
		for i, section := range b.Outline {
			fmt.Fprintf(w, "   %d) %s\n", i+1, section)
		}
		if b.ThumbnailConcept != "" {
			fmt.Fprintf(w, "   Thumbnail: %s\n", b.ThumbnailConcept)
		}
		if b.WhyThisWillWork != "" {
			fmt.Fprintf(w, "   Why: %s\n", b.WhyThisWillWork)
		}
		if b.UniqueAngle != "" {
			fmt.Fprintf(w, "   Angle: %s\n", b.UniqueAngle)
		}
		fmt.Fprintf(w, "   Length: %s\n", b.OptimalLength)
		if len(b.SuggestedTags) > 0 {
			fmt.Fprintf(w, "   Tags: %s\n", strings.Join(b.SuggestedTags, ", "))
		}
	}
}

// Trends renders news headlines for a niche.
func Trends(w io.Writer, trends []models.WebTrend) {
	if len(trends) == 0 {
		fmt.Fprintln(w, "No recent headlines found.")
		return
	}

	tw := newTable(w)
	tw.AppendHeader(table.Row{"Headline", "Source", "Published"})
	for _, t := range trends {
		published := ""
		if !t.PublishedAt.IsZero() {
			published = t.PublishedAt.Format("Jan 2")
		}
		tw.AppendRow(table.Row{truncate(t.Title, 70), t.Source, published})
	}
	tw.Render()
}

// Channel renders the identity header for a channel-spy run.
func Channel(w io.Writer, info models.ChannelInfo) {
	subs := scoring.FormatViews(info.SubscriberCount)
	if info.SubscriberCount <= 0 {
		subs = "hidden"
	}
	fmt.Fprintf(w, "\nChannel: %s\n", info.Title)
	fmt.Fprintf(w, "Subscribers: %s | Total views: %s | Videos: %d\n\n",
		subs, scoring.FormatViews(info.TotalViews), info.VideoCount)
}

// Titles renders AI title suggestions.
func Titles(w io.Writer, titles []models.TitleSuggestion) {
	for i, t := range titles {
		fmt.Fprintf(w, "%d. %s\n", i+1, t.Title)
		if t.Reasoning != "" {
			fmt.Fprintf(w, "   %s\n", t.Reasoning)
		}
	}
}

func newTable(w io.Writer) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	if isTerminal(w) {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}
	return tw
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
