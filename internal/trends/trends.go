package trends

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"outlier-scout/internal/models"

	"github.com/mmcdole/gofeed"
)

const maxTrends = 10

// Fetcher pulls related news headlines for a niche from the Google News RSS
// search feed.
type Fetcher struct {
	parser *gofeed.Parser
}

func NewFetcher() *Fetcher {
	parser := gofeed.NewParser()
	parser.UserAgent = "Mozilla/5.0"
	return &Fetcher{parser: parser}
}

// Fetch returns up to 10 recent headlines matching the query.
func (f *Fetcher) Fetch(ctx context.Context, query string) ([]models.WebTrend, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, fmt.Errorf("query is required")
	}

	feedURL := "https://news.google.com/rss/search?q=" + url.QueryEscape(q) + "&hl=en-US&gl=US&ceid=US:en"
	feed, err := f.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch news feed for %q: %w", q, err)
	}

	return trendsFromFeed(feed), nil
}

func trendsFromFeed(feed *gofeed.Feed) []models.WebTrend {
	var trends []models.WebTrend
	for _, item := range feed.Items {
		if len(trends) >= maxTrends {
			break
		}

		title, source := splitHeadline(item.Title)
		if title == "" {
			continue
		}

		trend := models.WebTrend{
			Title:  title,
			Source: source,
			Link:   item.Link,
		}
		if item.PublishedParsed != nil {
			trend.PublishedAt = *item.PublishedParsed
		}
		trends = append(trends, trend)
	}
	return trends
}

// splitHeadline separates Google News "Article Title - Source Name" headlines.
// Titles without the separator are returned whole with an empty source.
func splitHeadline(raw string) (title, source string) {
	lastDash := strings.LastIndex(raw, " - ")
	if lastDash == -1 {
		return raw, ""
	}
	return raw[:lastDash], raw[lastDash+3:]
}
