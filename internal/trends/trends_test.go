package trends

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mmcdole/gofeed"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>"ai agents" - Google News</title>
    <item>
      <title>OpenAI ships new agent framework - TechCrunch</title>
      <link>https://news.example.com/a</link>
      <pubDate>Mon, 25 Aug 2025 10:00:00 GMT</pubDate>
    </item>
    <item>
      <title>Agents everywhere</title>
      <link>https://news.example.com/b</link>
      <pubDate>Sun, 24 Aug 2025 09:00:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

func TestTrendsFromFeed(t *testing.T) {
	feed, err := gofeed.NewParser().ParseString(sampleFeed)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}

	trends := trendsFromFeed(feed)
	if len(trends) != 2 {
		t.Fatalf("got %d trends, want 2", len(trends))
	}

	if trends[0].Title != "OpenAI ships new agent framework" {
		t.Errorf("title = %q, want source suffix stripped", trends[0].Title)
	}
	if trends[0].Source != "TechCrunch" {
		t.Errorf("source = %q, want %q", trends[0].Source, "TechCrunch")
	}
	if trends[0].Link != "https://news.example.com/a" {
		t.Errorf("link = %q", trends[0].Link)
	}
	if trends[0].PublishedAt.IsZero() {
		t.Error("publishedAt should be parsed")
	}

	// No separator means no source attribution.
	if trends[1].Title != "Agents everywhere" || trends[1].Source != "" {
		t.Errorf("got title %q source %q, want whole title and empty source", trends[1].Title, trends[1].Source)
	}
}

func TestTrendsFromFeedCapsAtTen(t *testing.T) {
	var items strings.Builder
	for i := 0; i < 15; i++ {
		fmt.Fprintf(&items, "<item><title>Headline %d - Src</title><link>https://x/%d</link></item>", i, i)
	}
	raw := `<?xml version="1.0"?><rss version="2.0"><channel><title>t</title>` + items.String() + `</channel></rss>`

	feed, err := gofeed.NewParser().ParseString(raw)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if trends := trendsFromFeed(feed); len(trends) != 10 {
		t.Errorf("got %d trends, want cap of 10", len(trends))
	}
}

func TestSplitHeadline(t *testing.T) {
	tests := []struct {
		raw    string
		title  string
		source string
	}{
		{"Story - Outlet", "Story", "Outlet"},
		{"Multi - part - Outlet", "Multi - part", "Outlet"},
		{"No separator", "No separator", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		title, source := splitHeadline(tt.raw)
		if title != tt.title || source != tt.source {
			t.Errorf("splitHeadline(%q) = (%q, %q), want (%q, %q)", tt.raw, title, source, tt.title, tt.source)
		}
	}
}
