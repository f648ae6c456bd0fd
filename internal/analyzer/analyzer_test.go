package analyzer

import (
	"context"
	"strings"
	"testing"
	"time"

	"outlier-scout/internal/models"
	"outlier-scout/internal/youtube"
	"outlier-scout/shared/config"
)

// fakeSource replays canned API responses and records quota the same way the
// real client does: 100 per search, 1 per list batch.
type fakeSource struct {
	hitsByRegion map[string][]youtube.SearchHit
	videos       []models.VideoRecord
	channels     map[string]models.ChannelRecord

	channelID string
	identity  *youtube.ChannelIdentity
	videoIDs  []string

	searchCalls []youtube.SearchOptions
}

func (f *fakeSource) Search(_ context.Context, opts youtube.SearchOptions) (*youtube.SearchResponse, error) {
	f.searchCalls = append(f.searchCalls, opts)
	return &youtube.SearchResponse{
		Hits:         f.hitsByRegion[opts.RegionCode],
		PagesFetched: 1,
		QuotaUsed:    100,
	}, nil
}

func (f *fakeSource) VideoDetails(_ context.Context, videoIDs []string) ([]models.VideoRecord, int, error) {
	var out []models.VideoRecord
	want := make(map[string]bool, len(videoIDs))
	for _, id := range videoIDs {
		want[id] = true
	}
	for _, v := range f.videos {
		if want[v.VideoID] {
			out = append(out, v)
		}
	}
	return out, 1, nil
}

func (f *fakeSource) ChannelStats(_ context.Context, _ []string) (map[string]models.ChannelRecord, int, error) {
	return f.channels, 1, nil
}

func (f *fakeSource) ResolveChannel(_ context.Context, _ string) (string, int, error) {
	return f.channelID, 0, nil
}

func (f *fakeSource) ChannelInfoByID(_ context.Context, _ string) (*youtube.ChannelIdentity, int, error) {
	return f.identity, 1, nil
}

func (f *fakeSource) ChannelVideoIDs(_ context.Context, _ string) ([]string, int, error) {
	return f.videoIDs, 100, nil
}

func testDefaults() config.AnalysisConfig {
	return config.AnalysisConfig{
		MaxPages:            3,
		PublishedWithinDays: 14,
		MinViews:            1000,
		Regions:             []string{"US"},
		TopN:                50,
		MaxIdeas:            9,
	}
}

func nicheVideo(id, channelID string, views int64, daysAgo int) models.VideoRecord {
	return models.VideoRecord{
		VideoID:         id,
		ChannelID:       channelID,
		Title:           "Video " + id,
		PublishedAt:     time.Now().Add(-time.Duration(daysAgo) * 24 * time.Hour),
		ViewCount:       views,
		LikeCount:       views / 20,
		CommentCount:    views / 100,
		Duration:        "PT10M",
		DurationSeconds: 600,
	}
}

func TestAnalyzeNiche(t *testing.T) {
	source := &fakeSource{
		hitsByRegion: map[string][]youtube.SearchHit{
			"US": {
				{VideoID: "v1", ThumbnailURL: "https://img/v1.jpg"},
				{VideoID: "v2"},
			},
			"GB": {
				{VideoID: "v2"}, // duplicate across regions
				{VideoID: "v3"},
			},
		},
		videos: []models.VideoRecord{
			nicheVideo("v1", "c1", 50000, 5),
			nicheVideo("v2", "c1", 8000, 5),
			nicheVideo("v3", "c2", 120000, 5),
		},
		channels: map[string]models.ChannelRecord{
			"c1": {ChannelID: "c1", Title: "Alpha", SubscriberCount: 10000},
			"c2": {ChannelID: "c2", Title: "Beta", SubscriberCount: 50000},
		},
	}

	a := New(source, testDefaults())
	resp, err := a.AnalyzeNiche(context.Background(), models.AnalyzeRequest{
		Niche:   "ai agents",
		Regions: []string{"US", "GB"},
	})
	if err != nil {
		t.Fatalf("AnalyzeNiche: %v", err)
	}

	if len(resp.Videos) != 3 {
		t.Fatalf("got %d scored videos, want 3 (v2 deduplicated across regions)", len(resp.Videos))
	}

	// 2 searches + 1 details batch + 1 channels batch.
	if resp.QuotaUsed != 202 {
		t.Errorf("QuotaUsed = %d, want 202", resp.QuotaUsed)
	}

	// Multi-region runs split the page budget: ceil(3/2) = 2 pages each.
	for _, call := range source.searchCalls {
		if call.MaxPages != 2 {
			t.Errorf("region %s searched %d pages, want 2", call.RegionCode, call.MaxPages)
		}
	}

	for _, v := range resp.Videos {
		if v.Snippet.VideoID == "v1" && v.Snippet.ThumbnailURL != "https://img/v1.jpg" {
			t.Errorf("v1 thumbnail = %q, want search thumbnail backfilled", v.Snippet.ThumbnailURL)
		}
	}

	if resp.Query != "ai agents" {
		t.Errorf("Query = %q, want %q", resp.Query, "ai agents")
	}
}

func TestAnalyzeNicheRequiresQuery(t *testing.T) {
	a := New(&fakeSource{}, testDefaults())
	if _, err := a.AnalyzeNiche(context.Background(), models.AnalyzeRequest{}); err == nil {
		t.Error("expected error for empty niche")
	}
}

func TestAnalyzeNicheNoResults(t *testing.T) {
	a := New(&fakeSource{hitsByRegion: map[string][]youtube.SearchHit{}}, testDefaults())
	_, err := a.AnalyzeNiche(context.Background(), models.AnalyzeRequest{Niche: "obscure topic"})
	if err == nil || !strings.Contains(err.Error(), "no videos found") {
		t.Errorf("err = %v, want no-videos error", err)
	}
}

func TestSpyChannel(t *testing.T) {
	source := &fakeSource{
		channelID: "UCspied000000000000000000",
		identity: &youtube.ChannelIdentity{
			ChannelID:       "UCspied000000000000000000",
			Title:           "Spied Channel",
			SubscriberCount: 25000,
			VideoCount:      120,
		},
		videoIDs: []string{"s1", "s2", "s3"},
		videos: []models.VideoRecord{
			nicheVideo("s1", "UCspied000000000000000000", 100, 30),
			nicheVideo("s2", "UCspied000000000000000000", 90000, 10),
			nicheVideo("s3", "UCspied000000000000000000", 5000, 200),
		},
	}

	a := New(source, testDefaults())
	resp, err := a.SpyChannel(context.Background(), models.ChannelSpyRequest{ChannelInput: "@spied"})
	if err != nil {
		t.Fatalf("SpyChannel: %v", err)
	}

	if resp.Channel.Title != "Spied Channel" {
		t.Errorf("Channel.Title = %q, want %q", resp.Channel.Title, "Spied Channel")
	}

	// Channel spy relaxes the niche filters: low-view and old uploads stay in.
	if len(resp.Videos) != 3 {
		t.Fatalf("got %d videos, want all 3 uploads scored", len(resp.Videos))
	}
	if resp.Videos[0].Snippet.VideoID != "s2" {
		t.Errorf("top video = %s, want s2 (highest velocity and views)", resp.Videos[0].Snippet.VideoID)
	}

	// resolve(0) + info(1) + video list(100) + details(1).
	if resp.QuotaUsed != 102 {
		t.Errorf("QuotaUsed = %d, want 102", resp.QuotaUsed)
	}
}

func TestSpyChannelHiddenSubscribers(t *testing.T) {
	source := &fakeSource{
		channelID: "UChidden0000000000000000",
		identity: &youtube.ChannelIdentity{
			ChannelID:  "UChidden0000000000000000",
			Title:      "Hidden",
			HiddenSubs: true,
		},
		videoIDs: []string{"h1", "h2"},
		videos: []models.VideoRecord{
			nicheVideo("h1", "UChidden0000000000000000", 1000, 5),
			nicheVideo("h2", "UChidden0000000000000000", 2000, 5),
		},
	}

	a := New(source, testDefaults())
	resp, err := a.SpyChannel(context.Background(), models.ChannelSpyRequest{ChannelInput: "@hidden"})
	if err != nil {
		t.Fatalf("SpyChannel: %v", err)
	}
	for _, v := range resp.Videos {
		if v.Scores.ViewsToSubRatio != nil {
			t.Errorf("video %s has views/sub ratio %v, want nil for hidden subscribers", v.Snippet.VideoID, *v.Scores.ViewsToSubRatio)
		}
	}
}

func TestSpyChannelRequiresInput(t *testing.T) {
	a := New(&fakeSource{}, testDefaults())
	if _, err := a.SpyChannel(context.Background(), models.ChannelSpyRequest{}); err == nil {
		t.Error("expected error for empty channel input")
	}
}
