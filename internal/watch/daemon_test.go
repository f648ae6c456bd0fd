package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"outlier-scout/internal/models"
	"outlier-scout/shared/config"
	"outlier-scout/shared/email"
	"outlier-scout/shared/storage"
)

type fakeAnalyzer struct {
	responses map[string]*models.AnalyzeResponse
	errs      map[string]error
}

func (f *fakeAnalyzer) AnalyzeNiche(_ context.Context, req models.AnalyzeRequest) (*models.AnalyzeResponse, error) {
	if err := f.errs[req.Niche]; err != nil {
		return nil, err
	}
	return f.responses[req.Niche], nil
}

type fakeSender struct {
	digests []*email.Digest
}

func (f *fakeSender) SendDigest(d *email.Digest) error {
	f.digests = append(f.digests, d)
	return nil
}

func watchVideo(id string) models.ScoredVideo {
	return models.ScoredVideo{
		Rank:    1,
		Grade:   "A",
		Snippet: models.VideoSnippet{VideoID: id, Title: "Video " + id},
		Scores:  models.ScoreBreakdown{Composite: 1.6},
	}
}

func watchConfig(niches ...string) *config.Config {
	return &config.Config{
		Watch: config.WatchConfig{Schedule: "0 9 * * *", Niches: niches},
	}
}

func testDaemon(t *testing.T, cfg *config.Config, a NicheAnalyzer, sender DigestSender) *Daemon {
	t.Helper()
	store, err := storage.New(filepath.Join(t.TempDir(), "watch.db"))
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return New(cfg, a, store, sender)
}

func TestRunOnceMailsOnlyUnseen(t *testing.T) {
	analyzer := &fakeAnalyzer{
		responses: map[string]*models.AnalyzeResponse{
			"ai agents": {
				Videos:    []models.ScoredVideo{watchVideo("v1"), watchVideo("v2")},
				QuotaUsed: 302,
				Timestamp: time.Now(),
			},
		},
	}
	sender := &fakeSender{}
	d := testDaemon(t, watchConfig("ai agents"), analyzer, sender)

	if err := d.RunOnce(context.Background()); err != nil {
		t.Fatalf("first RunOnce: %v", err)
	}
	if len(sender.digests) != 1 {
		t.Fatalf("got %d digests, want 1", len(sender.digests))
	}
	if len(sender.digests[0].Videos) != 2 {
		t.Errorf("first digest has %d videos, want 2", len(sender.digests[0].Videos))
	}

	// Same outliers on the next run: everything is seen, no digest.
	if err := d.RunOnce(context.Background()); err != nil {
		t.Fatalf("second RunOnce: %v", err)
	}
	if len(sender.digests) != 1 {
		t.Errorf("got %d digests after second run, want still 1", len(sender.digests))
	}

	// A new outlier appears: digest contains just that one.
	analyzer.responses["ai agents"].Videos = append(analyzer.responses["ai agents"].Videos, watchVideo("v3"))
	if err := d.RunOnce(context.Background()); err != nil {
		t.Fatalf("third RunOnce: %v", err)
	}
	if len(sender.digests) != 2 {
		t.Fatalf("got %d digests after third run, want 2", len(sender.digests))
	}
	last := sender.digests[1]
	if len(last.Videos) != 1 || last.Videos[0].Snippet.VideoID != "v3" {
		t.Errorf("last digest = %v, want only v3", last.Videos)
	}
}

func TestRunOncePartialFailure(t *testing.T) {
	analyzer := &fakeAnalyzer{
		responses: map[string]*models.AnalyzeResponse{
			"good": {Videos: []models.ScoredVideo{watchVideo("v1")}},
		},
		errs: map[string]error{
			"bad": fmt.Errorf("quota exceeded"),
		},
	}
	sender := &fakeSender{}
	d := testDaemon(t, watchConfig("bad", "good"), analyzer, sender)

	// One failing niche must not fail the run.
	if err := d.RunOnce(context.Background()); err != nil {
		t.Fatalf("RunOnce: %v", err)
	}
	if len(sender.digests) != 1 {
		t.Errorf("got %d digests, want 1 from the healthy niche", len(sender.digests))
	}
}

func TestRunOnceAllNichesFail(t *testing.T) {
	analyzer := &fakeAnalyzer{
		errs: map[string]error{
			"bad1": fmt.Errorf("boom"),
			"bad2": fmt.Errorf("boom"),
		},
	}
	d := testDaemon(t, watchConfig("bad1", "bad2"), analyzer, &fakeSender{})

	if err := d.RunOnce(context.Background()); err == nil {
		t.Error("RunOnce should fail when every niche fails")
	}
}

func TestRunOnceNoNiches(t *testing.T) {
	d := testDaemon(t, watchConfig(), &fakeAnalyzer{}, &fakeSender{})
	if err := d.RunOnce(context.Background()); err == nil {
		t.Error("RunOnce with no niches should error")
	}
}
