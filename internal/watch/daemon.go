package watch

import (
	"context"
	"fmt"
	"log"
	"time"

	"outlier-scout/internal/models"
	"outlier-scout/shared/config"
	"outlier-scout/shared/email"
	"outlier-scout/shared/monitoring"
	"outlier-scout/shared/storage"

	"github.com/robfig/cron/v3"
)

// seenRetention controls how long the seen-video tracker remembers outliers.
const seenRetention = 90 * 24 * time.Hour

// NicheAnalyzer is the slice of the analyzer the daemon needs.
type NicheAnalyzer interface {
	AnalyzeNiche(ctx context.Context, req models.AnalyzeRequest) (*models.AnalyzeResponse, error)
}

// DigestSender delivers the per-niche digest of new outliers.
type DigestSender interface {
	SendDigest(digest *email.Digest) error
}

// Daemon re-analyzes the configured niches on a cron schedule and emails a
// digest of outliers it has not seen before.
type Daemon struct {
	config   *config.Config
	analyzer NicheAnalyzer
	store    *storage.Store
	sender   DigestSender
	monitor  *monitoring.Monitor
	cron     *cron.Cron
}

func New(cfg *config.Config, a NicheAnalyzer, store *storage.Store, sender DigestSender) *Daemon {
	return &Daemon{
		config:   cfg,
		analyzer: a,
		store:    store,
		sender:   sender,
		monitor:  monitoring.NewMonitor(),
		// Prevent overlapping runs
		cron: cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
	}
}

// Start schedules the watch job and blocks until the context is cancelled.
func (d *Daemon) Start(ctx context.Context) error {
	if len(d.config.Watch.Niches) == 0 {
		return fmt.Errorf("no niches configured to watch (set watch.niches)")
	}

	healthServer := monitoring.NewHealthServer(d.monitor, fmt.Sprintf("%d", d.config.Server.Port))
	healthServer.Start()

	_, err := d.cron.AddFunc(d.config.Watch.Schedule, func() {
		if err := d.RunOnce(ctx); err != nil {
			log.Printf("Error running scheduled watch: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	log.Printf("Watch started for %d niche(s) with schedule: %s", len(d.config.Watch.Niches), d.config.Watch.Schedule)
	d.cron.Start()

	<-ctx.Done()
	log.Printf("Watch stopped")
	d.cron.Stop()
	return ctx.Err()
}

// RunOnce analyzes every configured niche, mails digests of unseen outliers,
// and records the outcome. One niche failing does not stop the others.
func (d *Daemon) RunOnce(ctx context.Context) error {
	startTime := time.Now()
	niches := d.config.Watch.Niches
	if len(niches) == 0 {
		return fmt.Errorf("no niches configured to watch")
	}

	totalNew := 0
	failures := 0
	var lastErr error

	for _, niche := range niches {
		newCount, err := d.runNiche(ctx, niche)
		if err != nil {
			failures++
			lastErr = err
			d.monitor.RecordPartialFailure(fmt.Errorf("niche %q: %w", niche, err), time.Since(startTime))
			continue
		}
		totalNew += newCount
	}

	duration := time.Since(startTime)
	if failures == len(niches) {
		err := fmt.Errorf("all %d niches failed, last error: %w", failures, lastErr)
		d.monitor.RecordCriticalFailure(err, duration)
		return err
	}

	if _, err := d.store.PruneSeen(ctx, seenRetention); err != nil {
		log.Printf("Warning: failed to prune seen videos: %v", err)
	}

	d.monitor.RecordSuccess(
		fmt.Sprintf("%d niche(s) checked, %d new outliers", len(niches)-failures, totalNew),
		duration)
	return nil
}

func (d *Daemon) runNiche(ctx context.Context, niche string) (int, error) {
	resp, err := d.analyzer.AnalyzeNiche(ctx, models.AnalyzeRequest{Niche: niche})
	if err != nil {
		return 0, err
	}

	unseen, err := d.store.FilterUnseen(ctx, resp.Videos)
	if err != nil {
		return 0, err
	}
	if err := d.store.MarkSeen(ctx, niche, resp.Videos); err != nil {
		return 0, err
	}
	if _, err := d.store.RecordRun(ctx, "watch", niche, len(resp.Videos), len(resp.Ideas), resp.QuotaUsed); err != nil {
		log.Printf("Warning: failed to record run for %q: %v", niche, err)
	}

	log.Printf("Niche %q: %d outliers, %d new", niche, len(resp.Videos), len(unseen))

	if len(unseen) > 0 && d.sender != nil {
		digest := &email.Digest{Niche: niche, Date: time.Now(), Videos: unseen}
		if err := d.sender.SendDigest(digest); err != nil {
			return len(unseen), fmt.Errorf("send digest: %w", err)
		}
	}
	return len(unseen), nil
}
