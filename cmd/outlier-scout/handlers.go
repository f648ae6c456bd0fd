package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"outlier-scout/internal/analyzer"
	"outlier-scout/internal/export"
	"outlier-scout/internal/models"
	"outlier-scout/internal/render"
	"outlier-scout/internal/server"
	"outlier-scout/internal/trends"
	"outlier-scout/internal/watch"
	"outlier-scout/internal/youtube"
	"outlier-scout/shared/ai"
	"outlier-scout/shared/config"
	"outlier-scout/shared/email"
	"outlier-scout/shared/storage"
)

type analyzeOptions struct {
	pages         int
	days          int
	minViews      int64
	regions       []string
	includeShorts bool
	maxIdeas      int
	aiBriefs      bool
	jsonOutput    bool
	csvFile       string
}

type spyOptions struct {
	mine       bool
	jsonOutput bool
	csvFile    string
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		os.Setenv("CONFIG_FILE", cfgFile)
	}
	return config.Load()
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func buildAnalyzer(ctx context.Context, cfg *config.Config) (*analyzer.Analyzer, error) {
	client, err := youtube.NewClient(ctx, cfg.YouTube.APIKey)
	if err != nil {
		return nil, err
	}
	return analyzer.New(client, cfg.Analysis), nil
}

func openStore(cfg *config.Config) *storage.Store {
	store, err := storage.New(cfg.Storage.Path)
	if err != nil {
		log.Printf("Warning: storage unavailable, run history disabled: %v", err)
		return nil
	}
	return store
}

func runAnalyze(niche string, opts analyzeOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	a, err := buildAnalyzer(ctx, cfg)
	if err != nil {
		return err
	}

	resp, err := a.AnalyzeNiche(ctx, models.AnalyzeRequest{
		Niche:               niche,
		MaxPages:            opts.pages,
		PublishedWithinDays: opts.days,
		MinViews:            opts.minViews,
		Regions:             opts.regions,
		IncludeShorts:       opts.includeShorts,
		MaxIdeas:            opts.maxIdeas,
	})
	if err != nil {
		return err
	}

	if store := openStore(cfg); store != nil {
		defer store.Close()
		if _, err := store.RecordRun(ctx, "analyze", niche, len(resp.Videos), len(resp.Ideas), resp.QuotaUsed); err != nil {
			log.Printf("Warning: failed to record run: %v", err)
		}
	}

	if opts.csvFile != "" {
		if err := writeCSVFile(opts.csvFile, resp.Videos); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Wrote %d videos to %s\n", len(resp.Videos), opts.csvFile)
	}

	if opts.jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(resp)
	}

	render.Videos(os.Stdout, resp.Videos)
	render.Ideas(os.Stdout, resp.Ideas)
	fmt.Printf("\nQuota used: %d units\n", resp.QuotaUsed)

	if opts.aiBriefs {
		strategist, err := ai.NewStrategist(cfg)
		if err != nil {
			return err
		}
		briefs, err := strategist.GenerateBriefs(ctx, niche, resp.Videos)
		if err != nil {
			return err
		}
		fmt.Println("\nAI production briefs:")
		render.Briefs(os.Stdout, briefs)
	}
	return nil
}

func runSpy(channel string, opts spyOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	client, err := youtube.NewClient(ctx, cfg.YouTube.APIKey)
	if err != nil {
		return err
	}

	if opts.mine {
		// Resolving the caller's own channel needs user credentials; public
		// data calls stay on the API key afterwards.
		oauthClient, err := youtube.NewOAuthClient(ctx, &cfg.YouTube)
		if err != nil {
			return err
		}
		channel, err = oauthClient.MyChannelID(ctx)
		if err != nil {
			return err
		}
	}
	if channel == "" {
		return fmt.Errorf("a channel URL, @handle, or ID is required (or use --mine)")
	}

	a := analyzer.New(client, cfg.Analysis)
	resp, err := a.SpyChannel(ctx, models.ChannelSpyRequest{ChannelInput: channel})
	if err != nil {
		return err
	}

	if store := openStore(cfg); store != nil {
		defer store.Close()
		if _, err := store.RecordRun(ctx, "spy", channel, len(resp.Videos), 0, resp.QuotaUsed); err != nil {
			log.Printf("Warning: failed to record run: %v", err)
		}
	}

	if opts.csvFile != "" {
		if err := writeCSVFile(opts.csvFile, resp.Videos); err != nil {
			return err
		}
	}

	if opts.jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(resp)
	}

	render.Channel(os.Stdout, resp.Channel)
	render.Videos(os.Stdout, resp.Videos)
	fmt.Printf("\nQuota used: %d units\n", resp.QuotaUsed)
	return nil
}

func runTrends(query string, jsonOutput bool) error {
	ctx, cancel := signalContext()
	defer cancel()

	fetched, err := trends.NewFetcher().Fetch(ctx, query)
	if err != nil {
		return err
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(fetched)
	}
	render.Trends(os.Stdout, fetched)
	return nil
}

func runServe(port int) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port == 0 {
		port = cfg.Server.Port
	}

	ctx, cancel := signalContext()
	defer cancel()

	a, err := buildAnalyzer(ctx, cfg)
	if err != nil {
		return err
	}

	var strategist server.Strategist
	if cfg.AI.GeminiAPIKey != "" {
		s, err := ai.NewStrategist(cfg)
		if err != nil {
			return err
		}
		strategist = s
	}

	store := openStore(cfg)
	if store != nil {
		defer store.Close()
	}

	return server.New(a, strategist, trends.NewFetcher(), store, port).ListenAndServe()
}

func runWatch(once bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	a, err := buildAnalyzer(ctx, cfg)
	if err != nil {
		return err
	}

	store, err := storage.New(cfg.Storage.Path)
	if err != nil {
		return fmt.Errorf("watch requires storage: %w", err)
	}
	defer store.Close()

	var sender watch.DigestSender
	if cfg.Email.SMTPServer != "" {
		sender = email.NewSender(&cfg.Email)
	} else {
		log.Printf("No SMTP server configured; digests will be logged only")
	}

	daemon := watch.New(cfg, a, store, sender)
	if once {
		return daemon.RunOnce(ctx)
	}
	return daemon.Start(ctx)
}

func writeCSVFile(path string, videos []models.ScoredVideo) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := export.WriteVideosCSV(f, videos); err != nil {
		return err
	}
	return f.Close()
}
