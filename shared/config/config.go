package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	YouTube  YouTubeConfig  `yaml:"youtube"`
	AI       AIConfig       `yaml:"ai"`
	Analysis AnalysisConfig `yaml:"analysis"`
	Email    EmailConfig    `yaml:"email"`
	Watch    WatchConfig    `yaml:"watch"`
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
}

type YouTubeConfig struct {
	APIKey string `yaml:"api_key" env:"YT_API_KEY"`
	// OAuth client for operations on the caller's own channel (spy --mine).
	// Public-data operations only need the API key.
	ClientID     string `yaml:"client_id" env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `yaml:"client_secret" env:"GOOGLE_CLIENT_SECRET"`
	TokenFile    string `yaml:"token_file"`
}

type AIConfig struct {
	GeminiAPIKey string `yaml:"gemini_api_key" env:"GEMINI_API_KEY"`
	Model        string `yaml:"model"`
}

// AnalysisConfig carries the default niche-analysis filters. All of them can
// be overridden per run from the CLI or the HTTP API.
type AnalysisConfig struct {
	MaxPages            int      `yaml:"max_pages"`
	PublishedWithinDays int      `yaml:"published_within_days"`
	MinViews            int64    `yaml:"min_views"`
	Regions             []string `yaml:"regions"`
	IncludeShorts       bool     `yaml:"include_shorts"`
	TopN                int      `yaml:"top_n"`
	MaxIdeas            int      `yaml:"max_ideas"`
}

type EmailConfig struct {
	SMTPServer string `yaml:"smtp_server"`
	SMTPPort   int    `yaml:"smtp_port"`
	Username   string `yaml:"username" env:"EMAIL_USERNAME"`
	Password   string `yaml:"password" env:"EMAIL_PASSWORD"`
	FromEmail  string `yaml:"from_email"`
	ToEmail    string `yaml:"to_email"`
}

// WatchConfig drives the scheduled re-analysis daemon.
type WatchConfig struct {
	Schedule string   `yaml:"schedule"` // cron expression
	Niches   []string `yaml:"niches"`
}

type ServerConfig struct {
	Port int `yaml:"port"`
}

type StorageConfig struct {
	Path string `yaml:"path"` // SQLite database file
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	var cfg Config
	data, err := os.ReadFile(configFile)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}
	case os.IsNotExist(err):
		// No config file is fine; env vars and defaults cover everything.
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func (c *Config) applyEnv() {
	if c.YouTube.APIKey == "" {
		c.YouTube.APIKey = os.Getenv("YT_API_KEY")
	}
	if c.YouTube.ClientID == "" {
		c.YouTube.ClientID = os.Getenv("GOOGLE_CLIENT_ID")
	}
	if c.YouTube.ClientSecret == "" {
		c.YouTube.ClientSecret = os.Getenv("GOOGLE_CLIENT_SECRET")
	}
	if c.AI.GeminiAPIKey == "" {
		c.AI.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.Email.Username == "" {
		c.Email.Username = os.Getenv("EMAIL_USERNAME")
	}
	if c.Email.Password == "" {
		c.Email.Password = os.Getenv("EMAIL_PASSWORD")
	}
}

func (c *Config) applyDefaults() {
	if c.YouTube.TokenFile == "" {
		c.YouTube.TokenFile = "youtube_token.json"
	}
	if c.AI.Model == "" {
		c.AI.Model = "gemini-2.5-flash"
	}
	if c.Analysis.MaxPages == 0 {
		c.Analysis.MaxPages = 3
	}
	if c.Analysis.PublishedWithinDays == 0 {
		c.Analysis.PublishedWithinDays = 14
	}
	if c.Analysis.MinViews == 0 {
		c.Analysis.MinViews = 1000
	}
	if len(c.Analysis.Regions) == 0 {
		c.Analysis.Regions = []string{"US"}
	}
	if c.Analysis.TopN == 0 {
		c.Analysis.TopN = 50
	}
	if c.Analysis.MaxIdeas == 0 {
		c.Analysis.MaxIdeas = 9
	}
	if c.Watch.Schedule == "" {
		c.Watch.Schedule = "0 9 * * *" // Daily at 9 AM
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Storage.Path == "" {
		c.Storage.Path = "data/outlier-scout.db"
	}
}

func (c *Config) validate() error {
	if c.YouTube.APIKey == "" {
		return fmt.Errorf("YouTube API key is required (set YT_API_KEY or youtube.api_key)")
	}
	if c.Analysis.MaxPages < 1 || c.Analysis.MaxPages > 10 {
		return fmt.Errorf("analysis.max_pages must be between 1 and 10, got %d", c.Analysis.MaxPages)
	}
	if c.Analysis.PublishedWithinDays < 1 {
		return fmt.Errorf("analysis.published_within_days must be positive, got %d", c.Analysis.PublishedWithinDays)
	}
	return nil
}
