package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"outlier-scout/shared/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// NewOAuthClient creates a client authorized as the user, for calls that an
// API key cannot make (channels.list mine=true). The token is cached on disk
// and refreshed transparently; first use walks through the device flow.
func NewOAuthClient(ctx context.Context, cfg *config.YouTubeConfig) (*Client, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("OAuth client credentials are required (set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET)")
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Scopes:       []string{"https://www.googleapis.com/auth/youtube.readonly"},
		Endpoint:     google.Endpoint,
	}

	token, err := loadOrAuthorize(ctx, oauthCfg, cfg.TokenFile)
	if err != nil {
		return nil, err
	}

	source := &cachingTokenSource{cfg: oauthCfg, token: token, file: cfg.TokenFile}
	httpClient := oauth2.NewClient(ctx, source)

	service, err := youtube.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}
	return &Client{service: service}, nil
}

// cachingTokenSource refreshes through the wrapped config and writes any new
// token back to disk so it survives restarts.
type cachingTokenSource struct {
	cfg   *oauth2.Config
	token *oauth2.Token
	file  string
	mu    sync.Mutex
}

func (s *cachingTokenSource) Token() (*oauth2.Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fresh, err := s.cfg.TokenSource(context.Background(), s.token).Token()
	if err != nil {
		return nil, err
	}
	if fresh.AccessToken != s.token.AccessToken {
		s.token = fresh
		if err := writeTokenFile(s.file, fresh); err != nil {
			log.Printf("Warning: failed to persist refreshed token: %v", err)
		}
	}
	return fresh, nil
}

func loadOrAuthorize(ctx context.Context, cfg *oauth2.Config, file string) (*oauth2.Token, error) {
	if token, err := readTokenFile(file); err == nil {
		// An expired token with a refresh token is still usable; the
		// token source refreshes it on first call.
		if token.RefreshToken != "" || token.Valid() {
			return token, nil
		}
	}

	resp, err := cfg.DeviceAuth(ctx, oauth2.AccessTypeOffline)
	if err != nil {
		return nil, fmt.Errorf("unable to start device authorization: %w", err)
	}

	fmt.Printf("\nAuthorize this tool to read your YouTube channel:\n")
	fmt.Printf("  1. Visit %s\n", resp.VerificationURI)
	fmt.Printf("  2. Enter code: %s\n\n", resp.UserCode)
	fmt.Printf("Waiting for authorization... (Ctrl+C to cancel)\n")

	token, err := cfg.DeviceAccessToken(ctx, resp, oauth2.AccessTypeOffline)
	if err != nil {
		return nil, fmt.Errorf("device authorization did not complete: %w", err)
	}

	if err := writeTokenFile(file, token); err != nil {
		log.Printf("Warning: failed to save token: %v", err)
	}
	return token, nil
}

func readTokenFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(token); err != nil {
		return nil, err
	}
	return token, nil
}

func writeTokenFile(path string, token *oauth2.Token) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("unable to create token directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("unable to cache oauth token: %w", err)
	}
	defer f.Close()

	return json.NewEncoder(f).Encode(token)
}
