package youtube

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestTokenFileRoundTrip(t *testing.T) {
	tokenFile := filepath.Join(t.TempDir(), "nested", "token.json")

	original := &oauth2.Token{
		AccessToken:  "access",
		RefreshToken: "refresh",
		Expiry:       time.Now().Add(time.Hour).Truncate(time.Second),
	}

	if err := writeTokenFile(tokenFile, original); err != nil {
		t.Fatalf("writeTokenFile: %v", err)
	}

	loaded, err := readTokenFile(tokenFile)
	if err != nil {
		t.Fatalf("readTokenFile: %v", err)
	}
	if loaded.AccessToken != original.AccessToken || loaded.RefreshToken != original.RefreshToken {
		t.Errorf("loaded token = %+v, want %+v", loaded, original)
	}
}

func TestReadTokenFileMissing(t *testing.T) {
	if _, err := readTokenFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing token file")
	}
}

func TestResolveChannelLocalForms(t *testing.T) {
	// ID and URL forms resolve without touching the API.
	client := &Client{}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Raw channel ID", "UCabcdefghijklmnopqrstuv", "UCabcdefghijklmnopqrstuv"},
		{"Channel URL", "https://youtube.com/channel/UCabcdefghijklmnopqrstuv", "UCabcdefghijklmnopqrstuv"},
		{"Channel URL with trailing path", "https://youtube.com/channel/UCabcdefghijklmnopqrstuv/videos", "UCabcdefghijklmnopqrstuv"},
		{"Whitespace trimmed", "  UCabcdefghijklmnopqrstuv\n", "UCabcdefghijklmnopqrstuv"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, quota, err := client.ResolveChannel(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("ResolveChannel(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ResolveChannel(%q) = %s, want %s", tt.input, got, tt.want)
			}
			if quota != 0 {
				t.Errorf("quota = %d, want 0 for local resolution", quota)
			}
		})
	}
}

func TestBestThumbnail(t *testing.T) {
	if got := bestThumbnail(nil); got != "" {
		t.Errorf("bestThumbnail(nil) = %q, want empty", got)
	}
}
