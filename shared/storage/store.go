package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"outlier-scout/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Run is one logged analysis run.
type Run struct {
	ID         string    `db:"id" json:"id"`
	Kind       string    `db:"kind" json:"kind"` // "analyze" or "spy"
	Query      string    `db:"query" json:"query"`
	VideoCount int       `db:"video_count" json:"videoCount"`
	IdeaCount  int       `db:"idea_count" json:"ideaCount"`
	QuotaUsed  int       `db:"quota_used" json:"quotaUsed"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}

// ErrNotFound is returned when a requested key or row does not exist.
var ErrNotFound = errors.New("not found")

// Store persists settings, run history, and the seen-video tracker in SQLite.
type Store struct {
	db *sqlx.DB
}

// New opens the SQLite database at path and runs migrations, creating the
// parent directory if needed.
func New(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data directory %s: %w", dir, err)
		}
	}

	db, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// GetSetting returns the stored value for key, or ErrNotFound.
func (s *Store) GetSetting(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.GetContext(ctx, &value, "SELECT value FROM settings WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get setting %s: %w", key, err)
	}
	return value, nil
}

// SetSetting stores or replaces one setting.
func (s *Store) SetSetting(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("set setting %s: %w", key, err)
	}
	return nil
}

// AllSettings returns every stored setting as a map.
func (s *Store) AllSettings(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryxContext(ctx, "SELECT key, value FROM settings")
	if err != nil {
		return nil, fmt.Errorf("list settings: %w", err)
	}
	defer rows.Close()

	settings := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, err
		}
		settings[key] = value
	}
	return settings, rows.Err()
}

// RecordRun logs one completed analysis run and returns its generated ID.
func (s *Store) RecordRun(ctx context.Context, kind, query string, videoCount, ideaCount, quotaUsed int) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, kind, query, video_count, idea_count, quota_used, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, id, kind, query, videoCount, ideaCount, quotaUsed, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("record run: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	var runs []Run
	err := s.db.SelectContext(ctx, &runs,
		"SELECT * FROM runs ORDER BY created_at DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// QuotaUsedSince sums the quota spent by runs recorded after the cutoff.
func (s *Store) QuotaUsedSince(ctx context.Context, since time.Time) (int, error) {
	var total sql.NullInt64
	err := s.db.GetContext(ctx, &total,
		"SELECT SUM(quota_used) FROM runs WHERE created_at >= ?", since)
	if err != nil {
		return 0, fmt.Errorf("sum quota: %w", err)
	}
	return int(total.Int64), nil
}

// MarkSeen records outliers so future watch runs can tell old from new.
// Already-seen videos keep their original first_seen timestamp.
func (s *Store) MarkSeen(ctx context.Context, niche string, videos []models.ScoredVideo) error {
	now := time.Now().UTC()
	for _, v := range videos {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO seen_videos (video_id, niche, title, grade, composite, first_seen)
			VALUES (?, ?, ?, ?, ?, ?)
			ON CONFLICT(video_id) DO UPDATE SET
				grade = excluded.grade,
				composite = excluded.composite
		`, v.Snippet.VideoID, niche, v.Snippet.Title, v.Grade, v.Scores.Composite, now)
		if err != nil {
			return fmt.Errorf("mark seen %s: %w", v.Snippet.VideoID, err)
		}
	}
	return nil
}

// FilterUnseen returns the subset of videos that have never been marked seen.
func (s *Store) FilterUnseen(ctx context.Context, videos []models.ScoredVideo) ([]models.ScoredVideo, error) {
	var unseen []models.ScoredVideo
	for _, v := range videos {
		var exists int
		err := s.db.GetContext(ctx, &exists,
			"SELECT COUNT(*) FROM seen_videos WHERE video_id = ?", v.Snippet.VideoID)
		if err != nil {
			return nil, fmt.Errorf("check seen %s: %w", v.Snippet.VideoID, err)
		}
		if exists == 0 {
			unseen = append(unseen, v)
		}
	}
	return unseen, nil
}

// PruneSeen deletes tracker entries older than the retention window.
func (s *Store) PruneSeen(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-olderThan)
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM seen_videos WHERE first_seen < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune seen videos: %w", err)
	}
	return res.RowsAffected()
}
