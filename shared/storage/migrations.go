package storage

const schema = `
CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS runs (
    id          TEXT PRIMARY KEY,
    kind        TEXT NOT NULL,
    query       TEXT NOT NULL,
    video_count INTEGER NOT NULL DEFAULT 0,
    idea_count  INTEGER NOT NULL DEFAULT 0,
    quota_used  INTEGER NOT NULL DEFAULT 0,
    created_at  DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_runs_kind ON runs(kind);

CREATE TABLE IF NOT EXISTS seen_videos (
    video_id   TEXT PRIMARY KEY,
    niche      TEXT NOT NULL,
    title      TEXT NOT NULL DEFAULT '',
    grade      TEXT NOT NULL DEFAULT '',
    composite  REAL NOT NULL DEFAULT 0,
    first_seen DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_seen_niche ON seen_videos(niche);
CREATE INDEX IF NOT EXISTS idx_seen_first ON seen_videos(first_seen);
`
