package storage

const schema = `
-- Sources are the places cards come from: a local directory or a git URL.
CREATE TABLE IF NOT EXISTS sources (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    path TEXT NOT NULL UNIQUE,
    kind TEXT NOT NULL DEFAULT 'local', -- 'local' or 'git'
    last_scanned TEXT
);

-- Cards hold content plus the full scheduling snapshot. Stability,
-- difficulty and last_review are NULL until the first review; timestamps
-- are RFC 3339 text so the UTC offset survives a round trip.
CREATE TABLE IF NOT EXISTS cards (
    fingerprint TEXT PRIMARY KEY,
    front TEXT NOT NULL,
    back TEXT NOT NULL,
    context TEXT NOT NULL DEFAULT '',
    source_id INTEGER,
    state INTEGER NOT NULL DEFAULT 0, -- 0: New, 1: Learning, 2: Review, 3: Relearning
    stability REAL,
    difficulty REAL,
    elapsed_days INTEGER NOT NULL DEFAULT 0,
    scheduled_days INTEGER NOT NULL DEFAULT 0,
    reps INTEGER NOT NULL DEFAULT 0,
    lapses INTEGER NOT NULL DEFAULT 0,
    due TEXT NOT NULL,
    last_review TEXT,

    FOREIGN KEY(source_id) REFERENCES sources(id)
);

CREATE INDEX IF NOT EXISTS idx_cards_due ON cards(due);

-- Append-only review history, one row per committed review.
CREATE TABLE IF NOT EXISTS review_logs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    card_fingerprint TEXT NOT NULL,
    rating INTEGER NOT NULL,
    scheduled_days INTEGER NOT NULL,
    elapsed_days INTEGER NOT NULL,
    reviewed_at TEXT NOT NULL,
    state INTEGER NOT NULL,

    FOREIGN KEY(card_fingerprint) REFERENCES cards(fingerprint)
);

CREATE INDEX IF NOT EXISTS idx_review_logs_card ON review_logs(card_fingerprint);
`
