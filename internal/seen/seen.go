// Package seen is a small SQLite ledger of already-processed post IDs, so
// repeated runs do not re-score or re-export the same leads.
package seen

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS seen_posts (
	post_id   TEXT PRIMARY KEY,
	subreddit TEXT NOT NULL DEFAULT '',
	seen_at   TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_seen_posts_seen_at ON seen_posts (seen_at);
`

type Ledger struct {
	db        *sql.DB
	retention time.Duration
}

// Open opens or creates the ledger at path. Retention bounds how long post
// IDs are remembered; Purge removes older entries.
func Open(path string, retention time.Duration) (*Ledger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open ledger: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set journal mode: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &Ledger{db: db, retention: retention}, nil
}

func (l *Ledger) Close() error {
	return l.db.Close()
}

// Contains reports whether the post ID was recorded by an earlier run.
func (l *Ledger) Contains(ctx context.Context, postID string) (bool, error) {
	var one int

	err := l.db.QueryRowContext(ctx,
		"SELECT 1 FROM seen_posts WHERE post_id = ?", postID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("query ledger: %w", err)
	}

	return true, nil
}

// Record remembers a post ID. Re-recording an existing ID refreshes its
// timestamp so active posts survive retention purges.
func (l *Ledger) Record(ctx context.Context, postID, subreddit string) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO seen_posts (post_id, subreddit, seen_at) VALUES (?, ?, ?)
		 ON CONFLICT(post_id) DO UPDATE SET seen_at = excluded.seen_at`,
		postID, subreddit, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("record post: %w", err)
	}

	return nil
}

// Purge drops entries older than the retention window and returns how many
// were removed.
func (l *Ledger) Purge(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-l.retention)

	res, err := l.db.ExecContext(ctx,
		"DELETE FROM seen_posts WHERE seen_at < ?", cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge ledger: %w", err)
	}

	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("purge ledger: %w", err)
	}

	return removed, nil
}

// Count returns the number of remembered posts, used by health reporting.
func (l *Ledger) Count(ctx context.Context) (int64, error) {
	var n int64

	if err := l.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM seen_posts").Scan(&n); err != nil {
		return 0, fmt.Errorf("count ledger: %w", err)
	}

	return n, nil
}
