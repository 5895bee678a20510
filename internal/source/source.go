// Package source fetches candidate posts from Reddit's public listing API,
// with a fixture-backed implementation for offline runs and tests.
package source

import (
	"context"

	"github.com/kaiwa-hq/reddit-scout/internal/leads"
)

// Request describes one fetch across a set of subreddits.
type Request struct {
	// Subreddits to pull from. Must be non-empty.
	Subreddits []string
	// Limit caps the total number of posts returned.
	Limit int
}

// Source yields recent posts. Implementations must be safe for sequential
// reuse across runs.
type Source interface {
	Fetch(ctx context.Context, req Request) ([]leads.RawPost, error)
}
