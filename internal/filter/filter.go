// Package filter turns raw posts into leads by applying the keyword tables.
package filter

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/kaiwa-hq/reddit-scout/internal/keywords"
	"github.com/kaiwa-hq/reddit-scout/internal/leads"
)

const (
	ReasonExcluded      = "filter_excluded"
	ReasonNoTrigger     = "filter_no_trigger"
	ReasonDeletedAuthor = "filter_deleted_author"
)

// Stats counts the fate of every post in one filtering pass.
type Stats struct {
	Total         int
	Passed        int
	Excluded      int
	NoTrigger     int
	DeletedAuthor int
}

type Filter struct {
	matcher *keywords.Matcher
	// keepUnmatched passes trigger-less posts through for audit runs.
	// Excluded posts and deleted authors are dropped regardless.
	keepUnmatched bool
	logger        *zerolog.Logger
}

func New(matcher *keywords.Matcher, keepUnmatched bool, logger *zerolog.Logger) *Filter {
	return &Filter{
		matcher:       matcher,
		keepUnmatched: keepUnmatched,
		logger:        logger,
	}
}

// Apply evaluates each post and returns the surviving leads with match
// metadata attached. CapturedAt is stamped once so every lead from the same
// pass carries the same capture time.
func (f *Filter) Apply(posts []leads.RawPost) ([]leads.Lead, Stats) {
	capturedAt := time.Now().UTC()

	stats := Stats{Total: len(posts)}
	out := make([]leads.Lead, 0, len(posts))

	for _, post := range posts {
		if post.Author == leads.DeletedAuthor || post.Author == "" {
			stats.DeletedAuthor++
			f.logger.Debug().Str("post_id", post.ID).Str("reason", ReasonDeletedAuthor).Msg("post dropped")
			continue
		}

		match := f.matcher.Match(post.FullText())

		if match.Excluded {
			stats.Excluded++
			f.logger.Debug().
				Str("post_id", post.ID).
				Str("reason", ReasonExcluded).
				Strs("exclusions", match.Exclusions).
				Msg("post dropped")
			continue
		}

		if len(match.Triggers) == 0 && !f.keepUnmatched {
			stats.NoTrigger++
			f.logger.Debug().Str("post_id", post.ID).Str("reason", ReasonNoTrigger).Msg("post dropped")
			continue
		}

		stats.Passed++
		out = append(out, leads.Lead{
			Post:            post,
			MatchedTriggers: match.Triggers,
			Language:        match.Language,
			CapturedAt:      capturedAt,
		})
	}

	return out, stats
}
