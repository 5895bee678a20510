// Package sink exports annotated leads to their destinations. Every sink
// writes the same fixed-width row so CSV files and spreadsheets stay
// column-compatible.
package sink

import (
	"context"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/kaiwa-hq/reddit-scout/internal/leads"
)

// Sink receives one batch of annotated leads per run.
type Sink interface {
	Write(ctx context.Context, batch []leads.AnnotatedLead) error
	Close() error
}

const maxTitleLength = 100

// Headers is the human-readable header row shared by all sinks, in column
// order.
func Headers() []string {
	return []string{
		"Captured At",
		"Subreddit",
		"Author",
		"Title",
		"Post URL",
		"DM URL",
		"Matched Triggers",
		"Language",
		"Signal Score",
		"Signal Band",
		"Category",
		"Worthy",
		"Worthy Reason",
		"Public Draft",
		"DM Draft",
	}
}

// Row flattens one annotated lead into the shared column order. Unscored
// leads leave the score column empty rather than writing a misleading zero.
func Row(lead leads.AnnotatedLead) []string {
	score := ""
	band := ""
	if lead.Scored {
		score = strconv.Itoa(lead.Score)
		band = string(lead.Band)
	}

	return []string{
		lead.CapturedAt.UTC().Format(time.RFC3339),
		lead.Post.Subreddit,
		lead.Post.Author,
		truncateTitle(lead.Post.Title),
		lead.Post.PostURL(),
		lead.Post.MessageURL(),
		strings.Join(lead.MatchedTriggers, ", "),
		lead.Language,
		score,
		band,
		lead.Category,
		strconv.FormatBool(lead.Worthy),
		lead.WorthyReason,
		lead.PublicDraft,
		lead.DMDraft,
	}
}

func truncateTitle(title string) string {
	if utf8.RuneCountInString(title) <= maxTitleLength {
		return title
	}

	runes := []rune(title)

	return string(runes[:maxTitleLength]) + "..."
}
