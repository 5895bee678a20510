// Package llm scores leads, judges outreach worthiness, and drafts replies
// through a chat-completion model.
package llm

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kaiwa-hq/reddit-scout/internal/config"
	"github.com/kaiwa-hq/reddit-scout/internal/leads"
)

// ScoreResult is one element of a batch scoring response. Index echoes the
// position of the lead in the request so responses can be re-aligned.
type ScoreResult struct {
	Index    int    `json:"index"`
	Score    int    `json:"score"`
	Category string `json:"category"`
}

// Judgment is the outreach verdict for a single high-scoring lead.
type Judgment struct {
	Worthy bool   `json:"worthy"`
	Reason string `json:"reason"`
}

type Client interface {
	// ScoreBatch rates each lead 1-10 and assigns a category. The result
	// slice always has the same length as the input, aligned by index.
	ScoreBatch(ctx context.Context, batch []leads.Lead) ([]ScoreResult, error)
	// Judge decides whether a scored lead deserves manual outreach.
	Judge(ctx context.Context, lead leads.ScoredLead) (Judgment, error)
	// DraftPublic writes a public comment reply for the lead's thread.
	DraftPublic(ctx context.Context, lead leads.ScoredLead) (string, error)
	// DraftDM writes a direct message to the lead's author.
	DraftDM(ctx context.Context, lead leads.ScoredLead) (string, error)
}

// New returns the real client, or a deterministic mock when no API key is
// configured so the pipeline stays runnable offline.
func New(cfg *config.Config, logger *zerolog.Logger) Client {
	if cfg.LLMAPIKey == "" || cfg.LLMAPIKey == "mock" {
		logger.Warn().Msg("no LLM API key configured, using mock client")
		return &mockClient{}
	}

	return NewOpenAI(cfg, logger)
}

type mockClient struct{}

// ScoreBatch rates leads by trigger count: more matched phrases, higher
// signal. Deterministic so fixture runs are reproducible.
func (c *mockClient) ScoreBatch(_ context.Context, batch []leads.Lead) ([]ScoreResult, error) {
	results := make([]ScoreResult, len(batch))
	for i, lead := range batch {
		results[i] = ScoreResult{
			Index:    i,
			Score:    leads.ClampScore(5 + 2*len(lead.MatchedTriggers)),
			Category: DefaultCategory,
		}
	}

	return results, nil
}

func (c *mockClient) Judge(_ context.Context, lead leads.ScoredLead) (Judgment, error) {
	return Judgment{
		Worthy: true,
		Reason: "mock judgment for band " + string(lead.Band),
	}, nil
}

func (c *mockClient) DraftPublic(_ context.Context, lead leads.ScoredLead) (string, error) {
	return "That feeling of freezing up is really common, and it's rarely a knowledge gap. " +
		"Low-pressure speaking practice is usually what breaks it. (mock draft for u/" +
		lead.Post.Author + ")", nil
}

func (c *mockClient) DraftDM(_ context.Context, lead leads.ScoredLead) (string, error) {
	return "Hi u/" + lead.Post.Author + ", saw your post in r/" + lead.Post.Subreddit +
		" and it really resonated. (mock draft)", nil
}
