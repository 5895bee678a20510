package pipeline

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaiwa-hq/reddit-scout/internal/leads"
	"github.com/kaiwa-hq/reddit-scout/internal/llm"
)

func newGate(client llm.Client, threshold int, judgment bool) *gate {
	logger := zerolog.Nop()

	return &gate{
		threshold: threshold,
		judgment:  judgment,
		client:    client,
		logger:    &logger,
	}
}

func scoredLead(score int) leads.ScoredLead {
	return leads.NewScoredLead(leads.Lead{
		Post: leads.RawPost{ID: "p1", Author: "learner", Subreddit: "French"},
	}, score, llm.CategorySpeakingAnxiety)
}

func TestGateBelowThreshold(t *testing.T) {
	client := &stubLLM{}
	g := newGate(client, 7, true)

	annotated := g.annotate(context.Background(), scoredLead(5))

	assert.False(t, annotated.Worthy)
	assert.Empty(t, annotated.PublicDraft)
	assert.Empty(t, annotated.DMDraft)
	assert.Empty(t, client.judgeCalls, "judgment must not run below the threshold")
}

func TestGateAtThresholdIsWorthy(t *testing.T) {
	g := newGate(&stubLLM{}, 7, false)

	annotated := g.annotate(context.Background(), scoredLead(7))

	require.True(t, annotated.Worthy)
	assert.Equal(t, "public draft", annotated.PublicDraft)
	assert.Equal(t, "dm draft", annotated.DMDraft)
}

func TestGateJudgmentDisabledSkipsModel(t *testing.T) {
	client := &stubLLM{}
	g := newGate(client, 7, false)

	annotated := g.annotate(context.Background(), scoredLead(9))

	assert.True(t, annotated.Worthy)
	assert.Empty(t, client.judgeCalls)
	assert.Empty(t, annotated.WorthyReason)
}

func TestGateVetoRecordsReason(t *testing.T) {
	client := &stubLLM{
		judgments: map[string]llm.Judgment{
			"p1": {Worthy: false, Reason: "third party, not the author"},
		},
	}
	g := newGate(client, 7, true)

	annotated := g.annotate(context.Background(), scoredLead(9))

	assert.False(t, annotated.Worthy)
	assert.Equal(t, "third party, not the author", annotated.WorthyReason)
	assert.Empty(t, annotated.PublicDraft)
}

func TestGateDraftFailureKeepsLead(t *testing.T) {
	client := &stubLLM{draftErr: errors.New("model overloaded")}
	g := newGate(client, 7, false)

	annotated := g.annotate(context.Background(), scoredLead(9))

	require.True(t, annotated.Worthy, "draft failures must not demote the lead")
	assert.Empty(t, annotated.PublicDraft)
	assert.Empty(t, annotated.DMDraft)
}
