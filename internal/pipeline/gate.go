package pipeline

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/kaiwa-hq/reddit-scout/internal/leads"
	"github.com/kaiwa-hq/reddit-scout/internal/llm"
	"github.com/kaiwa-hq/reddit-scout/internal/platform/observability"
)

// gate decides which scored leads get drafts. The numeric threshold runs
// first; the optional worthiness judgment only sees leads that cleared it.
type gate struct {
	threshold int
	judgment  bool
	client    llm.Client
	logger    *zerolog.Logger
}

// annotate applies the gate to one scored lead and, for worthy leads,
// generates both drafts. Judgment failures degrade to worthy so a flaky
// model never silently discards a high-signal lead.
func (g *gate) annotate(ctx context.Context, scored leads.ScoredLead) leads.AnnotatedLead {
	annotated := leads.AnnotatedLead{ScoredLead: scored, Scored: true}

	if scored.Score < g.threshold {
		return annotated
	}

	annotated.Worthy = true

	if g.judgment {
		judgment, err := g.client.Judge(ctx, scored)
		switch {
		case err != nil:
			g.logger.Warn().Err(err).Str("post_id", scored.Post.ID).
				Msg("worthiness judgment failed, keeping lead")
			annotated.WorthyReason = "judgment unavailable"
		case !judgment.Worthy:
			annotated.Worthy = false
			annotated.WorthyReason = judgment.Reason
		default:
			annotated.WorthyReason = judgment.Reason
		}
	}

	verdict := "worthy"
	if !annotated.Worthy {
		verdict = "vetoed"
	}
	observability.LeadsWorthy.WithLabelValues(verdict).Inc()

	if !annotated.Worthy {
		return annotated
	}

	if draft, err := g.client.DraftPublic(ctx, scored); err != nil {
		g.logger.Warn().Err(err).Str("post_id", scored.Post.ID).Msg("public draft failed")
	} else {
		annotated.PublicDraft = draft
		observability.DraftsGenerated.WithLabelValues("public").Inc()
	}

	if draft, err := g.client.DraftDM(ctx, scored); err != nil {
		g.logger.Warn().Err(err).Str("post_id", scored.Post.ID).Msg("dm draft failed")
	} else {
		annotated.DMDraft = draft
		observability.DraftsGenerated.WithLabelValues("dm").Inc()
	}

	return annotated
}
