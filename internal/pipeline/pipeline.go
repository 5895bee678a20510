// Package pipeline drives one scout run: fetch, filter, dedupe, score,
// gate, draft, export.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kaiwa-hq/reddit-scout/internal/filter"
	"github.com/kaiwa-hq/reddit-scout/internal/leads"
	"github.com/kaiwa-hq/reddit-scout/internal/llm"
	"github.com/kaiwa-hq/reddit-scout/internal/platform/observability"
	"github.com/kaiwa-hq/reddit-scout/internal/seen"
	"github.com/kaiwa-hq/reddit-scout/internal/sink"
	"github.com/kaiwa-hq/reddit-scout/internal/source"
)

// Summary is the outcome of one run, logged and returned to the caller.
type Summary struct {
	RunID       string
	Fetched     int
	Filter      filter.Stats
	SeenSkipped int
	Scored      int
	ScoreFailed int // leads in batches the scorer failed on
	Worthy      int
	Exported    int
	Duration    time.Duration
}

type Config struct {
	Subreddits      []string
	Limit           int
	Analyze         bool
	SignalThreshold int
	BatchSize       int
	Judgment        bool
}

type Pipeline struct {
	cfg    Config
	source source.Source
	filter *filter.Filter
	client llm.Client
	sink   sink.Sink
	ledger *seen.Ledger // nil disables cross-run dedup
	logger *zerolog.Logger
}

func New(cfg Config, src source.Source, flt *filter.Filter, client llm.Client, snk sink.Sink, ledger *seen.Ledger, logger *zerolog.Logger) *Pipeline {
	return &Pipeline{
		cfg:    cfg,
		source: src,
		filter: flt,
		client: client,
		sink:   snk,
		ledger: ledger,
		logger: logger,
	}
}

// Run executes one full pass. Every lead that survives filtering and dedup
// is exported; the signal gate only controls judgment and drafting.
func (p *Pipeline) Run(ctx context.Context) (Summary, error) {
	start := time.Now()

	summary := Summary{RunID: uuid.NewString()}
	logger := p.logger.With().Str("run_id", summary.RunID).Logger()

	logger.Info().Strs("subreddits", p.cfg.Subreddits).Int("limit", p.cfg.Limit).Msg("scout run starting")

	posts, err := p.source.Fetch(ctx, source.Request{
		Subreddits: p.cfg.Subreddits,
		Limit:      p.cfg.Limit,
	})
	if err != nil {
		observability.RunsTotal.WithLabelValues("error").Inc()
		return summary, fmt.Errorf("fetch posts: %w", err)
	}

	summary.Fetched = len(posts)
	observability.PostsFetched.WithLabelValues("reddit").Add(float64(len(posts)))

	filtered, stats := p.filter.Apply(posts)
	summary.Filter = stats
	observability.PostsFiltered.WithLabelValues(filter.ReasonExcluded).Add(float64(stats.Excluded))
	observability.PostsFiltered.WithLabelValues(filter.ReasonNoTrigger).Add(float64(stats.NoTrigger))
	observability.PostsFiltered.WithLabelValues(filter.ReasonDeletedAuthor).Add(float64(stats.DeletedAuthor))

	fresh, skipped, err := p.dropSeen(ctx, filtered)
	if err != nil {
		observability.RunsTotal.WithLabelValues("error").Inc()
		return summary, err
	}

	summary.SeenSkipped = skipped

	annotated, scoreFailed, err := p.annotate(ctx, &logger, fresh)
	if err != nil {
		observability.RunsTotal.WithLabelValues("error").Inc()
		return summary, err
	}

	summary.ScoreFailed = scoreFailed

	for _, lead := range annotated {
		if lead.Worthy {
			summary.Worthy++
		}
		if lead.Scored {
			summary.Scored++
		}
	}

	if len(annotated) > 0 {
		if err := p.sink.Write(ctx, annotated); err != nil {
			observability.RunsTotal.WithLabelValues("error").Inc()
			return summary, fmt.Errorf("export leads: %w", err)
		}
	}

	summary.Exported = len(annotated)

	if err := p.recordSeen(ctx, annotated); err != nil {
		logger.Warn().Err(err).Msg("recording seen posts failed, duplicates possible next run")
	}

	summary.Duration = time.Since(start)
	observability.RunsTotal.WithLabelValues("ok").Inc()
	observability.RunDuration.Observe(summary.Duration.Seconds())

	logger.Info().
		Int("fetched", summary.Fetched).
		Int("passed_filter", stats.Passed).
		Int("seen_skipped", summary.SeenSkipped).
		Int("scored", summary.Scored).
		Int("score_failed", summary.ScoreFailed).
		Int("worthy", summary.Worthy).
		Int("exported", summary.Exported).
		Dur("duration", summary.Duration).
		Msg("scout run finished")

	return summary, nil
}

func (p *Pipeline) dropSeen(ctx context.Context, input []leads.Lead) ([]leads.Lead, int, error) {
	if p.ledger == nil {
		return input, 0, nil
	}

	fresh := make([]leads.Lead, 0, len(input))
	skipped := 0

	for _, lead := range input {
		contains, err := p.ledger.Contains(ctx, lead.Post.ID)
		if err != nil {
			return nil, 0, fmt.Errorf("check seen ledger: %w", err)
		}

		if contains {
			skipped++
			observability.SeenSkipped.Inc()
			continue
		}

		fresh = append(fresh, lead)
	}

	return fresh, skipped, nil
}

// annotate scores the leads in batches and runs the worthiness gate. When
// analysis is disabled, every lead is exported unscored. A failing batch is
// skipped, never fatal: its leads are dropped for this run and retried on
// the next one because they are not recorded as seen.
func (p *Pipeline) annotate(ctx context.Context, logger *zerolog.Logger, input []leads.Lead) ([]leads.AnnotatedLead, int, error) {
	out := make([]leads.AnnotatedLead, 0, len(input))

	if !p.cfg.Analyze {
		for _, lead := range input {
			out = append(out, leads.AnnotatedLead{
				ScoredLead: leads.ScoredLead{Lead: lead},
			})
		}

		return out, 0, nil
	}

	g := &gate{
		threshold: p.cfg.SignalThreshold,
		judgment:  p.cfg.Judgment,
		client:    p.client,
		logger:    logger,
	}

	batchSize := p.cfg.BatchSize
	if batchSize <= 0 {
		batchSize = 10
	}

	scoreFailed := 0

	for offset := 0; offset < len(input); offset += batchSize {
		end := offset + batchSize
		if end > len(input) {
			end = len(input)
		}
		batch := input[offset:end]

		results, err := p.client.ScoreBatch(ctx, batch)
		if err != nil {
			if ctx.Err() != nil {
				return nil, scoreFailed, fmt.Errorf("score batch at offset %d: %w", offset, err)
			}

			logger.Warn().Err(err).Int("offset", offset).Int("size", len(batch)).
				Msg("score batch failed, skipping batch")
			scoreFailed += len(batch)
			continue
		}

		if len(results) != len(batch) {
			logger.Warn().Int("offset", offset).Int("results", len(results)).Int("leads", len(batch)).
				Msg("score batch cardinality mismatch, skipping batch")
			scoreFailed += len(batch)
			continue
		}

		for i, lead := range batch {
			res := results[i]

			// A zero score marks a lead the model skipped; export it
			// unscored rather than inventing a rating.
			if res.Score == 0 {
				logger.Warn().Str("post_id", lead.Post.ID).Msg("lead missing from scoring response, exporting unscored")
				out = append(out, leads.AnnotatedLead{
					ScoredLead: leads.ScoredLead{Lead: lead},
				})
				continue
			}

			if res.Score < leads.MinScore || res.Score > leads.MaxScore {
				logger.Warn().Str("post_id", lead.Post.ID).Int("score", res.Score).Msg("score out of range, clamping")
			}

			category := res.Category
			if category == "" {
				category = llm.DefaultCategory
			}

			scored := leads.NewScoredLead(lead, res.Score, category)
			observability.LeadsScored.WithLabelValues(string(scored.Band)).Inc()

			out = append(out, g.annotate(ctx, scored))
		}
	}

	return out, scoreFailed, nil
}

func (p *Pipeline) recordSeen(ctx context.Context, exported []leads.AnnotatedLead) error {
	if p.ledger == nil {
		return nil
	}

	for _, lead := range exported {
		if err := p.ledger.Record(ctx, lead.Post.ID, lead.Post.Subreddit); err != nil {
			return err
		}
	}

	return nil
}
