// Package app wires the scout's dependencies and exposes its run modes:
//
//   - Scout mode: one pass over the subreddit roster, then exit
//   - Serve mode: scout passes on an interval, with health and metrics
//     served over HTTP
package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kaiwa-hq/reddit-scout/internal/config"
	"github.com/kaiwa-hq/reddit-scout/internal/filter"
	"github.com/kaiwa-hq/reddit-scout/internal/keywords"
	"github.com/kaiwa-hq/reddit-scout/internal/llm"
	"github.com/kaiwa-hq/reddit-scout/internal/pipeline"
	"github.com/kaiwa-hq/reddit-scout/internal/platform/observability"
	"github.com/kaiwa-hq/reddit-scout/internal/platform/worker"
	"github.com/kaiwa-hq/reddit-scout/internal/seen"
	"github.com/kaiwa-hq/reddit-scout/internal/sink"
	"github.com/kaiwa-hq/reddit-scout/internal/source"
)

const purgeInterval = 6 * time.Hour

// Options carry the per-invocation flags that are not environment
// configuration.
type Options struct {
	// Subreddits overrides the built-in roster when non-empty
	// (comma-separated).
	Subreddits string
	// Limit overrides MAX_POSTS_PER_RUN when positive.
	Limit int
	// Analyze enables LLM scoring, judgment, and drafting.
	Analyze bool
	// Sheets enables the Google Sheets sink alongside CSV.
	Sheets bool
	// Mock forces the mock LLM client regardless of the configured key.
	Mock bool
	// FixturesFile switches the source to canned posts from a JSON file.
	// The literal value "builtin" uses the embedded sample set.
	FixturesFile string
}

type App struct {
	cfg    *config.Config
	opts   Options
	logger *zerolog.Logger

	pipe   *pipeline.Pipeline
	sinks  sink.Sink
	ledger *seen.Ledger
}

// New builds the full pipeline. Callers must Close the returned App.
func New(ctx context.Context, cfg *config.Config, opts Options, logger *zerolog.Logger) (*App, error) {
	a := &App{cfg: cfg, opts: opts, logger: logger}

	src, err := a.buildSource()
	if err != nil {
		return nil, err
	}

	sinks, err := a.buildSinks(ctx)
	if err != nil {
		return nil, err
	}
	a.sinks = sinks

	if cfg.SeenDBPath != "" {
		ledger, err := seen.Open(cfg.SeenDBPath, cfg.SeenRetention)
		if err != nil {
			_ = sinks.Close()
			return nil, fmt.Errorf("open seen ledger: %w", err)
		}
		a.ledger = ledger
	}

	llmCfg := *cfg
	if opts.Mock {
		llmCfg.LLMAPIKey = ""
	}
	client := llm.New(&llmCfg, logger)

	flt := filter.New(keywords.Default(), cfg.KeepUnmatched, logger)

	limit := cfg.MaxPosts
	if opts.Limit > 0 {
		limit = opts.Limit
	}

	a.pipe = pipeline.New(pipeline.Config{
		Subreddits:      a.subreddits(),
		Limit:           limit,
		Analyze:         opts.Analyze,
		SignalThreshold: cfg.SignalThreshold,
		BatchSize:       cfg.ScoreBatchSize,
		Judgment:        cfg.WorthinessJudgment,
	}, src, flt, client, sinks, a.ledger, logger)

	return a, nil
}

func (a *App) Close() error {
	var firstErr error

	if a.sinks != nil {
		if err := a.sinks.Close(); err != nil {
			firstErr = err
		}
	}

	if a.ledger != nil {
		if err := a.ledger.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}

// RunScout performs a single pass and exits.
func (a *App) RunScout(ctx context.Context) error {
	a.purgeLedger(ctx)

	_, err := a.pipe.Run(ctx)

	return err
}

// RunServe loops scout passes at the configured interval. Failed passes are
// logged and the loop continues; only context cancellation stops it.
func (a *App) RunServe(ctx context.Context) error {
	return worker.Loop(ctx, worker.Config{
		Name:     "scout",
		Interval: a.cfg.ScoutInterval,
		Process: func(ctx context.Context) error {
			_, err := a.pipe.Run(ctx)
			return err
		},
		PeriodicTasks: []worker.PeriodicTask{
			{
				Name:     "ledger-purge",
				Interval: purgeInterval,
				Run:      a.purgeLedger,
			},
		},
		OnError: func(err error) bool {
			a.logger.Error().Err(err).Msg("scout pass failed, waiting for next interval")
			return true
		},
		Logger: a.logger,
	})
}

// StartHealthServer serves /healthz, /readyz, and /metrics.
func (a *App) StartHealthServer(ctx context.Context) error {
	return observability.NewServer(a.ledger, a.cfg.HealthPort, a.logger).Start(ctx)
}

func (a *App) buildSource() (source.Source, error) {
	switch {
	case a.opts.FixturesFile == "":
		return source.NewRedditSource(a.cfg.RedditBaseURL, a.cfg.RedditUserAgent, a.cfg.RedditRPS, a.logger), nil
	case a.opts.FixturesFile == "builtin":
		return source.NewFixtureSource(), nil
	default:
		return source.NewFixtureSourceFromFile(a.opts.FixturesFile)
	}
}

func (a *App) buildSinks(ctx context.Context) (sink.Sink, error) {
	csvSink, err := sink.NewCSV(a.cfg.CSVPath, a.logger)
	if err != nil {
		return nil, fmt.Errorf("create csv sink: %w", err)
	}

	if !a.opts.Sheets {
		return sink.NewMulti(a.logger, sink.Instrument("csv", csvSink)), nil
	}

	sheetsSink, err := sink.NewSheets(ctx,
		a.cfg.SheetsCredentialsFile,
		a.cfg.SheetsSpreadsheetID,
		a.cfg.SheetNamePrefix,
		a.logger)
	if err != nil {
		return nil, fmt.Errorf("create sheets sink: %w", err)
	}

	return sink.NewMulti(a.logger,
		sink.Instrument("csv", csvSink),
		sink.Instrument("sheets", sheetsSink),
	), nil
}

func (a *App) subreddits() []string {
	if a.opts.Subreddits == "" {
		return keywords.AllSubreddits()
	}

	parts := strings.Split(a.opts.Subreddits, ",")
	out := make([]string, 0, len(parts))

	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}

	return out
}

func (a *App) purgeLedger(ctx context.Context) {
	if a.ledger == nil {
		return
	}

	removed, err := a.ledger.Purge(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("seen ledger purge failed")
		return
	}

	if removed > 0 {
		a.logger.Info().Int64("removed", removed).Msg("purged expired seen entries")
	}
}
