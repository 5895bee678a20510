package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/kaiwa-hq/reddit-scout/internal/app"
	"github.com/kaiwa-hq/reddit-scout/internal/config"
)

const (
	modeScout = "scout"
	modeServe = "serve"
)

func main() {
	mode := flag.String("mode", modeScout, "Service mode (scout, serve)")
	subreddits := flag.String("subreddits", "", "Comma-separated subreddit override")
	limit := flag.Int("limit", 0, "Max posts per run (overrides MAX_POSTS_PER_RUN)")
	analyze := flag.Bool("analyze", false, "Enable LLM scoring, judgment, and drafting")
	sheets := flag.Bool("sheets", false, "Export to Google Sheets in addition to CSV")
	mock := flag.Bool("mock", false, "Force the mock LLM client")
	fixturesFile := flag.String("fixtures-file", "", "Read posts from a JSON file instead of Reddit ('builtin' for the sample set)")
	verbose := flag.Bool("verbose", false, "Enable debug logging")

	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := cfg.Validate(*analyze, *sheets, *mock); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg.AppEnv, *verbose)

	// Reject bad modes before any collaborator is built.
	if *mode != modeScout && *mode != modeServe {
		logger.Fatal().Str("mode", *mode).Msgf("unknown mode, usage: %s --mode=[scout|serve]", os.Args[0])
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, app.Options{
		Subreddits:   *subreddits,
		Limit:        *limit,
		Analyze:      *analyze,
		Sheets:       *sheets,
		Mock:         *mock,
		FixturesFile: *fixturesFile,
	}, &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build application")
	}
	defer application.Close()

	if err := runMode(ctx, application, *mode, &logger); err != nil {
		if errors.Is(err, context.Canceled) {
			logger.Info().Msg("application stopped")
			return
		}

		logger.Fatal().Err(err).Msg("application error")
	}
}

func newLogger(appEnv string, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	if appEnv == "local" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
			Level(level).With().Timestamp().Logger()
	}

	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}

func runMode(ctx context.Context, application *app.App, mode string, logger *zerolog.Logger) error {
	switch mode {
	case modeScout:
		return application.RunScout(ctx)
	case modeServe:
		// Health and metrics are only served in the long-running mode.
		go func() {
			if err := application.StartHealthServer(ctx); err != nil {
				logger.Error().Err(err).Msg("health check server error")
			}
		}()

		return application.RunServe(ctx)
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}
