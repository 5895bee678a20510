// Package worker provides the interval loop used by serve mode: run the
// scout, sleep, repeat, with periodic maintenance tasks in between.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// ProcessFunc performs one unit of work per loop iteration.
type ProcessFunc func(ctx context.Context) error

// PeriodicTask runs at its own interval, independent of the main process
// cadence. A zero interval disables the task.
type PeriodicTask struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context)
	lastRun  time.Time
}

type Config struct {
	// Name identifies the worker for logging.
	Name string

	// Interval is the pause between process iterations.
	Interval time.Duration

	// Process is called each iteration.
	Process ProcessFunc

	// PeriodicTasks run at their configured intervals before each process
	// step.
	PeriodicTasks []PeriodicTask

	// OnError is called when Process fails. Return true to keep looping,
	// false to exit with the error. Nil means log and continue.
	OnError func(err error) bool

	Logger *zerolog.Logger
}

// Loop runs the worker until the context is canceled or OnError requests an
// exit. The first iteration runs immediately.
func Loop(ctx context.Context, cfg Config) error {
	logger := cfg.Logger
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	logger.Info().Str("worker", cfg.Name).Dur("interval", cfg.Interval).Msg("starting worker loop")
	defer logger.Info().Str("worker", cfg.Name).Msg("worker loop stopped")

	tasks := make([]PeriodicTask, len(cfg.PeriodicTasks))
	copy(tasks, cfg.PeriodicTasks)

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("worker loop %s: %w", cfg.Name, ctx.Err())
		default:
		}

		runDueTasks(ctx, tasks, logger)

		if cfg.Process != nil {
			if err := cfg.Process(ctx); err != nil {
				if cfg.OnError != nil {
					if !cfg.OnError(err) {
						return err
					}
				} else {
					logger.Error().Err(err).Str("worker", cfg.Name).Msg("process error")
				}
			}
		}

		if err := Wait(ctx, cfg.Interval); err != nil {
			return err
		}
	}
}

func runDueTasks(ctx context.Context, tasks []PeriodicTask, logger *zerolog.Logger) {
	now := time.Now()

	for i := range tasks {
		task := &tasks[i]
		if task.Interval <= 0 || task.Run == nil {
			continue
		}

		if now.Sub(task.lastRun) >= task.Interval {
			logger.Debug().Str("task", task.Name).Msg("running periodic task")
			task.Run(ctx)
			task.lastRun = now
		}
	}
}

// Wait blocks until d elapses or the context is canceled.
func Wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	select {
	case <-ctx.Done():
		return fmt.Errorf("wait interrupted: %w", ctx.Err())
	case <-time.After(d):
		return nil
	}
}
