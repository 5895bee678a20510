package worker

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLoopStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var iterations int

	done := make(chan error, 1)
	go func() {
		done <- Loop(ctx, Config{
			Name:     "test",
			Interval: time.Millisecond,
			Process: func(ctx context.Context) error {
				iterations++
				if iterations >= 3 {
					cancel()
				}
				return nil
			},
		})
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop after cancel")
	}

	if iterations < 3 {
		t.Errorf("expected at least 3 iterations, got %d", iterations)
	}
}

func TestLoopOnErrorCanAbort(t *testing.T) {
	fatal := errors.New("fatal")

	err := Loop(context.Background(), Config{
		Name:     "test",
		Interval: time.Millisecond,
		Process: func(ctx context.Context) error {
			return fatal
		},
		OnError: func(err error) bool {
			return false
		},
	})

	if !errors.Is(err, fatal) {
		t.Errorf("expected fatal error, got %v", err)
	}
}

func TestLoopOnErrorCanContinue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var attempts int

	done := make(chan error, 1)
	go func() {
		done <- Loop(ctx, Config{
			Name:     "test",
			Interval: time.Millisecond,
			Process: func(ctx context.Context) error {
				attempts++
				if attempts >= 3 {
					cancel()
				}
				return errors.New("transient")
			},
			OnError: func(err error) bool {
				return true
			},
		})
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop")
	}

	if attempts < 3 {
		t.Errorf("expected loop to survive errors, got %d attempts", attempts)
	}
}

func TestLoopRunsPeriodicTasks(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	var taskRuns int

	done := make(chan error, 1)
	go func() {
		done <- Loop(ctx, Config{
			Name:     "test",
			Interval: time.Millisecond,
			PeriodicTasks: []PeriodicTask{
				{
					Name:     "purge",
					Interval: time.Millisecond,
					Run: func(ctx context.Context) {
						taskRuns++
						if taskRuns >= 2 {
							cancel()
						}
					},
				},
			},
		})
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop")
	}

	if taskRuns < 2 {
		t.Errorf("periodic task ran %d times", taskRuns)
	}
}

func TestWaitReturnsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := Wait(ctx, time.Minute); err == nil {
		t.Error("expected error after cancel")
	}
}

func TestWaitZeroDuration(t *testing.T) {
	if err := Wait(context.Background(), 0); err != nil {
		t.Errorf("zero wait should return immediately: %v", err)
	}
}
