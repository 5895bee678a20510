package sink

import (
	"context"

	"github.com/kaiwa-hq/reddit-scout/internal/leads"
	"github.com/kaiwa-hq/reddit-scout/internal/platform/observability"
)

// Instrument wraps a sink so every write attempt is counted by name and
// outcome.
func Instrument(name string, s Sink) Sink {
	return &instrumented{name: name, next: s}
}

type instrumented struct {
	name string
	next Sink
}

func (i *instrumented) Write(ctx context.Context, batch []leads.AnnotatedLead) error {
	err := i.next.Write(ctx, batch)

	status := "ok"
	if err != nil {
		status = "error"
	}
	observability.SinkWrites.WithLabelValues(i.name, status).Inc()

	return err
}

func (i *instrumented) Close() error {
	return i.next.Close()
}
