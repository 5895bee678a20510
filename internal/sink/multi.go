package sink

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/kaiwa-hq/reddit-scout/internal/leads"
)

// Multi fans a batch out to every wrapped sink. A failing sink does not
// prevent delivery to the remaining ones, and a partial failure is only
// logged: Write returns an error when every sink rejected the batch, so
// one destination going down never loses the rows the others accepted.
type Multi struct {
	sinks  []Sink
	logger *zerolog.Logger
}

func NewMulti(logger *zerolog.Logger, sinks ...Sink) *Multi {
	return &Multi{sinks: sinks, logger: logger}
}

func (m *Multi) Write(ctx context.Context, batch []leads.AnnotatedLead) error {
	var errs []error

	for _, s := range m.sinks {
		if err := s.Write(ctx, batch); err != nil {
			errs = append(errs, err)
			m.logger.Warn().Err(err).Msg("sink write failed, continuing with remaining sinks")
		}
	}

	if len(errs) > 0 && len(errs) == len(m.sinks) {
		return errors.Join(errs...)
	}

	return nil
}

func (m *Multi) Close() error {
	var errs []error

	for _, s := range m.sinks {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
