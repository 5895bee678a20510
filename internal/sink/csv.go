package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/kaiwa-hq/reddit-scout/internal/leads"
)

// CSVSink appends leads to a local CSV file, writing the header row only
// when the file is new or empty.
type CSVSink struct {
	path   string
	logger *zerolog.Logger
	mu     sync.Mutex
}

func NewCSV(path string, logger *zerolog.Logger) (*CSVSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create csv directory: %w", err)
		}
	}

	return &CSVSink{path: path, logger: logger}, nil
}

func (s *CSVSink) Write(ctx context.Context, batch []leads.AnnotatedLead) error {
	if len(batch) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat csv: %w", err)
	}

	w := csv.NewWriter(f)

	if info.Size() == 0 {
		if err := w.Write(Headers()); err != nil {
			return fmt.Errorf("write csv header: %w", err)
		}
	}

	for _, lead := range batch {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := w.Write(Row(lead)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	s.logger.Info().Int("rows", len(batch)).Str("path", s.path).Msg("appended leads to csv")

	return nil
}

func (s *CSVSink) Close() error {
	return nil
}
