package sink

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/kaiwa-hq/reddit-scout/internal/leads"
)

// SheetsSink appends leads to a Google spreadsheet, one tab per day. The tab
// is created on first write and the header row added with it.
type SheetsSink struct {
	svc           *sheets.Service
	spreadsheetID string
	namePrefix    string
	logger        *zerolog.Logger

	// Tabs confirmed to exist, keyed by title. Runs are single-threaded so
	// no locking is needed here.
	known map[string]bool
}

func NewSheets(ctx context.Context, credentialsFile, spreadsheetID, namePrefix string, logger *zerolog.Logger) (*SheetsSink, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &SheetsSink{
		svc:           svc,
		spreadsheetID: spreadsheetID,
		namePrefix:    namePrefix,
		logger:        logger,
		known:         make(map[string]bool),
	}, nil
}

func (s *SheetsSink) Write(ctx context.Context, batch []leads.AnnotatedLead) error {
	if len(batch) == 0 {
		return nil
	}

	title := s.sheetTitle(time.Now().UTC())

	if err := s.ensureSheet(ctx, title); err != nil {
		return err
	}

	values := make([][]interface{}, 0, len(batch))
	for _, lead := range batch {
		row := Row(lead)
		cells := make([]interface{}, len(row))
		for i, col := range row {
			cells[i] = col
		}
		values = append(values, cells)
	}

	_, err := s.svc.Spreadsheets.Values.Append(s.spreadsheetID, title+"!A1", &sheets.ValueRange{
		Values: values,
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append rows to sheet %q: %w", title, err)
	}

	s.logger.Info().Int("rows", len(batch)).Str("sheet", title).Msg("appended leads to spreadsheet")

	return nil
}

func (s *SheetsSink) Close() error {
	return nil
}

func (s *SheetsSink) sheetTitle(now time.Time) string {
	return s.namePrefix + now.Format("2006-01-02")
}

// ensureSheet creates the daily tab and its header row if missing. A
// concurrent creator losing the race is fine: the API's duplicate-name error
// is treated as success.
func (s *SheetsSink) ensureSheet(ctx context.Context, title string) error {
	if s.known[title] {
		return nil
	}

	_, err := s.svc.Spreadsheets.BatchUpdate(s.spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: title},
				},
			},
		},
	}).Context(ctx).Do()

	switch {
	case err == nil:
		header := make([]interface{}, len(Headers()))
		for i, h := range Headers() {
			header[i] = h
		}

		_, err = s.svc.Spreadsheets.Values.Append(s.spreadsheetID, title+"!A1", &sheets.ValueRange{
			Values: [][]interface{}{header},
		}).ValueInputOption("RAW").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("write header to sheet %q: %w", title, err)
		}

		s.logger.Info().Str("sheet", title).Msg("created daily sheet")
	case strings.Contains(err.Error(), "already exists"):
		// Tab exists from an earlier run.
	default:
		return fmt.Errorf("create sheet %q: %w", title, err)
	}

	s.known[title] = true

	return nil
}
