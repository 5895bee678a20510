package sink

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/kaiwa-hq/reddit-scout/internal/leads"
)

func sampleLead() leads.AnnotatedLead {
	capturedAt := time.Date(2026, 8, 23, 12, 0, 0, 0, time.UTC)

	scored := leads.NewScoredLead(leads.Lead{
		Post: leads.RawPost{
			ID:        "abc123",
			Subreddit: "languagelearning",
			Author:    "anxious_learner",
			Title:     "I freeze up when speaking Japanese",
			Permalink: "/r/languagelearning/comments/abc123/freeze/",
		},
		MatchedTriggers: []string{"freeze up", "in-laws"},
		Language:        "ja",
		CapturedAt:      capturedAt,
	}, 9, "Speaking Anxiety")

	return leads.AnnotatedLead{
		ScoredLead:   scored,
		Scored:       true,
		Worthy:       true,
		WorthyReason: "urgent deadline",
		PublicDraft:  "public reply",
		DMDraft:      "dm text",
	}
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}

	return rows
}

func newCSVSink(t *testing.T, path string) *CSVSink {
	t.Helper()

	logger := zerolog.Nop()

	s, err := NewCSV(path, &logger)
	if err != nil {
		t.Fatalf("new csv sink: %v", err)
	}

	return s
}

func TestCSVSinkWritesHeaderOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "leads.csv")
	s := newCSVSink(t, path)

	lead := sampleLead()

	if err := s.Write(context.Background(), []leads.AnnotatedLead{lead}); err != nil {
		t.Fatalf("first write: %v", err)
	}

	if err := s.Write(context.Background(), []leads.AnnotatedLead{lead}); err != nil {
		t.Fatalf("second write: %v", err)
	}

	rows := readCSV(t, path)

	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d rows", len(rows))
	}

	if rows[0][0] != "Captured At" || rows[0][1] != "Subreddit" {
		t.Errorf("unexpected header: %v", rows[0])
	}

	if rows[1][0] != rows[0][0] && rows[1][1] != "languagelearning" {
		t.Errorf("unexpected data row: %v", rows[1])
	}
}

func TestCSVSinkRowContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.csv")
	s := newCSVSink(t, path)

	if err := s.Write(context.Background(), []leads.AnnotatedLead{sampleLead()}); err != nil {
		t.Fatalf("write: %v", err)
	}

	rows := readCSV(t, path)
	row := rows[1]

	if len(row) != len(Headers()) {
		t.Fatalf("row width %d, header width %d", len(row), len(Headers()))
	}

	if row[1] != "languagelearning" || row[2] != "anxious_learner" {
		t.Errorf("identity columns wrong: %v", row)
	}

	if !strings.HasPrefix(row[4], "https://reddit.com/r/") {
		t.Errorf("post URL wrong: %s", row[4])
	}

	if row[6] != "freeze up, in-laws" {
		t.Errorf("triggers column wrong: %s", row[6])
	}

	if row[8] != "9" || row[9] != "HIGH" {
		t.Errorf("score columns wrong: %v", row)
	}

	if row[11] != "true" || row[12] != "urgent deadline" {
		t.Errorf("worthiness columns wrong: %v", row)
	}
}

func TestCSVSinkEmptyBatchWritesNothing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.csv")
	s := newCSVSink(t, path)

	if err := s.Write(context.Background(), nil); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("empty batch should not create the file")
	}
}

func TestRowUnscoredLeavesScoreEmpty(t *testing.T) {
	lead := sampleLead()
	lead.Scored = false

	row := Row(lead)

	if row[8] != "" || row[9] != "" {
		t.Errorf("unscored lead should leave score columns empty: %v", row)
	}
}

func TestRowTruncatesLongTitles(t *testing.T) {
	lead := sampleLead()
	lead.Post.Title = strings.Repeat("a", 150)

	row := Row(lead)

	if len([]rune(row[3])) != maxTitleLength+3 {
		t.Errorf("title not truncated: %d runes", len([]rune(row[3])))
	}

	if !strings.HasSuffix(row[3], "...") {
		t.Errorf("truncated title missing ellipsis: %s", row[3])
	}
}
