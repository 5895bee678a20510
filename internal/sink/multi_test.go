package sink

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kaiwa-hq/reddit-scout/internal/leads"
)

type recordingSink struct {
	batches [][]leads.AnnotatedLead
	err     error
	closed  bool
}

func (r *recordingSink) Write(_ context.Context, batch []leads.AnnotatedLead) error {
	r.batches = append(r.batches, batch)
	return r.err
}

func (r *recordingSink) Close() error {
	r.closed = true
	return r.err
}

func newMulti(sinks ...Sink) *Multi {
	logger := zerolog.Nop()
	return NewMulti(&logger, sinks...)
}

func TestMultiDeliversToAllSinks(t *testing.T) {
	a := &recordingSink{}
	b := &recordingSink{}

	m := newMulti(a, b)

	batch := []leads.AnnotatedLead{sampleLead()}
	if err := m.Write(context.Background(), batch); err != nil {
		t.Fatalf("write: %v", err)
	}

	if len(a.batches) != 1 || len(b.batches) != 1 {
		t.Errorf("not all sinks received the batch: %d, %d", len(a.batches), len(b.batches))
	}
}

func TestMultiPartialFailureSucceeds(t *testing.T) {
	failing := &recordingSink{err: errors.New("sheet quota exceeded")}
	healthy := &recordingSink{}

	m := newMulti(failing, healthy)

	err := m.Write(context.Background(), []leads.AnnotatedLead{sampleLead()})
	if err != nil {
		t.Fatalf("partial failure must not surface as a write error: %v", err)
	}

	if len(healthy.batches) != 1 {
		t.Error("healthy sink missed the batch after sibling failure")
	}
}

func TestMultiTotalFailureReturnsError(t *testing.T) {
	a := &recordingSink{err: errors.New("disk full")}
	b := &recordingSink{err: errors.New("sheet quota exceeded")}

	m := newMulti(a, b)

	err := m.Write(context.Background(), []leads.AnnotatedLead{sampleLead()})
	if err == nil {
		t.Fatal("expected error when every sink failed")
	}

	if !errors.Is(err, a.err) || !errors.Is(err, b.err) {
		t.Errorf("joined error missing sink causes: %v", err)
	}
}

func TestMultiCloseClosesAll(t *testing.T) {
	a := &recordingSink{}
	b := &recordingSink{err: errors.New("close failed")}

	m := newMulti(a, b)

	if err := m.Close(); err == nil {
		t.Error("expected close error to propagate")
	}

	if !a.closed || !b.closed {
		t.Error("not all sinks were closed")
	}
}
