package teststubs

import (
	"context"
	"errors"
	"testing"

	"github.com/preston-bernstein/nhl-odds-service/internal/domain/games"
	"github.com/preston-bernstein/nhl-odds-service/internal/domain/predictions"
)

func TestStubProviderTracksCalls(t *testing.T) {
	err := errors.New("boom")
	p := &StubProvider{ScheduleErr: err}
	if _, got := p.FetchSchedule(context.Background(), "2025-01-02"); !errors.Is(got, err) {
		t.Fatalf("expected error passthrough, got %v", got)
	}
	if p.ScheduleCalls.Load() != 1 {
		t.Fatalf("expected call count 1, got %d", p.ScheduleCalls.Load())
	}
	if dates := p.ScheduleDates(); len(dates) != 1 || dates[0] != "2025-01-02" {
		t.Fatalf("unexpected dates %v", dates)
	}
}

func TestStubProviderFiltersScheduleByDate(t *testing.T) {
	p := &StubProvider{Games: []games.Game{
		{ID: 1, Date: "2025-01-02"},
		{ID: 2, Date: "2025-01-03"},
		{ID: 3},
	}}
	got, err := p.FetchSchedule(context.Background(), "2025-01-02")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 3 || got[1].Date != "2025-01-02" {
		t.Fatalf("unexpected games %+v", got)
	}
}

func TestStubProviderSavePctMissing(t *testing.T) {
	p := &StubProvider{SavePcts: map[int64]float64{1: 0.91}}
	if pct, err := p.FetchSavePct(context.Background(), 1); err != nil || pct != 0.91 {
		t.Fatalf("expected 0.91, got %v %v", pct, err)
	}
	if _, err := p.FetchSavePct(context.Background(), 2); !errors.Is(err, ErrNoSavePct) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestStubDocumentWriter(t *testing.T) {
	w := &StubDocumentWriter{}
	if _, ok := w.Last(); ok {
		t.Fatal("expected no document yet")
	}
	if _, err := w.WriteDocument(predictions.Document{RunID: "r1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	doc, ok := w.Last()
	if !ok || doc.RunID != "r1" {
		t.Fatalf("unexpected document %+v", doc)
	}

	w.Err = errors.New("disk full")
	if _, err := w.WriteDocument(predictions.Document{}); err == nil {
		t.Fatal("expected error")
	}
}
