package timeutil

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-01-02")
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if got := FormatDate(parsed); got != "2024-01-02" {
		t.Fatalf("expected formatted date to round-trip, got %s", got)
	}
}

func TestFormatDateUsesLocation(t *testing.T) {
	loc := time.FixedZone("test", -5*60*60)
	value := time.Date(2024, 1, 2, 23, 0, 0, 0, loc)
	if got := FormatDate(value); got != "2024-01-02" {
		t.Fatalf("expected formatted date, got %s", got)
	}
}

func TestTomorrowUsesLocation(t *testing.T) {
	ny := time.FixedZone("ny", -5*60*60)
	now := time.Date(2025, 1, 2, 3, 0, 0, 0, time.UTC) // still Jan 1 in ny
	if got := Tomorrow(now, ny); got != "2025-01-02" {
		t.Fatalf("expected 2025-01-02, got %s", got)
	}
	if got := Tomorrow(now, nil); got != "2025-01-03" {
		t.Fatalf("expected 2025-01-03 in UTC, got %s", got)
	}
}

func TestAddDays(t *testing.T) {
	got, err := AddDays("2025-02-28", 1)
	if err != nil || got != "2025-03-01" {
		t.Fatalf("expected 2025-03-01, got %s (%v)", got, err)
	}
	if _, err := AddDays("nope", 1); err == nil {
		t.Fatal("expected error for invalid date")
	}
}

func TestSeasonID(t *testing.T) {
	cases := []struct {
		day  time.Time
		want int
	}{
		{time.Date(2026, 2, 25, 0, 0, 0, 0, time.UTC), 20252026},
		{time.Date(2025, 10, 8, 0, 0, 0, 0, time.UTC), 20252026},
		{time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), 20242025},
		{time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), 20252026},
	}
	for _, tc := range cases {
		if got := SeasonID(tc.day); got != tc.want {
			t.Fatalf("SeasonID(%s) = %d, want %d", tc.day.Format(DateLayout), got, tc.want)
		}
	}
}

func TestLocalLabel(t *testing.T) {
	ny := time.FixedZone("ny", -5*60*60)
	if got := LocalLabel("2026-02-25T00:30:00Z", ny); got != "7:30 PM" {
		t.Fatalf("expected 7:30 PM, got %s", got)
	}
	if got := LocalLabel("", ny); got != "TBD" {
		t.Fatalf("expected TBD for missing start, got %s", got)
	}
	if got := LocalLabel("garbage", ny); got != "TBD" {
		t.Fatalf("expected TBD for unparseable start, got %s", got)
	}
}

func TestLoadLocationFallsBackToUTC(t *testing.T) {
	if loc := LoadLocation("Not/AZone"); loc != time.UTC {
		t.Fatalf("expected UTC fallback, got %v", loc)
	}
}
