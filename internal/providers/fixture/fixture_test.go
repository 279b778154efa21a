package fixture

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/preston-bernstein/nhl-odds-service/internal/providers"
)

func TestFetchScheduleIsDeterministic(t *testing.T) {
	p := New("America/New_York")

	games, err := p.FetchSchedule(context.Background(), "2025-01-02")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(games) != 2 {
		t.Fatalf("expected 2 games, got %d", len(games))
	}

	first := games[0]
	if first.HomeTeam != "COL" || first.AwayTeam != "DAL" || first.Date != "2025-01-02" {
		t.Fatalf("unexpected first game: %+v", first)
	}
	if first.Season != 20242025 {
		t.Fatalf("expected season 20242025, got %d", first.Season)
	}
	if first.StartTimeUTC != "2025-01-03T00:00:00Z" || first.LocalTime != "7:00 PM" {
		t.Fatalf("unexpected start %s / %s", first.StartTimeUTC, first.LocalTime)
	}

	again, _ := p.FetchSchedule(context.Background(), "2025-01-02")
	if again[0].ID != first.ID || again[1].ID != games[1].ID {
		t.Fatalf("expected stable ids")
	}
	if first.ID == games[1].ID {
		t.Fatalf("expected distinct ids per game")
	}
}

func TestFetchScheduleDefaultsToToday(t *testing.T) {
	p := New("")
	p.now = func() time.Time { return time.Date(2024, 11, 5, 15, 0, 0, 0, time.UTC) }

	games, err := p.FetchSchedule(context.Background(), "")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if games[0].Date != "2024-11-05" {
		t.Fatalf("expected today's date, got %s", games[0].Date)
	}
}

func TestStandingsAndStatsJoinOnName(t *testing.T) {
	p := New("")
	standings, err := p.FetchStandings(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rows, err := p.FetchTeamStats(context.Background(), 20242025)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	table := standings.IndexStats(rows)
	if len(table) != 4 {
		t.Fatalf("expected all 4 teams joined, got %d", len(table))
	}
	if table["MTL"].Name != "Montréal Canadiens" {
		t.Fatalf("unexpected MTL row %+v", table["MTL"])
	}
}

func TestClubScheduleIncludesCompletedMeetings(t *testing.T) {
	p := New("")
	p.now = func() time.Time { return time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC) }

	sched, err := p.FetchClubSchedule(context.Background(), "col")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	completed := 0
	for _, g := range sched {
		if g.State.IsTerminal() && g.IsBetween("COL", "DAL") {
			completed++
		}
	}
	if completed != 2 {
		t.Fatalf("expected 2 completed meetings, got %d", completed)
	}

	if _, err := p.FetchClubSchedule(context.Background(), "XXX"); err == nil {
		t.Fatal("expected error for unknown team")
	}
}

func TestSearchAndSavePct(t *testing.T) {
	p := New("")
	cands, err := p.SearchPlayers(context.Background(), "oettinger")
	if err != nil || len(cands) != 1 || cands[0].ID != 8479979 || cands[0].Position != "G" {
		t.Fatalf("unexpected candidates %+v %v", cands, err)
	}

	pct, err := p.FetchSavePct(context.Background(), cands[0].ID)
	if err != nil || pct != 0.905 {
		t.Fatalf("expected 0.905, got %v %v", pct, err)
	}
	if _, err := p.FetchSavePct(context.Background(), 1); !errors.Is(err, providers.ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}
