package nhl

import (
	"encoding/json"
	"testing"
	"time"
)

func TestMapScheduleSkipsStartedStates(t *testing.T) {
	resp := scheduleResponse{GameWeek: []scheduleDay{{
		Date: "2025-01-02",
		Games: []scheduleGame{
			{ID: 1, GameState: "OFF"},
			{ID: 2, GameState: "final"},
			{ID: 3, GameState: "CRIT"},
			{ID: 4, GameState: "IN_PROGRESS"},
			{ID: 5, GameState: "FUT"},
			{ID: 6, GameState: ""},
		},
	}}}

	got := mapSchedule(resp, "2025-01-02", time.UTC)
	if len(got) != 2 || got[0].ID != 5 || got[1].ID != 6 {
		t.Fatalf("unexpected games %+v", got)
	}
}

func TestMapGameFallsBackToGameDate(t *testing.T) {
	g := mapGame(scheduleGame{ID: 9, GameDate: "2025-01-03T01:30:00Z"}, "2025-01-02", "FUT", time.UTC)
	if g.StartTimeUTC != "2025-01-03T01:30:00Z" || g.LocalTime != "1:30 AM" {
		t.Fatalf("unexpected start fields %+v", g)
	}
}

func TestScheduleGameStartTimeFallbacks(t *testing.T) {
	cases := map[string]string{
		`{"startTimeUTC":"2025-01-03T01:00:00Z","startTime":"x","gameDate":"y"}`: "2025-01-03T01:00:00Z",
		`{"startTimeUtc":"2025-01-03T02:00:00Z","gameDate":"y"}`:                  "2025-01-03T02:00:00Z",
		`{"startTime":"2025-01-03T03:00:00Z","gameDate":"y"}`:                     "2025-01-03T03:00:00Z",
		`{"gameDate":"2025-01-02"}`:                                               "2025-01-02",
		`{}`:                                                                      "",
	}
	for raw, want := range cases {
		var g scheduleGame
		if err := json.Unmarshal([]byte(raw), &g); err != nil {
			t.Fatalf("decode %s: %v", raw, err)
		}
		if got := mapGame(g, "2025-01-02", "FUT", time.UTC).StartTimeUTC; got != want {
			t.Fatalf("%s: expected start %q, got %q", raw, want, got)
		}
	}
}

func TestFlexibleIDDecodesNumbersAndStrings(t *testing.T) {
	var hits []searchHit
	data := `[{"playerId": 12}, {"playerId": "34"}, {"playerId": "abc"}, {"playerId": null}, {}]`
	if err := json.Unmarshal([]byte(data), &hits); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []flexibleID{12, 34, 0, 0, 0}
	for i, h := range hits {
		if h.PlayerID != want[i] {
			t.Fatalf("hit %d: expected %d, got %d", i, want[i], h.PlayerID)
		}
	}
}

func TestSearchResponseNull(t *testing.T) {
	var resp searchResponse
	if err := json.Unmarshal([]byte(`null`), &resp); err != nil || len(resp) != 0 {
		t.Fatalf("expected empty response, got %v %v", resp, err)
	}
}
