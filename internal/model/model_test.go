package model

import (
	"math"
	"testing"
)

func neutralFeatures() Features {
	return Features{Home: NeutralSide(), Away: NeutralSide()}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPredictNeutralGameIsHomeIce(t *testing.T) {
	m := New(DefaultWeights())

	got := m.Predict(neutralFeatures())
	if !approxEqual(got, 0.52) {
		t.Fatalf("expected 0.52 for equal teams, got %v", got)
	}
}

func TestPredictBetterRecentFormRaisesProbability(t *testing.T) {
	m := New(DefaultWeights())
	base := m.Predict(neutralFeatures())

	f := neutralFeatures()
	f.Home.L10WinPct = 0.9
	f.Away.L10WinPct = 0.1

	got := m.Predict(f)
	if got <= base {
		t.Fatalf("expected %v > %v", got, base)
	}
	if !approxEqual(got, 0.60) {
		t.Fatalf("expected 0.60, got %v", got)
	}
}

func TestPredictClampsExtremeInputs(t *testing.T) {
	m := New(DefaultWeights())

	f := neutralFeatures()
	f.Home.SeasonWinPct = 10
	f.Away.SeasonWinPct = 0
	if got := m.Predict(f); got != maxProbability {
		t.Fatalf("expected clamp to %v, got %v", maxProbability, got)
	}

	f = neutralFeatures()
	f.Home.L10WinPct = -10
	f.Home.GoalDiffPerGame = -25
	if got := m.Predict(f); got != minProbability {
		t.Fatalf("expected clamp to %v, got %v", minProbability, got)
	}
}

func TestPredictOmitsGoalieTermWhenOneSideMissing(t *testing.T) {
	m := New(DefaultWeights())

	neither := neutralFeatures()
	onlyAway := neutralFeatures()
	onlyAway.Away.GoalieSavePct = Some(0.930)
	onlyHome := neutralFeatures()
	onlyHome.Home.GoalieSavePct = Some(0.880)

	want := m.Predict(neither)
	if got := m.Predict(onlyAway); got != want {
		t.Fatalf("expected goalie term omitted with home missing: %v != %v", got, want)
	}
	if got := m.Predict(onlyHome); got != want {
		t.Fatalf("expected goalie term omitted with away missing: %v != %v", got, want)
	}
	for _, term := range m.Breakdown(onlyAway) {
		if term.Name == TermGoalie {
			t.Fatal("expected no goalie term in breakdown")
		}
	}
}

func TestPredictAppliesGoalieTermWhenBothPresent(t *testing.T) {
	m := New(DefaultWeights())

	f := neutralFeatures()
	f.Home.GoalieSavePct = Some(0.920)
	f.Away.GoalieSavePct = Some(0.900)

	// 0.06 * 0.02 * 10 = 0.012
	if got := m.Predict(f); !approxEqual(got, 0.532) {
		t.Fatalf("expected 0.532, got %v", got)
	}
}

func TestPredictOmitsHeadToHeadWithoutMeetings(t *testing.T) {
	m := New(DefaultWeights())
	want := m.Predict(neutralFeatures())

	for _, pct := range []float64{0, 0.25, 1} {
		f := neutralFeatures()
		f.HeadToHead = Some(HeadToHead{HomeWinPct: pct, Games: 0})
		if got := m.Predict(f); got != want {
			t.Fatalf("expected h2h ignored with zero games (pct=%v): %v != %v", pct, got, want)
		}
	}
}

func TestPredictHeadToHeadSweep(t *testing.T) {
	m := New(DefaultWeights())

	f := neutralFeatures()
	f.HeadToHead = Some(HeadToHead{HomeWinPct: 1, Games: 3})

	// 0.08 * 0.5 * 2 = 0.08
	if got := m.Predict(f); !approxEqual(got, 0.60) {
		t.Fatalf("expected 0.60, got %v", got)
	}
}

func TestPredictShotsDifferentialIsCapped(t *testing.T) {
	m := New(Weights{Shots: 4})

	f := Features{Home: Side{ShotsPerGame: 60}, Away: Side{ShotsPerGame: 20}}
	// (60-20)/15 clamps to 1 -> 0.04 on top of the 0.5 base.
	if got := m.Predict(f); !approxEqual(got, 0.54) {
		t.Fatalf("expected capped shots term, got %v", got)
	}
}

func TestPredictInjuriesFavorHealthierTeam(t *testing.T) {
	m := New(DefaultWeights())
	base := m.Predict(neutralFeatures())

	hurtHome := neutralFeatures()
	hurtHome.Home.Injury = 1
	if got := m.Predict(hurtHome); got >= base {
		t.Fatalf("expected home injury to lower probability: %v >= %v", got, base)
	}

	hurtAway := neutralFeatures()
	hurtAway.Away.Injury = 0.5
	if got := m.Predict(hurtAway); got <= base {
		t.Fatalf("expected away injury to raise probability: %v <= %v", got, base)
	}
}

func TestPredictIsMonotonicPerFactor(t *testing.T) {
	m := New(DefaultWeights())
	base := m.Predict(neutralFeatures())

	bumps := map[string]func(*Features){
		"season":   func(f *Features) { f.Home.SeasonWinPct = 0.7 },
		"special":  func(f *Features) { f.Home.SpecialTeamsAvg = 0.6 },
		"goalDiff": func(f *Features) { f.Home.GoalDiffPerGame = 0.8 },
		"shots":    func(f *Features) { f.Home.ShotsPerGame = 34 },
		"xg":       func(f *Features) { f.Home.XGPerGame = 3.5 },
	}
	for name, bump := range bumps {
		f := neutralFeatures()
		bump(&f)
		if got := m.Predict(f); got <= base {
			t.Fatalf("%s: expected %v > %v", name, got, base)
		}
	}
}

func TestBreakdownSumsToUnclampedPrediction(t *testing.T) {
	m := New(DefaultWeights())
	f := neutralFeatures()
	f.Home.SeasonWinPct = 0.62
	f.Away.SeasonWinPct = 0.48
	f.Home.GoalieSavePct = Some(0.915)
	f.Away.GoalieSavePct = Some(0.905)
	f.HeadToHead = Some(HeadToHead{HomeWinPct: 0.5, Games: 2})

	sum := 0.0
	names := map[string]bool{}
	for _, term := range m.Breakdown(f) {
		sum += term.Value
		names[term.Name] = true
	}
	if !approxEqual(sum, m.Predict(f)) {
		t.Fatalf("expected breakdown to sum to prediction: %v vs %v", sum, m.Predict(f))
	}
	if len(names) != 10 {
		t.Fatalf("expected all 10 terms present, got %d", len(names))
	}
}

func TestPredictWithAlternateWeights(t *testing.T) {
	w := DefaultWeights()
	w.HomeIce = 5
	if got := New(w).Predict(neutralFeatures()); !approxEqual(got, 0.55) {
		t.Fatalf("expected 0.55 with home_ice=5, got %v", got)
	}
}
