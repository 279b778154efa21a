package players

import "testing"

func TestGoalieAssignmentMatches(t *testing.T) {
	byID := GoalieAssignment{GameID: 2025020101}
	if !byID.Matches(2025020101, "COL", "DAL") {
		t.Fatal("expected id match")
	}
	if byID.Matches(2025020102, "COL", "DAL") {
		t.Fatal("expected different id to miss")
	}

	byTeams := GoalieAssignment{HomeAbbrev: "COL", AwayAbbrev: "DAL"}
	if !byTeams.Matches(1, "COL", "DAL") {
		t.Fatal("expected team pair match")
	}
	if byTeams.Matches(1, "DAL", "COL") {
		t.Fatal("expected reversed pair to miss")
	}
	lower := GoalieAssignment{HomeAbbrev: "col", AwayAbbrev: " dal "}
	if !lower.Matches(1, "COL", "DAL") {
		t.Fatal("expected team codes to match regardless of case")
	}
	if (GoalieAssignment{}).Matches(0, "", "") {
		t.Fatal("expected empty assignment to match nothing")
	}
}

func TestInjurySeverity(t *testing.T) {
	if got := (InjuryReport{IsTopScorer: true}).Severity(); got != SeverityTopScore {
		t.Fatalf("expected %v, got %v", SeverityTopScore, got)
	}
	if got := (InjuryReport{}).Severity(); got != SeverityNotable {
		t.Fatalf("expected %v, got %v", SeverityNotable, got)
	}
}

func TestSameTeam(t *testing.T) {
	if !SameTeam("col", "COL") || !SameTeam(" Col", "COL ") {
		t.Fatal("expected case-insensitive match")
	}
	if SameTeam("COL", "DAL") {
		t.Fatal("expected different teams to differ")
	}
}
