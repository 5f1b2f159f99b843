package validator

import (
	"strings"
	"testing"

	"github.com/neelu1616/flsa/internal/domain"
)

func makeLeague(t *testing.T) *domain.League {
	t.Helper()
	l, err := domain.NewLeague("Test League", "2026-2027")
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"Team A", "Team B", "Team C", "Team D"} {
		if err := l.AddTeam(domain.NewTeam(name, name+" Park")); err != nil {
			t.Fatal(err)
		}
	}
	return l
}

func match(id, homeID, awayID string, week int) *domain.Match {
	return &domain.Match{
		ID:           id,
		HomeTeamID:   homeID,
		AwayTeamID:   awayID,
		HomeTeamName: strings.ToUpper(homeID[:1]) + homeID[1:],
		AwayTeamName: strings.ToUpper(awayID[:1]) + awayID[1:],
		Week:         week,
	}
}

func countKind(violations []Violation, kind string) int {
	n := 0
	for _, v := range violations {
		if v.Kind == kind {
			n++
		}
	}
	return n
}

func TestCheckCleanSchedule(t *testing.T) {
	l := makeLeague(t)
	l.Matches = []*domain.Match{
		match("m1", "team_a", "team_b", 1),
		match("m2", "team_c", "team_d", 1),
		match("m3", "team_a", "team_c", 2),
		match("m4", "team_b", "team_d", 2),
	}

	if violations := Check(l); len(violations) != 0 {
		t.Errorf("clean schedule reported %d violations: %v", len(violations), Messages(violations))
	}
}

func TestCheckDuplicateFixture(t *testing.T) {
	l := makeLeague(t)
	// The same pairing in weeks 1 and 3, reversed orientation.
	l.Matches = []*domain.Match{
		match("m1", "team_a", "team_b", 1),
		match("m2", "team_b", "team_a", 3),
	}

	violations := Check(l)
	if got := countKind(violations, KindDuplicateFixture); got != 1 {
		t.Fatalf("duplicate violations = %d, want exactly 1 (first occurrence is clean)", got)
	}

	var dup Violation
	for _, v := range violations {
		if v.Kind == KindDuplicateFixture {
			dup = v
		}
	}
	if dup.MatchID != "m2" {
		t.Errorf("violation attributed to %s, want m2", dup.MatchID)
	}
	if !strings.Contains(dup.Message, "Duplicate match") {
		t.Errorf("message = %q", dup.Message)
	}
}

func TestCheckSelfMatch(t *testing.T) {
	l := makeLeague(t)
	l.Matches = []*domain.Match{match("m1", "team_a", "team_a", 1)}

	violations := Check(l)
	if got := countKind(violations, KindSelfMatch); got != 1 {
		t.Fatalf("self-match violations = %d, want 1", got)
	}
}

func TestCheckDanglingReference(t *testing.T) {
	l := makeLeague(t)
	l.Matches = []*domain.Match{match("m1", "team_a", "ghost_fc", 1)}

	violations := Check(l)
	if got := countKind(violations, KindDanglingReference); got != 1 {
		t.Fatalf("dangling reference violations = %d, want 1", got)
	}
	msgs := Messages(violations)
	found := false
	for _, m := range msgs {
		if strings.Contains(m, "ghost_fc") {
			found = true
		}
	}
	if !found {
		t.Errorf("messages do not name the missing team: %v", msgs)
	}
}

func TestCheckWeekClash(t *testing.T) {
	l := makeLeague(t)
	l.Matches = []*domain.Match{
		match("m1", "team_a", "team_b", 1),
		match("m2", "team_a", "team_c", 1),
	}

	violations := Check(l)
	if got := countKind(violations, KindWeekClash); got != 1 {
		t.Fatalf("week clash violations = %d, want 1", got)
	}
}

func TestCheckReportsAllProblems(t *testing.T) {
	l := makeLeague(t)
	// One schedule carrying every kind of problem at once; no check may
	// short-circuit another.
	l.Matches = []*domain.Match{
		match("m1", "team_a", "team_b", 1),
		match("m2", "team_b", "team_a", 2),  // duplicate pair
		match("m3", "team_c", "team_c", 3),  // self-match
		match("m4", "team_d", "ghost_fc", 4), // dangling reference
		match("m5", "team_a", "team_c", 5),
		match("m6", "team_a", "team_d", 5), // week clash
	}

	violations := Check(l)
	for kind, want := range map[string]int{
		KindDuplicateFixture:  1,
		KindSelfMatch:         1,
		KindDanglingReference: 1,
		KindWeekClash:         1,
	} {
		if got := countKind(violations, kind); got != want {
			t.Errorf("%s violations = %d, want %d", kind, got, want)
		}
	}
}
