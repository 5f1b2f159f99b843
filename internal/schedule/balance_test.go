package schedule

import (
	"testing"

	"github.com/neelu1616/flsa/internal/config"
)

func TestBalanceHomeAwayPreservesPairings(t *testing.T) {
	teams := makeTeams(6)
	rounds := GenerateRoundRobinPairs(teams)
	balanced := BalanceHomeAway(rounds, config.DefaultRules())

	if len(balanced) != len(rounds) {
		t.Fatalf("rounds = %d, want %d", len(balanced), len(rounds))
	}
	for r := range rounds {
		if len(balanced[r]) != len(rounds[r]) {
			t.Fatalf("round %d has %d pairs, want %d", r, len(balanced[r]), len(rounds[r]))
		}
		for i, p := range rounds[r] {
			b := balanced[r][i]
			orig := normalizePair(p.Home.ID, p.Away.ID)
			got := normalizePair(b.Home.ID, b.Away.ID)
			if orig != got {
				t.Errorf("round %d pair %d changed from %v to %v", r, i, orig, got)
			}
		}
	}
}

func TestBalanceHomeAwayFirstRoundUntouched(t *testing.T) {
	rounds := GenerateRoundRobinPairs(makeTeams(8))
	balanced := BalanceHomeAway(rounds, config.Rules{HomeStreakSwapThreshold: 1, AwayStreakSwapThreshold: 1})

	for i, p := range rounds[0] {
		b := balanced[0][i]
		if p.Home.ID != b.Home.ID || p.Away.ID != b.Away.ID {
			t.Errorf("first round pair %d re-oriented: %s vs %s became %s vs %s",
				i, p.Home.ID, p.Away.ID, b.Home.ID, b.Away.ID)
		}
	}
}

func TestBalanceHomeAwaySwapsStreaks(t *testing.T) {
	teams := makeTeams(2)
	a, b := teams[0], teams[1]

	// Three rounds with the same orientation; with thresholds of 1 the
	// balancer must flip once a's home streak builds up.
	rounds := [][]Pair{
		{{Home: a, Away: b}},
		{{Home: a, Away: b}},
		{{Home: a, Away: b}},
	}
	balanced := BalanceHomeAway(rounds, config.Rules{HomeStreakSwapThreshold: 1, AwayStreakSwapThreshold: 1})

	if balanced[0][0].Home != a {
		t.Fatal("first round must keep its orientation")
	}
	if balanced[1][0].Home != b {
		t.Errorf("second round not swapped; home = %s", balanced[1][0].Home.ID)
	}
}

func TestBalanceHomeAwayEmpty(t *testing.T) {
	if out := BalanceHomeAway(nil, config.DefaultRules()); len(out) != 0 {
		t.Errorf("balancing no rounds produced %d rounds", len(out))
	}
}
