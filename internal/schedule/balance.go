package schedule

import "github.com/neelu1616/flsa/internal/config"

// BalanceHomeAway re-orients pairs to cap long consecutive home or away runs
// per team. The pairings themselves are untouched: no pair is added, removed
// or moved between rounds, only its home/away orientation may flip.
//
// A pair is swapped when the scheduled home team's home streak has reached
// the threshold and either the away team's away streak has also reached its
// threshold, or the away team has no current home streak at all. The first
// round is always taken as-is.
//
// This is a greedy heuristic: it bounds runaway streaks but does not
// guarantee perfect alternation.
func BalanceHomeAway(rounds [][]Pair, rules config.Rules) [][]Pair {
	if len(rounds) == 0 {
		return rounds
	}

	homeStreak := make(map[string]int)
	awayStreak := make(map[string]int)

	balanced := make([][]Pair, 0, len(rounds))
	for roundIdx, round := range rounds {
		out := make([]Pair, 0, len(round))
		for _, p := range round {
			home, away := p.Home, p.Away

			swap := false
			if homeStreak[home.ID] >= rules.HomeStreakSwapThreshold {
				if awayStreak[away.ID] >= rules.AwayStreakSwapThreshold {
					swap = true
				} else if homeStreak[away.ID] == 0 {
					swap = true
				}
			}

			if swap && roundIdx > 0 {
				home, away = away, home
			}

			out = append(out, Pair{Home: home, Away: away})

			homeStreak[home.ID]++
			awayStreak[home.ID] = 0
			awayStreak[away.ID]++
			homeStreak[away.ID] = 0
		}
		balanced = append(balanced, out)
	}

	return balanced
}
