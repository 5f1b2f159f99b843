package schedule

import "github.com/neelu1616/flsa/internal/domain"

// Pair is one home/away pairing within a round.
type Pair struct {
	Home *domain.Team
	Away *domain.Team
}

// byeTeamID marks the synthetic placeholder inserted when the team count is
// odd. Pairs involving the placeholder are dropped from the round's output,
// so it never escapes this package and is never persisted.
const byeTeamID = "bye"

// GenerateRoundRobinPairs produces a pure round-robin pairing for the given
// teams using the circle method: the team in position 0 stays fixed while
// the remaining teams rotate one position per round, and position i is
// paired with position n-1-i.
//
// For N teams it returns N-1 rounds; each team appears exactly once per
// round and each unordered pair of teams appears in exactly one round.
// Home/away orientation alternates on (round+position)%2 so the raw output
// is not home-biased before the balancer runs.
//
// Fewer than 2 teams yields no rounds. An odd team count is tolerated by
// padding with a bye placeholder, which leaves one team idle per round;
// callers that require an even roster must validate before calling.
func GenerateRoundRobinPairs(teams []*domain.Team) [][]Pair {
	n := len(teams)
	if n < 2 {
		return nil
	}

	list := make([]*domain.Team, n, n+1)
	copy(list, teams)
	if n%2 != 0 {
		list = append(list, &domain.Team{ID: byeTeamID, Name: "BYE"})
		n++
	}

	rounds := make([][]Pair, 0, n-1)
	for round := 0; round < n-1; round++ {
		pairs := make([]Pair, 0, n/2)
		for i := 0; i < n/2; i++ {
			t1 := list[i]
			t2 := list[n-1-i]

			if t1.ID == byeTeamID || t2.ID == byeTeamID {
				continue
			}

			if (round+i)%2 == 0 {
				pairs = append(pairs, Pair{Home: t1, Away: t2})
			} else {
				pairs = append(pairs, Pair{Home: t2, Away: t1})
			}
		}
		rounds = append(rounds, pairs)

		// Rotate every position except the fixed first one.
		rotated := make([]*domain.Team, 0, n)
		rotated = append(rotated, list[0], list[n-1])
		rotated = append(rotated, list[1:n-1]...)
		list = rotated
	}

	return rounds
}
