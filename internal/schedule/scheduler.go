package schedule

import (
	"fmt"
	"sort"
	"time"

	"github.com/neelu1616/flsa/internal/config"
	"github.com/neelu1616/flsa/internal/domain"
	"github.com/neelu1616/flsa/internal/standings"
)

// Scheduler generates and maintains the fixture list of a single league.
type Scheduler struct {
	league *domain.League
	rules  config.Rules
}

// NewScheduler returns a scheduler bound to the given league.
func NewScheduler(league *domain.League, rules config.Rules) *Scheduler {
	return &Scheduler{league: league, rules: rules}
}

// GenerateResult summarizes a fixture generation run.
type GenerateResult struct {
	Matches  int
	Weeks    int
	Restored int // results carried over by RegenerateFixtures
}

// MatchID derives the deterministic fixture id for a week and pairing.
func MatchID(week int, homeID, awayID string) string {
	return fmt.Sprintf("w%d_%s_vs_%s", week, homeID, awayID)
}

// GenerateFixtures builds the full round-robin schedule: pairings from the
// circle method, orientation from the balancer, then one match per pair with
// sequential week numbers and weekly dates from start. A zero start defaults
// to the current day. The league's entire match list is replaced and the
// roster is frozen.
func (s *Scheduler) GenerateFixtures(start time.Time) (*GenerateResult, error) {
	if err := s.league.ValidateForScheduling(); err != nil {
		return nil, err
	}

	rounds := GenerateRoundRobinPairs(s.league.Teams)
	balanced := BalanceHomeAway(rounds, s.rules)

	if start.IsZero() {
		start = time.Now()
	}

	var matches []*domain.Match
	for i, round := range balanced {
		week := i + 1
		date := start.AddDate(0, 0, 7*(week-1))
		for _, p := range round {
			matches = append(matches, &domain.Match{
				ID:            MatchID(week, p.Home.ID, p.Away.ID),
				HomeTeamID:    p.Home.ID,
				AwayTeamID:    p.Away.ID,
				HomeTeamName:  p.Home.Name,
				AwayTeamName:  p.Away.Name,
				Week:          week,
				ScheduledDate: date.Format("2006-01-02"),
			})
		}
	}

	s.league.Matches = matches
	s.league.FixturesGenerated = true

	return &GenerateResult{Matches: len(matches), Weeks: len(balanced)}, nil
}

type pairKey struct {
	a, b string
}

func normalizePair(a, b string) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

// RegenerateFixtures rebuilds the schedule while preserving results of
// matches already played. Played scores are snapshotted by unordered team
// pair and reapplied to the new schedule; if the home/away orientation
// flipped, the scores swap sides so each result stays attached to the team
// that earned it. Team statistics are then rebuilt by replaying the restored
// results, keeping stats equal to the sum over played matches.
//
// Regeneration runs on a deep copy of the league and commits only on
// success, so a failed run leaves the league untouched.
func (s *Scheduler) RegenerateFixtures(start time.Time) (*GenerateResult, error) {
	if err := s.league.ValidateForScheduling(); err != nil {
		return nil, fmt.Errorf("cannot regenerate fixtures: %w", err)
	}

	type savedResult struct {
		homeScore  int
		awayScore  int
		homeTeamID string
	}
	saved := make(map[pairKey]savedResult)
	for _, m := range s.league.Matches {
		if m.IsPlayed() {
			saved[normalizePair(m.HomeTeamID, m.AwayTeamID)] = savedResult{
				homeScore:  *m.HomeScore,
				awayScore:  *m.AwayScore,
				homeTeamID: m.HomeTeamID,
			}
		}
	}

	draft, err := s.league.Clone()
	if err != nil {
		return nil, err
	}

	res, err := NewScheduler(draft, s.rules).GenerateFixtures(start)
	if err != nil {
		return nil, err
	}

	for _, t := range draft.Teams {
		t.ResetStats()
	}

	restored := 0
	for _, m := range draft.Matches {
		prev, ok := saved[normalizePair(m.HomeTeamID, m.AwayTeamID)]
		if !ok {
			continue
		}

		homeScore, awayScore := prev.homeScore, prev.awayScore
		if m.HomeTeamID != prev.homeTeamID {
			homeScore, awayScore = awayScore, homeScore
		}
		if err := m.RecordResult(homeScore, awayScore); err != nil {
			return nil, fmt.Errorf("restoring result for %s: %w", m.ID, err)
		}

		standings.UpdateFromMatch(m, draft.TeamByID(m.HomeTeamID), draft.TeamByID(m.AwayTeamID))
		restored++
	}

	s.league.Teams = draft.Teams
	s.league.Matches = draft.Matches
	s.league.FixturesGenerated = true

	res.Restored = restored
	return res, nil
}

// RescheduleMatch moves an unplayed match to another week after checking
// that neither team already has a fixture in that week.
func (s *Scheduler) RescheduleMatch(matchID string, newWeek int) error {
	match := s.league.MatchByID(matchID)
	if match == nil {
		return fmt.Errorf("match %q not found", matchID)
	}
	if match.Played {
		return fmt.Errorf("cannot reschedule a match that has been played")
	}
	if newWeek < 1 {
		return fmt.Errorf("week must be at least 1")
	}
	if err := s.checkWeekClash(match.HomeTeamID, match.AwayTeamID, newWeek, matchID); err != nil {
		return fmt.Errorf("clash detected: %w", err)
	}
	match.Week = newWeek
	return nil
}

// checkWeekClash reports an error when either team already appears in the
// given week, ignoring the match identified by excludeID.
func (s *Scheduler) checkWeekClash(team1ID, team2ID string, week int, excludeID string) error {
	for _, m := range s.league.Matches {
		if m.ID == excludeID || m.Week != week {
			continue
		}
		if m.HomeTeamID == team1ID || m.AwayTeamID == team1ID {
			return fmt.Errorf("team %s already has a match in week %d", team1ID, week)
		}
		if m.HomeTeamID == team2ID || m.AwayTeamID == team2ID {
			return fmt.Errorf("team %s already has a match in week %d", team2ID, week)
		}
	}
	return nil
}

// AllFixtures returns the match list ordered by week, then id.
func (s *Scheduler) AllFixtures() []*domain.Match {
	out := make([]*domain.Match, len(s.league.Matches))
	copy(out, s.league.Matches)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Week != out[j].Week {
			return out[i].Week < out[j].Week
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// TeamFixtures returns the fixtures for one team, resolved by name first and
// id second, ordered by week.
func (s *Scheduler) TeamFixtures(identifier string) ([]*domain.Match, error) {
	team := s.league.ResolveTeam(identifier)
	if team == nil {
		return nil, fmt.Errorf("team %q not found", identifier)
	}

	var out []*domain.Match
	for _, m := range s.league.Matches {
		if m.HomeTeamID == team.ID || m.AwayTeamID == team.ID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Week < out[j].Week })
	return out, nil
}

// FixturesByWeek returns all fixtures scheduled in the given week.
func (s *Scheduler) FixturesByWeek(week int) []*domain.Match {
	var out []*domain.Match
	for _, m := range s.league.Matches {
		if m.Week == week {
			out = append(out, m)
		}
	}
	return out
}
