package diagnostics

import (
	"fmt"
	"sort"

	"github.com/neelu1616/flsa/internal/domain"
)

// RuleViolation is a breach of a scheduling guideline. Guidelines are softer
// than the validator's integrity checks; breaking one degrades fairness but
// does not corrupt the schedule.
type RuleViolation struct {
	Rule        string   `json:"rule"`
	Severity    string   `json:"severity"`
	TeamID      string   `json:"team_id"`
	TeamName    string   `json:"team_name"`
	Description string   `json:"description"`
	MatchIDs    []string `json:"match_ids"`
}

// CheckCompliance audits the schedule against the configured guidelines:
// minimum rest days between matches, minimum spacing before a repeat
// opponent, and the cap on consecutive matches at the same venue.
func (e *Engine) CheckCompliance(l *domain.League) ([]RuleViolation, error) {
	var violations []RuleViolation

	for _, team := range l.Teams {
		matches := teamMatches(l, team.ID)

		// Rest days between consecutive matches.
		for i := 1; i < len(matches); i++ {
			prev, cur := matches[i-1], matches[i]
			restDays := (cur.Week - prev.Week - 1) * 7
			if cur.Week > prev.Week && restDays < e.guidelines.MinRestDays {
				violations = append(violations, RuleViolation{
					Rule:        "min_rest_days",
					Severity:    SeverityWarning,
					TeamID:      team.ID,
					TeamName:    team.Name,
					Description: fmt.Sprintf("Only %d rest days between weeks %d and %d (minimum %d)", restDays, prev.Week, cur.Week, e.guidelines.MinRestDays),
					MatchIDs:    []string{prev.ID, cur.ID},
				})
			}
		}

		// Spacing before meeting the same opponent again.
		lastMet := make(map[string]*domain.Match)
		for _, m := range matches {
			opponent := m.AwayTeamID
			if m.AwayTeamID == team.ID {
				opponent = m.HomeTeamID
			}
			if prev, ok := lastMet[opponent]; ok {
				gap := m.Week - prev.Week
				if gap < e.guidelines.MinWeeksBetweenSameOpponent {
					oppName := opponent
					if t := l.TeamByID(opponent); t != nil {
						oppName = t.Name
					}
					violations = append(violations, RuleViolation{
						Rule:        "repeat_opponent_spacing",
						Severity:    SeverityInfo,
						TeamID:      team.ID,
						TeamName:    team.Name,
						Description: fmt.Sprintf("Plays %s again after %d weeks (minimum %d)", oppName, gap, e.guidelines.MinWeeksBetweenSameOpponent),
						MatchIDs:    []string{prev.ID, m.ID},
					})
				}
			}
			lastMet[opponent] = m
		}

		// Consecutive matches at the same venue.
		streak := 0
		atHome := false
		var streakIDs []string
		for _, m := range matches {
			isHome := m.HomeTeamID == team.ID
			if streak > 0 && isHome == atHome {
				streak++
				streakIDs = append(streakIDs, m.ID)
			} else {
				streak = 1
				atHome = isHome
				streakIDs = []string{m.ID}
			}
			if streak == e.guidelines.MaxConsecutiveSameVenue+1 {
				venue := "away"
				if atHome {
					venue = "home"
				}
				violations = append(violations, RuleViolation{
					Rule:        "max_consecutive_same_venue",
					Severity:    SeverityWarning,
					TeamID:      team.ID,
					TeamName:    team.Name,
					Description: fmt.Sprintf("%d consecutive %s matches (maximum %d)", streak, venue, e.guidelines.MaxConsecutiveSameVenue),
					MatchIDs:    append([]string(nil), streakIDs...),
				})
			}
		}
	}

	sort.SliceStable(violations, func(i, j int) bool {
		return severityRank(violations[i].Severity) < severityRank(violations[j].Severity)
	})

	if _, err := e.saveReport("compliance", l, violations); err != nil {
		return violations, err
	}
	return violations, nil
}

func severityRank(s string) int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityWarning:
		return 1
	default:
		return 2
	}
}
