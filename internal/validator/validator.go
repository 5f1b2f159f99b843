// Package validator checks an assembled schedule for integrity problems.
// It is a pure read-only scan: it never mutates the league and never
// attempts repair.
package validator

import (
	"fmt"

	"github.com/neelu1616/flsa/internal/domain"
)

// Violation kinds reported by Check.
const (
	KindDuplicateFixture  = "duplicate_fixture"
	KindSelfMatch         = "self_match"
	KindDanglingReference = "dangling_reference"
	KindWeekClash         = "week_clash"
)

// Violation describes one integrity problem found in a league's schedule.
type Violation struct {
	Kind    string
	MatchID string
	Message string
}

// Check runs every integrity check over the league's match list and returns
// all problems found; an empty result means the schedule is valid. Checks
// are never short-circuited.
func Check(l *domain.League) []Violation {
	var violations []Violation
	violations = append(violations, checkDuplicates(l)...)
	violations = append(violations, checkSelfMatches(l)...)
	violations = append(violations, checkTeamReferences(l)...)
	violations = append(violations, checkWeekClashes(l)...)
	return violations
}

// Messages flattens violations to their human-readable form.
func Messages(violations []Violation) []string {
	msgs := make([]string, 0, len(violations))
	for _, v := range violations {
		msgs = append(msgs, v.Message)
	}
	return msgs
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

// checkDuplicates reports every repeat of an unordered team pair across the
// whole schedule. The first occurrence of a pair is fine; each subsequent
// occurrence is one violation.
func checkDuplicates(l *domain.League) []Violation {
	seen := make(map[pairKey]bool)
	var violations []Violation
	for _, m := range l.Matches {
		key := normalizePair(m.HomeTeamID, m.AwayTeamID)
		if seen[key] {
			violations = append(violations, Violation{
				Kind:    KindDuplicateFixture,
				MatchID: m.ID,
				Message: fmt.Sprintf("Duplicate match: %s vs %s", m.HomeTeamName, m.AwayTeamName),
			})
			continue
		}
		seen[key] = true
	}
	return violations
}

func checkSelfMatches(l *domain.League) []Violation {
	var violations []Violation
	for _, m := range l.Matches {
		if m.HomeTeamID == m.AwayTeamID {
			violations = append(violations, Violation{
				Kind:    KindSelfMatch,
				MatchID: m.ID,
				Message: fmt.Sprintf("Invalid match: team playing itself in %s", m.ID),
			})
		}
	}
	return violations
}

// checkTeamReferences reports matches whose team ids are not in the league's
// current roster.
func checkTeamReferences(l *domain.League) []Violation {
	valid := make(map[string]bool, len(l.Teams))
	for _, t := range l.Teams {
		valid[t.ID] = true
	}

	var violations []Violation
	for _, m := range l.Matches {
		if !valid[m.HomeTeamID] {
			violations = append(violations, Violation{
				Kind:    KindDanglingReference,
				MatchID: m.ID,
				Message: fmt.Sprintf("Invalid home team ID in %s: %s", m.ID, m.HomeTeamID),
			})
		}
		if !valid[m.AwayTeamID] {
			violations = append(violations, Violation{
				Kind:    KindDanglingReference,
				MatchID: m.ID,
				Message: fmt.Sprintf("Invalid away team ID in %s: %s", m.ID, m.AwayTeamID),
			})
		}
	}
	return violations
}

// checkWeekClashes reports teams that appear, as home or away, more than
// once within the same week.
func checkWeekClashes(l *domain.League) []Violation {
	weekTeams := make(map[int]map[string]bool)
	var violations []Violation
	for _, m := range l.Matches {
		teams := weekTeams[m.Week]
		if teams == nil {
			teams = make(map[string]bool)
			weekTeams[m.Week] = teams
		}

		if teams[m.HomeTeamID] {
			violations = append(violations, Violation{
				Kind:    KindWeekClash,
				MatchID: m.ID,
				Message: fmt.Sprintf("Week clash: %s plays multiple times in week %d", m.HomeTeamName, m.Week),
			})
		}
		if teams[m.AwayTeamID] {
			violations = append(violations, Violation{
				Kind:    KindWeekClash,
				MatchID: m.ID,
				Message: fmt.Sprintf("Week clash: %s plays multiple times in week %d", m.AwayTeamName, m.Week),
			})
		}

		teams[m.HomeTeamID] = true
		teams[m.AwayTeamID] = true
	}
	return violations
}
