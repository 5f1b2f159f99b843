package diagnostics

import (
	"fmt"
	"sort"

	"github.com/neelu1616/flsa/internal/domain"
)

// Anomaly is a scheduling irregularity found in a league's match list.
type Anomaly struct {
	Type            string   `json:"type"`
	Severity        string   `json:"severity"`
	Description     string   `json:"description"`
	AffectedMatches []string `json:"affected_matches"`
}

// DetectAnomalies scans the schedule for structural irregularities:
// duplicate matches, dangling team references, self-matches, incomplete
// rounds, double bookings, missing or excessive pairings, and broken week
// numbering.
func (e *Engine) DetectAnomalies(l *domain.League) ([]Anomaly, error) {
	var anomalies []Anomaly

	// Duplicates: same unordered pair in the same week.
	type signature struct {
		pair pairIDs
		week int
	}
	seen := make(map[signature]bool)
	for _, m := range l.Matches {
		sig := signature{orderedPair(m.HomeTeamID, m.AwayTeamID), m.Week}
		if seen[sig] {
			anomalies = append(anomalies, Anomaly{
				Type:            "duplicate_match",
				Severity:        SeverityCritical,
				Description:     fmt.Sprintf("Duplicate match found in week %d: %s vs %s", m.Week, m.HomeTeamName, m.AwayTeamName),
				AffectedMatches: []string{m.ID},
			})
		}
		seen[sig] = true
	}

	// Dangling team references.
	valid := make(map[string]bool, len(l.Teams))
	for _, t := range l.Teams {
		valid[t.ID] = true
	}
	for _, m := range l.Matches {
		if !valid[m.HomeTeamID] {
			anomalies = append(anomalies, Anomaly{
				Type:            "invalid_team_reference",
				Severity:        SeverityCritical,
				Description:     fmt.Sprintf("Home team %q not found in league", m.HomeTeamID),
				AffectedMatches: []string{m.ID},
			})
		}
		if !valid[m.AwayTeamID] {
			anomalies = append(anomalies, Anomaly{
				Type:            "invalid_team_reference",
				Severity:        SeverityCritical,
				Description:     fmt.Sprintf("Away team %q not found in league", m.AwayTeamID),
				AffectedMatches: []string{m.ID},
			})
		}
	}

	// Self-matches.
	for _, m := range l.Matches {
		if m.HomeTeamID == m.AwayTeamID {
			anomalies = append(anomalies, Anomaly{
				Type:            "self_match",
				Severity:        SeverityCritical,
				Description:     "Team cannot play against itself",
				AffectedMatches: []string{m.ID},
			})
		}
	}

	// Incomplete rounds: every week should carry a full set of pairings.
	byWeek := make(map[int][]*domain.Match)
	for _, m := range l.Matches {
		byWeek[m.Week] = append(byWeek[m.Week], m)
	}
	expected := len(l.Teams) / 2
	if len(l.Teams)%2 != 0 {
		expected = len(l.Teams)/2 + 1
	}
	for week, ms := range byWeek {
		if len(ms) != expected {
			anomalies = append(anomalies, Anomaly{
				Type:            "incomplete_round",
				Severity:        SeverityWarning,
				Description:     fmt.Sprintf("Week %d has %d matches, expected %d", week, len(ms), expected),
				AffectedMatches: matchIDs(ms),
			})
		}
	}

	// Double bookings within a week.
	for week, ms := range byWeek {
		appearances := make(map[string]int)
		for _, m := range ms {
			appearances[m.HomeTeamID]++
			appearances[m.AwayTeamID]++
		}
		for teamID, count := range appearances {
			if count <= 1 {
				continue
			}
			name := teamID
			if t := l.TeamByID(teamID); t != nil {
				name = t.Name
			}
			var affected []string
			for _, m := range ms {
				if m.HomeTeamID == teamID || m.AwayTeamID == teamID {
					affected = append(affected, m.ID)
				}
			}
			anomalies = append(anomalies, Anomaly{
				Type:            "multiple_matches_per_week",
				Severity:        SeverityCritical,
				Description:     fmt.Sprintf("Team %q has %d matches in week %d", name, count, week),
				AffectedMatches: affected,
			})
		}
	}

	// Pair coverage: every pair should meet at least once and at most twice.
	counts := make(map[pairIDs][]*domain.Match)
	for _, m := range l.Matches {
		key := orderedPair(m.HomeTeamID, m.AwayTeamID)
		counts[key] = append(counts[key], m)
	}
	for i, t1 := range l.Teams {
		for _, t2 := range l.Teams[i+1:] {
			ms := counts[orderedPair(t1.ID, t2.ID)]
			switch {
			case len(ms) == 0:
				anomalies = append(anomalies, Anomaly{
					Type:        "missing_fixture",
					Severity:    SeverityWarning,
					Description: fmt.Sprintf("No fixture between %s and %s", t1.Name, t2.Name),
				})
			case len(ms) > 2:
				anomalies = append(anomalies, Anomaly{
					Type:            "excessive_fixtures",
					Severity:        SeverityWarning,
					Description:     fmt.Sprintf("More than 2 fixtures between %s and %s", t1.Name, t2.Name),
					AffectedMatches: matchIDs(ms),
				})
			}
		}
	}

	// Week numbering: weeks start at 1 with no gaps.
	if len(l.Matches) > 0 {
		minWeek, maxWeek := l.Matches[0].Week, l.Matches[0].Week
		weeks := make(map[int]bool)
		var belowOne []string
		for _, m := range l.Matches {
			weeks[m.Week] = true
			if m.Week < minWeek {
				minWeek = m.Week
			}
			if m.Week > maxWeek {
				maxWeek = m.Week
			}
			if m.Week < 1 {
				belowOne = append(belowOne, m.ID)
			}
		}
		if minWeek < 1 {
			anomalies = append(anomalies, Anomaly{
				Type:            "invalid_week_number",
				Severity:        SeverityCritical,
				Description:     fmt.Sprintf("Week numbers cannot be less than 1 (found: %d)", minWeek),
				AffectedMatches: belowOne,
			})
		}
		var missing []int
		for w := 1; w <= maxWeek; w++ {
			if !weeks[w] {
				missing = append(missing, w)
			}
		}
		if len(missing) > 0 {
			sort.Ints(missing)
			anomalies = append(anomalies, Anomaly{
				Type:        "week_sequence_gap",
				Severity:    SeverityInfo,
				Description: fmt.Sprintf("Missing weeks in sequence: %v", missing),
			})
		}
	}

	if _, err := e.saveReport("anomalies", l, anomalies); err != nil {
		return anomalies, err
	}
	return anomalies, nil
}

type pairIDs struct {
	a, b string
}

func orderedPair(a, b string) pairIDs {
	if a > b {
		a, b = b, a
	}
	return pairIDs{a, b}
}

func matchIDs(ms []*domain.Match) []string {
	ids := make([]string, 0, len(ms))
	for _, m := range ms {
		ids = append(ids, m.ID)
	}
	return ids
}
