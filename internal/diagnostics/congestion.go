package diagnostics

import (
	"sort"

	"github.com/neelu1616/flsa/internal/domain"
)

// CongestionZone is a stretch of a team's schedule where matches bunch up.
type CongestionZone struct {
	TeamID    string   `json:"team_id"`
	TeamName  string   `json:"team_name"`
	StartWeek int      `json:"start_week"`
	EndWeek   int      `json:"end_week"`
	Matches   int      `json:"matches"`
	Density   float64  `json:"density"` // matches per week in the window
	Severity  string   `json:"severity"`
	MatchIDs  []string `json:"match_ids"`
}

// windowSize is how many consecutive matches form one congestion window.
const windowSize = 3

// DetectCongestion slides a three-match window over each team's schedule and
// flags windows whose span is at or under the configured threshold. Zones are
// sorted by density, tightest first.
func (e *Engine) DetectCongestion(l *domain.League) ([]CongestionZone, error) {
	var zones []CongestionZone

	for _, team := range l.Teams {
		matches := teamMatches(l, team.ID)
		if len(matches) < windowSize {
			continue
		}

		for i := 0; i+windowSize <= len(matches); i++ {
			window := matches[i : i+windowSize]
			span := window[windowSize-1].Week - window[0].Week + 1
			if span > e.guidelines.CongestionThreshold {
				continue
			}

			density := float64(windowSize) / float64(span)
			severity := SeverityInfo
			switch {
			case density >= 2.0:
				severity = SeverityCritical
			case density >= 1.5:
				severity = SeverityWarning
			}

			zones = append(zones, CongestionZone{
				TeamID:    team.ID,
				TeamName:  team.Name,
				StartWeek: window[0].Week,
				EndWeek:   window[windowSize-1].Week,
				Matches:   windowSize,
				Density:   density,
				Severity:  severity,
				MatchIDs:  matchIDs(window),
			})
		}
	}

	sort.SliceStable(zones, func(i, j int) bool {
		return zones[i].Density > zones[j].Density
	})

	if _, err := e.saveReport("congestion", l, zones); err != nil {
		return zones, err
	}
	return zones, nil
}
