package diagnostics

import (
	"sort"

	"github.com/neelu1616/flsa/internal/domain"
)

// WorkloadMetrics summarizes one team's travel and scheduling burden.
type WorkloadMetrics struct {
	TeamID             string  `json:"team_id"`
	TeamName           string  `json:"team_name"`
	TotalMatches       int     `json:"total_matches"`
	HomeMatches        int     `json:"home_matches"`
	AwayMatches        int     `json:"away_matches"`
	TotalTravelKm      float64 `json:"total_travel_km"`
	AvgTravelKm        float64 `json:"avg_travel_km"`
	MaxConsecutiveAway int     `json:"max_consecutive_away"`
	CongestionScore    float64 `json:"congestion_score"`
	AvgRestDays        float64 `json:"avg_rest_days"`
}

// AnalyzeWorkload computes travel distance, fixture congestion, and rest
// spacing for every team. Travel is counted as a round trip from the team's
// own stadium to each away venue. Results are sorted by total travel,
// heaviest first.
func (e *Engine) AnalyzeWorkload(l *domain.League) ([]WorkloadMetrics, error) {
	e.ensureLocations(l.Teams)

	var metrics []WorkloadMetrics
	for _, team := range l.Teams {
		matches := teamMatches(l, team.ID)
		m := WorkloadMetrics{
			TeamID:       team.ID,
			TeamName:     team.Name,
			TotalMatches: len(matches),
		}

		home := e.locations[team.ID]
		consecutiveAway := 0
		for _, match := range matches {
			if match.HomeTeamID == team.ID {
				m.HomeMatches++
				consecutiveAway = 0
				continue
			}
			m.AwayMatches++
			consecutiveAway++
			if consecutiveAway > m.MaxConsecutiveAway {
				m.MaxConsecutiveAway = consecutiveAway
			}
			if venue, ok := e.locations[match.HomeTeamID]; ok {
				m.TotalTravelKm += 2 * haversine(home, venue)
			}
		}
		if m.AwayMatches > 0 {
			m.AvgTravelKm = m.TotalTravelKm / float64(m.AwayMatches)
		}

		// Congestion: matches per week over the team's active span.
		if len(matches) > 1 {
			span := matches[len(matches)-1].Week - matches[0].Week + 1
			if span > 0 {
				m.CongestionScore = float64(len(matches)) / float64(span)
			}

			totalRest := 0
			for i := 1; i < len(matches); i++ {
				totalRest += (matches[i].Week - matches[i-1].Week - 1) * 7
			}
			m.AvgRestDays = float64(totalRest) / float64(len(matches)-1)
		}

		metrics = append(metrics, m)
	}

	sort.SliceStable(metrics, func(i, j int) bool {
		return metrics[i].TotalTravelKm > metrics[j].TotalTravelKm
	})

	if _, err := e.saveReport("workload", l, metrics); err != nil {
		return metrics, err
	}
	return metrics, nil
}
