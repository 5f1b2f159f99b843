package diagnostics

import (
	"sort"

	"github.com/neelu1616/flsa/internal/domain"
)

// TrendPrediction projects a team's trajectory from its played matches.
type TrendPrediction struct {
	TeamID             string  `json:"team_id"`
	TeamName           string  `json:"team_name"`
	MatchesPlayed      int     `json:"matches_played"`
	FormRating         float64 `json:"form_rating"` // share of available points taken
	FormLabel          string  `json:"form_label"`
	Momentum           float64 `json:"momentum"` // late-season PPG minus early-season PPG
	Trend              string  `json:"trend"`
	WinProbability     float64 `json:"win_probability"`
	ExpectedPointsNext float64 `json:"expected_points_next_5"`
}

// PredictTrends rates every team's form from moving averages over its played
// matches and projects points over the next five fixtures. Teams are sorted
// by form rating, best first.
func (e *Engine) PredictTrends(l *domain.League) ([]TrendPrediction, error) {
	var predictions []TrendPrediction

	for _, team := range l.Teams {
		points := pointsPerMatch(l, team.ID)
		p := TrendPrediction{
			TeamID:        team.ID,
			TeamName:      team.Name,
			MatchesPlayed: len(points),
		}

		if len(points) == 0 {
			p.FormLabel = "unknown"
			p.Trend = "stable"
			p.WinProbability = 0.5
			predictions = append(predictions, p)
			continue
		}

		window := points
		if len(window) > e.guidelines.TrendWindow {
			window = window[len(window)-e.guidelines.TrendWindow:]
		}
		p.FormRating = average(window) / 3.0
		switch {
		case p.FormRating >= 0.7:
			p.FormLabel = "excellent"
		case p.FormRating >= 0.5:
			p.FormLabel = "good"
		case p.FormRating >= 0.3:
			p.FormLabel = "average"
		default:
			p.FormLabel = "poor"
		}

		// Momentum: points per game in the later half against the earlier half.
		if len(points) >= 2 {
			mid := len(points) / 2
			p.Momentum = average(points[mid:]) - average(points[:mid])
		}
		switch {
		case p.Momentum > 0.5:
			p.Trend = "improving"
		case p.Momentum < -0.5:
			p.Trend = "declining"
		default:
			p.Trend = "stable"
		}

		p.WinProbability = clamp(p.FormRating+p.Momentum/10, 0.1, 0.9)
		p.ExpectedPointsNext = average(window) * 5

		predictions = append(predictions, p)
	}

	sort.SliceStable(predictions, func(i, j int) bool {
		return predictions[i].FormRating > predictions[j].FormRating
	})

	if _, err := e.saveReport("trends", l, predictions); err != nil {
		return predictions, err
	}
	return predictions, nil
}

// pointsPerMatch returns the points the team took from each of its played
// matches, in schedule order.
func pointsPerMatch(l *domain.League, teamID string) []float64 {
	var points []float64
	for _, m := range teamMatches(l, teamID) {
		if !m.IsPlayed() {
			continue
		}
		ours, theirs := *m.HomeScore, *m.AwayScore
		if m.AwayTeamID == teamID {
			ours, theirs = theirs, ours
		}
		switch {
		case ours > theirs:
			points = append(points, 3)
		case ours == theirs:
			points = append(points, 1)
		default:
			points = append(points, 0)
		}
	}
	return points
}

func average(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
