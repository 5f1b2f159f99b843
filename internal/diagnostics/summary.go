package diagnostics

import (
	"fmt"

	"github.com/neelu1616/flsa/internal/domain"
)

// SeasonSummary aggregates the league's headline numbers and highlights.
type SeasonSummary struct {
	LeagueName    string            `json:"league_name"`
	Season        string            `json:"season"`
	TotalMatches  int               `json:"total_matches"`
	PlayedMatches int               `json:"played_matches"`
	TotalGoals    int               `json:"total_goals"`
	AvgGoals      float64           `json:"avg_goals_per_match"`
	HomeWins      int               `json:"home_wins"`
	AwayWins      int               `json:"away_wins"`
	Draws         int               `json:"draws"`
	Highlights    map[string]string `json:"highlights"`
	TopTeams      []string          `json:"top_teams"`
}

// Summarize builds the season summary: goal totals, result splits, and a set
// of highlight callouts (top scorers, best defense, biggest win, and so on).
func (e *Engine) Summarize(l *domain.League, rankings []*domain.Team) (*SeasonSummary, error) {
	s := &SeasonSummary{
		LeagueName:   l.Name,
		Season:       l.Season,
		TotalMatches: len(l.Matches),
		Highlights:   make(map[string]string),
	}

	var biggestMargin int
	var biggestWin, highestScoring *domain.Match
	var mostTotalGoals int

	for _, m := range l.Matches {
		if !m.IsPlayed() {
			continue
		}
		s.PlayedMatches++
		h, a := *m.HomeScore, *m.AwayScore
		s.TotalGoals += h + a

		switch {
		case h > a:
			s.HomeWins++
		case h < a:
			s.AwayWins++
		default:
			s.Draws++
		}

		if margin := abs(h - a); margin > biggestMargin {
			biggestMargin = margin
			biggestWin = m
		}
		if h+a > mostTotalGoals {
			mostTotalGoals = h + a
			highestScoring = m
		}
	}
	if s.PlayedMatches > 0 {
		s.AvgGoals = float64(s.TotalGoals) / float64(s.PlayedMatches)
	}

	if top := pickTeam(l.Teams, func(a, b *domain.Team) bool { return a.GoalsFor > b.GoalsFor }); top != nil && top.GoalsFor > 0 {
		s.Highlights["top_scoring"] = fmt.Sprintf("%s (%d goals)", top.Name, top.GoalsFor)
	}
	if best := pickTeam(playedOnly(l.Teams), func(a, b *domain.Team) bool { return a.GoalsAgainst < b.GoalsAgainst }); best != nil {
		s.Highlights["best_defense"] = fmt.Sprintf("%s (%d conceded)", best.Name, best.GoalsAgainst)
	}
	if winner := pickTeam(l.Teams, func(a, b *domain.Team) bool { return a.Won > b.Won }); winner != nil && winner.Won > 0 {
		s.Highlights["most_wins"] = fmt.Sprintf("%s (%d wins)", winner.Name, winner.Won)
	}
	if biggestWin != nil && biggestMargin > 0 {
		s.Highlights["biggest_win"] = fmt.Sprintf("%s %d-%d %s (week %d)",
			biggestWin.HomeTeamName, *biggestWin.HomeScore, *biggestWin.AwayScore, biggestWin.AwayTeamName, biggestWin.Week)
	}
	if cs, count := mostCleanSheets(l); cs != nil && count > 0 {
		s.Highlights["most_clean_sheets"] = fmt.Sprintf("%s (%d clean sheets)", cs.Name, count)
	}
	if highestScoring != nil {
		s.Highlights["highest_scoring_match"] = fmt.Sprintf("%s %d-%d %s (%d goals)",
			highestScoring.HomeTeamName, *highestScoring.HomeScore, *highestScoring.AwayScore,
			highestScoring.AwayTeamName, mostTotalGoals)
	}

	for i, t := range rankings {
		if i == 5 {
			break
		}
		s.TopTeams = append(s.TopTeams, fmt.Sprintf("%d. %s (%d pts)", i+1, t.Name, t.Points))
	}

	if _, err := e.saveReport("summary", l, s); err != nil {
		return s, err
	}
	return s, nil
}

// pickTeam returns the best team under the comparison, or nil for an empty
// slice. Ties keep the earlier team.
func pickTeam(teams []*domain.Team, better func(a, b *domain.Team) bool) *domain.Team {
	var best *domain.Team
	for _, t := range teams {
		if best == nil || better(t, best) {
			best = t
		}
	}
	return best
}

func playedOnly(teams []*domain.Team) []*domain.Team {
	var out []*domain.Team
	for _, t := range teams {
		if t.Played > 0 {
			out = append(out, t)
		}
	}
	return out
}

// mostCleanSheets counts matches where each team conceded nothing and returns
// the leader.
func mostCleanSheets(l *domain.League) (*domain.Team, int) {
	counts := make(map[string]int)
	for _, m := range l.Matches {
		if !m.IsPlayed() {
			continue
		}
		if *m.AwayScore == 0 {
			counts[m.HomeTeamID]++
		}
		if *m.HomeScore == 0 {
			counts[m.AwayTeamID]++
		}
	}

	var best *domain.Team
	bestCount := 0
	for _, t := range l.Teams {
		if counts[t.ID] > bestCount {
			best = t
			bestCount = counts[t.ID]
		}
	}
	return best, bestCount
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
