package domain

import "fmt"

// Match represents a single fixture in the league schedule. Scores are
// pointers so an unplayed match round-trips through JSON as null rather
// than zero.
type Match struct {
	ID            string `json:"match_id"`
	HomeTeamID    string `json:"home_team_id"`
	AwayTeamID    string `json:"away_team_id"`
	HomeTeamName  string `json:"home_team_name"`
	AwayTeamName  string `json:"away_team_name"`
	Week          int    `json:"week"`
	HomeScore     *int   `json:"home_score"`
	AwayScore     *int   `json:"away_score"`
	Played        bool   `json:"played"`
	ScheduledDate string `json:"scheduled_date,omitempty"`
}

// IsPlayed reports whether the match has a complete recorded result.
func (m *Match) IsPlayed() bool {
	return m.Played && m.HomeScore != nil && m.AwayScore != nil
}

// RecordResult stores a final score. A result is immutable once recorded;
// re-recording is rejected and leaves the match unchanged.
func (m *Match) RecordResult(homeScore, awayScore int) error {
	if m.Played {
		if m.IsPlayed() {
			return fmt.Errorf("match already played (score: %d-%d)", *m.HomeScore, *m.AwayScore)
		}
		return fmt.Errorf("match %s already marked as played", m.ID)
	}
	if homeScore < 0 || awayScore < 0 {
		return fmt.Errorf("scores cannot be negative")
	}
	m.HomeScore = &homeScore
	m.AwayScore = &awayScore
	m.Played = true
	return nil
}

func (m *Match) String() string {
	if m.IsPlayed() {
		return fmt.Sprintf("Week %d: %s %d-%d %s", m.Week, m.HomeTeamName, *m.HomeScore, *m.AwayScore, m.AwayTeamName)
	}
	return fmt.Sprintf("Week %d: %s vs %s", m.Week, m.HomeTeamName, m.AwayTeamName)
}
