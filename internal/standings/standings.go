package standings

import (
	"fmt"
	"sort"
	"strings"

	"github.com/neelu1616/flsa/internal/domain"
)

// Manager records results against a league's matches and derives the ranked
// table from team statistics. It is the only component that mutates team
// stats.
type Manager struct {
	league *domain.League
}

// NewManager returns a standings manager bound to the given league.
func NewManager(league *domain.League) *Manager {
	return &Manager{league: league}
}

// RecordResult records a final score for the identified match and folds it
// into both teams' statistics. Each match transitions unplayed -> played at
// most once; negative scores and re-recording are rejected with no mutation.
func (m *Manager) RecordResult(matchID string, homeScore, awayScore int) (*domain.Match, error) {
	match := m.league.MatchByID(matchID)
	if match == nil {
		return nil, fmt.Errorf("match %q not found", matchID)
	}
	if match.IsPlayed() {
		return nil, fmt.Errorf("match already played (score: %d-%d)", *match.HomeScore, *match.AwayScore)
	}
	if homeScore < 0 || awayScore < 0 {
		return nil, fmt.Errorf("scores cannot be negative")
	}

	home := m.league.TeamByID(match.HomeTeamID)
	away := m.league.TeamByID(match.AwayTeamID)
	if home == nil || away == nil {
		return nil, fmt.Errorf("team not found in league")
	}

	if err := match.RecordResult(homeScore, awayScore); err != nil {
		return nil, err
	}
	UpdateFromMatch(match, home, away)

	return match, nil
}

// UpdateFromMatch folds one played match into both teams' statistics:
// 3 points to the winner, 1 each on a draw. It is a no-op for matches
// without a complete result.
func UpdateFromMatch(match *domain.Match, home, away *domain.Team) {
	if !match.IsPlayed() {
		return
	}

	homeScore, awayScore := *match.HomeScore, *match.AwayScore

	home.Played++
	away.Played++

	home.GoalsFor += homeScore
	home.GoalsAgainst += awayScore
	away.GoalsFor += awayScore
	away.GoalsAgainst += homeScore

	switch {
	case homeScore > awayScore:
		home.Won++
		home.Points += 3
		away.Lost++
	case homeScore < awayScore:
		away.Won++
		away.Points += 3
		home.Lost++
	default:
		home.Drawn++
		away.Drawn++
		home.Points++
		away.Points++
	}
}

// Rankings returns the teams in table order: points descending, goal
// difference descending, goals scored descending, then name ascending
// (case-insensitive). The sort is stable, so teams tied on all four keys
// keep the league's insertion order.
func (m *Manager) Rankings() []*domain.Team {
	ranked := make([]*domain.Team, len(m.league.Teams))
	copy(ranked, m.league.Teams)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference() != b.GoalDifference() {
			return a.GoalDifference() > b.GoalDifference()
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})

	return ranked
}

// Row is one line of the rendered league table.
type Row struct {
	Position       int    `json:"position"`
	Team           string `json:"team"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
}

// TableData returns the ranked table with 1-based consecutive positions.
func (m *Manager) TableData() []Row {
	rankings := m.Rankings()
	rows := make([]Row, 0, len(rankings))
	for i, t := range rankings {
		rows = append(rows, Row{
			Position:       i + 1,
			Team:           t.Name,
			Played:         t.Played,
			Won:            t.Won,
			Drawn:          t.Drawn,
			Lost:           t.Lost,
			GoalsFor:       t.GoalsFor,
			GoalsAgainst:   t.GoalsAgainst,
			GoalDifference: t.GoalDifference(),
			Points:         t.Points,
		})
	}
	return rows
}

// Render formats the table for terminal display.
func (m *Manager) Render() string {
	rows := m.TableData()
	if len(rows) == 0 {
		return "League table is empty"
	}

	var b strings.Builder
	line := strings.Repeat("=", 90)
	fmt.Fprintln(&b, line)
	fmt.Fprintf(&b, "LEAGUE TABLE - %s\n", m.league.Name)
	fmt.Fprintln(&b, line)
	fmt.Fprintf(&b, "%-4s %-25s %-3s %-3s %-3s %-3s %-4s %-4s %-5s %-4s\n",
		"Pos", "Team", "P", "W", "D", "L", "GF", "GA", "GD", "Pts")
	fmt.Fprintln(&b, strings.Repeat("-", 90))
	for _, r := range rows {
		fmt.Fprintf(&b, "%-4d %-25s %-3d %-3d %-3d %-3d %-4d %-4d %+-5d %-4d\n",
			r.Position, r.Team, r.Played, r.Won, r.Drawn, r.Lost,
			r.GoalsFor, r.GoalsAgainst, r.GoalDifference, r.Points)
	}
	b.WriteString(line)
	return b.String()
}

// Form summarizes a team's recent results.
type Form struct {
	Team          string  `json:"team"`
	Played        int     `json:"played"`
	Won           int     `json:"won"`
	Drawn         int     `json:"drawn"`
	Lost          int     `json:"lost"`
	Form          string  `json:"form"` // most recent last, e.g. "WDLWW"
	WinPercentage float64 `json:"win_percentage"`
}

// TeamForm returns a team's last five results in schedule order, resolved by
// name first and id second.
func (m *Manager) TeamForm(identifier string) (*Form, error) {
	team := m.league.ResolveTeam(identifier)
	if team == nil {
		return nil, fmt.Errorf("team %q not found", identifier)
	}

	var letters []byte
	for _, match := range m.league.Matches {
		if !match.IsPlayed() {
			continue
		}

		var ours, theirs int
		switch team.ID {
		case match.HomeTeamID:
			ours, theirs = *match.HomeScore, *match.AwayScore
		case match.AwayTeamID:
			ours, theirs = *match.AwayScore, *match.HomeScore
		default:
			continue
		}

		switch {
		case ours > theirs:
			letters = append(letters, 'W')
		case ours < theirs:
			letters = append(letters, 'L')
		default:
			letters = append(letters, 'D')
		}
	}

	if len(letters) > 5 {
		letters = letters[len(letters)-5:]
	}

	winPct := 0.0
	if team.Played > 0 {
		winPct = float64(team.Won) / float64(team.Played) * 100
	}

	return &Form{
		Team:          team.Name,
		Played:        team.Played,
		Won:           team.Won,
		Drawn:         team.Drawn,
		Lost:          team.Lost,
		Form:          string(letters),
		WinPercentage: winPct,
	}, nil
}
