package domain

import (
	"fmt"
	"strings"
)

// Team represents a club in the league along with its cumulative statistics.
// Statistics are mutated only by the standings engine and reset on
// fixture regeneration; goal difference is always derived, never stored.
type Team struct {
	ID           string `json:"team_id"`
	Name         string `json:"name"`
	Stadium      string `json:"stadium"`
	Played       int    `json:"played"`
	Won          int    `json:"won"`
	Drawn        int    `json:"drawn"`
	Lost         int    `json:"lost"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	Points       int    `json:"points"`
}

// NewTeam creates a team with an id derived from its name.
func NewTeam(name, stadium string) *Team {
	name = strings.TrimSpace(name)
	return &Team{
		ID:      DeriveTeamID(name),
		Name:    name,
		Stadium: strings.TrimSpace(stadium),
	}
}

// DeriveTeamID builds the canonical id for a team name:
// lowercase, spaces replaced with underscores.
func DeriveTeamID(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// GoalDifference returns goals scored minus goals conceded.
func (t *Team) GoalDifference() int {
	return t.GoalsFor - t.GoalsAgainst
}

// ResetStats zeroes all cumulative statistics. Used when results are
// replayed after a fixture regeneration.
func (t *Team) ResetStats() {
	t.Played = 0
	t.Won = 0
	t.Drawn = 0
	t.Lost = 0
	t.GoalsFor = 0
	t.GoalsAgainst = 0
	t.Points = 0
}

// Validate checks the team's identifying fields.
func (t *Team) Validate() error {
	if len(strings.TrimSpace(t.Name)) < 2 {
		return fmt.Errorf("team name must be at least 2 characters")
	}
	if len(t.Name) > 50 {
		return fmt.Errorf("team name must not exceed 50 characters")
	}
	if len(strings.TrimSpace(t.Stadium)) < 2 {
		return fmt.Errorf("stadium name must be at least 2 characters")
	}
	if len(t.Stadium) > 100 {
		return fmt.Errorf("stadium name must not exceed 100 characters")
	}
	return nil
}
