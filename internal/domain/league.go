package domain

import (
	"fmt"
	"strings"

	"github.com/tiendc/go-deepcopy"
)

// League owns the team roster and the match list. Once fixtures have been
// generated the roster is frozen: add/remove/edit are rejected until the
// fixtures are cleared or regenerated.
type League struct {
	Name              string   `json:"name"`
	Season            string   `json:"season"`
	Teams             []*Team  `json:"teams"`
	Matches           []*Match `json:"matches"`
	FixturesGenerated bool     `json:"fixtures_generated"`
}

// NewLeague creates an empty league after validating its identity.
func NewLeague(name, season string) (*League, error) {
	if len(strings.TrimSpace(name)) < 3 {
		return nil, fmt.Errorf("league name must be at least 3 characters")
	}
	if len(strings.TrimSpace(season)) < 4 {
		return nil, fmt.Errorf("season must be specified (e.g., %q)", "2024-2025")
	}
	return &League{Name: strings.TrimSpace(name), Season: strings.TrimSpace(season)}, nil
}

// AddTeam adds a team to the roster. Duplicate ids and duplicate names
// (case-insensitive) are rejected.
func (l *League) AddTeam(team *Team) error {
	if l.FixturesGenerated {
		return fmt.Errorf("cannot add teams after fixtures are generated")
	}
	for _, t := range l.Teams {
		if t.ID == team.ID {
			return fmt.Errorf("team %q already exists in the league", team.Name)
		}
		if strings.EqualFold(t.Name, team.Name) {
			return fmt.Errorf("a team with name %q already exists", team.Name)
		}
	}
	if err := team.Validate(); err != nil {
		return err
	}
	l.Teams = append(l.Teams, team)
	return nil
}

// RemoveTeam removes a team by id.
func (l *League) RemoveTeam(teamID string) error {
	if l.FixturesGenerated {
		return fmt.Errorf("cannot remove teams after fixtures are generated")
	}
	for i, t := range l.Teams {
		if t.ID == teamID {
			l.Teams = append(l.Teams[:i], l.Teams[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("team with ID %q not found", teamID)
}

// EditTeam updates a team's name and/or stadium. Empty arguments leave the
// corresponding field unchanged. The team id never changes.
func (l *League) EditTeam(teamID, newName, newStadium string) error {
	if l.FixturesGenerated {
		return fmt.Errorf("cannot edit teams after fixtures are generated")
	}
	team := l.TeamByID(teamID)
	if team == nil {
		return fmt.Errorf("team with ID %q not found", teamID)
	}
	if newName != "" {
		for _, t := range l.Teams {
			if t.ID != teamID && strings.EqualFold(t.Name, newName) {
				return fmt.Errorf("a team with name %q already exists", newName)
			}
		}
	}
	prevName, prevStadium := team.Name, team.Stadium
	if newName != "" {
		team.Name = strings.TrimSpace(newName)
	}
	if newStadium != "" {
		team.Stadium = strings.TrimSpace(newStadium)
	}
	if err := team.Validate(); err != nil {
		team.Name, team.Stadium = prevName, prevStadium
		return err
	}
	return nil
}

// TeamByID finds a team by its id, or nil.
func (l *League) TeamByID(teamID string) *Team {
	for _, t := range l.Teams {
		if t.ID == teamID {
			return t
		}
	}
	return nil
}

// TeamByName finds a team by name, case-insensitively, or nil.
func (l *League) TeamByName(name string) *Team {
	for _, t := range l.Teams {
		if strings.EqualFold(t.Name, name) {
			return t
		}
	}
	return nil
}

// ResolveTeam looks a team up by name first, then by id.
func (l *League) ResolveTeam(identifier string) *Team {
	if t := l.TeamByName(identifier); t != nil {
		return t
	}
	return l.TeamByID(identifier)
}

// MatchByID finds a match by its id, or nil.
func (l *League) MatchByID(matchID string) *Match {
	for _, m := range l.Matches {
		if m.ID == matchID {
			return m
		}
	}
	return nil
}

// ValidateForScheduling checks that the league is ready for fixture
// generation: at least 2 teams, an even count, and every team valid.
func (l *League) ValidateForScheduling() error {
	if len(l.Teams) < 2 {
		return fmt.Errorf("league must have at least 2 teams to generate fixtures")
	}
	if len(l.Teams)%2 != 0 {
		return fmt.Errorf("league must have an even number of teams for round-robin scheduling")
	}
	for _, t := range l.Teams {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("team %q validation failed: %w", t.Name, err)
		}
	}
	return nil
}

// ClearFixtures discards the match list and unfreezes the roster.
func (l *League) ClearFixtures() {
	l.Matches = nil
	l.FixturesGenerated = false
}

// Clone returns a deep copy of the league. The scheduler regenerates
// fixtures on a clone so a failed run leaves the original untouched.
func (l *League) Clone() (*League, error) {
	var out League
	if err := deepcopy.Copy(&out, l); err != nil {
		return nil, fmt.Errorf("cloning league: %w", err)
	}
	return &out, nil
}
