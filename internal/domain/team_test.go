package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTeam(t *testing.T) {
	team := NewTeam("  Manchester United ", " Old Trafford ")
	assert.Equal(t, "manchester_united", team.ID)
	assert.Equal(t, "Manchester United", team.Name)
	assert.Equal(t, "Old Trafford", team.Stadium)
	assert.NoError(t, team.Validate())
}

func TestDeriveTeamID(t *testing.T) {
	assert.Equal(t, "arsenal", DeriveTeamID("Arsenal"))
	assert.Equal(t, "west_ham_united", DeriveTeamID("West Ham United"))
	assert.Equal(t, "spurs", DeriveTeamID("  SPURS  "))
}

func TestTeamValidate(t *testing.T) {
	tests := []struct {
		name    string
		team    *Team
		wantErr string
	}{
		{"valid", NewTeam("Arsenal", "Emirates Stadium"), ""},
		{"name too short", NewTeam("A", "Emirates Stadium"), "team name"},
		{"name too long", NewTeam(strings.Repeat("x", 51), "Emirates Stadium"), "50 characters"},
		{"stadium too short", NewTeam("Arsenal", "E"), "stadium name"},
		{"stadium too long", NewTeam("Arsenal", strings.Repeat("x", 101)), "100 characters"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.team.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTeamGoalDifference(t *testing.T) {
	team := NewTeam("Arsenal", "Emirates Stadium")
	team.GoalsFor = 7
	team.GoalsAgainst = 3
	assert.Equal(t, 4, team.GoalDifference())
}

func TestTeamResetStats(t *testing.T) {
	team := NewTeam("Arsenal", "Emirates Stadium")
	team.Played, team.Won, team.Drawn, team.Lost = 5, 3, 1, 1
	team.GoalsFor, team.GoalsAgainst, team.Points = 9, 4, 10

	team.ResetStats()

	assert.Zero(t, team.Played)
	assert.Zero(t, team.Won)
	assert.Zero(t, team.Drawn)
	assert.Zero(t, team.Lost)
	assert.Zero(t, team.GoalsFor)
	assert.Zero(t, team.GoalsAgainst)
	assert.Zero(t, team.Points)
	assert.Equal(t, "arsenal", team.ID, "identity survives a stats reset")
}
