package standings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neelu1616/flsa/internal/domain"
)

func makeLeague(t *testing.T, names ...string) *domain.League {
	t.Helper()
	l, err := domain.NewLeague("Test League", "2026-2027")
	require.NoError(t, err)
	for _, name := range names {
		require.NoError(t, l.AddTeam(domain.NewTeam(name, name+" Park")))
	}
	return l
}

func addMatch(l *domain.League, id, homeID, awayID string, week int) *domain.Match {
	m := &domain.Match{
		ID: id, HomeTeamID: homeID, AwayTeamID: awayID,
		HomeTeamName: homeID, AwayTeamName: awayID, Week: week,
	}
	l.Matches = append(l.Matches, m)
	return m
}

func TestRecordResult(t *testing.T) {
	l := makeLeague(t, "Alpha", "Beta")
	addMatch(l, "m1", "alpha", "beta", 1)
	mgr := NewManager(l)

	match, err := mgr.RecordResult("m1", 3, 1)
	require.NoError(t, err)
	assert.True(t, match.IsPlayed())

	alpha := l.TeamByID("alpha")
	assert.Equal(t, 1, alpha.Played)
	assert.Equal(t, 1, alpha.Won)
	assert.Equal(t, 3, alpha.GoalsFor)
	assert.Equal(t, 1, alpha.GoalsAgainst)
	assert.Equal(t, 3, alpha.Points)

	beta := l.TeamByID("beta")
	assert.Equal(t, 1, beta.Played)
	assert.Equal(t, 1, beta.Lost)
	assert.Equal(t, 1, beta.GoalsFor)
	assert.Equal(t, 3, beta.GoalsAgainst)
	assert.Equal(t, 0, beta.Points)
}

func TestRecordResultDraw(t *testing.T) {
	l := makeLeague(t, "Alpha", "Beta")
	addMatch(l, "m1", "alpha", "beta", 1)

	_, err := NewManager(l).RecordResult("m1", 2, 2)
	require.NoError(t, err)

	assert.Equal(t, 1, l.TeamByID("alpha").Points)
	assert.Equal(t, 1, l.TeamByID("beta").Points)
	assert.Equal(t, 1, l.TeamByID("alpha").Drawn)
}

func TestRecordResultOnlyOnce(t *testing.T) {
	l := makeLeague(t, "Alpha", "Beta")
	addMatch(l, "m1", "alpha", "beta", 1)
	mgr := NewManager(l)

	_, err := mgr.RecordResult("m1", 3, 1)
	require.NoError(t, err)

	_, err = mgr.RecordResult("m1", 0, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already played")
	assert.Contains(t, err.Error(), "3-1")

	alpha := l.TeamByID("alpha")
	assert.Equal(t, 1, alpha.Played, "stats must not double-count")
	assert.Equal(t, 3, alpha.Points)
}

func TestRecordResultErrors(t *testing.T) {
	l := makeLeague(t, "Alpha", "Beta")
	addMatch(l, "m1", "alpha", "beta", 1)
	mgr := NewManager(l)

	t.Run("unknown match", func(t *testing.T) {
		_, err := mgr.RecordResult("nope", 1, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("negative score", func(t *testing.T) {
		_, err := mgr.RecordResult("m1", -1, 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "negative")
		assert.Zero(t, l.TeamByID("alpha").Played)
	})
}

func TestRankings(t *testing.T) {
	l := makeLeague(t, "Alpha", "Beta", "Gamma")
	alpha := l.TeamByID("alpha")
	beta := l.TeamByID("beta")
	gamma := l.TeamByID("gamma")

	t.Run("points then goal difference", func(t *testing.T) {
		alpha.Points, alpha.GoalsFor, alpha.GoalsAgainst = 10, 10, 8 // GD +2
		beta.Points, beta.GoalsFor, beta.GoalsAgainst = 10, 12, 7   // GD +5
		gamma.Points = 7

		ranked := NewManager(l).Rankings()
		assert.Equal(t, []string{"beta", "alpha", "gamma"}, ids(ranked))
	})

	t.Run("goals scored breaks GD tie", func(t *testing.T) {
		alpha.Points, alpha.GoalsFor, alpha.GoalsAgainst = 10, 15, 10 // GD +5, GF 15
		beta.Points, beta.GoalsFor, beta.GoalsAgainst = 10, 12, 7    // GD +5, GF 12
		gamma.Points = 0

		ranked := NewManager(l).Rankings()
		assert.Equal(t, []string{"alpha", "beta", "gamma"}, ids(ranked))
	})

	t.Run("name breaks full stat tie", func(t *testing.T) {
		for _, team := range l.Teams {
			team.ResetStats()
		}
		ranked := NewManager(l).Rankings()
		assert.Equal(t, []string{"alpha", "beta", "gamma"}, ids(ranked))
	})
}

func TestRankingsStableOnFullTie(t *testing.T) {
	l := makeLeague(t, "Same FC", "same fc 2")
	// Force identical names so all four keys tie; insertion order must hold.
	l.Teams[0].Name = "Clones"
	l.Teams[1].Name = "Clones"

	ranked := NewManager(l).Rankings()
	assert.Equal(t, l.Teams[0].ID, ranked[0].ID)
	assert.Equal(t, l.Teams[1].ID, ranked[1].ID)
}

func TestTableData(t *testing.T) {
	l := makeLeague(t, "Alpha", "Beta", "Gamma")
	l.TeamByID("beta").Points = 6

	rows := NewManager(l).TableData()
	require.Len(t, rows, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{rows[0].Position, rows[1].Position, rows[2].Position})
	assert.Equal(t, "Beta", rows[0].Team)
}

func TestTeamForm(t *testing.T) {
	l := makeLeague(t, "Alpha", "Beta")
	mgr := NewManager(l)

	for i, result := range []struct{ home, away int }{
		{1, 0}, {0, 0}, {0, 2}, {3, 1}, {2, 0}, {1, 1},
	} {
		m := addMatch(l, "m"+string(rune('1'+i)), "alpha", "beta", i+1)
		require.NoError(t, m.RecordResult(result.home, result.away))
		UpdateFromMatch(m, l.TeamByID("alpha"), l.TeamByID("beta"))
	}

	form, err := mgr.TeamForm("Alpha")
	require.NoError(t, err)
	assert.Equal(t, "DLWWD", form.Form, "last five results, most recent last")
	assert.Equal(t, 6, form.Played)
	assert.InDelta(t, 50.0, form.WinPercentage, 0.01)

	_, err = mgr.TeamForm("Nowhere FC")
	assert.Error(t, err)
}

func ids(teams []*domain.Team) []string {
	out := make([]string, 0, len(teams))
	for _, t := range teams {
		out = append(out, t.ID)
	}
	return out
}
