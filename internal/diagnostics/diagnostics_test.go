package diagnostics

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neelu1616/flsa/internal/config"
	"github.com/neelu1616/flsa/internal/domain"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine("", config.DefaultGuidelines())
	require.NoError(t, err)
	return e
}

func makeLeague(t *testing.T, names ...string) *domain.League {
	t.Helper()
	l, err := domain.NewLeague("Test League", "2026-2027")
	require.NoError(t, err)
	for _, name := range names {
		require.NoError(t, l.AddTeam(domain.NewTeam(name, name+" Park")))
	}
	return l
}

func addMatch(l *domain.League, homeID, awayID string, week int) *domain.Match {
	m := &domain.Match{
		ID:         "w" + string(rune('0'+week)) + "_" + homeID + "_vs_" + awayID,
		HomeTeamID: homeID, AwayTeamID: awayID,
		HomeTeamName: homeID, AwayTeamName: awayID, Week: week,
	}
	l.Matches = append(l.Matches, m)
	return m
}

func playMatch(t *testing.T, m *domain.Match, home, away int) {
	t.Helper()
	require.NoError(t, m.RecordResult(home, away))
}

func anomalyTypes(anomalies []Anomaly) map[string]int {
	out := make(map[string]int)
	for _, a := range anomalies {
		out[a.Type]++
	}
	return out
}

func TestDetectAnomaliesCleanSchedule(t *testing.T) {
	l := makeLeague(t, "Alpha", "Beta", "Gamma", "Delta")
	addMatch(l, "alpha", "beta", 1)
	addMatch(l, "gamma", "delta", 1)
	addMatch(l, "alpha", "gamma", 2)
	addMatch(l, "beta", "delta", 2)
	addMatch(l, "alpha", "delta", 3)
	addMatch(l, "beta", "gamma", 3)

	anomalies, err := newEngine(t).DetectAnomalies(l)
	require.NoError(t, err)
	assert.Empty(t, anomalies)
}

func TestDetectAnomaliesCorruptedSchedule(t *testing.T) {
	l := makeLeague(t, "Alpha", "Beta", "Gamma", "Delta")
	addMatch(l, "alpha", "beta", 1)
	addMatch(l, "alpha", "beta", 1)   // duplicate in the same week, alpha and beta double booked
	addMatch(l, "gamma", "gamma", 2)  // self-match
	addMatch(l, "delta", "ghost", 2)  // dangling reference
	addMatch(l, "gamma", "delta", 5)  // weeks 3 and 4 missing

	anomalies, err := newEngine(t).DetectAnomalies(l)
	require.NoError(t, err)
	types := anomalyTypes(anomalies)

	assert.Equal(t, 1, types["duplicate_match"])
	assert.Equal(t, 1, types["self_match"])
	assert.Equal(t, 1, types["invalid_team_reference"])
	assert.GreaterOrEqual(t, types["multiple_matches_per_week"], 2, "both double-booked teams reported")
	assert.Equal(t, 1, types["week_sequence_gap"])
	assert.Greater(t, types["missing_fixture"], 0)
}

func TestAnalyzeWorkloadDeterministic(t *testing.T) {
	build := func() *domain.League {
		l := makeLeague(t, "Alpha", "Beta", "Gamma", "Delta")
		addMatch(l, "alpha", "beta", 1)
		addMatch(l, "gamma", "delta", 1)
		addMatch(l, "beta", "gamma", 2)
		addMatch(l, "delta", "alpha", 2)
		return l
	}

	first, err := newEngine(t).AnalyzeWorkload(build())
	require.NoError(t, err)
	second, err := newEngine(t).AnalyzeWorkload(build())
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].TeamID, second[i].TeamID)
		assert.InDelta(t, first[i].TotalTravelKm, second[i].TotalTravelKm, 0.001,
			"synthetic coordinates must be stable across runs")
	}
}

func TestAnalyzeWorkloadCounts(t *testing.T) {
	l := makeLeague(t, "Alpha", "Beta")
	addMatch(l, "alpha", "beta", 1)
	addMatch(l, "beta", "alpha", 3)
	addMatch(l, "alpha", "beta", 5)

	metrics, err := newEngine(t).AnalyzeWorkload(l)
	require.NoError(t, err)

	byID := make(map[string]WorkloadMetrics)
	for _, m := range metrics {
		byID[m.TeamID] = m
	}

	alpha := byID["alpha"]
	assert.Equal(t, 3, alpha.TotalMatches)
	assert.Equal(t, 2, alpha.HomeMatches)
	assert.Equal(t, 1, alpha.AwayMatches)
	assert.Greater(t, alpha.TotalTravelKm, 0.0)
	// Weeks 1, 3, 5: one week gap each side, 7 rest days on average.
	assert.InDelta(t, 7.0, alpha.AvgRestDays, 0.001)
	assert.InDelta(t, 0.6, alpha.CongestionScore, 0.001)

	beta := byID["beta"]
	assert.Equal(t, 2, beta.AwayMatches)
	assert.Equal(t, 1, beta.MaxConsecutiveAway, "away runs broken by the home match in week 3")
}

func TestDetectCongestion(t *testing.T) {
	l := makeLeague(t, "Alpha", "Beta", "Gamma", "Delta")
	// Three matches for alpha inside two weeks.
	addMatch(l, "alpha", "beta", 1)
	addMatch(l, "alpha", "gamma", 2)
	addMatch(l, "delta", "alpha", 2)

	zones, err := newEngine(t).DetectCongestion(l)
	require.NoError(t, err)
	require.NotEmpty(t, zones)

	zone := zones[0]
	assert.Equal(t, "alpha", zone.TeamID)
	assert.Equal(t, 1, zone.StartWeek)
	assert.Equal(t, 2, zone.EndWeek)
	assert.InDelta(t, 1.5, zone.Density, 0.001)
	assert.Equal(t, SeverityWarning, zone.Severity)
}

func TestDetectCongestionSparseSchedule(t *testing.T) {
	l := makeLeague(t, "Alpha", "Beta")
	addMatch(l, "alpha", "beta", 1)
	addMatch(l, "beta", "alpha", 5)
	addMatch(l, "alpha", "beta", 9)

	zones, err := newEngine(t).DetectCongestion(l)
	require.NoError(t, err)
	assert.Empty(t, zones)
}

func TestCheckCompliance(t *testing.T) {
	l := makeLeague(t, "Alpha", "Beta", "Gamma", "Delta")
	// Alpha plays back-to-back weeks (0 rest days against a 3-day minimum),
	// meets beta again inside the spacing window, and hosts four in a row.
	addMatch(l, "alpha", "beta", 1)
	addMatch(l, "alpha", "gamma", 2)
	addMatch(l, "alpha", "beta", 3)
	addMatch(l, "alpha", "delta", 4)

	violations, err := newEngine(t).CheckCompliance(l)
	require.NoError(t, err)

	rules := make(map[string]int)
	for _, v := range violations {
		rules[v.Rule]++
	}
	assert.Greater(t, rules["min_rest_days"], 0)
	assert.Greater(t, rules["repeat_opponent_spacing"], 0)
	assert.Greater(t, rules["max_consecutive_same_venue"], 0)
}

func TestCheckComplianceCleanSchedule(t *testing.T) {
	l := makeLeague(t, "Alpha", "Beta")
	addMatch(l, "alpha", "beta", 1)
	addMatch(l, "beta", "alpha", 5)

	violations, err := newEngine(t).CheckCompliance(l)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestPredictTrends(t *testing.T) {
	l := makeLeague(t, "Alpha", "Beta")
	for week := 1; week <= 4; week++ {
		m := addMatch(l, "alpha", "beta", week)
		playMatch(t, m, 2, 0) // alpha wins everything
	}

	predictions, err := newEngine(t).PredictTrends(l)
	require.NoError(t, err)
	require.Len(t, predictions, 2)

	alpha := predictions[0]
	assert.Equal(t, "alpha", alpha.TeamID, "perfect form sorts first")
	assert.Equal(t, "excellent", alpha.FormLabel)
	assert.InDelta(t, 1.0, alpha.FormRating, 0.001)
	assert.Equal(t, "stable", alpha.Trend)
	assert.InDelta(t, 0.9, alpha.WinProbability, 0.001, "clamped at 0.9")
	assert.InDelta(t, 15.0, alpha.ExpectedPointsNext, 0.001)

	beta := predictions[1]
	assert.Equal(t, "poor", beta.FormLabel)
	assert.InDelta(t, 0.1, beta.WinProbability, 0.001, "clamped at 0.1")
}

func TestPredictTrendsNoResults(t *testing.T) {
	l := makeLeague(t, "Alpha", "Beta")
	addMatch(l, "alpha", "beta", 1)

	predictions, err := newEngine(t).PredictTrends(l)
	require.NoError(t, err)
	for _, p := range predictions {
		assert.Equal(t, "unknown", p.FormLabel)
		assert.InDelta(t, 0.5, p.WinProbability, 0.001)
	}
}

func TestSummarize(t *testing.T) {
	l := makeLeague(t, "Alpha", "Beta", "Gamma", "Delta")
	m1 := addMatch(l, "alpha", "beta", 1)
	m1.HomeTeamName, m1.AwayTeamName = "Alpha", "Beta"
	playMatch(t, m1, 4, 0)
	m2 := addMatch(l, "gamma", "delta", 1)
	m2.HomeTeamName, m2.AwayTeamName = "Gamma", "Delta"
	playMatch(t, m2, 1, 1)
	addMatch(l, "alpha", "gamma", 2)

	// Fold results into team stats the way the standings engine would.
	alpha, beta := l.TeamByID("alpha"), l.TeamByID("beta")
	alpha.Played, alpha.Won, alpha.GoalsFor, alpha.Points = 1, 1, 4, 3
	beta.Played, beta.Lost, beta.GoalsAgainst = 1, 1, 4

	s, err := newEngine(t).Summarize(l, l.Teams)
	require.NoError(t, err)

	assert.Equal(t, 3, s.TotalMatches)
	assert.Equal(t, 2, s.PlayedMatches)
	assert.Equal(t, 6, s.TotalGoals)
	assert.InDelta(t, 3.0, s.AvgGoals, 0.001)
	assert.Equal(t, 1, s.HomeWins)
	assert.Equal(t, 0, s.AwayWins)
	assert.Equal(t, 1, s.Draws)

	assert.Contains(t, s.Highlights["top_scoring"], "Alpha")
	assert.Contains(t, s.Highlights["most_wins"], "Alpha")
	assert.Contains(t, s.Highlights["biggest_win"], "4-0")
	assert.Contains(t, s.Highlights["highest_scoring_match"], "4 goals")
	assert.Contains(t, s.Highlights["most_clean_sheets"], "Alpha")
	assert.Len(t, s.TopTeams, 4)
}

func TestReportsWrittenToDisk(t *testing.T) {
	dir := t.TempDir()
	e, err := NewEngine(dir, config.DefaultGuidelines())
	require.NoError(t, err)

	l := makeLeague(t, "Alpha", "Beta")
	addMatch(l, "alpha", "beta", 1)

	_, err = e.DetectAnomalies(l)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "anomalies_Test_League_")
}
