// Package diagnostics runs post-hoc analyses over a generated schedule:
// anomaly detection, workload and travel analysis, congestion zones, rule
// compliance, trend statistics, and the season summary. Everything here is
// read-only over the league; analyses report, never repair.
package diagnostics

import (
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/neelu1616/flsa/internal/config"
	"github.com/neelu1616/flsa/internal/domain"
)

// Severity levels used across all diagnostics results.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// StadiumLocation holds synthetic coordinates for travel-burden analysis.
// Positions are generated deterministically; there is no real geo data.
type StadiumLocation struct {
	TeamID    string  `json:"team_id"`
	TeamName  string  `json:"team_name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Engine runs diagnostics over a league. When reportDir is non-empty, each
// analysis also writes a JSON report file there.
type Engine struct {
	reportDir  string
	guidelines config.Guidelines
	locations  map[string]StadiumLocation
}

// NewEngine returns a diagnostics engine. An empty reportDir disables
// report files.
func NewEngine(reportDir string, guidelines config.Guidelines) (*Engine, error) {
	if reportDir != "" {
		if err := os.MkdirAll(reportDir, 0755); err != nil {
			return nil, fmt.Errorf("creating report directory: %w", err)
		}
	}
	return &Engine{
		reportDir:  reportDir,
		guidelines: guidelines,
		locations:  make(map[string]StadiumLocation),
	}, nil
}

// ensureLocations lazily assigns each team a stadium position inside a
// roughly 500km square centred on a fixed point. The seed is fixed so the
// same roster always gets the same coordinates.
func (e *Engine) ensureLocations(teams []*domain.Team) {
	if len(e.locations) > 0 {
		return
	}

	rng := rand.New(rand.NewSource(42))
	const baseLat, baseLon = 51.5074, -0.1278

	for _, t := range teams {
		e.locations[t.ID] = StadiumLocation{
			TeamID:    t.ID,
			TeamName:  t.Name,
			Latitude:  baseLat + (rng.Float64()*5 - 2.5),
			Longitude: baseLon + (rng.Float64()*5 - 2.5),
		}
	}
}

// haversine returns the great-circle distance between two locations in km.
func haversine(a, b StadiumLocation) float64 {
	const earthRadiusKm = 6371

	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLon := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// saveReport writes a JSON report file and returns its path, or "" when
// report files are disabled.
func (e *Engine) saveReport(prefix string, l *domain.League, results any) (string, error) {
	if e.reportDir == "" {
		return "", nil
	}

	report := struct {
		ReportID    string `json:"report_id"`
		LeagueName  string `json:"league_name"`
		Season      string `json:"season"`
		GeneratedAt string `json:"generated_at"`
		Results     any    `json:"results"`
	}{
		ReportID:    uuid.NewString(),
		LeagueName:  l.Name,
		Season:      l.Season,
		GeneratedAt: time.Now().Format(time.RFC3339),
		Results:     results,
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding %s report: %w", prefix, err)
	}

	filename := fmt.Sprintf("%s_%s_%s.json",
		prefix,
		strings.ReplaceAll(l.Name, " ", "_"),
		time.Now().Format("20060102_150405"))
	path := filepath.Join(e.reportDir, filename)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s report: %w", prefix, err)
	}
	return path, nil
}

// teamMatches returns the league matches involving the team, ordered by week.
func teamMatches(l *domain.League, teamID string) []*domain.Match {
	var out []*domain.Match
	for _, m := range l.Matches {
		if m.HomeTeamID == teamID || m.AwayTeamID == teamID {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Week < out[j].Week })
	return out
}
