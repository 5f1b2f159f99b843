// Package store persists leagues as JSON records under a data directory.
// The record is round-trippable: team stats, the match list, and the
// fixtures-generated flag all survive a save/load cycle.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/neelu1616/flsa/internal/domain"
)

// Store reads and writes league files in a single data directory.
type Store struct {
	dataDir string
}

// New creates the data directory if needed and returns a store over it.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &Store{dataDir: dataDir}, nil
}

// Dir returns the store's data directory.
func (s *Store) Dir() string { return s.dataDir }

// leagueRecord is the persisted shape: the league plus a save timestamp.
type leagueRecord struct {
	*domain.League
	SavedAt string `json:"saved_at,omitempty"`
}

// DefaultFilename derives a file name from the league's name and season.
func DefaultFilename(l *domain.League) string {
	name := strings.ReplaceAll(strings.ToLower(l.Name), " ", "_")
	season := strings.ReplaceAll(l.Season, "/", "-")
	return fmt.Sprintf("%s_%s.json", name, season)
}

// Save writes the league as indented JSON. An empty filename derives one
// from the league name and season. Returns the path written.
func (s *Store) Save(l *domain.League, filename string) (string, error) {
	if filename == "" {
		filename = DefaultFilename(l)
	}
	path := filepath.Join(s.dataDir, filename)

	data, err := json.MarshalIndent(leagueRecord{League: l, SavedAt: time.Now().Format(time.RFC3339)}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding league: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing league file: %w", err)
	}
	return path, nil
}

// Load reads a league file previously written by Save.
func (s *Store) Load(filename string) (*domain.League, error) {
	path := filepath.Join(s.dataDir, filename)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading league file: %w", err)
	}

	var rec leagueRecord
	rec.League = &domain.League{}
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decoding league file %s: %w", path, err)
	}
	return rec.League, nil
}

// ExportText writes a human-readable summary of the league. Returns the
// path written.
func (s *Store) ExportText(l *domain.League, filename string) (string, error) {
	if filename == "" {
		name := strings.ReplaceAll(strings.ToLower(l.Name), " ", "_")
		filename = fmt.Sprintf("%s_export.txt", name)
	}
	path := filepath.Join(s.dataDir, filename)

	var b strings.Builder
	line := strings.Repeat("=", 60)
	fmt.Fprintln(&b, line)
	fmt.Fprintf(&b, "LEAGUE: %s\n", l.Name)
	fmt.Fprintf(&b, "SEASON: %s\n", l.Season)
	fmt.Fprintln(&b, line)
	fmt.Fprintf(&b, "\nTEAMS (%d):\n", len(l.Teams))
	fmt.Fprintln(&b, strings.Repeat("-", 60))

	for i, t := range l.Teams {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t.Name)
		fmt.Fprintf(&b, "   Stadium: %s\n", t.Stadium)
		fmt.Fprintf(&b, "   ID: %s\n", t.ID)
		if t.Played > 0 {
			fmt.Fprintf(&b, "   Record: %dW-%dD-%dL\n", t.Won, t.Drawn, t.Lost)
			fmt.Fprintf(&b, "   Points: %d\n", t.Points)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\n%s\n", line)
	fmt.Fprintf(&b, "Exported: %s\n", time.Now().Format("2006-01-02 15:04:05"))

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", fmt.Errorf("writing export file: %w", err)
	}
	return path, nil
}
