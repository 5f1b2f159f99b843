package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Date is a wrapper around time.Time for YAML date parsing.
type Date struct {
	Time time.Time
}

func (d *Date) UnmarshalYAML(value *yaml.Node) error {
	t, err := time.Parse("2006-01-02", value.Value)
	if err != nil {
		return fmt.Errorf("invalid date %q: %w", value.Value, err)
	}
	d.Time = t
	return nil
}

// LeagueInfo identifies the league a config describes.
type LeagueInfo struct {
	Name   string `yaml:"name"`
	Season string `yaml:"season"`
}

// TeamEntry is one roster entry in the config file.
type TeamEntry struct {
	Name    string `yaml:"name"`
	Stadium string `yaml:"stadium"`
}

// Rules tune the home/away balancer. The swap thresholds bound consecutive
// same-venue runs; they are heuristic constants, not a fairness guarantee.
type Rules struct {
	HomeStreakSwapThreshold int `yaml:"home_streak_swap_threshold"`
	AwayStreakSwapThreshold int `yaml:"away_streak_swap_threshold"`
}

// Guidelines tune the diagnostics engine. Violations of these are reported,
// never enforced.
type Guidelines struct {
	MinRestDays                 int `yaml:"min_rest_days"`
	MinWeeksBetweenSameOpponent int `yaml:"min_weeks_between_same_opponent"`
	MaxConsecutiveSameVenue     int `yaml:"max_consecutive_same_venue"`
	CongestionThreshold         int `yaml:"congestion_threshold"`
	TrendWindow                 int `yaml:"trend_window"`
}

type Config struct {
	League     LeagueInfo  `yaml:"league"`
	StartDate  *Date       `yaml:"start_date"`
	Teams      []TeamEntry `yaml:"teams"`
	Rules      Rules       `yaml:"rules"`
	Guidelines Guidelines  `yaml:"guidelines"`
}

// TeamNames returns the configured team names in declaration order.
func (c *Config) TeamNames() []string {
	names := make([]string, 0, len(c.Teams))
	for _, t := range c.Teams {
		names = append(names, t.Name)
	}
	return names
}

// LoadFromBytes parses YAML bytes into a Config, applies defaults, and
// validates it.
func LoadFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromFile reads and parses a YAML config file.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromBytes(data)
}

// DefaultRules returns the balancer rules used when no config is present.
func DefaultRules() Rules {
	return Rules{HomeStreakSwapThreshold: 2, AwayStreakSwapThreshold: 2}
}

// DefaultGuidelines returns the diagnostics guidelines used when no config
// is present.
func DefaultGuidelines() Guidelines {
	return Guidelines{
		MinRestDays:                 3,
		MinWeeksBetweenSameOpponent: 3,
		MaxConsecutiveSameVenue:     3,
		CongestionThreshold:         3,
		TrendWindow:                 5,
	}
}

func (c *Config) applyDefaults() {
	def := DefaultRules()
	if c.Rules.HomeStreakSwapThreshold == 0 {
		c.Rules.HomeStreakSwapThreshold = def.HomeStreakSwapThreshold
	}
	if c.Rules.AwayStreakSwapThreshold == 0 {
		c.Rules.AwayStreakSwapThreshold = def.AwayStreakSwapThreshold
	}

	defG := DefaultGuidelines()
	if c.Guidelines.MinRestDays == 0 {
		c.Guidelines.MinRestDays = defG.MinRestDays
	}
	if c.Guidelines.MinWeeksBetweenSameOpponent == 0 {
		c.Guidelines.MinWeeksBetweenSameOpponent = defG.MinWeeksBetweenSameOpponent
	}
	if c.Guidelines.MaxConsecutiveSameVenue == 0 {
		c.Guidelines.MaxConsecutiveSameVenue = defG.MaxConsecutiveSameVenue
	}
	if c.Guidelines.CongestionThreshold == 0 {
		c.Guidelines.CongestionThreshold = defG.CongestionThreshold
	}
	if c.Guidelines.TrendWindow == 0 {
		c.Guidelines.TrendWindow = defG.TrendWindow
	}
}

func (c *Config) validate() error {
	if len(strings.TrimSpace(c.League.Name)) < 3 {
		return fmt.Errorf("league name must be at least 3 characters")
	}
	if len(strings.TrimSpace(c.League.Season)) < 4 {
		return fmt.Errorf("season must be specified (e.g., %q)", "2024-2025")
	}
	if len(c.Teams) < 2 {
		return fmt.Errorf("at least two teams are required")
	}

	seen := make(map[string]bool)
	for _, t := range c.Teams {
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("team entries must have a name")
		}
		key := strings.ToLower(strings.TrimSpace(t.Name))
		if seen[key] {
			return fmt.Errorf("team %q appears more than once", t.Name)
		}
		seen[key] = true
	}

	if c.Rules.HomeStreakSwapThreshold < 1 || c.Rules.AwayStreakSwapThreshold < 1 {
		return fmt.Errorf("streak swap thresholds must be at least 1")
	}

	return nil
}
