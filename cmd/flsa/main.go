package main

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/neelu1616/flsa/internal/config"
	"github.com/neelu1616/flsa/internal/diagnostics"
	"github.com/neelu1616/flsa/internal/domain"
	"github.com/neelu1616/flsa/internal/excel"
	"github.com/neelu1616/flsa/internal/schedule"
	"github.com/neelu1616/flsa/internal/standings"
	"github.com/neelu1616/flsa/internal/store"
	"github.com/neelu1616/flsa/internal/validator"
)

const (
	defaultConfigFile = "config.yaml"
	defaultLeagueFile = "league.json"
)

func resolveConfigPath(configFlag string) (string, error) {
	if configFlag != "" {
		return configFlag, nil
	}
	if _, err := os.Stat(defaultConfigFile); err == nil {
		return defaultConfigFile, nil
	}
	return "", fmt.Errorf("no config file found. Either create %s in the current directory or pass --config", defaultConfigFile)
}

// optionalConfig loads the config when one exists, falling back to defaults
// otherwise. Commands that only need rules or guidelines work without a
// config file.
func optionalConfig(configFlag string) *config.Config {
	path, err := resolveConfigPath(configFlag)
	if err != nil {
		return &config.Config{Rules: config.DefaultRules(), Guidelines: config.DefaultGuidelines()}
	}
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return &config.Config{Rules: config.DefaultRules(), Guidelines: config.DefaultGuidelines()}
	}
	return cfg
}

func main() {
	// Optional .env for FLSA_DATA_DIR and FLSA_REPORT_DIR.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "flsa",
		Short: "Football league scheduling and standings tool",
	}

	var dataDir, leagueFile, configFile string
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", envOr("FLSA_DATA_DIR", "data"), "Data directory for league files")
	rootCmd.PersistentFlags().StringVar(&leagueFile, "file", defaultLeagueFile, "League file name inside the data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to config file (default: config.yaml in current directory)")

	var initOutputPath string
	initCmd := &cobra.Command{
		Use:          "init",
		Short:        "Create a starter config.yaml in the current directory",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(initOutputPath)
		},
	}
	initCmd.Flags().StringVarP(&initOutputPath, "output", "o", defaultConfigFile, "Output path for the config file")

	createCmd := &cobra.Command{
		Use:          "create",
		Short:        "Create a league from a config file",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := resolveConfigPath(configFile)
			if err != nil {
				return err
			}
			return runCreate(configPath, dataDir, leagueFile)
		},
	}

	teamCmd := &cobra.Command{
		Use:   "team",
		Short: "Manage the team roster",
	}

	teamAddCmd := &cobra.Command{
		Use:          "add <name> <stadium>",
		Short:        "Add a team to the league",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLeague(dataDir, leagueFile, func(l *domain.League) error {
				team := domain.NewTeam(args[0], args[1])
				if err := l.AddTeam(team); err != nil {
					return err
				}
				fmt.Printf("✓ Added %s (id: %s)\n", team.Name, team.ID)
				return nil
			})
		},
	}

	teamRemoveCmd := &cobra.Command{
		Use:          "remove <team>",
		Short:        "Remove a team from the league",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLeague(dataDir, leagueFile, func(l *domain.League) error {
				team := l.ResolveTeam(args[0])
				if team == nil {
					return fmt.Errorf("team %q not found", args[0])
				}
				if err := l.RemoveTeam(team.ID); err != nil {
					return err
				}
				fmt.Printf("✓ Removed %s\n", team.Name)
				return nil
			})
		},
	}

	var editName, editStadium string
	teamEditCmd := &cobra.Command{
		Use:          "edit <team>",
		Short:        "Rename a team or change its stadium",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if editName == "" && editStadium == "" {
				return fmt.Errorf("nothing to change; pass --name and/or --stadium")
			}
			return withLeague(dataDir, leagueFile, func(l *domain.League) error {
				team := l.ResolveTeam(args[0])
				if team == nil {
					return fmt.Errorf("team %q not found", args[0])
				}
				if err := l.EditTeam(team.ID, editName, editStadium); err != nil {
					return err
				}
				fmt.Printf("✓ Updated %s\n", team.Name)
				return nil
			})
		},
	}
	teamEditCmd.Flags().StringVar(&editName, "name", "", "New team name")
	teamEditCmd.Flags().StringVar(&editStadium, "stadium", "", "New stadium name")

	teamListCmd := &cobra.Command{
		Use:          "list",
		Short:        "List the teams in the league",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, _, err := loadLeague(dataDir, leagueFile)
			if err != nil {
				return err
			}
			fmt.Printf("%s (%s) - %d teams\n", l.Name, l.Season, len(l.Teams))
			for i, t := range l.Teams {
				fmt.Printf("%d. %s (%s) - %s\n", i+1, t.Name, t.ID, t.Stadium)
			}
			return nil
		},
	}
	teamCmd.AddCommand(teamAddCmd, teamRemoveCmd, teamEditCmd, teamListCmd)

	fixturesCmd := &cobra.Command{
		Use:   "fixtures",
		Short: "Generate and inspect the fixture list",
	}

	var startDate string
	generateCmd := &cobra.Command{
		Use:          "generate",
		Short:        "Generate the round-robin fixture list",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseStart(startDate)
			if err != nil {
				return err
			}
			cfg := optionalConfig(configFile)
			return withLeague(dataDir, leagueFile, func(l *domain.League) error {
				res, err := schedule.NewScheduler(l, cfg.Rules).GenerateFixtures(start)
				if err != nil {
					return err
				}
				fmt.Printf("✓ Generated %d fixtures over %d weeks\n", res.Matches, res.Weeks)
				return nil
			})
		},
	}
	generateCmd.Flags().StringVar(&startDate, "start", "", "Season start date (YYYY-MM-DD, default today)")

	var regenStartDate string
	regenerateCmd := &cobra.Command{
		Use:          "regenerate",
		Short:        "Rebuild the fixture list, keeping played results",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseStart(regenStartDate)
			if err != nil {
				return err
			}
			cfg := optionalConfig(configFile)
			return withLeague(dataDir, leagueFile, func(l *domain.League) error {
				res, err := schedule.NewScheduler(l, cfg.Rules).RegenerateFixtures(start)
				if err != nil {
					return err
				}
				fmt.Printf("✓ Regenerated %d fixtures over %d weeks (%d results preserved)\n",
					res.Matches, res.Weeks, res.Restored)
				return nil
			})
		},
	}
	regenerateCmd.Flags().StringVar(&regenStartDate, "start", "", "Season start date (YYYY-MM-DD, default today)")

	var listTeam string
	var listWeek int
	fixturesListCmd := &cobra.Command{
		Use:          "list",
		Short:        "List fixtures, optionally for one team or week",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, _, err := loadLeague(dataDir, leagueFile)
			if err != nil {
				return err
			}
			cfg := optionalConfig(configFile)
			s := schedule.NewScheduler(l, cfg.Rules)

			var matches []*domain.Match
			switch {
			case listTeam != "":
				matches, err = s.TeamFixtures(listTeam)
				if err != nil {
					return err
				}
			case listWeek > 0:
				matches = s.FixturesByWeek(listWeek)
			default:
				matches = s.AllFixtures()
			}

			if len(matches) == 0 {
				fmt.Println("No fixtures found")
				return nil
			}
			for _, m := range matches {
				fmt.Printf("%-30s %s  [%s]\n", m.ID, m, m.ScheduledDate)
			}
			return nil
		},
	}
	fixturesListCmd.Flags().StringVar(&listTeam, "team", "", "Only fixtures for this team (name or id)")
	fixturesListCmd.Flags().IntVar(&listWeek, "week", 0, "Only fixtures in this week")

	fixturesValidateCmd := &cobra.Command{
		Use:          "validate",
		Short:        "Check the fixture list for integrity problems",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, _, err := loadLeague(dataDir, leagueFile)
			if err != nil {
				return err
			}
			violations := validator.Check(l)
			if len(violations) == 0 {
				fmt.Println("✓ Schedule is valid")
				return nil
			}
			for _, v := range violations {
				fmt.Printf("✗ %s\n", v.Message)
			}
			return fmt.Errorf("%d integrity problems found", len(violations))
		},
	}

	rescheduleCmd := &cobra.Command{
		Use:          "reschedule <match-id> <week>",
		Short:        "Move an unplayed match to another week",
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var week int
			if _, err := fmt.Sscanf(args[1], "%d", &week); err != nil {
				return fmt.Errorf("invalid week %q", args[1])
			}
			cfg := optionalConfig(configFile)
			return withLeague(dataDir, leagueFile, func(l *domain.League) error {
				if err := schedule.NewScheduler(l, cfg.Rules).RescheduleMatch(args[0], week); err != nil {
					return err
				}
				fmt.Printf("✓ Moved %s to week %d\n", args[0], week)
				return nil
			})
		},
	}

	fixturesClearCmd := &cobra.Command{
		Use:          "clear",
		Short:        "Discard all fixtures and unfreeze the roster",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLeague(dataDir, leagueFile, func(l *domain.League) error {
				l.ClearFixtures()
				fmt.Println("✓ Fixtures cleared")
				return nil
			})
		},
	}
	fixturesCmd.AddCommand(generateCmd, regenerateCmd, fixturesListCmd, fixturesValidateCmd, rescheduleCmd, fixturesClearCmd)

	recordCmd := &cobra.Command{
		Use:          "record <match-id> <home-score> <away-score>",
		Short:        "Record a final score for a match",
		Args:         cobra.ExactArgs(3),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var home, away int
			if _, err := fmt.Sscanf(args[1], "%d", &home); err != nil {
				return fmt.Errorf("invalid home score %q", args[1])
			}
			if _, err := fmt.Sscanf(args[2], "%d", &away); err != nil {
				return fmt.Errorf("invalid away score %q", args[2])
			}
			return withLeague(dataDir, leagueFile, func(l *domain.League) error {
				match, err := standings.NewManager(l).RecordResult(args[0], home, away)
				if err != nil {
					return err
				}
				fmt.Printf("✓ %s\n", match)
				return nil
			})
		},
	}

	tableCmd := &cobra.Command{
		Use:          "table",
		Short:        "Show the league table",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, _, err := loadLeague(dataDir, leagueFile)
			if err != nil {
				return err
			}
			fmt.Println(standings.NewManager(l).Render())
			return nil
		},
	}

	formCmd := &cobra.Command{
		Use:          "form <team>",
		Short:        "Show a team's recent results",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, _, err := loadLeague(dataDir, leagueFile)
			if err != nil {
				return err
			}
			form, err := standings.NewManager(l).TeamForm(args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s: %s (P%d W%d D%d L%d, %.1f%% wins)\n",
				form.Team, form.Form, form.Played, form.Won, form.Drawn, form.Lost, form.WinPercentage)
			return nil
		},
	}

	var reportDir string
	reportCmd := &cobra.Command{
		Use:          "report <anomalies|workload|congestion|compliance|trends|summary>",
		Short:        "Run a diagnostics analysis over the schedule",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, _, err := loadLeague(dataDir, leagueFile)
			if err != nil {
				return err
			}
			cfg := optionalConfig(configFile)
			return runReport(args[0], l, cfg.Guidelines, reportDir)
		},
	}
	reportCmd.Flags().StringVar(&reportDir, "reports", envOr("FLSA_REPORT_DIR", "reports"), "Directory for JSON report files (empty to disable)")

	var exportPath string
	var exportText bool
	exportCmd := &cobra.Command{
		Use:          "export",
		Short:        "Export the league to an Excel workbook or text file",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, st, err := loadLeague(dataDir, leagueFile)
			if err != nil {
				return err
			}
			if exportText {
				path, err := st.ExportText(l, exportPath)
				if err != nil {
					return err
				}
				fmt.Printf("✓ Exported to %s\n", path)
				return nil
			}

			f, err := excel.Generate(l, standings.NewManager(l).TableData())
			if err != nil {
				return fmt.Errorf("generating Excel: %w", err)
			}
			out := exportPath
			if out == "" {
				out = "league.xlsx"
			}
			if err := f.SaveAs(out); err != nil {
				return fmt.Errorf("saving file: %w", err)
			}
			fmt.Printf("✓ Exported to %s\n", out)
			return nil
		},
	}
	exportCmd.Flags().StringVarP(&exportPath, "output", "o", "", "Output path")
	exportCmd.Flags().BoolVar(&exportText, "text", false, "Export a plain-text summary instead of Excel")

	rootCmd.AddCommand(initCmd, createCmd, teamCmd, fixturesCmd, recordCmd, tableCmd, formCmd, reportCmd, exportCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseStart(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start date %q: expected YYYY-MM-DD", s)
	}
	return t, nil
}

func loadLeague(dataDir, filename string) (*domain.League, *store.Store, error) {
	st, err := store.New(dataDir)
	if err != nil {
		return nil, nil, err
	}
	l, err := st.Load(filename)
	if err != nil {
		return nil, nil, err
	}
	return l, st, nil
}

// withLeague loads the league, applies fn, and saves only when fn succeeds.
func withLeague(dataDir, filename string, fn func(*domain.League) error) error {
	l, st, err := loadLeague(dataDir, filename)
	if err != nil {
		return err
	}
	if err := fn(l); err != nil {
		return err
	}
	if _, err := st.Save(l, filename); err != nil {
		return err
	}
	return nil
}

func runInit(outputPath string) error {
	if _, err := os.Stat(outputPath); err == nil {
		return fmt.Errorf("%s already exists; remove it first or use -o to write elsewhere", outputPath)
	}

	if err := os.WriteFile(outputPath, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Printf("✓ Created %s\n", outputPath)
	return nil
}

const configTemplate = `# League Configuration
# ====================
# This file defines a league and the parameters used when generating its
# round-robin fixture list.

league:
  name: "Premier Division"
  season: "2026-2027"

# First match week starts on this date; each following week adds 7 days.
# Omit to start from the day fixtures are generated.
start_date: "2026-08-15"

# Teams must have unique names. An even number of teams is required before
# fixtures can be generated.
teams:
  - name: Arsenal
    stadium: Emirates Stadium
  - name: Chelsea
    stadium: Stamford Bridge
  - name: Liverpool
    stadium: Anfield
  - name: Manchester United
    stadium: Old Trafford

# Rules tune the home/away balancer. A swap is considered once a team has
# hosted this many consecutive matches.
rules:
  home_streak_swap_threshold: 2
  away_streak_swap_threshold: 2

# Guidelines are soft constraints checked by the diagnostics reports.
# Violations are reported, never enforced.
guidelines:
  min_rest_days: 3
  min_weeks_between_same_opponent: 3
  max_consecutive_same_venue: 3
  congestion_threshold: 3
  trend_window: 5
`

func runCreate(configPath, dataDir, filename string) error {
	cfg, err := config.LoadFromFile(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	l, err := domain.NewLeague(cfg.League.Name, cfg.League.Season)
	if err != nil {
		return err
	}
	for _, entry := range cfg.Teams {
		if err := l.AddTeam(domain.NewTeam(entry.Name, entry.Stadium)); err != nil {
			return fmt.Errorf("adding team %q: %w", entry.Name, err)
		}
	}

	st, err := store.New(dataDir)
	if err != nil {
		return err
	}
	path, err := st.Save(l, filename)
	if err != nil {
		return err
	}

	fmt.Printf("✓ Created %s (%s) with %d teams\n", l.Name, l.Season, len(l.Teams))
	fmt.Printf("✓ Saved to %s\n", path)
	return nil
}

func runReport(kind string, l *domain.League, guidelines config.Guidelines, reportDir string) error {
	engine, err := diagnostics.NewEngine(reportDir, guidelines)
	if err != nil {
		return err
	}

	switch kind {
	case "anomalies":
		results, err := engine.DetectAnomalies(l)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("✓ No anomalies detected")
			return nil
		}
		for _, a := range results {
			fmt.Printf("[%s] %s: %s\n", a.Severity, a.Type, a.Description)
		}

	case "workload":
		results, err := engine.AnalyzeWorkload(l)
		if err != nil {
			return err
		}
		fmt.Printf("%-25s %7s %10s %6s\n", "Team", "Matches", "Travel km", "Rest")
		for _, m := range results {
			fmt.Printf("%-25s %7d %10.0f %6.1f\n", m.TeamName, m.TotalMatches, m.TotalTravelKm, m.AvgRestDays)
		}

	case "congestion":
		results, err := engine.DetectCongestion(l)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("✓ No congestion zones detected")
			return nil
		}
		for _, z := range results {
			fmt.Printf("[%s] %s: %d matches in weeks %d-%d (density %.2f)\n",
				z.Severity, z.TeamName, z.Matches, z.StartWeek, z.EndWeek, z.Density)
		}

	case "compliance":
		results, err := engine.CheckCompliance(l)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Println("✓ No guideline violations")
			return nil
		}
		for _, v := range results {
			fmt.Printf("[%s] %s (%s): %s\n", v.Severity, v.Rule, v.TeamName, v.Description)
		}

	case "trends":
		results, err := engine.PredictTrends(l)
		if err != nil {
			return err
		}
		fmt.Printf("%-25s %9s %10s %9s %8s\n", "Team", "Form", "Trend", "Win prob", "Next 5")
		for _, p := range results {
			fmt.Printf("%-25s %9s %10s %8.0f%% %8.1f\n",
				p.TeamName, p.FormLabel, p.Trend, p.WinProbability*100, p.ExpectedPointsNext)
		}

	case "summary":
		rankings := standings.NewManager(l).Rankings()
		s, err := engine.Summarize(l, rankings)
		if err != nil {
			return err
		}
		fmt.Printf("%s %s: %d/%d matches played, %d goals (%.2f per match)\n",
			s.LeagueName, s.Season, s.PlayedMatches, s.TotalMatches, s.TotalGoals, s.AvgGoals)
		fmt.Printf("Home wins %d, away wins %d, draws %d\n", s.HomeWins, s.AwayWins, s.Draws)
		for key, v := range s.Highlights {
			fmt.Printf("  %s: %s\n", key, v)
		}
		for _, t := range s.TopTeams {
			fmt.Printf("  %s\n", t)
		}

	default:
		return fmt.Errorf("unknown report %q (expected anomalies, workload, congestion, compliance, trends, or summary)", kind)
	}
	return nil
}
