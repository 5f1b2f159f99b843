package excel

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"github.com/neelu1616/flsa/internal/domain"
	"github.com/neelu1616/flsa/internal/standings"
)

// Generate creates an Excel workbook with the fixture list, the standings
// table, and a sheet per team.
func Generate(l *domain.League, table []standings.Row) (*excelize.File, error) {
	f := excelize.NewFile()

	// Set default font for the workbook
	f.SetDefaultFont("Arial")

	if err := writeFixturesSheet(f, l); err != nil {
		return nil, fmt.Errorf("writing fixtures sheet: %w", err)
	}

	if err := writeStandingsSheet(f, table); err != nil {
		return nil, fmt.Errorf("writing standings sheet: %w", err)
	}

	if err := writeTeamSheets(f, l); err != nil {
		return nil, fmt.Errorf("writing team sheets: %w", err)
	}

	f.DeleteSheet("Sheet1")
	return f, nil
}

func newHeaderStyle(f *excelize.File) int {
	style, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 12, Family: "Arial"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#4472C4"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	return style
}

func writeHeaders(f *excelize.File, sheet string, headers []string) {
	for i, h := range headers {
		f.SetCellValue(sheet, cellRef(i+1, 1), h)
	}
	if style := newHeaderStyle(f); style != 0 {
		f.SetCellStyle(sheet, cellRef(1, 1), cellRef(len(headers), 1), style)
	}
}

func scoreLabel(m *domain.Match) string {
	if !m.IsPlayed() {
		return "-"
	}
	return fmt.Sprintf("%d - %d", *m.HomeScore, *m.AwayScore)
}

func statusLabel(m *domain.Match) string {
	if m.IsPlayed() {
		return "Played"
	}
	return "Scheduled"
}

func writeFixturesSheet(f *excelize.File, l *domain.League) error {
	sheet := "Fixtures"
	f.NewSheet(sheet)

	writeHeaders(f, sheet, []string{"Week", "Date", "Home", "Score", "Away", "Status"})

	matches := make([]*domain.Match, len(l.Matches))
	copy(matches, l.Matches)
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Week != matches[j].Week {
			return matches[i].Week < matches[j].Week
		}
		return matches[i].ID < matches[j].ID
	})

	centered, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Size: 12, Family: "Arial"},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})

	for i, m := range matches {
		row := i + 2
		f.SetCellValue(sheet, cellRef(1, row), m.Week)
		f.SetCellValue(sheet, cellRef(2, row), m.ScheduledDate)
		f.SetCellValue(sheet, cellRef(3, row), m.HomeTeamName)
		f.SetCellValue(sheet, cellRef(4, row), scoreLabel(m))
		f.SetCellValue(sheet, cellRef(5, row), m.AwayTeamName)
		f.SetCellValue(sheet, cellRef(6, row), statusLabel(m))
		if centered != 0 {
			f.SetCellStyle(sheet, cellRef(1, row), cellRef(1, row), centered)
			f.SetCellStyle(sheet, cellRef(4, row), cellRef(4, row), centered)
		}
	}

	widths := map[string]float64{"A": 8, "B": 14, "C": 26, "D": 10, "E": 26, "F": 12}
	for col, w := range widths {
		f.SetColWidth(sheet, col, col, w)
	}
	return nil
}

func writeStandingsSheet(f *excelize.File, table []standings.Row) error {
	sheet := "Standings"
	f.NewSheet(sheet)

	writeHeaders(f, sheet, []string{"Pos", "Team", "P", "W", "D", "L", "GF", "GA", "GD", "Pts"})

	for i, r := range table {
		row := i + 2
		f.SetCellValue(sheet, cellRef(1, row), r.Position)
		f.SetCellValue(sheet, cellRef(2, row), r.Team)
		f.SetCellValue(sheet, cellRef(3, row), r.Played)
		f.SetCellValue(sheet, cellRef(4, row), r.Won)
		f.SetCellValue(sheet, cellRef(5, row), r.Drawn)
		f.SetCellValue(sheet, cellRef(6, row), r.Lost)
		f.SetCellValue(sheet, cellRef(7, row), r.GoalsFor)
		f.SetCellValue(sheet, cellRef(8, row), r.GoalsAgainst)
		f.SetCellValue(sheet, cellRef(9, row), r.GoalDifference)
		f.SetCellValue(sheet, cellRef(10, row), r.Points)
	}

	f.SetColWidth(sheet, "A", "A", 6)
	f.SetColWidth(sheet, "B", "B", 26)
	f.SetColWidth(sheet, "C", "J", 6)
	return nil
}

func writeTeamSheets(f *excelize.File, l *domain.League) error {
	for _, team := range l.Teams {
		sheet := team.Name
		f.NewSheet(sheet)

		writeHeaders(f, sheet, []string{"Week", "Date", "Opponent", "Venue", "Score", "Result"})

		var matches []*domain.Match
		for _, m := range l.Matches {
			if m.HomeTeamID == team.ID || m.AwayTeamID == team.ID {
				matches = append(matches, m)
			}
		}
		sort.SliceStable(matches, func(i, j int) bool { return matches[i].Week < matches[j].Week })

		for i, m := range matches {
			row := i + 2
			opponent := m.AwayTeamName
			venue := "Home"
			if m.AwayTeamID == team.ID {
				opponent = m.HomeTeamName
				venue = "Away"
			}

			result := ""
			if m.IsPlayed() {
				ours, theirs := *m.HomeScore, *m.AwayScore
				if m.AwayTeamID == team.ID {
					ours, theirs = theirs, ours
				}
				switch {
				case ours > theirs:
					result = "W"
				case ours < theirs:
					result = "L"
				default:
					result = "D"
				}
			}

			f.SetCellValue(sheet, cellRef(1, row), m.Week)
			f.SetCellValue(sheet, cellRef(2, row), m.ScheduledDate)
			f.SetCellValue(sheet, cellRef(3, row), opponent)
			f.SetCellValue(sheet, cellRef(4, row), venue)
			f.SetCellValue(sheet, cellRef(5, row), scoreLabel(m))
			f.SetCellValue(sheet, cellRef(6, row), result)
		}

		widths := map[string]float64{"A": 8, "B": 14, "C": 26, "D": 10, "E": 10, "F": 8}
		for col, w := range widths {
			f.SetColWidth(sheet, col, col, w)
		}
	}
	return nil
}

func cellRef(col, row int) string {
	return fmt.Sprintf("%s%d", colLetter(col), row)
}

func colLetter(col int) string {
	result := ""
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
