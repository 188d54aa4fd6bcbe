// Package render formats reports and match listings as terminal tables.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/endorses/patmatch/internal/pkg/benchmark"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle    = lipgloss.NewStyle().Padding(0, 1)
	numberStyle  = cellStyle.Align(lipgloss.Right)
	fastestStyle = numberStyle.Foreground(lipgloss.Color("42"))
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
)

// maxPositions limits how many offsets a match row lists before eliding.
const maxPositions = 10

// ComparisonTable renders one row per text size and one column per algorithm,
// with mean durations in milliseconds. The fastest cell of each row is highlighted.
func ComparisonTable(report *benchmark.Report) string {
	algorithms := report.Config.Algorithms
	fastest := report.Fastest()

	headers := append([]string{"Text size"}, algorithms...)
	headers = append(headers, "Fastest")

	rows := make([][]string, len(report.Sizes))
	for i, size := range report.Sizes {
		row := []string{strconv.Itoa(size.TextSize)}
		for _, name := range algorithms {
			row = append(row, formatMillis(size, name))
		}
		rows[i] = append(row, fastest[i])
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return numberStyle
			case col == len(headers)-1:
				return cellStyle
			case algorithms[col-1] == fastest[row]:
				return fastestStyle
			}
			return numberStyle
		})

	title := titleStyle.Render(fmt.Sprintf("Mean search time (ms), pattern size %d, %d runs",
		report.Config.PatternSize, report.Config.NumTests))
	return lipgloss.JoinVertical(lipgloss.Left, title, t.String())
}

func formatMillis(size benchmark.SizeResult, algorithm string) string {
	for _, r := range size.Results {
		if r.Algorithm == algorithm {
			return strconv.FormatFloat(r.Millis(), 'f', 4, 64)
		}
	}
	return "-"
}

// MatchRow is one line of a match listing.
type MatchRow struct {
	Source    string `json:"source,omitempty" yaml:"source,omitempty"`
	Pattern   string `json:"pattern" yaml:"pattern"`
	Algorithm string `json:"algorithm" yaml:"algorithm"`
	Positions []int  `json:"positions" yaml:"positions"`
}

// MatchTable renders match rows. The Source column is only shown when some row
// sets it.
func MatchTable(rows []MatchRow) string {
	withSource := false
	for _, r := range rows {
		if r.Source != "" {
			withSource = true
			break
		}
	}

	headers := []string{"Pattern", "Algorithm", "Matches", "Positions"}
	if withSource {
		headers = append([]string{"Source"}, headers...)
	}

	data := make([][]string, len(rows))
	for i, r := range rows {
		row := []string{
			truncate(sanitize(r.Pattern), 32),
			r.Algorithm,
			strconv.Itoa(len(r.Positions)),
			formatPositions(r.Positions),
		}
		if withSource {
			row = append([]string{r.Source}, row...)
		}
		data[i] = row
	}

	countCol := len(headers) - 2
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(data...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == countCol:
				return numberStyle
			}
			return cellStyle
		})
	return t.String()
}

func formatPositions(positions []int) string {
	if len(positions) == 0 {
		return "-"
	}
	shown := positions
	if len(shown) > maxPositions {
		shown = shown[:maxPositions]
	}
	parts := make([]string, len(shown))
	for i, p := range shown {
		parts[i] = strconv.Itoa(p)
	}
	out := strings.Join(parts, ", ")
	if len(positions) > maxPositions {
		out += fmt.Sprintf(", ... (+%d)", len(positions)-maxPositions)
	}
	return out
}

// sanitize replaces control bytes so binary patterns cannot break the layout.
func sanitize(s string) string {
	clean := true
	for _, r := range s {
		if r < 32 || r == 127 || r == 0xFFFD {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r < 32, r == 127:
			runes[i] = '.'
		case r == 0xFFFD:
			runes[i] = '?'
		}
	}
	return string(runes)
}

// truncate shortens s to width cells, ending in "..." when cut.
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	if width <= 3 {
		return string([]rune(s)[:width])
	}

	var b strings.Builder
	for _, r := range s {
		if lipgloss.Width(b.String()+string(r)) > width-3 {
			break
		}
		b.WriteRune(r)
	}
	return b.String() + "..."
}
