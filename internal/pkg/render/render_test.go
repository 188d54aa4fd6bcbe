package render

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"github.com/endorses/patmatch/internal/pkg/benchmark"
)

func sampleReport() *benchmark.Report {
	cfg := benchmark.DefaultConfig()
	cfg.Algorithms = []string{"kmp", "boyer-moore"}
	cfg.TextSizes = []int{1000, 10000}
	return &benchmark.Report{
		Config: cfg,
		Sizes: []benchmark.SizeResult{
			{TextSize: 1000, Results: []benchmark.Result{
				{Algorithm: "kmp", Duration: 1500 * time.Microsecond},
				{Algorithm: "boyer-moore", Duration: 250 * time.Microsecond},
			}},
			{TextSize: 10000, Results: []benchmark.Result{
				{Algorithm: "kmp", Duration: 12 * time.Millisecond},
			}},
		},
	}
}

func TestComparisonTable(t *testing.T) {
	out := ComparisonTable(sampleReport())

	assert.Contains(t, out, "Mean search time (ms), pattern size 10, 5 runs")
	for _, want := range []string{"Text size", "kmp", "boyer-moore", "Fastest", "1000", "10000", "1.5000", "0.2500", "12.0000"} {
		assert.Contains(t, out, want)
	}

	// boyer-moore did not run at 10000
	lines := strings.Split(out, "\n")
	var row string
	for _, line := range lines {
		if strings.Contains(line, "12.0000") {
			row = line
		}
	}
	assert.Contains(t, row, "-")
}

func TestComparisonTable_ColumnsAligned(t *testing.T) {
	out := ComparisonTable(sampleReport())
	lines := strings.Split(out, "\n")[1:]

	width := lipgloss.Width(lines[0])
	for _, line := range lines {
		assert.Equal(t, width, lipgloss.Width(line), "line %q", line)
	}
}

func TestMatchTable(t *testing.T) {
	out := MatchTable([]MatchRow{
		{Pattern: "aba", Algorithm: "kmp", Positions: []int{0, 2, 4}},
		{Pattern: "zzz", Algorithm: "kmp"},
	})

	assert.Contains(t, out, "Pattern")
	assert.Contains(t, out, "0, 2, 4")
	assert.Contains(t, out, "zzz")
	assert.NotContains(t, out, "Source")
}

func TestMatchTable_WithSource(t *testing.T) {
	out := MatchTable([]MatchRow{
		{Source: "packet 3", Pattern: "GET ", Algorithm: "aho-corasick", Positions: []int{0}},
	})
	assert.Contains(t, out, "Source")
	assert.Contains(t, out, "packet 3")
}

func TestFormatPositions(t *testing.T) {
	assert.Equal(t, "-", formatPositions(nil))
	assert.Equal(t, "1, 2", formatPositions([]int{1, 2}))

	many := make([]int, 12)
	for i := range many {
		many[i] = i
	}
	assert.Equal(t, "0, 1, 2, 3, 4, 5, 6, 7, 8, 9, ... (+2)", formatPositions(many))
}

func TestSanitizeAndTruncate(t *testing.T) {
	assert.Equal(t, "plain", sanitize("plain"))
	assert.Equal(t, "a.b.", sanitize("a\x00b\n"))

	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd...", truncate("abcdefghij", 7))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}
