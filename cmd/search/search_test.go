package search

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/endorses/patmatch/internal/pkg/render"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func decodeRows(t *testing.T, out string) []render.MatchRow {
	t.Helper()
	var rows []render.MatchRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	return rows
}

func TestFind_SinglePattern(t *testing.T) {
	for _, algorithm := range []string{"brute-force", "kmp", "boyer-moore", "rabin-karp", "aho-corasick"} {
		t.Run(algorithm, func(t *testing.T) {
			rows, err := Find([]byte("aaaa"), []string{"aa"}, algorithm, false)
			require.NoError(t, err)
			require.Len(t, rows, 1)
			assert.Equal(t, algorithm, rows[0].Algorithm)
			assert.Equal(t, []int{0, 1, 2}, rows[0].Positions)
		})
	}
}

func TestFind_MultiplePatterns(t *testing.T) {
	rows, err := Find([]byte("ahishers"), []string{"he", "she", "his", "hers", "she", "xyz"}, "kmp", false)
	require.NoError(t, err)

	assert.Equal(t, []render.MatchRow{
		{Pattern: "he", Algorithm: "aho-corasick", Positions: []int{4}},
		{Pattern: "she", Algorithm: "aho-corasick", Positions: []int{3}},
		{Pattern: "his", Algorithm: "aho-corasick", Positions: []int{1}},
		{Pattern: "hers", Algorithm: "aho-corasick", Positions: []int{4}},
		{Pattern: "xyz", Algorithm: "aho-corasick", Positions: nil},
	}, rows)
}

func TestFind_Dense(t *testing.T) {
	sparse, err := Find([]byte("ahishers"), []string{"he", "she", "his", "hers"}, "kmp", false)
	require.NoError(t, err)
	dense, err := Find([]byte("ahishers"), []string{"he", "she", "his", "hers"}, "kmp", true)
	require.NoError(t, err)

	require.Len(t, dense, len(sparse))
	for i := range dense {
		assert.Equal(t, "aho-corasick/dense", dense[i].Algorithm)
		assert.Equal(t, sparse[i].Pattern, dense[i].Pattern)
		assert.Equal(t, sparse[i].Positions, dense[i].Positions)
	}
}

func TestFind_UnknownAlgorithm(t *testing.T) {
	_, err := Find([]byte("abc"), []string{"a"}, "quick", false)
	assert.ErrorContains(t, err, "unknown algorithm")
}

func TestSearch_TextJSON(t *testing.T) {
	out, err := execute(t, "", "--text", "ababababa", "-p", "aba", "--json")
	require.NoError(t, err)

	rows := decodeRows(t, out)
	require.Len(t, rows, 1)
	assert.Equal(t, "kmp", rows[0].Algorithm)
	assert.Equal(t, []int{0, 2, 4, 6}, rows[0].Positions)
}

func TestSearch_FileTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "text.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0600))

	out, err := execute(t, "", "--file", path, "-p", "world", "-a", "boyer-moore")
	require.NoError(t, err)
	assert.Contains(t, out, "boyer-moore")
	assert.Contains(t, out, "world")
	assert.Contains(t, out, "6")
}

func TestSearch_Stdin(t *testing.T) {
	out, err := execute(t, "xxneedlexxneedle", "--file", "-", "-p", "needle", "-p", "xx", "--json")
	require.NoError(t, err)

	rows := decodeRows(t, out)
	require.Len(t, rows, 2)
	assert.Equal(t, []int{2, 10}, rows[0].Positions)
	assert.Equal(t, []int{0, 8}, rows[1].Positions)
}

func TestSearch_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "no pattern", args: []string{"--text", "abc"}, want: "--pattern is required"},
		{name: "no text", args: []string{"-p", "a"}, want: "--text or --file is required"},
		{name: "both sources", args: []string{"--text", "a", "--file", "x", "-p", "a"}, want: "mutually exclusive"},
		{name: "missing file", args: []string{"--file", "/nonexistent/text", "-p", "a"}, want: "failed to read text file"},
		{name: "unknown algorithm", args: []string{"--text", "abc", "-p", "a", "-a", "quick"}, want: "unknown algorithm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
