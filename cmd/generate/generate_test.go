package generate

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGenerate_Random(t *testing.T) {
	out, err := execute(t, "--size", "1K", "--charset", "ab")
	require.NoError(t, err)
	assert.Len(t, out, 1000)
	assert.Empty(t, strings.Trim(out, "ab"))

	again, err := execute(t, "--size", "1K", "--charset", "ab")
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestGenerate_WithPattern(t *testing.T) {
	out, err := execute(t, "--size", "500", "--charset", "xy", "--pattern", "NEEDLE", "--occurrences", "3")
	require.NoError(t, err)
	assert.Len(t, out, 500)
	assert.Contains(t, out, "NEEDLE")
}

func TestGenerate_WorstCaseToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "text.txt")
	out, err := execute(t, "--size", "12", "--worst-case", "brute-force", "--pattern-size", "4", "-o", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "AAACAAACAAAC", string(data))
}

func TestGenerate_Errors(t *testing.T) {
	_, err := execute(t, "--size", "0")
	assert.ErrorContains(t, err, "invalid --size")

	_, err = execute(t, "--size", "4", "--pattern", "abc", "--occurrences", "2")
	assert.ErrorContains(t, err, "too small")

	_, err = execute(t, "--size", "10", "--worst-case", "kmp", "--pattern-size", "0")
	assert.ErrorContains(t, err, "greater than zero")
}
