package validate

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/endorses/patmatch/internal/pkg/benchmark"
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

func TestValidate_GivenInput(t *testing.T) {
	out, err := execute(t, "--text", "ABABDABACDABABCABAB", "--pattern", "ABABCABAB", "--json")
	require.NoError(t, err)

	var v benchmark.Validation
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.True(t, v.OK())
	assert.Equal(t, "brute-force", v.Reference)
	assert.Equal(t, []int{10}, v.Expected)
	assert.Len(t, v.Order, 5)
}

func TestValidate_Generated(t *testing.T) {
	out, err := execute(t, "--text-size", "2K", "--pattern-size", "6", "--occurrences", "4", "-a", "kmp,rabin-karp", "--json")
	require.NoError(t, err)

	var v benchmark.Validation
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.Equal(t, "kmp", v.Reference)
	assert.Equal(t, []string{"kmp", "rabin-karp"}, v.Order)
	assert.NotEmpty(t, v.Expected)
}

func TestValidate_WorstCaseTable(t *testing.T) {
	out, err := execute(t, "--worst-case", "brute-force", "--text-size", "300", "--pattern-size", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "AAAAB")
	assert.Contains(t, out, "boyer-moore (ok)")
	assert.NotContains(t, out, "MISMATCH")
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "text without pattern", args: []string{"--text", "abc"}, want: "--pattern is required"},
		{name: "bad size", args: []string{"--text-size", "lots"}, want: "invalid --text-size"},
		{name: "unknown algorithm", args: []string{"-a", "nope"}, want: "unknown algorithm"},
		{name: "too many occurrences", args: []string{"--text-size", "10", "--pattern-size", "5", "--occurrences", "3"}, want: "too small"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
