package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/endorses/patmatch/internal/pkg/logger"
)

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	cfgFile = ""
	t.Cleanup(func() {
		viper.Reset()
		cfgFile = ""
		_ = logger.SetLevel("info")
	})

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		contains []string
	}{
		{name: "no arguments shows help", args: nil, contains: []string{"patmatch finds every occurrence", "bench", "search", "scan", "validate", "generate"}},
		{name: "help flag", args: []string{"--help"}, contains: []string{"--config", "--log-level"}},
		{name: "subcommand help", args: []string{"bench", "--help"}, contains: []string{"--pattern-size", "--num-tests", "--sizes"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeRoot(t, tt.args...)
			require.NoError(t, err)
			for _, want := range tt.contains {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := executeRoot(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "patmatch dev")
	assert.Contains(t, out, "cpu features:")
}

func TestVersionCommand_JSON(t *testing.T) {
	out, err := executeRoot(t, "version", "--json")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "dev", decoded["version"])
	assert.Contains(t, decoded, "cpu")
	assert.Contains(t, decoded, "go_version")
}

func TestLogLevelFlag(t *testing.T) {
	_, err := executeRoot(t, "--log-level", "verbose", "version")
	assert.ErrorContains(t, err, "unknown log level")

	_, err = executeRoot(t, "--log-level", "warn", "version")
	require.NoError(t, err)
}

func TestInitConfig_ReadsFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(func() {
		viper.Reset()
		cfgFile = ""
	})

	path := filepath.Join(t.TempDir(), "patmatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bench:\n  num_tests: 3\nsearch:\n  algorithm: boyer-moore\n"), 0600))

	cfgFile = path
	initConfig()

	assert.Equal(t, path, viper.ConfigFileUsed())
	assert.Equal(t, 3, viper.GetInt("bench.num_tests"))
	assert.Equal(t, "boyer-moore", viper.GetString("search.algorithm"))
}

func TestInitConfig_EnvOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(func() {
		viper.Reset()
		cfgFile = ""
	})
	t.Setenv("PATMATCH_BENCH_NUM_TESTS", "9")
	t.Setenv("HOME", t.TempDir())

	cfgFile = ""
	initConfig()

	assert.Equal(t, 9, viper.GetInt("bench.num_tests"))
}
