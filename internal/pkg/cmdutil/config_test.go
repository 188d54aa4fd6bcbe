package cmdutil

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		input    string
		expected int
		wantErr  bool
	}{
		{input: "1000", expected: 1000},
		{input: "10K", expected: 10000},
		{input: "10k", expected: 10000},
		{input: " 1M ", expected: 1000000},
		{input: "2G", expected: 2000000000},
		{input: "", wantErr: true},
		{input: "K", wantErr: true},
		{input: "abc", wantErr: true},
		{input: "0", wantErr: true},
		{input: "-5", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSize(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseSizes(t *testing.T) {
	sizes, err := ParseSizes([]string{"1K,10K", "100000", ""})
	require.NoError(t, err)
	assert.Equal(t, []int{1000, 10000, 100000}, sizes)

	_, err = ParseSizes([]string{"1K,bad"})
	assert.ErrorContains(t, err, `size "bad"`)
}

func TestConfigFallbacks(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	assert.Equal(t, "flag", GetStringConfig("bench.format", "flag"))
	assert.Equal(t, "", GetStringConfig("bench.format", ""))
	assert.Equal(t, 7, GetIntConfig("bench.num_tests", 7))
	assert.Equal(t, int64(42), GetInt64Config("bench.seed", 42))
	assert.Nil(t, GetStringSliceConfig("bench.algorithms", nil))

	viper.Set("bench.format", "yaml")
	viper.Set("bench.num_tests", 3)
	viper.Set("bench.seed", 9)
	viper.Set("bench.algorithms", []string{"kmp"})

	assert.Equal(t, "yaml", GetStringConfig("bench.format", ""))
	assert.Equal(t, 3, GetIntConfig("bench.num_tests", 7))
	assert.Equal(t, int64(9), GetInt64Config("bench.seed", 42))
	assert.Equal(t, []string{"kmp"}, GetStringSliceConfig("bench.algorithms", nil))
	assert.Equal(t, []string{"bm"}, GetStringSliceConfig("bench.algorithms", []string{"bm"}))
}

func TestBindFlags(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("num-tests", 5, "")
	flags.String("format", "table", "")
	require.NoError(t, BindFlags(flags, "bench", "num-tests", "format"))

	assert.Equal(t, 5, viper.GetInt("bench.num_tests"))
	require.NoError(t, flags.Parse([]string{"--format", "json"}))
	assert.Equal(t, "json", viper.GetString("bench.format"))

	assert.ErrorContains(t, BindFlags(flags, "bench", "missing"), `unknown flag "missing"`)
}
