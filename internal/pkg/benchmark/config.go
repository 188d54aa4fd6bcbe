package benchmark

import (
	"fmt"

	"github.com/endorses/patmatch/internal/pkg/constants"
)

// Config describes a comparison run.
type Config struct {
	TextSizes   []int    `json:"text_sizes" yaml:"text_sizes"`
	PatternSize int      `json:"pattern_size" yaml:"pattern_size"`
	NumTests    int      `json:"num_tests" yaml:"num_tests"`
	Seed        int64    `json:"seed" yaml:"seed"`
	Charset     string   `json:"charset,omitempty" yaml:"charset,omitempty"`
	Algorithms  []string `json:"algorithms" yaml:"algorithms"`
	// WorstCase replaces random inputs with the worst-case shape of this algorithm.
	WorstCase string `json:"worst_case,omitempty" yaml:"worst_case,omitempty"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		TextSizes:   append([]int(nil), constants.DefaultTextSizes...),
		PatternSize: constants.DefaultPatternSize,
		NumTests:    constants.DefaultNumTests,
		Seed:        constants.DefaultSeed,
		Charset:     constants.DefaultCharset,
	}
}

// Validate checks sizes and counts.
func (c Config) Validate() error {
	if len(c.TextSizes) == 0 {
		return fmt.Errorf("at least one text size is required")
	}
	for _, size := range c.TextSizes {
		if size <= 0 {
			return fmt.Errorf("text size %d must be greater than zero", size)
		}
	}
	if c.PatternSize <= 0 {
		return fmt.Errorf("pattern size %d must be greater than zero", c.PatternSize)
	}
	if c.NumTests <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRuns, c.NumTests)
	}
	return nil
}
