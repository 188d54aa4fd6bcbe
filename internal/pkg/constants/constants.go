// Package constants provides shared defaults used across patmatch components.
package constants

// Benchmark defaults
const (
	// DefaultTextSize is the generated text length when none is configured
	DefaultTextSize = 100000

	// DefaultPatternSize is the generated pattern length when none is configured
	DefaultPatternSize = 10

	// DefaultNumTests is how many timed runs are averaged per measurement
	DefaultNumTests = 5

	// DefaultSeed makes generated data reproducible between runs
	DefaultSeed = 42

	// MaxRecommendedTextSize is the largest text the harness generates without a
	// warning (10MB)
	MaxRecommendedTextSize = 10 * 1000 * 1000
)

// DefaultCharset is the alphabet used for generated text and patterns
// (English letters, both cases).
const DefaultCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// DefaultTextSizes are the text lengths swept by a comparison run.
var DefaultTextSizes = []int{1000, 10000, 100000, 1000000}

// Rolling hash configuration
const (
	// DefaultHashBase is the radix of the Rabin-Karp polynomial hash, one digit
	// per byte value
	DefaultHashBase = 256

	// LargePrime is the default Rabin-Karp modulus
	LargePrime = 1000000007
)

// Output formats accepted by commands that emit reports
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// Signal handling
const (
	// SignalChannelBuffer is the buffer size of the termination signal channel
	SignalChannelBuffer = 1
)
