// Package datagen produces reproducible inputs for the matchers: random texts
// and patterns, texts with planted occurrences, and per-algorithm worst cases.
package datagen

import (
	"bytes"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"strings"

	"github.com/endorses/patmatch/internal/pkg/algorithms"
	"github.com/endorses/patmatch/internal/pkg/constants"
)

var (
	// ErrInvalidSize is returned for non-positive sizes, counts or empty patterns.
	ErrInvalidSize = errors.New("size must be greater than zero")

	// ErrTooManyOccurrences is returned when the text cannot hold the requested
	// number of non-overlapping pattern copies.
	ErrTooManyOccurrences = errors.New("text too small for requested occurrences")
)

// Generator draws bytes from a fixed charset with a seeded source. The same seed
// and charset always produce the same sequence of outputs.
//
// A Generator is not safe for concurrent use.
type Generator struct {
	rng     *rand.Rand
	charset []byte
}

// New returns a generator seeded with seed. An empty charset selects
// constants.DefaultCharset.
func New(seed int64, charset string) *Generator {
	if charset == "" {
		charset = constants.DefaultCharset
	}
	return &Generator{
		rng:     rand.New(rand.NewSource(seed)),
		charset: []byte(charset),
	}
}

// Charset returns the characters the generator draws from.
func (g *Generator) Charset() string {
	return string(g.charset)
}

// RandomText returns size bytes drawn uniformly from the charset.
func (g *Generator) RandomText(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("text: %w", ErrInvalidSize)
	}
	return g.fill(size), nil
}

// RandomPattern returns a pattern of size bytes drawn from the charset.
func (g *Generator) RandomPattern(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("pattern: %w", ErrInvalidSize)
	}
	return g.fill(size), nil
}

func (g *Generator) fill(size int) []byte {
	out := make([]byte, size)
	for i := range out {
		out[i] = g.charset[g.rng.Intn(len(g.charset))]
	}
	return out
}

// TextWithPattern generates a random text of textSize bytes and writes pattern at
// occurrences distinct start offsets chosen uniformly at random. The offsets are
// returned in ascending order, as written. Copies may overlap, in which case a later
// copy overwrites the tail of an earlier one; random filler may also create
// additional occurrences that are not reported.
func (g *Generator) TextWithPattern(textSize int, pattern []byte, occurrences int) ([]byte, []int, error) {
	if textSize <= 0 {
		return nil, nil, fmt.Errorf("text: %w", ErrInvalidSize)
	}
	if occurrences <= 0 {
		return nil, nil, fmt.Errorf("occurrences: %w", ErrInvalidSize)
	}
	m := len(pattern)
	if m == 0 {
		return nil, nil, fmt.Errorf("pattern: %w", ErrInvalidSize)
	}
	if textSize < m*occurrences {
		return nil, nil, fmt.Errorf("%w: %d bytes cannot hold %d copies of a %d-byte pattern",
			ErrTooManyOccurrences, textSize, occurrences, m)
	}

	text := g.fill(textSize)
	positions := g.sample(textSize-m+1, occurrences)
	for _, pos := range positions {
		copy(text[pos:pos+m], pattern)
	}
	return text, positions, nil
}

// sample picks k distinct values from [0, n) using Floyd's algorithm and returns
// them sorted.
func (g *Generator) sample(n, k int) []int {
	chosen := make(map[int]struct{}, k)
	out := make([]int, 0, k)
	for j := n - k; j < n; j++ {
		t := g.rng.Intn(j + 1)
		if _, ok := chosen[t]; ok {
			t = j
		}
		chosen[t] = struct{}{}
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// WorstCase returns a text and pattern shaped to push the named algorithm towards
// its worst-case behaviour:
//
//   - brute-force: pattern A^(m-1)B against repeated blocks A^(m-1)C
//   - kmp, rabin-karp: pattern A^m against A^n
//   - boyer-moore: pattern A^(m-1)B against A^n
//
// Any other name yields a random text and pattern from the generator.
func (g *Generator) WorstCase(algorithm string, textSize, patternSize int) (text, pattern []byte, err error) {
	if textSize <= 0 {
		return nil, nil, fmt.Errorf("text: %w", ErrInvalidSize)
	}
	if patternSize <= 0 {
		return nil, nil, fmt.Errorf("pattern: %w", ErrInvalidSize)
	}

	a := []byte("A")
	switch normalize(algorithm) {
	case algorithms.BruteForce:
		pattern = append(bytes.Repeat(a, patternSize-1), 'B')
		block := append(bytes.Repeat(a, patternSize-1), 'C')
		text = bytes.Repeat(block, textSize/patternSize)
	case algorithms.KMP, "knuth-morris-pratt", algorithms.RabinKarp:
		pattern = bytes.Repeat(a, patternSize)
		text = bytes.Repeat(a, textSize)
	case algorithms.BoyerMoore:
		pattern = append(bytes.Repeat(a, patternSize-1), 'B')
		text = bytes.Repeat(a, textSize)
	default:
		text = g.fill(textSize)
		pattern = g.fill(patternSize)
	}
	return text, pattern, nil
}

func normalize(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}
