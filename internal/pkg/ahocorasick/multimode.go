package ahocorasick

import (
	"github.com/endorses/patmatch/internal/pkg/filtering"
)

// MultiModeAC provides anchored pattern matching using separate automata
// for different pattern types (contains, prefix, suffix).
//
// Suffix matching reverses both patterns and inputs. This transforms suffix
// matching into prefix matching, which is naturally cheap for AC automata
// (a match that starts at offset 0).
//
// Example:
//   - Suffix pattern "*.exe" matches "GET /setup.exe"
//   - Reversed: "exe." matches "exe.putes/ TEG" at offset 0
type MultiModeAC struct {
	// containsAC matches patterns that can appear anywhere in the input.
	containsAC *AhoCorasick

	// prefixAC matches patterns that must appear at the start of the input.
	prefixAC *AhoCorasick

	// suffixAC matches REVERSED patterns against REVERSED inputs.
	suffixAC *AhoCorasick

	// patterns stores all original patterns for ID lookup.
	patterns []Pattern

	// containsPatterns, prefixPatterns and suffixPatterns map an index in the
	// per-type automaton back to the original pattern index.
	containsPatterns []int
	prefixPatterns   []int
	suffixPatterns   []int
}

// NewMultiModeAC creates a new MultiModeAC matcher.
func NewMultiModeAC() *MultiModeAC {
	return &MultiModeAC{}
}

// Build constructs the multi-mode automata from patterns.
// Patterns are partitioned by type and built into separate automata.
func (m *MultiModeAC) Build(patterns []Pattern) error {
	m.patterns = make([]Pattern, len(patterns))
	copy(m.patterns, patterns)

	var containsPatterns, prefixPatterns, suffixPatterns []Pattern
	m.containsPatterns = nil
	m.prefixPatterns = nil
	m.suffixPatterns = nil

	for i, p := range patterns {
		switch p.Type {
		case filtering.PatternTypeContains:
			containsPatterns = append(containsPatterns, Pattern{
				ID:   p.ID,
				Text: p.Text,
				Type: filtering.PatternTypeContains,
			})
			m.containsPatterns = append(m.containsPatterns, i)

		case filtering.PatternTypePrefix:
			prefixPatterns = append(prefixPatterns, Pattern{
				ID:   p.ID,
				Text: p.Text,
				Type: filtering.PatternTypeContains, // AC will match anywhere, we check start=0
			})
			m.prefixPatterns = append(m.prefixPatterns, i)

		case filtering.PatternTypeSuffix:
			suffixPatterns = append(suffixPatterns, Pattern{
				ID:   p.ID,
				Text: reverseString(p.Text),
				Type: filtering.PatternTypeContains, // AC will match anywhere, we check start=0
			})
			m.suffixPatterns = append(m.suffixPatterns, i)
		}
	}

	var err error
	if m.containsAC, err = buildPartition(containsPatterns); err != nil {
		return err
	}
	if m.prefixAC, err = buildPartition(prefixPatterns); err != nil {
		return err
	}
	if m.suffixAC, err = buildPartition(suffixPatterns); err != nil {
		return err
	}

	return nil
}

func buildPartition(patterns []Pattern) (*AhoCorasick, error) {
	ac := &AhoCorasick{}
	if len(patterns) == 0 {
		return ac, nil
	}
	if err := ac.Build(patterns); err != nil {
		return nil, err
	}
	return ac, nil
}

// Match finds all patterns that match the input.
func (m *MultiModeAC) Match(input []byte) []MatchResult {
	if len(m.patterns) == 0 {
		return nil
	}

	var results []MatchResult

	// Contains matches - any position is valid
	if m.containsAC.PatternCount() > 0 {
		for _, match := range m.containsAC.Match(input) {
			originalIdx := m.containsPatterns[match.PatternIndex]
			results = append(results, MatchResult{
				PatternID:    m.patterns[originalIdx].ID,
				PatternIndex: originalIdx,
				Start:        match.Start,
				Offset:       match.Offset,
			})
		}
	}

	// Prefix matches - must start at position 0
	if m.prefixAC.PatternCount() > 0 {
		for _, match := range m.prefixAC.Match(input) {
			if match.Start != 0 {
				continue
			}
			originalIdx := m.prefixPatterns[match.PatternIndex]
			results = append(results, MatchResult{
				PatternID:    m.patterns[originalIdx].ID,
				PatternIndex: originalIdx,
				Start:        0,
				Offset:       match.Offset,
			})
		}
	}

	// Suffix matches - reverse input, match reversed patterns
	if m.suffixAC.PatternCount() > 0 {
		reversedInput := reverseBytes(input)
		for _, match := range m.suffixAC.Match(reversedInput) {
			// Suffix in reversed input = prefix at position 0
			if match.Start != 0 {
				continue
			}
			originalIdx := m.suffixPatterns[match.PatternIndex]
			patternLen := len(m.patterns[originalIdx].Text)
			results = append(results, MatchResult{
				PatternID:    m.patterns[originalIdx].ID,
				PatternIndex: originalIdx,
				Start:        len(input) - patternLen,
				Offset:       len(input),
			})
		}
	}

	sortResults(results)
	return results
}

// MatchBatch matches multiple inputs against the patterns.
func (m *MultiModeAC) MatchBatch(inputs [][]byte) [][]MatchResult {
	return matchBatch(m, inputs)
}

// SearchAll returns the start offsets of every pattern, keyed by pattern text.
// When several patterns share a text, the first one in the set reports for it.
func (m *MultiModeAC) SearchAll(input []byte) map[string][]int {
	return groupStarts(m.patterns, m.Match(input))
}

// PatternCount returns the total number of patterns.
func (m *MultiModeAC) PatternCount() int {
	return len(m.patterns)
}

// reverseBytes returns a reversed copy of the byte slice.
func reverseBytes(b []byte) []byte {
	n := len(b)
	reversed := make([]byte, n)
	for i := 0; i < n; i++ {
		reversed[n-1-i] = b[i]
	}
	return reversed
}

// reverseString returns a reversed copy of the string.
func reverseString(s string) string {
	return string(reverseBytes([]byte(s)))
}
