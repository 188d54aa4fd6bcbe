// Package ahocorasick provides an implementation of the Aho-Corasick string matching algorithm.
// The Aho-Corasick algorithm allows matching multiple patterns simultaneously against an input
// string in O(n + m + z) time, where n is the input length, m is the total pattern length,
// and z is the number of matches.
//
// Automata are built in two phases: every pattern is inserted into a trie held in a node
// arena, then failure links are computed breadth-first and each state's output set is
// merged with the (already final) output set of its failure target. Matching never walks
// the failure chain to collect outputs.
//
// A built automaton is never mutated, so it can be shared by concurrent Match calls.
package ahocorasick

import (
	"cmp"
	"slices"

	"github.com/endorses/patmatch/internal/pkg/filtering"
)

// Pattern represents a pattern to be matched by the Aho-Corasick automaton.
type Pattern struct {
	// ID is a caller-chosen identifier for this pattern, returned in match results.
	ID int

	// Text is the pattern text to match (without wildcards).
	Text string

	// Type specifies how the pattern should be matched (prefix, suffix, contains).
	Type filtering.PatternType
}

// MatchResult represents a match found by the automaton.
type MatchResult struct {
	// PatternID is the ID of the matched pattern.
	PatternID int

	// PatternIndex is the index of the pattern in the original pattern slice.
	PatternIndex int

	// Start is the byte offset in the input where the match begins.
	Start int

	// Offset is the byte offset in the input where the match ends (exclusive).
	Offset int
}

// Matcher is the interface for multi-pattern matching implementations.
type Matcher interface {
	// Build constructs the matcher from a set of patterns.
	// For Aho-Corasick, this builds the trie and computes failure links.
	Build(patterns []Pattern) error

	// Match finds every occurrence of every pattern in the input, ordered by
	// ascending Start and then by PatternIndex.
	Match(input []byte) []MatchResult

	// MatchBatch matches multiple inputs against the patterns.
	// Returns a slice of MatchResult slices, one per input.
	MatchBatch(inputs [][]byte) [][]MatchResult

	// SearchAll groups the start offsets of every occurrence by pattern text.
	SearchAll(input []byte) map[string][]int

	// PatternCount returns the number of patterns in the matcher.
	PatternCount() int
}

// sortResults orders matches by start offset, then by pattern insertion order.
// The scan itself emits them by end offset.
func sortResults(results []MatchResult) {
	slices.SortFunc(results, func(a, b MatchResult) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.PatternIndex, b.PatternIndex)
	})
}

// groupStarts turns match results into the per-pattern view used by SearchAll.
// Every non-empty pattern gets an entry, even when it never matched.
func groupStarts(patterns []Pattern, results []MatchResult) map[string][]int {
	grouped := make(map[string][]int, len(patterns))
	owner := make(map[string]int, len(patterns))
	for i, p := range patterns {
		if p.Text == "" {
			continue
		}
		if _, seen := owner[p.Text]; !seen {
			owner[p.Text] = i
			grouped[p.Text] = nil
		}
	}

	for _, r := range results {
		text := patterns[r.PatternIndex].Text
		// Duplicate pattern texts report the same positions once.
		if owner[text] != r.PatternIndex {
			continue
		}
		grouped[text] = append(grouped[text], r.Start)
	}
	return grouped
}

// validateMatch checks if a match result is valid based on pattern type.
func validateMatch(pattern Pattern, matchStart, matchEnd, inputLen int) bool {
	switch pattern.Type {
	case filtering.PatternTypePrefix:
		return matchStart == 0
	case filtering.PatternTypeSuffix:
		return matchEnd == inputLen
	case filtering.PatternTypeContains:
		return true
	}
	return false
}

func matchBatch(m Matcher, inputs [][]byte) [][]MatchResult {
	results := make([][]MatchResult, len(inputs))
	for i, input := range inputs {
		results[i] = m.Match(input)
	}
	return results
}
