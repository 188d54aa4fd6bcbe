package ahocorasick

import (
	"errors"
)

// ErrNoPatterns is returned by a Builder with RejectEmpty set when the pattern
// set has no non-empty pattern.
var ErrNoPatterns = errors.New("ahocorasick: no non-empty patterns")

// Builder constructs Aho-Corasick automata from patterns.
type Builder struct {
	// RejectEmpty makes Build fail with ErrNoPatterns instead of returning a
	// root-only automaton that never matches.
	RejectEmpty bool
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Build constructs an Aho-Corasick automaton from the given patterns.
// The build process has two phases:
//  1. Trie construction: Insert all patterns into a trie
//  2. Failure link computation: Use BFS to compute failure links for each state
//
// Time complexity: O(m) where m is the total length of all patterns.
// Space complexity: O(m) for the automaton states.
func (b *Builder) Build(patterns []Pattern) (*AhoCorasick, error) {
	if b.RejectEmpty && !hasNonEmpty(patterns) {
		return nil, ErrNoPatterns
	}

	ac := &AhoCorasick{
		states:         []state{newState()}, // Start with root state
		patterns:       make([]Pattern, len(patterns)),
		patternLengths: make([]int, len(patterns)),
	}

	copy(ac.patterns, patterns)
	for i, p := range patterns {
		ac.patternLengths[i] = len(p.Text)
	}

	// Phase 1: Build trie
	b.buildTrie(ac)

	// Phase 2: Compute failure links using BFS
	b.computeFailureLinks(ac)

	return ac, nil
}

// buildTrie inserts all patterns into the trie.
func (b *Builder) buildTrie(ac *AhoCorasick) {
	for patternIdx, pattern := range ac.patterns {
		// Skip empty patterns - they would match at every position
		if pattern.Text == "" {
			continue
		}

		currentState := 0

		for _, char := range []byte(pattern.Text) {
			if nextState, exists := ac.states[currentState].transitions[char]; exists {
				currentState = nextState
				continue
			}

			newStateIdx := len(ac.states)
			ac.states = append(ac.states, newState())
			ac.states[currentState].transitions[char] = newStateIdx
			currentState = newStateIdx
		}

		ac.states[currentState].output = append(ac.states[currentState].output, patternIdx)
	}
}

// computeFailureLinks uses BFS to compute failure links for all states.
// The failure link for a state S points to the longest proper suffix of the
// path to S that is also a prefix of some pattern.
//
// States are finalized in BFS order, so a failure target (always shallower)
// already carries its merged output when it is copied.
func (b *Builder) computeFailureLinks(ac *AhoCorasick) {
	queue := make([]int, 0, len(ac.states))

	// States at depth 1 have failure link to root
	for _, nextState := range ac.states[0].transitions {
		ac.states[nextState].failure = 0
		queue = append(queue, nextState)
	}

	for len(queue) > 0 {
		currentState := queue[0]
		queue = queue[1:]

		for char, nextState := range ac.states[currentState].transitions {
			queue = append(queue, nextState)

			// Follow failure links until we find a state
			// that has a transition for 'char', or reach root
			failState := ac.states[currentState].failure
			for failState != 0 {
				if _, exists := ac.states[failState].transitions[char]; exists {
					break
				}
				failState = ac.states[failState].failure
			}

			if target, exists := ac.states[failState].transitions[char]; exists && target != nextState {
				ac.states[nextState].failure = target
			} else {
				ac.states[nextState].failure = 0
			}

			failureState := ac.states[nextState].failure
			if len(ac.states[failureState].output) > 0 {
				ac.states[nextState].output = append(
					ac.states[nextState].output,
					ac.states[failureState].output...,
				)
			}
		}
	}
}

func hasNonEmpty(patterns []Pattern) bool {
	for _, p := range patterns {
		if p.Text != "" {
			return true
		}
	}
	return false
}
