package ahocorasick

// state represents a node in the Aho-Corasick automaton.
type state struct {
	// transitions maps input bytes to next states.
	// Using a map for sparse alphabets (most states have one or two edges).
	transitions map[byte]int

	// failure is the state representing the longest proper suffix of this
	// state's prefix that is also a prefix of some pattern.
	failure int

	// output contains the indices of patterns that match at this state,
	// including those inherited through the failure link.
	output []int
}

// AhoCorasick is an Aho-Corasick automaton for multi-pattern string matching
// with map-based transitions.
type AhoCorasick struct {
	// states is the automaton's node arena.
	// State 0 is the root state.
	states []state

	// patterns stores the original patterns for result reporting.
	patterns []Pattern

	// patternLengths stores the length of each pattern for offset calculation.
	patternLengths []int
}

// newState creates a new state with initialized fields.
func newState() state {
	return state{
		transitions: make(map[byte]int),
		failure:     0,
		output:      nil,
	}
}

// Match finds all patterns that occur in the input.
func (ac *AhoCorasick) Match(input []byte) []MatchResult {
	if len(ac.states) == 0 || len(input) == 0 {
		return nil
	}

	var results []MatchResult
	currentState := 0

	for i, b := range input {
		// Follow failure links until we find a transition or reach root
		for currentState != 0 {
			if _, exists := ac.states[currentState].transitions[b]; exists {
				break
			}
			currentState = ac.states[currentState].failure
		}

		if nextState, exists := ac.states[currentState].transitions[b]; exists {
			currentState = nextState
		}
		// If no transition from root, stay at root

		// Outputs from suffix links are already merged during build phase,
		// so we only need to check the current state.
		for _, patternIdx := range ac.states[currentState].output {
			matchEnd := i + 1
			matchStart := matchEnd - ac.patternLengths[patternIdx]

			pattern := ac.patterns[patternIdx]
			if !validateMatch(pattern, matchStart, matchEnd, len(input)) {
				continue
			}

			results = append(results, MatchResult{
				PatternID:    pattern.ID,
				PatternIndex: patternIdx,
				Start:        matchStart,
				Offset:       matchEnd,
			})
		}
	}

	sortResults(results)
	return results
}

// MatchBatch matches multiple inputs against the patterns.
func (ac *AhoCorasick) MatchBatch(inputs [][]byte) [][]MatchResult {
	return matchBatch(ac, inputs)
}

// SearchAll returns the start offsets of every pattern, keyed by pattern text.
func (ac *AhoCorasick) SearchAll(input []byte) map[string][]int {
	return groupStarts(ac.patterns, ac.Match(input))
}

// PatternCount returns the number of patterns in the automaton.
func (ac *AhoCorasick) PatternCount() int {
	return len(ac.patterns)
}

// StateCount returns the number of trie nodes, root included.
func (ac *AhoCorasick) StateCount() int {
	return len(ac.states)
}

// Build constructs the automaton from patterns.
// This delegates to the Builder for actual construction.
func (ac *AhoCorasick) Build(patterns []Pattern) error {
	builder := NewBuilder()
	built, err := builder.Build(patterns)
	if err != nil {
		return err
	}

	ac.states = built.states
	ac.patterns = built.patterns
	ac.patternLengths = built.patternLengths

	return nil
}
