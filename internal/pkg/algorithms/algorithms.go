// Package algorithms exposes every exact-matching algorithm behind one
// Searcher interface and a fixed, ordered registry used by the CLI and the
// timing harness.
package algorithms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/endorses/patmatch/internal/pkg/ahocorasick"
	"github.com/endorses/patmatch/internal/pkg/matching"
)

// Registered algorithm names, in report order.
const (
	BruteForce  = "brute-force"
	KMP         = "kmp"
	BoyerMoore  = "boyer-moore"
	RabinKarp   = "rabin-karp"
	AhoCorasick = "aho-corasick"
)

// ErrUnknownAlgorithm is returned when a name is not in the registry.
var ErrUnknownAlgorithm = errors.New("unknown algorithm")

// Compiled is a pattern with its preprocessing done, reusable across texts.
type Compiled interface {
	Search(text []byte) []int
}

// Searcher finds every start offset of pattern in text.
type Searcher interface {
	Name() string
	Search(text, pattern []byte) []int
	Compile(pattern []byte) Compiled
}

type compiledFunc func(text []byte) []int

func (f compiledFunc) Search(text []byte) []int { return f(text) }

type searcher struct {
	name    string
	compile func(pattern []byte) Compiled
}

func (s searcher) Name() string { return s.name }

func (s searcher) Search(text, pattern []byte) []int {
	return s.compile(pattern).Search(text)
}

func (s searcher) Compile(pattern []byte) Compiled {
	return s.compile(pattern)
}

var registry = []Searcher{
	searcher{name: BruteForce, compile: func(pattern []byte) Compiled {
		p := append([]byte(nil), pattern...)
		return compiledFunc(func(text []byte) []int { return matching.BruteForce(text, p) })
	}},
	searcher{name: KMP, compile: func(pattern []byte) Compiled {
		return matching.NewKMP(pattern)
	}},
	searcher{name: BoyerMoore, compile: func(pattern []byte) Compiled {
		return matching.NewBoyerMoore(pattern)
	}},
	searcher{name: RabinKarp, compile: func(pattern []byte) Compiled {
		return matching.NewRabinKarp(pattern)
	}},
	searcher{name: AhoCorasick, compile: compileAhoCorasick},
}

// compileAhoCorasick builds a one-pattern automaton.
func compileAhoCorasick(pattern []byte) Compiled {
	ac, err := ahocorasick.NewBuilder().Build([]ahocorasick.Pattern{{Text: string(pattern)}})
	if err != nil {
		return compiledFunc(func([]byte) []int { return nil })
	}
	return compiledFunc(func(text []byte) []int {
		results := ac.Match(text)
		if len(results) == 0 {
			return nil
		}
		positions := make([]int, len(results))
		for i, r := range results {
			positions[i] = r.Start
		}
		return positions
	})
}

// All returns every registered searcher in report order.
func All() []Searcher {
	return append([]Searcher(nil), registry...)
}

// Names returns the registered algorithm names in report order.
func Names() []string {
	names := make([]string, len(registry))
	for i, s := range registry {
		names[i] = s.Name()
	}
	return names
}

// Lookup finds a searcher by name. Names are matched case-insensitively and
// underscores are accepted in place of dashes.
func Lookup(name string) (Searcher, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
	for _, s := range registry {
		if s.Name() == normalized {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownAlgorithm, name, strings.Join(Names(), ", "))
}

// Select resolves names in the order given. An empty list selects every algorithm.
// Duplicate names are returned once.
func Select(names []string) ([]Searcher, error) {
	if len(names) == 0 {
		return All(), nil
	}

	selected := make([]Searcher, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		s, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		if seen[s.Name()] {
			continue
		}
		seen[s.Name()] = true
		selected = append(selected, s)
	}
	return selected, nil
}
