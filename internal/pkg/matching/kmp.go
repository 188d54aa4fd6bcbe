package matching

// BuildLPS computes the longest-proper-prefix-which-is-also-suffix table for
// pattern. lps[i] is the length of the longest proper prefix of pattern[:i+1]
// that is also a suffix of it, so lps[0] is always 0 and lps[i] <= i.
func BuildLPS(pattern []byte) []int {
	m := len(pattern)
	lps := make([]int, m)

	length := 0
	for i := 1; i < m; {
		switch {
		case pattern[i] == pattern[length]:
			length++
			lps[i] = length
			i++
		case length > 0:
			// Only entries before i are consulted.
			length = lps[length-1]
		default:
			lps[i] = 0
			i++
		}
	}
	return lps
}

// SearchKMP runs the Knuth-Morris-Pratt scan of text using a table produced by
// BuildLPS for the same pattern. A table of the wrong length is rebuilt.
func SearchKMP(text, pattern []byte, lps []int) []int {
	n, m := len(text), len(pattern)
	if !searchable(n, m) {
		return nil
	}
	if len(lps) != m {
		lps = BuildLPS(pattern)
	}

	var positions []int
	i, j := 0, 0
	for i < n {
		if text[i] == pattern[j] {
			i++
			j++
			if j == m {
				positions = append(positions, i-j)
				// Keep the matched border so overlapping occurrences are found.
				j = lps[j-1]
			}
			continue
		}

		if j > 0 {
			j = lps[j-1]
		} else {
			i++
		}
	}
	return positions
}

// KMP is a pattern compiled for Knuth-Morris-Pratt search.
type KMP struct {
	pattern []byte
	lps     []int
}

// NewKMP copies pattern and builds its LPS table.
func NewKMP(pattern []byte) *KMP {
	p := append([]byte(nil), pattern...)
	return &KMP{
		pattern: p,
		lps:     BuildLPS(p),
	}
}

// Search returns every start offset of the compiled pattern in text.
func (k *KMP) Search(text []byte) []int {
	return SearchKMP(text, k.pattern, k.lps)
}

// Table returns a copy of the LPS table.
func (k *KMP) Table() []int {
	return append([]int(nil), k.lps...)
}

// Pattern returns the compiled pattern.
func (k *KMP) Pattern() []byte {
	return k.pattern
}
