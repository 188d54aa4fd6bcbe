package matching

// AlphabetSize is the number of distinct symbols a byte can hold.
const AlphabetSize = 256

// BadCharTable maps every byte value to the index of its rightmost occurrence
// in a pattern, or -1 when the byte does not occur.
type BadCharTable [AlphabetSize]int

// BuildBadChar builds the bad-character table for pattern.
func BuildBadChar(pattern []byte) BadCharTable {
	var table BadCharTable
	for i := range table {
		table[i] = -1
	}
	for j, c := range pattern {
		table[c] = j
	}
	return table
}

// SearchBoyerMoore scans text with the bad-character rule, comparing each
// alignment right to left. A nil table is built from pattern.
//
// After a full match the next alignment is chosen from the byte just past the
// window; when the window ends at the end of the text the shift is 1.
func SearchBoyerMoore(text, pattern []byte, table *BadCharTable) []int {
	n, m := len(text), len(pattern)
	if !searchable(n, m) {
		return nil
	}
	if table == nil {
		t := BuildBadChar(pattern)
		table = &t
	}

	var positions []int
	s := 0
	for s <= n-m {
		j := m - 1
		for j >= 0 && pattern[j] == text[s+j] {
			j--
		}

		if j < 0 {
			positions = append(positions, s)
			if s+m < n {
				s += max(1, m-table[text[s+m]])
			} else {
				s++
			}
			continue
		}

		s += max(1, j-table[text[s+j]])
	}
	return positions
}

// BoyerMoore is a pattern compiled for Boyer-Moore search.
type BoyerMoore struct {
	pattern []byte
	table   BadCharTable
}

// NewBoyerMoore copies pattern and builds its bad-character table.
func NewBoyerMoore(pattern []byte) *BoyerMoore {
	p := append([]byte(nil), pattern...)
	return &BoyerMoore{
		pattern: p,
		table:   BuildBadChar(p),
	}
}

// Search returns every start offset of the compiled pattern in text.
func (bm *BoyerMoore) Search(text []byte) []int {
	return SearchBoyerMoore(text, bm.pattern, &bm.table)
}

// Table returns a copy of the bad-character table.
func (bm *BoyerMoore) Table() BadCharTable {
	return bm.table
}
